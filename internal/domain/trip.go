package domain

import "time"

type Trip struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// TotalDays 返回行程的总天数（首尾两天都算在内）
func (t *Trip) TotalDays() int {
	start := TruncateToDay(t.StartDate)
	end := TruncateToDay(t.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

// TruncateToDay 将时间戳截断到当天的零点（UTC），
// 空闲日期和餐次日期都以天为粒度进行比较
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
