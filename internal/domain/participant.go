package domain

import (
	"slices"
	"time"
)

// Participant: 行程中的一个成员
// CookingPreference 表示做饭意愿，取值范围 [-2, 2]，-2 表示极不愿意做饭，2 表示非常喜欢做饭
type Participant struct {
	ID                int64       `json:"id"`
	TripID            int64       `json:"tripID"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	CookingPreference int32       `json:"cookingPreference"`
	IsActive          bool        `json:"isActive"`
	AvailabilityDates []time.Time `json:"availabilityDates"`

	// 以下两个字段由 repository 从已持久化的分配记录中统计得到
	PriorAssignments int32      `json:"priorAssignments"`
	LastAssignedAt   *time.Time `json:"lastAssignedAt"`

	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// IsAvailableOn 判断成员在某一天是否有空（以天为粒度）
func (p *Participant) IsAvailableOn(date time.Time) bool {
	day := TruncateToDay(date)
	return slices.ContainsFunc(p.AvailabilityDates, func(d time.Time) bool {
		return TruncateToDay(d).Equal(day)
	})
}
