package domain

import "time"

type MealType string

const (
	MealBreakfast MealType = "早餐"
	MealLunch     MealType = "午餐"
	MealDinner    MealType = "晚餐"
)

// MealTypeRank 返回餐次在一天内的固定顺序，用于槽位排序
func MealTypeRank(mt MealType) int {
	switch mt {
	case MealBreakfast:
		return 0
	case MealLunch:
		return 1
	case MealDinner:
		return 2
	default:
		return 3
	}
}

type MealSlot struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"tripID"`
	Date      time.Time `json:"date"`
	MealType  MealType  `json:"mealType"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
