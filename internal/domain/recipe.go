package domain

import "time"

type Recipe struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"tripID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// RecipeAssignment: 某个餐次槽位上安排的一道菜
type RecipeAssignment struct {
	ID         int64     `json:"id"`
	MealSlotID int64     `json:"mealSlotID"`
	RecipeID   int64     `json:"recipeID"`
	CreatedAt  time.Time `json:"createdAt"`
}
