package domain

import "time"

type AssignmentRole string

const (
	RoleCook   AssignmentRole = "主厨"
	RoleHelper AssignmentRole = "帮厨"
)

// Assignment: 某个餐次槽位上的一条分配记录
type Assignment struct {
	ID            int64          `json:"id"`
	MealSlotID    int64          `json:"mealSlotID"`
	ParticipantID int64          `json:"participantID"`
	Role          AssignmentRole `json:"role"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// ScheduleSummary: 一次排班后每个成员的统计信息，用于前端展示
type ScheduleSummary struct {
	ParticipantID     int64   `json:"participantID"`
	ParticipantName   string  `json:"participantName"`
	TargetAssignments int32   `json:"targetAssignments"`
	FinalAssignments  int32   `json:"finalAssignments"`
	PresenceRatio     float64 `json:"presenceRatio"`
}
