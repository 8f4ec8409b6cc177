package utils

import (
	"fmt"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func ValidateTripDates(trip *domain.Trip) error {
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("行程结束日期不能早于开始日期")
	}
	return nil
}

// ValidateAssignmentsWithAvailability 检查每条分配记录对应的成员在当天是否有空
func ValidateAssignmentsWithAvailability(assignments []*domain.Assignment, slots []*domain.MealSlot, participants []*domain.Participant) error {
	slotMap := make(map[int64]*domain.MealSlot, len(slots))
	for _, slot := range slots {
		slotMap[slot.ID] = slot
	}

	participantMap := make(map[int64]*domain.Participant, len(participants))
	for _, p := range participants {
		participantMap[p.ID] = p
	}

	for _, a := range assignments {
		slot, exists := slotMap[a.MealSlotID]
		if !exists {
			return fmt.Errorf("分配记录引用了不存在的餐次 %d", a.MealSlotID)
		}

		p, exists := participantMap[a.ParticipantID]
		if !exists {
			return fmt.Errorf("分配记录引用了不存在的成员 %d", a.ParticipantID)
		}

		if !p.IsAvailableOn(slot.Date) {
			return fmt.Errorf("成员 %s 在 %s 没有空闲时间", p.Name, slot.Date.Format("2006-01-02"))
		}
	}

	return nil
}

// ValidateNoDuplicateParticipant 检查是否存在某个餐次中有重复的成员
func ValidateNoDuplicateParticipant(assignments []*domain.Assignment) error {
	seen := make(map[int64]map[int64]bool) // slotID -> participantID 集合

	for _, a := range assignments {
		if _, exists := seen[a.MealSlotID]; !exists {
			seen[a.MealSlotID] = make(map[int64]bool)
		}
		if seen[a.MealSlotID][a.ParticipantID] {
			return fmt.Errorf("餐次 %d 中存在重复的成员 %d", a.MealSlotID, a.ParticipantID)
		}
		seen[a.MealSlotID][a.ParticipantID] = true
	}

	return nil
}

// ValidateAssignmentsWithCapacity 检查每个餐次的主厨和帮厨人数是否超过配置的上限
func ValidateAssignmentsWithCapacity(assignments []*domain.Assignment, maxCooks int, maxHelpers int) error {
	cooks := make(map[int64]int)
	helpers := make(map[int64]int)

	for _, a := range assignments {
		switch a.Role {
		case domain.RoleCook:
			cooks[a.MealSlotID]++
		case domain.RoleHelper:
			helpers[a.MealSlotID]++
		default:
			return fmt.Errorf("餐次 %d 中存在非法角色 %s", a.MealSlotID, a.Role)
		}
	}

	for slotID, cnt := range cooks {
		if cnt > maxCooks {
			return fmt.Errorf("餐次 %d 的主厨人数 %d 超过了上限 %d", slotID, cnt, maxCooks)
		}
	}
	for slotID, cnt := range helpers {
		if cnt > maxHelpers {
			return fmt.Errorf("餐次 %d 的帮厨人数 %d 超过了上限 %d", slotID, cnt, maxHelpers)
		}
	}

	return nil
}
