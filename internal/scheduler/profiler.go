package scheduler

import (
	"math"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

// skillWeightTable 将做饭意愿映射为相对权重
// 打分时直接使用意愿的原始值，这个权重仅供展示和并列时参考
var skillWeightTable = map[int32]float64{
	-2: 0.3,
	-1: 0.6,
	0:  1.0,
	1:  1.5,
	2:  2.0,
}

// buildMetrics 根据成员的空闲日期和历史分配记录计算排班所需的工作状态
// 返回的切片顺序和传入的成员顺序一致，保证排班结果可复现
func buildMetrics(participants []*domain.Participant, totalTripDays int, totalMeals int) []*ParticipantMetrics {
	metrics := make([]*ParticipantMetrics, 0, len(participants))

	for _, p := range participants {
		availableDays := len(p.AvailabilityDates)

		presenceRatio := 0.0
		if totalTripDays > 0 {
			presenceRatio = float64(availableDays) / float64(totalTripDays)
		}

		fairShare := int32(math.Round(float64(totalMeals) * presenceRatio))
		if availableDays > 0 && fairShare < 1 {
			// 在场的成员至少要有一个非零的目标
			fairShare = 1
		}

		var lastAssigned *time.Time
		if p.LastAssignedAt != nil {
			day := domain.TruncateToDay(*p.LastAssignedAt)
			lastAssigned = &day
		}

		metrics = append(metrics, &ParticipantMetrics{
			Participant:        p,
			AvailableDays:      availableDays,
			PresenceRatio:      presenceRatio,
			FairShare:          fairShare,
			CurrentAssignments: p.PriorAssignments,
			AssignmentDeficit:  fairShare - p.PriorAssignments,
			MaxAssignments:     maxAssignmentsFor(fairShare, totalMeals, len(participants)),
			LastAssignedDate:   lastAssigned,
			SkillWeight:        skillWeightTable[p.CookingPreference],
		})
	}

	return metrics
}

/**
 * maxAssignmentsFor 计算成员的硬性分配上限
 * 上限取以下三项的最小值：
 * 		1. fairShare + 2：容忍贪心过程中的自然波动
 * 		2. ceil(totalMeals / participantCount) + 2：成员较少时限制上限的增长
 * 		3. floor(totalMeals * 0.6)：防止某个热情又全程在场的成员包揽所有工作
 * 第三项只在成员数大于 1 时生效，只有一个人的行程不存在包揽问题，
 * 否则这个人将永远无法覆盖所有餐次
 */
func maxAssignmentsFor(fairShare int32, totalMeals int, participantCount int) int32 {
	if participantCount == 0 {
		return 0
	}

	limit := fairShare + 2

	perCapita := int32(math.Ceil(float64(totalMeals)/float64(participantCount))) + 2
	if perCapita < limit {
		limit = perCapita
	}

	if participantCount > 1 {
		monopoly := int32(math.Floor(float64(totalMeals) * 0.6))
		if monopoly < limit {
			limit = monopoly
		}
	}

	return limit
}
