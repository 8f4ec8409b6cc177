package scheduler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/utils"
)

type Scheduler struct {
	parameters        *Parameters
	trip              *domain.Trip
	participants      []*domain.Participant
	slots             []*domain.MealSlot // 按（日期, 餐次）升序
	recipes           []*domain.Recipe
	recipeAssignments []*domain.RecipeAssignment // 已有的菜谱安排，补齐时需要跳过
	metrics           []*ParticipantMetrics
	reporter          Reporter
}

func New(parameters *Parameters, trip *domain.Trip, participants []*domain.Participant, slots []*domain.MealSlot, recipes []*domain.Recipe, recipeAssignments []*domain.RecipeAssignment, reporter Reporter) (*Scheduler, error) {
	if trip == nil {
		return nil, errors.New("行程不存在")
	}
	if parameters == nil {
		return nil, errors.New("未指定排班参数")
	}
	if reporter == nil {
		reporter = noopReporter{}
	}

	s := &Scheduler{
		parameters:        parameters,
		trip:              trip,
		participants:      participants,
		slots:             make([]*domain.MealSlot, len(slots)),
		recipes:           recipes,
		recipeAssignments: recipeAssignments,
		reporter:          reporter,
	}

	// 槽位按时间顺序处理，这样后面的槽位能看到前面槽位更新后的工作状态
	copy(s.slots, slots)
	sort.SliceStable(s.slots, func(i, j int) bool {
		di := domain.TruncateToDay(s.slots[i].Date)
		dj := domain.TruncateToDay(s.slots[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return domain.MealTypeRank(s.slots[i].MealType) < domain.MealTypeRank(s.slots[j].MealType)
	})

	s.metrics = buildMetrics(participants, trip.TotalDays(), len(slots))

	return s, nil
}

/**
 * Schedule 按时间顺序遍历所有餐次槽位，为每个槽位贪心地选出得分最高的队伍
 * 注意这是一个逐槽位的贪心启发式，不保证全局最优；
 * 每次运行都会从头计算，同一行程的并发重排需要由调用方串行化
 */
func (s *Scheduler) Schedule() (*Result, error) {
	result := &Result{
		Assignments: make([]*domain.Assignment, 0),
		Summaries:   make([]*domain.ScheduleSummary, 0, len(s.metrics)),
		Warnings:    make([]string, 0),
	}

	for _, slot := range s.slots {
		// 筛选出这一天有空的成员
		available := make([]*ParticipantMetrics, 0, len(s.metrics))
		for _, m := range s.metrics {
			if m.Participant.IsAvailableOn(slot.Date) {
				available = append(available, m)
			}
		}

		if len(available) == 0 {
			reason := "没有成员在这一天有空"
			s.reporter.SlotSkipped(slot, reason)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s 的%s：%s", slot.Date.Format("2006-01-02"), slot.MealType, reason))
			continue
		}

		candidates := generateCandidates(available, slot.Date, s.parameters.MaxCooksPerMeal, s.parameters.MaxHelpersPerMeal, s.parameters.PrioritizeEqualParticipation)

		// 剔除已达上限的队伍，被选中的队伍必须是合法的
		best := pickBest(candidates)
		if best == nil {
			reason := "所有候选队伍都已达到分配上限"
			if len(candidates) == 0 {
				reason = "无法生成候选队伍"
			}
			s.reporter.SlotSkipped(slot, reason)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s 的%s：%s", slot.Date.Format("2006-01-02"), slot.MealType, reason))
			continue
		}

		// 提交队伍并更新工作状态，让后续槽位看到最新的疲劳和均衡情况
		assignedDay := domain.TruncateToDay(slot.Date)
		for i, m := range best.Members {
			result.Assignments = append(result.Assignments, &domain.Assignment{
				MealSlotID:    slot.ID,
				ParticipantID: m.Participant.ID,
				Role:          best.Roles[i],
			})

			m.CurrentAssignments++
			m.AssignmentDeficit--
			day := assignedDay
			m.LastAssignedDate = &day
		}

		s.reporter.SlotPlanned(slot, best)
	}

	if s.parameters.AutoAssignRecipes && s.parameters.RecipesPerMeal >= 1 && len(s.recipes) > 0 {
		result.RecipeAssignments = s.balanceRecipes()
	}

	for _, m := range s.metrics {
		result.Summaries = append(result.Summaries, &domain.ScheduleSummary{
			ParticipantID:     m.Participant.ID,
			ParticipantName:   m.Participant.Name,
			TargetAssignments: m.FairShare,
			FinalAssignments:  m.CurrentAssignments,
			PresenceRatio:     m.PresenceRatio,
		})
	}

	// 最后再检查一遍结果是否满足约束条件
	if err := utils.ValidateAssignmentsWithAvailability(result.Assignments, s.slots, s.participants); err != nil {
		return nil, err
	}
	if err := utils.ValidateNoDuplicateParticipant(result.Assignments); err != nil {
		return nil, err
	}
	for _, m := range s.metrics {
		if m.CurrentAssignments > m.MaxAssignments {
			return nil, fmt.Errorf("成员 %s 的分配次数 %d 超过了上限 %d", m.Participant.Name, m.CurrentAssignments, m.MaxAssignments)
		}
	}

	return result, nil
}

// pickBest 返回第一个未被取消资格的候选（候选列表已按分数降序）
func pickBest(candidates []*TeamCandidate) *TeamCandidate {
	for _, c := range candidates {
		if c.Score > DisqualifiedScore {
			return c
		}
	}
	return nil
}

/**
 * balanceRecipes 用全局游标轮转菜谱列表，为缺菜的槽位补齐菜谱
 * 同一个槽位不会被安排重复的菜谱；已满足 RecipesPerMeal 的槽位不会新增任何安排，
 * 因此重复运行是幂等的
 */
func (s *Scheduler) balanceRecipes() []*domain.RecipeAssignment {
	assigned := make(map[int64]map[int64]bool) // slotID -> recipeID 集合
	for _, ra := range s.recipeAssignments {
		if _, exists := assigned[ra.MealSlotID]; !exists {
			assigned[ra.MealSlotID] = make(map[int64]bool)
		}
		assigned[ra.MealSlotID][ra.RecipeID] = true
	}

	added := make([]*domain.RecipeAssignment, 0)
	cursor := 0

	for _, slot := range s.slots {
		need := s.parameters.RecipesPerMeal - len(assigned[slot.ID])

		for need > 0 {
			var picked *domain.Recipe

			// 最多转完一整圈，槽位已经包含所有菜谱时放弃补齐
			for attempt := 0; attempt < len(s.recipes); attempt++ {
				r := s.recipes[cursor%len(s.recipes)]
				cursor++
				if !assigned[slot.ID][r.ID] {
					picked = r
					break
				}
			}

			if picked == nil {
				break
			}

			if _, exists := assigned[slot.ID]; !exists {
				assigned[slot.ID] = make(map[int64]bool)
			}
			assigned[slot.ID][picked.ID] = true
			added = append(added, &domain.RecipeAssignment{
				MealSlotID: slot.ID,
				RecipeID:   picked.ID,
			})
			need--
		}
	}

	return added
}
