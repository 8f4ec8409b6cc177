package scheduler

import (
	"sort"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

// maxCandidates: 每个槽位最多保留的候选队伍数量，后续只会用到得分最高的一个，
// 丢弃排名靠后的候选不影响结果
const maxCandidates = 50

// evaluationBudget: 单个槽位允许评估的组合总数上限
// 队伍人数不超过每餐的人数限制（通常是 2~3 人），所以枚举量是多项式级别的，
// 这个预算只是针对病态输入的确定性兜底，不保证此时能找到全局最优队伍
const evaluationBudget = 100000

/**
 * generateCandidates 枚举槽位上所有可行的队伍组合并打分
 * 队伍人数为 1..min(maxCooks+maxHelpers, 可用人数)，角色按位置划分：
 * 前 min(maxCooks, k) 个是主厨，其余是帮厨
 * 返回按分数稳定降序排列并截断到 maxCandidates 的候选列表
 */
func generateCandidates(available []*ParticipantMetrics, slotDate time.Time, maxCooks int, maxHelpers int, prioritizeEquality bool) []*TeamCandidate {
	totalSlots := maxCooks + maxHelpers
	if totalSlots <= 0 || len(available) == 0 {
		return nil
	}

	maxSize := totalSlots
	if len(available) < maxSize {
		maxSize = len(available)
	}

	var candidates []*TeamCandidate
	evaluated := 0

	for size := 1; size <= maxSize; size++ {
		forEachCombination(len(available), size, func(indices []int) bool {
			members := make([]*ParticipantMetrics, size)
			for i, idx := range indices {
				members[i] = available[idx]
			}

			cooks := maxCooks
			if size < cooks {
				cooks = size
			}
			roles := make([]domain.AssignmentRole, size)
			for i := range roles {
				if i < cooks {
					roles[i] = domain.RoleCook
				} else {
					roles[i] = domain.RoleHelper
				}
			}

			candidates = append(candidates, &TeamCandidate{
				Members: members,
				Roles:   roles,
				Score:   scoreTeam(members, slotDate, prioritizeEquality),
			})

			evaluated++
			return evaluated < evaluationBudget
		})

		if evaluated >= evaluationBudget {
			break
		}
	}

	// 稳定排序保证同分时按生成顺序取先者，结果可复现
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return candidates
}

// forEachCombination 迭代枚举 C(n, k) 的所有下标组合（字典序），
// 避免递归调用栈，visit 返回 false 时提前终止
func forEachCombination(n int, k int, visit func(indices []int) bool) {
	if k <= 0 || k > n {
		return
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		if !visit(indices) {
			return
		}

		// 找到最右边还能前进的位置
		i := k - 1
		for i >= 0 && indices[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}

		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
