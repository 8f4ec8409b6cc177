package scheduler

import (
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

// DisqualifiedScore 表示队伍中有成员已经达到分配上限，这样的队伍不允许被选中
const DisqualifiedScore = -1000

// neverAssignedDays: 从未被分配过的成员的休息天数哨兵值
const neverAssignedDays = 999

type scoreWeights struct {
	skill    float64
	equity   float64
	temporal float64
}

func weightsFor(prioritizeEquality bool) scoreWeights {
	if prioritizeEquality {
		return scoreWeights{skill: 0.20, equity: 0.60, temporal: 0.20}
	}
	return scoreWeights{skill: 0.40, equity: 0.35, temporal: 0.25}
}

/**
 * scoreTeam 对一个候选队伍打分
 * score = skill * skillWeight + equity * equityWeight + temporal * temporalWeight
 * 其中:
 * 		1. skill 衡量队伍内做饭意愿的互补程度（热情的带不情愿的）
 * 		2. equity 衡量队伍成员距离各自公平目标的差距
 * 		3. temporal 衡量队伍成员最近的休息间隔（避免连续几天都被排到）
 * 任何成员达到分配上限时直接返回 DisqualifiedScore
 */
func scoreTeam(members []*ParticipantMetrics, slotDate time.Time, prioritizeEquality bool) float64 {
	for _, m := range members {
		if m.CurrentAssignments >= m.MaxAssignments {
			return DisqualifiedScore
		}
	}

	w := weightsFor(prioritizeEquality)

	return skillScore(members)*w.skill +
		equityScore(members, prioritizeEquality)*w.equity +
		temporalScore(members, slotDate)*w.temporal
}

func skillScore(members []*ParticipantMetrics) float64 {
	hasEnthusiast := false
	hasReluctant := false
	allNegative := true

	prefs := make([]float64, 0, len(members))
	for _, m := range members {
		pref := m.Participant.CookingPreference
		prefs = append(prefs, float64(pref))

		if pref >= 1 {
			hasEnthusiast = true
		}
		if pref <= -1 {
			hasReluctant = true
		}
		if pref >= 0 {
			allNegative = false
		}
	}

	score := 0.0
	switch {
	case hasEnthusiast && hasReluctant:
		score += 100
	case hasEnthusiast:
		score += 70
	case allNegative:
		score -= 50
	}

	// 意愿多样性奖励
	diversity := variance(prefs) * 10
	if diversity > 30 {
		diversity = 30
	}
	score += diversity

	return score
}

func equityScore(members []*ParticipantMetrics, prioritizeEquality bool) float64 {
	deficitWeight, overWeight := 35.0, 80.0
	if prioritizeEquality {
		deficitWeight, overWeight = 60.0, 120.0
	}

	score := 0.0
	for _, m := range members {
		if m.AssignmentDeficit > 0 {
			score += float64(m.AssignmentDeficit) * deficitWeight
		} else {
			score -= float64(-m.AssignmentDeficit) * overWeight
		}

		// 接近上限的成员额外扣分
		remaining := m.MaxAssignments - m.CurrentAssignments
		switch {
		case remaining <= 1:
			score -= 50
		case remaining <= 2:
			score -= 25
		}
	}

	return score
}

func temporalScore(members []*ParticipantMetrics, slotDate time.Time) float64 {
	score := 0.0
	for _, m := range members {
		days := neverAssignedDays
		if m.LastAssignedDate != nil {
			days = daysBetween(*m.LastAssignedDate, slotDate)
		}

		switch {
		case days <= 0:
			score -= 100
		case days == 1:
			score -= 80
		case days == 2:
			score -= 30
		case days <= 5:
			score += 20
		default:
			bonus := float64(days) * 3
			if bonus > 40 {
				bonus = 40
			}
			score += bonus
		}
	}

	return score
}

// variance 计算总体方差
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}

	return sum / float64(len(values))
}

func daysBetween(from time.Time, to time.Time) int {
	return int(domain.TruncateToDay(to).Sub(domain.TruncateToDay(from)).Hours() / 24)
}
