package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func availableMetrics(n int) []*ParticipantMetrics {
	metrics := make([]*ParticipantMetrics, 0, n)
	for i := 0; i < n; i++ {
		pref := int32(i%5 - 2)
		p := testParticipant(int64(i+1), fmt.Sprintf("成员%d", i+1), pref, 0, 1, 2)
		metrics = append(metrics, &ParticipantMetrics{
			Participant:       p,
			FairShare:         3,
			AssignmentDeficit: 3,
			MaxAssignments:    5,
			SkillWeight:       skillWeightTable[pref],
		})
	}
	return metrics
}

func TestForEachCombination(t *testing.T) {
	t.Run("lexicographic order", func(t *testing.T) {
		var got [][]int
		forEachCombination(4, 2, func(indices []int) bool {
			combo := make([]int, len(indices))
			copy(combo, indices)
			got = append(got, combo)
			return true
		})

		expected := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
		require.Equal(t, expected, got)
	})

	t.Run("early exit", func(t *testing.T) {
		visited := 0
		forEachCombination(5, 2, func(indices []int) bool {
			visited++
			return visited < 3
		})
		require.Equal(t, 3, visited)
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		visited := 0
		visit := func([]int) bool { visited++; return true }

		forEachCombination(3, 0, visit)
		forEachCombination(2, 3, visit)
		require.Equal(t, 0, visited)
	})
}

func TestGenerateCandidates(t *testing.T) {
	metrics := availableMetrics(3)

	candidates := generateCandidates(metrics, testDay(0), 1, 1, false)
	// C(3,1) + C(3,2)
	require.Len(t, candidates, 6)

	for _, c := range candidates {
		require.Len(t, c.Roles, len(c.Members))
		switch len(c.Members) {
		case 1:
			require.Equal(t, []domain.AssignmentRole{domain.RoleCook}, c.Roles)
		case 2:
			require.Equal(t, []domain.AssignmentRole{domain.RoleCook, domain.RoleHelper}, c.Roles)
		default:
			t.Fatalf("队伍人数非法: %d", len(c.Members))
		}
	}

	// 按分数降序
	for i := 1; i < len(candidates); i++ {
		require.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestGenerateCandidatesRoleSplitByPosition(t *testing.T) {
	metrics := availableMetrics(4)

	candidates := generateCandidates(metrics, testDay(0), 2, 1, false)

	for _, c := range candidates {
		cooks := 0
		for i, role := range c.Roles {
			if role == domain.RoleCook {
				cooks++
				// 主厨都在队伍的前面
				require.Less(t, i, cooks)
			}
		}
		require.LessOrEqual(t, cooks, 2)
	}
}

func TestGenerateCandidatesTruncation(t *testing.T) {
	metrics := availableMetrics(10)

	// C(10,1)+C(10,2)+C(10,3) = 175，截断到 50
	candidates := generateCandidates(metrics, testDay(0), 2, 1, false)
	require.Len(t, candidates, maxCandidates)
}

func TestGenerateCandidatesDeterministic(t *testing.T) {
	signature := func() []string {
		var sig []string
		for _, c := range generateCandidates(availableMetrics(6), testDay(0), 2, 1, false) {
			entry := fmt.Sprintf("%.4f:", c.Score)
			for _, m := range c.Members {
				entry += fmt.Sprintf("%d,", m.Participant.ID)
			}
			sig = append(sig, entry)
		}
		return sig
	}

	require.Equal(t, signature(), signature())
}

func TestGenerateCandidatesEmptyInputs(t *testing.T) {
	require.Nil(t, generateCandidates(nil, testDay(0), 2, 1, false))
	require.Nil(t, generateCandidates(availableMetrics(3), testDay(0), 0, 0, false))
}
