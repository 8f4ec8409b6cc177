package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func TestBuildMetrics(t *testing.T) {
	participants := []*domain.Participant{
		testParticipant(1, "全程", 2, 0, 1, 2, 3, 4),
		testParticipant(2, "半程", 0, 0, 1, 2),
		testParticipant(3, "一天", -1, 4),
		testParticipant(4, "缺席", 1),
	}

	metrics := buildMetrics(participants, 5, 15)
	require.Len(t, metrics, 4)

	full := metrics[0]
	require.Equal(t, 5, full.AvailableDays)
	require.InDelta(t, 1.0, full.PresenceRatio, 1e-9)
	require.Equal(t, int32(15), full.FairShare)
	require.Equal(t, int32(15), full.AssignmentDeficit)
	require.Equal(t, int32(6), full.MaxAssignments) // ceil(15/4)+2
	require.InDelta(t, 2.0, full.SkillWeight, 1e-9)
	require.Nil(t, full.LastAssignedDate)

	half := metrics[1]
	require.InDelta(t, 0.6, half.PresenceRatio, 1e-9)
	require.Equal(t, int32(9), half.FairShare)
	require.Equal(t, int32(6), half.MaxAssignments)
	require.InDelta(t, 1.0, half.SkillWeight, 1e-9)

	oneDay := metrics[2]
	require.InDelta(t, 0.2, oneDay.PresenceRatio, 1e-9)
	require.Equal(t, int32(3), oneDay.FairShare)
	require.Equal(t, int32(5), oneDay.MaxAssignments) // fairShare+2
	require.InDelta(t, 0.6, oneDay.SkillWeight, 1e-9)

	absent := metrics[3]
	require.Equal(t, 0, absent.AvailableDays)
	require.InDelta(t, 0.0, absent.PresenceRatio, 1e-9)
	require.Equal(t, int32(0), absent.FairShare)
	require.Equal(t, int32(2), absent.MaxAssignments)
}

func TestBuildMetricsFlooredFairShare(t *testing.T) {
	// 在场比例很低时目标也不能为零
	participants := []*domain.Participant{
		testParticipant(1, "一天", 0, 0),
	}

	metrics := buildMetrics(participants, 30, 3)
	require.Equal(t, int32(1), metrics[0].FairShare)
}

func TestBuildMetricsPriorAssignments(t *testing.T) {
	lastAssigned := time.Date(2025, 6, 28, 15, 30, 0, 0, time.UTC)
	p := testParticipant(1, "陈立", 1, 0, 1, 2)
	p.PriorAssignments = 2
	p.LastAssignedAt = &lastAssigned

	metrics := buildMetrics([]*domain.Participant{p}, 3, 9)
	m := metrics[0]

	require.Equal(t, int32(9), m.FairShare)
	require.Equal(t, int32(2), m.CurrentAssignments)
	require.Equal(t, int32(7), m.AssignmentDeficit)
	require.NotNil(t, m.LastAssignedDate)
	require.Equal(t, time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC), *m.LastAssignedDate)
}

func TestBuildMetricsEmpty(t *testing.T) {
	require.Empty(t, buildMetrics(nil, 5, 15))
}

func TestMaxAssignmentsFor(t *testing.T) {
	t.Run("fairShare+2 binds", func(t *testing.T) {
		require.Equal(t, int32(3), maxAssignmentsFor(1, 15, 3))
	})

	t.Run("per-capita binds", func(t *testing.T) {
		require.Equal(t, int32(7), maxAssignmentsFor(15, 15, 3))
	})

	t.Run("monopoly ceiling binds", func(t *testing.T) {
		require.Equal(t, int32(6), maxAssignmentsFor(10, 10, 2))
	})

	t.Run("single participant can cover all meals", func(t *testing.T) {
		// 只有一个人时不应用 60% 上限，否则这个人永远排不满所有餐次
		require.Equal(t, int32(11), maxAssignmentsFor(9, 9, 1))
	})

	t.Run("zero participants", func(t *testing.T) {
		require.Equal(t, int32(0), maxAssignmentsFor(0, 9, 0))
	})
}
