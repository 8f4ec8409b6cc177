package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scoreMetrics 构造一个只关心打分字段的工作状态
func scoreMetrics(pref int32, deficit int32, current int32, max int32, lastAssigned *time.Time) *ParticipantMetrics {
	return &ParticipantMetrics{
		Participant:        testParticipant(1, "成员", pref, 0),
		CurrentAssignments: current,
		AssignmentDeficit:  deficit,
		MaxAssignments:     max,
		LastAssignedDate:   lastAssigned,
		SkillWeight:        skillWeightTable[pref],
	}
}

func TestScoreTeamDisqualifiesCappedMembers(t *testing.T) {
	capped := scoreMetrics(2, 0, 3, 3, nil)
	fresh := scoreMetrics(0, 2, 0, 5, nil)

	require.Equal(t, float64(DisqualifiedScore), scoreTeam([]*ParticipantMetrics{capped}, testDay(0), false))
	require.Equal(t, float64(DisqualifiedScore), scoreTeam([]*ParticipantMetrics{fresh, capped}, testDay(0), false))
	require.Greater(t, scoreTeam([]*ParticipantMetrics{fresh}, testDay(0), false), float64(DisqualifiedScore))
}

func TestSkillScore(t *testing.T) {
	t.Run("complementary pair", func(t *testing.T) {
		members := []*ParticipantMetrics{
			scoreMetrics(2, 1, 0, 5, nil),
			scoreMetrics(-2, 1, 0, 5, nil),
		}
		// 100 + min(30, variance([2,-2])*10)
		require.InDelta(t, 130.0, skillScore(members), 1e-9)
	})

	t.Run("enthusiast only", func(t *testing.T) {
		members := []*ParticipantMetrics{scoreMetrics(2, 1, 0, 5, nil)}
		require.InDelta(t, 70.0, skillScore(members), 1e-9)
	})

	t.Run("all reluctant", func(t *testing.T) {
		members := []*ParticipantMetrics{
			scoreMetrics(-1, 1, 0, 5, nil),
			scoreMetrics(-2, 1, 0, 5, nil),
		}
		// -50 + variance([-1,-2])*10
		require.InDelta(t, -47.5, skillScore(members), 1e-9)
	})

	t.Run("neutral", func(t *testing.T) {
		members := []*ParticipantMetrics{scoreMetrics(0, 1, 0, 5, nil)}
		require.InDelta(t, 0.0, skillScore(members), 1e-9)
	})
}

func TestEquityScore(t *testing.T) {
	t.Run("deficit rewarded", func(t *testing.T) {
		members := []*ParticipantMetrics{scoreMetrics(0, 2, 0, 10, nil)}
		require.InDelta(t, 70.0, equityScore(members, false), 1e-9)
		require.InDelta(t, 120.0, equityScore(members, true), 1e-9)
	})

	t.Run("overshoot punished", func(t *testing.T) {
		members := []*ParticipantMetrics{scoreMetrics(0, -1, 5, 10, nil)}
		require.InDelta(t, -80.0, equityScore(members, false), 1e-9)
		require.InDelta(t, -120.0, equityScore(members, true), 1e-9)
	})

	t.Run("near cap penalties", func(t *testing.T) {
		remaining1 := []*ParticipantMetrics{scoreMetrics(0, 1, 4, 5, nil)}
		require.InDelta(t, 35.0-50.0, equityScore(remaining1, false), 1e-9)

		remaining2 := []*ParticipantMetrics{scoreMetrics(0, 1, 3, 5, nil)}
		require.InDelta(t, 35.0-25.0, equityScore(remaining2, false), 1e-9)
	})
}

func TestTemporalScore(t *testing.T) {
	slotDate := testDay(10)

	daysAgo := func(days int) *time.Time {
		d := testDay(10 - days)
		return &d
	}

	tests := []struct {
		name     string
		last     *time.Time
		expected float64
	}{
		{"same day", daysAgo(0), -100},
		{"yesterday", daysAgo(1), -80},
		{"two days ago", daysAgo(2), -30},
		{"three days ago", daysAgo(3), 20},
		{"five days ago", daysAgo(5), 20},
		{"six days ago", daysAgo(6), 18},
		{"ten days ago", daysAgo(10), 30},
		{"long rest capped", daysAgo(20), 40},
		{"never assigned", nil, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := []*ParticipantMetrics{scoreMetrics(0, 1, 0, 5, tt.last)}
			require.InDelta(t, tt.expected, temporalScore(members, slotDate), 1e-9)
		})
	}
}

func TestScoreTeamWeighting(t *testing.T) {
	// 单人队伍：skill=0, equity=35, temporal=40
	members := []*ParticipantMetrics{scoreMetrics(0, 1, 0, 10, nil)}

	require.InDelta(t, 35*0.35+40*0.25, scoreTeam(members, testDay(0), false), 1e-9)
	require.InDelta(t, 60*0.60+40*0.20, scoreTeam(members, testDay(0), true), 1e-9)
}

func TestVariance(t *testing.T) {
	require.InDelta(t, 0.0, variance(nil), 1e-9)
	require.InDelta(t, 0.0, variance([]float64{1, 1, 1}), 1e-9)
	require.InDelta(t, 4.0, variance([]float64{2, -2}), 1e-9)
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 0, daysBetween(testDay(3), testDay(3)))
	require.Equal(t, 2, daysBetween(testDay(1), testDay(3)))
	require.Equal(t, -1, daysBetween(testDay(3), testDay(2)))

	// 同一天的不同时刻按同一天计算
	morning := time.Date(2025, 7, 4, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 7, 4, 22, 0, 0, 0, time.UTC)
	require.Equal(t, 0, daysBetween(morning, evening))
}
