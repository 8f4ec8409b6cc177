package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func testDay(offset int) time.Time {
	return time.Date(2025, 7, 1+offset, 0, 0, 0, 0, time.UTC)
}

func testTrip(days int) *domain.Trip {
	return &domain.Trip{
		ID:        1,
		Name:      "测试行程",
		Location:  "阳朔",
		StartDate: testDay(0),
		EndDate:   testDay(days - 1),
	}
}

func testParticipant(id int64, name string, pref int32, dayOffsets ...int) *domain.Participant {
	dates := make([]time.Time, 0, len(dayOffsets))
	for _, offset := range dayOffsets {
		dates = append(dates, testDay(offset))
	}

	return &domain.Participant{
		ID:                id,
		TripID:            1,
		Name:              name,
		CookingPreference: pref,
		IsActive:          true,
		AvailabilityDates: dates,
	}
}

func testSlots(days int, mealTypes ...domain.MealType) []*domain.MealSlot {
	slots := make([]*domain.MealSlot, 0, days*len(mealTypes))
	var id int64
	for d := 0; d < days; d++ {
		for _, mt := range mealTypes {
			id++
			slots = append(slots, &domain.MealSlot{ID: id, TripID: 1, Date: testDay(d), MealType: mt})
		}
	}
	return slots
}

func TestNewValidation(t *testing.T) {
	params := &Parameters{MaxCooksPerMeal: 1}

	_, err := New(params, nil, nil, nil, nil, nil, nil)
	require.EqualError(t, err, "行程不存在")

	_, err = New(nil, testTrip(2), nil, nil, nil, nil, nil)
	require.EqualError(t, err, "未指定排班参数")
}

func TestNewSortsSlotsChronologically(t *testing.T) {
	trip := testTrip(2)
	slots := []*domain.MealSlot{
		{ID: 1, TripID: 1, Date: testDay(1), MealType: domain.MealDinner},
		{ID: 2, TripID: 1, Date: testDay(0), MealType: domain.MealLunch},
		{ID: 3, TripID: 1, Date: testDay(1), MealType: domain.MealBreakfast},
		{ID: 4, TripID: 1, Date: testDay(0), MealType: domain.MealBreakfast},
	}

	s, err := New(&Parameters{MaxCooksPerMeal: 1}, trip, nil, slots, nil, nil, nil)
	require.NoError(t, err)

	ids := make([]int64, 0, len(s.slots))
	for _, slot := range s.slots {
		ids = append(ids, slot.ID)
	}
	require.Equal(t, []int64{4, 2, 3, 1}, ids)
}

func TestScheduleSingleParticipantCoversAllSlots(t *testing.T) {
	trip := testTrip(2)
	participants := []*domain.Participant{
		testParticipant(1, "陈立", 1, 0, 1),
	}
	slots := testSlots(2, domain.MealBreakfast, domain.MealLunch, domain.MealDinner)

	s, err := New(&Parameters{MaxCooksPerMeal: 1}, trip, participants, slots, nil, nil, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.Assignments, 6)
	require.Empty(t, result.Warnings)
	for _, a := range result.Assignments {
		require.Equal(t, int64(1), a.ParticipantID)
		require.Equal(t, domain.RoleCook, a.Role)
	}

	require.Len(t, result.Summaries, 1)
	require.Equal(t, int32(6), result.Summaries[0].TargetAssignments)
	require.Equal(t, int32(6), result.Summaries[0].FinalAssignments)
	require.InDelta(t, 1.0, result.Summaries[0].PresenceRatio, 1e-9)
}

func TestScheduleSkipsSlotsWithoutAvailableMembers(t *testing.T) {
	trip := testTrip(2)
	participants := []*domain.Participant{
		testParticipant(1, "陈立", 0, 0),
	}
	slots := testSlots(2, domain.MealLunch)

	s, err := New(&Parameters{MaxCooksPerMeal: 1}, trip, participants, slots, nil, nil, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.Assignments, 1)
	require.Equal(t, int64(1), result.Assignments[0].MealSlotID)
	require.Len(t, result.Warnings, 1)
	require.Contains(t, result.Warnings[0], "2025-07-02")
}

func TestScheduleAlternatesComplementaryPair(t *testing.T) {
	trip := testTrip(3)
	participants := []*domain.Participant{
		testParticipant(1, "陈立", 2, 0, 1, 2),
		testParticipant(2, "孙佳", -2, 0, 1, 2),
	}
	slots := testSlots(3, domain.MealLunch)

	s, err := New(&Parameters{MaxCooksPerMeal: 1}, trip, participants, slots, nil, nil, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	// 三餐两人，上限 floor(3*0.6)=1，第三餐没有可用队伍
	require.Len(t, result.Assignments, 2)
	require.Equal(t, int64(1), result.Assignments[0].ParticipantID)
	require.Equal(t, int64(2), result.Assignments[1].ParticipantID)
	require.Len(t, result.Warnings, 1)
}

func TestScheduleEqualityPriorityFavorsLaggingParticipant(t *testing.T) {
	newInputs := func() ([]*domain.Participant, []*domain.MealSlot) {
		enthusiast := testParticipant(1, "陈立", 2, 0, 1, 2, 3, 4, 5)
		enthusiast.PriorAssignments = 2
		lagging := testParticipant(2, "孙佳", -2, 0, 1, 2, 3, 4, 5)

		return []*domain.Participant{enthusiast, lagging}, testSlots(6, domain.MealLunch)
	}

	countFor := func(prioritizeEquality bool) (firstPicked int64, laggingCount int) {
		participants, slots := newInputs()
		s, err := New(&Parameters{MaxCooksPerMeal: 1, PrioritizeEqualParticipation: prioritizeEquality}, testTrip(6), participants, slots, nil, nil, nil)
		require.NoError(t, err)

		result, err := s.Schedule()
		require.NoError(t, err)
		require.NotEmpty(t, result.Assignments)

		for _, a := range result.Assignments {
			if a.ParticipantID == 2 {
				laggingCount++
			}
		}
		return result.Assignments[0].ParticipantID, laggingCount
	}

	defaultFirst, defaultCount := countFor(false)
	equalityFirst, equalityCount := countFor(true)

	// 默认权重下积极的成员先被选中，均衡优先时落后的成员先被选中
	require.Equal(t, int64(1), defaultFirst)
	require.Equal(t, int64(2), equalityFirst)
	require.GreaterOrEqual(t, equalityCount, defaultCount)
}

func TestScheduleZeroAvailabilityParticipant(t *testing.T) {
	trip := testTrip(2)
	participants := []*domain.Participant{
		testParticipant(1, "陈立", 0, 0, 1),
		testParticipant(2, "缺席", 2),
	}
	slots := testSlots(2, domain.MealLunch)

	s, err := New(&Parameters{MaxCooksPerMeal: 1}, trip, participants, slots, nil, nil, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	for _, a := range result.Assignments {
		require.NotEqual(t, int64(2), a.ParticipantID)
	}

	var absent *domain.ScheduleSummary
	for _, summary := range result.Summaries {
		if summary.ParticipantID == 2 {
			absent = summary
		}
	}
	require.NotNil(t, absent)
	require.Equal(t, int32(0), absent.TargetAssignments)
	require.Equal(t, int32(0), absent.FinalAssignments)
}

func TestScheduleDeterministic(t *testing.T) {
	newScheduler := func() *Scheduler {
		participants := []*domain.Participant{
			testParticipant(1, "陈立", 2, 0, 1, 2),
			testParticipant(2, "王晓梅", 1, 0, 2),
			testParticipant(3, "李强", 0, 1, 2),
			testParticipant(4, "孙佳", -2, 0, 1),
		}
		slots := testSlots(3, domain.MealBreakfast, domain.MealLunch, domain.MealDinner)

		s, err := New(&Parameters{MaxCooksPerMeal: 2, MaxHelpersPerMeal: 1}, testTrip(3), participants, slots, nil, nil, nil)
		require.NoError(t, err)
		return s
	}

	first, err := newScheduler().Schedule()
	require.NoError(t, err)
	second, err := newScheduler().Schedule()
	require.NoError(t, err)

	require.Equal(t, len(first.Assignments), len(second.Assignments))
	for i := range first.Assignments {
		require.Equal(t, first.Assignments[i].MealSlotID, second.Assignments[i].MealSlotID)
		require.Equal(t, first.Assignments[i].ParticipantID, second.Assignments[i].ParticipantID)
		require.Equal(t, first.Assignments[i].Role, second.Assignments[i].Role)
	}
	require.Equal(t, first.Warnings, second.Warnings)
}

func TestScheduleAutoAssignsRecipes(t *testing.T) {
	trip := testTrip(2)
	participants := []*domain.Participant{
		testParticipant(1, "陈立", 1, 0, 1),
	}
	slots := testSlots(2, domain.MealBreakfast, domain.MealDinner)
	recipes := []*domain.Recipe{
		{ID: 101, TripID: 1, Name: "啤酒鱼"},
		{ID: 102, TripID: 1, Name: "番茄炒蛋"},
	}

	params := &Parameters{MaxCooksPerMeal: 1, AutoAssignRecipes: true, RecipesPerMeal: 1}
	s, err := New(params, trip, participants, slots, recipes, nil, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.RecipeAssignments, 4)
	recipeIDs := make([]int64, 0, 4)
	for _, ra := range result.RecipeAssignments {
		recipeIDs = append(recipeIDs, ra.RecipeID)
	}
	// 全局游标在槽位间轮转菜谱
	require.Equal(t, []int64{101, 102, 101, 102}, recipeIDs)

	// 所有槽位都已有菜谱时再次运行不会新增任何安排
	rerun, err := New(params, trip, participants, slots, recipes, result.RecipeAssignments, nil)
	require.NoError(t, err)
	rerunResult, err := rerun.Schedule()
	require.NoError(t, err)
	require.Empty(t, rerunResult.RecipeAssignments)
}

func TestScheduleSkipsSlotsThatAlreadyHaveEnoughRecipes(t *testing.T) {
	trip := testTrip(2)
	participants := []*domain.Participant{
		testParticipant(1, "陈立", 1, 0, 1),
	}
	slots := testSlots(2, domain.MealLunch)
	recipes := []*domain.Recipe{
		{ID: 101, TripID: 1, Name: "啤酒鱼"},
		{ID: 102, TripID: 1, Name: "番茄炒蛋"},
	}
	existing := []*domain.RecipeAssignment{
		{MealSlotID: 1, RecipeID: 102},
	}

	params := &Parameters{MaxCooksPerMeal: 1, AutoAssignRecipes: true, RecipesPerMeal: 1}
	s, err := New(params, trip, participants, slots, recipes, existing, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.RecipeAssignments, 1)
	require.Equal(t, int64(2), result.RecipeAssignments[0].MealSlotID)
}
