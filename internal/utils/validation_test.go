package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func day(offset int) time.Time {
	return time.Date(2025, 7, 1+offset, 0, 0, 0, 0, time.UTC)
}

func TestValidateTripDates(t *testing.T) {
	valid := &domain.Trip{StartDate: day(0), EndDate: day(3)}
	require.NoError(t, ValidateTripDates(valid))

	sameDay := &domain.Trip{StartDate: day(0), EndDate: day(0)}
	require.NoError(t, ValidateTripDates(sameDay))

	reversed := &domain.Trip{StartDate: day(3), EndDate: day(0)}
	require.Error(t, ValidateTripDates(reversed))
}

func TestValidateAssignmentsWithAvailability(t *testing.T) {
	slots := []*domain.MealSlot{
		{ID: 1, Date: day(0), MealType: domain.MealLunch},
		{ID: 2, Date: day(1), MealType: domain.MealLunch},
	}
	participants := []*domain.Participant{
		{ID: 1, Name: "陈立", AvailabilityDates: []time.Time{day(0)}},
	}

	ok := []*domain.Assignment{
		{MealSlotID: 1, ParticipantID: 1, Role: domain.RoleCook},
	}
	require.NoError(t, ValidateAssignmentsWithAvailability(ok, slots, participants))

	unavailable := []*domain.Assignment{
		{MealSlotID: 2, ParticipantID: 1, Role: domain.RoleCook},
	}
	require.Error(t, ValidateAssignmentsWithAvailability(unavailable, slots, participants))

	unknownSlot := []*domain.Assignment{
		{MealSlotID: 99, ParticipantID: 1, Role: domain.RoleCook},
	}
	require.Error(t, ValidateAssignmentsWithAvailability(unknownSlot, slots, participants))

	unknownParticipant := []*domain.Assignment{
		{MealSlotID: 1, ParticipantID: 99, Role: domain.RoleCook},
	}
	require.Error(t, ValidateAssignmentsWithAvailability(unknownParticipant, slots, participants))
}

func TestValidateNoDuplicateParticipant(t *testing.T) {
	ok := []*domain.Assignment{
		{MealSlotID: 1, ParticipantID: 1, Role: domain.RoleCook},
		{MealSlotID: 1, ParticipantID: 2, Role: domain.RoleHelper},
		{MealSlotID: 2, ParticipantID: 1, Role: domain.RoleCook},
	}
	require.NoError(t, ValidateNoDuplicateParticipant(ok))

	duplicated := []*domain.Assignment{
		{MealSlotID: 1, ParticipantID: 1, Role: domain.RoleCook},
		{MealSlotID: 1, ParticipantID: 1, Role: domain.RoleHelper},
	}
	require.Error(t, ValidateNoDuplicateParticipant(duplicated))
}

func TestValidateAssignmentsWithCapacity(t *testing.T) {
	assignments := []*domain.Assignment{
		{MealSlotID: 1, ParticipantID: 1, Role: domain.RoleCook},
		{MealSlotID: 1, ParticipantID: 2, Role: domain.RoleCook},
		{MealSlotID: 1, ParticipantID: 3, Role: domain.RoleHelper},
	}

	require.NoError(t, ValidateAssignmentsWithCapacity(assignments, 2, 1))
	require.Error(t, ValidateAssignmentsWithCapacity(assignments, 1, 1))
	require.Error(t, ValidateAssignmentsWithCapacity(assignments, 2, 0))

	illegalRole := []*domain.Assignment{
		{MealSlotID: 1, ParticipantID: 1, Role: domain.AssignmentRole("观众")},
	}
	require.Error(t, ValidateAssignmentsWithCapacity(illegalRole, 2, 1))
}
