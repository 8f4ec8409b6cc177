package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/scheduler"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/utils"
)

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	assignments, err := h.repository.GetTripAssignments(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	recipeAssignments, err := h.repository.GetTripRecipeAssignments(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班表成功", map[string]any{
		"assignments":       assignments,
		"recipeAssignments": recipeAssignments,
	})
}

/**
 * GenerateSchedule 为行程自动生成一份新的排班表并整体落库
 * 生成前会尝试获取该行程在 redis 上的锁，避免多个管理员同时触发重排；
 * 锁带有过期时间，即使进程中途退出也不会一直卡住后来的请求
 */
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	var req struct {
		MaxCooksPerMeal              *int `json:"maxCooksPerMeal" validate:"omitempty,min=1,max=10"`
		MaxHelpersPerMeal            *int `json:"maxHelpersPerMeal" validate:"omitempty,min=0,max=10"`
		PrioritizeEqualParticipation bool `json:"prioritizeEqualParticipation"`
		AutoAssignRecipes            bool `json:"autoAssignRecipes"`
		RecipesPerMeal               *int `json:"recipesPerMeal" validate:"omitempty,min=1,max=10"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 没有显式指定的参数使用配置中的默认值
	parameters := &scheduler.Parameters{
		MaxCooksPerMeal:              h.config.Scheduler.MaxCooksPerMeal,
		MaxHelpersPerMeal:            h.config.Scheduler.MaxHelpersPerMeal,
		PrioritizeEqualParticipation: req.PrioritizeEqualParticipation,
		AutoAssignRecipes:            req.AutoAssignRecipes,
		RecipesPerMeal:               h.config.Scheduler.RecipesPerMeal,
	}
	if req.MaxCooksPerMeal != nil {
		parameters.MaxCooksPerMeal = *req.MaxCooksPerMeal
	}
	if req.MaxHelpersPerMeal != nil {
		parameters.MaxHelpersPerMeal = *req.MaxHelpersPerMeal
	}
	if req.RecipesPerMeal != nil {
		parameters.RecipesPerMeal = *req.RecipesPerMeal
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	lockKey := fmt.Sprintf("schedule_lock_trip_%d", trip.ID)
	locked, err := h.redisClient.SetNX(ctx, lockKey, 1, time.Duration(h.config.Scheduler.LockExpiration)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "该行程正在排班中，请稍后再试")
		return
	}
	defer func() {
		if err := h.redisClient.Del(context.Background(), lockKey).Err(); err != nil {
			slog.Error("释放排班锁失败", "key", lockKey, "error", err)
		}
	}()

	participants, err := h.repository.GetTripParticipants(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 排班只考虑仍在行程中的成员
	active := make([]*domain.Participant, 0, len(participants))
	for _, p := range participants {
		if p.IsActive {
			active = append(active, p)
		}
	}

	slots, err := h.repository.GetTripMealSlots(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(slots) == 0 {
		h.errorResponse(w, r, "该行程还没有生成餐次，请先生成餐次")
		return
	}

	recipes, err := h.repository.GetTripRecipes(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	recipeAssignments, err := h.repository.GetTripRecipeAssignments(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	s, err := scheduler.New(parameters, trip, active, slots, recipes, recipeAssignments, &scheduler.SlogReporter{Logger: slog.Default()})
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	result, err := s.Schedule()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.ReplaceTripAssignments(trip.ID, result.Assignments, result.RecipeAssignments); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "生成排班表成功", map[string]any{
		"assignments":       result.Assignments,
		"recipeAssignments": result.RecipeAssignments,
		"summaries":         result.Summaries,
		"warnings":          result.Warnings,
	})
}

// SubmitSchedule 整体提交一份手工编辑过的排班表，校验通过后替换行程已有的分配记录
func (h *Handler) SubmitSchedule(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	var req struct {
		Assignments []struct {
			MealSlotID    int64  `json:"mealSlotID" validate:"required"`
			ParticipantID int64  `json:"participantID" validate:"required"`
			Role          string `json:"role" validate:"required,oneof=主厨 帮厨"`
		} `json:"assignments" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignments := make([]*domain.Assignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, &domain.Assignment{
			MealSlotID:    a.MealSlotID,
			ParticipantID: a.ParticipantID,
			Role:          domain.AssignmentRole(a.Role),
		})
	}

	participants, err := h.repository.GetTripParticipants(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slots, err := h.repository.GetTripMealSlots(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := utils.ValidateAssignmentsWithAvailability(assignments, slots, participants); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if err := utils.ValidateNoDuplicateParticipant(assignments); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if err := utils.ValidateAssignmentsWithCapacity(assignments, h.config.Scheduler.MaxCooksPerMeal, h.config.Scheduler.MaxHelpersPerMeal); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.ReplaceTripAssignments(trip.ID, assignments, nil); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交排班表成功", assignments)
}
