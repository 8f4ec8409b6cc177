package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

// GenerateMealSlots 按行程的日期范围批量生成餐次槽位
func (h *Handler) GenerateMealSlots(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	var req struct {
		MealTypes []string `json:"mealTypes" validate:"required,min=1,dive,oneof=早餐 午餐 晚餐"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	mealTypes := make([]domain.MealType, len(req.MealTypes))
	for i, mt := range req.MealTypes {
		mealTypes[i] = domain.MealType(mt)
	}

	slots, err := h.repository.GenerateMealSlots(trip, mealTypes)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "生成餐次成功", slots)
}

func (h *Handler) GetTripMealSlots(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	slots, err := h.repository.GetTripMealSlots(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取餐次列表成功", slots)
}

func (h *Handler) DeleteMealSlot(w http.ResponseWriter, r *http.Request) {
	slotIDParam := chi.URLParam(r, "slotID")
	slotID, err := strconv.ParseInt(slotIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "餐次ID无效")
		return
	}

	if err := h.repository.DeleteMealSlot(slotID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除餐次成功", nil)
}
