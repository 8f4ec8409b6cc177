package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	var req struct {
		Name        string `json:"name" validate:"required,max=50"`
		Description string `json:"description" validate:"max=200"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	recipe := &domain.Recipe{
		TripID:      trip.ID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.repository.CreateRecipe(recipe); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建菜谱成功", recipe)
}

func (h *Handler) GetTripRecipes(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	recipes, err := h.repository.GetTripRecipes(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取菜谱列表成功", recipes)
}

func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	recipeIDParam := chi.URLParam(r, "recipeID")
	recipeID, err := strconv.ParseInt(recipeIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "菜谱ID无效")
		return
	}

	if err := h.repository.DeleteRecipe(recipeID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除菜谱成功", nil)
}
