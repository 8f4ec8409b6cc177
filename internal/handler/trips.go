package handler

import (
	"net/http"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/utils"
)

func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string    `json:"name" validate:"required"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		StartDate   time.Time `json:"startDate" validate:"required"`
		EndDate     time.Time `json:"endDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	trip := &domain.Trip{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   domain.TruncateToDay(req.StartDate),
		EndDate:     domain.TruncateToDay(req.EndDate),
	}

	// 检查行程的日期是否合法
	if err := utils.ValidateTripDates(trip); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateTrip(trip); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建行程成功", trip)
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	h.successResponse(w, r, "获取行程成功", trip)
}

func (h *Handler) GetAllTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.repository.GetAllTrips()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有行程成功", trips)
}

func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Location    *string `json:"location"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.Location != nil {
		trip.Location = *req.Location
	}

	if err := h.repository.UpdateTrip(trip); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新行程成功", trip)
}

func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	if err := h.repository.DeleteTrip(trip.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除行程成功", nil)
}
