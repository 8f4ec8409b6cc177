package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func (h *Handler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	var req struct {
		Name              string      `json:"name" validate:"required"`
		Email             string      `json:"email" validate:"required,email"`
		CookingPreference int32       `json:"cookingPreference" validate:"min=-2,max=2"`
		AvailabilityDates []time.Time `json:"availabilityDates"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 空闲日期必须落在行程的日期范围内
	for _, date := range req.AvailabilityDates {
		day := domain.TruncateToDay(date)
		if day.Before(domain.TruncateToDay(trip.StartDate)) || day.After(domain.TruncateToDay(trip.EndDate)) {
			h.errorResponse(w, r, "空闲日期超出了行程的日期范围")
			return
		}
	}

	p := &domain.Participant{
		TripID:            trip.ID,
		Name:              req.Name,
		Email:             req.Email,
		CookingPreference: req.CookingPreference,
		AvailabilityDates: req.AvailabilityDates,
	}

	if err := h.repository.CreateParticipant(p); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "participants_trip_id_email_key":
				h.errorResponse(w, r, "该邮箱已经加入了这个行程")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "添加成员成功", p)
}

func (h *Handler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)

	h.successResponse(w, r, "获取成员成功", p)
}

func (h *Handler) GetTripParticipants(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)

	participants, err := h.repository.GetTripParticipants(trip.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取行程成员成功", participants)
}

func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)

	var req struct {
		Name              *string      `json:"name"`
		Email             *string      `json:"email" validate:"omitempty,email"`
		CookingPreference *int32       `json:"cookingPreference" validate:"omitempty,min=-2,max=2"`
		IsActive          *bool        `json:"isActive"`
		AvailabilityDates *[]time.Time `json:"availabilityDates"`
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
		p.Name = *req.Name
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.CookingPreference != nil {
		p.CookingPreference = *req.CookingPreference
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.AvailabilityDates != nil {
		for _, date := range *req.AvailabilityDates {
			day := domain.TruncateToDay(date)
			if day.Before(domain.TruncateToDay(trip.StartDate)) || day.After(domain.TruncateToDay(trip.EndDate)) {
				h.errorResponse(w, r, "空闲日期超出了行程的日期范围")
				return
			}
		}
		p.AvailabilityDates = *req.AvailabilityDates
	}

	if err := h.repository.UpdateParticipant(p); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新成员成功", p)
}

func (h *Handler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)

	if err := h.repository.DeleteParticipant(p.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除成员成功", nil)
}

// InviteParticipant 给成员发送行程邀请邮件
func (h *Handler) InviteParticipant(w http.ResponseWriter, r *http.Request) {
	trip := r.Context().Value(TripCtx).(*domain.Trip)
	p := r.Context().Value(ParticipantCtx).(*domain.Participant)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	mailMessage := domain.MailMessage{
		Type: "trip_invite",
		To:   p.Email,
		Data: domain.TripInviteMailData{
			ParticipantName: p.Name,
			TripName:        trip.Name,
			TripLocation:    trip.Location,
			InviterName:     myInfo.FullName,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "邀请邮件已发送", nil)
}
