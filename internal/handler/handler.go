package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/config"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", h.CreateTrip)
			r.Get("/", h.GetAllTrips)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.trip)
				r.Get("/", h.GetTrip)
				r.Patch("/", h.UpdateTrip)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteTrip)

				r.Route("/participants", func(r chi.Router) {
					r.Post("/", h.CreateParticipant)
					r.Get("/", h.GetTripParticipants)
					r.Route("/{participantID}", func(r chi.Router) {
						r.Use(h.participant)
						r.Get("/", h.GetParticipant)
						r.Patch("/", h.UpdateParticipant)
						r.Delete("/", h.DeleteParticipant)
						r.With(h.myInfo).Post("/invite", h.InviteParticipant)
					})
				})

				r.Route("/meal-slots", func(r chi.Router) {
					r.Post("/generate", h.GenerateMealSlots)
					r.Get("/", h.GetTripMealSlots)
					r.Delete("/{slotID}", h.DeleteMealSlot)
				})

				r.Route("/recipes", func(r chi.Router) {
					r.Post("/", h.CreateRecipe)
					r.Get("/", h.GetTripRecipes)
					r.Delete("/{recipeID}", h.DeleteRecipe)
				})

				r.Route("/schedule", func(r chi.Router) {
					r.Get("/", h.GetSchedule)
					r.Post("/", h.SubmitSchedule)
					r.Post("/generate", h.GenerateSchedule)
				})
			})
		})
	})
}
