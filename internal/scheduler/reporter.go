package scheduler

import (
	"log/slog"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

// Reporter 用于向调用方上报排班过程中的事件，核心本身不直接打日志
type Reporter interface {
	SlotPlanned(slot *domain.MealSlot, candidate *TeamCandidate)
	SlotSkipped(slot *domain.MealSlot, reason string)
}

type noopReporter struct{}

func (noopReporter) SlotPlanned(*domain.MealSlot, *TeamCandidate) {}
func (noopReporter) SlotSkipped(*domain.MealSlot, string)         {}

// SlogReporter 将排班事件写入 slog
type SlogReporter struct {
	Logger *slog.Logger
}

func (r *SlogReporter) SlotPlanned(slot *domain.MealSlot, candidate *TeamCandidate) {
	names := make([]string, 0, len(candidate.Members))
	for _, m := range candidate.Members {
		names = append(names, m.Participant.Name)
	}
	r.Logger.Info("已安排餐次",
		slog.Int64("meal_slot_id", slot.ID),
		slog.String("date", slot.Date.Format("2006-01-02")),
		slog.String("meal_type", string(slot.MealType)),
		slog.Any("members", names),
		slog.Float64("score", candidate.Score),
	)
}

func (r *SlogReporter) SlotSkipped(slot *domain.MealSlot, reason string) {
	r.Logger.Warn("跳过餐次",
		slog.Int64("meal_slot_id", slot.ID),
		slog.String("date", slot.Date.Format("2006-01-02")),
		slog.String("meal_type", string(slot.MealType)),
		slog.String("reason", reason),
	)
}
