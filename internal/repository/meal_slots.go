package repository

import (
	"context"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

// GenerateMealSlots 为行程的每一天创建指定餐次的槽位，已存在的（日期, 餐次）组合会被跳过
func (r *Repository) GenerateMealSlots(trip *domain.Trip, mealTypes []domain.MealType) ([]*domain.MealSlot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO meal_slots (trip_id, date, meal_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id, date, meal_type) DO NOTHING
		RETURNING id, created_at, version
	`

	slots := make([]*domain.MealSlot, 0)
	start := domain.TruncateToDay(trip.StartDate)
	end := domain.TruncateToDay(trip.EndDate)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for _, mealType := range mealTypes {
			slot := &domain.MealSlot{
				TripID:   trip.ID,
				Date:     date,
				MealType: mealType,
			}

			rows, err := tx.QueryContext(ctx, query, trip.ID, date, mealType)
			if err != nil {
				return nil, err
			}

			// ON CONFLICT DO NOTHING 时没有返回行
			if rows.Next() {
				if err := rows.Scan(&slot.ID, &slot.CreatedAt, &slot.Version); err != nil {
					rows.Close()
					return nil, err
				}
				slots = append(slots, slot)
			}

			if err := rows.Err(); err != nil {
				rows.Close()
				return nil, err
			}
			rows.Close()
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *Repository) GetTripMealSlots(tripID int64) ([]*domain.MealSlot, error) {
	query := `
		SELECT id, date, meal_type, created_at, version
		FROM meal_slots
		WHERE trip_id = $1
		ORDER BY date, meal_type
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.MealSlot, 0)
	for rows.Next() {
		slot := &domain.MealSlot{
			TripID: tripID,
		}
		dst := []any{&slot.ID, &slot.Date, &slot.MealType, &slot.CreatedAt, &slot.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *Repository) DeleteMealSlot(id int64) error {
	query := `
		DELETE FROM meal_slots WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
