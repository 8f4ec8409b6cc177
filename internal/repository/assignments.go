package repository

import (
	"context"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

/**
 * ReplaceTripAssignments 用新的排班计划整体替换行程已有的分配记录
 * 删除和插入在同一个事务中完成，读取方不会看到只删了一半或插了一半的中间状态；
 * 菜谱安排用 ON CONFLICT DO NOTHING 合并，重复提交相同的安排不会产生重复记录
 */
func (r *Repository) ReplaceTripAssignments(tripID int64, assignments []*domain.Assignment, recipeAssignments []*domain.RecipeAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先将之前的分配记录删除
	query := `
		DELETE FROM assignments
		WHERE meal_slot_id IN (SELECT id FROM meal_slots WHERE trip_id = $1)
	`
	if _, err := tx.ExecContext(ctx, query, tripID); err != nil {
		return err
	}

	query = `
		INSERT INTO assignments (meal_slot_id, participant_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	for _, a := range assignments {
		if err := tx.QueryRowContext(ctx, query, a.MealSlotID, a.ParticipantID, a.Role).Scan(&a.ID, &a.CreatedAt); err != nil {
			return err
		}
	}

	query = `
		INSERT INTO recipe_assignments (meal_slot_id, recipe_id)
		VALUES ($1, $2)
		ON CONFLICT (meal_slot_id, recipe_id) DO NOTHING
	`

	for _, ra := range recipeAssignments {
		if _, err := tx.ExecContext(ctx, query, ra.MealSlotID, ra.RecipeID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTripAssignments(tripID int64) ([]*domain.Assignment, error) {
	query := `
		SELECT a.id, a.meal_slot_id, a.participant_id, a.role, a.created_at
		FROM assignments a
		JOIN meal_slots ms ON a.meal_slot_id = ms.id
		WHERE ms.trip_id = $1
		ORDER BY ms.date, ms.meal_type, a.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a := &domain.Assignment{}
		dst := []any{&a.ID, &a.MealSlotID, &a.ParticipantID, &a.Role, &a.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
