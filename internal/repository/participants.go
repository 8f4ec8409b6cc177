package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func (r *Repository) CreateParticipant(p *domain.Participant) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO participants (trip_id, name, email, cooking_preference)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	args := []any{p.TripID, p.Name, p.Email, p.CookingPreference}
	dst := []any{&p.ID, &p.IsActive, &p.CreatedAt, &p.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	query = `
		INSERT INTO participant_availability (participant_id, available_date)
		VALUES ($1, $2)
	`
	for _, date := range p.AvailabilityDates {
		if _, err := tx.ExecContext(ctx, query, p.ID, domain.TruncateToDay(date)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetParticipantByID(id int64) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT trip_id, name, email, cooking_preference, is_active, created_at, version
		FROM participants
		WHERE id = $1
	`

	p := &domain.Participant{
		ID: id,
	}

	dst := []any{&p.TripID, &p.Name, &p.Email, &p.CookingPreference, &p.IsActive, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	query = `
		SELECT available_date FROM participant_availability WHERE participant_id = $1 ORDER BY available_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.AvailabilityDates = make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		p.AvailabilityDates = append(p.AvailabilityDates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

// GetTripParticipants 获取行程的所有成员，包括空闲日期和从已持久化的分配记录统计出的历史信息
func (r *Repository) GetTripParticipants(tripID int64) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			p.id,
			p.name,
			p.email,
			p.cooking_preference,
			p.is_active,
			p.created_at,
			p.version,
			pa.available_date
		FROM participants p
		LEFT JOIN participant_availability pa ON p.id = pa.participant_id
		WHERE p.trip_id = $1
		ORDER BY p.id, pa.available_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	participantMap := make(map[int64]*domain.Participant)

	for rows.Next() {
		var row struct {
			id                int64
			name              string
			email             string
			cookingPreference int32
			isActive          bool
			createdAt         time.Time
			version           int32
			availableDate     sql.NullTime
		}

		dst := []any{
			&row.id,
			&row.name,
			&row.email,
			&row.cookingPreference,
			&row.isActive,
			&row.createdAt,
			&row.version,
			&row.availableDate,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		p, exists := participantMap[row.id]
		if !exists {
			p = &domain.Participant{
				ID:                row.id,
				TripID:            tripID,
				Name:              row.name,
				Email:             row.email,
				CookingPreference: row.cookingPreference,
				IsActive:          row.isActive,
				AvailabilityDates: make([]time.Time, 0),
				CreatedAt:         row.createdAt,
				Version:           row.version,
			}
			participantMap[row.id] = p
			participants = append(participants, p)
		}

		if row.availableDate.Valid {
			p.AvailabilityDates = append(p.AvailabilityDates, row.availableDate.Time)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 统计每个成员已有的分配次数和最近一次被分配的日期
	query = `
		SELECT a.participant_id, COUNT(*), MAX(ms.date)
		FROM assignments a
		JOIN meal_slots ms ON a.meal_slot_id = ms.id
		WHERE ms.trip_id = $1
		GROUP BY a.participant_id
	`

	statRows, err := r.dbpool.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer statRows.Close()

	for statRows.Next() {
		var participantID int64
		var count int32
		var lastDate time.Time
		if err := statRows.Scan(&participantID, &count, &lastDate); err != nil {
			return nil, err
		}

		if p, exists := participantMap[participantID]; exists {
			p.PriorAssignments = count
			p.LastAssignedAt = &lastDate
		}
	}

	if err := statRows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *Repository) UpdateParticipant(p *domain.Participant) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE participants
		SET
			name = $1,
			email = $2,
			cooking_preference = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	args := []any{p.Name, p.Email, p.CookingPreference, p.IsActive, p.ID, p.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&p.Version); err != nil {
		return err
	}

	// 空闲日期直接整体替换，逐条对比不值得
	query = `
		DELETE FROM participant_availability WHERE participant_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, p.ID); err != nil {
		return err
	}

	query = `
		INSERT INTO participant_availability (participant_id, available_date)
		VALUES ($1, $2)
	`
	for _, date := range p.AvailabilityDates {
		if _, err := tx.ExecContext(ctx, query, p.ID, domain.TruncateToDay(date)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteParticipant(id int64) error {
	query := `
		DELETE FROM participants WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
