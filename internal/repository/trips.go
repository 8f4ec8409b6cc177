package repository

import (
	"context"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func (r *Repository) CreateTrip(trip *domain.Trip) error {
	query := `
		INSERT INTO trips (name, description, location, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{trip.Name, trip.Description, trip.Location, trip.StartDate, trip.EndDate}
	dst := []any{&trip.ID, &trip.CreatedAt, &trip.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTripByID(id int64) (*domain.Trip, error) {
	query := `
		SELECT name, description, location, start_date, end_date, created_at, version
		FROM trips
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	trip := &domain.Trip{
		ID: id,
	}

	dst := []any{&trip.Name, &trip.Description, &trip.Location, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return trip, nil
}

func (r *Repository) GetAllTrips() ([]*domain.Trip, error) {
	query := `
		SELECT id, name, description, location, start_date, end_date, created_at, version
		FROM trips
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []*domain.Trip{}
	for rows.Next() {
		var trip domain.Trip
		dst := []any{&trip.ID, &trip.Name, &trip.Description, &trip.Location, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *Repository) UpdateTrip(trip *domain.Trip) error {
	// 最好不要让用户更新行程的日期范围，不然已有的餐次和空闲日期都要跟着调整
	query := `
		UPDATE trips
		SET
			name = $1,
			description = $2,
			location = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{trip.Name, trip.Description, trip.Location, trip.ID, trip.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&trip.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTrip(id int64) error {
	query := `
		DELETE FROM trips WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
