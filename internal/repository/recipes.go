package repository

import (
	"context"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func (r *Repository) CreateRecipe(recipe *domain.Recipe) error {
	query := `
		INSERT INTO recipes (trip_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{recipe.TripID, recipe.Name, recipe.Description}
	dst := []any{&recipe.ID, &recipe.CreatedAt, &recipe.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTripRecipes(tripID int64) ([]*domain.Recipe, error) {
	query := `
		SELECT id, name, description, created_at, version
		FROM recipes
		WHERE trip_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]*domain.Recipe, 0)
	for rows.Next() {
		recipe := &domain.Recipe{
			TripID: tripID,
		}
		dst := []any{&recipe.ID, &recipe.Name, &recipe.Description, &recipe.CreatedAt, &recipe.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (r *Repository) DeleteRecipe(id int64) error {
	query := `
		DELETE FROM recipes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTripRecipeAssignments(tripID int64) ([]*domain.RecipeAssignment, error) {
	query := `
		SELECT ra.id, ra.meal_slot_id, ra.recipe_id, ra.created_at
		FROM recipe_assignments ra
		JOIN meal_slots ms ON ra.meal_slot_id = ms.id
		WHERE ms.trip_id = $1
		ORDER BY ms.date, ms.meal_type, ra.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ras := make([]*domain.RecipeAssignment, 0)
	for rows.Next() {
		ra := &domain.RecipeAssignment{}
		dst := []any{&ra.ID, &ra.MealSlotID, &ra.RecipeID, &ra.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		ras = append(ras, ra)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ras, nil
}
