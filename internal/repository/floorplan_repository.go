package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// FloorPlanRepository handles database operations for generated floor plans
type FloorPlanRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewFloorPlanRepository creates a new floor plan repository
func NewFloorPlanRepository(db *sqlx.DB, logger *zap.Logger) *FloorPlanRepository {
	return &FloorPlanRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a generated floor plan
func (r *FloorPlanRepository) Create(ctx context.Context, plan *model.FloorPlan) error {
	query := `
		INSERT INTO floor_plans (id, user_id, prompt, rooms, sqft, style, image_url,
			storage_path, created_at)
		VALUES (:id, :user_id, :prompt, :rooms, :sqft, :style, :image_url,
			:storage_path, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, plan); err != nil {
		r.logger.Error("failed to create floor plan", zap.Error(err))
		return err
	}

	return nil
}

// GetByID retrieves a floor plan by ID
func (r *FloorPlanRepository) GetByID(ctx context.Context, id string) (*model.FloorPlan, error) {
	query := `SELECT * FROM floor_plans WHERE id = $1`

	var plan model.FloorPlan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get floor plan", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &plan, nil
}

// ListByUser retrieves a user's floor plans, newest first
func (r *FloorPlanRepository) ListByUser(ctx context.Context, userID string) ([]model.FloorPlan, error) {
	query := `SELECT * FROM floor_plans WHERE user_id = $1 ORDER BY created_at DESC`

	plans := []model.FloorPlan{}
	if err := r.db.SelectContext(ctx, &plans, query, userID); err != nil {
		r.logger.Error("failed to list floor plans", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return plans, nil
}
