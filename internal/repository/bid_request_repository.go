package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// BidRequestRepository handles database operations for bid requests
type BidRequestRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBidRequestRepository creates a new bid request repository
func NewBidRequestRepository(db *sqlx.DB, logger *zap.Logger) *BidRequestRepository {
	return &BidRequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new bid request
func (r *BidRequestRepository) Create(ctx context.Context, req *model.BidRequest) error {
	query := `
		INSERT INTO bid_requests (id, user_id, project_id, title, description, category,
			quantity, unit, budget, delivery_location, delivery_deadline, status, created_at, updated_at)
		VALUES (:id, :user_id, :project_id, :title, :description, :category,
			:quantity, :unit, :budget, :delivery_location, :delivery_deadline, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		r.logger.Error("failed to create bid request", zap.Error(err))
		return err
	}

	return nil
}

// GetByID retrieves a bid request by ID
func (r *BidRequestRepository) GetByID(ctx context.Context, id string) (*model.BidRequest, error) {
	query := `SELECT * FROM bid_requests WHERE id = $1`

	var req model.BidRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get bid request", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &req, nil
}

// ListOpen retrieves all open bid requests, newest first
func (r *BidRequestRepository) ListOpen(ctx context.Context) ([]model.BidRequest, error) {
	query := `SELECT * FROM bid_requests WHERE status = $1 ORDER BY created_at DESC`

	requests := []model.BidRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, model.BidRequestStatusOpen); err != nil {
		r.logger.Error("failed to list open bid requests", zap.Error(err))
		return nil, err
	}

	return requests, nil
}

// ListByUser retrieves bid requests created by a user, newest first
func (r *BidRequestRepository) ListByUser(ctx context.Context, userID string) ([]model.BidRequest, error) {
	query := `SELECT * FROM bid_requests WHERE user_id = $1 ORDER BY created_at DESC`

	requests := []model.BidRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, userID); err != nil {
		r.logger.Error("failed to list bid requests by user", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return requests, nil
}

// UpdateStatus changes the status of a bid request
func (r *BidRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE bid_requests SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		r.logger.Error("failed to update bid request status", zap.Error(err), zap.String("id", id))
		return err
	}

	return nil
}
