package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// BidRepository handles database operations for bids
type BidRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBidRepository creates a new bid repository
func NewBidRepository(db *sqlx.DB, logger *zap.Logger) *BidRepository {
	return &BidRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new bid
func (r *BidRepository) Create(ctx context.Context, bid *model.Bid) error {
	query := `
		INSERT INTO bids (id, bid_request_id, vendor_id, price, delivery_time_days,
			notes, status, created_at, updated_at)
		VALUES (:id, :bid_request_id, :vendor_id, :price, :delivery_time_days,
			:notes, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, bid); err != nil {
		r.logger.Error("failed to create bid", zap.Error(err))
		return err
	}

	return nil
}

// GetByID retrieves a bid by ID
func (r *BidRepository) GetByID(ctx context.Context, id string) (*model.Bid, error) {
	query := `SELECT * FROM bids WHERE id = $1`

	var bid model.Bid
	if err := r.db.GetContext(ctx, &bid, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get bid", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &bid, nil
}

// ListForRequest retrieves all bids for a request with vendor details,
// cheapest first. Ties on price keep submission order.
func (r *BidRepository) ListForRequest(ctx context.Context, requestID string) ([]model.BidWithVendor, error) {
	query := `
		SELECT b.*, COALESCE(v.company_name, '') AS vendor_company_name, COALESCE(v.rating, 0) AS vendor_rating
		FROM bids b
		LEFT JOIN vendor_profiles v ON v.id = b.vendor_id
		WHERE b.bid_request_id = $1
		ORDER BY b.price ASC, b.created_at ASC`

	bids := []model.BidWithVendor{}
	if err := r.db.SelectContext(ctx, &bids, query, requestID); err != nil {
		r.logger.Error("failed to list bids for request", zap.Error(err), zap.String("bid_request_id", requestID))
		return nil, err
	}

	return bids, nil
}

// PricesByRequests fetches bid prices for a set of requests in one query,
// grouped by request ID. Requests without bids are absent from the map.
func (r *BidRepository) PricesByRequests(ctx context.Context, requestIDs []string) (map[string][]float64, error) {
	if len(requestIDs) == 0 {
		return map[string][]float64{}, nil
	}

	query := `SELECT bid_request_id, price FROM bids WHERE bid_request_id = ANY($1)`

	rows := []struct {
		BidRequestID string  `db:"bid_request_id"`
		Price        float64 `db:"price"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(requestIDs)); err != nil {
		r.logger.Error("failed to fetch bid prices", zap.Error(err))
		return nil, err
	}

	prices := make(map[string][]float64, len(requestIDs))
	for _, row := range rows {
		prices[row.BidRequestID] = append(prices[row.BidRequestID], row.Price)
	}

	return prices, nil
}

// UpdateStatus changes the status of a bid
func (r *BidRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE bids SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		r.logger.Error("failed to update bid status", zap.Error(err), zap.String("id", id))
		return err
	}

	return nil
}

// RejectOthers marks all bids on a request as rejected except the given one
func (r *BidRepository) RejectOthers(ctx context.Context, requestID, acceptedBidID string) error {
	query := `UPDATE bids SET status = $1, updated_at = NOW() WHERE bid_request_id = $2 AND id <> $3`

	if _, err := r.db.ExecContext(ctx, query, model.BidStatusRejected, requestID, acceptedBidID); err != nil {
		r.logger.Error("failed to reject other bids", zap.Error(err), zap.String("bid_request_id", requestID))
		return err
	}

	return nil
}
