package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// VendorRepository handles database operations for vendor profiles
type VendorRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *sqlx.DB, logger *zap.Logger) *VendorRepository {
	return &VendorRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new vendor profile
func (r *VendorRepository) Create(ctx context.Context, profile *model.VendorProfile) error {
	query := `
		INSERT INTO vendor_profiles (id, user_id, company_name, contact_email, contact_phone,
			address, city, state, zip_code, business_license, tax_id, description, logo_url,
			rating, total_reviews, verification_status, created_at, updated_at)
		VALUES (:id, :user_id, :company_name, :contact_email, :contact_phone,
			:address, :city, :state, :zip_code, :business_license, :tax_id, :description, :logo_url,
			:rating, :total_reviews, :verification_status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		r.logger.Error("failed to create vendor profile", zap.Error(err))
		return err
	}

	return nil
}

// GetByID retrieves a vendor profile by ID
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*model.VendorProfile, error) {
	query := `SELECT * FROM vendor_profiles WHERE id = $1`

	var profile model.VendorProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get vendor profile", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &profile, nil
}

// GetByUser retrieves the vendor profile owned by a user
func (r *VendorRepository) GetByUser(ctx context.Context, userID string) (*model.VendorProfile, error) {
	query := `SELECT * FROM vendor_profiles WHERE user_id = $1`

	var profile model.VendorProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get vendor profile by user", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return &profile, nil
}

// List retrieves vendor profiles ordered by rating, best first
func (r *VendorRepository) List(ctx context.Context, limit, offset int) ([]model.VendorProfile, error) {
	query := `SELECT * FROM vendor_profiles ORDER BY rating DESC, created_at DESC LIMIT $1 OFFSET $2`

	profiles := []model.VendorProfile{}
	if err := r.db.SelectContext(ctx, &profiles, query, limit, offset); err != nil {
		r.logger.Error("failed to list vendor profiles", zap.Error(err))
		return nil, err
	}

	return profiles, nil
}

// Update modifies a vendor profile's editable fields
func (r *VendorRepository) Update(ctx context.Context, profile *model.VendorProfile) error {
	query := `
		UPDATE vendor_profiles
		SET company_name = :company_name, contact_email = :contact_email,
			contact_phone = :contact_phone, address = :address, city = :city,
			state = :state, zip_code = :zip_code, business_license = :business_license,
			tax_id = :tax_id, description = :description, logo_url = :logo_url,
			updated_at = NOW()
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		r.logger.Error("failed to update vendor profile", zap.Error(err), zap.String("id", profile.ID))
		return err
	}

	return nil
}
