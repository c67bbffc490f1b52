package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// VendorProfileStore is the persistence surface for vendor profiles.
type VendorProfileStore interface {
	Create(ctx context.Context, profile *model.VendorProfile) error
	GetByID(ctx context.Context, id string) (*model.VendorProfile, error)
	GetByUser(ctx context.Context, userID string) (*model.VendorProfile, error)
	List(ctx context.Context, limit, offset int) ([]model.VendorProfile, error)
	Update(ctx context.Context, profile *model.VendorProfile) error
}

// ProductStore is the persistence surface for marketplace products.
type ProductStore interface {
	Create(ctx context.Context, product *model.VendorProduct) error
	GetByID(ctx context.Context, id string) (*model.VendorProduct, error)
	ListByVendor(ctx context.Context, vendorID string) ([]model.VendorProduct, error)
	Search(ctx context.Context, filter model.ProductSearchFilter) ([]model.VendorProductWithVendor, int, error)
	Update(ctx context.Context, product *model.VendorProduct) error
}

// VendorService handles vendor onboarding and the product marketplace
type VendorService struct {
	vendors  VendorProfileStore
	products ProductStore
	logger   *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(vendors VendorProfileStore, products ProductStore, logger *zap.Logger) *VendorService {
	return &VendorService{
		vendors:  vendors,
		products: products,
		logger:   logger,
	}
}

// Onboard creates a vendor profile for a user. A user may have one profile.
func (s *VendorService) Onboard(ctx context.Context, userID string, create *model.VendorProfileCreate) (*model.VendorProfile, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	existing, err := s.vendors.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewValidationError("user_id", "vendor profile already exists")
	}

	now := time.Now().UTC()
	profile := &model.VendorProfile{
		ID:                 uuid.NewString(),
		UserID:             &userID,
		CompanyName:        create.CompanyName,
		ContactEmail:       create.ContactEmail,
		ContactPhone:       create.ContactPhone,
		Address:            create.Address,
		City:               create.City,
		State:              create.State,
		ZipCode:            create.ZipCode,
		VerificationStatus: "pending",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if create.BusinessLicense != "" {
		profile.BusinessLicense = &create.BusinessLicense
	}
	if create.TaxID != "" {
		profile.TaxID = &create.TaxID
	}
	if create.Description != "" {
		profile.Description = &create.Description
	}

	if err := s.vendors.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile retrieves a vendor profile by ID
func (s *VendorService) GetProfile(ctx context.Context, id string) (*model.VendorProfile, error) {
	profile, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// GetProfileByUser retrieves the vendor profile owned by a user
func (s *VendorService) GetProfileByUser(ctx context.Context, userID string) (*model.VendorProfile, error) {
	return s.vendors.GetByUser(ctx, userID)
}

// ListProfiles retrieves vendor profiles, best rated first
func (s *VendorService) ListProfiles(ctx context.Context, limit, offset int) ([]model.VendorProfile, error) {
	return s.vendors.List(ctx, limit, offset)
}

// CreateProduct adds a marketplace listing for the caller's vendor profile
func (s *VendorService) CreateProduct(ctx context.Context, userID string, product *model.VendorProduct) (*model.VendorProduct, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if product.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if product.BasePrice <= 0 {
		return nil, NewValidationError("base_price", "base price must be a positive number")
	}

	vendor, err := s.vendors.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, NewValidationError("vendor_id", "vendor profile not found")
	}

	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.VendorID = vendor.ID
	product.IsActive = true
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.MinOrderQuantity <= 0 {
		product.MinOrderQuantity = 1
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts retrieves a vendor's listings
func (s *VendorService) ListProducts(ctx context.Context, vendorID string) ([]model.VendorProduct, error) {
	return s.products.ListByVendor(ctx, vendorID)
}

// SearchProducts retrieves active listings matching the filter with the
// total match count. Page and limit are normalized to sane bounds.
func (s *VendorService) SearchProducts(ctx context.Context, filter model.ProductSearchFilter) ([]model.VendorProductWithVendor, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	return s.products.Search(ctx, filter)
}
