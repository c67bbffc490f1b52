package model

import (
	"time"
)

// VendorProfile represents a supplier's onboarded identity and reputation record
type VendorProfile struct {
	ID                 string    `json:"id" db:"id"`
	UserID             *string   `json:"user_id,omitempty" db:"user_id"`
	CompanyName        string    `json:"company_name" db:"company_name"`
	ContactEmail       string    `json:"contact_email" db:"contact_email"`
	ContactPhone       string    `json:"contact_phone" db:"contact_phone"`
	Address            string    `json:"address" db:"address"`
	City               string    `json:"city" db:"city"`
	State              string    `json:"state" db:"state"`
	ZipCode            string    `json:"zip_code" db:"zip_code"`
	BusinessLicense    *string   `json:"business_license,omitempty" db:"business_license"`
	TaxID              *string   `json:"tax_id,omitempty" db:"tax_id"`
	Description        *string   `json:"description,omitempty" db:"description"`
	LogoURL            *string   `json:"logo_url,omitempty" db:"logo_url"`
	Rating             float64   `json:"rating" db:"rating"`
	TotalReviews       int       `json:"total_reviews" db:"total_reviews"`
	VerificationStatus string    `json:"verification_status" db:"verification_status"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// VendorProfileCreate represents data for vendor onboarding
type VendorProfileCreate struct {
	CompanyName     string `json:"company_name" binding:"required"`
	ContactEmail    string `json:"contact_email" binding:"required,email"`
	ContactPhone    string `json:"contact_phone" binding:"required"`
	Address         string `json:"address" binding:"required"`
	City            string `json:"city" binding:"required"`
	State           string `json:"state" binding:"required"`
	ZipCode         string `json:"zip_code" binding:"required"`
	BusinessLicense string `json:"business_license,omitempty"`
	TaxID           string `json:"tax_id,omitempty"`
	Description     string `json:"description,omitempty"`
}

// VendorProduct represents a marketplace listing offered by a vendor
type VendorProduct struct {
	ID               string    `json:"id" db:"id"`
	VendorID         string    `json:"vendor_id" db:"vendor_id"`
	Name             string    `json:"name" db:"name"`
	Category         string    `json:"category" db:"category"`
	Description      *string   `json:"description,omitempty" db:"description"`
	BasePrice        float64   `json:"base_price" db:"base_price"`
	Unit             string    `json:"unit" db:"unit"`
	StockQuantity    int       `json:"stock_quantity" db:"stock_quantity"`
	MinOrderQuantity int       `json:"min_order_quantity" db:"min_order_quantity"`
	ImageURL         *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// VendorProductWithVendor is a product joined to its vendor's public details
type VendorProductWithVendor struct {
	VendorProduct
	VendorCompanyName string  `json:"vendor_company_name" db:"vendor_company_name"`
	VendorRating      float64 `json:"vendor_rating" db:"vendor_rating"`
	VendorCity        string  `json:"vendor_city" db:"vendor_city"`
	VendorState       string  `json:"vendor_state" db:"vendor_state"`
}

// ProductSearchFilter holds marketplace search parameters
type ProductSearchFilter struct {
	Query       string
	Categories  []string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	MinRating   *float64
	SortBy      string
	Page        int
	Limit       int
}
