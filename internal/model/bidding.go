package model

import (
	"time"
)

// Bid request categories accepted by the marketplace.
var BidRequestCategories = map[string]bool{
	"cement":     true,
	"steel":      true,
	"bricks":     true,
	"paint":      true,
	"flooring":   true,
	"plumbing":   true,
	"electrical": true,
	"other":      true,
}

// Bid request lifecycle statuses.
const (
	BidRequestStatusOpen      = "open"
	BidRequestStatusClosed    = "closed"
	BidRequestStatusAwarded   = "awarded"
	BidRequestStatusCancelled = "cancelled"
)

// Bid statuses.
const (
	BidStatusSubmitted = "submitted"
	BidStatusAccepted  = "accepted"
	BidStatusRejected  = "rejected"
)

// BidRequest represents a buyer-posted need that vendors compete for
type BidRequest struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user_id"`
	ProjectID        *string    `json:"project_id,omitempty" db:"project_id"`
	Title            string     `json:"title" db:"title"`
	Description      string     `json:"description" db:"description"`
	Category         string     `json:"category" db:"category"`
	Quantity         float64    `json:"quantity" db:"quantity"`
	Unit             string     `json:"unit" db:"unit"`
	Budget           *float64   `json:"budget,omitempty" db:"budget"`
	DeliveryLocation string     `json:"delivery_location" db:"delivery_location"`
	DeliveryDeadline *time.Time `json:"delivery_deadline,omitempty" db:"delivery_deadline"`
	Status           string     `json:"status" db:"status"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// BidRequestCreate represents data for creating a bid request.
// Numeric fields arrive as strings from the form and are parsed during validation.
type BidRequestCreate struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Quantity         string `json:"quantity"`
	Unit             string `json:"unit"`
	Budget           string `json:"budget,omitempty"`
	DeliveryLocation string `json:"delivery_location"`
	DeliveryDeadline string `json:"delivery_deadline,omitempty"`
	ProjectID        string `json:"project_id,omitempty"`
}

// BidRequestStats holds the derived aggregate for a bid request
type BidRequestStats struct {
	BidCount  int      `json:"bid_count"`
	LowestBid *float64 `json:"lowest_bid"`
}

// BidRequestWithStats is a bid request enriched with its computed aggregate
type BidRequestWithStats struct {
	BidRequest
	BidRequestStats
}

// Bid represents a vendor's offer against a bid request
type Bid struct {
	ID               string    `json:"id" db:"id"`
	BidRequestID     string    `json:"bid_request_id" db:"bid_request_id"`
	VendorID         string    `json:"vendor_id" db:"vendor_id"`
	Price            float64   `json:"price" db:"price"`
	DeliveryTimeDays int       `json:"delivery_time_days" db:"delivery_time_days"`
	Notes            *string   `json:"notes,omitempty" db:"notes"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// BidCreate represents data for submitting a bid
type BidCreate struct {
	BidRequestID     string  `json:"bid_request_id" binding:"required"`
	VendorID         string  `json:"vendor_id" binding:"required"`
	Price            float64 `json:"price" binding:"required"`
	DeliveryTimeDays int     `json:"delivery_time_days" binding:"required"`
	Notes            string  `json:"notes,omitempty"`
}

// BidWithVendor is a bid joined to its vendor's public details
type BidWithVendor struct {
	Bid
	VendorCompanyName string  `json:"vendor_company_name" db:"vendor_company_name"`
	VendorRating      float64 `json:"vendor_rating" db:"vendor_rating"`
}
