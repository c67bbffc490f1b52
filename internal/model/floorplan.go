package model

import (
	"time"
)

// FloorPlan represents a generated floor-plan image
type FloorPlan struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Prompt      *string   `json:"prompt,omitempty" db:"prompt"`
	Rooms       int       `json:"rooms" db:"rooms"`
	Sqft        int       `json:"sqft" db:"sqft"`
	Style       string    `json:"style" db:"style"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// FloorPlanRequest represents the parameters for generating a floor plan
type FloorPlanRequest struct {
	Prompt string `json:"prompt,omitempty"`
	Rooms  int    `json:"rooms,omitempty"`
	Sqft   int    `json:"sqft,omitempty"`
	Style  string `json:"style,omitempty"`
}
