package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// PreferenceWriter extends PreferenceStore with partial updates.
type PreferenceWriter interface {
	PreferenceStore
	Update(ctx context.Context, userID string, update *model.PreferencesUpdate) (*model.UserPreferences, error)
}

// PreferenceService handles notification preference reads and updates
type PreferenceService struct {
	preferences PreferenceWriter
	logger      *zap.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(preferences PreferenceWriter, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		preferences: preferences,
		logger:      logger,
	}
}

// Get retrieves a user's preferences, creating the all-enabled row if the
// user has never had one
func (s *PreferenceService) Get(ctx context.Context, userID string) (*model.UserPreferences, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	prefs, err := s.preferences.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs != nil {
		return prefs, nil
	}

	return s.preferences.CreateDefaults(ctx, userID)
}

// Update applies a partial preferences update and returns the result
func (s *PreferenceService) Update(ctx context.Context, userID string, update *model.PreferencesUpdate) (*model.UserPreferences, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	// Ensure the row exists before the partial update.
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	return s.preferences.Update(ctx, userID, update)
}
