package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// PreferenceRepository handles database operations for user preferences
type PreferenceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sqlx.DB, logger *zap.Logger) *PreferenceRepository {
	return &PreferenceRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUser retrieves a user's preference row. Returns nil when the user
// has never had one created.
func (r *PreferenceRepository) GetByUser(ctx context.Context, userID string) (*model.UserPreferences, error) {
	query := `SELECT * FROM user_preferences WHERE user_id = $1`

	var prefs model.UserPreferences
	if err := r.db.GetContext(ctx, &prefs, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get preferences", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return &prefs, nil
}

// CreateDefaults inserts the all-enabled preference row for a user.
// Concurrent creation is tolerated via ON CONFLICT DO NOTHING.
func (r *PreferenceRepository) CreateDefaults(ctx context.Context, userID string) (*model.UserPreferences, error) {
	prefs := model.DefaultPreferences(userID)
	prefs.ID = uuid.NewString()

	query := `
		INSERT INTO user_preferences (id, user_id, email_notifications, email_bidding_updates,
			email_task_updates, email_project_updates, realtime_notifications, sound_enabled,
			created_at, updated_at)
		VALUES (:id, :user_id, :email_notifications, :email_bidding_updates,
			:email_task_updates, :email_project_updates, :realtime_notifications, :sound_enabled,
			NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, prefs); err != nil {
		r.logger.Error("failed to create default preferences", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return r.GetByUser(ctx, userID)
}

// Update applies a partial update and returns the resulting row
func (r *PreferenceRepository) Update(ctx context.Context, userID string, update *model.PreferencesUpdate) (*model.UserPreferences, error) {
	query := `
		UPDATE user_preferences
		SET email_notifications = COALESCE($2, email_notifications),
			email_bidding_updates = COALESCE($3, email_bidding_updates),
			email_task_updates = COALESCE($4, email_task_updates),
			email_project_updates = COALESCE($5, email_project_updates),
			realtime_notifications = COALESCE($6, realtime_notifications),
			sound_enabled = COALESCE($7, sound_enabled),
			updated_at = NOW()
		WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID,
		update.EmailNotifications,
		update.EmailBiddingUpdates,
		update.EmailTaskUpdates,
		update.EmailProjectUpdates,
		update.RealtimeNotifications,
		update.SoundEnabled,
	); err != nil {
		r.logger.Error("failed to update preferences", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return r.GetByUser(ctx, userID)
}
