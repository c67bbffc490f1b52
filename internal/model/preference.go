package model

import (
	"time"
)

// UserPreferences represents per-user notification opt-in flags.
// Rows are created lazily with every flag enabled.
type UserPreferences struct {
	ID                    string    `json:"id" db:"id"`
	UserID                string    `json:"user_id" db:"user_id"`
	EmailNotifications    bool      `json:"email_notifications" db:"email_notifications"`
	EmailBiddingUpdates   bool      `json:"email_bidding_updates" db:"email_bidding_updates"`
	EmailTaskUpdates      bool      `json:"email_task_updates" db:"email_task_updates"`
	EmailProjectUpdates   bool      `json:"email_project_updates" db:"email_project_updates"`
	RealtimeNotifications string    `json:"realtime_notifications" db:"realtime_notifications"`
	SoundEnabled          bool      `json:"sound_enabled" db:"sound_enabled"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// PreferencesUpdate represents a partial preferences update
type PreferencesUpdate struct {
	EmailNotifications    *bool   `json:"email_notifications,omitempty"`
	EmailBiddingUpdates   *bool   `json:"email_bidding_updates,omitempty"`
	EmailTaskUpdates      *bool   `json:"email_task_updates,omitempty"`
	EmailProjectUpdates   *bool   `json:"email_project_updates,omitempty"`
	RealtimeNotifications *string `json:"realtime_notifications,omitempty"`
	SoundEnabled          *bool   `json:"sound_enabled,omitempty"`
}

// DefaultPreferences returns the preference row created the first time
// a notification would be sent to a user without one
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:                userID,
		EmailNotifications:    true,
		EmailBiddingUpdates:   true,
		EmailTaskUpdates:      true,
		EmailProjectUpdates:   true,
		RealtimeNotifications: "all",
		SoundEnabled:          true,
	}
}
