package events

import "encoding/json"

// Event types mirroring database row changes.
const (
	TypeInsert = "INSERT"
	TypeUpdate = "UPDATE"
	TypeDelete = "DELETE"
)

// Tables that produce change events.
const (
	TableBids           = "bids"
	TableTasks          = "tasks"
	TableProjectMembers = "project_members"
)

// ChangeEvent represents a row change in one of the watched tables.
// Record holds the new row and OldRecord the previous row for updates.
type ChangeEvent struct {
	Type      string          `json:"type"`
	Table     string          `json:"table"`
	Record    json.RawMessage `json:"record"`
	OldRecord json.RawMessage `json:"old_record,omitempty"`
}
