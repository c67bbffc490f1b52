package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/email"
	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/model"
)

// Dispatch outcome statuses.
const (
	OutcomeDelivered = "delivered"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Outcome reports what the dispatcher did with one change event.
// The dispatcher never returns an error so a bad event cannot stall
// the consumer loop.
type Outcome struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func skipped(reason string) Outcome { return Outcome{Status: OutcomeSkipped, Reason: reason} }
func failed(reason string) Outcome  { return Outcome{Status: OutcomeFailed, Reason: reason} }

// ProjectGetter resolves projects for notification context.
type ProjectGetter interface {
	GetByID(ctx context.Context, id string) (*model.Project, error)
}

// UserGetter resolves users for notification recipients.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// PreferenceStore reads and lazily creates notification preferences.
type PreferenceStore interface {
	GetByUser(ctx context.Context, userID string) (*model.UserPreferences, error)
	CreateDefaults(ctx context.Context, userID string) (*model.UserPreferences, error)
}

// DispatchService turns row change events into notification emails
type DispatchService struct {
	requests    BidRequestStore
	vendors     VendorStore
	projects    ProjectGetter
	users       UserGetter
	preferences PreferenceStore
	sender      email.Sender
	baseURL     string
	sendTimeout time.Duration
	logger      *zap.Logger
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(requests BidRequestStore, vendors VendorStore, projects ProjectGetter, users UserGetter, preferences PreferenceStore, sender email.Sender, baseURL string, sendTimeout time.Duration, logger *zap.Logger) *DispatchService {
	return &DispatchService{
		requests:    requests,
		vendors:     vendors,
		projects:    projects,
		users:       users,
		preferences: preferences,
		sender:      sender,
		baseURL:     baseURL,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

type bidRecord struct {
	BidRequestID     string  `json:"bid_request_id"`
	VendorID         string  `json:"vendor_id"`
	Price            float64 `json:"price"`
	DeliveryTimeDays int     `json:"delivery_time_days"`
	Notes            string  `json:"notes"`
}

type taskRecord struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to"`
	DueDate     string `json:"due_date"`
}

type memberRecord struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
}

// Dispatch handles one change event end to end: classify, resolve context,
// check preferences, render, send. Every path yields an Outcome.
func (s *DispatchService) Dispatch(ctx context.Context, event events.ChangeEvent) Outcome {
	s.logger.Info("Processing change event",
		zap.String("type", event.Type),
		zap.String("table", event.Table))

	kind, recipientID, data, outcome := s.classify(ctx, event)
	if outcome != nil {
		return *outcome
	}

	user, err := s.users.GetByID(ctx, recipientID)
	if err != nil || user == nil {
		s.logger.Error("failed to get recipient user", zap.String("user_id", recipientID), zap.Error(err))
		return failed("Recipient user not found")
	}

	if user.Email == "" {
		return skipped("No email")
	}

	prefs, err := s.preferences.GetByUser(ctx, recipientID)
	if err != nil {
		return failed("Failed to load preferences")
	}
	if prefs == nil {
		// First notification for this user, create the all-enabled row.
		if _, err := s.preferences.CreateDefaults(ctx, recipientID); err != nil {
			s.logger.Warn("failed to create default preferences", zap.String("user_id", recipientID), zap.Error(err))
		}
	}

	if !emailAllowed(prefs, kind) {
		return skipped("Email notifications disabled")
	}

	msg := email.Render(kind, data)

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, user.Email, msg); err != nil {
		s.logger.Error("failed to send notification email",
			zap.String("to", user.Email),
			zap.String("kind", kind),
			zap.Error(err))
		return failed("Failed to send email")
	}

	return Outcome{Status: OutcomeDelivered}
}

// classify maps a change event to a notification kind, recipient, and
// template data. A non-nil outcome means the event does not produce email.
func (s *DispatchService) classify(ctx context.Context, event events.ChangeEvent) (string, string, email.Data, *Outcome) {
	switch {
	case event.Table == events.TableBids && event.Type == events.TypeInsert:
		return s.classifyBid(ctx, event)

	case event.Table == events.TableTasks && event.Type == events.TypeInsert:
		var rec taskRecord
		if err := json.Unmarshal(event.Record, &rec); err != nil || rec.AssignedTo == "" {
			out := skipped("Event not handled")
			return "", "", email.Data{}, &out
		}
		data := s.taskData(ctx, rec)
		data.AssignedByName = s.projectOwnerName(ctx, rec.ProjectID)
		return email.KindTaskAssigned, rec.AssignedTo, data, nil

	case event.Table == events.TableTasks && event.Type == events.TypeUpdate:
		var rec, old taskRecord
		if err := json.Unmarshal(event.Record, &rec); err != nil {
			out := skipped("Event not handled")
			return "", "", email.Data{}, &out
		}
		if len(event.OldRecord) > 0 {
			_ = json.Unmarshal(event.OldRecord, &old)
		}
		if rec.AssignedTo == "" || rec.AssignedTo == old.AssignedTo {
			out := skipped("Event not handled")
			return "", "", email.Data{}, &out
		}
		return email.KindTaskReassigned, rec.AssignedTo, s.taskData(ctx, rec), nil

	case event.Table == events.TableProjectMembers && event.Type == events.TypeInsert:
		var rec memberRecord
		if err := json.Unmarshal(event.Record, &rec); err != nil {
			out := skipped("Event not handled")
			return "", "", email.Data{}, &out
		}
		return email.KindProjectMemberAdded, rec.UserID, s.memberData(ctx, rec), nil
	}

	out := skipped("Event not handled")
	return "", "", email.Data{}, &out
}

func (s *DispatchService) classifyBid(ctx context.Context, event events.ChangeEvent) (string, string, email.Data, *Outcome) {
	var rec bidRecord
	if err := json.Unmarshal(event.Record, &rec); err != nil {
		out := skipped("Event not handled")
		return "", "", email.Data{}, &out
	}

	req, err := s.requests.GetByID(ctx, rec.BidRequestID)
	if err != nil || req == nil {
		out := skipped("Bid request not found")
		return "", "", email.Data{}, &out
	}

	vendorName := "Unknown Vendor"
	if vendor, err := s.vendors.GetByID(ctx, rec.VendorID); err == nil && vendor != nil {
		vendorName = vendor.CompanyName
	}

	projectID := ""
	if req.ProjectID != nil {
		projectID = *req.ProjectID
	}

	data := email.Data{
		BidRequestTitle:  req.Title,
		VendorName:       vendorName,
		Price:            rec.Price,
		DeliveryTimeDays: rec.DeliveryTimeDays,
		Notes:            rec.Notes,
		ProjectURL:       s.projectURL(projectID),
	}
	return email.KindBidReceived, req.UserID, data, nil
}

func (s *DispatchService) taskData(ctx context.Context, rec taskRecord) email.Data {
	priority := rec.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	projectName := "Unknown Project"
	if project, err := s.projects.GetByID(ctx, rec.ProjectID); err == nil && project != nil {
		projectName = project.Name
	}

	return email.Data{
		TaskTitle:       rec.Title,
		TaskDescription: rec.Description,
		Priority:        priority,
		DueDate:         parseEventTime(rec.DueDate),
		ProjectName:     projectName,
		ProjectURL:      s.projectURL(rec.ProjectID),
	}
}

func (s *DispatchService) memberData(ctx context.Context, rec memberRecord) email.Data {
	data := email.Data{
		ProjectName:   "Unknown Project",
		ProjectType:   "Unknown",
		ProjectStatus: "Unknown",
		OwnerName:     "Project Owner",
		MemberRole:    rec.Role,
		ProjectURL:    s.projectURL(rec.ProjectID),
	}
	if data.MemberRole == "" {
		data.MemberRole = model.MemberRoleMember
	}

	project, err := s.projects.GetByID(ctx, rec.ProjectID)
	if err != nil || project == nil {
		return data
	}

	data.ProjectName = project.Name
	data.ProjectType = project.Type
	data.ProjectStatus = project.Status
	data.OwnerName = s.ownerName(ctx, project.OwnerID)
	return data
}

// projectOwnerName resolves the owner email of a task's project, used as
// the assigner name on first assignment.
func (s *DispatchService) projectOwnerName(ctx context.Context, projectID string) string {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil || project == nil {
		return "Project Owner"
	}
	return s.ownerName(ctx, project.OwnerID)
}

func (s *DispatchService) ownerName(ctx context.Context, ownerID string) string {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil || owner == nil || owner.Email == "" {
		return "Project Owner"
	}
	return owner.Email
}

func (s *DispatchService) projectURL(projectID string) string {
	return s.baseURL + "/project/" + projectID
}

// emailAllowed applies the global flag and the per-category flag. A user
// with no preference row gets everything.
func emailAllowed(prefs *model.UserPreferences, kind string) bool {
	if prefs == nil {
		return true
	}
	if !prefs.EmailNotifications {
		return false
	}

	switch kind {
	case email.KindBidReceived:
		return prefs.EmailBiddingUpdates
	case email.KindTaskAssigned, email.KindTaskReassigned:
		return prefs.EmailTaskUpdates
	case email.KindProjectMemberAdded:
		return prefs.EmailProjectUpdates
	}
	return true
}

// parseEventTime parses timestamps as they appear in change event payloads.
func parseEventTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
