package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/model"
)

type dispatchFixture struct {
	svc         *DispatchService
	requests    *MockBidRequestStore
	vendors     *MockVendorStore
	projects    *MockProjectGetter
	users       *MockUserGetter
	preferences *MockPreferenceStore
	sender      *MockSender
}

func newDispatchFixture() *dispatchFixture {
	f := &dispatchFixture{
		requests:    newMockBidRequestStore(),
		vendors:     newMockVendorStore(),
		projects:    &MockProjectGetter{projects: map[string]*model.Project{}},
		users:       &MockUserGetter{users: map[string]*model.User{}},
		preferences: newMockPreferenceStore(),
		sender:      &MockSender{},
	}
	f.svc = NewDispatchService(
		f.requests, f.vendors, f.projects, f.users, f.preferences,
		f.sender, "https://app.example.com", 5*time.Second, zap.NewNop(),
	)
	return f
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestDispatchBidReceived(t *testing.T) {
	f := newDispatchFixture()

	projectID := "p1"
	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Title: "500 Bags of Cement", ProjectID: &projectID}
	f.vendors.vendors["v1"] = &model.VendorProfile{ID: "v1", CompanyName: "Acme Supplies"}
	f.users.users["buyer"] = &model.User{ID: "buyer", Email: "buyer@example.com"}

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:  events.TypeInsert,
		Table: events.TableBids,
		Record: mustJSON(t, map[string]interface{}{
			"bid_request_id":     "r1",
			"vendor_id":          "v1",
			"price":              480.0,
			"delivery_time_days": 7,
		}),
	})

	require.Equal(t, OutcomeDelivered, outcome.Status)
	require.Len(t, f.sender.sent, 1)
	require.Equal(t, "buyer@example.com", f.sender.sent[0].to)
	require.Equal(t, "New Bid Received: 500 Bags of Cement", f.sender.sent[0].msg.Subject)
	require.Contains(t, f.sender.sent[0].msg.HTML, "Acme Supplies")
	require.Contains(t, f.sender.sent[0].msg.Text, "https://app.example.com/project/p1")

	// First notification lazily created the preference row.
	require.Equal(t, []string{"buyer"}, f.preferences.defaultsCreated)
}

func TestDispatchBidReceivedUnknownVendor(t *testing.T) {
	f := newDispatchFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Title: "Steel"}
	f.users.users["buyer"] = &model.User{ID: "buyer", Email: "buyer@example.com"}

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{"bid_request_id": "r1", "vendor_id": "ghost"}),
	})

	require.Equal(t, OutcomeDelivered, outcome.Status)
	require.Contains(t, f.sender.sent[0].msg.HTML, "Unknown Vendor")
}

func TestDispatchBidRequestMissing(t *testing.T) {
	f := newDispatchFixture()

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{"bid_request_id": "missing"}),
	})

	require.Equal(t, OutcomeSkipped, outcome.Status)
	require.Equal(t, "Bid request not found", outcome.Reason)
	require.Empty(t, f.sender.sent)
}

func TestDispatchTaskAssigned(t *testing.T) {
	f := newDispatchFixture()

	f.projects.projects["p1"] = &model.Project{ID: "p1", Name: "Lakeside House", OwnerID: "owner"}
	f.users.users["owner"] = &model.User{ID: "owner", Email: "owner@example.com"}
	f.users.users["worker"] = &model.User{ID: "worker", Email: "worker@example.com"}

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:  events.TypeInsert,
		Table: events.TableTasks,
		Record: mustJSON(t, map[string]interface{}{
			"project_id":  "p1",
			"title":       "Pour foundation",
			"assigned_to": "worker",
		}),
	})

	require.Equal(t, OutcomeDelivered, outcome.Status)
	require.Equal(t, "worker@example.com", f.sender.sent[0].to)
	require.Equal(t, "Task Assigned: Pour foundation", f.sender.sent[0].msg.Subject)
	require.Contains(t, f.sender.sent[0].msg.HTML, "owner@example.com")
	// Unset priority falls back to medium.
	require.Contains(t, f.sender.sent[0].msg.HTML, "medium")
}

func TestDispatchUnassignedTaskInsertSkipped(t *testing.T) {
	f := newDispatchFixture()

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableTasks,
		Record: mustJSON(t, map[string]interface{}{"project_id": "p1", "title": "Unassigned"}),
	})

	require.Equal(t, OutcomeSkipped, outcome.Status)
	require.Equal(t, "Event not handled", outcome.Reason)
}

func TestDispatchTaskReassigned(t *testing.T) {
	f := newDispatchFixture()

	f.projects.projects["p1"] = &model.Project{ID: "p1", Name: "Lakeside House", OwnerID: "owner"}
	f.users.users["new-worker"] = &model.User{ID: "new-worker", Email: "new@example.com"}

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:      events.TypeUpdate,
		Table:     events.TableTasks,
		Record:    mustJSON(t, map[string]interface{}{"project_id": "p1", "title": "Install windows", "assigned_to": "new-worker"}),
		OldRecord: mustJSON(t, map[string]interface{}{"project_id": "p1", "title": "Install windows", "assigned_to": "old-worker"}),
	})

	require.Equal(t, OutcomeDelivered, outcome.Status)
	require.Equal(t, "Task Reassigned: Install windows", f.sender.sent[0].msg.Subject)
}

func TestDispatchTaskUpdateWithoutReassignmentSkipped(t *testing.T) {
	f := newDispatchFixture()

	// Same assignee on both sides of the update.
	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:      events.TypeUpdate,
		Table:     events.TableTasks,
		Record:    mustJSON(t, map[string]interface{}{"title": "T", "assigned_to": "w"}),
		OldRecord: mustJSON(t, map[string]interface{}{"title": "T", "assigned_to": "w"}),
	})
	require.Equal(t, OutcomeSkipped, outcome.Status)

	// Assignment cleared.
	outcome = f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:      events.TypeUpdate,
		Table:     events.TableTasks,
		Record:    mustJSON(t, map[string]interface{}{"title": "T"}),
		OldRecord: mustJSON(t, map[string]interface{}{"title": "T", "assigned_to": "w"}),
	})
	require.Equal(t, OutcomeSkipped, outcome.Status)
}

func TestDispatchProjectMemberAdded(t *testing.T) {
	f := newDispatchFixture()

	f.projects.projects["p1"] = &model.Project{ID: "p1", Name: "Lakeside House", Type: "residential", Status: "active", OwnerID: "owner"}
	f.users.users["owner"] = &model.User{ID: "owner", Email: "owner@example.com"}
	f.users.users["member"] = &model.User{ID: "member", Email: "member@example.com"}

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableProjectMembers,
		Record: mustJSON(t, map[string]interface{}{"project_id": "p1", "user_id": "member", "role": "manager"}),
	})

	require.Equal(t, OutcomeDelivered, outcome.Status)
	require.Equal(t, "Added to Project: Lakeside House", f.sender.sent[0].msg.Subject)
	require.Contains(t, f.sender.sent[0].msg.HTML, "manager")
	require.Contains(t, f.sender.sent[0].msg.HTML, "owner@example.com")
}

func TestDispatchUnhandledEvent(t *testing.T) {
	f := newDispatchFixture()

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   "DELETE",
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{}),
	})

	require.Equal(t, OutcomeSkipped, outcome.Status)
	require.Equal(t, "Event not handled", outcome.Reason)
}

func TestDispatchRecipientMissing(t *testing.T) {
	f := newDispatchFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "ghost", Title: "Cement"}

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{"bid_request_id": "r1"}),
	})

	require.Equal(t, OutcomeFailed, outcome.Status)
	require.Equal(t, "Recipient user not found", outcome.Reason)
}

func TestDispatchRecipientWithoutEmail(t *testing.T) {
	f := newDispatchFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Title: "Cement"}
	f.users.users["buyer"] = &model.User{ID: "buyer"}

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{"bid_request_id": "r1"}),
	})

	require.Equal(t, OutcomeSkipped, outcome.Status)
	require.Equal(t, "No email", outcome.Reason)
}

func TestDispatchPreferencesDisable(t *testing.T) {
	f := newDispatchFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Title: "Cement"}
	f.users.users["buyer"] = &model.User{ID: "buyer", Email: "buyer@example.com"}

	// Global switch off.
	f.preferences.prefs["buyer"] = &model.UserPreferences{UserID: "buyer", EmailNotifications: false, EmailBiddingUpdates: true}
	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{"bid_request_id": "r1"}),
	})
	require.Equal(t, OutcomeSkipped, outcome.Status)
	require.Equal(t, "Email notifications disabled", outcome.Reason)

	// Category switch off.
	f.preferences.prefs["buyer"] = &model.UserPreferences{UserID: "buyer", EmailNotifications: true, EmailBiddingUpdates: false, EmailTaskUpdates: true}
	outcome = f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{"bid_request_id": "r1"}),
	})
	require.Equal(t, OutcomeSkipped, outcome.Status)
	require.Empty(t, f.sender.sent)
}

func TestDispatchSendFailure(t *testing.T) {
	f := newDispatchFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Title: "Cement"}
	f.users.users["buyer"] = &model.User{ID: "buyer", Email: "buyer@example.com"}
	f.sender.SendErr = context.DeadlineExceeded

	outcome := f.svc.Dispatch(context.Background(), events.ChangeEvent{
		Type:   events.TypeInsert,
		Table:  events.TableBids,
		Record: mustJSON(t, map[string]interface{}{"bid_request_id": "r1"}),
	})

	require.Equal(t, OutcomeFailed, outcome.Status)
	require.Equal(t, "Failed to send email", outcome.Reason)
}
