package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRenderBidReceived(t *testing.T) {
	msg := Render(KindBidReceived, Data{
		BidRequestTitle:  "500 Bags of Cement",
		VendorName:       "Acme Supplies",
		Price:            1200,
		DeliveryTimeDays: 5,
		Notes:            "Includes delivery",
		ProjectURL:       "https://app.example.com/project/p1",
	})

	require.Equal(t, "New Bid Received: 500 Bags of Cement", msg.Subject)
	require.Contains(t, msg.HTML, "Acme Supplies")
	require.Contains(t, msg.HTML, "$1200")
	require.Contains(t, msg.HTML, "5 days")
	require.Contains(t, msg.HTML, "Includes delivery")
	require.Contains(t, msg.Text, "View bid: https://app.example.com/project/p1")
}

func TestRenderBidReceivedPriceFormatting(t *testing.T) {
	msg := Render(KindBidReceived, Data{Price: 1200})
	require.Contains(t, msg.Text, "Price: $1200")
	require.NotContains(t, msg.Text, "$1200.00")

	msg = Render(KindBidReceived, Data{Price: 1200.5})
	require.Contains(t, msg.Text, "Price: $1200.5")
}

func TestRenderBidReceivedEmptyNotes(t *testing.T) {
	msg := Render(KindBidReceived, Data{BidRequestTitle: "Steel"})
	require.Contains(t, msg.HTML, "Notes:</strong> None")
	require.Contains(t, msg.Text, "Notes: None")
}

func TestRenderTaskAssigned(t *testing.T) {
	due := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	msg := Render(KindTaskAssigned, Data{
		TaskTitle:      "Pour foundation",
		Priority:       "high",
		DueDate:        &due,
		ProjectName:    "Lakeside House",
		AssignedByName: "owner@example.com",
	})

	require.Equal(t, "Task Assigned: Pour foundation", msg.Subject)
	require.Contains(t, msg.HTML, "Lakeside House")
	require.Contains(t, msg.HTML, "3/9/2026")
	require.Contains(t, msg.HTML, "owner@example.com")
	require.Contains(t, msg.HTML, "No description")
}

func TestRenderTaskAssignedNoDueDate(t *testing.T) {
	msg := Render(KindTaskAssigned, Data{TaskTitle: "Inspect wiring"})
	require.Contains(t, msg.Text, "Due Date: No due date")
}

func TestRenderTaskReassigned(t *testing.T) {
	msg := Render(KindTaskReassigned, Data{
		TaskTitle:   "Install windows",
		Priority:    "medium",
		ProjectName: "Lakeside House",
	})

	require.Equal(t, "Task Reassigned: Install windows", msg.Subject)
	require.Contains(t, msg.HTML, "Task Reassigned to You")
	// Reassignment emails do not name the assigner.
	require.False(t, strings.Contains(msg.HTML, "Assigned by"))
}

func TestRenderProjectMemberAdded(t *testing.T) {
	msg := Render(KindProjectMemberAdded, Data{
		ProjectName:   "Lakeside House",
		ProjectType:   "residential",
		ProjectStatus: "active",
		OwnerName:     "owner@example.com",
		MemberRole:    "manager",
	})

	require.Equal(t, "Added to Project: Lakeside House", msg.Subject)
	require.Contains(t, msg.HTML, "residential")
	require.Contains(t, msg.HTML, "Your Role:</strong> manager")
}

func TestRenderUnknownKind(t *testing.T) {
	msg := Render("something_else", Data{})
	require.Equal(t, "Notification from BuildBid", msg.Subject)
	require.Equal(t, "You have a new notification.", msg.Text)
}
