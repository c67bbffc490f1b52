package email

import (
	"fmt"
	"strconv"
	"time"
)

// Notification event kinds.
const (
	KindBidReceived        = "bid_received"
	KindTaskAssigned       = "task_assigned"
	KindTaskReassigned     = "task_reassigned"
	KindProjectMemberAdded = "project_member_added"
)

// Data carries everything the templates may interpolate. Only the fields
// relevant to a given kind are read.
type Data struct {
	BidRequestTitle  string
	VendorName       string
	Price            float64
	DeliveryTimeDays int
	Notes            string

	TaskTitle       string
	TaskDescription string
	Priority        string
	DueDate         *time.Time
	AssignedByName  string

	ProjectName   string
	ProjectType   string
	ProjectStatus string
	OwnerName     string
	MemberRole    string

	ProjectURL string
}

// Message is a rendered notification email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Render produces the email content for an event kind. Unknown kinds fall
// back to a generic notification.
func Render(kind string, d Data) Message {
	switch kind {
	case KindBidReceived:
		notes := d.Notes
		if notes == "" {
			notes = "None"
		}
		price := formatPrice(d.Price)
		return Message{
			Subject: fmt.Sprintf("New Bid Received: %s", d.BidRequestTitle),
			HTML: fmt.Sprintf(`<h2>New Bid Received</h2>
<p>You have received a new bid on your request: <strong>%s</strong></p>
<h3>Bid Details:</h3>
<ul>
  <li><strong>Vendor:</strong> %s</li>
  <li><strong>Price:</strong> $%s</li>
  <li><strong>Delivery Time:</strong> %d days</li>
  <li><strong>Notes:</strong> %s</li>
</ul>
<p><a href="%s" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View Bid</a></p>
<hr>
<p style="color: #888; font-size: 12px;">You received this email because you have email notifications enabled for bidding updates.</p>`,
				d.BidRequestTitle, d.VendorName, price, d.DeliveryTimeDays, notes, d.ProjectURL),
			Text: fmt.Sprintf("New Bid Received\n\nYou have received a new bid on your request: %s\n\nBid Details:\n- Vendor: %s\n- Price: $%s\n- Delivery Time: %d days\n- Notes: %s\n\nView bid: %s\n\nYou received this email because you have email notifications enabled for bidding updates.",
				d.BidRequestTitle, d.VendorName, price, d.DeliveryTimeDays, notes, d.ProjectURL),
		}

	case KindTaskAssigned:
		desc := orDefault(d.TaskDescription, "No description")
		due := formatDueDate(d.DueDate)
		return Message{
			Subject: fmt.Sprintf("Task Assigned: %s", d.TaskTitle),
			HTML: fmt.Sprintf(`<h2>New Task Assigned</h2>
<p>You have been assigned a new task: <strong>%s</strong></p>
<h3>Task Details:</h3>
<ul>
  <li><strong>Project:</strong> %s</li>
  <li><strong>Description:</strong> %s</li>
  <li><strong>Priority:</strong> %s</li>
  <li><strong>Due Date:</strong> %s</li>
  <li><strong>Assigned by:</strong> %s</li>
</ul>
<p><a href="%s" style="background-color: #2196F3; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View Task</a></p>
<hr>
<p style="color: #888; font-size: 12px;">You received this email because you have email notifications enabled for task updates.</p>`,
				d.TaskTitle, d.ProjectName, desc, d.Priority, due, d.AssignedByName, d.ProjectURL),
			Text: fmt.Sprintf("New Task Assigned\n\nYou have been assigned a new task: %s\n\nTask Details:\n- Project: %s\n- Description: %s\n- Priority: %s\n- Due Date: %s\n- Assigned by: %s\n\nView task: %s\n\nYou received this email because you have email notifications enabled for task updates.",
				d.TaskTitle, d.ProjectName, desc, d.Priority, due, d.AssignedByName, d.ProjectURL),
		}

	case KindTaskReassigned:
		desc := orDefault(d.TaskDescription, "No description")
		due := formatDueDate(d.DueDate)
		return Message{
			Subject: fmt.Sprintf("Task Reassigned: %s", d.TaskTitle),
			HTML: fmt.Sprintf(`<h2>Task Reassigned to You</h2>
<p>A task has been reassigned to you: <strong>%s</strong></p>
<h3>Task Details:</h3>
<ul>
  <li><strong>Project:</strong> %s</li>
  <li><strong>Description:</strong> %s</li>
  <li><strong>Priority:</strong> %s</li>
  <li><strong>Due Date:</strong> %s</li>
</ul>
<p><a href="%s" style="background-color: #2196F3; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View Task</a></p>
<hr>
<p style="color: #888; font-size: 12px;">You received this email because you have email notifications enabled for task updates.</p>`,
				d.TaskTitle, d.ProjectName, desc, d.Priority, due, d.ProjectURL),
			Text: fmt.Sprintf("Task Reassigned to You\n\nA task has been reassigned to you: %s\n\nTask Details:\n- Project: %s\n- Description: %s\n- Priority: %s\n- Due Date: %s\n\nView task: %s\n\nYou received this email because you have email notifications enabled for task updates.",
				d.TaskTitle, d.ProjectName, desc, d.Priority, due, d.ProjectURL),
		}

	case KindProjectMemberAdded:
		return Message{
			Subject: fmt.Sprintf("Added to Project: %s", d.ProjectName),
			HTML: fmt.Sprintf(`<h2>Added to Project</h2>
<p>You have been added as a member to the project: <strong>%s</strong></p>
<h3>Project Details:</h3>
<ul>
  <li><strong>Project Type:</strong> %s</li>
  <li><strong>Status:</strong> %s</li>
  <li><strong>Owner:</strong> %s</li>
  <li><strong>Your Role:</strong> %s</li>
</ul>
<p><a href="%s" style="background-color: #FF9800; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View Project</a></p>
<hr>
<p style="color: #888; font-size: 12px;">You received this email because you have email notifications enabled for project updates.</p>`,
				d.ProjectName, d.ProjectType, d.ProjectStatus, d.OwnerName, d.MemberRole, d.ProjectURL),
			Text: fmt.Sprintf("Added to Project\n\nYou have been added as a member to the project: %s\n\nProject Details:\n- Project Type: %s\n- Status: %s\n- Owner: %s\n- Your Role: %s\n\nView project: %s\n\nYou received this email because you have email notifications enabled for project updates.",
				d.ProjectName, d.ProjectType, d.ProjectStatus, d.OwnerName, d.MemberRole, d.ProjectURL),
		}

	default:
		return Message{
			Subject: "Notification from BuildBid",
			HTML:    "<p>You have a new notification.</p>",
			Text:    "You have a new notification.",
		}
	}
}

// formatPrice renders a price without trailing zeros, so 1200 becomes "1200"
// and 1200.5 becomes "1200.5".
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func formatDueDate(t *time.Time) string {
	if t == nil {
		return "No due date"
	}
	return t.Format("1/2/2006")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
