package model

// Helpdesk ticket statuses. The flow is not a guarded transition
// table: any status may move to any other. Entering solved or closed
// stamps ResolvedAt; every other move leaves it untouched.
const (
	TicketRaised     = "raised"
	TicketVerified   = "verified"
	TicketInProgress = "in-progress"
	TicketSolved     = "solved"
	TicketFollowUp   = "follow-up"
	TicketClosed     = "closed"
)

// ValidTicketStatus reports whether s is one of the six statuses.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketRaised, TicketVerified, TicketInProgress, TicketSolved, TicketFollowUp, TicketClosed:
		return true
	}
	return false
}

// Helpdesk priorities, ranked Critical > High > Medium > Low.
const (
	TicketPriorityLow      = "Low"
	TicketPriorityMedium   = "Medium"
	TicketPriorityHigh     = "High"
	TicketPriorityCritical = "Critical"
)

// TicketCategories is the fixed category list.
var TicketCategories = []string{
	"Hardware",
	"Software",
	"Network",
	"Email",
	"Access Request",
	"Printer",
	"Other",
}

// ValidTicketCategory reports whether c is in the fixed list.
func ValidTicketCategory(c string) bool {
	for _, cat := range TicketCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// HelpdeskTicket is a row of the helpdesk_tickets sheet.
type HelpdeskTicket struct {
	ID                    string   `json:"id"`
	TicketNumber          string   `json:"ticket_number"`
	RaisedBy              string   `json:"raised_by"`
	RaisedByName          string   `json:"raised_by_name"`
	Category              string   `json:"category"`
	Priority              string   `json:"priority"`
	Subject               string   `json:"subject"`
	Description           string   `json:"description"`
	AssignedTo            string   `json:"assigned_to,omitempty"`
	AssignedToName        string   `json:"assigned_to_name,omitempty"`
	AccountablePerson     string   `json:"accountable_person,omitempty"`
	AccountablePersonName string   `json:"accountable_person_name,omitempty"`
	DesiredDate           string   `json:"desired_date,omitempty"`
	Status                string   `json:"status"`
	Attachments           []string `json:"attachments"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
	ResolvedAt            string   `json:"resolved_at,omitempty"`
}

// TicketRemark is an append-only note on a ticket. Adding one never
// changes the ticket status.
type TicketRemark struct {
	ID        string `json:"id"`
	TicketID  string `json:"ticket_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
