package dto

import "github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"

// ── helpdesk module DTOs ──

// CreateTicketRequest raises a ticket.
type CreateTicketRequest struct {
	RaisedBy              string   `json:"raised_by"               binding:"required"`
	RaisedByName          string   `json:"raised_by_name"          binding:"required"`
	Category              string   `json:"category"                binding:"required"`
	Priority              string   `json:"priority"                binding:"required,oneof=Low Medium High Critical"`
	Subject               string   `json:"subject"                 binding:"required,min=3,max=200"`
	Description           string   `json:"description"             binding:"omitempty,max=5000"`
	AssignedTo            string   `json:"assigned_to"`
	AssignedToName        string   `json:"assigned_to_name"`
	AccountablePerson     string   `json:"accountable_person"`
	AccountablePersonName string   `json:"accountable_person_name"`
	DesiredDate           string   `json:"desired_date"`
	Attachments           []string `json:"attachments"`
}

// UpdateTicketRequest edits ticket fields; nil fields stay untouched.
type UpdateTicketRequest struct {
	Category              *string   `json:"category"`
	Priority              *string   `json:"priority" binding:"omitempty,oneof=Low Medium High Critical"`
	Subject               *string   `json:"subject"  binding:"omitempty,min=3,max=200"`
	Description           *string   `json:"description"`
	AssignedTo            *string   `json:"assigned_to"`
	AssignedToName        *string   `json:"assigned_to_name"`
	AccountablePerson     *string   `json:"accountable_person"`
	AccountablePersonName *string   `json:"accountable_person_name"`
	DesiredDate           *string   `json:"desired_date"`
	Attachments           *[]string `json:"attachments"`
}

// UpdateTicketStatusRequest moves a ticket to another status.
// Independent of adding remarks.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TicketListRequest is the list query.
type TicketListRequest struct {
	Statuses    []string `form:"status"`
	Priorities  []string `form:"priority"`
	Categories  []string `form:"category"`
	AssignedTo  string   `form:"assigned_to"`
	RaisedBy    string   `form:"raised_by"`
	CreatedFrom string   `form:"created_from"`
	CreatedTo   string   `form:"created_to"`
	Search      string   `form:"search"`
	SortBy      string   `form:"sort_by"` // created_at | priority | status
	SortDesc    bool     `form:"sort_desc"`
	Page        int      `form:"page,default=1"`
}

// TicketResponse is one ticket row.
type TicketResponse struct {
	model.HelpdeskTicket
	DesiredDateDisplay string `json:"desired_date_display,omitempty"`
}
