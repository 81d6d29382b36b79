package dto

import "github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"

// ── delegation module DTOs ──

// CreateDelegationRequest creates a delegation.
type CreateDelegationRequest struct {
	DelegationName   string   `json:"delegation_name" binding:"required,min=2,max=200"`
	Description      string   `json:"description"     binding:"omitempty,max=2000"`
	AssignedTo       string   `json:"assigned_to"     binding:"required"`
	DoerName         string   `json:"doer_name"       binding:"omitempty,max=100"`
	Department       string   `json:"department"      binding:"omitempty,max=100"`
	Priority         string   `json:"priority"        binding:"required,oneof=low medium high"`
	DueDate          string   `json:"due_date"        binding:"required"`
	VoiceNoteURL     string   `json:"voice_note_url"  binding:"omitempty,url"`
	ReferenceDocs    []string `json:"reference_docs"`
	EvidenceRequired bool     `json:"evidence_required"`
}

// UpdateDelegationRequest updates a delegation; nil fields are left
// untouched. Status and due-date changes land in the revision history.
type UpdateDelegationRequest struct {
	DelegationName   *string   `json:"delegation_name" binding:"omitempty,min=2,max=200"`
	Description      *string   `json:"description"     binding:"omitempty,max=2000"`
	AssignedTo       *string   `json:"assigned_to"`
	DoerName         *string   `json:"doer_name"`
	Department       *string   `json:"department"`
	Priority         *string   `json:"priority"        binding:"omitempty,oneof=low medium high"`
	Status           *string   `json:"status"`
	DueDate          *string   `json:"due_date"`
	VoiceNoteURL     *string   `json:"voice_note_url"  binding:"omitempty,url"`
	ReferenceDocs    *[]string `json:"reference_docs"`
	EvidenceRequired *bool     `json:"evidence_required"`
}

// DelegationListRequest is the list query: multi-selects arrive as
// repeated query params, dates bound a range over the due date.
type DelegationListRequest struct {
	Priorities  []string `form:"priority"`
	Statuses    []string `form:"status"`
	Department  string   `form:"department"`
	AssignedTo  string   `form:"assigned_to"`
	DueDateFrom string   `form:"due_date_from"`
	DueDateTo   string   `form:"due_date_to"`
	Search      string   `form:"search"`
	SortBy      string   `form:"sort_by"`   // due_date | priority | name
	SortDesc    bool     `form:"sort_desc"`
	Page        int      `form:"page,default=1"`
}

// DelegationResponse is one delegation plus its derived display fields.
type DelegationResponse struct {
	model.Delegation
	EffectiveStatus string `json:"effective_status"`
	DueDateDisplay  string `json:"due_date_display"`
}

// AddRemarkRequest appends a remark.
type AddRemarkRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}
