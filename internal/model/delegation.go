package model

import "strings"

// DelegationStatus is the stored status of a delegation. The store
// historically holds free-form text; only five values are recognized
// as explicit overrides, anything else (including empty) falls back to
// the date-derived status.
type DelegationStatus string

const (
	DelegationNeedClarity     DelegationStatus = "need_clarity"
	DelegationApprovalWaiting DelegationStatus = "approval_waiting"
	DelegationCompleted       DelegationStatus = "completed"
	DelegationNeedRevision    DelegationStatus = "need_revision"
	DelegationHold            DelegationStatus = "hold"

	// DelegationUnrecognized tags legacy free-text values; display
	// status for these is derived from the due date.
	DelegationUnrecognized DelegationStatus = ""
)

// ParseDelegationStatus classifies a stored status string.
// Matching is case-insensitive; unrecognized text maps to
// DelegationUnrecognized while Raw keeps what the store held.
func ParseDelegationStatus(raw string) (DelegationStatus, bool) {
	switch DelegationStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case DelegationNeedClarity:
		return DelegationNeedClarity, true
	case DelegationApprovalWaiting:
		return DelegationApprovalWaiting, true
	case DelegationCompleted:
		return DelegationCompleted, true
	case DelegationNeedRevision:
		return DelegationNeedRevision, true
	case DelegationHold:
		return DelegationHold, true
	default:
		return DelegationUnrecognized, false
	}
}

// Delegation priorities, ranked high > medium > low for sorting.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Delegation is a row of the delegations sheet.
type Delegation struct {
	ID               string   `json:"id"`
	DelegationName   string   `json:"delegation_name"`
	Description      string   `json:"description"`
	AssignedTo       string   `json:"assigned_to"`
	DoerName         string   `json:"doer_name"`
	Department       string   `json:"department"`
	Priority         string   `json:"priority"` // low | medium | high
	Status           string   `json:"status"`   // raw stored text, see ParseDelegationStatus
	DueDate          string   `json:"due_date"`
	VoiceNoteURL     string   `json:"voice_note_url,omitempty"`
	ReferenceDocs    []string `json:"reference_docs"`
	EvidenceRequired bool     `json:"evidence_required"`
	CreatedAt        string   `json:"created_at"`
}

// DelegationRemark is an append-only note on a delegation.
type DelegationRemark struct {
	ID           string `json:"id"`
	DelegationID string `json:"delegation_id"`
	Author       string `json:"author"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at"`
}

// DelegationRevision is one entry of the append-only audit trail kept
// for status and due-date changes.
type DelegationRevision struct {
	ID           string `json:"id"`
	DelegationID string `json:"delegation_id"`
	Field        string `json:"field"` // "status" | "due_date"
	OldValue     string `json:"old_value"`
	NewValue     string `json:"new_value"`
	ChangedBy    string `json:"changed_by"`
	CreatedAt    string `json:"created_at"`
}
