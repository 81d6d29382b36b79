package dto

import "github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"

// ── NBD module DTOs ──

// CreateNBDRequest registers a new business-development party. The
// first follow-up date is computed server-side as created date + TAT.
type CreateNBDRequest struct {
	PartyName       string `json:"party_name"        binding:"required,min=2,max=200"`
	Type            string `json:"type"              binding:"required,oneof=DEALER PRINTER AGENCY CORPORATE"`
	ContactPerson   string `json:"contact_person"    binding:"required,max=100"`
	Email           string `json:"email"             binding:"omitempty,email"`
	Phone1          string `json:"phone1"            binding:"required,max=20"`
	Phone2          string `json:"phone2"            binding:"omitempty,max=20"`
	Location        string `json:"location"          binding:"omitempty,max=100"`
	State           string `json:"state"             binding:"omitempty,max=100"`
	Stage           string `json:"stage"             binding:"omitempty"`
	TATDays         int    `json:"tat_days"          binding:"required,min=1,max=365"`
	FieldPersonName string `json:"field_person_name" binding:"omitempty,max=100"`
	Remarks         string `json:"remarks"           binding:"omitempty,max=2000"`
}

// UpdateNBDRequest edits an NBD record; nil fields stay untouched.
type UpdateNBDRequest struct {
	PartyName       *string `json:"party_name" binding:"omitempty,min=2,max=200"`
	Type            *string `json:"type"       binding:"omitempty,oneof=DEALER PRINTER AGENCY CORPORATE"`
	ContactPerson   *string `json:"contact_person"`
	Email           *string `json:"email"      binding:"omitempty,email"`
	Phone1          *string `json:"phone1"`
	Phone2          *string `json:"phone2"`
	Location        *string `json:"location"`
	State           *string `json:"state"`
	Stage           *string `json:"stage"`
	TATDays         *int    `json:"tat_days"   binding:"omitempty,min=1,max=365"`
	FieldPersonName *string `json:"field_person_name"`
	Remarks         *string `json:"remarks"`
}

// NBDListRequest is the list query.
type NBDListRequest struct {
	Types            []string `form:"type"`
	Stages           []string `form:"stage"`
	States           []string `form:"state"`
	FieldPerson      string   `form:"field_person"`
	FollowUpDateFrom string   `form:"follow_up_date_from"`
	FollowUpDateTo   string   `form:"follow_up_date_to"`
	Search           string   `form:"search"`
	SortBy           string   `form:"sort_by"` // party_name | follow_up_date | stage
	SortDesc         bool     `form:"sort_desc"`
	Page             int      `form:"page,default=1"`
}

// NBDResponse is one NBD record plus its effective follow-up view,
// resolved from the latest follow-up override when one exists.
type NBDResponse struct {
	model.NBD
	EffectiveStatus       string `json:"effective_status"`
	EffectiveFollowUpDate string `json:"effective_follow_up_date"`
	EffectiveRemark       string `json:"effective_remark,omitempty"`
	OrderWonCount         int    `json:"order_won_count"`
	CRREligible           bool   `json:"crr_eligible"`
}

// AddFollowUpRequest appends a follow-up record.
type AddFollowUpRequest struct {
	Status           string `json:"status"              binding:"omitempty,oneof='Not Answered' 'Call Later' 'Dead' 'Order Won'"`
	Remark           string `json:"remark"              binding:"omitempty,max=2000"`
	NextFollowUpDate string `json:"next_follow_up_date" binding:"omitempty"`
	Type             string `json:"type"                binding:"omitempty,max=50"`
}

// ShiftToCRRRequest bulk-moves eligible records out of the NBD set.
type ShiftToCRRRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ShiftToCRRResponse reports the outcome per id.
type ShiftToCRRResponse struct {
	Shifted []string `json:"shifted"`
	Skipped []string `json:"skipped"` // not found or below the threshold
}
