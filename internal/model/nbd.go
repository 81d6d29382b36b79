package model

// NBD party types.
const (
	NBDDealer    = "DEALER"
	NBDPrinter   = "PRINTER"
	NBDAgency    = "AGENCY"
	NBDCorporate = "CORPORATE"
)

// ValidNBDType reports whether t is a recognized party type.
func ValidNBDType(t string) bool {
	switch t {
	case NBDDealer, NBDPrinter, NBDAgency, NBDCorporate:
		return true
	}
	return false
}

// NBDStages is the pipeline order START → ORDER AWAITED.
var NBDStages = []string{
	"START",
	"DEMO",
	"SAMPLING",
	"QUOTATION",
	"NEGOTIATION",
	"ORDER AWAITED",
}

// ValidNBDStage reports whether s is a pipeline stage.
func ValidNBDStage(s string) bool {
	for _, stage := range NBDStages {
		if stage == s {
			return true
		}
	}
	return false
}

// CRRShiftThreshold is the won-order count at which an NBD becomes
// eligible for the bulk shift to the CRR record set.
const CRRShiftThreshold = 3

// NBD is a row of the nbd_records sheet. FollowUpDate is computed at
// creation as created date + TATDays and can later be superseded by a
// follow-up override.
type NBD struct {
	ID              string `json:"id"`
	PartyName       string `json:"party_name"`
	Type            string `json:"type"`
	ContactPerson   string `json:"contact_person"`
	Email           string `json:"email"`
	Phone1          string `json:"phone1"`
	Phone2          string `json:"phone2,omitempty"`
	Location        string `json:"location"`
	State           string `json:"state"`
	Stage           string `json:"stage"`
	TATDays         int    `json:"tat_days"`
	FollowUpDate    string `json:"follow_up_date"`
	FieldPersonName string `json:"field_person_name"`
	Remarks         string `json:"remarks,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// Follow-up statuses. Empty status means the effective status is
// derived from the follow-up date.
const (
	FollowUpNotAnswered = "Not Answered"
	FollowUpCallLater   = "Call Later"
	FollowUpDead        = "Dead"
	FollowUpOrderWon    = "Order Won"
)

// ValidFollowUpStatus reports whether s is a recognized override.
func ValidFollowUpStatus(s string) bool {
	switch s {
	case FollowUpNotAnswered, FollowUpCallLater, FollowUpDead, FollowUpOrderWon:
		return true
	}
	return false
}

// FollowUp is a row of the nbd_followups sheet. History is append-only;
// the latest row for an NBD is its effective override. OrderWonCount is
// carried forward on each row so the latest one always holds the total.
type FollowUp struct {
	ID               string `json:"id"`
	NBDID            string `json:"nbd_id"`
	Status           string `json:"status"`
	Remark           string `json:"remark,omitempty"`
	NextFollowUpDate string `json:"next_follow_up_date,omitempty"`
	Type             string `json:"type,omitempty"` // reason code
	OrderWonCount    int    `json:"order_won_count"`
	CreatedAt        string `json:"created_at"`
}
