package model

// Attendance stored statuses. The per-day user state (IDLE before any
// check-in) is derived from record existence, never stored.
const (
	AttendanceStatusIn        = "IN"
	AttendanceStatusCompleted = "COMPLETED"
)

// Derived per-day states reported to the client.
const (
	DayStateIdle      = "IDLE"
	DayStateCheckedIn = "CHECKED_IN"
	DayStateCompleted = "COMPLETED"
)

// AttendanceRecord is a row of the attendance sheet.
// ID is the composite userID_date; at most one row exists per
// (user, date). Created on first check-in, mutated once on check-out,
// never deleted.
type AttendanceRecord struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Date     string `json:"date"`               // YYYY-MM-DD
	InTime   string `json:"in_time,omitempty"`  // YYYY-MM-DD HH:mm:ss
	OutTime  string `json:"out_time,omitempty"` // YYYY-MM-DD HH:mm:ss
	Status   string `json:"status"`             // IN | COMPLETED
}

// Open reports whether the record has a check-in without a check-out.
func (r *AttendanceRecord) Open() bool {
	return r.InTime != "" && r.OutTime == ""
}
