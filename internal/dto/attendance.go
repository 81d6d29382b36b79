package dto

import "github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"

// ── attendance module DTOs ──

// CheckInRequest starts the working day for a user.
type CheckInRequest struct {
	UserID   string `json:"user_id"   binding:"required"`
	UserName string `json:"user_name" binding:"required"`
}

// CheckOutRequest closes today's open record for a user.
type CheckOutRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// AttendanceListRequest is the list query.
type AttendanceListRequest struct {
	UserID   string `form:"user_id"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page,default=1"`
}

// AttendanceResponse is one attendance row plus display dates.
type AttendanceResponse struct {
	model.AttendanceRecord
	DateDisplay string `json:"date_display"`
}

// DayStateResponse reports the derived per-day state after an action
// or a status probe.
type DayStateResponse struct {
	UserID        string                  `json:"user_id"`
	Date          string                  `json:"date"`
	CurrentStatus string                  `json:"current_status"` // IDLE | CHECKED_IN | COMPLETED
	Record        *model.AttendanceRecord `json:"record,omitempty"`
}
