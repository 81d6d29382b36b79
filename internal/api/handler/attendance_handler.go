package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/query"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// AttendanceHandler serves the check-in/out endpoints.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn opens today's record for the caller.
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	userName, ok := MustGetUserName(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckIn(c.Request.Context(), &dto.CheckInRequest{
		UserID:   userID,
		UserName: userName,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) {
			response.Conflict(c, 121, "already checked in today")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// CheckOut closes today's open record for the caller.
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckOut(c.Request.Context(), &dto.CheckOutRequest{UserID: userID})
	if err != nil {
		if errors.Is(err, service.ErrNoCheckInFound) {
			response.Conflict(c, 122, "no open check-in found for today")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Status reports the caller's derived state for today.
// GET /api/v1/attendance/status
func (h *AttendanceHandler) Status(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CurrentStatus(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List returns attendance rows, filterable by user and date range.
// GET /api/v1/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 100, "invalid query parameters")
		return
	}

	list, total, page, totalPages, err := h.attendanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page, query.PageSize, totalPages)
}
