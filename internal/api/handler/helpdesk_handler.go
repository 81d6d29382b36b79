package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/query"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// HelpdeskHandler serves the IT ticket endpoints.
type HelpdeskHandler struct {
	helpdeskSvc service.HelpdeskService
}

// NewHelpdeskHandler creates a HelpdeskHandler.
func NewHelpdeskHandler(helpdeskSvc service.HelpdeskService) *HelpdeskHandler {
	return &HelpdeskHandler{helpdeskSvc: helpdeskSvc}
}

// List returns tickets with filters, sorting and pagination.
// GET /api/v1/helpdesk/tickets
func (h *HelpdeskHandler) List(c *gin.Context) {
	var req dto.TicketListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 100, "invalid query parameters")
		return
	}

	list, total, page, totalPages, err := h.helpdeskSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page, query.PageSize, totalPages)
}

// Get returns one ticket.
// GET /api/v1/helpdesk/tickets/:id
func (h *HelpdeskHandler) Get(c *gin.Context) {
	result, err := h.helpdeskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Create raises a ticket.
// POST /api/v1/helpdesk/tickets
func (h *HelpdeskHandler) Create(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.helpdeskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, result)
}

// Update edits ticket fields; the status has its own endpoint.
// PATCH /api/v1/helpdesk/tickets/:id
func (h *HelpdeskHandler) Update(c *gin.Context) {
	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.helpdeskSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// UpdateStatus moves a ticket between statuses.
// PUT /api/v1/helpdesk/tickets/:id/status
func (h *HelpdeskHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.helpdeskSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete removes a ticket.
// DELETE /api/v1/helpdesk/tickets/:id
func (h *HelpdeskHandler) Delete(c *gin.Context) {
	if err := h.helpdeskSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListRemarks returns the remark thread.
// GET /api/v1/helpdesk/tickets/:id/remarks
func (h *HelpdeskHandler) ListRemarks(c *gin.Context) {
	remarks, err := h.helpdeskSvc.ListRemarks(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, remarks)
}

// AddRemark appends to the remark thread, regardless of status.
// POST /api/v1/helpdesk/tickets/:id/remarks
func (h *HelpdeskHandler) AddRemark(c *gin.Context) {
	userName, ok := MustGetUserName(c)
	if !ok {
		return
	}

	var req dto.AddRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	remark, err := h.helpdeskSvc.AddRemark(c.Request.Context(), c.Param("id"), &req, userName)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, remark)
}

func (h *HelpdeskHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		response.NotFound(c, 141, "ticket not found")
	case errors.Is(err, service.ErrInvalidTicketStatus):
		response.BadRequest(c, 142, "invalid ticket status")
	case errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, 143, "invalid ticket category")
	default:
		response.InternalError(c)
	}
}
