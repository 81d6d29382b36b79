package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/query"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// NBDHandler serves the sales-pipeline endpoints.
type NBDHandler struct {
	nbdSvc service.NBDService
}

// NewNBDHandler creates an NBDHandler.
func NewNBDHandler(nbdSvc service.NBDService) *NBDHandler {
	return &NBDHandler{nbdSvc: nbdSvc}
}

// List returns NBD records with filters, sorting and pagination.
// GET /api/v1/nbd
func (h *NBDHandler) List(c *gin.Context) {
	var req dto.NBDListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 100, "invalid query parameters")
		return
	}

	list, total, page, totalPages, err := h.nbdSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page, query.PageSize, totalPages)
}

// Get returns one NBD record with its effective follow-up view.
// GET /api/v1/nbd/:id
func (h *NBDHandler) Get(c *gin.Context) {
	result, err := h.nbdSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Create registers a new party.
// POST /api/v1/nbd
func (h *NBDHandler) Create(c *gin.Context) {
	var req dto.CreateNBDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.nbdSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, result)
}

// Update edits an NBD record.
// PATCH /api/v1/nbd/:id
func (h *NBDHandler) Update(c *gin.Context) {
	var req dto.UpdateNBDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.nbdSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete removes an NBD record.
// DELETE /api/v1/nbd/:id
func (h *NBDHandler) Delete(c *gin.Context) {
	if err := h.nbdSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListFollowUps returns the follow-up history, oldest first.
// GET /api/v1/nbd/:id/followups
func (h *NBDHandler) ListFollowUps(c *gin.Context) {
	history, err := h.nbdSvc.ListFollowUps(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, history)
}

// AddFollowUp appends a follow-up record.
// POST /api/v1/nbd/:id/followups
func (h *NBDHandler) AddFollowUp(c *gin.Context) {
	var req dto.AddFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	fu, err := h.nbdSvc.AddFollowUp(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, fu)
}

// ListCRREligible returns records past the won-order threshold.
// GET /api/v1/nbd/crr-eligible
func (h *NBDHandler) ListCRREligible(c *gin.Context) {
	list, err := h.nbdSvc.ListCRREligible(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// ShiftToCRR bulk-moves eligible records out of the NBD set.
// POST /api/v1/nbd/shift-to-crr
func (h *NBDHandler) ShiftToCRR(c *gin.Context) {
	var req dto.ShiftToCRRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.nbdSvc.ShiftToCRR(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

func (h *NBDHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNBDNotFound):
		response.NotFound(c, 151, "nbd record not found")
	case errors.Is(err, service.ErrInvalidStage):
		response.BadRequest(c, 152, "invalid pipeline stage")
	default:
		response.InternalError(c)
	}
}
