package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/query"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// DelegationHandler serves the delegation endpoints.
type DelegationHandler struct {
	delegationSvc service.DelegationService
}

// NewDelegationHandler creates a DelegationHandler.
func NewDelegationHandler(delegationSvc service.DelegationService) *DelegationHandler {
	return &DelegationHandler{delegationSvc: delegationSvc}
}

// List returns delegations with filters, sorting and pagination.
// GET /api/v1/delegations
func (h *DelegationHandler) List(c *gin.Context) {
	var req dto.DelegationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 100, "invalid query parameters")
		return
	}

	list, total, page, totalPages, err := h.delegationSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page, query.PageSize, totalPages)
}

// Get returns one delegation.
// GET /api/v1/delegations/:id
func (h *DelegationHandler) Get(c *gin.Context) {
	result, err := h.delegationSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Create adds a delegation.
// POST /api/v1/delegations
func (h *DelegationHandler) Create(c *gin.Context) {
	var req dto.CreateDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.delegationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Update edits a delegation; status and due-date changes are audited.
// PATCH /api/v1/delegations/:id
func (h *DelegationHandler) Update(c *gin.Context) {
	userName, ok := MustGetUserName(c)
	if !ok {
		return
	}

	var req dto.UpdateDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.delegationSvc.Update(c.Request.Context(), c.Param("id"), &req, userName)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete removes a delegation.
// DELETE /api/v1/delegations/:id
func (h *DelegationHandler) Delete(c *gin.Context) {
	if err := h.delegationSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListRemarks returns the remark thread.
// GET /api/v1/delegations/:id/remarks
func (h *DelegationHandler) ListRemarks(c *gin.Context) {
	remarks, err := h.delegationSvc.ListRemarks(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, remarks)
}

// AddRemark appends to the remark thread.
// POST /api/v1/delegations/:id/remarks
func (h *DelegationHandler) AddRemark(c *gin.Context) {
	userName, ok := MustGetUserName(c)
	if !ok {
		return
	}

	var req dto.AddRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	remark, err := h.delegationSvc.AddRemark(c.Request.Context(), c.Param("id"), &req, userName)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, remark)
}

// ListRevisions returns the status / due-date audit trail.
// GET /api/v1/delegations/:id/revisions
func (h *DelegationHandler) ListRevisions(c *gin.Context) {
	revs, err := h.delegationSvc.ListRevisions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, revs)
}

func (h *DelegationHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrDelegationNotFound) {
		response.NotFound(c, 131, "delegation not found")
		return
	}
	response.InternalError(c)
}
