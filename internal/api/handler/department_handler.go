package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// DepartmentHandler serves the shared department list.
type DepartmentHandler struct {
	departmentSvc service.DepartmentService
}

// NewDepartmentHandler creates a DepartmentHandler.
func NewDepartmentHandler(departmentSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentSvc: departmentSvc}
}

// List returns every department.
// GET /api/v1/departments
func (h *DepartmentHandler) List(c *gin.Context) {
	depts, err := h.departmentSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, depts)
}

// Create adds a department.
// POST /api/v1/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	dept, err := h.departmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDepartmentExists) {
			response.Conflict(c, 171, "department already exists")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, dept)
}

// Delete removes a department.
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	if err := h.departmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.NotFound(c, 172, "department not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
