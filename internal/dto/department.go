package dto

// ── department module DTOs ──

// CreateDepartmentRequest adds a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
