package repository

import (
	"context"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

// departments sheet, columns A:C.
const (
	departmentsSheet = "departments"
	departmentsRange = "A2:C"
)

const (
	deptColID = iota
	deptColName
	deptColCreatedAt
)

// DepartmentRepository manages the departments sheet.
type DepartmentRepository interface {
	List(ctx context.Context) ([]model.Department, error)
	Create(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id string) error
}

type departmentRepo struct {
	store sheets.Store
}

// NewDepartmentRepo creates a DepartmentRepository.
func NewDepartmentRepo(store sheets.Store) DepartmentRepository {
	return &departmentRepo{store: store}
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	rows, err := r.store.ReadRows(ctx, departmentsSheet, departmentsRange)
	if err != nil {
		return nil, err
	}
	depts := make([]model.Department, 0, len(rows))
	for _, row := range rows {
		if sheets.Cell(row, deptColID) == "" {
			continue
		}
		depts = append(depts, model.Department{
			ID:        sheets.Cell(row, deptColID),
			Name:      sheets.Cell(row, deptColName),
			CreatedAt: sheets.Cell(row, deptColCreatedAt),
		})
	}
	return depts, nil
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.store.AppendRow(ctx, departmentsSheet, []string{dept.ID, dept.Name, dept.CreatedAt})
}

func (r *departmentRepo) Delete(ctx context.Context, id string) error {
	rows, err := r.store.ReadRows(ctx, departmentsSheet, departmentsRange)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if sheets.Cell(row, deptColID) == id {
			return r.store.DeleteRow(ctx, departmentsSheet, sheets.Row(i))
		}
	}
	return ErrNotFound
}
