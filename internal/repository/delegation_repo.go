package repository

import (
	"context"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

// delegations sheet, columns A:M; remarks and revision history live in
// their own append-only sheets.
const (
	delegationsSheet = "delegations"
	delegationsRange = "A2:M"

	delegationRemarksSheet = "delegation_remarks"
	delegationRemarksRange = "A2:E"

	delegationRevisionsSheet = "delegation_revisions"
	delegationRevisionsRange = "A2:G"
)

const (
	delColID = iota
	delColName
	delColDescription
	delColAssignedTo
	delColDoerName
	delColDepartment
	delColPriority
	delColStatus
	delColDueDate
	delColVoiceNoteURL
	delColReferenceDocs
	delColEvidenceRequired
	delColCreatedAt
)

// DelegationRepository manages delegations plus their remark and
// revision sheets.
type DelegationRepository interface {
	List(ctx context.Context) ([]model.Delegation, error)
	GetByID(ctx context.Context, id string) (*model.Delegation, error)
	Create(ctx context.Context, d *model.Delegation) error
	Update(ctx context.Context, d *model.Delegation) error
	Delete(ctx context.Context, id string) error

	ListRemarks(ctx context.Context, delegationID string) ([]model.DelegationRemark, error)
	AppendRemark(ctx context.Context, remark *model.DelegationRemark) error

	ListRevisions(ctx context.Context, delegationID string) ([]model.DelegationRevision, error)
	AppendRevision(ctx context.Context, rev *model.DelegationRevision) error
}

type delegationRepo struct {
	store sheets.Store
}

// NewDelegationRepo creates a DelegationRepository.
func NewDelegationRepo(store sheets.Store) DelegationRepository {
	return &delegationRepo{store: store}
}

func decodeDelegation(row []string) model.Delegation {
	return model.Delegation{
		ID:               sheets.Cell(row, delColID),
		DelegationName:   sheets.Cell(row, delColName),
		Description:      sheets.Cell(row, delColDescription),
		AssignedTo:       sheets.Cell(row, delColAssignedTo),
		DoerName:         sheets.Cell(row, delColDoerName),
		Department:       sheets.Cell(row, delColDepartment),
		Priority:         sheets.Cell(row, delColPriority),
		Status:           sheets.Cell(row, delColStatus),
		DueDate:          sheets.Cell(row, delColDueDate),
		VoiceNoteURL:     sheets.Cell(row, delColVoiceNoteURL),
		ReferenceDocs:    decodeDocList(sheets.Cell(row, delColReferenceDocs)),
		EvidenceRequired: decodeBool(sheets.Cell(row, delColEvidenceRequired)),
		CreatedAt:        sheets.Cell(row, delColCreatedAt),
	}
}

func encodeDelegation(d *model.Delegation) []string {
	return []string{
		d.ID, d.DelegationName, d.Description, d.AssignedTo, d.DoerName,
		d.Department, d.Priority, d.Status, d.DueDate, d.VoiceNoteURL,
		encodeDocList(d.ReferenceDocs), encodeBool(d.EvidenceRequired),
		d.CreatedAt,
	}
}

func (r *delegationRepo) List(ctx context.Context) ([]model.Delegation, error) {
	rows, err := r.store.ReadRows(ctx, delegationsSheet, delegationsRange)
	if err != nil {
		return nil, err
	}
	out := make([]model.Delegation, 0, len(rows))
	for _, row := range rows {
		if sheets.Cell(row, delColID) == "" {
			continue
		}
		out = append(out, decodeDelegation(row))
	}
	return out, nil
}

func (r *delegationRepo) find(ctx context.Context, id string) (*model.Delegation, int, error) {
	rows, err := r.store.ReadRows(ctx, delegationsSheet, delegationsRange)
	if err != nil {
		return nil, 0, err
	}
	for i, row := range rows {
		if sheets.Cell(row, delColID) == id {
			d := decodeDelegation(row)
			return &d, i, nil
		}
	}
	return nil, 0, ErrNotFound
}

func (r *delegationRepo) GetByID(ctx context.Context, id string) (*model.Delegation, error) {
	d, _, err := r.find(ctx, id)
	return d, err
}

func (r *delegationRepo) Create(ctx context.Context, d *model.Delegation) error {
	return r.store.AppendRow(ctx, delegationsSheet, encodeDelegation(d))
}

func (r *delegationRepo) Update(ctx context.Context, d *model.Delegation) error {
	_, i, err := r.find(ctx, d.ID)
	if err != nil {
		return err
	}
	rng := sheets.RowRange(i, "A", "M")
	return r.store.UpdateRange(ctx, delegationsSheet, rng, [][]string{encodeDelegation(d)})
}

func (r *delegationRepo) Delete(ctx context.Context, id string) error {
	_, i, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	return r.store.DeleteRow(ctx, delegationsSheet, sheets.Row(i))
}

// ── remarks ──

func (r *delegationRepo) ListRemarks(ctx context.Context, delegationID string) ([]model.DelegationRemark, error) {
	rows, err := r.store.ReadRows(ctx, delegationRemarksSheet, delegationRemarksRange)
	if err != nil {
		return nil, err
	}
	out := make([]model.DelegationRemark, 0)
	for _, row := range rows {
		if sheets.Cell(row, 1) != delegationID {
			continue
		}
		out = append(out, model.DelegationRemark{
			ID:           sheets.Cell(row, 0),
			DelegationID: sheets.Cell(row, 1),
			Author:       sheets.Cell(row, 2),
			Text:         sheets.Cell(row, 3),
			CreatedAt:    sheets.Cell(row, 4),
		})
	}
	return out, nil
}

func (r *delegationRepo) AppendRemark(ctx context.Context, remark *model.DelegationRemark) error {
	return r.store.AppendRow(ctx, delegationRemarksSheet, []string{
		remark.ID, remark.DelegationID, remark.Author, remark.Text, remark.CreatedAt,
	})
}

// ── revision history ──

func (r *delegationRepo) ListRevisions(ctx context.Context, delegationID string) ([]model.DelegationRevision, error) {
	rows, err := r.store.ReadRows(ctx, delegationRevisionsSheet, delegationRevisionsRange)
	if err != nil {
		return nil, err
	}
	out := make([]model.DelegationRevision, 0)
	for _, row := range rows {
		if sheets.Cell(row, 1) != delegationID {
			continue
		}
		out = append(out, model.DelegationRevision{
			ID:           sheets.Cell(row, 0),
			DelegationID: sheets.Cell(row, 1),
			Field:        sheets.Cell(row, 2),
			OldValue:     sheets.Cell(row, 3),
			NewValue:     sheets.Cell(row, 4),
			ChangedBy:    sheets.Cell(row, 5),
			CreatedAt:    sheets.Cell(row, 6),
		})
	}
	return out, nil
}

func (r *delegationRepo) AppendRevision(ctx context.Context, rev *model.DelegationRevision) error {
	return r.store.AppendRow(ctx, delegationRevisionsSheet, []string{
		rev.ID, rev.DelegationID, rev.Field, rev.OldValue, rev.NewValue,
		rev.ChangedBy, rev.CreatedAt,
	})
}
