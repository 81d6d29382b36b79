package repository

import (
	"context"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

// helpdesk_tickets sheet, columns A:R; remarks in their own sheet.
const (
	ticketsSheet = "helpdesk_tickets"
	ticketsRange = "A2:R"

	ticketRemarksSheet = "ticket_remarks"
	ticketRemarksRange = "A2:E"
)

const (
	tkColID = iota
	tkColNumber
	tkColRaisedBy
	tkColRaisedByName
	tkColCategory
	tkColPriority
	tkColSubject
	tkColDescription
	tkColAssignedTo
	tkColAssignedToName
	tkColAccountable
	tkColAccountableName
	tkColDesiredDate
	tkColStatus
	tkColAttachments
	tkColCreatedAt
	tkColUpdatedAt
	tkColResolvedAt
)

// HelpdeskRepository manages tickets plus their remark sheet.
type HelpdeskRepository interface {
	List(ctx context.Context) ([]model.HelpdeskTicket, error)
	GetByID(ctx context.Context, id string) (*model.HelpdeskTicket, error)
	Create(ctx context.Context, t *model.HelpdeskTicket) error
	Update(ctx context.Context, t *model.HelpdeskTicket) error
	Delete(ctx context.Context, id string) error
	// Count returns the number of ticket rows; used for numbering.
	Count(ctx context.Context) (int, error)

	ListRemarks(ctx context.Context, ticketID string) ([]model.TicketRemark, error)
	AppendRemark(ctx context.Context, remark *model.TicketRemark) error
}

type helpdeskRepo struct {
	store sheets.Store
}

// NewHelpdeskRepo creates a HelpdeskRepository.
func NewHelpdeskRepo(store sheets.Store) HelpdeskRepository {
	return &helpdeskRepo{store: store}
}

func decodeTicket(row []string) model.HelpdeskTicket {
	return model.HelpdeskTicket{
		ID:                    sheets.Cell(row, tkColID),
		TicketNumber:          sheets.Cell(row, tkColNumber),
		RaisedBy:              sheets.Cell(row, tkColRaisedBy),
		RaisedByName:          sheets.Cell(row, tkColRaisedByName),
		Category:              sheets.Cell(row, tkColCategory),
		Priority:              sheets.Cell(row, tkColPriority),
		Subject:               sheets.Cell(row, tkColSubject),
		Description:           sheets.Cell(row, tkColDescription),
		AssignedTo:            sheets.Cell(row, tkColAssignedTo),
		AssignedToName:        sheets.Cell(row, tkColAssignedToName),
		AccountablePerson:     sheets.Cell(row, tkColAccountable),
		AccountablePersonName: sheets.Cell(row, tkColAccountableName),
		DesiredDate:           sheets.Cell(row, tkColDesiredDate),
		Status:                sheets.Cell(row, tkColStatus),
		Attachments:           decodeDocList(sheets.Cell(row, tkColAttachments)),
		CreatedAt:             sheets.Cell(row, tkColCreatedAt),
		UpdatedAt:             sheets.Cell(row, tkColUpdatedAt),
		ResolvedAt:            sheets.Cell(row, tkColResolvedAt),
	}
}

func encodeTicket(t *model.HelpdeskTicket) []string {
	return []string{
		t.ID, t.TicketNumber, t.RaisedBy, t.RaisedByName, t.Category,
		t.Priority, t.Subject, t.Description, t.AssignedTo, t.AssignedToName,
		t.AccountablePerson, t.AccountablePersonName, t.DesiredDate,
		t.Status, encodeDocList(t.Attachments), t.CreatedAt, t.UpdatedAt,
		t.ResolvedAt,
	}
}

func (r *helpdeskRepo) List(ctx context.Context) ([]model.HelpdeskTicket, error) {
	rows, err := r.store.ReadRows(ctx, ticketsSheet, ticketsRange)
	if err != nil {
		return nil, err
	}
	out := make([]model.HelpdeskTicket, 0, len(rows))
	for _, row := range rows {
		if sheets.Cell(row, tkColID) == "" {
			continue
		}
		out = append(out, decodeTicket(row))
	}
	return out, nil
}

func (r *helpdeskRepo) find(ctx context.Context, id string) (*model.HelpdeskTicket, int, error) {
	rows, err := r.store.ReadRows(ctx, ticketsSheet, ticketsRange)
	if err != nil {
		return nil, 0, err
	}
	for i, row := range rows {
		if sheets.Cell(row, tkColID) == id {
			t := decodeTicket(row)
			return &t, i, nil
		}
	}
	return nil, 0, ErrNotFound
}

func (r *helpdeskRepo) GetByID(ctx context.Context, id string) (*model.HelpdeskTicket, error) {
	t, _, err := r.find(ctx, id)
	return t, err
}

func (r *helpdeskRepo) Create(ctx context.Context, t *model.HelpdeskTicket) error {
	return r.store.AppendRow(ctx, ticketsSheet, encodeTicket(t))
}

func (r *helpdeskRepo) Update(ctx context.Context, t *model.HelpdeskTicket) error {
	_, i, err := r.find(ctx, t.ID)
	if err != nil {
		return err
	}
	rng := sheets.RowRange(i, "A", "R")
	return r.store.UpdateRange(ctx, ticketsSheet, rng, [][]string{encodeTicket(t)})
}

func (r *helpdeskRepo) Delete(ctx context.Context, id string) error {
	_, i, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	return r.store.DeleteRow(ctx, ticketsSheet, sheets.Row(i))
}

func (r *helpdeskRepo) Count(ctx context.Context) (int, error) {
	rows, err := r.store.ReadRows(ctx, ticketsSheet, ticketsRange)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ── remarks ──

func (r *helpdeskRepo) ListRemarks(ctx context.Context, ticketID string) ([]model.TicketRemark, error) {
	rows, err := r.store.ReadRows(ctx, ticketRemarksSheet, ticketRemarksRange)
	if err != nil {
		return nil, err
	}
	out := make([]model.TicketRemark, 0)
	for _, row := range rows {
		if sheets.Cell(row, 1) != ticketID {
			continue
		}
		out = append(out, model.TicketRemark{
			ID:        sheets.Cell(row, 0),
			TicketID:  sheets.Cell(row, 1),
			Author:    sheets.Cell(row, 2),
			Text:      sheets.Cell(row, 3),
			CreatedAt: sheets.Cell(row, 4),
		})
	}
	return out, nil
}

func (r *helpdeskRepo) AppendRemark(ctx context.Context, remark *model.TicketRemark) error {
	return r.store.AppendRow(ctx, ticketRemarksSheet, []string{
		remark.ID, remark.TicketID, remark.Author, remark.Text, remark.CreatedAt,
	})
}
