package repository

import (
	"context"
	"strconv"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

// nbd_records sheet, columns A:O; follow-up history in its own sheet.
const (
	nbdSheet = "nbd_records"
	nbdRange = "A2:O"

	followUpsSheet = "nbd_followups"
	followUpsRange = "A2:H"
)

const (
	nbdColID = iota
	nbdColPartyName
	nbdColType
	nbdColContactPerson
	nbdColEmail
	nbdColPhone1
	nbdColPhone2
	nbdColLocation
	nbdColState
	nbdColStage
	nbdColTATDays
	nbdColFollowUpDate
	nbdColFieldPerson
	nbdColRemarks
	nbdColCreatedAt
)

const (
	fuColID = iota
	fuColNBDID
	fuColStatus
	fuColRemark
	fuColNextDate
	fuColType
	fuColOrderWonCount
	fuColCreatedAt
)

// NBDRepository manages NBD records plus their follow-up history.
type NBDRepository interface {
	List(ctx context.Context) ([]model.NBD, error)
	GetByID(ctx context.Context, id string) (*model.NBD, error)
	Create(ctx context.Context, n *model.NBD) error
	Update(ctx context.Context, n *model.NBD) error
	Delete(ctx context.Context, id string) error

	// ListFollowUps returns the append-order history for one NBD.
	ListFollowUps(ctx context.Context, nbdID string) ([]model.FollowUp, error)
	// ListAllFollowUps returns the whole follow-up sheet; callers
	// bucket by NBD id to avoid one range read per record.
	ListAllFollowUps(ctx context.Context) ([]model.FollowUp, error)
	AppendFollowUp(ctx context.Context, fu *model.FollowUp) error
}

type nbdRepo struct {
	store sheets.Store
}

// NewNBDRepo creates an NBDRepository.
func NewNBDRepo(store sheets.Store) NBDRepository {
	return &nbdRepo{store: store}
}

func decodeNBD(row []string) model.NBD {
	tat, _ := strconv.Atoi(sheets.Cell(row, nbdColTATDays))
	return model.NBD{
		ID:              sheets.Cell(row, nbdColID),
		PartyName:       sheets.Cell(row, nbdColPartyName),
		Type:            sheets.Cell(row, nbdColType),
		ContactPerson:   sheets.Cell(row, nbdColContactPerson),
		Email:           sheets.Cell(row, nbdColEmail),
		Phone1:          sheets.Cell(row, nbdColPhone1),
		Phone2:          sheets.Cell(row, nbdColPhone2),
		Location:        sheets.Cell(row, nbdColLocation),
		State:           sheets.Cell(row, nbdColState),
		Stage:           sheets.Cell(row, nbdColStage),
		TATDays:         tat,
		FollowUpDate:    sheets.Cell(row, nbdColFollowUpDate),
		FieldPersonName: sheets.Cell(row, nbdColFieldPerson),
		Remarks:         sheets.Cell(row, nbdColRemarks),
		CreatedAt:       sheets.Cell(row, nbdColCreatedAt),
	}
}

func encodeNBD(n *model.NBD) []string {
	return []string{
		n.ID, n.PartyName, n.Type, n.ContactPerson, n.Email, n.Phone1,
		n.Phone2, n.Location, n.State, n.Stage, strconv.Itoa(n.TATDays),
		n.FollowUpDate, n.FieldPersonName, n.Remarks, n.CreatedAt,
	}
}

func decodeFollowUp(row []string) model.FollowUp {
	count, _ := strconv.Atoi(sheets.Cell(row, fuColOrderWonCount))
	return model.FollowUp{
		ID:               sheets.Cell(row, fuColID),
		NBDID:            sheets.Cell(row, fuColNBDID),
		Status:           sheets.Cell(row, fuColStatus),
		Remark:           sheets.Cell(row, fuColRemark),
		NextFollowUpDate: sheets.Cell(row, fuColNextDate),
		Type:             sheets.Cell(row, fuColType),
		OrderWonCount:    count,
		CreatedAt:        sheets.Cell(row, fuColCreatedAt),
	}
}

func (r *nbdRepo) List(ctx context.Context) ([]model.NBD, error) {
	rows, err := r.store.ReadRows(ctx, nbdSheet, nbdRange)
	if err != nil {
		return nil, err
	}
	out := make([]model.NBD, 0, len(rows))
	for _, row := range rows {
		if sheets.Cell(row, nbdColID) == "" {
			continue
		}
		out = append(out, decodeNBD(row))
	}
	return out, nil
}

func (r *nbdRepo) find(ctx context.Context, id string) (*model.NBD, int, error) {
	rows, err := r.store.ReadRows(ctx, nbdSheet, nbdRange)
	if err != nil {
		return nil, 0, err
	}
	for i, row := range rows {
		if sheets.Cell(row, nbdColID) == id {
			n := decodeNBD(row)
			return &n, i, nil
		}
	}
	return nil, 0, ErrNotFound
}

func (r *nbdRepo) GetByID(ctx context.Context, id string) (*model.NBD, error) {
	n, _, err := r.find(ctx, id)
	return n, err
}

func (r *nbdRepo) Create(ctx context.Context, n *model.NBD) error {
	return r.store.AppendRow(ctx, nbdSheet, encodeNBD(n))
}

func (r *nbdRepo) Update(ctx context.Context, n *model.NBD) error {
	_, i, err := r.find(ctx, n.ID)
	if err != nil {
		return err
	}
	rng := sheets.RowRange(i, "A", "O")
	return r.store.UpdateRange(ctx, nbdSheet, rng, [][]string{encodeNBD(n)})
}

func (r *nbdRepo) Delete(ctx context.Context, id string) error {
	_, i, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	return r.store.DeleteRow(ctx, nbdSheet, sheets.Row(i))
}

// ── follow-ups ──

func (r *nbdRepo) ListFollowUps(ctx context.Context, nbdID string) ([]model.FollowUp, error) {
	all, err := r.ListAllFollowUps(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FollowUp, 0, len(all))
	for _, fu := range all {
		if fu.NBDID == nbdID {
			out = append(out, fu)
		}
	}
	return out, nil
}

func (r *nbdRepo) ListAllFollowUps(ctx context.Context) ([]model.FollowUp, error) {
	rows, err := r.store.ReadRows(ctx, followUpsSheet, followUpsRange)
	if err != nil {
		return nil, err
	}
	out := make([]model.FollowUp, 0, len(rows))
	for _, row := range rows {
		if sheets.Cell(row, fuColID) == "" {
			continue
		}
		out = append(out, decodeFollowUp(row))
	}
	return out, nil
}

func (r *nbdRepo) AppendFollowUp(ctx context.Context, fu *model.FollowUp) error {
	return r.store.AppendRow(ctx, followUpsSheet, []string{
		fu.ID, fu.NBDID, fu.Status, fu.Remark, fu.NextFollowUpDate,
		fu.Type, strconv.Itoa(fu.OrderWonCount), fu.CreatedAt,
	})
}
