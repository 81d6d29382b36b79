package repository

import (
	"context"
	"fmt"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

// attendance sheet, columns A:G. Check-out touches only F:G (out_time,
// status) of an existing row; rows are never deleted.
const (
	attendanceSheet = "attendance"
	attendanceRange = "A2:G"
)

const (
	attColID = iota
	attColUserID
	attColUserName
	attColDate
	attColInTime
	attColOutTime
	attColStatus
)

// AttendanceRepository manages the attendance sheet.
type AttendanceRepository interface {
	List(ctx context.Context) ([]model.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID string) ([]model.AttendanceRecord, error)
	// FindByUserDate returns the record for (user, date) or ErrNotFound.
	FindByUserDate(ctx context.Context, userID, date string) (*model.AttendanceRecord, error)
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	// CloseOut writes out_time and status onto the existing row for
	// (user, date).
	CloseOut(ctx context.Context, userID, date, outTime, status string) error
}

type attendanceRepo struct {
	store sheets.Store
}

// NewAttendanceRepo creates an AttendanceRepository.
func NewAttendanceRepo(store sheets.Store) AttendanceRepository {
	return &attendanceRepo{store: store}
}

func decodeAttendance(row []string) model.AttendanceRecord {
	return model.AttendanceRecord{
		ID:       sheets.Cell(row, attColID),
		UserID:   sheets.Cell(row, attColUserID),
		UserName: sheets.Cell(row, attColUserName),
		Date:     sheets.Cell(row, attColDate),
		InTime:   sheets.Cell(row, attColInTime),
		OutTime:  sheets.Cell(row, attColOutTime),
		Status:   sheets.Cell(row, attColStatus),
	}
}

func encodeAttendance(rec *model.AttendanceRecord) []string {
	return []string{
		rec.ID, rec.UserID, rec.UserName, rec.Date,
		rec.InTime, rec.OutTime, rec.Status,
	}
}

func (r *attendanceRepo) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := r.store.ReadRows(ctx, attendanceSheet, attendanceRange)
	if err != nil {
		return nil, err
	}
	recs := make([]model.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		if sheets.Cell(row, attColID) == "" {
			continue
		}
		recs = append(recs, decodeAttendance(row))
	}
	return recs, nil
}

func (r *attendanceRepo) ListByUser(ctx context.Context, userID string) ([]model.AttendanceRecord, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	recs := make([]model.AttendanceRecord, 0, len(all))
	for _, rec := range all {
		if rec.UserID == userID {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (r *attendanceRepo) FindByUserDate(ctx context.Context, userID, date string) (*model.AttendanceRecord, error) {
	rows, err := r.store.ReadRows(ctx, attendanceSheet, attendanceRange)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if sheets.Cell(row, attColUserID) == userID && sheets.Cell(row, attColDate) == date {
			rec := decodeAttendance(row)
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

func (r *attendanceRepo) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.store.AppendRow(ctx, attendanceSheet, encodeAttendance(rec))
}

func (r *attendanceRepo) CloseOut(ctx context.Context, userID, date, outTime, status string) error {
	rows, err := r.store.ReadRows(ctx, attendanceSheet, attendanceRange)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if sheets.Cell(row, attColUserID) == userID && sheets.Cell(row, attColDate) == date {
			rng := sheets.RowRange(i, "F", "G")
			return r.store.UpdateRange(ctx, attendanceSheet, rng, [][]string{{outTime, status}})
		}
	}
	return fmt.Errorf("attendance row for %s on %s: %w", userID, date, ErrNotFound)
}
