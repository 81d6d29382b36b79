package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/query"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/dateutil"
)

// ── attendance module errors ──

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNoCheckInFound   = errors.New("no open check-in found for today")
)

// AttendanceService runs the per-day check-in/out state machine:
// IDLE → CHECKED_IN → COMPLETED, scoped to (user, calendar day). The
// state is derived from record existence, never stored; a new day is
// implicitly IDLE again. There is no transition out of COMPLETED.
type AttendanceService interface {
	CheckIn(ctx context.Context, req *dto.CheckInRequest) (*dto.DayStateResponse, error)
	CheckOut(ctx context.Context, req *dto.CheckOutRequest) (*dto.DayStateResponse, error)
	CurrentStatus(ctx context.Context, userID string) (*dto.DayStateResponse, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int, int, int, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger, now: time.Now}
}

func (s *attendanceService) CheckIn(ctx context.Context, req *dto.CheckInRequest) (*dto.DayStateResponse, error) {
	now := s.now()
	today := now.Format(dateutil.DateLayout)

	existing, err := s.repo.Attendance.FindByUserDate(ctx, req.UserID, today)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("lookup attendance failed", zap.String("user", req.UserID), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		// an open or completed record blocks a second check-in today
		return nil, ErrAlreadyCheckedIn
	}

	rec := &model.AttendanceRecord{
		ID:       fmt.Sprintf("%s_%s", req.UserID, today),
		UserID:   req.UserID,
		UserName: req.UserName,
		Date:     today,
		InTime:   now.Format(dateutil.TimestampLayout),
		Status:   model.AttendanceStatusIn,
	}
	if err := s.repo.Attendance.Create(ctx, rec); err != nil {
		s.logger.Error("create attendance failed", zap.String("user", req.UserID), zap.Error(err))
		return nil, err
	}

	return &dto.DayStateResponse{
		UserID:        req.UserID,
		Date:          today,
		CurrentStatus: model.DayStateCheckedIn,
		Record:        rec,
	}, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, req *dto.CheckOutRequest) (*dto.DayStateResponse, error) {
	now := s.now()
	today := now.Format(dateutil.DateLayout)

	rec, err := s.repo.Attendance.FindByUserDate(ctx, req.UserID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCheckInFound
		}
		s.logger.Error("lookup attendance failed", zap.String("user", req.UserID), zap.Error(err))
		return nil, err
	}
	if !rec.Open() {
		// either never checked in or already checked out
		return nil, ErrNoCheckInFound
	}

	outTime := now.Format(dateutil.TimestampLayout)
	if err := s.repo.Attendance.CloseOut(ctx, req.UserID, today, outTime, model.AttendanceStatusCompleted); err != nil {
		s.logger.Error("close attendance failed", zap.String("user", req.UserID), zap.Error(err))
		return nil, err
	}

	rec.OutTime = outTime
	rec.Status = model.AttendanceStatusCompleted

	return &dto.DayStateResponse{
		UserID:        req.UserID,
		Date:          today,
		CurrentStatus: model.DayStateCompleted,
		Record:        rec,
	}, nil
}

func (s *attendanceService) CurrentStatus(ctx context.Context, userID string) (*dto.DayStateResponse, error) {
	today := s.now().Format(dateutil.DateLayout)

	rec, err := s.repo.Attendance.FindByUserDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &dto.DayStateResponse{UserID: userID, Date: today, CurrentStatus: model.DayStateIdle}, nil
		}
		s.logger.Error("lookup attendance failed", zap.String("user", userID), zap.Error(err))
		return nil, err
	}

	state := model.DayStateCompleted
	if rec.Open() {
		state = model.DayStateCheckedIn
	}
	return &dto.DayStateResponse{UserID: userID, Date: today, CurrentStatus: state, Record: rec}, nil
}

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int, int, int, error) {
	var (
		recs []model.AttendanceRecord
		err  error
	)
	if req.UserID != "" {
		recs, err = s.repo.Attendance.ListByUser(ctx, req.UserID)
	} else {
		recs, err = s.repo.Attendance.List(ctx)
	}
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, 0, 0, 0, err
	}

	filtered := query.Apply(recs, func(r model.AttendanceRecord) bool {
		return dateutil.InRange(r.Date, req.DateFrom, req.DateTo)
	})

	// newest first
	query.SortStable(filtered, func(r model.AttendanceRecord) string { return r.Date }, true)

	total := len(filtered)
	pageItems, page, totalPages := query.Paginate(filtered, req.Page)

	out := make([]dto.AttendanceResponse, 0, len(pageItems))
	for _, r := range pageItems {
		out = append(out, dto.AttendanceResponse{
			AttendanceRecord: r,
			DateDisplay:      dateutil.FormatDisplay(r.Date),
		})
	}
	return out, total, page, totalPages, nil
}
