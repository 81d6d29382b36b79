package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/query"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/dateutil"
)

// ── helpdesk module errors ──

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidTicketStatus = errors.New("invalid ticket status")
	ErrInvalidCategory     = errors.New("invalid ticket category")
)

// HelpdeskService manages the IT ticket flow. Status moves are free
// jumps between the six states; solved and closed stamp resolved_at.
type HelpdeskService interface {
	List(ctx context.Context, req *dto.TicketListRequest) ([]dto.TicketResponse, int, int, int, error)
	GetByID(ctx context.Context, id string) (*dto.TicketResponse, error)
	Create(ctx context.Context, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error)
	Delete(ctx context.Context, id string) error

	ListRemarks(ctx context.Context, id string) ([]model.TicketRemark, error)
	AddRemark(ctx context.Context, id string, req *dto.AddRemarkRequest, author string) (*model.TicketRemark, error)
}

type helpdeskService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewHelpdeskService creates a HelpdeskService.
func NewHelpdeskService(repo *repository.Repository, logger *zap.Logger) HelpdeskService {
	return &helpdeskService{repo: repo, logger: logger, now: time.Now}
}

func toTicketResponse(t *model.HelpdeskTicket) *dto.TicketResponse {
	return &dto.TicketResponse{
		HelpdeskTicket:     *t,
		DesiredDateDisplay: dateutil.FormatDisplay(t.DesiredDate),
	}
}

// ────────────────────── List ──────────────────────

func (s *helpdeskService) List(ctx context.Context, req *dto.TicketListRequest) ([]dto.TicketResponse, int, int, int, error) {
	all, err := s.repo.Helpdesk.List(ctx)
	if err != nil {
		s.logger.Error("list tickets failed", zap.Error(err))
		return nil, 0, 0, 0, err
	}

	filtered := query.Apply(all,
		query.InSet(req.Statuses, func(t model.HelpdeskTicket) string { return t.Status }),
		query.InSet(req.Priorities, func(t model.HelpdeskTicket) string { return t.Priority }),
		query.InSet(req.Categories, func(t model.HelpdeskTicket) string { return t.Category }),
		query.Equals(req.AssignedTo, func(t model.HelpdeskTicket) string { return t.AssignedTo }),
		query.Equals(req.RaisedBy, func(t model.HelpdeskTicket) string { return t.RaisedBy }),
		query.Search(req.Search, func(t model.HelpdeskTicket) []string {
			return []string{t.TicketNumber, t.Subject, t.Description, t.RaisedByName}
		}),
		func(t model.HelpdeskTicket) bool {
			return dateutil.InRange(t.CreatedAt, req.CreatedFrom, req.CreatedTo)
		},
	)

	switch req.SortBy {
	case "priority":
		query.SortByRank(filtered, func(t model.HelpdeskTicket) int { return query.PriorityRank(t.Priority) }, req.SortDesc)
	case "status":
		query.SortStable(filtered, func(t model.HelpdeskTicket) string { return t.Status }, req.SortDesc)
	default:
		query.SortStable(filtered, func(t model.HelpdeskTicket) string { return t.CreatedAt }, req.SortDesc)
	}

	total := len(filtered)
	pageItems, page, totalPages := query.Paginate(filtered, req.Page)

	out := make([]dto.TicketResponse, 0, len(pageItems))
	for i := range pageItems {
		out = append(out, *toTicketResponse(&pageItems[i]))
	}
	return out, total, page, totalPages, nil
}

// ────────────────────── Get / Create ──────────────────────

func (s *helpdeskService) GetByID(ctx context.Context, id string) (*dto.TicketResponse, error) {
	t, err := s.repo.Helpdesk.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("get ticket failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTicketResponse(t), nil
}

// ticketNumber builds a human-readable ticket number from the creation
// day and a running per-sheet sequence.
func ticketNumber(now time.Time, seq int) string {
	return fmt.Sprintf("TKT-%s-%04d", now.Format("20060102"), seq)
}

func (s *helpdeskService) Create(ctx context.Context, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if !model.ValidTicketCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	count, err := s.repo.Helpdesk.Count(ctx)
	if err != nil {
		s.logger.Error("count tickets failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	attachments := req.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	t := &model.HelpdeskTicket{
		ID:                    uuid.New().String(),
		TicketNumber:          ticketNumber(now, count+1),
		RaisedBy:              req.RaisedBy,
		RaisedByName:          req.RaisedByName,
		Category:              req.Category,
		Priority:              req.Priority,
		Subject:               req.Subject,
		Description:           req.Description,
		AssignedTo:            req.AssignedTo,
		AssignedToName:        req.AssignedToName,
		AccountablePerson:     req.AccountablePerson,
		AccountablePersonName: req.AccountablePersonName,
		DesiredDate:           dateutil.Normalize(req.DesiredDate),
		Status:                model.TicketRaised,
		Attachments:           attachments,
		CreatedAt:             now.Format(dateutil.TimestampLayout),
		UpdatedAt:             now.Format(dateutil.TimestampLayout),
	}

	if err := s.repo.Helpdesk.Create(ctx, t); err != nil {
		s.logger.Error("create ticket failed", zap.Error(err))
		return nil, err
	}
	return toTicketResponse(t), nil
}

// ────────────────────── Update ──────────────────────

func (s *helpdeskService) Update(ctx context.Context, id string, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	t, err := s.repo.Helpdesk.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("get ticket failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Category != nil {
		if !model.ValidTicketCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		t.Category = *req.Category
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Subject != nil {
		t.Subject = *req.Subject
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	if req.AssignedToName != nil {
		t.AssignedToName = *req.AssignedToName
	}
	if req.AccountablePerson != nil {
		t.AccountablePerson = *req.AccountablePerson
	}
	if req.AccountablePersonName != nil {
		t.AccountablePersonName = *req.AccountablePersonName
	}
	if req.DesiredDate != nil {
		t.DesiredDate = dateutil.Normalize(*req.DesiredDate)
	}
	if req.Attachments != nil {
		t.Attachments = *req.Attachments
	}
	t.UpdatedAt = s.now().Format(dateutil.TimestampLayout)

	if err := s.repo.Helpdesk.Update(ctx, t); err != nil {
		s.logger.Error("update ticket failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTicketResponse(t), nil
}

func (s *helpdeskService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error) {
	if !model.ValidTicketStatus(req.Status) {
		return nil, ErrInvalidTicketStatus
	}

	t, err := s.repo.Helpdesk.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("get ticket failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	now := s.now().Format(dateutil.TimestampLayout)
	t.Status = req.Status
	t.UpdatedAt = now

	// solved and closed stamp the resolution time; every other move
	// leaves an earlier stamp untouched
	if req.Status == model.TicketSolved || req.Status == model.TicketClosed {
		t.ResolvedAt = now
	}

	if err := s.repo.Helpdesk.Update(ctx, t); err != nil {
		s.logger.Error("update ticket status failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTicketResponse(t), nil
}

func (s *helpdeskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Helpdesk.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTicketNotFound
		}
		s.logger.Error("delete ticket failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── remarks ──────────────────────

func (s *helpdeskService) ListRemarks(ctx context.Context, id string) ([]model.TicketRemark, error) {
	remarks, err := s.repo.Helpdesk.ListRemarks(ctx, id)
	if err != nil {
		s.logger.Error("list ticket remarks failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return remarks, nil
}

func (s *helpdeskService) AddRemark(ctx context.Context, id string, req *dto.AddRemarkRequest, author string) (*model.TicketRemark, error) {
	if _, err := s.repo.Helpdesk.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	remark := &model.TicketRemark{
		ID:        uuid.New().String(),
		TicketID:  id,
		Author:    author,
		Text:      req.Text,
		CreatedAt: s.now().Format(dateutil.TimestampLayout),
	}
	if err := s.repo.Helpdesk.AppendRemark(ctx, remark); err != nil {
		s.logger.Error("append ticket remark failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return remark, nil
}
