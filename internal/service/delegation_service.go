package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/query"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/dateutil"
)

// ── delegation module errors ──

var (
	ErrDelegationNotFound = errors.New("delegation not found")
)

// EffectiveDelegationStatus resolves the status shown for a delegation:
// a recognized stored status wins verbatim; anything else derives from
// the due date in the three-bucket form (overdue, pending, planned —
// the upcoming tier folds into planned here).
func EffectiveDelegationStatus(d *model.Delegation, today time.Time) string {
	if status, ok := model.ParseDelegationStatus(d.Status); ok {
		return string(status)
	}
	switch dateutil.DynamicStatus(d.DueDate, today) {
	case dateutil.StatusOverdue:
		return "overdue"
	case dateutil.StatusPending:
		return "pending"
	case dateutil.StatusUpcoming, dateutil.StatusPlanned:
		return "planned"
	default:
		return dateutil.Sentinel
	}
}

// DelegationService manages delegations, remarks and revision history.
type DelegationService interface {
	List(ctx context.Context, req *dto.DelegationListRequest) ([]dto.DelegationResponse, int, int, int, error)
	GetByID(ctx context.Context, id string) (*dto.DelegationResponse, error)
	Create(ctx context.Context, req *dto.CreateDelegationRequest) (*dto.DelegationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDelegationRequest, callerName string) (*dto.DelegationResponse, error)
	Delete(ctx context.Context, id string) error

	ListRemarks(ctx context.Context, id string) ([]model.DelegationRemark, error)
	AddRemark(ctx context.Context, id string, req *dto.AddRemarkRequest, author string) (*model.DelegationRemark, error)
	ListRevisions(ctx context.Context, id string) ([]model.DelegationRevision, error)
}

type delegationService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewDelegationService creates a DelegationService.
func NewDelegationService(repo *repository.Repository, logger *zap.Logger) DelegationService {
	return &delegationService{repo: repo, logger: logger, now: time.Now}
}

func (s *delegationService) toResponse(d *model.Delegation) *dto.DelegationResponse {
	return &dto.DelegationResponse{
		Delegation:      *d,
		EffectiveStatus: EffectiveDelegationStatus(d, s.now()),
		DueDateDisplay:  dateutil.FormatDisplay(d.DueDate),
	}
}

// ────────────────────── List ──────────────────────

func (s *delegationService) List(ctx context.Context, req *dto.DelegationListRequest) ([]dto.DelegationResponse, int, int, int, error) {
	all, err := s.repo.Delegation.List(ctx)
	if err != nil {
		s.logger.Error("list delegations failed", zap.Error(err))
		return nil, 0, 0, 0, err
	}

	today := s.now()

	filtered := query.Apply(all,
		query.InSet(req.Priorities, func(d model.Delegation) string { return d.Priority }),
		query.InSet(req.Statuses, func(d model.Delegation) string {
			return EffectiveDelegationStatus(&d, today)
		}),
		query.Equals(req.Department, func(d model.Delegation) string { return d.Department }),
		query.Equals(req.AssignedTo, func(d model.Delegation) string { return d.AssignedTo }),
		query.Search(req.Search, func(d model.Delegation) []string {
			return []string{d.DelegationName, d.Description, d.DoerName, d.AssignedTo}
		}),
		func(d model.Delegation) bool {
			return dateutil.InRange(d.DueDate, req.DueDateFrom, req.DueDateTo)
		},
	)

	switch req.SortBy {
	case "priority":
		query.SortByRank(filtered, func(d model.Delegation) int { return query.PriorityRank(d.Priority) }, req.SortDesc)
	case "name":
		query.SortStable(filtered, func(d model.Delegation) string { return d.DelegationName }, req.SortDesc)
	default:
		query.SortStable(filtered, func(d model.Delegation) string { return dateutil.Normalize(d.DueDate) }, req.SortDesc)
	}

	total := len(filtered)
	pageItems, page, totalPages := query.Paginate(filtered, req.Page)

	out := make([]dto.DelegationResponse, 0, len(pageItems))
	for i := range pageItems {
		out = append(out, *s.toResponse(&pageItems[i]))
	}
	return out, total, page, totalPages, nil
}

// ────────────────────── Get / Create ──────────────────────

func (s *delegationService) GetByID(ctx context.Context, id string) (*dto.DelegationResponse, error) {
	d, err := s.repo.Delegation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDelegationNotFound
		}
		s.logger.Error("get delegation failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(d), nil
}

func (s *delegationService) Create(ctx context.Context, req *dto.CreateDelegationRequest) (*dto.DelegationResponse, error) {
	docs := req.ReferenceDocs
	if docs == nil {
		docs = []string{}
	}
	d := &model.Delegation{
		ID:               uuid.New().String(),
		DelegationName:   req.DelegationName,
		Description:      req.Description,
		AssignedTo:       req.AssignedTo,
		DoerName:         req.DoerName,
		Department:       req.Department,
		Priority:         req.Priority,
		Status:           "", // fresh delegations derive status from the due date
		DueDate:          dateutil.Normalize(req.DueDate),
		VoiceNoteURL:     req.VoiceNoteURL,
		ReferenceDocs:    docs,
		EvidenceRequired: req.EvidenceRequired,
		CreatedAt:        s.now().Format(dateutil.TimestampLayout),
	}

	if err := s.repo.Delegation.Create(ctx, d); err != nil {
		s.logger.Error("create delegation failed", zap.Error(err))
		return nil, err
	}
	return s.toResponse(d), nil
}

// ────────────────────── Update ──────────────────────

func (s *delegationService) Update(ctx context.Context, id string, req *dto.UpdateDelegationRequest, callerName string) (*dto.DelegationResponse, error) {
	d, err := s.repo.Delegation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDelegationNotFound
		}
		s.logger.Error("get delegation failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// status and due-date changes are audited
	var revisions []model.DelegationRevision
	if req.Status != nil && *req.Status != d.Status {
		revisions = append(revisions, s.newRevision(id, "status", d.Status, *req.Status, callerName))
		d.Status = *req.Status
	}
	if req.DueDate != nil {
		newDue := dateutil.Normalize(*req.DueDate)
		if newDue != d.DueDate {
			revisions = append(revisions, s.newRevision(id, "due_date", d.DueDate, newDue, callerName))
			d.DueDate = newDue
		}
	}

	if req.DelegationName != nil {
		d.DelegationName = *req.DelegationName
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.AssignedTo != nil {
		d.AssignedTo = *req.AssignedTo
	}
	if req.DoerName != nil {
		d.DoerName = *req.DoerName
	}
	if req.Department != nil {
		d.Department = *req.Department
	}
	if req.Priority != nil {
		d.Priority = *req.Priority
	}
	if req.VoiceNoteURL != nil {
		d.VoiceNoteURL = *req.VoiceNoteURL
	}
	if req.ReferenceDocs != nil {
		d.ReferenceDocs = *req.ReferenceDocs
	}
	if req.EvidenceRequired != nil {
		d.EvidenceRequired = *req.EvidenceRequired
	}

	if err := s.repo.Delegation.Update(ctx, d); err != nil {
		s.logger.Error("update delegation failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	for i := range revisions {
		if err := s.repo.Delegation.AppendRevision(ctx, &revisions[i]); err != nil {
			// history write failure does not undo the update itself
			s.logger.Warn("append revision failed", zap.String("id", id), zap.Error(err))
		}
	}

	return s.toResponse(d), nil
}

func (s *delegationService) newRevision(delegationID, field, oldValue, newValue, changedBy string) model.DelegationRevision {
	return model.DelegationRevision{
		ID:           uuid.New().String(),
		DelegationID: delegationID,
		Field:        field,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangedBy:    changedBy,
		CreatedAt:    s.now().Format(dateutil.TimestampLayout),
	}
}

// ────────────────────── Delete ──────────────────────

func (s *delegationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delegation.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDelegationNotFound
		}
		s.logger.Error("delete delegation failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── remarks & revisions ──────────────────────

func (s *delegationService) ListRemarks(ctx context.Context, id string) ([]model.DelegationRemark, error) {
	remarks, err := s.repo.Delegation.ListRemarks(ctx, id)
	if err != nil {
		s.logger.Error("list remarks failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return remarks, nil
}

func (s *delegationService) AddRemark(ctx context.Context, id string, req *dto.AddRemarkRequest, author string) (*model.DelegationRemark, error) {
	if _, err := s.repo.Delegation.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDelegationNotFound
		}
		return nil, err
	}

	remark := &model.DelegationRemark{
		ID:           uuid.New().String(),
		DelegationID: id,
		Author:       author,
		Text:         req.Text,
		CreatedAt:    s.now().Format(dateutil.TimestampLayout),
	}
	if err := s.repo.Delegation.AppendRemark(ctx, remark); err != nil {
		s.logger.Error("append remark failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return remark, nil
}

func (s *delegationService) ListRevisions(ctx context.Context, id string) ([]model.DelegationRevision, error) {
	revs, err := s.repo.Delegation.ListRevisions(ctx, id)
	if err != nil {
		s.logger.Error("list revisions failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return revs, nil
}
