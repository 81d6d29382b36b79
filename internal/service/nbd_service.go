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

// ── NBD module errors ──

var (
	ErrNBDNotFound  = errors.New("nbd record not found")
	ErrInvalidStage = errors.New("invalid pipeline stage")
)

// EffectiveFollowUp is the resolved follow-up view of an NBD record.
type EffectiveFollowUp struct {
	Status        string
	Date          string
	Remark        string
	OrderWonCount int
}

// ResolveFollowUp applies the override-vs-derived precedence rule:
// the latest follow-up's non-empty status wins verbatim; otherwise the
// status derives from the override's next date when present, else from
// the NBD's own follow-up date.
func ResolveFollowUp(n *model.NBD, latest *model.FollowUp, today time.Time) EffectiveFollowUp {
	eff := EffectiveFollowUp{Date: n.FollowUpDate}

	if latest != nil {
		eff.Remark = latest.Remark
		eff.OrderWonCount = latest.OrderWonCount
		if latest.NextFollowUpDate != "" {
			eff.Date = latest.NextFollowUpDate
		}
		if latest.Status != "" {
			eff.Status = latest.Status
			return eff
		}
	}

	eff.Status = string(dateutil.DynamicStatus(eff.Date, today))
	return eff
}

// NBDService manages the sales pipeline and its follow-up history.
type NBDService interface {
	List(ctx context.Context, req *dto.NBDListRequest) ([]dto.NBDResponse, int, int, int, error)
	GetByID(ctx context.Context, id string) (*dto.NBDResponse, error)
	Create(ctx context.Context, req *dto.CreateNBDRequest) (*dto.NBDResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateNBDRequest) (*dto.NBDResponse, error)
	Delete(ctx context.Context, id string) error

	ListFollowUps(ctx context.Context, id string) ([]model.FollowUp, error)
	AddFollowUp(ctx context.Context, id string, req *dto.AddFollowUpRequest) (*model.FollowUp, error)

	ListCRREligible(ctx context.Context) ([]dto.NBDResponse, error)
	ShiftToCRR(ctx context.Context, req *dto.ShiftToCRRRequest) (*dto.ShiftToCRRResponse, error)
}

type nbdService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewNBDService creates an NBDService.
func NewNBDService(repo *repository.Repository, logger *zap.Logger) NBDService {
	return &nbdService{repo: repo, logger: logger, now: time.Now}
}

// latestByNBD buckets the whole follow-up sheet by NBD id, keeping the
// last appended row per id. One range read instead of one per record.
func latestByNBD(followUps []model.FollowUp) map[string]*model.FollowUp {
	latest := make(map[string]*model.FollowUp)
	for i := range followUps {
		latest[followUps[i].NBDID] = &followUps[i]
	}
	return latest
}

func (s *nbdService) toResponse(n *model.NBD, latest *model.FollowUp) *dto.NBDResponse {
	eff := ResolveFollowUp(n, latest, s.now())
	return &dto.NBDResponse{
		NBD:                   *n,
		EffectiveStatus:       eff.Status,
		EffectiveFollowUpDate: eff.Date,
		EffectiveRemark:       eff.Remark,
		OrderWonCount:         eff.OrderWonCount,
		CRREligible:           eff.OrderWonCount >= model.CRRShiftThreshold,
	}
}

// ────────────────────── List ──────────────────────

func (s *nbdService) List(ctx context.Context, req *dto.NBDListRequest) ([]dto.NBDResponse, int, int, int, error) {
	all, err := s.repo.NBD.List(ctx)
	if err != nil {
		s.logger.Error("list nbd failed", zap.Error(err))
		return nil, 0, 0, 0, err
	}
	followUps, err := s.repo.NBD.ListAllFollowUps(ctx)
	if err != nil {
		s.logger.Error("list followups failed", zap.Error(err))
		return nil, 0, 0, 0, err
	}
	latest := latestByNBD(followUps)
	today := s.now()

	effDate := func(n model.NBD) string {
		return ResolveFollowUp(&n, latest[n.ID], today).Date
	}

	filtered := query.Apply(all,
		query.InSet(req.Types, func(n model.NBD) string { return n.Type }),
		query.InSet(req.Stages, func(n model.NBD) string { return n.Stage }),
		query.InSet(req.States, func(n model.NBD) string { return n.State }),
		query.Equals(req.FieldPerson, func(n model.NBD) string { return n.FieldPersonName }),
		query.Search(req.Search, func(n model.NBD) []string {
			return []string{n.PartyName, n.ContactPerson, n.Location, n.Email, n.Phone1}
		}),
		func(n model.NBD) bool {
			// range filter runs over the effective follow-up date
			return dateutil.InRange(effDate(n), req.FollowUpDateFrom, req.FollowUpDateTo)
		},
	)

	switch req.SortBy {
	case "party_name":
		query.SortStable(filtered, func(n model.NBD) string { return n.PartyName }, req.SortDesc)
	case "stage":
		query.SortStable(filtered, func(n model.NBD) string { return n.Stage }, req.SortDesc)
	default:
		query.SortStable(filtered, func(n model.NBD) string { return dateutil.Normalize(effDate(n)) }, req.SortDesc)
	}

	total := len(filtered)
	pageItems, page, totalPages := query.Paginate(filtered, req.Page)

	out := make([]dto.NBDResponse, 0, len(pageItems))
	for i := range pageItems {
		out = append(out, *s.toResponse(&pageItems[i], latest[pageItems[i].ID]))
	}
	return out, total, page, totalPages, nil
}

// ────────────────────── Get / Create / Update / Delete ──────────────────────

func (s *nbdService) GetByID(ctx context.Context, id string) (*dto.NBDResponse, error) {
	n, err := s.repo.NBD.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNBDNotFound
		}
		s.logger.Error("get nbd failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	latest, err := s.latestFollowUp(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(n, latest), nil
}

func (s *nbdService) latestFollowUp(ctx context.Context, id string) (*model.FollowUp, error) {
	history, err := s.repo.NBD.ListFollowUps(ctx, id)
	if err != nil {
		s.logger.Error("list followups failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[len(history)-1], nil
}

func (s *nbdService) Create(ctx context.Context, req *dto.CreateNBDRequest) (*dto.NBDResponse, error) {
	stage := req.Stage
	if stage == "" {
		stage = model.NBDStages[0]
	}
	if !model.ValidNBDStage(stage) {
		return nil, ErrInvalidStage
	}

	now := s.now()
	created := now.Format(dateutil.DateLayout)

	n := &model.NBD{
		ID:              uuid.New().String(),
		PartyName:       req.PartyName,
		Type:            req.Type,
		ContactPerson:   req.ContactPerson,
		Email:           req.Email,
		Phone1:          req.Phone1,
		Phone2:          req.Phone2,
		Location:        req.Location,
		State:           req.State,
		Stage:           stage,
		TATDays:         req.TATDays,
		FollowUpDate:    dateutil.AddDays(created, req.TATDays),
		FieldPersonName: req.FieldPersonName,
		Remarks:         req.Remarks,
		CreatedAt:       now.Format(dateutil.TimestampLayout),
	}

	if err := s.repo.NBD.Create(ctx, n); err != nil {
		s.logger.Error("create nbd failed", zap.Error(err))
		return nil, err
	}
	return s.toResponse(n, nil), nil
}

func (s *nbdService) Update(ctx context.Context, id string, req *dto.UpdateNBDRequest) (*dto.NBDResponse, error) {
	n, err := s.repo.NBD.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNBDNotFound
		}
		s.logger.Error("get nbd failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Stage != nil {
		if !model.ValidNBDStage(*req.Stage) {
			return nil, ErrInvalidStage
		}
		n.Stage = *req.Stage
	}
	if req.PartyName != nil {
		n.PartyName = *req.PartyName
	}
	if req.Type != nil {
		n.Type = *req.Type
	}
	if req.ContactPerson != nil {
		n.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		n.Email = *req.Email
	}
	if req.Phone1 != nil {
		n.Phone1 = *req.Phone1
	}
	if req.Phone2 != nil {
		n.Phone2 = *req.Phone2
	}
	if req.Location != nil {
		n.Location = *req.Location
	}
	if req.State != nil {
		n.State = *req.State
	}
	if req.TATDays != nil {
		n.TATDays = *req.TATDays
		// TAT changes recompute the baseline follow-up date
		n.FollowUpDate = dateutil.AddDays(n.CreatedAt, n.TATDays)
	}
	if req.FieldPersonName != nil {
		n.FieldPersonName = *req.FieldPersonName
	}
	if req.Remarks != nil {
		n.Remarks = *req.Remarks
	}

	if err := s.repo.NBD.Update(ctx, n); err != nil {
		s.logger.Error("update nbd failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	latest, err := s.latestFollowUp(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(n, latest), nil
}

func (s *nbdService) Delete(ctx context.Context, id string) error {
	if err := s.repo.NBD.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNBDNotFound
		}
		s.logger.Error("delete nbd failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── follow-ups ──────────────────────

func (s *nbdService) ListFollowUps(ctx context.Context, id string) ([]model.FollowUp, error) {
	history, err := s.repo.NBD.ListFollowUps(ctx, id)
	if err != nil {
		s.logger.Error("list followups failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return history, nil
}

func (s *nbdService) AddFollowUp(ctx context.Context, id string, req *dto.AddFollowUpRequest) (*model.FollowUp, error) {
	if _, err := s.repo.NBD.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNBDNotFound
		}
		return nil, err
	}

	latest, err := s.latestFollowUp(ctx, id)
	if err != nil {
		return nil, err
	}

	// won-order total carries forward on every row so the latest row
	// always holds it
	count := 0
	if latest != nil {
		count = latest.OrderWonCount
	}
	if req.Status == model.FollowUpOrderWon {
		count++
	}

	fu := &model.FollowUp{
		ID:               uuid.New().String(),
		NBDID:            id,
		Status:           req.Status,
		Remark:           req.Remark,
		NextFollowUpDate: dateutil.Normalize(req.NextFollowUpDate),
		Type:             req.Type,
		OrderWonCount:    count,
		CreatedAt:        s.now().Format(dateutil.TimestampLayout),
	}
	if err := s.repo.NBD.AppendFollowUp(ctx, fu); err != nil {
		s.logger.Error("append followup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return fu, nil
}

// ────────────────────── CRR shift ──────────────────────

func (s *nbdService) ListCRREligible(ctx context.Context) ([]dto.NBDResponse, error) {
	all, err := s.repo.NBD.List(ctx)
	if err != nil {
		s.logger.Error("list nbd failed", zap.Error(err))
		return nil, err
	}
	followUps, err := s.repo.NBD.ListAllFollowUps(ctx)
	if err != nil {
		s.logger.Error("list followups failed", zap.Error(err))
		return nil, err
	}
	latest := latestByNBD(followUps)

	out := make([]dto.NBDResponse, 0)
	for i := range all {
		fu := latest[all[i].ID]
		if fu != nil && fu.OrderWonCount >= model.CRRShiftThreshold {
			out = append(out, *s.toResponse(&all[i], fu))
		}
	}
	return out, nil
}

func (s *nbdService) ShiftToCRR(ctx context.Context, req *dto.ShiftToCRRRequest) (*dto.ShiftToCRRResponse, error) {
	followUps, err := s.repo.NBD.ListAllFollowUps(ctx)
	if err != nil {
		s.logger.Error("list followups failed", zap.Error(err))
		return nil, err
	}
	latest := latestByNBD(followUps)

	resp := &dto.ShiftToCRRResponse{Shifted: []string{}, Skipped: []string{}}
	for _, id := range req.IDs {
		fu := latest[id]
		if fu == nil || fu.OrderWonCount < model.CRRShiftThreshold {
			resp.Skipped = append(resp.Skipped, id)
			continue
		}
		if err := s.repo.NBD.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				resp.Skipped = append(resp.Skipped, id)
				continue
			}
			s.logger.Error("shift nbd failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		resp.Shifted = append(resp.Shifted, id)
	}
	return resp, nil
}
