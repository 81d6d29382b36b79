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
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/csvkit"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/dateutil"
)

// ErrBadImportFile marks a file the user can fix (missing required
// header columns). Any other import error is a store failure.
var ErrBadImportFile = errors.New("invalid import file")

// Required header subsets per import domain. Files may carry extra
// columns; missing any of these rejects the whole file up front.
var (
	delegationRequiredCols = []string{"delegation_name", "assigned_to", "priority", "due_date"}
	helpdeskRequiredCols   = []string{"raised_by", "raised_by_name", "category", "priority", "subject"}
	nbdRequiredCols        = []string{"party_name", "type", "contact_person", "phone1", "tat_days"}
)

// ImportService bulk-creates records from CSV files. Header validation
// is strict; data rows missing a mandatory value are silently dropped
// rather than failing the import (spreadsheet exports are messy).
type ImportService interface {
	ImportDelegations(ctx context.Context, content string) (*dto.ImportResult, error)
	ImportHelpdesk(ctx context.Context, content string) (*dto.ImportResult, error)
	ImportNBD(ctx context.Context, content string) (*dto.ImportResult, error)
}

type importService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewImportService creates an ImportService.
func NewImportService(repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, logger: logger, now: time.Now}
}

func (s *importService) ImportDelegations(ctx context.Context, content string) (*dto.ImportResult, error) {
	parsed, err := csvkit.Parse(content, delegationRequiredCols)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadImportFile, err)
	}

	result := &dto.ImportResult{}
	now := s.now().Format(dateutil.TimestampLayout)

	for _, row := range parsed.Rows {
		if row["delegation_name"] == "" || row["assigned_to"] == "" ||
			row["priority"] == "" || row["due_date"] == "" {
			result.Skipped++
			continue
		}

		d := &model.Delegation{
			ID:               uuid.New().String(),
			DelegationName:   row["delegation_name"],
			Description:      row["description"],
			AssignedTo:       row["assigned_to"],
			DoerName:         row["doer_name"],
			Department:       row["department"],
			Priority:         row["priority"],
			Status:           row["status"],
			DueDate:          dateutil.Normalize(row["due_date"]),
			ReferenceDocs:    []string{},
			EvidenceRequired: row["evidence_required"] == "TRUE" || row["evidence_required"] == "true",
			CreatedAt:        now,
		}
		if err := s.repo.Delegation.Create(ctx, d); err != nil {
			s.logger.Error("import delegation row failed", zap.Error(err))
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("delegations imported",
		zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *importService) ImportHelpdesk(ctx context.Context, content string) (*dto.ImportResult, error) {
	parsed, err := csvkit.Parse(content, helpdeskRequiredCols)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadImportFile, err)
	}

	count, err := s.repo.Helpdesk.Count(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{}
	now := s.now()
	stamp := now.Format(dateutil.TimestampLayout)

	for _, row := range parsed.Rows {
		if row["raised_by"] == "" || row["raised_by_name"] == "" || row["category"] == "" ||
			row["priority"] == "" || row["subject"] == "" {
			result.Skipped++
			continue
		}
		if !model.ValidTicketCategory(row["category"]) {
			result.Skipped++
			continue
		}

		count++
		t := &model.HelpdeskTicket{
			ID:           uuid.New().String(),
			TicketNumber: ticketNumber(now, count),
			RaisedBy:     row["raised_by"],
			RaisedByName: row["raised_by_name"],
			Category:     row["category"],
			Priority:     row["priority"],
			Subject:      row["subject"],
			Description:  row["description"],
			DesiredDate:  dateutil.Normalize(row["desired_date"]),
			Status:       model.TicketRaised,
			Attachments:  []string{},
			CreatedAt:    stamp,
			UpdatedAt:    stamp,
		}
		if err := s.repo.Helpdesk.Create(ctx, t); err != nil {
			s.logger.Error("import ticket row failed", zap.Error(err))
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("tickets imported",
		zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *importService) ImportNBD(ctx context.Context, content string) (*dto.ImportResult, error) {
	parsed, err := csvkit.Parse(content, nbdRequiredCols)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadImportFile, err)
	}

	result := &dto.ImportResult{}
	now := s.now()
	created := now.Format(dateutil.DateLayout)

	for _, row := range parsed.Rows {
		if row["party_name"] == "" || row["type"] == "" ||
			row["contact_person"] == "" || row["phone1"] == "" {
			result.Skipped++
			continue
		}
		if !model.ValidNBDType(row["type"]) {
			result.Skipped++
			continue
		}

		stage := row["stage"]
		if stage == "" || !model.ValidNBDStage(stage) {
			stage = model.NBDStages[0]
		}
		tat := dateutil.DayCount(row["tat_days"])

		n := &model.NBD{
			ID:              uuid.New().String(),
			PartyName:       row["party_name"],
			Type:            row["type"],
			ContactPerson:   row["contact_person"],
			Email:           row["email"],
			Phone1:          row["phone1"],
			Phone2:          row["phone2"],
			Location:        row["location"],
			State:           row["state"],
			Stage:           stage,
			TATDays:         tat,
			FollowUpDate:    dateutil.AddDays(created, tat),
			FieldPersonName: row["field_person_name"],
			Remarks:         row["remarks"],
			CreatedAt:       now.Format(dateutil.TimestampLayout),
		}
		if err := s.repo.NBD.Create(ctx, n); err != nil {
			s.logger.Error("import nbd row failed", zap.Error(err))
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("nbd records imported",
		zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}
