package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/dateutil"
)

// ── department module errors ──

var (
	ErrDepartmentExists   = errors.New("department already exists")
	ErrDepartmentNotFound = errors.New("department not found")
)

// DepartmentService manages the shared department list.
type DepartmentService interface {
	List(ctx context.Context) ([]model.Department, error)
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*model.Department, error)
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewDepartmentService creates a DepartmentService.
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger, now: time.Now}
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}
	return depts, nil
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*model.Department, error) {
	existing, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}
	for _, d := range existing {
		if strings.EqualFold(d.Name, req.Name) {
			return nil, ErrDepartmentExists
		}
	}

	dept := &model.Department{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: s.now().Format(dateutil.TimestampLayout),
	}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("create department failed", zap.Error(err))
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Department.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("delete department failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
