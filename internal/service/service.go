package service

import (
	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/config"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/blob"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/jwt"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Auth       AuthService
	Department DepartmentService
	Attendance AttendanceService
	Delegation DelegationService
	Helpdesk   HelpdeskService
	NBD        NBDService
	Export     ExportService
	Import     ImportService
	Calendar   CalendarService
	Upload     UploadService
}

// NewService wires the service aggregate.
// rdb may be nil; session revocation then degrades to token expiry.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	uploader blob.Uploader,
	logger *zap.Logger,
) *Service {
	delegation := NewDelegationService(repo, logger)
	nbd := NewNBDService(repo, logger)
	helpdesk := NewHelpdeskService(repo, logger)

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Department: NewDepartmentService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Delegation: delegation,
		Helpdesk:   helpdesk,
		NBD:        nbd,
		Export:     NewExportService(repo, logger),
		Import:     NewImportService(repo, logger),
		Calendar:   NewCalendarService(repo, logger),
		Upload:     NewUploadService(uploader, logger),
	}
}
