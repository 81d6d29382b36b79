package handler

import (
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/jwt"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Department *DepartmentHandler
	Attendance *AttendanceHandler
	Delegation *DelegationHandler
	Helpdesk   *HelpdeskHandler
	NBD        *NBDHandler
	Export     *ExportHandler
	Import     *ImportHandler
	Upload     *UploadHandler
	Calendar   *CalendarHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service, jwtMgr *jwt.Manager) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, jwtMgr),
		Department: NewDepartmentHandler(svc.Department),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Delegation: NewDelegationHandler(svc.Delegation),
		Helpdesk:   NewHelpdeskHandler(svc.Helpdesk),
		NBD:        NewNBDHandler(svc.NBD),
		Export:     NewExportHandler(svc.Export),
		Import:     NewImportHandler(svc.Import),
		Upload:     NewUploadHandler(svc.Upload),
		Calendar:   NewCalendarHandler(svc.Calendar),
	}
}
