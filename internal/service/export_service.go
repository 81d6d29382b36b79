package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/csvkit"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/dateutil"
)

// ── export module errors ──

var (
	ErrUnknownDomain = errors.New("unknown export domain")
)

// Export domains.
const (
	DomainAttendance  = "attendance"
	DomainDelegations = "delegations"
	DomainHelpdesk    = "helpdesk"
	DomainNBD         = "nbd"
)

// Export column orders are fixed; the import side matches on a
// required subset of these names.
var (
	attendanceExportHeader = []string{"id", "user_id", "user_name", "date", "in_time", "out_time", "status"}
	delegationExportHeader = []string{"id", "delegation_name", "description", "assigned_to", "doer_name", "department", "priority", "status", "due_date", "evidence_required", "created_at"}
	helpdeskExportHeader   = []string{"id", "ticket_number", "raised_by_name", "category", "priority", "subject", "description", "assigned_to_name", "desired_date", "status", "created_at", "resolved_at"}
	nbdExportHeader        = []string{"id", "party_name", "type", "contact_person", "email", "phone1", "phone2", "location", "state", "stage", "tat_days", "follow_up_date", "field_person_name", "remarks", "created_at"}
)

// ExportService renders domain record sets as CSV or XLSX downloads.
type ExportService interface {
	// ExportCSV returns the file content and suggested filename
	// (<domain>_<YYYY-MM-DD>.csv).
	ExportCSV(ctx context.Context, domain string) ([]byte, string, error)
	// ExportXLSX renders the same table as a workbook.
	ExportXLSX(ctx context.Context, domain string) (*bytes.Buffer, string, error)
	// Template returns the import template with its sample rows.
	Template(domain string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) table(ctx context.Context, domain string) ([]string, [][]string, error) {
	switch domain {
	case DomainAttendance:
		recs, err := s.repo.Attendance.List(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, []string{r.ID, r.UserID, r.UserName, r.Date, r.InTime, r.OutTime, r.Status})
		}
		return attendanceExportHeader, rows, nil

	case DomainDelegations:
		recs, err := s.repo.Delegation.List(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(recs))
		for _, d := range recs {
			evidence := "FALSE"
			if d.EvidenceRequired {
				evidence = "TRUE"
			}
			rows = append(rows, []string{
				d.ID, d.DelegationName, d.Description, d.AssignedTo, d.DoerName,
				d.Department, d.Priority, d.Status, d.DueDate, evidence, d.CreatedAt,
			})
		}
		return delegationExportHeader, rows, nil

	case DomainHelpdesk:
		recs, err := s.repo.Helpdesk.List(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(recs))
		for _, t := range recs {
			rows = append(rows, []string{
				t.ID, t.TicketNumber, t.RaisedByName, t.Category, t.Priority,
				t.Subject, t.Description, t.AssignedToName, t.DesiredDate,
				t.Status, t.CreatedAt, t.ResolvedAt,
			})
		}
		return helpdeskExportHeader, rows, nil

	case DomainNBD:
		recs, err := s.repo.NBD.List(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(recs))
		for _, n := range recs {
			rows = append(rows, []string{
				n.ID, n.PartyName, n.Type, n.ContactPerson, n.Email, n.Phone1,
				n.Phone2, n.Location, n.State, n.Stage, strconv.Itoa(n.TATDays),
				n.FollowUpDate, n.FieldPersonName, n.Remarks, n.CreatedAt,
			})
		}
		return nbdExportHeader, rows, nil

	default:
		return nil, nil, ErrUnknownDomain
	}
}

func (s *exportService) ExportCSV(ctx context.Context, domain string) ([]byte, string, error) {
	header, rows, err := s.table(ctx, domain)
	if err != nil {
		if !errors.Is(err, ErrUnknownDomain) {
			s.logger.Error("export csv failed", zap.String("domain", domain), zap.Error(err))
		}
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.csv", domain, s.now().Format(dateutil.DateLayout))
	return []byte(csvkit.Marshal(header, rows)), filename, nil
}

func (s *exportService) ExportXLSX(ctx context.Context, domain string) (*bytes.Buffer, string, error) {
	header, rows, err := s.table(ctx, domain)
	if err != nil {
		if !errors.Is(err, ErrUnknownDomain) {
			s.logger.Error("export xlsx failed", zap.String("domain", domain), zap.Error(err))
		}
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for i, row := range rows {
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx failed", zap.String("domain", domain), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx", domain, s.now().Format(dateutil.DateLayout))
	return buf, filename, nil
}

// Template sample rows document the expected headers for each domain;
// the id column is absent because imports generate ids server-side.
func (s *exportService) Template(domain string) ([]byte, string, error) {
	var header []string
	var samples [][]string

	switch domain {
	case DomainDelegations:
		header = []string{"delegation_name", "description", "assigned_to", "doer_name", "department", "priority", "due_date", "evidence_required"}
		samples = [][]string{
			{"Prepare monthly MIS", "Compile the sales MIS for review", "user-101", "Ravi Kumar", "Accounts", "high", "2024-07-15", "TRUE"},
			{"Vendor follow-up", "Call pending vendors", "user-102", "Meena S", "Purchase", "medium", "2024-07-20", "FALSE"},
		}
	case DomainHelpdesk:
		header = []string{"raised_by", "raised_by_name", "category", "priority", "subject", "description", "desired_date"}
		samples = [][]string{
			{"user-101", "Ravi Kumar", "Hardware", "High", "Laptop not booting", "Screen stays blank after power on", "2024-07-12"},
			{"user-103", "Anita P", "Email", "Low", "Mail quota warning", "", ""},
		}
	case DomainNBD:
		header = []string{"party_name", "type", "contact_person", "email", "phone1", "phone2", "location", "state", "stage", "tat_days", "field_person_name", "remarks"}
		samples = [][]string{
			{"Sunrise Printers", "PRINTER", "Mahesh Gupta", "mahesh@sunrise.example", "9800000001", "", "Pune", "Maharashtra", "DEMO", "15", "Suresh", "met at expo"},
			{"Apex Agency", "AGENCY", "Kavita Rao", "", "9800000002", "9800000003", "Chennai", "Tamil Nadu", "START", "30", "Suresh", ""},
		}
	default:
		return nil, "", ErrUnknownDomain
	}

	filename := fmt.Sprintf("%s_import_template.csv", domain)
	return []byte(csvkit.Marshal(header, samples)), filename, nil
}

// exportable guard used by handlers for early validation.
func ValidExportDomain(domain string) bool {
	switch domain {
	case DomainAttendance, DomainDelegations, DomainHelpdesk, DomainNBD:
		return true
	}
	return false
}
