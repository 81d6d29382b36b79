package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.SessionResponse
	loginErr         error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.SessionResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	checkInResult  *dto.DayStateResponse
	checkInErr     error
	checkOutResult *dto.DayStateResponse
	checkOutErr    error
	statusResult   *dto.DayStateResponse
	statusErr      error
	listResult     []dto.AttendanceResponse
	listTotal      int
	listErr        error
}

func (m *mockAttendanceService) CheckIn(_ context.Context, _ *dto.CheckInRequest) (*dto.DayStateResponse, error) {
	return m.checkInResult, m.checkInErr
}
func (m *mockAttendanceService) CheckOut(_ context.Context, _ *dto.CheckOutRequest) (*dto.DayStateResponse, error) {
	return m.checkOutResult, m.checkOutErr
}
func (m *mockAttendanceService) CurrentStatus(_ context.Context, _ string) (*dto.DayStateResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockAttendanceService) List(_ context.Context, _ *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int, int, int, error) {
	return m.listResult, m.listTotal, 1, 1, m.listErr
}

// ── Mock DelegationService ──

type mockDelegationService struct {
	listResult    []dto.DelegationResponse
	listErr       error
	getResult     *dto.DelegationResponse
	getErr        error
	createResult  *dto.DelegationResponse
	createErr     error
	updateResult  *dto.DelegationResponse
	updateErr     error
	deleteErr     error
	remarksResult []model.DelegationRemark
	remarksErr    error
	addRemark     *model.DelegationRemark
	addRemarkErr  error
	revisions     []model.DelegationRevision
	revisionsErr  error
}

func (m *mockDelegationService) List(_ context.Context, _ *dto.DelegationListRequest) ([]dto.DelegationResponse, int, int, int, error) {
	return m.listResult, len(m.listResult), 1, 1, m.listErr
}
func (m *mockDelegationService) GetByID(_ context.Context, _ string) (*dto.DelegationResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockDelegationService) Create(_ context.Context, _ *dto.CreateDelegationRequest) (*dto.DelegationResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockDelegationService) Update(_ context.Context, _ string, _ *dto.UpdateDelegationRequest, _ string) (*dto.DelegationResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockDelegationService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockDelegationService) ListRemarks(_ context.Context, _ string) ([]model.DelegationRemark, error) {
	return m.remarksResult, m.remarksErr
}
func (m *mockDelegationService) AddRemark(_ context.Context, _ string, _ *dto.AddRemarkRequest, _ string) (*model.DelegationRemark, error) {
	return m.addRemark, m.addRemarkErr
}
func (m *mockDelegationService) ListRevisions(_ context.Context, _ string) ([]model.DelegationRevision, error) {
	return m.revisions, m.revisionsErr
}

// ── Mock HelpdeskService ──

type mockHelpdeskService struct {
	listResult     []dto.TicketResponse
	listErr        error
	getResult      *dto.TicketResponse
	getErr         error
	createResult   *dto.TicketResponse
	createErr      error
	updateResult   *dto.TicketResponse
	updateErr      error
	updateStResult *dto.TicketResponse
	updateStErr    error
	deleteErr      error
	remarksResult  []model.TicketRemark
	remarksErr     error
	addRemark      *model.TicketRemark
	addRemarkErr   error
}

func (m *mockHelpdeskService) List(_ context.Context, _ *dto.TicketListRequest) ([]dto.TicketResponse, int, int, int, error) {
	return m.listResult, len(m.listResult), 1, 1, m.listErr
}
func (m *mockHelpdeskService) GetByID(_ context.Context, _ string) (*dto.TicketResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockHelpdeskService) Create(_ context.Context, _ *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockHelpdeskService) Update(_ context.Context, _ string, _ *dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockHelpdeskService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error) {
	return m.updateStResult, m.updateStErr
}
func (m *mockHelpdeskService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockHelpdeskService) ListRemarks(_ context.Context, _ string) ([]model.TicketRemark, error) {
	return m.remarksResult, m.remarksErr
}
func (m *mockHelpdeskService) AddRemark(_ context.Context, _ string, _ *dto.AddRemarkRequest, _ string) (*model.TicketRemark, error) {
	return m.addRemark, m.addRemarkErr
}

// ── Mock NBDService ──

type mockNBDService struct {
	listResult      []dto.NBDResponse
	listErr         error
	getResult       *dto.NBDResponse
	getErr          error
	createResult    *dto.NBDResponse
	createErr       error
	updateResult    *dto.NBDResponse
	updateErr       error
	deleteErr       error
	followUps       []model.FollowUp
	followUpsErr    error
	addFollowUp     *model.FollowUp
	addFollowUpErr  error
	crrEligible     []dto.NBDResponse
	crrEligibleErr  error
	shiftResult     *dto.ShiftToCRRResponse
	shiftErr        error
}

func (m *mockNBDService) List(_ context.Context, _ *dto.NBDListRequest) ([]dto.NBDResponse, int, int, int, error) {
	return m.listResult, len(m.listResult), 1, 1, m.listErr
}
func (m *mockNBDService) GetByID(_ context.Context, _ string) (*dto.NBDResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockNBDService) Create(_ context.Context, _ *dto.CreateNBDRequest) (*dto.NBDResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockNBDService) Update(_ context.Context, _ string, _ *dto.UpdateNBDRequest) (*dto.NBDResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockNBDService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockNBDService) ListFollowUps(_ context.Context, _ string) ([]model.FollowUp, error) {
	return m.followUps, m.followUpsErr
}
func (m *mockNBDService) AddFollowUp(_ context.Context, _ string, _ *dto.AddFollowUpRequest) (*model.FollowUp, error) {
	return m.addFollowUp, m.addFollowUpErr
}
func (m *mockNBDService) ListCRREligible(_ context.Context) ([]dto.NBDResponse, error) {
	return m.crrEligible, m.crrEligibleErr
}
func (m *mockNBDService) ShiftToCRR(_ context.Context, _ *dto.ShiftToCRRRequest) (*dto.ShiftToCRRResponse, error) {
	return m.shiftResult, m.shiftErr
}

// ── Mock DepartmentService ──

type mockDepartmentService struct {
	listResult   []model.Department
	listErr      error
	createResult *model.Department
	createErr    error
	deleteErr    error
}

func (m *mockDepartmentService) List(_ context.Context) ([]model.Department, error) {
	return m.listResult, m.listErr
}
func (m *mockDepartmentService) Create(_ context.Context, _ *dto.CreateDepartmentRequest) (*model.Department, error) {
	return m.createResult, m.createErr
}
func (m *mockDepartmentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	csvContent  []byte
	csvErr      error
	xlsxBuf     *bytes.Buffer
	xlsxErr     error
	tplContent  []byte
	tplErr      error
	filename    string
}

func (m *mockExportService) ExportCSV(_ context.Context, _ string) ([]byte, string, error) {
	return m.csvContent, m.filename, m.csvErr
}
func (m *mockExportService) ExportXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.xlsxBuf, m.filename, m.xlsxErr
}
func (m *mockExportService) Template(_ string) ([]byte, string, error) {
	return m.tplContent, m.filename, m.tplErr
}

// ── Mock ImportService ──

type mockImportService struct {
	result *dto.ImportResult
	err    error
	domain string // records which import ran
}

func (m *mockImportService) ImportDelegations(_ context.Context, _ string) (*dto.ImportResult, error) {
	m.domain = service.DomainDelegations
	return m.result, m.err
}
func (m *mockImportService) ImportHelpdesk(_ context.Context, _ string) (*dto.ImportResult, error) {
	m.domain = service.DomainHelpdesk
	return m.result, m.err
}
func (m *mockImportService) ImportNBD(_ context.Context, _ string) (*dto.ImportResult, error) {
	m.domain = service.DomainNBD
	return m.result, m.err
}

// ── Mock UploadService ──

type mockUploadService struct {
	result *dto.UploadResult
	names  []string
}

func (m *mockUploadService) Upload(_ context.Context, files []service.UploadFile) *dto.UploadResult {
	for _, f := range files {
		m.names = append(m.names, f.Name)
	}
	return m.result
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	feed string
	err  error
}

func (m *mockCalendarService) Feed(_ context.Context) (string, error) {
	return m.feed, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// sessionContext mimics what SessionAuth injects.
func sessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Set("user_name", "Asha")
		c.Set("role", "admin")
		c.Set("department", "IT")
		c.Set("token_id", "jti-1")
		c.Set("token_exp", time.Now().Add(time.Hour))
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, field string, files map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte(content))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// ═══════════════════════════════════════════════════════════
// AuthHandler
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.SessionResponse{
			Token: "session-token",
			User:  dto.UserResponse{ID: "u1", Name: "Asha", Role: "admin"},
		},
	}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if !strings.Contains(w.Body.String(), "session-token") {
		t.Error("expected token in response body")
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", bytes.NewReader([]byte("not json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 100 {
		t.Errorf("expected code 100, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrongpass",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 111 {
		t.Errorf("expected code 111, got %d", resp.Code)
	}
}

func TestAuthHandler_Status_Anonymous(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.GET("/auth", h.Status)
	w := doJSON(r, "GET", "/auth", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), `"authenticated":true`) {
		t.Error("expected authenticated=false without a token")
	}
}

func TestAuthHandler_Me_NotAuthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	// no sessionContext middleware
	r := gin.New()
	r.GET("/auth/me", h.Me)
	w := doJSON(r, "GET", "/auth/me", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 101 {
		t.Errorf("expected code 101, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	mock := &mockAttendanceService{
		checkInResult: &dto.DayStateResponse{UserID: "u1", Date: "2024-06-10", CurrentStatus: "CHECKED_IN"},
	}
	h := NewAttendanceHandler(mock)

	r := gin.New()
	r.POST("/attendance/check-in", sessionContext(), h.CheckIn)
	w := doJSON(r, "POST", "/attendance/check-in", nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "CHECKED_IN") {
		t.Error("expected day state in response")
	}
}

func TestAttendanceHandler_CheckIn_AlreadyCheckedIn(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{checkInErr: service.ErrAlreadyCheckedIn})

	r := gin.New()
	r.POST("/attendance/check-in", sessionContext(), h.CheckIn)
	w := doJSON(r, "POST", "/attendance/check-in", nil)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 121 {
		t.Errorf("expected code 121, got %d", resp.Code)
	}
}

func TestAttendanceHandler_CheckOut_NoCheckIn(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{checkOutErr: service.ErrNoCheckInFound})

	r := gin.New()
	r.POST("/attendance/check-out", sessionContext(), h.CheckOut)
	w := doJSON(r, "POST", "/attendance/check-out", nil)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 122 {
		t.Errorf("expected code 122, got %d", resp.Code)
	}
}

func TestAttendanceHandler_List_Paginated(t *testing.T) {
	mock := &mockAttendanceService{
		listResult: []dto.AttendanceResponse{{}, {}},
		listTotal:  2,
	}
	h := NewAttendanceHandler(mock)

	r := gin.New()
	r.GET("/attendance", sessionContext(), h.List)
	w := doJSON(r, "GET", "/attendance?page=1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"pagination"`) {
		t.Error("expected pagination envelope")
	}
	if !strings.Contains(w.Body.String(), `"total":2`) {
		t.Error("expected total 2")
	}
}

// ═══════════════════════════════════════════════════════════
// DelegationHandler
// ═══════════════════════════════════════════════════════════

func TestDelegationHandler_Update_NotFound(t *testing.T) {
	h := NewDelegationHandler(&mockDelegationService{updateErr: service.ErrDelegationNotFound})

	r := gin.New()
	r.PATCH("/delegations/:id", sessionContext(), h.Update)
	w := doJSON(r, "PATCH", "/delegations/missing", jsonBody(map[string]string{"status": "hold"}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 131 {
		t.Errorf("expected code 131, got %d", resp.Code)
	}
}

func TestDelegationHandler_Create_Success(t *testing.T) {
	mock := &mockDelegationService{
		createResult: &dto.DelegationResponse{EffectiveStatus: "planned"},
	}
	h := NewDelegationHandler(mock)

	r := gin.New()
	r.POST("/delegations", sessionContext(), h.Create)
	w := doJSON(r, "POST", "/delegations", jsonBody(dto.CreateDelegationRequest{
		DelegationName: "Audit prep",
		AssignedTo:     "u2",
		Priority:       "high",
		DueDate:        "2024-06-15",
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDelegationHandler_Create_MissingFields(t *testing.T) {
	h := NewDelegationHandler(&mockDelegationService{})

	r := gin.New()
	r.POST("/delegations", sessionContext(), h.Create)
	w := doJSON(r, "POST", "/delegations", jsonBody(map[string]string{"delegation_name": "x"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HelpdeskHandler
// ═══════════════════════════════════════════════════════════

func TestHelpdeskHandler_Create_InvalidCategory(t *testing.T) {
	h := NewHelpdeskHandler(&mockHelpdeskService{createErr: service.ErrInvalidCategory})

	r := gin.New()
	r.POST("/helpdesk/tickets", sessionContext(), h.Create)
	w := doJSON(r, "POST", "/helpdesk/tickets", jsonBody(dto.CreateTicketRequest{
		RaisedBy:     "u1",
		RaisedByName: "Asha",
		Category:     "Gardening",
		Priority:     "Low",
		Subject:      "Printer jam",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 143 {
		t.Errorf("expected code 143, got %d", resp.Code)
	}
}

func TestHelpdeskHandler_UpdateStatus_Invalid(t *testing.T) {
	h := NewHelpdeskHandler(&mockHelpdeskService{updateStErr: service.ErrInvalidTicketStatus})

	r := gin.New()
	r.PUT("/helpdesk/tickets/:id/status", sessionContext(), h.UpdateStatus)
	w := doJSON(r, "PUT", "/helpdesk/tickets/t1/status", jsonBody(map[string]string{"status": "archived"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 142 {
		t.Errorf("expected code 142, got %d", resp.Code)
	}
}

func TestHelpdeskHandler_Get_NotFound(t *testing.T) {
	h := NewHelpdeskHandler(&mockHelpdeskService{getErr: service.ErrTicketNotFound})

	r := gin.New()
	r.GET("/helpdesk/tickets/:id", sessionContext(), h.Get)
	w := doJSON(r, "GET", "/helpdesk/tickets/missing", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 141 {
		t.Errorf("expected code 141, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// NBDHandler
// ═══════════════════════════════════════════════════════════

func TestNBDHandler_AddFollowUp_NotFound(t *testing.T) {
	h := NewNBDHandler(&mockNBDService{addFollowUpErr: service.ErrNBDNotFound})

	r := gin.New()
	r.POST("/nbd/:id/followups", sessionContext(), h.AddFollowUp)
	w := doJSON(r, "POST", "/nbd/missing/followups", jsonBody(map[string]string{"remark": "called"}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 151 {
		t.Errorf("expected code 151, got %d", resp.Code)
	}
}

func TestNBDHandler_ShiftToCRR_Success(t *testing.T) {
	mock := &mockNBDService{
		shiftResult: &dto.ShiftToCRRResponse{Shifted: []string{"n1"}, Skipped: []string{"n2"}},
	}
	h := NewNBDHandler(mock)

	r := gin.New()
	r.POST("/nbd/shift-to-crr", sessionContext(), h.ShiftToCRR)
	w := doJSON(r, "POST", "/nbd/shift-to-crr", jsonBody(dto.ShiftToCRRRequest{IDs: []string{"n1", "n2"}}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"shifted":["n1"]`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestNBDHandler_Create_InvalidStage(t *testing.T) {
	h := NewNBDHandler(&mockNBDService{createErr: service.ErrInvalidStage})

	r := gin.New()
	r.POST("/nbd", sessionContext(), h.Create)
	w := doJSON(r, "POST", "/nbd", jsonBody(dto.CreateNBDRequest{
		PartyName:     "Sunrise Printers",
		Type:          "PRINTER",
		ContactPerson: "Ravi",
		Phone1:        "9000000001",
		Stage:         "NOWHERE",
		TATDays:       5,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 152 {
		t.Errorf("expected code 152, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DepartmentHandler
// ═══════════════════════════════════════════════════════════

func TestDepartmentHandler_Create_Duplicate(t *testing.T) {
	h := NewDepartmentHandler(&mockDepartmentService{createErr: service.ErrDepartmentExists})

	r := gin.New()
	r.POST("/departments", sessionContext(), h.Create)
	w := doJSON(r, "POST", "/departments", jsonBody(dto.CreateDepartmentRequest{Name: "Sales"}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 171 {
		t.Errorf("expected code 171, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler
// ═══════════════════════════════════════════════════════════

func TestExportHandler_CSV_Success(t *testing.T) {
	mock := &mockExportService{
		csvContent: []byte("id,user_id\n"),
		filename:   "attendance_2024-06-10.csv",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/:domain/csv", h.CSV)
	w := doJSON(r, "GET", "/export/attendance/csv", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attendance_2024-06-10.csv") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestExportHandler_CSV_UnknownDomain(t *testing.T) {
	h := NewExportHandler(&mockExportService{csvErr: service.ErrUnknownDomain})

	r := gin.New()
	r.GET("/export/:domain/csv", h.CSV)
	w := doJSON(r, "GET", "/export/payroll/csv", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 161 {
		t.Errorf("expected code 161, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ImportHandler
// ═══════════════════════════════════════════════════════════

func TestImportHandler_Delegations_Success(t *testing.T) {
	mock := &mockImportService{result: &dto.ImportResult{Imported: 2, Skipped: 1}}
	h := NewImportHandler(mock)

	body, contentType := multipartBody(t, "file", map[string]string{
		"delegations.csv": "delegation_name,assigned_to,priority,due_date\nAudit prep,u2,high,2024-06-15\n",
	})

	r := gin.New()
	r.POST("/import/:domain", h.Import)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/import/delegations", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mock.domain != service.DomainDelegations {
		t.Errorf("dispatched to %q, want delegations", mock.domain)
	}
	if !strings.Contains(w.Body.String(), `"imported":2`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestImportHandler_BadHeader(t *testing.T) {
	h := NewImportHandler(&mockImportService{
		err: fmt.Errorf("%w: missing column due_date", service.ErrBadImportFile),
	})

	body, contentType := multipartBody(t, "file", map[string]string{
		"delegations.csv": "delegation_name,assigned_to\nAudit prep,u2\n",
	})

	r := gin.New()
	r.POST("/import/:domain", h.Import)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/import/delegations", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 162 {
		t.Errorf("expected code 162, got %d", resp.Code)
	}
	if !strings.Contains(resp.Details, "due_date") {
		t.Errorf("expected offending column in details, got %q", resp.Details)
	}
}

func TestImportHandler_StoreFailure(t *testing.T) {
	h := NewImportHandler(&mockImportService{err: errors.New("proxy returned 502")})

	body, contentType := multipartBody(t, "file", map[string]string{
		"delegations.csv": "delegation_name,assigned_to,priority,due_date\nAudit prep,u2,high,2024-06-15\n",
	})

	r := gin.New()
	r.POST("/import/:domain", h.Import)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/import/delegations", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 50000 {
		t.Errorf("expected code 50000, got %d", resp.Code)
	}
}

func TestImportHandler_MissingFile(t *testing.T) {
	h := NewImportHandler(&mockImportService{})

	r := gin.New()
	r.POST("/import/:domain", h.Import)
	w := doJSON(r, "POST", "/import/delegations", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 162 {
		t.Errorf("expected code 162, got %d", resp.Code)
	}
}

func TestImportHandler_UnknownDomain(t *testing.T) {
	h := NewImportHandler(&mockImportService{})

	body, contentType := multipartBody(t, "file", map[string]string{"x.csv": "a,b\n"})

	r := gin.New()
	r.POST("/import/:domain", h.Import)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/import/payroll", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 161 {
		t.Errorf("expected code 161, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UploadHandler
// ═══════════════════════════════════════════════════════════

func TestUploadHandler_Success(t *testing.T) {
	mock := &mockUploadService{
		result: &dto.UploadResult{URLs: []string{"http://blob/a.pdf"}, Failed: []string{}},
	}
	h := NewUploadHandler(mock)

	body, contentType := multipartBody(t, "files", map[string]string{"a.pdf": "content"})

	r := gin.New()
	r.POST("/uploads", sessionContext(), h.Upload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(mock.names) != 1 || mock.names[0] != "a.pdf" {
		t.Errorf("uploaded names = %v", mock.names)
	}
}

func TestUploadHandler_NoFiles(t *testing.T) {
	h := NewUploadHandler(&mockUploadService{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "empty")
	mw.Close()

	r := gin.New()
	r.POST("/uploads", sessionContext(), h.Upload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_Feed(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{feed: "BEGIN:VCALENDAR\nEND:VCALENDAR\n"})

	r := gin.New()
	r.GET("/calendar/feed.ics", h.Feed)
	w := doJSON(r, "GET", "/calendar/feed.ics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("expected ICS payload")
	}
}
