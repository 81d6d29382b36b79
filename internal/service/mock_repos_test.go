package service

import (
	"context"
	"sync"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
)

// In-memory repositories for service tests. They preserve insertion
// order, which the services rely on for sheet-like semantics.

type repositoryFixture struct {
	repo       *repository.Repository
	user       *mockUserRepo
	department *mockDepartmentRepo
	attendance *mockAttendanceRepo
	delegation *mockDelegationRepo
	helpdesk   *mockHelpdeskRepo
	nbd        *mockNBDRepo
}

func newRepositoryFixture() *repositoryFixture {
	fix := &repositoryFixture{
		user:       &mockUserRepo{},
		department: &mockDepartmentRepo{},
		attendance: &mockAttendanceRepo{},
		delegation: &mockDelegationRepo{},
		helpdesk:   &mockHelpdeskRepo{},
		nbd:        &mockNBDRepo{},
	}
	fix.repo = &repository.Repository{
		User:       fix.user,
		Department: fix.department,
		Attendance: fix.attendance,
		Delegation: fix.delegation,
		Helpdesk:   fix.helpdesk,
		NBD:        fix.nbd,
	}
	return fix
}

type mockUserRepo struct {
	mu    sync.Mutex
	users []model.User
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.User(nil), m.users...), nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) add(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
}

type mockDepartmentRepo struct {
	mu    sync.Mutex
	depts []model.Department
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]model.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Department(nil), m.depts...), nil
}

func (m *mockDepartmentRepo) Create(ctx context.Context, dept *model.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depts = append(m.depts, *dept)
	return nil
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.depts {
		if m.depts[i].ID == id {
			m.depts = append(m.depts[:i], m.depts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockAttendanceRepo struct {
	mu      sync.Mutex
	records []model.AttendanceRecord
}

func (m *mockAttendanceRepo) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AttendanceRecord(nil), m.records...), nil
}

func (m *mockAttendanceRepo) ListByUser(ctx context.Context, userID string) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) FindByUserDate(ctx context.Context, userID, date string) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].UserID == userID && m.records[i].Date == date {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAttendanceRepo) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockAttendanceRepo) CloseOut(ctx context.Context, userID, date, outTime, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].UserID == userID && m.records[i].Date == date {
			m.records[i].OutTime = outTime
			m.records[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockDelegationRepo struct {
	mu          sync.Mutex
	delegations []model.Delegation
	remarks     []model.DelegationRemark
	revisions   []model.DelegationRevision
}

func (m *mockDelegationRepo) List(ctx context.Context) ([]model.Delegation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Delegation(nil), m.delegations...), nil
}

func (m *mockDelegationRepo) GetByID(ctx context.Context, id string) (*model.Delegation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.delegations {
		if m.delegations[i].ID == id {
			d := m.delegations[i]
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockDelegationRepo) Create(ctx context.Context, d *model.Delegation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delegations = append(m.delegations, *d)
	return nil
}

func (m *mockDelegationRepo) Update(ctx context.Context, d *model.Delegation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.delegations {
		if m.delegations[i].ID == d.ID {
			m.delegations[i] = *d
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockDelegationRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.delegations {
		if m.delegations[i].ID == id {
			m.delegations = append(m.delegations[:i], m.delegations[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockDelegationRepo) ListRemarks(ctx context.Context, delegationID string) ([]model.DelegationRemark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DelegationRemark
	for _, r := range m.remarks {
		if r.DelegationID == delegationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockDelegationRepo) AppendRemark(ctx context.Context, remark *model.DelegationRemark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remarks = append(m.remarks, *remark)
	return nil
}

func (m *mockDelegationRepo) ListRevisions(ctx context.Context, delegationID string) ([]model.DelegationRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DelegationRevision
	for _, r := range m.revisions {
		if r.DelegationID == delegationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockDelegationRepo) AppendRevision(ctx context.Context, rev *model.DelegationRevision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revisions = append(m.revisions, *rev)
	return nil
}

type mockHelpdeskRepo struct {
	mu      sync.Mutex
	tickets []model.HelpdeskTicket
	remarks []model.TicketRemark
}

func (m *mockHelpdeskRepo) List(ctx context.Context) ([]model.HelpdeskTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.HelpdeskTicket(nil), m.tickets...), nil
}

func (m *mockHelpdeskRepo) GetByID(ctx context.Context, id string) (*model.HelpdeskTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			t := m.tickets[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockHelpdeskRepo) Create(ctx context.Context, t *model.HelpdeskTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = append(m.tickets, *t)
	return nil
}

func (m *mockHelpdeskRepo) Update(ctx context.Context, t *model.HelpdeskTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tickets {
		if m.tickets[i].ID == t.ID {
			m.tickets[i] = *t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockHelpdeskRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			m.tickets = append(m.tickets[:i], m.tickets[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockHelpdeskRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickets), nil
}

func (m *mockHelpdeskRepo) ListRemarks(ctx context.Context, ticketID string) ([]model.TicketRemark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TicketRemark
	for _, r := range m.remarks {
		if r.TicketID == ticketID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockHelpdeskRepo) AppendRemark(ctx context.Context, remark *model.TicketRemark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remarks = append(m.remarks, *remark)
	return nil
}

type mockNBDRepo struct {
	mu        sync.Mutex
	records   []model.NBD
	followUps []model.FollowUp
}

func (m *mockNBDRepo) List(ctx context.Context) ([]model.NBD, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.NBD(nil), m.records...), nil
}

func (m *mockNBDRepo) GetByID(ctx context.Context, id string) (*model.NBD, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			n := m.records[i]
			return &n, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockNBDRepo) Create(ctx context.Context, n *model.NBD) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *n)
	return nil
}

func (m *mockNBDRepo) Update(ctx context.Context, n *model.NBD) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == n.ID {
			m.records[i] = *n
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockNBDRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockNBDRepo) ListFollowUps(ctx context.Context, nbdID string) ([]model.FollowUp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.FollowUp
	for _, fu := range m.followUps {
		if fu.NBDID == nbdID {
			out = append(out, fu)
		}
	}
	return out, nil
}

func (m *mockNBDRepo) ListAllFollowUps(ctx context.Context) ([]model.FollowUp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.FollowUp(nil), m.followUps...), nil
}

func (m *mockNBDRepo) AppendFollowUp(ctx context.Context, fu *model.FollowUp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.followUps = append(m.followUps, *fu)
	return nil
}
