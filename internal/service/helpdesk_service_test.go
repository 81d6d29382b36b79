package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
)

func newHelpdeskTestService() (*helpdeskService, *repositoryFixture) {
	fix := newRepositoryFixture()
	svc := NewHelpdeskService(fix.repo, zap.NewNop()).(*helpdeskService)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC) }
	return svc, fix
}

func validTicketRequest() *dto.CreateTicketRequest {
	return &dto.CreateTicketRequest{
		RaisedBy:     "u1",
		RaisedByName: "Asha",
		Category:     model.TicketCategories[0],
		Priority:     model.TicketPriorityHigh,
		Subject:      "Laptop will not boot",
	}
}

func TestHelpdeskCreateAssignsTicketNumber(t *testing.T) {
	svc, _ := newHelpdeskTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, validTicketRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.TicketNumber != "TKT-20240610-0001" {
		t.Errorf("ticket number = %q", first.TicketNumber)
	}
	if first.Status != model.TicketRaised {
		t.Errorf("status = %q, want %q", first.Status, model.TicketRaised)
	}
	if first.Attachments == nil {
		t.Error("attachments should default to an empty list")
	}

	second, err := svc.Create(ctx, validTicketRequest())
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.TicketNumber != "TKT-20240610-0002" {
		t.Errorf("second ticket number = %q", second.TicketNumber)
	}
}

func TestHelpdeskCreateRejectsUnknownCategory(t *testing.T) {
	svc, _ := newHelpdeskTestService()
	req := validTicketRequest()
	req.Category = "Gardening"
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("err = %v, want ErrInvalidCategory", err)
	}
}

func TestHelpdeskStatusTransitions(t *testing.T) {
	svc, _ := newHelpdeskTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validTicketRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, created.ID, &dto.UpdateTicketStatusRequest{Status: "archived"}); !errors.Is(err, ErrInvalidTicketStatus) {
		t.Errorf("unknown status err = %v, want ErrInvalidTicketStatus", err)
	}

	moved, err := svc.UpdateStatus(ctx, created.ID, &dto.UpdateTicketStatusRequest{Status: model.TicketInProgress})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if moved.ResolvedAt != "" {
		t.Errorf("in-progress must not stamp resolved_at, got %q", moved.ResolvedAt)
	}

	svc.now = func() time.Time { return time.Date(2024, 6, 11, 16, 30, 0, 0, time.UTC) }
	solved, err := svc.UpdateStatus(ctx, created.ID, &dto.UpdateTicketStatusRequest{Status: model.TicketSolved})
	if err != nil {
		t.Fatalf("UpdateStatus solved: %v", err)
	}
	if solved.ResolvedAt != "2024-06-11 16:30:00" {
		t.Errorf("resolved_at = %q", solved.ResolvedAt)
	}
}

func TestHelpdeskUpdateLeavesStatusAlone(t *testing.T) {
	svc, _ := newHelpdeskTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validTicketRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, created.ID, &dto.UpdateTicketStatusRequest{Status: model.TicketVerified}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	subject := "Laptop will not boot after update"
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateTicketRequest{Subject: &subject})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Subject != subject {
		t.Errorf("subject = %q", updated.Subject)
	}
	if updated.Status != model.TicketVerified {
		t.Errorf("field edit moved status to %q", updated.Status)
	}
}

func TestHelpdeskRemarksIndependentOfStatus(t *testing.T) {
	svc, _ := newHelpdeskTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validTicketRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, created.ID, &dto.UpdateTicketStatusRequest{Status: model.TicketClosed}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	// a closed ticket still accepts remarks
	if _, err := svc.AddRemark(ctx, created.ID, &dto.AddRemarkRequest{Text: "user confirmed fix"}, "Dev"); err != nil {
		t.Fatalf("AddRemark: %v", err)
	}
	remarks, err := svc.ListRemarks(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListRemarks: %v", err)
	}
	if len(remarks) != 1 || remarks[0].Author != "Dev" {
		t.Errorf("remarks = %+v", remarks)
	}

	got, _ := svc.GetByID(ctx, created.ID)
	if got.Status != model.TicketClosed {
		t.Errorf("remark changed status to %q", got.Status)
	}
}

func TestHelpdeskListFilters(t *testing.T) {
	svc, fix := newHelpdeskTestService()
	ctx := context.Background()

	seed := []model.HelpdeskTicket{
		{ID: "t1", Status: model.TicketRaised, Priority: model.TicketPriorityLow, Category: model.TicketCategories[0], CreatedAt: "2024-06-01 10:00:00"},
		{ID: "t2", Status: model.TicketSolved, Priority: model.TicketPriorityCritical, Category: model.TicketCategories[0], CreatedAt: "2024-06-02 10:00:00"},
		{ID: "t3", Status: model.TicketRaised, Priority: model.TicketPriorityMedium, Category: model.TicketCategories[1], CreatedAt: "2024-06-03 10:00:00"},
	}
	for i := range seed {
		if err := fix.helpdesk.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	out, total, _, _, err := svc.List(ctx, &dto.TicketListRequest{
		Statuses: []string{model.TicketRaised}, SortBy: "priority", SortDesc: true, Page: 1,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if out[0].ID != "t3" || out[1].ID != "t1" {
		t.Errorf("order = %q, %q", out[0].ID, out[1].ID)
	}
}

func TestHelpdeskNotFoundErrors(t *testing.T) {
	svc, _ := newHelpdeskTestService()
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("GetByID err = %v", err)
	}
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("Delete err = %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", &dto.UpdateTicketStatusRequest{Status: model.TicketSolved}); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("UpdateStatus err = %v", err)
	}
}
