package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/model"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/dateutil"
)

// CalendarService renders open work as an iCalendar feed so users can
// subscribe from their mail client. Delegation due dates and NBD
// follow-up dates each become an all-day event.
type CalendarService interface {
	Feed(ctx context.Context) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) Feed(ctx context.Context) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//MasterMIS//Operations//EN")
	cal.SetName("MasterMIS Operations")

	today := s.now()

	delegations, err := s.repo.Delegation.List(ctx)
	if err != nil {
		s.logger.Error("list delegations for feed failed", zap.Error(err))
		return "", err
	}
	for i := range delegations {
		d := &delegations[i]
		status := EffectiveDelegationStatus(d, today)
		if status == "completed" {
			continue
		}
		due, ok := dateutil.Parse(d.DueDate)
		if !ok {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("delegation-%s@mastermis", d.ID))
		ev.SetAllDayStartAt(due)
		ev.SetAllDayEndAt(due.AddDate(0, 0, 1))
		ev.SetSummary(fmt.Sprintf("Delegation due: %s", d.DelegationName))
		ev.SetDescription(fmt.Sprintf("Assigned to %s (%s), priority %s, status %s",
			d.DoerName, d.AssignedTo, d.Priority, status))
	}

	nbds, err := s.repo.NBD.List(ctx)
	if err != nil {
		s.logger.Error("list nbd for feed failed", zap.Error(err))
		return "", err
	}
	followUps, err := s.repo.NBD.ListAllFollowUps(ctx)
	if err != nil {
		s.logger.Error("list follow-ups for feed failed", zap.Error(err))
		return "", err
	}
	latest := latestByNBD(followUps)

	for i := range nbds {
		n := &nbds[i]
		eff := ResolveFollowUp(n, latest[n.ID], today)
		if eff.Status == model.FollowUpDead || eff.Status == model.FollowUpOrderWon {
			continue
		}
		date, ok := dateutil.Parse(eff.Date)
		if !ok {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("nbd-%s@mastermis", n.ID))
		ev.SetAllDayStartAt(date)
		ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
		ev.SetSummary(fmt.Sprintf("Follow up: %s", n.PartyName))
		ev.SetDescription(fmt.Sprintf("%s, %s, contact %s %s",
			n.Type, n.Stage, n.ContactPerson, n.Phone1))
	}

	return cal.Serialize(), nil
}
