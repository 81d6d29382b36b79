package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// CalendarHandler serves the iCalendar feed of open deadlines.
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Feed returns pending delegation due dates and NBD follow-ups as an
// ICS document that calendar clients can subscribe to.
// GET /api/v1/calendar/feed.ics
func (h *CalendarHandler) Feed(c *gin.Context) {
	feed, err := h.calendarSvc.Feed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
