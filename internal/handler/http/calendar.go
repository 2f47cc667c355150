package http

import (
	"net/http"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/calendar"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/handler/http/response"
)

type CalendarHandler interface {
	GetWorkingDays(w http.ResponseWriter, r *http.Request)
	GetHolidays(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

func parseRange(r *http.Request) (start, end time.Time, ok bool) {
	var err error
	start, err = time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// GetWorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(r)
	if !ok {
		response.BadRequest(w, "Query parameters 'start_date' and 'end_date' must be YYYY-MM-DD", nil)
		return
	}

	days, err := h.calendarService.WorkingDays(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"start_date":   start.Format("2006-01-02"),
		"end_date":     end.Format("2006-01-02"),
		"working_days": days,
	})
}

// GetHolidays implements CalendarHandler.
func (h *calendarHandlerImpl) GetHolidays(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(r)
	if !ok {
		response.BadRequest(w, "Query parameters 'start_date' and 'end_date' must be YYYY-MM-DD", nil)
		return
	}

	holidays, err := h.calendarService.HolidaysInRange(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]holidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		out = append(out, holidayResponse{
			Date:     hd.Date.Format("2006-01-02"),
			Name:     hd.Name,
			Category: string(hd.Category),
		})
	}

	response.Success(w, out)
}

type holidayResponse struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
