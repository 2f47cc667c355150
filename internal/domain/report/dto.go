package report

import "github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/validator"

// PeriodSummary is the computed attendance statistics for one employee over
// a date range. It is derived on every query and never stored, so it is
// always consistent with the current day records.
type PeriodSummary struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeCode   string `json:"employee_code"`
	EmployeeName   string `json:"employee_name,omitempty"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	WorkingDays    int    `json:"working_days"`
	PresentDays    int    `json:"present_days"`
	LateDays       int    `json:"late_days"`
	AttendanceRate int    `json:"attendance_rate"` // rounded percentage, deliberately not clamped at 100
}

type PeriodSummaryRequest struct {
	EmployeeCode string `json:"employee_id"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD
	EndDate      string `json:"end_date"`   // YYYY-MM-DD
}

func (r *PeriodSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
