package response

import (
	"errors"
	"net/http"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/calendar"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/employee"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/shift"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrUnknownFormat):
		BadRequest(w, "Import format not recognized", nil)
	case errors.Is(err, attendance.ErrEmptyBatch):
		BadRequest(w, "Import contains no data rows", nil)
	case errors.Is(err, attendance.ErrDayRecordNotFound):
		NotFound(w, "Day record not found")
	case errors.Is(err, attendance.ErrDuplicateDayRecord):
		Conflict(w, "Day record already exists")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is inactive")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
