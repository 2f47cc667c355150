package attendance

import (
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/validator"
)

// ========================================
// INGESTION DTOs
// ========================================

// Row is a loosely-typed source row as it comes out of a spreadsheet sheet
// or a terminal poll: header name → cell value. Keys are normalized
// (lowercased, trimmed) by the pipeline before any business logic sees them.
type Row struct {
	Number int // 1-based position in the source batch, used in rejection reasons
	Fields map[string]string
}

// RowBatch is one ingestion run's worth of rows.
type RowBatch struct {
	SourceDeviceID *string
	Rows           []Row
}

// RowRejection records why a single row was dropped. Rejections are data,
// not errors; the batch keeps going.
type RowRejection struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport is the single summary object every ingestion run returns.
// RejectReasons is a bounded sample, not the full rejection list.
type ImportReport struct {
	BatchID           string         `json:"batch_id"`
	Format            string         `json:"format"`
	TotalRows         int            `json:"total_rows"`
	Merged            int            `json:"merged"`
	Imported          int            `json:"imported"`
	Updated           int            `json:"updated"`
	DuplicatesSkipped int            `json:"duplicates_skipped"`
	Rejected          int            `json:"rejected"`
	RejectReasons     []RowRejection `json:"reject_reasons"`
	FailedChunks      int            `json:"failed_chunks"`
	Outcomes          []RowOutcome   `json:"outcomes,omitempty"`
}

// RowOutcome is one insert/skip decision, consumed by the reporting layer.
type RowOutcome struct {
	EmployeeCode string `json:"employee_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Inserted     bool   `json:"inserted"`
}

type ManualPunchRequest struct {
	EmployeeCode string `json:"employee_id"`
	Date         string `json:"date"`      // YYYY-MM-DD
	CheckIn      string `json:"check_in"`  // HH:MM[:SS]
	CheckOut     string `json:"check_out"` // optional
}

func (r *ManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	FirstIn      *string `json:"first_in,omitempty"`
	LastOut      *string `json:"last_out,omitempty"`
	Status       string  `json:"status"`
	LateMinutes  int     `json:"late_minutes"`
}
