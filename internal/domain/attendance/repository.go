package attendance

import (
	"context"
	"time"
)

// DayRecordRepository defines data access for persisted day records.
// Soft-deleted records are tombstones: they stay in storage forever and are
// filtered here, so classification and aggregation never see the flag.
type DayRecordRepository interface {
	// Create inserts a single day record.
	Create(ctx context.Context, rec DayRecord) (DayRecord, error)

	// GetByID retrieves a day record by ID, tombstones included.
	GetByID(ctx context.Context, id string) (DayRecord, error)

	// Exists reports whether a non-deleted record already exists for the
	// exact (employeeID, date, firstIn) idempotency key.
	Exists(ctx context.Context, employeeID string, date time.Time, firstIn time.Time) (bool, error)

	// GetActiveByEmployeeAndDate retrieves the non-deleted record for one
	// employee on one calendar date, or nil when none exists.
	GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*DayRecord, error)

	// ActiveDayRecords retrieves the non-deleted records for one employee
	// in [start, end], ordered by date.
	ActiveDayRecords(ctx context.Context, employeeID string, start, end time.Time) ([]DayRecord, error)

	// ActiveDayRecordsAll retrieves the non-deleted records for every
	// employee in [start, end].
	ActiveDayRecordsAll(ctx context.Context, start, end time.Time) ([]DayRecord, error)

	// UpdateCheckoutAndStatus fills lastOut and flips PRESENT to LATE on an
	// existing record. Status never moves the other way within a run.
	UpdateCheckoutAndStatus(ctx context.Context, rec DayRecord) error

	// SoftDelete tombstones a record. Records are never physically removed.
	SoftDelete(ctx context.Context, id string) error
}
