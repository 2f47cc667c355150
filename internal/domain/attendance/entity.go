package attendance

import "time"

// RawEvent is one normalized punch before merging. RawEvents live only for
// the duration of an ingestion run and are never persisted standalone.
type RawEvent struct {
	EmployeeCode       string
	Timestamp          time.Time
	Direction          Direction
	VerificationMethod string
	SourceBatchID      string
	RowNumber          int // originating row in the source batch, for rejection reporting
}

// Date returns the calendar date the punch belongs to, truncated to day.
func (e RawEvent) Date() time.Time {
	return time.Date(e.Timestamp.Year(), e.Timestamp.Month(), e.Timestamp.Day(), 0, 0, 0, 0, e.Timestamp.Location())
}

type Direction string

const (
	DirectionIn      Direction = "IN"
	DirectionOut     Direction = "OUT"
	DirectionUnknown Direction = "UNKNOWN"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
)

// VerificationMethod values seen from the device plus the manual fallback.
const (
	VerificationFingerprint = "FINGERPRINT"
	VerificationCard        = "CARD"
	VerificationPassword    = "PASSWORD"
	VerificationFace        = "FACE"
	VerificationManual      = "MANUAL"
)

// DayRecord is the single canonical attendance entry for one employee on
// one calendar date. At most one non-deleted record may exist per
// (employee, date). A record with a nil FirstIn is invalid and must never
// be persisted.
type DayRecord struct {
	ID             string
	EmployeeID     string
	EmployeeCode   string
	Date           time.Time
	FirstIn        *time.Time
	LastOut        *time.Time
	Status         Status
	LateMinutes    int
	SourceDeviceID *string
	SourceBatchID  string
	Deleted        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}
