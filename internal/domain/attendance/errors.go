package attendance

import "errors"

var (
	// ErrUnknownFormat aborts an entire batch: the header row matched
	// neither known column set. Surfaced once, never per row.
	ErrUnknownFormat = errors.New("unrecognized import format")

	// ErrDuplicateDayRecord is returned by Create when a non-deleted record
	// already holds the same (employee, date, firstIn) key. Callers count it
	// and move on; it is never a batch failure.
	ErrDuplicateDayRecord = errors.New("duplicate day record")

	ErrEmptyBatch        = errors.New("import batch contains no rows")
	ErrDayRecordNotFound = errors.New("day record not found")
)
