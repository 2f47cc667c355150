package calendar

import (
	"context"
	"time"
)

// CalendarService answers working-day questions for every downstream
// component. Holiday sets are precomputed per calendar year and cached.
type CalendarService interface {
	// WorkingDays counts working days in [start, end], inclusive of both
	// endpoints.
	WorkingDays(ctx context.Context, start, end time.Time) (int, error)

	// IsWorkingDay reports whether date is neither a weekend day nor a
	// registered holiday.
	IsWorkingDay(ctx context.Context, date time.Time) (bool, error)

	// HolidaysInRange returns the holidays falling in [start, end].
	HolidaysInRange(ctx context.Context, start, end time.Time) ([]Holiday, error)

	// RegenerateYear rebuilds the cached holiday set for a year. Run from
	// the scheduler; a cache miss on the query path triggers the same
	// generation synchronously.
	RegenerateYear(ctx context.Context, year int) error
}
