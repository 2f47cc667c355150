package cron

import (
	"context"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/calendar"
)

// HolidayCacheJob rebuilds the holiday cache for the current and next
// calendar year so working-day queries never generate on the hot path.
// Running it daily also picks up rule changes made in storage.
func HolidayCacheJob(cal calendar.CalendarService) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		year := time.Now().Year()
		if err := cal.RegenerateYear(ctx, year); err != nil {
			return err
		}
		return cal.RegenerateYear(ctx, year+1)
	}
}
