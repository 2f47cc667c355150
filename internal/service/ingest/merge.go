package ingest

import (
	"sort"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
)

// MergedGroup is the per-employee, per-day collapse of raw punch events.
// FirstIn is the earliest IN punch of the day, LastOut the latest OUT.
// A group with no IN punch has a nil FirstIn and cannot become a new
// day record on its own; it can only close out an existing one.
type MergedGroup struct {
	EmployeeCode       string
	Date               time.Time
	FirstIn            *time.Time
	LastOut            *time.Time
	VerificationMethod string
	RowNumber          int
}

type groupKey struct {
	code string
	date time.Time
}

// Merge collapses events into one group per (employee, date). Events for
// the same key arriving in any order produce the same group. The returned
// slice is sorted by employee code then date so batch processing and the
// resulting report are deterministic.
func Merge(events []attendance.RawEvent) []MergedGroup {
	groups := make(map[groupKey]*MergedGroup)

	for _, ev := range events {
		key := groupKey{code: ev.EmployeeCode, date: ev.Date()}
		g, ok := groups[key]
		if !ok {
			g = &MergedGroup{
				EmployeeCode:       ev.EmployeeCode,
				Date:               ev.Date(),
				VerificationMethod: ev.VerificationMethod,
				RowNumber:          ev.RowNumber,
			}
			groups[key] = g
		}
		if ev.RowNumber < g.RowNumber {
			g.RowNumber = ev.RowNumber
		}

		switch ev.Direction {
		case attendance.DirectionIn:
			if g.FirstIn == nil || ev.Timestamp.Before(*g.FirstIn) {
				ts := ev.Timestamp
				g.FirstIn = &ts
			}
		case attendance.DirectionOut:
			if g.LastOut == nil || ev.Timestamp.After(*g.LastOut) {
				ts := ev.Timestamp
				g.LastOut = &ts
			}
		}
	}

	merged := make([]MergedGroup, 0, len(groups))
	for _, g := range groups {
		merged = append(merged, *g)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].EmployeeCode != merged[j].EmployeeCode {
			return merged[i].EmployeeCode < merged[j].EmployeeCode
		}
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}
