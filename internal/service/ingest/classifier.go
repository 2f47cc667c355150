package ingest

import (
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/employee"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/shift"
)

const halfDaySeconds = 12 * 60 * 60

// Classify decides PRESENT or LATE for a day's first check-in. Flexible
// employees are always PRESENT. Shift-bound employees are LATE when the
// check-in lands strictly after shift start plus grace, measured in
// seconds of day so a one-second overrun already counts.
//
// The comparison wraps around midnight: a check-in that lands within half
// a day before the deadline belongs to a shift that started late the
// previous evening and is treated as early, not twenty-three hours late.
func Classify(firstIn time.Time, emp employee.Employee, sh *shift.Shift) (attendance.Status, int) {
	if !emp.IsShiftBound() || sh == nil {
		return attendance.StatusPresent, 0
	}

	inSec := firstIn.Hour()*3600 + firstIn.Minute()*60 + firstIn.Second()
	deadline := sh.StartTime.Hour()*3600 + sh.StartTime.Minute()*60 + sh.StartTime.Second() +
		sh.GraceMinutes*60

	diff := ((inSec-deadline)%(2*halfDaySeconds) + 2*halfDaySeconds) % (2 * halfDaySeconds)
	if diff > halfDaySeconds {
		diff -= 2 * halfDaySeconds
	}

	if diff <= 0 {
		return attendance.StatusPresent, 0
	}
	// Round up so any overrun shows as at least one minute.
	return attendance.StatusLate, (diff + 59) / 60
}
