package shift

import "time"

// Shift is a work-shift policy: time-of-day boundaries plus the grace
// period before lateness is declared. StartTime and EndTime carry only the
// clock component; shifts may wrap past midnight, so duration is always
// computed modulo 24h.
type Shift struct {
	ID           string
	Name         string
	StartTime    time.Time // time-of-day, date component ignored
	EndTime      time.Time // time-of-day, may be earlier than StartTime
	GraceMinutes int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOvernight reports whether the shift ends on the following calendar day.
func (s Shift) IsOvernight() bool {
	return secondsOfDay(s.EndTime) <= secondsOfDay(s.StartTime)
}

// Duration returns the shift length, wrapped modulo 24h for overnight shifts.
func (s Shift) Duration() time.Duration {
	secs := secondsOfDay(s.EndTime) - secondsOfDay(s.StartTime)
	if secs <= 0 {
		secs += 24 * 3600
	}
	return time.Duration(secs) * time.Second
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
