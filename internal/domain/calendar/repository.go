package calendar

import (
	"context"
	"time"
)

// HolidayRuleRepository stores the recurrence rules concrete holiday sets
// are generated from.
type HolidayRuleRepository interface {
	ListRules(ctx context.Context) ([]HolidayRule, error)
}

// LunarConverter resolves a recurring lunar-calendar date to the solar date
// it falls on in a given year. The conversion itself is owned by an
// external collaborator.
type LunarConverter interface {
	ToSolar(ctx context.Context, year, lunarMonth, lunarDay int) (time.Time, error)
}
