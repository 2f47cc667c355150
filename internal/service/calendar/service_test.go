package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/calendar"
)

type fakeRuleRepo struct {
	rules []calendar.HolidayRule
}

func (f *fakeRuleRepo) ListRules(ctx context.Context) ([]calendar.HolidayRule, error) {
	return f.rules, nil
}

type fakeLunarConverter struct {
	dates map[[3]int]time.Time
}

func (f *fakeLunarConverter) ToSolar(ctx context.Context, year, lunarMonth, lunarDay int) (time.Time, error) {
	if d, ok := f.dates[[3]int{year, lunarMonth, lunarDay}]; ok {
		return d, nil
	}
	return time.Time{}, calendar.ErrLunarUnresolved
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(rules []calendar.HolidayRule, lunar *fakeLunarConverter) *CalendarServiceImpl {
	if lunar == nil {
		lunar = &fakeLunarConverter{}
	}
	return NewCalendarService(&fakeRuleRepo{rules: rules}, lunar)
}

func TestWorkingDays_WeekendsExcluded(t *testing.T) {
	svc := newTestService(nil, nil)

	// 2026-01-05 (Monday) through 2026-01-11 (Sunday): five working days.
	got, err := svc.WorkingDays(context.Background(), day(2026, 1, 5), day(2026, 1, 11))
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestWorkingDays_SingleDayInclusive(t *testing.T) {
	svc := newTestService(nil, nil)

	got, err := svc.WorkingDays(context.Background(), day(2026, 1, 5), day(2026, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestWorkingDays_InvalidRange(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.WorkingDays(context.Background(), day(2026, 1, 11), day(2026, 1, 5))
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)
}

func TestWorkingDays_FixedHolidayExcluded(t *testing.T) {
	rules := []calendar.HolidayRule{
		{Name: "New Year's Day", Category: calendar.CategoryNational, Kind: calendar.RuleFixed, Month: 1, Day: 1},
	}
	svc := newTestService(rules, nil)

	// 2026-01-01 is a Thursday; the holiday removes it from the count.
	got, err := svc.WorkingDays(context.Background(), day(2026, 1, 1), day(2026, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestIsWorkingDay_MidweekHoliday(t *testing.T) {
	rules := []calendar.HolidayRule{
		{Name: "Company Day", Category: calendar.CategoryCompany, Kind: calendar.RuleFixed, Month: 6, Day: 16},
	}
	svc := newTestService(rules, nil)

	// 2026-06-16 is a Tuesday.
	working, err := svc.IsWorkingDay(context.Background(), day(2026, 6, 16))
	require.NoError(t, err)
	assert.False(t, working)

	working, err = svc.IsWorkingDay(context.Background(), day(2026, 6, 17))
	require.NoError(t, err)
	assert.True(t, working)
}

func TestHolidaysInRange_LunarRule(t *testing.T) {
	rules := []calendar.HolidayRule{
		{Name: "Lunar Festival", Category: calendar.CategoryReligious, Kind: calendar.RuleLunar, LunarMonth: 1, LunarDay: 1},
	}
	lunar := &fakeLunarConverter{dates: map[[3]int]time.Time{
		{2026, 1, 1}: day(2026, 2, 17),
	}}
	svc := newTestService(rules, lunar)

	holidays, err := svc.HolidaysInRange(context.Background(), day(2026, 2, 1), day(2026, 2, 28))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Lunar Festival", holidays[0].Name)
	assert.Equal(t, day(2026, 2, 17), holidays[0].Date)
}

func TestGenerateYear_UnresolvableLunarRuleSkipped(t *testing.T) {
	rules := []calendar.HolidayRule{
		{Name: "Lunar Festival", Kind: calendar.RuleLunar, LunarMonth: 1, LunarDay: 1},
		{Name: "New Year's Day", Kind: calendar.RuleFixed, Month: 1, Day: 1},
	}
	// Converter has no data, so the lunar rule drops out but the fixed rule
	// still lands.
	svc := newTestService(rules, &fakeLunarConverter{})

	holidays, err := svc.HolidaysInRange(context.Background(), day(2026, 1, 1), day(2026, 12, 31))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "New Year's Day", holidays[0].Name)
}

func TestFormulaRule_EasterOffset(t *testing.T) {
	rules := []calendar.HolidayRule{
		{Name: "Good Friday", Category: calendar.CategoryReligious, Kind: calendar.RuleFormula, Formula: "easter", FormulaOffset: -2},
	}
	svc := newTestService(rules, nil)

	holidays, err := svc.HolidaysInRange(context.Background(), day(2026, 1, 1), day(2026, 12, 31))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	// Easter 2026 falls on April 5, so Good Friday is April 3.
	assert.Equal(t, day(2026, 4, 3), holidays[0].Date)
}

func TestEasterSunday(t *testing.T) {
	cases := []struct {
		year int
		want time.Time
	}{
		{2024, day(2024, 3, 31)},
		{2025, day(2025, 4, 20)},
		{2026, day(2026, 4, 5)},
		{2027, day(2027, 3, 28)},
	}
	for _, c := range cases {
		if got := easterSunday(c.year); !got.Equal(c.want) {
			t.Errorf("easterSunday(%d) = %v, want %v", c.year, got, c.want)
		}
	}
}

func TestRegenerateYear_RefreshesCache(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewCalendarService(repo, &fakeLunarConverter{})

	// Warm the cache with no rules, then add one and regenerate.
	working, err := svc.IsWorkingDay(context.Background(), day(2026, 8, 17))
	require.NoError(t, err)
	assert.True(t, working)

	repo.rules = []calendar.HolidayRule{
		{Name: "Independence Day", Kind: calendar.RuleFixed, Month: 8, Day: 17},
	}
	require.NoError(t, svc.RegenerateYear(context.Background(), 2026))

	working, err = svc.IsWorkingDay(context.Background(), day(2026, 8, 17))
	require.NoError(t, err)
	assert.False(t, working)
}
