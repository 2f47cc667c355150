package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/calendar"
)

const dateLayout = "2006-01-02"

// CalendarServiceImpl precomputes one holiday set per calendar year from
// the stored recurrence rules and answers all working-day queries from that
// cache. Generation on the query path is a degraded-mode fallback; the
// scheduler keeps the cache warm under normal operation.
type CalendarServiceImpl struct {
	rules calendar.HolidayRuleRepository
	lunar calendar.LunarConverter

	mu    sync.RWMutex
	years map[int]map[string]calendar.Holiday // year -> date string -> holiday
}

func NewCalendarService(rules calendar.HolidayRuleRepository, lunar calendar.LunarConverter) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		rules: rules,
		lunar: lunar,
		years: make(map[int]map[string]calendar.Holiday),
	}
}

// WorkingDays implements calendar.CalendarService. The count is inclusive
// of both endpoints.
func (s *CalendarServiceImpl) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return 0, calendar.ErrInvalidRange
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		working, err := s.IsWorkingDay(ctx, d)
		if err != nil {
			return 0, err
		}
		if working {
			count++
		}
	}
	return count, nil
}

// IsWorkingDay implements calendar.CalendarService.
func (s *CalendarServiceImpl) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false, nil
	}

	holidays, err := s.holidaysForYear(ctx, date.Year())
	if err != nil {
		return false, err
	}

	_, isHoliday := holidays[date.Format(dateLayout)]
	return !isHoliday, nil
}

// HolidaysInRange implements calendar.CalendarService.
func (s *CalendarServiceImpl) HolidaysInRange(ctx context.Context, start, end time.Time) ([]calendar.Holiday, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, calendar.ErrInvalidRange
	}

	var result []calendar.Holiday
	for year := start.Year(); year <= end.Year(); year++ {
		holidays, err := s.holidaysForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, h := range holidays {
			if !h.Date.Before(start) && !h.Date.After(end) {
				result = append(result, h)
			}
		}
	}
	return result, nil
}

// RegenerateYear implements calendar.CalendarService.
func (s *CalendarServiceImpl) RegenerateYear(ctx context.Context, year int) error {
	generated, err := s.generateYear(ctx, year)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.years[year] = generated
	s.mu.Unlock()

	slog.Info("holiday cache regenerated", "year", year, "holidays", len(generated))
	return nil
}

// holidaysForYear serves the cached set, generating it synchronously on a
// miss. A miss on the query path means the warm-up job has not covered this
// year yet, so it is logged as degraded rather than treated as fatal.
func (s *CalendarServiceImpl) holidaysForYear(ctx context.Context, year int) (map[string]calendar.Holiday, error) {
	s.mu.RLock()
	cached, ok := s.years[year]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	slog.Warn("holiday cache miss, generating on demand", "year", year)

	generated, err := s.generateYear(ctx, year)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.years[year] = generated
	s.mu.Unlock()

	return generated, nil
}

func (s *CalendarServiceImpl) generateYear(ctx context.Context, year int) (map[string]calendar.Holiday, error) {
	rules, err := s.rules.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load holiday rules: %w", err)
	}

	holidays := make(map[string]calendar.Holiday, len(rules))
	for _, rule := range rules {
		date, err := s.resolveRule(ctx, rule, year)
		if err != nil {
			// A single unresolvable rule degrades the set, it does not
			// block the year.
			slog.Warn("holiday rule skipped", "rule", rule.Name, "year", year, "error", err)
			continue
		}

		holidays[date.Format(dateLayout)] = calendar.Holiday{
			Date:     date,
			Name:     rule.Name,
			Category: rule.Category,
		}
	}

	return holidays, nil
}

func (s *CalendarServiceImpl) resolveRule(ctx context.Context, rule calendar.HolidayRule, year int) (time.Time, error) {
	switch rule.Kind {
	case calendar.RuleFixed:
		return time.Date(year, time.Month(rule.Month), rule.Day, 0, 0, 0, 0, time.UTC), nil

	case calendar.RuleLunar:
		solar, err := s.lunar.ToSolar(ctx, year, rule.LunarMonth, rule.LunarDay)
		if err != nil {
			if errors.Is(err, calendar.ErrLunarUnresolved) {
				return time.Time{}, err
			}
			return time.Time{}, fmt.Errorf("lunar conversion failed: %w", err)
		}
		return truncateDay(solar), nil

	case calendar.RuleFormula:
		anchor, err := formulaAnchor(rule.Formula, year)
		if err != nil {
			return time.Time{}, err
		}
		return anchor.AddDate(0, 0, rule.FormulaOffset), nil

	default:
		return time.Time{}, fmt.Errorf("unknown holiday rule kind %q", rule.Kind)
	}
}

// formulaAnchor computes the anchor date of a named movable feast.
func formulaAnchor(formula string, year int) (time.Time, error) {
	switch formula {
	case "easter":
		return easterSunday(year), nil
	default:
		return time.Time{}, calendar.ErrUnknownFormula
	}
}

// easterSunday computes Gregorian Easter using the anonymous computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
