package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/calendar"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRuleRepository struct {
	db *database.DB
}

func NewHolidayRuleRepository(db *database.DB) calendar.HolidayRuleRepository {
	return &holidayRuleRepository{db: db}
}

// ListRules implements calendar.HolidayRuleRepository.
func (r *holidayRuleRepository) ListRules(ctx context.Context) ([]calendar.HolidayRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, category, kind,
			   COALESCE(month, 0), COALESCE(day, 0),
			   COALESCE(lunar_month, 0), COALESCE(lunar_day, 0),
			   COALESCE(formula, ''), COALESCE(formula_offset, 0)
		FROM holiday_rules
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holiday rules: %w", err)
	}
	defer rows.Close()

	var rules []calendar.HolidayRule
	for rows.Next() {
		var rule calendar.HolidayRule
		err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Category, &rule.Kind,
			&rule.Month, &rule.Day,
			&rule.LunarMonth, &rule.LunarDay,
			&rule.Formula, &rule.FormulaOffset,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// lunarDateRepository resolves lunar holiday dates through the
// lunar_calendar_dates lookup table. The table itself is maintained by the
// calendar authority feed; one row per (year, lunar_month, lunar_day).
type lunarDateRepository struct {
	db *database.DB
}

func NewLunarDateRepository(db *database.DB) calendar.LunarConverter {
	return &lunarDateRepository{db: db}
}

// ToSolar implements calendar.LunarConverter.
func (r *lunarDateRepository) ToSolar(ctx context.Context, year, lunarMonth, lunarDay int) (time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT solar_date
		FROM lunar_calendar_dates
		WHERE year = $1 AND lunar_month = $2 AND lunar_day = $3
	`

	var solar time.Time
	err := q.QueryRow(ctx, query, year, lunarMonth, lunarDay).Scan(&solar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, calendar.ErrLunarUnresolved
		}
		return time.Time{}, fmt.Errorf("failed to resolve lunar date: %w", err)
	}

	return solar, nil
}
