package calendar

import "time"

// Holiday is one concrete non-working date in a given year.
type Holiday struct {
	Date     time.Time
	Name     string
	Category Category
}

type Category string

const (
	CategoryNational  Category = "national"
	CategoryReligious Category = "religious"
	CategoryCompany   Category = "company"
)

// RuleKind discriminates how a holiday's date is derived for a year.
type RuleKind string

const (
	// RuleFixed is a fixed Gregorian month/day every year.
	RuleFixed RuleKind = "fixed"
	// RuleLunar is a recurring lunar-calendar date resolved through the
	// LunarConverter collaborator.
	RuleLunar RuleKind = "lunar"
	// RuleFormula is a movable feast computed from a named formula.
	RuleFormula RuleKind = "formula"
)

// HolidayRule is the stored recurrence rule a year's holiday set is
// generated from.
type HolidayRule struct {
	ID       string
	Name     string
	Category Category
	Kind     RuleKind

	// RuleFixed
	Month int
	Day   int

	// RuleLunar
	LunarMonth int
	LunarDay   int

	// RuleFormula: formula name plus a day offset from its anchor date
	// (e.g. good_friday = easter - 2).
	Formula       string
	FormulaOffset int
}
