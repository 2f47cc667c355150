package employee

import "time"

// Employee is read-only reference data owned by the directory service.
// The reconciliation core never creates or mutates employees.
type Employee struct {
	ID           string
	EmployeeCode string // business key used by terminals and imports
	FullName     string
	ScheduleType ScheduleType
	ShiftID      *string // nil only for flexible-schedule employees
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ScheduleType string

const (
	ScheduleTypeShiftBound ScheduleType = "shift_bound"
	ScheduleTypeFlexible   ScheduleType = "flexible"
)

var ScheduleTypeValues = []string{
	string(ScheduleTypeShiftBound),
	string(ScheduleTypeFlexible),
}

// IsShiftBound reports whether lateness is evaluated for this employee.
func (e Employee) IsShiftBound() bool {
	return e.ScheduleType == ScheduleTypeShiftBound && e.ShiftID != nil
}
