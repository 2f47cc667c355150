package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/calendar"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/employee"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/report"
)

type ReportServiceImpl struct {
	dayRecords attendance.DayRecordRepository
	employees  employee.EmployeeRepository
	calendar   calendar.CalendarService
}

func NewReportService(
	dayRecords attendance.DayRecordRepository,
	employees employee.EmployeeRepository,
	cal calendar.CalendarService,
) report.ReportService {
	return &ReportServiceImpl{
		dayRecords: dayRecords,
		employees:  employees,
		calendar:   cal,
	}
}

// Summarize implements report.ReportService.
func (s *ReportServiceImpl) Summarize(ctx context.Context, employeeCode string, start, end time.Time) (report.PeriodSummary, error) {
	emp, err := s.employees.GetByCode(ctx, employeeCode)
	if err != nil {
		return report.PeriodSummary{}, err
	}

	records, err := s.dayRecords.ActiveDayRecords(ctx, emp.ID, start, end)
	if err != nil {
		return report.PeriodSummary{}, fmt.Errorf("failed to fetch day records: %w", err)
	}

	workingDays, err := s.calendar.WorkingDays(ctx, start, end)
	if err != nil {
		return report.PeriodSummary{}, fmt.Errorf("failed to count working days: %w", err)
	}

	return buildSummary(emp, records, workingDays, start, end), nil
}

// SummarizeAll implements report.ReportService. One flat summary per active
// employee, day records fetched in a single range query and bucketed in
// memory.
func (s *ReportServiceImpl) SummarizeAll(ctx context.Context, start, end time.Time) ([]report.PeriodSummary, error) {
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.dayRecords.ActiveDayRecordsAll(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day records: %w", err)
	}

	workingDays, err := s.calendar.WorkingDays(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count working days: %w", err)
	}

	byEmployee := make(map[string][]attendance.DayRecord)
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	summaries := make([]report.PeriodSummary, 0, len(employees))
	for _, emp := range employees {
		summaries = append(summaries, buildSummary(emp, byEmployee[emp.ID], workingDays, start, end))
	}
	return summaries, nil
}

// buildSummary computes the per-employee statistics. PresentDays counts all
// records regardless of status since LATE still means the employee showed
// up. LateDays only means anything for shift-bound employees; flexible
// employees report zero by definition even if stale LATE records exist. The
// attendance rate is not clamped: a value over 100 means day records exist
// on non-working days, which is a data quality signal worth surfacing.
func buildSummary(emp employee.Employee, records []attendance.DayRecord, workingDays int, start, end time.Time) report.PeriodSummary {
	summary := report.PeriodSummary{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		EmployeeName: emp.FullName,
		PeriodStart:  start.Format("2006-01-02"),
		PeriodEnd:    end.Format("2006-01-02"),
		WorkingDays:  workingDays,
		PresentDays:  len(records),
	}

	if emp.IsShiftBound() {
		for _, rec := range records {
			if rec.Status == attendance.StatusLate {
				summary.LateDays++
			}
		}
	}

	if workingDays > 0 {
		summary.AttendanceRate = int(math.Round(float64(summary.PresentDays) / float64(workingDays) * 100))
	}

	return summary
}
