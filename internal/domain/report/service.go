package report

import (
	"context"
	"time"
)

// ReportService aggregates persisted day records into period summaries.
// All methods are read-only and safe for unbounded concurrent use.
type ReportService interface {
	// Summarize computes the summary for one employee over [start, end].
	Summarize(ctx context.Context, employeeCode string, start, end time.Time) (PeriodSummary, error)

	// SummarizeAll computes one flat summary per active employee.
	SummarizeAll(ctx context.Context, start, end time.Time) ([]PeriodSummary, error)
}
