package cron

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/terminal"
)

// TerminalPollJob drains one terminal and feeds the punches through the
// ingestion pipeline. An empty poll is normal and not logged as a failure.
// The pipeline's duplicate guard makes re-polling the same punches safe.
func TerminalPollJob(source terminal.EventSource, ingest attendance.IngestService) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		rows, err := source.PullEvents(ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		deviceID := source.DeviceID()
		report, err := ingest.IngestBatch(ctx, attendance.RowBatch{
			SourceDeviceID: &deviceID,
			Rows:           rows,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrEmptyBatch) {
				return nil
			}
			return err
		}

		slog.Info("terminal poll ingested",
			"device_id", deviceID,
			"batch_id", report.BatchID,
			"rows", report.TotalRows,
			"imported", report.Imported,
			"duplicates_skipped", report.DuplicatesSkipped,
			"rejected", report.Rejected,
		)
		return nil
	}
}
