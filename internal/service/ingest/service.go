package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/employee"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/shift"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/database"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/repository/postgresql"
)

// Config carries the ingestion tunables.
type Config struct {
	// ChunkSize is the number of day records persisted per transaction.
	ChunkSize int
	// MaxRejectReasons bounds the rejection sample carried in the report.
	MaxRejectReasons int
	// DirectionCutoffHour feeds the punch direction fallback policy.
	DirectionCutoffHour int
}

type IngestServiceImpl struct {
	db         *database.DB
	dayRecords attendance.DayRecordRepository
	employees  employee.EmployeeRepository
	shifts     shift.ShiftRepository
	normalizer *Normalizer
	cfg        Config
}

func NewIngestService(
	db *database.DB,
	dayRecords attendance.DayRecordRepository,
	employees employee.EmployeeRepository,
	shifts shift.ShiftRepository,
	cfg Config,
) attendance.IngestService {
	return &IngestServiceImpl{
		db:         db,
		dayRecords: dayRecords,
		employees:  employees,
		shifts:     shifts,
		normalizer: NewNormalizer(DirectionPolicy{CutoffHour: cfg.DirectionCutoffHour}),
		cfg:        cfg,
	}
}

// IngestBatch implements attendance.IngestService. The pipeline is a single
// sequential pass: detect format, normalize rows, merge punches per
// employee-day, classify, then persist in chunked transactions. Row-level
// problems become rejections inside the report; only batch-level problems
// (unknown format, empty batch) surface as errors.
func (s *IngestServiceImpl) IngestBatch(ctx context.Context, batch attendance.RowBatch) (attendance.ImportReport, error) {
	rows := normalizeRows(batch.Rows)
	if len(rows) == 0 {
		return attendance.ImportReport{}, attendance.ErrEmptyBatch
	}

	format := Detect(rows)
	if format == FormatUnknown {
		return attendance.ImportReport{}, attendance.ErrUnknownFormat
	}

	report := attendance.ImportReport{
		BatchID:   uuid.NewString(),
		Format:    format.String(),
		TotalRows: len(rows),
	}

	slog.Info("ingestion batch started",
		"batch_id", report.BatchID,
		"format", report.Format,
		"rows", report.TotalRows,
	)

	var (
		events     []attendance.RawEvent
		rejections []attendance.RowRejection
	)
	for _, row := range rows {
		evs, rej := s.normalizer.Normalize(row, format, report.BatchID)
		if rej != nil {
			rejections = append(rejections, *rej)
			continue
		}
		events = append(events, evs...)
	}

	groups := Merge(events)
	report.Merged = len(groups)

	records, fills, groupRejections, err := s.resolveGroups(ctx, groups, batch.SourceDeviceID, report.BatchID)
	if err != nil {
		return attendance.ImportReport{}, err
	}
	rejections = append(rejections, groupRejections...)

	for _, fill := range fills {
		if err := s.dayRecords.UpdateCheckoutAndStatus(ctx, fill.record); err != nil {
			rejections = append(rejections, attendance.RowRejection{
				Row:    fill.row,
				Reason: fmt.Sprintf("failed to close out existing record: %v", err),
			})
			continue
		}
		report.Updated++
	}

	s.persistChunks(ctx, records, &report)

	report.Rejected = len(rejections)
	if len(rejections) > s.cfg.MaxRejectReasons {
		report.RejectReasons = rejections[:s.cfg.MaxRejectReasons]
	} else {
		report.RejectReasons = rejections
	}

	slog.Info("ingestion batch finished",
		"batch_id", report.BatchID,
		"merged", report.Merged,
		"imported", report.Imported,
		"updated", report.Updated,
		"duplicates_skipped", report.DuplicatesSkipped,
		"rejected", report.Rejected,
		"failed_chunks", report.FailedChunks,
	)

	return report, nil
}

// checkoutFill is an OUT-only group matched to an existing day record.
type checkoutFill struct {
	record attendance.DayRecord
	row    int
}

// resolveGroups turns merged groups into insertable day records. Groups with
// an unknown or inactive employee are rejected. Groups with only OUT punches
// can close out an existing record for that day; without one they are
// rejected rather than persisted with a missing check-in.
func (s *IngestServiceImpl) resolveGroups(
	ctx context.Context,
	groups []MergedGroup,
	sourceDeviceID *string,
	batchID string,
) (records []attendance.DayRecord, fills []checkoutFill, rejections []attendance.RowRejection, err error) {
	codes := make([]string, 0, len(groups))
	seen := make(map[string]bool)
	for _, g := range groups {
		if !seen[g.EmployeeCode] {
			seen[g.EmployeeCode] = true
			codes = append(codes, g.EmployeeCode)
		}
	}

	employees, err := s.employees.GetByCodes(ctx, codes)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve employees: %w", err)
	}

	shiftIDs := make([]string, 0)
	seenShift := make(map[string]bool)
	for _, emp := range employees {
		if emp.IsShiftBound() && !seenShift[*emp.ShiftID] {
			seenShift[*emp.ShiftID] = true
			shiftIDs = append(shiftIDs, *emp.ShiftID)
		}
	}

	shifts := make(map[string]shift.Shift)
	if len(shiftIDs) > 0 {
		shifts, err = s.shifts.GetByIDs(ctx, shiftIDs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to resolve shifts: %w", err)
		}
	}

	for _, g := range groups {
		emp, ok := employees[g.EmployeeCode]
		if !ok {
			rejections = append(rejections, attendance.RowRejection{
				Row:    g.RowNumber,
				Reason: fmt.Sprintf("unknown employee %q", g.EmployeeCode),
			})
			continue
		}
		if !emp.Active {
			rejections = append(rejections, attendance.RowRejection{
				Row:    g.RowNumber,
				Reason: fmt.Sprintf("employee %q is inactive", g.EmployeeCode),
			})
			continue
		}

		if g.FirstIn == nil {
			// OUT punches with no IN: only valid as a checkout on a record
			// that already exists for that day.
			existing, err := s.dayRecords.GetActiveByEmployeeAndDate(ctx, emp.ID, g.Date)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to look up existing day record: %w", err)
			}
			if existing == nil {
				rejections = append(rejections, attendance.RowRejection{
					Row:    g.RowNumber,
					Reason: fmt.Sprintf("check-out without check-in for employee %q on %s", g.EmployeeCode, g.Date.Format("2006-01-02")),
				})
				continue
			}
			fill := *existing
			fill.LastOut = g.LastOut
			fills = append(fills, checkoutFill{record: fill, row: g.RowNumber})
			continue
		}

		var sh *shift.Shift
		if emp.IsShiftBound() {
			if found, ok := shifts[*emp.ShiftID]; ok {
				sh = &found
			}
		}

		status, lateMinutes := Classify(*g.FirstIn, emp, sh)

		records = append(records, attendance.DayRecord{
			EmployeeID:     emp.ID,
			EmployeeCode:   emp.EmployeeCode,
			Date:           g.Date,
			FirstIn:        g.FirstIn,
			LastOut:        g.LastOut,
			Status:         status,
			LateMinutes:    lateMinutes,
			SourceDeviceID: sourceDeviceID,
			SourceBatchID:  batchID,
		})
	}

	return records, fills, rejections, nil
}

// persistChunks inserts records in fixed-size per-transaction chunks. A
// failed chunk rolls back alone and processing continues; a cancelled
// context lets the current chunk finish and abandons the rest.
func (s *IngestServiceImpl) persistChunks(ctx context.Context, records []attendance.DayRecord, report *attendance.ImportReport) {
	chunkSize := s.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 100
	}

	for start := 0; start < len(records); start += chunkSize {
		if ctx.Err() != nil {
			slog.Warn("ingestion cancelled, abandoning remaining chunks",
				"batch_id", report.BatchID, "persisted", report.Imported)
			return
		}

		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		var imported, duplicates int
		var outcomes []attendance.RowOutcome

		err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
			for _, rec := range chunk {
				exists, err := s.dayRecords.Exists(txCtx, rec.EmployeeID, rec.Date, *rec.FirstIn)
				if err != nil {
					return err
				}
				inserted := false
				if exists {
					duplicates++
				} else {
					_, err := s.dayRecords.Create(txCtx, rec)
					switch {
					case errors.Is(err, attendance.ErrDuplicateDayRecord):
						duplicates++
					case err != nil:
						return err
					default:
						imported++
						inserted = true
					}
				}
				outcomes = append(outcomes, attendance.RowOutcome{
					EmployeeCode: rec.EmployeeCode,
					Date:         rec.Date.Format("2006-01-02"),
					Status:       string(rec.Status),
					Inserted:     inserted,
				})
			}
			return nil
		})

		if err != nil {
			report.FailedChunks++
			slog.Error("ingestion chunk failed, continuing with next chunk",
				"batch_id", report.BatchID,
				"chunk_start", start,
				"chunk_size", len(chunk),
				"error", err,
			)
			continue
		}

		report.Imported += imported
		report.DuplicatesSkipped += duplicates
		report.Outcomes = append(report.Outcomes, outcomes...)
	}
}

// IngestManualPunch implements attendance.IngestService. The hand-entered
// punch is shaped like a one-row template import and runs through the exact
// same pipeline, so it gets the same merging, classification and duplicate
// guarding as bulk data.
func (s *IngestServiceImpl) IngestManualPunch(ctx context.Context, req attendance.ManualPunchRequest) (attendance.ImportReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportReport{}, err
	}

	fields := map[string]string{
		"employee_id": req.EmployeeCode,
		"date":        req.Date,
		"check_in":    req.CheckIn,
	}
	if req.CheckOut != "" {
		fields["check_out"] = req.CheckOut
	}

	return s.IngestBatch(ctx, attendance.RowBatch{
		Rows: []attendance.Row{{Number: 1, Fields: fields}},
	})
}

// DeleteDayRecord implements attendance.IngestService.
func (s *IngestServiceImpl) DeleteDayRecord(ctx context.Context, id string) error {
	if err := s.dayRecords.SoftDelete(ctx, id); err != nil {
		return err
	}
	slog.Info("day record soft-deleted", "day_record_id", id)
	return nil
}
