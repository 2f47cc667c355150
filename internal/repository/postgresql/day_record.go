package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dayRecordRepository struct {
	db *database.DB
}

func NewDayRecordRepository(db *database.DB) attendance.DayRecordRepository {
	return &dayRecordRepository{db: db}
}

// Create implements attendance.DayRecordRepository. The insert races other
// ingestion runs through ON CONFLICT against the partial unique index on
// (employee_id, calendar_date, first_in), so a concurrent duplicate comes
// back as ErrDuplicateDayRecord instead of aborting the surrounding
// transaction.
func (r *dayRecordRepository) Create(ctx context.Context, rec attendance.DayRecord) (attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO day_records (
			employee_id, employee_code, calendar_date, first_in, last_out,
			status, late_minutes, source_device_id, source_batch_id, deleted
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, false
		)
		ON CONFLICT (employee_id, calendar_date, first_in) WHERE NOT deleted DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.EmployeeCode,
		rec.Date,
		rec.FirstIn,
		rec.LastOut,
		rec.Status,
		rec.LateMinutes,
		rec.SourceDeviceID,
		rec.SourceBatchID,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DayRecord{}, attendance.ErrDuplicateDayRecord
		}
		return attendance.DayRecord{}, fmt.Errorf("failed to create day record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.DayRecordRepository.
func (r *dayRecordRepository) GetByID(ctx context.Context, id string) (attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.employee_code, d.calendar_date, d.first_in, d.last_out,
			   d.status, d.late_minutes, d.source_device_id, d.source_batch_id, d.deleted,
			   d.created_at, d.updated_at,
			   e.full_name AS employee_name
		FROM day_records d
		LEFT JOIN employees e ON e.id = d.employee_id
		WHERE d.id = $1
	`

	var rec attendance.DayRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeCode, &rec.Date, &rec.FirstIn, &rec.LastOut,
		&rec.Status, &rec.LateMinutes, &rec.SourceDeviceID, &rec.SourceBatchID, &rec.Deleted,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DayRecord{}, attendance.ErrDayRecordNotFound
		}
		return attendance.DayRecord{}, fmt.Errorf("failed to get day record by ID: %w", err)
	}

	return rec, nil
}

// Exists implements attendance.DayRecordRepository.
func (r *dayRecordRepository) Exists(ctx context.Context, employeeID string, date time.Time, firstIn time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM day_records
			WHERE employee_id = $1
			  AND calendar_date = $2
			  AND first_in = $3
			  AND NOT deleted
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, firstIn).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check day record existence: %w", err)
	}

	return exists, nil
}

// GetActiveByEmployeeAndDate implements attendance.DayRecordRepository.
func (r *dayRecordRepository) GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.employee_code, d.calendar_date, d.first_in, d.last_out,
			   d.status, d.late_minutes, d.source_device_id, d.source_batch_id, d.deleted,
			   d.created_at, d.updated_at,
			   e.full_name AS employee_name
		FROM day_records d
		LEFT JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1
		  AND d.calendar_date = $2
		  AND NOT d.deleted
	`

	var rec attendance.DayRecord
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeCode, &rec.Date, &rec.FirstIn, &rec.LastOut,
		&rec.Status, &rec.LateMinutes, &rec.SourceDeviceID, &rec.SourceBatchID, &rec.Deleted,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get day record by employee and date: %w", err)
	}

	return &rec, nil
}

// ActiveDayRecords implements attendance.DayRecordRepository.
func (r *dayRecordRepository) ActiveDayRecords(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.employee_code, d.calendar_date, d.first_in, d.last_out,
			   d.status, d.late_minutes, d.source_device_id, d.source_batch_id, d.deleted,
			   d.created_at, d.updated_at,
			   e.full_name AS employee_name
		FROM day_records d
		LEFT JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1
		  AND d.calendar_date BETWEEN $2 AND $3
		  AND NOT d.deleted
		ORDER BY d.calendar_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	return scanDayRecords(rows)
}

// ActiveDayRecordsAll implements attendance.DayRecordRepository.
func (r *dayRecordRepository) ActiveDayRecordsAll(ctx context.Context, start, end time.Time) ([]attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.employee_code, d.calendar_date, d.first_in, d.last_out,
			   d.status, d.late_minutes, d.source_device_id, d.source_batch_id, d.deleted,
			   d.created_at, d.updated_at,
			   e.full_name AS employee_name
		FROM day_records d
		LEFT JOIN employees e ON e.id = d.employee_id
		WHERE d.calendar_date BETWEEN $1 AND $2
		  AND NOT d.deleted
		ORDER BY d.employee_code, d.calendar_date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	return scanDayRecords(rows)
}

func scanDayRecords(rows pgx.Rows) ([]attendance.DayRecord, error) {
	var records []attendance.DayRecord
	for rows.Next() {
		var rec attendance.DayRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.EmployeeCode, &rec.Date, &rec.FirstIn, &rec.LastOut,
			&rec.Status, &rec.LateMinutes, &rec.SourceDeviceID, &rec.SourceBatchID, &rec.Deleted,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// UpdateCheckoutAndStatus implements attendance.DayRecordRepository.
// Status only ever hardens PRESENT -> LATE here; the WHERE clause keeps a
// LATE record from being softened back within the same run.
func (r *dayRecordRepository) UpdateCheckoutAndStatus(ctx context.Context, rec attendance.DayRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE day_records
		SET last_out = GREATEST(COALESCE(last_out, $1), $1),
			status = CASE WHEN status = 'LATE' THEN status ELSE $2 END,
			late_minutes = GREATEST(late_minutes, $3),
			updated_at = $4
		WHERE id = $5 AND NOT deleted
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, rec.LastOut, rec.Status, rec.LateMinutes, time.Now(), rec.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrDayRecordNotFound
		}
		return fmt.Errorf("failed to update day record: %w", err)
	}

	return nil
}

// SoftDelete implements attendance.DayRecordRepository.
func (r *dayRecordRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE day_records
		SET deleted = true, updated_at = $1
		WHERE id = $2 AND NOT deleted
	`

	commandTag, err := q.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to soft delete day record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrDayRecordNotFound
	}

	return nil
}
