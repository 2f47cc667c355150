package ingest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/database"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/repository/postgresql"
)

var ingestTestDB *database.DB

func ingestTestSetup(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	if ingestTestDB == nil {
		var err error
		ingestTestDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)
	}

	ctx := context.Background()
	for _, table := range []string{"day_records", "employees", "shifts"} {
		_, err := ingestTestDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
	return ingestTestDB
}

func seedShiftAndEmployee(t *testing.T, db *database.DB, code string) {
	ctx := context.Background()

	var shiftID string
	err := db.QueryRow(ctx, `
		INSERT INTO shifts (name, start_time, end_time, grace_minutes)
		VALUES ('Morning', '08:00', '17:00', 15)
		RETURNING id
	`).Scan(&shiftID)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO employees (employee_code, full_name, schedule_type, shift_id, active)
		VALUES ($1, 'Test Employee', 'shift_bound', $2, true)
	`, code, shiftID)
	require.NoError(t, err)
}

func newDBIngestService(db *database.DB) attendance.IngestService {
	return NewIngestService(
		db,
		postgresql.NewDayRecordRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewShiftRepository(db),
		Config{ChunkSize: 100, MaxRejectReasons: 20, DirectionCutoffHour: 12},
	)
}

func deviceRows(code string) []attendance.Row {
	return []attendance.Row{
		{Number: 1, Fields: map[string]string{"AC-No.": code, "Date": "2026-01-05", "Time": "08:05:00", "State": "C/In"}},
		{Number: 2, Fields: map[string]string{"AC-No.": code, "Date": "2026-01-05", "Time": "17:02:00", "State": "C/Out"}},
	}
}

func TestIngestBatch_DeviceExportEndToEnd(t *testing.T) {
	db := ingestTestSetup(t)
	seedShiftAndEmployee(t, db, "EMP-100")
	svc := newDBIngestService(db)

	report, err := svc.IngestBatch(context.Background(), attendance.RowBatch{Rows: deviceRows("EMP-100")})
	require.NoError(t, err)

	assert.Equal(t, "DEVICE_EXPORT", report.Format)
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 1, report.Merged)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 0, report.Rejected)
	assert.Equal(t, 0, report.FailedChunks)

	var status string
	var lateMinutes int
	var lastOut time.Time
	err = db.QueryRow(context.Background(), `
		SELECT status, late_minutes, last_out FROM day_records WHERE employee_code = 'EMP-100'
	`).Scan(&status, &lateMinutes, &lastOut)
	require.NoError(t, err)

	// 08:05 against an 08:00 start with 15 minutes grace is on time.
	assert.Equal(t, "PRESENT", status)
	assert.Equal(t, 0, lateMinutes)
}

func TestIngestBatch_ReimportSkipsDuplicates(t *testing.T) {
	db := ingestTestSetup(t)
	seedShiftAndEmployee(t, db, "EMP-101")
	svc := newDBIngestService(db)

	first, err := svc.IngestBatch(context.Background(), attendance.RowBatch{Rows: deviceRows("EMP-101")})
	require.NoError(t, err)
	require.Equal(t, 1, first.Imported)

	second, err := svc.IngestBatch(context.Background(), attendance.RowBatch{Rows: deviceRows("EMP-101")})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.DuplicatesSkipped)
}

func TestIngestBatch_UnknownEmployeeRejected(t *testing.T) {
	db := ingestTestSetup(t)
	svc := newDBIngestService(db)

	report, err := svc.IngestBatch(context.Background(), attendance.RowBatch{Rows: deviceRows("GHOST")})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 1, report.Rejected)
	require.NotEmpty(t, report.RejectReasons)
	assert.Contains(t, report.RejectReasons[0].Reason, "unknown employee")
}

func TestIngestBatch_UnknownFormat(t *testing.T) {
	db := ingestTestSetup(t)
	svc := newDBIngestService(db)

	_, err := svc.IngestBatch(context.Background(), attendance.RowBatch{Rows: []attendance.Row{
		{Number: 1, Fields: map[string]string{"foo": "1", "bar": "2"}},
	}})
	assert.ErrorIs(t, err, attendance.ErrUnknownFormat)
}

func TestIngestManualPunch(t *testing.T) {
	db := ingestTestSetup(t)
	seedShiftAndEmployee(t, db, "EMP-102")
	svc := newDBIngestService(db)

	report, err := svc.IngestManualPunch(context.Background(), attendance.ManualPunchRequest{
		EmployeeCode: "EMP-102",
		Date:         "2026-01-05",
		CheckIn:      "09:30",
		CheckOut:     "18:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "TEMPLATE", report.Format)
	assert.Equal(t, 1, report.Imported)

	var status string
	var lateMinutes int
	err = db.QueryRow(context.Background(), `
		SELECT status, late_minutes FROM day_records WHERE employee_code = 'EMP-102'
	`).Scan(&status, &lateMinutes)
	require.NoError(t, err)
	assert.Equal(t, "LATE", status)
	assert.Equal(t, 75, lateMinutes)
}

func TestDeleteDayRecord_Tombstones(t *testing.T) {
	db := ingestTestSetup(t)
	seedShiftAndEmployee(t, db, "EMP-103")
	svc := newDBIngestService(db)

	report, err := svc.IngestBatch(context.Background(), attendance.RowBatch{Rows: deviceRows("EMP-103")})
	require.NoError(t, err)
	require.Equal(t, 1, report.Imported)

	var id string
	err = db.QueryRow(context.Background(), `SELECT id FROM day_records WHERE employee_code = 'EMP-103'`).Scan(&id)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDayRecord(context.Background(), id))

	// The row survives as a tombstone.
	var deleted bool
	err = db.QueryRow(context.Background(), `SELECT deleted FROM day_records WHERE id = $1`, id).Scan(&deleted)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.ErrorIs(t, svc.DeleteDayRecord(context.Background(), id), attendance.ErrDayRecordNotFound)
}
