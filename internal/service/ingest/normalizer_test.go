package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
)

const testBatchID = "batch-1"

func newTestNormalizer() *Normalizer {
	return NewNormalizer(DirectionPolicy{CutoffHour: 12})
}

func TestNormalize_DeviceRow(t *testing.T) {
	n := newTestNormalizer()

	rows := normalizeRows([]attendance.Row{{Number: 3, Fields: map[string]string{
		"AC-No.": "EMP-7",
		"Date":   "2026-01-05",
		"Time":   "08:15:30",
		"State":  "C/In",
		"Verify": "FP",
	}}})

	events, rej := n.Normalize(rows[0], FormatDeviceExport, testBatchID)
	require.Nil(t, rej)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "EMP-7", ev.EmployeeCode)
	assert.Equal(t, attendance.DirectionIn, ev.Direction)
	assert.Equal(t, attendance.VerificationFingerprint, ev.VerificationMethod)
	assert.Equal(t, time.Date(2026, 1, 5, 8, 15, 30, 0, time.UTC), ev.Timestamp)
	assert.Equal(t, 3, ev.RowNumber)
}

func TestNormalize_DeviceRowSlashDate(t *testing.T) {
	n := newTestNormalizer()

	rows := normalizeRows([]attendance.Row{{Number: 1, Fields: map[string]string{
		"ac-no": "EMP-7",
		"date":  "05/01/2026",
		"time":  "17:45",
		"state": "C/Out",
	}}})

	events, rej := n.Normalize(rows[0], FormatDeviceExport, testBatchID)
	require.Nil(t, rej)
	require.Len(t, events, 1)
	assert.Equal(t, attendance.DirectionOut, events[0].Direction)
	assert.Equal(t, time.Date(2026, 1, 5, 17, 45, 0, 0, time.UTC), events[0].Timestamp)
}

func TestNormalize_DirectionInference(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		time string
		want attendance.Direction
	}{
		{"07:30", attendance.DirectionIn},
		{"11:59", attendance.DirectionIn},
		{"12:00", attendance.DirectionOut},
		{"18:20", attendance.DirectionOut},
	}
	for _, c := range cases {
		rows := normalizeRows([]attendance.Row{{Number: 1, Fields: map[string]string{
			"ac-no": "EMP-7",
			"date":  "2026-01-05",
			"time":  c.time,
		}}})
		events, rej := n.Normalize(rows[0], FormatDeviceExport, testBatchID)
		require.Nil(t, rej)
		require.Len(t, events, 1)
		assert.Equalf(t, c.want, events[0].Direction, "time %s", c.time)
	}
}

func TestNormalize_TemplateRowEmitsInAndOut(t *testing.T) {
	n := newTestNormalizer()

	rows := normalizeRows([]attendance.Row{{Number: 2, Fields: map[string]string{
		"employee_id": "EMP-9",
		"date":        "2026-01-05",
		"check_in":    "08:00",
		"check_out":   "17:00",
	}}})

	events, rej := n.Normalize(rows[0], FormatTemplate, testBatchID)
	require.Nil(t, rej)
	require.Len(t, events, 2)

	assert.Equal(t, attendance.DirectionIn, events[0].Direction)
	assert.Equal(t, attendance.DirectionOut, events[1].Direction)
	// Hand-entered template rows default to MANUAL verification.
	assert.Equal(t, attendance.VerificationManual, events[0].VerificationMethod)
}

func TestNormalize_TemplateRowWithoutCheckout(t *testing.T) {
	n := newTestNormalizer()

	rows := normalizeRows([]attendance.Row{{Number: 1, Fields: map[string]string{
		"employee_id": "EMP-9",
		"date":        "2026-01-05",
		"check_in":    "08:00",
	}}})

	events, rej := n.Normalize(rows[0], FormatTemplate, testBatchID)
	require.Nil(t, rej)
	require.Len(t, events, 1)
	assert.Equal(t, attendance.DirectionIn, events[0].Direction)
}

func TestNormalize_Rejections(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		name   string
		format Format
		fields map[string]string
	}{
		{"blank employee id", FormatDeviceExport, map[string]string{"ac-no": "", "date": "2026-01-05", "time": "08:00"}},
		{"missing date", FormatDeviceExport, map[string]string{"ac-no": "EMP-1", "time": "08:00"}},
		{"garbage date", FormatDeviceExport, map[string]string{"ac-no": "EMP-1", "date": "Jan 5th", "time": "08:00"}},
		{"garbage time", FormatDeviceExport, map[string]string{"ac-no": "EMP-1", "date": "2026-01-05", "time": "8 o'clock"}},
		{"template missing check_in", FormatTemplate, map[string]string{"employee_id": "EMP-1", "date": "2026-01-05"}},
		{"template bad check_out", FormatTemplate, map[string]string{"employee_id": "EMP-1", "date": "2026-01-05", "check_in": "08:00", "check_out": "25:99"}},
	}
	for _, c := range cases {
		rows := normalizeRows([]attendance.Row{{Number: 5, Fields: c.fields}})
		events, rej := n.Normalize(rows[0], c.format, testBatchID)
		require.Nilf(t, events, "%s: expected no events", c.name)
		require.NotNilf(t, rej, "%s: expected rejection", c.name)
		assert.Equal(t, 5, rej.Row)
	}
}

func TestNormalize_BlankRowSkippedSilently(t *testing.T) {
	n := newTestNormalizer()

	rows := normalizeRows([]attendance.Row{{Number: 4, Fields: map[string]string{
		"ac-no": "",
		"date":  "",
		"time":  "",
	}}})

	events, rej := n.Normalize(rows[0], FormatDeviceExport, testBatchID)
	assert.Nil(t, events)
	assert.Nil(t, rej)
}

func TestParseDirection(t *testing.T) {
	in := []string{"C/In", "c/in", "in", "I", "0", "Overtime In", "Check In"}
	out := []string{"C/Out", "out", "O", "1", "Overtime Out", "Check Out"}
	unknown := []string{"", "whatever", "2"}

	for _, label := range in {
		if got := parseDirection(label); got != attendance.DirectionIn {
			t.Errorf("parseDirection(%q) = %v, want IN", label, got)
		}
	}
	for _, label := range out {
		if got := parseDirection(label); got != attendance.DirectionOut {
			t.Errorf("parseDirection(%q) = %v, want OUT", label, got)
		}
	}
	for _, label := range unknown {
		if got := parseDirection(label); got != attendance.DirectionUnknown {
			t.Errorf("parseDirection(%q) = %v, want UNKNOWN", label, got)
		}
	}
}
