package ingest

import (
	"testing"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
)

func rowWith(fields map[string]string) attendance.Row {
	return attendance.Row{Number: 1, Fields: fields}
}

func TestDetect_DeviceExport(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
	}{
		{"abbreviated headers", map[string]string{"AC-No.": "1", "Name": "A", "Date": "2026-01-05", "Time": "08:00", "State": "C/In"}},
		{"spelled out headers", map[string]string{"Enroll Number": "1", "Employee Name": "A", "Date": "2026-01-05", "Clock Time": "08:00", "Punch State": "In"}},
		{"pin variant", map[string]string{"PIN": "1", "Date": "2026-01-05", "Time": "08:00"}},
	}
	for _, c := range cases {
		rows := normalizeRows([]attendance.Row{rowWith(c.fields)})
		if got := Detect(rows); got != FormatDeviceExport {
			t.Errorf("%s: Detect() = %v, want DEVICE_EXPORT", c.name, got)
		}
	}
}

func TestDetect_Template(t *testing.T) {
	rows := normalizeRows([]attendance.Row{rowWith(map[string]string{
		"employee_id": "EMP-1",
		"date":        "2026-01-05",
		"check_in":    "08:00",
		"check_out":   "17:00",
	})})
	if got := Detect(rows); got != FormatTemplate {
		t.Errorf("Detect() = %v, want TEMPLATE", got)
	}
}

func TestDetect_TemplateMissingRequiredColumn(t *testing.T) {
	// check_in column absent: not a template, and no device alias either.
	rows := normalizeRows([]attendance.Row{rowWith(map[string]string{
		"employee_id": "EMP-1",
		"date":        "2026-01-05",
	})})
	if got := Detect(rows); got != FormatUnknown {
		t.Errorf("Detect() = %v, want UNKNOWN", got)
	}
}

func TestDetect_Unknown(t *testing.T) {
	rows := normalizeRows([]attendance.Row{rowWith(map[string]string{
		"foo": "1",
		"bar": "2",
	})})
	if got := Detect(rows); got != FormatUnknown {
		t.Errorf("Detect() = %v, want UNKNOWN", got)
	}

	if got := Detect(nil); got != FormatUnknown {
		t.Errorf("Detect(nil) = %v, want UNKNOWN", got)
	}
}

func TestNormalizeRows_CanonicalKeys(t *testing.T) {
	rows := normalizeRows([]attendance.Row{rowWith(map[string]string{
		"  AC-No. ": " 42 ",
		"New   State": "C/In",
	})})

	if got := rows[0].Fields["ac-no."]; got != "42" {
		t.Errorf("normalized ac-no. = %q, want %q", got, "42")
	}
	if got := rows[0].Fields["new state"]; got != "C/In" {
		t.Errorf("normalized new state = %q, want %q", got, "C/In")
	}
}
