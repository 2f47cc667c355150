package ingest

import (
	"strings"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
)

// Format is the detected shape of an incoming batch. Detection looks only
// at the first row's column names; rows are assumed homogeneous within one
// batch.
type Format int

const (
	FormatUnknown Format = iota
	FormatDeviceExport
	FormatTemplate
)

func (f Format) String() string {
	switch f {
	case FormatDeviceExport:
		return "DEVICE_EXPORT"
	case FormatTemplate:
		return "TEMPLATE"
	default:
		return "UNKNOWN"
	}
}

// Device vendors ship the same logical column under abbreviated or
// spelled-out headers depending on firmware and export tool; every known
// spelling is accepted.
var (
	deviceEmployeeNoKeys = []string{"ac-no.", "ac-no", "ac no", "no. id", "no.id", "enroll number", "enrollnumber", "pin", "employee no"}
	deviceNameKeys       = []string{"name", "employee name"}
	devicePunchKeys      = []string{"state", "new state", "in/out", "punch state"}
	deviceDateKeys       = []string{"date"}
	deviceTimeKeys       = []string{"time", "clock time"}
	deviceVerifyKeys     = []string{"verify", "verification", "verify mode", "verification method"}
)

// templateRequiredKeys must ALL be present for the template format.
var templateRequiredKeys = []string{"employee_id", "date", "check_in"}

var templateOptionalKeys = []string{"name", "role", "check_out", "status", "verification_method"}

// Detect classifies a batch by its first row's normalized column names.
// FormatUnknown is terminal for the whole batch.
func Detect(rows []attendance.Row) Format {
	if len(rows) == 0 {
		return FormatUnknown
	}

	keys := make(map[string]bool, len(rows[0].Fields))
	for k := range rows[0].Fields {
		keys[normalizeKey(k)] = true
	}

	// Any device alias marks a device export; the abbreviated and full
	// spellings never collide with the template column set.
	for _, alias := range deviceEmployeeNoKeys {
		if keys[alias] {
			return FormatDeviceExport
		}
	}

	template := true
	for _, required := range templateRequiredKeys {
		if !keys[required] {
			template = false
			break
		}
	}
	if template {
		return FormatTemplate
	}

	return FormatUnknown
}

// normalizeKey folds a header cell to its canonical lookup form.
func normalizeKey(k string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(k))), " ")
}

// normalizeRows rewrites every row's field keys to canonical form so the
// normalizer can address columns without caring about the source spelling.
func normalizeRows(rows []attendance.Row) []attendance.Row {
	out := make([]attendance.Row, len(rows))
	for i, row := range rows {
		fields := make(map[string]string, len(row.Fields))
		for k, v := range row.Fields {
			fields[normalizeKey(k)] = strings.TrimSpace(v)
		}
		number := row.Number
		if number == 0 {
			number = i + 1
		}
		out[i] = attendance.Row{Number: number, Fields: fields}
	}
	return out
}

func firstField(fields map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

func rowIsBlank(row attendance.Row) bool {
	for _, v := range row.Fields {
		if v != "" {
			return false
		}
	}
	return true
}
