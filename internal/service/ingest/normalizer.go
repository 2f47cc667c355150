package ingest

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
)

// DirectionPolicy decides a punch's direction when the source row carries
// no label. The default leans on time-of-day: punches before CutoffHour are
// taken as IN, the rest as OUT. That guess is wrong for overnight shifts,
// which is why the cutoff is configuration and every fallback is logged.
type DirectionPolicy struct {
	CutoffHour int
}

func (p DirectionPolicy) Infer(t time.Time) attendance.Direction {
	if t.Hour() < p.CutoffHour {
		return attendance.DirectionIn
	}
	return attendance.DirectionOut
}

// Normalizer converts detected-format rows into canonical RawEvents.
type Normalizer struct {
	policy DirectionPolicy
}

func NewNormalizer(policy DirectionPolicy) *Normalizer {
	return &Normalizer{policy: policy}
}

// Normalize converts one row. It returns the row's events, or a rejection,
// or neither when the row is entirely blank (blank rows are skipped, not
// errors). Template rows can yield two events (check-in and check-out);
// device rows yield one.
func (n *Normalizer) Normalize(row attendance.Row, format Format, batchID string) ([]attendance.RawEvent, *attendance.RowRejection) {
	if rowIsBlank(row) {
		return nil, nil
	}

	switch format {
	case FormatDeviceExport:
		return n.normalizeDeviceRow(row, batchID)
	case FormatTemplate:
		return n.normalizeTemplateRow(row, batchID)
	default:
		return nil, reject(row, "row has no recognized format")
	}
}

func (n *Normalizer) normalizeDeviceRow(row attendance.Row, batchID string) ([]attendance.RawEvent, *attendance.RowRejection) {
	code := firstField(row.Fields, deviceEmployeeNoKeys)
	if code == "" {
		return nil, reject(row, "employee identifier is blank")
	}

	dateStr := firstField(row.Fields, deviceDateKeys)
	timeStr := firstField(row.Fields, deviceTimeKeys)
	if dateStr == "" || timeStr == "" {
		return nil, reject(row, "date or time is blank")
	}

	ts, err := parseTimestamp(dateStr, timeStr)
	if err != nil {
		return nil, reject(row, err.Error())
	}

	direction := parseDirection(firstField(row.Fields, devicePunchKeys))
	if direction == attendance.DirectionUnknown {
		direction = n.policy.Infer(ts)
		slog.Debug("punch direction inferred from time of day",
			"row", row.Number, "employee_code", code, "direction", direction)
	}

	verification := parseVerification(firstField(row.Fields, deviceVerifyKeys))
	if verification == "" {
		verification = attendance.VerificationFingerprint
	}

	return []attendance.RawEvent{{
		EmployeeCode:       code,
		Timestamp:          ts,
		Direction:          direction,
		VerificationMethod: verification,
		SourceBatchID:      batchID,
		RowNumber:          row.Number,
	}}, nil
}

func (n *Normalizer) normalizeTemplateRow(row attendance.Row, batchID string) ([]attendance.RawEvent, *attendance.RowRejection) {
	code := row.Fields["employee_id"]
	if code == "" {
		return nil, reject(row, "employee identifier is blank")
	}

	dateStr := row.Fields["date"]
	checkIn := row.Fields["check_in"]
	if dateStr == "" || checkIn == "" {
		return nil, reject(row, "date or check_in is blank")
	}

	inTS, err := parseTimestamp(dateStr, checkIn)
	if err != nil {
		return nil, reject(row, err.Error())
	}

	verification := parseVerification(row.Fields["verification_method"])
	if verification == "" {
		verification = attendance.VerificationManual
	}

	events := []attendance.RawEvent{{
		EmployeeCode:       code,
		Timestamp:          inTS,
		Direction:          attendance.DirectionIn,
		VerificationMethod: verification,
		SourceBatchID:      batchID,
		RowNumber:          row.Number,
	}}

	if checkOut := row.Fields["check_out"]; checkOut != "" {
		outTS, err := parseTimestamp(dateStr, checkOut)
		if err != nil {
			return nil, reject(row, err.Error())
		}
		events = append(events, attendance.RawEvent{
			EmployeeCode:       code,
			Timestamp:          outTS,
			Direction:          attendance.DirectionOut,
			VerificationMethod: verification,
			SourceBatchID:      batchID,
			RowNumber:          row.Number,
		})
	}

	return events, nil
}

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

var timeLayouts = []string{"15:04:05", "15:04"}

// parseTimestamp combines a textual date and time-of-day. It fails closed:
// anything outside the accepted encodings rejects the row rather than
// guessing.
func parseTimestamp(dateStr, timeStr string) (time.Time, error) {
	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		date, err = time.Parse(layout, dateStr)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", dateStr)
	}

	var clock time.Time
	for _, layout := range timeLayouts {
		clock, err = time.Parse(layout, timeStr)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable time %q", timeStr)
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
}

// parseDirection maps vendor punch labels onto IN/OUT. Unrecognized or
// missing labels stay UNKNOWN and fall through to the direction policy.
func parseDirection(label string) attendance.Direction {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "c/in", "check in", "checkin", "in", "i", "0", "overtime in":
		return attendance.DirectionIn
	case "c/out", "check out", "checkout", "out", "o", "1", "overtime out":
		return attendance.DirectionOut
	default:
		return attendance.DirectionUnknown
	}
}

func parseVerification(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "fp", "fingerprint", "finger":
		return attendance.VerificationFingerprint
	case "card", "rf", "rfid":
		return attendance.VerificationCard
	case "pwd", "password":
		return attendance.VerificationPassword
	case "face":
		return attendance.VerificationFace
	case "manual":
		return attendance.VerificationManual
	default:
		return ""
	}
}

func reject(row attendance.Row, reason string) *attendance.RowRejection {
	return &attendance.RowRejection{Row: row.Number, Reason: reason}
}
