package spreadsheet

import (
	"fmt"
	"io"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// ReadRows converts the first sheet of an uploaded workbook into
// loosely-typed rows: header cell → value, one map per data row. Row
// numbers are 1-based over the data rows so rejection reasons line up with
// what the uploader sees under the header line.
func ReadRows(r io.Reader) ([]attendance.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	out := make([]attendance.Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		fields := make(map[string]string, len(headers))
		for c, h := range headers {
			if h == "" {
				continue
			}
			if c < len(rows[i]) {
				fields[h] = rows[i][c]
			} else {
				fields[h] = ""
			}
		}
		out = append(out, attendance.Row{Number: i, Fields: fields})
	}

	return out, nil
}
