package attendance

import "context"

// IngestService runs the reconciliation pipeline: detect format, normalize
// rows, merge punches into day records, guard against duplicates and
// persist in chunks.
type IngestService interface {
	// IngestBatch processes one batch of loosely-typed rows and returns the
	// run summary. Rejections and duplicates are reported, not raised.
	IngestBatch(ctx context.Context, batch RowBatch) (ImportReport, error)

	// IngestManualPunch feeds a single hand-entered punch pair through the
	// same pipeline as bulk imports.
	IngestManualPunch(ctx context.Context, req ManualPunchRequest) (ImportReport, error)

	// DeleteDayRecord tombstones a day record (administrative action).
	DeleteDayRecord(ctx context.Context, id string) error
}
