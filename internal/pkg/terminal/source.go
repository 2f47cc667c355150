package terminal

import (
	"context"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
)

// EventSource is the opaque view of a physical terminal: something that can
// be asked for the punches recorded since the last poll. The device
// protocol itself lives behind whatever implements this.
type EventSource interface {
	// DeviceID identifies the terminal for day-record provenance.
	DeviceID() string

	// PullEvents returns the accumulated punch rows since the previous
	// call. The rows use the same loosely-typed shape as bulk exports, so
	// they go through the same detection and normalization pipeline.
	PullEvents(ctx context.Context) ([]attendance.Row, error)
}
