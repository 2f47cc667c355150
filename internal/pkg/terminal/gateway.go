package terminal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/attendance"
)

// GatewaySource polls a device gateway over HTTP. The gateway buffers raw
// punch logs from the terminal and drains them on each GET; the payload is
// a JSON array of header→value objects matching the device export columns.
type GatewaySource struct {
	baseURL  string
	deviceID string
	client   *http.Client
}

func NewGatewaySource(baseURL string, deviceID string) *GatewaySource {
	return &GatewaySource{
		baseURL:  baseURL,
		deviceID: deviceID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GatewaySource) DeviceID() string {
	return g.deviceID
}

func (g *GatewaySource) PullEvents(ctx context.Context) ([]attendance.Row, error) {
	url := fmt.Sprintf("%s/devices/%s/events", g.baseURL, g.deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to poll device gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("device gateway returned status %d", resp.StatusCode)
	}

	var payload []map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode gateway payload: %w", err)
	}

	rows := make([]attendance.Row, 0, len(payload))
	for i, fields := range payload {
		rows = append(rows, attendance.Row{Number: i + 1, Fields: fields})
	}
	return rows, nil
}
