package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

// ReadingPayload is the ingestion wire format. The timestamp is assigned
// here at receipt, not taken from the device.
type ReadingPayload struct {
	HardwareIdentifier string    `json:"hardwareIdentifier"`
	Timestamp          time.Time `json:"timestamp"`
	MoistureLevel      float64   `json:"moistureLevel"`
	MoistureRaw        *float64  `json:"moistureRaw,omitempty"`
}

// Forwarder posts validated readings to the ingestion endpoint. Network
// failures are retried a configured number of times with a fixed delay; a
// non-2xx response is reported without retrying.
type Forwarder struct {
	client   *http.Client
	url      string
	attempts int
	delay    time.Duration
}

func NewForwarder(cfg Config) *Forwarder {
	attempts := cfg.API.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Forwarder{
		client:   &http.Client{Timeout: cfg.API.Timeout},
		url:      strings.TrimRight(cfg.API.BaseURL, "/") + cfg.API.IngestPath,
		attempts: attempts,
		delay:    cfg.API.RetryDelay,
	}
}

// Forward sends one sensor reading. The caller logs the returned error;
// forwarding failures never tear down the serial connection.
func (f *Forwarder) Forward(ctx context.Context, msg Message) error {
	payload := ReadingPayload{
		HardwareIdentifier: msg.HardwareIdentifier,
		Timestamp:          time.Now().UTC(),
		MoistureLevel:      *msg.MoistureRaw,
		MoistureRaw:        msg.MoistureRaw,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= f.attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < f.attempts {
				klog.Warningf("post to %s failed (attempt %d/%d): %v", f.url, attempt, f.attempts, err)
				if !sleepCtx(ctx, f.delay) {
					return ctx.Err()
				}
			}
			continue
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("ingest endpoint returned %s", resp.Status)
		}
		return nil
	}
	return lastErr
}
