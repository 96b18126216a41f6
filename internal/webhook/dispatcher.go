package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Dispatcher delivers one-shot signed notifications. At-most-once by design:
// a failed delivery is logged and reported, never retried.
type Dispatcher interface {
	Send(ctx context.Context, event string, data any) DeliveryOutcome
}

// DeliveryOutcome is the captured result of a single delivery attempt.
type DeliveryOutcome struct {
	Delivered  bool
	StatusCode int
	Err        error
}

// Envelope is the wire shape of an outgoing notification.
type Envelope struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

type HTTPDispatcher struct {
	endpoint string
	secret   string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPDispatcher builds a dispatcher for the configured endpoint. The
// timeout bounds the whole attempt; a few seconds is the expected range.
func NewHTTPDispatcher(endpoint, secret string, timeout time.Duration, log *zap.Logger) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPDispatcher{
		endpoint: endpoint,
		secret:   secret,
		client:   &http.Client{Timeout: timeout},
		logger:   log,
	}
}

func (d *HTTPDispatcher) Send(ctx context.Context, event string, data any) DeliveryOutcome {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	body, err := json.Marshal(Envelope{Event: event, Timestamp: timestamp, Data: data})
	if err != nil {
		d.logger.Error("failed to encode webhook payload", zap.String("event", event), zap.Error(err))
		return DeliveryOutcome{Err: fmt.Errorf("encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return DeliveryOutcome{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TimestampHeader, timestamp)
	if d.secret != "" {
		req.Header.Set(SignatureHeader, Sign(d.secret, timestamp, body))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("webhook delivery failed",
			zap.String("event", event),
			zap.String("endpoint", d.endpoint),
			zap.Error(err),
		)
		return DeliveryOutcome{Err: err}
	}
	defer resp.Body.Close()

	outcome := DeliveryOutcome{StatusCode: resp.StatusCode}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		outcome.Delivered = true
		d.logger.Debug("webhook delivered", zap.String("event", event), zap.Int("status", resp.StatusCode))
		return outcome
	}

	outcome.Err = fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	d.logger.Warn("webhook delivery rejected",
		zap.String("event", event),
		zap.String("endpoint", d.endpoint),
		zap.Int("status", resp.StatusCode),
	)
	return outcome
}
