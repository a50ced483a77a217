package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogSender writes notifications to the application log. It is the default
// sender when no delivery endpoint is configured.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the notification. It never fails.
func (s *LogSender) Send(ctx context.Context, nationalID, message string) {
	s.logger.Info().
		Str("national_id", nationalID).
		Str("message", message).
		Msg("customer notification")
}

// HTTPSender posts notifications to an external delivery service. Delivery
// is best effort: failures are logged, never returned, so a flaky gateway
// cannot fail a committed transaction.
type HTTPSender struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewHTTPSender creates an HTTPSender for the given endpoint.
func NewHTTPSender(endpoint string, logger zerolog.Logger) *HTTPSender {
	return &HTTPSender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
	}
}

type payload struct {
	ID         string `json:"id"`
	NationalID string `json:"national_id"`
	Message    string `json:"message"`
}

// Send posts the notification. Each delivery carries a generated id so the
// receiving service can deduplicate retransmissions.
func (s *HTTPSender) Send(ctx context.Context, nationalID, message string) {
	deliveryID := uuid.NewString()
	body, err := json.Marshal(payload{ID: deliveryID, NationalID: nationalID, Message: message})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode notification")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build notification request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("delivery_id", deliveryID).
			Str("national_id", nationalID).
			Msg("notification delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		s.logger.Warn().
			Int("status", resp.StatusCode).
			Str("delivery_id", deliveryID).
			Str("national_id", nationalID).
			Msg("notification delivery rejected")
	}
}
