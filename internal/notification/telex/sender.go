package telex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/movietrend/movietrend/internal/config"
	"github.com/movietrend/movietrend/internal/notification/types"
)

var ErrDeliveryFailed = errors.New("telex delivery failed")

// PayloadStatus is reported on every message regardless of outcome.
// TODO: derive from the tick result once Telex documents status values.
const PayloadStatus = "success"

// minDeliveredStatus is the lowest response code counted as delivered. Any
// code at or above it counts, so 4xx and 5xx replies are logged, not failed.
const minDeliveredStatus = http.StatusOK

// Payload is the JSON body posted to a Telex return URL.
type Payload struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	EventName string `json:"event_name"`
	Status    string `json:"status"`
}

// Sender posts trending movie messages to Telex return URLs.
type Sender struct {
	settings   config.TelexConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a new Telex sender. A nil httpClient gets one with the
// configured timeout.
func New(settings config.TelexConfig, httpClient *http.Client, logger zerolog.Logger) *Sender {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(settings.Timeout) * time.Second}
	}
	return &Sender{
		settings:   settings,
		httpClient: httpClient,
		logger:     logger.With().Str("notifier", "telex").Logger(),
	}
}

func (s *Sender) Type() types.NotifierType {
	return types.NotifierTelex
}

// SendTrending formats movies into one message and posts it to url.
func (s *Sender) SendTrending(ctx context.Context, url string, movies []types.DisplayMovie) error {
	payload := Payload{
		Message:   FormatMessage(movies),
		Username:  s.settings.Username,
		EventName: s.settings.EventName,
		Status:    PayloadStatus,
	}
	return s.send(ctx, url, payload)
}

func (s *Sender) send(ctx context.Context, url string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("url", url).Msg("Error sending data to Telex")
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < minDeliveredStatus {
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("Telex replied with non-2xx status")
	}

	s.logger.Debug().Int("status", resp.StatusCode).Str("url", url).Msg("Sent trending movies to Telex")
	return nil
}

// FormatMessage renders movies as a numbered plain-text list.
func FormatMessage(movies []types.DisplayMovie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎬🍿 Top %d Trending Movies for the Week 🎬🍿:\n", len(movies))
	for i, m := range movies {
		fmt.Fprintf(&b, "\n%d. %s - %.1f\n\n", i+1, m.Title, m.Rating)
		fmt.Fprintf(&b, "Overview: %s\n\n", m.Overview)
		fmt.Fprintf(&b, "Image Url: %s\n\n\n", m.CoverPhoto())
	}
	return b.String()
}
