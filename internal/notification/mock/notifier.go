package mock

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/movietrend/movietrend/internal/notification/types"
)

// Record stores a sent message for inspection.
type Record struct {
	URL    string               `json:"url"`
	Movies []types.DisplayMovie `json:"movies"`
	SentAt time.Time            `json:"sentAt"`
}

// Notifier is an in-memory notifier that logs and keeps every delivery.
type Notifier struct {
	logger zerolog.Logger

	mu      sync.RWMutex
	records []Record
	err     error
}

// New creates a new mock notifier
func New(logger zerolog.Logger) *Notifier {
	return &Notifier{
		logger: logger.With().Str("notifier", "mock").Logger(),
	}
}

// FailWith makes subsequent sends return err. Nil restores success.
func (n *Notifier) FailWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

func (n *Notifier) Type() types.NotifierType {
	return types.NotifierMock
}

func (n *Notifier) SendTrending(ctx context.Context, url string, movies []types.DisplayMovie) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}

	n.records = append(n.records, Record{
		URL:    url,
		Movies: append([]types.DisplayMovie(nil), movies...),
		SentAt: time.Now(),
	})
	n.logger.Info().Str("url", url).Int("movies", len(movies)).Msg("[MOCK] trending movies sent")
	return nil
}

// Records returns a copy of all deliveries.
func (n *Notifier) Records() []Record {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]Record(nil), n.records...)
}
