package trending

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/movietrend/movietrend/internal/metadata/tmdb"
	"github.com/movietrend/movietrend/internal/notification/types"
)

var (
	ErrFetchFailed = errors.New("failed to fetch trending movies")
	ErrSendFailed  = errors.New("failed to send movie data")
)

// State is a step of the tick pipeline.
type State string

const (
	StateReceived        State = "received"
	StateFetching        State = "fetching"
	StateFetchFailed     State = "fetch_failed"
	StateResolvingImages State = "resolving_images"
	StateSending         State = "sending"
	StateSent            State = "sent"
	StateSendFailed      State = "send_failed"
)

// Catalog is the subset of the TMDB client the pipeline needs.
type Catalog interface {
	Trending(ctx context.Context, req tmdb.TrendingRequest) ([]tmdb.MovieResult, error)
	ImageConfiguration(ctx context.Context, apiKey string) (tmdb.ImageConfig, error)
}

// Result is the terminal state of one tick.
type Result struct {
	State  State
	Movies []types.DisplayMovie
	Err    error
}

// OK reports whether the movies were delivered.
func (r Result) OK() bool {
	return r.State == StateSent
}

// Service runs the fetch, resolve and send pipeline for a tick.
type Service struct {
	catalog  Catalog
	notifier types.Notifier
	logger   zerolog.Logger
}

// NewService creates a new trending service.
func NewService(catalog Catalog, notifier types.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		catalog:  catalog,
		notifier: notifier,
		logger:   logger.With().Str("component", "trending").Logger(),
	}
}

// Run processes one normalized, validated tick. Each step runs sequentially
// on ctx; a poster that cannot be resolved degrades only that movie.
func (s *Service) Run(ctx context.Context, req TickRequest) Result {
	logger := s.logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		logger = l.With().Str("component", "trending").Logger()
	}
	logger = logger.With().
		Str("returnUrl", req.ReturnURL).
		Int("numMovies", int(req.NumMovies)).
		Str("language", req.PreferredLanguage).
		Logger()

	logger.Debug().Str("state", string(StateReceived)).Msg("Tick received")

	logger.Debug().Str("state", string(StateFetching)).Msg("Fetching trending movies")
	raw, err := s.catalog.Trending(ctx, tmdb.TrendingRequest{
		APIKey:   req.APIKey,
		Language: req.PreferredLanguage,
		Limit:    int(req.NumMovies),
	})
	if err != nil {
		logger.Error().Err(err).Str("state", string(StateFetchFailed)).Msg("Failed to fetch trending movies")
		return Result{State: StateFetchFailed, Err: fmt.Errorf("%w: %w", ErrFetchFailed, err)}
	}

	logger.Debug().Str("state", string(StateResolvingImages)).Int("movies", len(raw)).Msg("Resolving cover images")
	movies := s.toDisplayMovies(ctx, logger, req.APIKey, raw)

	logger.Debug().Str("state", string(StateSending)).Msg("Sending movies to Telex")
	if err := s.notifier.SendTrending(ctx, req.ReturnURL, movies); err != nil {
		logger.Error().Err(err).Str("state", string(StateSendFailed)).Msg("Failed to send movie data to Telex")
		return Result{State: StateSendFailed, Movies: movies, Err: fmt.Errorf("%w: %w", ErrSendFailed, err)}
	}

	logger.Info().Str("state", string(StateSent)).Int("movies", len(movies)).Msg("Trending movies sent to Telex")
	return Result{State: StateSent, Movies: movies}
}

// toDisplayMovies maps catalog results in order. Image configuration is
// fetched once and shared by every movie of the tick.
func (s *Service) toDisplayMovies(ctx context.Context, logger zerolog.Logger, apiKey string, raw []tmdb.MovieResult) []types.DisplayMovie {
	movies := make([]types.DisplayMovie, 0, len(raw))
	if len(raw) == 0 {
		return movies
	}

	imgCfg, imgErr := s.catalog.ImageConfiguration(ctx, apiKey)
	if imgErr != nil {
		logger.Warn().Err(imgErr).Msg("Image configuration unavailable, covers will be omitted")
	}

	for _, m := range raw {
		cover := tmdb.UnresolvedPoster(tmdb.ReasonUnavailable)
		if imgErr == nil {
			cover = tmdb.ResolvePoster(imgCfg, m.Poster())
		}
		movies = append(movies, types.DisplayMovie{
			Title:    m.Title,
			Rating:   m.VoteAverage,
			Overview: m.Overview,
			Cover:    cover,
		})
	}
	return movies
}
