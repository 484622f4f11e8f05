package tasks

import (
	"context"
	"errors"

	"github.com/movietrend/movietrend/internal/config"
	"github.com/movietrend/movietrend/internal/scheduler"
	"github.com/movietrend/movietrend/internal/trending"
)

const TickTaskID = "trending-tick"

var ErrNoReturnURL = errors.New("schedule.return_url is required when scheduled ticks are enabled")

// Runner runs one tick of the trending pipeline.
type Runner interface {
	Run(ctx context.Context, req trending.TickRequest) trending.Result
}

// RegisterTickTask registers the self-triggered tick with the scheduler.
func RegisterTickTask(sched *scheduler.Scheduler, runner Runner, cfg config.ScheduleConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.ReturnURL == "" {
		return ErrNoReturnURL
	}

	return sched.RegisterTask(scheduler.TaskConfig{
		ID:          TickTaskID,
		Name:        "Trending Movies Tick",
		Description: "Fetch this week's trending movies and post them to the configured Telex return URL",
		Cron:        cfg.Cron,
		RunOnStart:  cfg.RunOnStart,
		Func:        tickFunc(runner, cfg),
	})
}

func tickFunc(runner Runner, cfg config.ScheduleConfig) scheduler.TaskFunc {
	return func(ctx context.Context) error {
		req := trending.TickRequest{
			ReturnURL:         cfg.ReturnURL,
			PreferredLanguage: cfg.Language,
			NumMovies:         trending.Count(cfg.NumMovies),
		}
		req.Normalize()
		if err := req.Validate(); err != nil {
			return err
		}
		return runner.Run(ctx, req).Err
	}
}
