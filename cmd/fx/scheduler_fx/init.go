package scheduler_fx

import (
	"context"

	"go.uber.org/fx"

	"jobboard/internal/config"
	"jobboard/internal/scheduler"
	"jobboard/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideScheduler),
	fx.Invoke(registerScheduler),
)

func provideScheduler(ingestion services.IngestionServiceInterface, cfg config.IngestionConfig) *scheduler.Scheduler {
	return scheduler.New(ingestion, cfg.Schedule)
}

func registerScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return s.Start()
		},
		OnStop: func(context.Context) error {
			s.Stop()
			return nil
		},
	})
}
