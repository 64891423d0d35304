// Package scheduler replays saved ingestion searches on a cron spec.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"jobboard/pkg/logger"
)

// Runner is the part of the ingestion service the scheduler drives.
type Runner interface {
	RunSavedSearches(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string // e.g. "@every 6h"; empty disables
	ctx    context.Context
	cancel context.CancelFunc
}

func New(runner Runner, spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger{}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{}))),
		runner: runner,
		spec:   spec,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) Start() error {
	if s.spec == "" {
		logger.Info().Msg("[scheduler] no schedule configured, saved searches run on demand only")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce() }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	logger.Info().Str("spec", s.spec).Msg("[scheduler] cron started")
	return nil
}

// Stop cancels an in-flight cycle and waits for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	logger.Info().Msg("[scheduler] cron stopped")
}

func (s *Scheduler) RunOnce() {
	inserted, err := s.runner.RunSavedSearches(s.ctx)
	if err != nil {
		logger.Error().Err(err).Msg("[scheduler] saved search cycle failed")
		return
	}
	logger.Info().Int("inserted", inserted).Msg("[scheduler] saved search cycle complete")
}

// cronLogger routes robfig/cron's logging into zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("[cron] " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("[cron] " + msg)
}
