package worker

import (
	"context"
	"errors"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/config"
	"github.com/1983adrian/adimarketplace-sub002/internal/logger"
	"github.com/1983adrian/adimarketplace-sub002/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	staleSweepInterval  = time.Hour
	staleSweepBatchSize = 100
)

// Service runs the asynq consumer plus the periodic stale return sweep.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name is the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer until the server shuts down.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.ReturnService != nil {
		go s.runStaleSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runStaleSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.ReturnService == nil {
		return
	}
	runOnce := func() {
		cutoff := time.Now().AddDate(0, 0, -s.consumer.staleCutoffDays())
		cancelled, err := s.consumer.ReturnService.CancelStalePending(cutoff, staleSweepBatchSize)
		if err != nil {
			logger.Warnw("worker_return_stale_sweep_failed", "error", err)
			return
		}
		if cancelled > 0 {
			logger.Infow("worker_return_stale_sweep_done", "cancelled", cancelled, "cutoff", cutoff)
		}
	}
	runOnce()

	ticker := time.NewTicker(staleSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
