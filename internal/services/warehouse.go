package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/pkg/scheduler"
)

// LifecycleController drives the remote warehouse lifecycle.
type LifecycleController interface {
	EnsureRunning(ctx context.Context) error
	Stop(ctx context.Context) error
	State(ctx context.Context) (models.WarehouseStatus, error)
}

// SessionKeeper owns the shared warehouse session.
type SessionKeeper interface {
	Probe(ctx context.Context) error
	Reset()
}

// WarehouseService exposes warehouse operations to the handlers and owns
// the two background duties around the connection: the cron schedule that
// starts the warehouse ahead of working hours and stops it after, and the
// periodic keepalive probe that detects stale sessions proactively instead
// of leaving discovery to the next user query.
type WarehouseService struct {
	controller LifecycleController
	sessions   SessionKeeper
	scheduler  *scheduler.Scheduler

	cron          *cron.Cron
	probeInterval time.Duration
	probeTimeout  time.Duration

	log *zap.SugaredLogger
}

func NewWarehouseService(controller LifecycleController, sessions SessionKeeper, sched *scheduler.Scheduler, probeInterval time.Duration) *WarehouseService {
	return &WarehouseService{
		controller:    controller,
		sessions:      sessions,
		scheduler:     sched,
		cron:          cron.New(),
		probeInterval: probeInterval,
		probeTimeout:  30 * time.Second,
		log:           zap.S().Named("warehouse_service"),
	}
}

func (s *WarehouseService) Status(ctx context.Context) (models.WarehouseStatus, error) {
	return s.controller.State(ctx)
}

func (s *WarehouseService) Start(ctx context.Context) error {
	return s.controller.EnsureRunning(ctx)
}

func (s *WarehouseService) Stop(ctx context.Context) error {
	return s.controller.Stop(ctx)
}

// ResetConnection discards the shared session unconditionally. Manual
// recovery only.
func (s *WarehouseService) ResetConnection() {
	s.sessions.Reset()
	s.log.Info("warehouse session reset requested")
}

// Schedule registers the start/stop cron entries and starts the cron
// runner. Empty specs skip the corresponding entry.
func (s *WarehouseService) Schedule(startSpec, stopSpec string) error {
	if startSpec != "" {
		_, err := s.cron.AddFunc(startSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := s.controller.EnsureRunning(ctx); err != nil {
				s.log.Errorw("scheduled warehouse start failed", "error", err)
				return
			}
			s.log.Info("scheduled warehouse start issued")
		})
		if err != nil {
			return err
		}
	}

	if stopSpec != "" {
		_, err := s.cron.AddFunc(stopSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := s.controller.Stop(ctx); err != nil {
				s.log.Errorw("scheduled warehouse stop failed", "error", err)
				return
			}
			s.log.Info("scheduled warehouse stop issued")
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// RunKeepalive probes the shared session on the configured interval until
// the context is cancelled. Probes run through the scheduler so they share
// the worker budget with other background work, and only while the
// warehouse is RUNNING so a scheduled stop stays stopped.
func (s *WarehouseService) RunKeepalive(ctx context.Context) {
	if s.probeInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probeOnce(ctx)
		}
	}
}

func (s *WarehouseService) probeOnce(ctx context.Context) {
	// probing a stopped warehouse would dial it back awake through the
	// connection path, so the keepalive only runs while it is RUNNING
	status, err := s.controller.State(ctx)
	if err != nil {
		s.log.Warnw("keepalive probe skipped, warehouse state unknown", "error", err)
		return
	}
	if status.State != models.WarehouseStateRunning {
		s.log.Debugw("keepalive probe skipped, warehouse not running", "state", status.State)
		return
	}

	future := s.scheduler.AddWork(func(wctx context.Context) (any, error) {
		pctx, cancel := context.WithTimeout(wctx, s.probeTimeout)
		defer cancel()
		return nil, s.sessions.Probe(pctx)
	})

	select {
	case result := <-future.C():
		if result.Err != nil {
			s.log.Warnw("keepalive probe failed, session marked stale", "error", result.Err)
			return
		}
		s.log.Debug("keepalive probe ok")
	case <-ctx.Done():
		future.Stop()
	}
}

// Close stops the cron runner and waits for any running entries.
func (s *WarehouseService) Close() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}
