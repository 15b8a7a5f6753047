package services_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/services"
	"github.com/portsight/vendor-intel/pkg/scheduler"
)

type fakeController struct {
	starts      atomic.Int64
	stops       atomic.Int64
	stateChecks atomic.Int64
	state       atomic.Value
}

func (c *fakeController) setState(state models.WarehouseState) {
	c.state.Store(state)
}

func (c *fakeController) EnsureRunning(ctx context.Context) error {
	c.starts.Add(1)
	return nil
}

func (c *fakeController) Stop(ctx context.Context) error {
	c.stops.Add(1)
	return nil
}

func (c *fakeController) State(ctx context.Context) (models.WarehouseStatus, error) {
	c.stateChecks.Add(1)
	state := models.WarehouseStateRunning
	if s, ok := c.state.Load().(models.WarehouseState); ok {
		state = s
	}
	return models.WarehouseStatus{State: state, ObservedAt: time.Now()}, nil
}

type fakeSessions struct {
	probes atomic.Int64
	resets atomic.Int64
}

func (s *fakeSessions) Probe(ctx context.Context) error {
	s.probes.Add(1)
	return nil
}

func (s *fakeSessions) Reset() {
	s.resets.Add(1)
}

var _ = Describe("WarehouseService", func() {
	var (
		ctx        context.Context
		controller *fakeController
		sessions   *fakeSessions
		sched      *scheduler.Scheduler
		svc        *services.WarehouseService
	)

	BeforeEach(func() {
		ctx = context.Background()
		controller = &fakeController{}
		sessions = &fakeSessions{}
		sched = scheduler.NewScheduler(2)
	})

	AfterEach(func() {
		if svc != nil {
			svc.Close()
		}
		sched.Close()
	})

	Describe("Lifecycle passthrough", func() {
		It("should delegate start, stop and status to the controller", func() {
			svc = services.NewWarehouseService(controller, sessions, sched, 0)

			Expect(svc.Start(ctx)).To(Succeed())
			Expect(svc.Stop(ctx)).To(Succeed())

			status, err := svc.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.State).To(Equal(models.WarehouseStateRunning))

			Expect(controller.starts.Load()).To(Equal(int64(1)))
			Expect(controller.stops.Load()).To(Equal(int64(1)))
		})

		It("should reset the shared session on demand", func() {
			svc = services.NewWarehouseService(controller, sessions, sched, 0)

			svc.ResetConnection()

			Expect(sessions.resets.Load()).To(Equal(int64(1)))
		})
	})

	Describe("Schedule", func() {
		// Given an invalid cron expression
		// When the schedule is registered
		// Then it should fail instead of silently skipping the entry
		It("should reject invalid cron expressions", func() {
			svc = services.NewWarehouseService(controller, sessions, sched, 0)

			err := svc.Schedule("not a cron spec", "")

			Expect(err).To(HaveOccurred())
		})

		It("should accept valid cron expressions", func() {
			svc = services.NewWarehouseService(controller, sessions, sched, 0)

			err := svc.Schedule("0 7 * * 1-5", "10 15 * * 1-5")

			Expect(err).NotTo(HaveOccurred())
		})

		It("should accept empty specs as disabled entries", func() {
			svc = services.NewWarehouseService(controller, sessions, sched, 0)

			Expect(svc.Schedule("", "")).To(Succeed())
		})
	})

	Describe("RunKeepalive", func() {
		// Given a short probe interval
		// When the keepalive loop runs
		// Then the shared session should be probed repeatedly until the
		// context is cancelled
		It("should probe the session on the configured interval", func() {
			svc = services.NewWarehouseService(controller, sessions, sched, 20*time.Millisecond)

			keepaliveCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})
			go func() {
				svc.RunKeepalive(keepaliveCtx)
				close(done)
			}()

			Eventually(func() int64 {
				return sessions.probes.Load()
			}, 2*time.Second, 10*time.Millisecond).Should(BeNumerically(">=", 2))

			cancel()
			Eventually(done, time.Second).Should(BeClosed())
		})

		// Given a warehouse stopped by the schedule
		// When keepalive ticks elapse
		// Then no probe should run, so the stopped warehouse is never
		// dialed back awake
		It("should not probe while the warehouse is stopped", func() {
			controller.setState(models.WarehouseStateStopped)
			svc = services.NewWarehouseService(controller, sessions, sched, 20*time.Millisecond)

			keepaliveCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})
			go func() {
				svc.RunKeepalive(keepaliveCtx)
				close(done)
			}()

			Eventually(func() int64 {
				return controller.stateChecks.Load()
			}, 2*time.Second, 10*time.Millisecond).Should(BeNumerically(">=", 2))

			Consistently(func() int64 {
				return sessions.probes.Load()
			}, 100*time.Millisecond).Should(BeZero())
			Expect(controller.starts.Load()).To(BeZero())

			cancel()
			Eventually(done, time.Second).Should(BeClosed())
		})

		It("should return immediately when probing is disabled", func() {
			svc = services.NewWarehouseService(controller, sessions, sched, 0)

			done := make(chan struct{})
			go func() {
				svc.RunKeepalive(ctx)
				close(done)
			}()

			Eventually(done, time.Second).Should(BeClosed())
		})
	})
})
