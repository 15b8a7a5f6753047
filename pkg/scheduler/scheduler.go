package scheduler

import (
	"context"
	"fmt"
	"sync"
)

type workRequest struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

// Scheduler runs submitted work on a fixed pool of workers. Submission
// blocks while every worker is busy, which bounds how much background work
// can pile up against shared resources like the warehouse session.
type Scheduler struct {
	work       chan workRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler(nbWorkers int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		work:       make(chan workRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// AddWork submits work and returns a Future for its result. After Close,
// the future resolves immediately with context.Canceled.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	select {
	case <-s.mainCtx.Done():
		// we're closing here so send a result with an error
		c <- Result[any]{Err: context.Canceled}
	case s.work <- workRequest{w, c, ctx}:
	}

	return NewFuture(c, cancel)
}

// Close cancels all in-flight work and waits for the workers to drain.
// Idempotent.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.wg.Wait()
	})
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.mainCtx.Done():
			return
		case r := <-s.work:
			s.execute(r)
		}
	}
}

func (s *Scheduler) execute(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
}
