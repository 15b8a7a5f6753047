// Package scheduler implements a worker pool for executing async work with futures.
//
// A fixed pool of N workers receives work directly from a channel; AddWork
// blocks while all workers are busy, so callers cannot pile up unbounded
// background work against shared resources.
//
//	┌────────────────────────────────────────────────────────┐
//	│                       Scheduler                        │
//	│                                                        │
//	│   AddWork(fn) ──► work chan ──► worker 1..N            │
//	│        │                           │                   │
//	│        ▼                           ▼                   │
//	│     Future ◄──── result chan ── fn(ctx)                │
//	└────────────────────────────────────────────────────────┘
//
// # Future
//
// AddWork returns a Future immediately:
//
//	future := sched.AddWork(func(ctx context.Context) (any, error) {
//	    // do work, honor ctx.Done()
//	    return result, nil
//	})
//
//	select {
//	case result := <-future.C():
//	    // result.Data / result.Err
//	case <-ctx.Done():
//	    future.Stop() // cancel the work
//	}
//
// # Cancellation and shutdown
//
// Each work function receives a context derived from the scheduler's main
// context. future.Stop() cancels one unit; Close() cancels the main context,
// waits for workers to drain, and is idempotent. Work submitted after Close
// resolves immediately with context.Canceled.
//
// Workers recover from panics in work functions and report them as errors on
// the future, so a misbehaving unit never takes the pool down.
package scheduler
