// Package connection manages the single shared session to the remote
// warehouse.
//
// A session is expensive to establish: the warehouse may be STOPPED, and a
// start request is asynchronous, so the first dial can spend most of a
// minute waiting out the STARTING window. Per-request connections would be
// prohibitively slow, and the workload is read-only and low-concurrency, so
// one shared handle is enough.
//
// # Acquire flow
//
//	Acquire(ctx)
//	    │
//	    ▼
//	fast path: session exists and not stale ──────────► return it
//	    │
//	    ▼ (lock)
//	re-check under lock (another caller may have dialed)
//	    │
//	    ├── session stale? probe with SELECT 1
//	    │       ├── probe ok: clear flag, return session
//	    │       └── probe failed: discard handle
//	    │
//	    ▼
//	EnsureRunning() ──► dial with exponential backoff ──► store + return
//	                    (bounded budget, ctx-cancellable)
//
// # Staleness
//
// The query executor calls MarkStale after any transport-level failure. The
// flag costs nothing on the fast path (atomic load) and routes the next
// Acquire through the probe. A failed probe discards the handle; no caller
// ever observes the stale session again.
//
// Reset discards the session unconditionally and exists for manual
// recovery only.
//
// # Concurrency
//
// N concurrent Acquire calls with no session result in exactly one dial;
// the losers of the lock race find the winner's session in the re-check.
// Once handed out, sessions serve concurrent SELECTs without further
// locking — database/sql checks out pooled connections per statement.
package connection
