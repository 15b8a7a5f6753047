// Package warehouse implements the client side of the warehouse control API.
//
// The remote warehouse is a billed-while-running SQL compute resource that
// transitions through STOPPED -> STARTING -> RUNNING. Three pieces cooperate
// to observe and drive that lifecycle:
//
//	┌────────────────────────────────────────────────────────────┐
//	│                        Controller                          │
//	│   EnsureRunning() / Stop() / State()                       │
//	├──────────────────────────────┬─────────────────────────────┤
//	│          StateCache          │           Client            │
//	│   TTL-bounded run-state      │   GET  /warehouses/{id}     │
//	│   IsRunning() / Invalidate() │   POST .../start  .../stop  │
//	└──────────────────────────────┴─────────────────────────────┘
//
// # StateCache
//
// The run-state is cached under a short TTL (default 10s) so the query path
// does not poll the status endpoint on every connection check. The cache is
// invalidated immediately after any start/stop request, so externally
// triggered state changes are observed within one TTL window at worst.
//
// # Controller
//
// EnsureRunning is fire-and-forget: issuing "start" does not mean the
// warehouse is queryable. The connection manager owns the retry/backoff that
// waits out the STARTING window. A failed status check is treated as "assume
// not running" and the start is attempted anyway.
//
// # Errors
//
//   - StatusCheckError: status endpoint unreachable or non-2xx
//   - LifecycleRequestError: start/stop rejected (carries HTTP status + body)
package warehouse
