// Package services implements the business logic layer of the vendor-intel
// agent.
//
// Services act as intermediaries between the HTTP handlers and the
// warehouse/query plumbing, providing a clean separation of concerns.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── RankingService ───► QueryExecutor
//	    ├── Resolver ─────────► QueryExecutor
//	    └── WarehouseService ─► Controller, ConnectionManager, Scheduler, Cron
//
// # RankingService
//
// RankTopVendors computes the top vendors by order count per delivery port:
//
//  1. Trim and lowercase every item and port name; drop empties and
//     duplicates. Matching is case-insensitive, so "Bolt" and "BOLT " hit
//     the same rows.
//  2. An empty normalized item or port set returns an empty result without
//     issuing SQL. This is a designed short-circuit, not an error.
//  3. Run one grouped aggregation over the itemized-order view, counting
//     rows per (port, item, vendor name, vendor code).
//  4. Fold rows into per-(port, vendor) aggregates. The total of each
//     aggregate is always recomputed from its per-item map, so repeated
//     (port, item, vendor) rows cannot double the total.
//  5. Sort each port's vendors by total descending with vendor name, then
//     vendor code, as the tie-break; truncate to topN (default 2).
//
// A transient query failure is retried exactly once: the executor has
// already marked the session stale, so the retry gets a fresh one.
//
// # Resolver
//
// ResolveItemNames and ResolvePortNames map numeric identifiers to
// canonical display names via IN(...) lookups against the reference views.
// Ids with no match are silently dropped (logged at debug); an empty result
// is not an error. Downstream ranking naturally yields an empty result when
// nothing resolves.
//
// # WarehouseService
//
// Exposes status/start/stop/reset to the handlers and owns two background
// duties:
//
//   - Cron schedule: starts the warehouse ahead of working hours and stops
//     it after, on the configured cron expressions.
//   - Keepalive: probes the shared session on an interval through the
//     scheduler pool, so a dead session is detected and flagged before the
//     next user query trips over it. Probes run only while the warehouse is
//     RUNNING and never dial, so the scheduled stop is honored.
//
// # Thread Safety
//
// RankingService and Resolver are stateless (they only hold the executor
// reference). WarehouseService's cron runner and keepalive loop manage
// their own goroutines; shared session state lives behind the connection
// manager's lock.
package services
