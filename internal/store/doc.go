// Package store implements the local data access layer.
//
// The agent keeps a small DuckDB database in its data folder. Nothing
// warehouse-side is cached here; the only table is the query history that
// backs the /queries endpoint and offline debugging.
//
// # Schema
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  query_history     │  Executed statements with timing + outcome  │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # QueryHistoryStore
//
// Record inserts one row per executed statement. List uses the functional
// options pattern; each ListOption modifies a squirrel.SelectBuilder and
// options compose:
//
//	records, err := store.History().List(ctx,
//	    store.ByOutcome(models.QueryOutcomeError),
//	    store.Since(time.Now().Add(-24*time.Hour)),
//	    store.WithLimit(50),
//	)
//
// Prune drops entries older than N days; the agent runs it once a day from a
// background loop.
package store
