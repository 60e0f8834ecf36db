// Package store implements the run history of the installer driver.
//
// Every install, uninstall and NGC/UI test invocation is recorded as one row
// of a DuckDB database so that a test campaign can be listed, filtered and
// exported after the fact.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                           RunStore                              │
//	│                              ▼                                  │
//	│                      QueryInterceptor                           │
//	│                              ▼                                  │
//	│                      runs (DuckDB table)                        │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Tables created by LOCAL MIGRATIONS (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  runs              │  One row per driver or runner invocation    │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Initialization Flow
//
//	NewDB(path)
//	    └── Opens DuckDB with a single connection (":memory:" for tests)
//
//	NewStore(db)
//	    └── Initializes RunStore with QueryInterceptor
//
//	Store.Migrate(ctx)
//	    └── migrations.Run()  → Creates runs
//
// # RunStore
//
// Methods:
//   - Save(ctx, run) → error (assigns an id when empty)
//   - Get(ctx, id) → *models.Run or ResourceNotFoundError
//   - List(ctx, opts...) → []models.Run, newest first
//   - Count(ctx, opts...) → int
//   - Prune(ctx, before) → number of rows deleted
//
// List Options:
//
// RunStore.List and Count use the functional options pattern. Each ListOption
// modifies the squirrel.SelectBuilder:
//
//	runs, err := store.Runs().List(ctx,
//	    store.ByOperations(models.OperationInstall),
//	    store.ByOutcomes(models.OutcomeUnexpectedError),
//	    store.Since(time.Now().Add(-24*time.Hour)),
//	    store.WithLimit(50),
//	)
//
//   - ByOperations(ops ...)  SQL: WHERE operation IN (...)
//   - ByOutcomes(outs ...)   SQL: WHERE outcome IN (...)
//   - ByHost(host)           SQL: WHERE host = ?
//   - Since(t)               SQL: WHERE started_at >= ?
//   - WithLimit / WithOffset pagination
//
// Passwords are never stored.
//
// # QueryInterceptor
//
// All database operations are wrapped with a QueryInterceptor that logs the
// statement and its duration at debug level.
package store
