// Package config defines the configuration structure for the vendor-intel
// agent.
//
// Configuration is organized into logical sections (Server, Agent,
// Warehouse, Auth) and is loaded from an optional config file plus
// VENDOR_INTEL_* environment variables, with struct-tag defaults applied
// via creasty/defaults. Environment wins over the file; the file wins over
// defaults.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Agent          - Local behavior (workers, data folder, history)
//	├── Warehouse      - Remote warehouse endpoint and connection policy
//	├── Auth           - Bearer-JWT settings for admin routes
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────┬─────────┬────────────────────────────────────────┐
//	│ Field    │ Default │ Description                            │
//	├──────────┼─────────┼────────────────────────────────────────┤
//	│ Mode     │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort │ 8000    │ HTTP server listen port                │
//	└──────────┴─────────┴────────────────────────────────────────┘
//
// # Agent Configuration
//
//	┌────────────────┬─────────┬──────────────────────────────────────┐
//	│ Field          │ Default │ Description                          │
//	├────────────────┼─────────┼──────────────────────────────────────┤
//	│ DataFolder     │ ""      │ Path to local storage (DuckDB)       │
//	│ NumWorkers     │ 3       │ Number of scheduler workers          │
//	│ HistoryMaxDays │ 30      │ Query history retention in days      │
//	└────────────────┴─────────┴──────────────────────────────────────┘
//
// # Warehouse Configuration
//
//	┌───────────────┬──────────────────┬─────────────────────────────────────┐
//	│ Field         │ Default          │ Description                         │
//	├───────────────┼──────────────────┼─────────────────────────────────────┤
//	│ Host          │ "" (required)    │ Warehouse API hostname              │
//	│ WarehouseID   │ "" (required)    │ Warehouse identifier                │
//	│ Token         │ "" (required)    │ API bearer token                    │
//	│ Driver        │ "databricks"     │ database/sql driver name            │
//	│ DSN           │ "" (required)    │ SQL connection string               │
//	│ Catalog       │ "main"           │ Catalog the session pins            │
//	│ Schema        │ "vendor_intel"   │ Schema the session pins             │
//	│ StateCacheTTL │ 10s              │ Warehouse state cache lifetime      │
//	│ ConnectBudget │ 90s              │ Total time allowed for dial retries │
//	│ StartCron     │ "0 7 * * 1-5"    │ Scheduled warehouse start           │
//	│ StopCron      │ "10 15 * * 1-5"  │ Scheduled warehouse stop            │
//	│ ProbeInterval │ 5m               │ Session keepalive probe interval    │
//	└───────────────┴──────────────────┴─────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌───────────┬─────────┬──────────────────────────────────────────┐
//	│ Field     │ Default │ Description                              │
//	├───────────┼─────────┼──────────────────────────────────────────┤
//	│ Enabled   │ false   │ Guard admin routes with bearer JWT       │
//	│ JWTSecret │ ""      │ HMAC secret (required when enabled)      │
//	└───────────┴─────────┴──────────────────────────────────────────┘
//
// # Environment Variables
//
// Every key maps to an environment variable by upper-casing and replacing
// dots with underscores under the VENDOR_INTEL prefix:
//
//	warehouse.host        → VENDOR_INTEL_WAREHOUSE_HOST
//	warehouse.warehouseId → VENDOR_INTEL_WAREHOUSE_WAREHOUSEID
//	server.httpPort       → VENDOR_INTEL_SERVER_HTTPPORT
//
// # Usage Example
//
//	cfg, err := config.Load("/etc/vendor-intel/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
