// Package handlers implements the HTTP API layer for the vendor-intel agent.
//
// Handlers delegate business logic to the services layer and focus on request
// validation, response formatting, and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Id-to-name resolution for ranking requests                   │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Ranking │ Resolver │ Warehouse │ Query History                 │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
// Warehouse Endpoints (warehouse.go):
//
//	┌────────┬─────────────────────────────┬─────────────────────────────┐
//	│ Method │ Endpoint                    │ Description                 │
//	├────────┼─────────────────────────────┼─────────────────────────────┤
//	│ GET    │ /warehouse                  │ Fresh warehouse state       │
//	│ POST   │ /warehouse/start            │ Start if not running (admin)│
//	│ POST   │ /warehouse/stop             │ Request stop (admin)        │
//	│ POST   │ /warehouse/connection/reset │ Discard session (admin)     │
//	└────────┴─────────────────────────────┴─────────────────────────────┘
//
// Ranking Endpoints (rankings.go):
//
//	┌────────┬──────────────────────────┬────────────────────────────────┐
//	│ Method │ Endpoint                 │ Description                    │
//	├────────┼──────────────────────────┼────────────────────────────────┤
//	│ POST   │ /rankings/vendors        │ Top vendors per port (JSON)    │
//	│ POST   │ /rankings/vendors/export │ Same ranking as xlsx download  │
//	└────────┴──────────────────────────┴────────────────────────────────┘
//
// History Endpoints (queries.go):
//
//	┌────────┬──────────┬──────────────────────────────────────────────┐
//	│ Method │ Endpoint │ Description                                  │
//	├────────┼──────────┼──────────────────────────────────────────────┤
//	│ GET    │ /queries │ Local query history with outcome filter      │
//	└────────┴──────────┴──────────────────────────────────────────────┘
//
// # Ranking Handler
//
// POST /rankings/vendors accepts items and ports by name, by numeric id, or
// a mix of both:
//
//	{
//	    "itemNames": ["safety gloves"],
//	    "portIds": [31, 47],
//	    "topN": 2
//	}
//
// Ids are resolved to canonical names through the reference views before
// the aggregation runs; unresolved ids are dropped silently. A ranking that
// matches nothing returns 200 with an empty row list and an explanatory
// message.
//
// Engine failures (warehouse unreachable, malformed results) also return
// 200 with empty rows and an apologetic message rather than surfacing raw
// error detail. Callers see a degraded answer, not a stack trace; operators
// see the real error in the logs and in /queries.
//
// # Error Handling
//
// Handlers use a consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌───────────────────────────────┬────────┬────────────────────────────┐
//	│ Condition                     │ Status │ When                       │
//	├───────────────────────────────┼────────┼────────────────────────────┤
//	│ Validation error              │ 400    │ Malformed request body     │
//	│ Warehouse API failure         │ 502    │ Lifecycle/status calls     │
//	│ Internal error                │ 500    │ History reads, workbook    │
//	│ Ranking engine failure        │ 200    │ Empty rows + message       │
//	└───────────────────────────────┴────────┴────────────────────────────┘
//
// # Model Conversion
//
// Handlers convert between internal models and API types using the
// constructors in api/v1/extension.go:
//
//   - v1.NewRankingRowFromModel(models.RankingRow) → v1.RankingRow
//   - v1.NewWarehouseStatusFromModel(models.WarehouseStatus) → v1.WarehouseStatus
//   - v1.NewQueryRecordFromModel(models.QueryRecord) → v1.QueryRecord
package handlers
