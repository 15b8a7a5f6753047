// Package server provides the HTTP server for the vendor-intel agent.
//
// The server uses the Gin web framework and supports two modes of operation:
// development (gin debug mode) and production (gin release mode).
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (request/response logging with request ids)     │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  │  Auth middleware on lifecycle mutations when enabled    │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Lifecycle
//
// Creation:
//
//	srv := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler, adminMiddleware)
//	})
//
// The registerFn callback receives a RouterGroup prefixed with /api/v1.
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start()
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Performs graceful shutdown, waiting for in-flight requests to complete
// until the context expires.
//
// # Middleware
//
// Logger Middleware (middlewares.Logger):
//   - Logs request start: method, path, query, IP, user-agent
//   - Logs request end: all above + status code, latency
//   - Both lines share a generated request id
//   - Uses zap structured logging with "http" logger name
//
// Recovery Middleware (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
//
// Auth Middleware (middlewares.Auth):
//   - Validates a bearer JWT signed with the configured HMAC secret
//   - Applied only to the warehouse lifecycle mutation routes
//   - Returns 401 on missing or invalid tokens
package server
