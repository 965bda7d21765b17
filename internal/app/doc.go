// Package app wires configuration, telemetry, the dashboard services and the HTTP router
// into a runnable server.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML file, STOCKDASH_* environment)
//	2. Initialize logging and OpenTelemetry
//	3. Load the dataset; a failure leaves the server up without data
//	4. Create the dashboard, health and WebSocket services
//	5. Build the chi router and the HTTP server
//	6. Serve until SIGINT/SIGTERM, then shut down gracefully
//
// # Middleware
//
// /ws and /metrics only get RequestID and RealIP. Everything else runs through
//
//	OTel → StructuredLogger → Recovery → SecurityHeaders → CORS → RateLimiter → Compress → Timeout
//
// CORS and the rate limiter are enabled from configuration.
package app
