// Package server provides the Gin HTTP server that hosts the sandbox pico
// backend, with h2c support and net/http level middleware.
//
// Middleware (server/middleware): Recovery, RequestID, CORS, BodySizeLimit
// RequestLogger and the optional RateLimit. Endpoints (server/endpoint): /health, /ready, /info.
//
//	srv := server.New(cfg, log)
//	srv.ApplyDefaults("picoview", registry.HealthAll)
//	srv.Engine().GET("/api/nodes", handler)
//	err := srv.Start(ctx)
package server
