// Package httpapi wires the JSON/HTTP surface of the accounts registry.
// It keeps handlers thin, delegating registry rules to the service layer.
package httpapi

import (
    "log/slog"
    "net/http"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tinoosan/accounts/internal/persist"
    "github.com/tinoosan/accounts/internal/service/account"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    svc  account.Service
    sink persist.Sink
    log  *slog.Logger
    rt   *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// sink is only consulted by /readyz; it may be nil.
func New(svc account.Service, sink persist.Sink, logger *slog.Logger) *Server {
    if logger == nil { logger = slog.Default() }
    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)

    s := &Server{svc: svc, sink: sink, rt: r, log: logger}
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    s.rt.With(s.validateAccountBody(false)).Post("/v1/accounts", s.postAccount)
    s.rt.Get("/v1/accounts", s.listAccounts)
    s.rt.Get("/v1/accounts/{id}", s.getAccount)
    s.rt.With(s.validateAccountBody(true)).Put("/v1/accounts/{id}", s.putAccount)
    s.rt.Delete("/v1/accounts/{id}", s.deleteAccount)
    // Health and metrics (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
