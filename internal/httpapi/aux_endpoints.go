package httpapi

import (
    "context"
    "net/http"
    "time"

    "github.com/tinoosan/accounts/internal/persist"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// readyz pings the persistence sink with a short timeout when it supports it.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
    if s.sink == nil { w.WriteHeader(http.StatusOK); return }
    ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
    defer cancel()
    if err := persist.Ready(ctx, s.sink); err != nil {
        s.log.Warn("readiness check failed", "err", err)
        w.WriteHeader(http.StatusServiceUnavailable)
        return
    }
    w.WriteHeader(http.StatusOK)
}
