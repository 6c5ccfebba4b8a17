package httpapi

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"
)

// postAccount handles POST /v1/accounts.
func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
    created, err := s.svc.Create(r.Context(), accountFromContext(r))
    if err != nil { writeServiceErr(w, err); return }
    toJSON(w, http.StatusCreated, toAccountResponse(created))
}

// listAccounts handles GET /v1/accounts in insertion order.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
    accs, err := s.svc.List(r.Context())
    if err != nil { writeServiceErr(w, err); return }
    toJSON(w, http.StatusOK, toAccountResponses(accs))
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
    acc, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"))
    if err != nil { writeServiceErr(w, err); return }
    toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// putAccount handles PUT /v1/accounts/{id}: a whole-record replacement.
func (s *Server) putAccount(w http.ResponseWriter, r *http.Request) {
    updated, err := s.svc.Update(r.Context(), chi.URLParam(r, "id"), accountFromContext(r))
    if err != nil { writeServiceErr(w, err); return }
    toJSON(w, http.StatusOK, toAccountResponse(updated))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
    if err := s.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil { writeServiceErr(w, err); return }
    w.WriteHeader(http.StatusNoContent)
}
