package httpapi

import (
    "context"
    "encoding/json"
    "net/http"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/accounts/internal/registry"
)

type ctxKey string

const ctxKeyAccount ctxKey = "validatedAccount"

// validateAccountBody decodes a JSON account object and stores the resulting
// registry.Account in the request context. When inheritID is set, a body without
// an id takes the {id} path parameter.
func (s *Server) validateAccountBody(inheritID bool) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !requireJSON(w, r) { return }
            var body map[string]any
            if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
                badRequest(w, "invalid JSON: "+err.Error())
                return
            }
            if body == nil {
                badRequest(w, "account must be a JSON object")
                return
            }
            if _, ok := body[registry.IDField]; !ok && inheritID {
                body[registry.IDField] = chi.URLParam(r, "id")
            }
            acc, err := registry.FromMap(body)
            if err != nil {
                writeServiceErr(w, err)
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyAccount, acc)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func accountFromContext(r *http.Request) registry.Account {
    acc, _ := r.Context().Value(ctxKeyAccount).(registry.Account)
    return acc
}
