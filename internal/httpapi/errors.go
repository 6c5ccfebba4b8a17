package httpapi

import (
    "context"
    "errors"
    "net/http"

    "github.com/tinoosan/accounts/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Error string `json:"error"`
    Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
    toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "invalid") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// writeServiceErr maps service sentinels onto HTTP statuses.
func writeServiceErr(w http.ResponseWriter, err error) {
    switch {
    case errors.Is(err, errs.ErrNotFound):
        notFound(w)
    case errors.Is(err, errs.ErrInvalid):
        badRequest(w, err.Error())
    case errors.Is(err, errs.ErrConflict):
        writeErr(w, http.StatusConflict, err.Error(), "conflict")
    case errors.Is(err, errs.ErrPersistence):
        writeErr(w, http.StatusServiceUnavailable, err.Error(), "persistence")
    case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
        writeErr(w, http.StatusServiceUnavailable, err.Error(), "canceled")
    default:
        writeErr(w, http.StatusInternalServerError, "internal error", "internal")
    }
}
