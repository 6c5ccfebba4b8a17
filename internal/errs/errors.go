package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound = errors.New("not_found")
    ErrInvalid  = errors.New("invalid")
    // ErrConflict is returned by create when duplicate ids are rejected.
    ErrConflict = errors.New("conflict")
    // ErrPersistence marks a failure to mirror a mutation to the persistence sink.
    // The in-memory mutation has already been applied when this is returned.
    ErrPersistence = errors.New("persistence")
)
