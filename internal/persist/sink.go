// Package persist defines the persistence sink that mirrors registry mutations
// and the delivery policies around it: retry with backoff and an asynchronous
// queue with a dead-letter list.
package persist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tinoosan/accounts/internal/registry"
)

// Sink receives every applied mutation. It is write-only: the registry never
// reads back from it.
type Sink interface {
	CreateEntry(ctx context.Context, a registry.Account) error
	UpdateEntry(ctx context.Context, a registry.Account) error
	DeleteEntry(ctx context.Context, id string) error
}

// ReadyChecker is optionally implemented by sinks backed by a remote system.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Ready pings the sink when it implements ReadyChecker.
func Ready(ctx context.Context, s Sink) error {
	if rc, ok := s.(ReadyChecker); ok {
		return rc.Ready(ctx)
	}
	return nil
}

// OpKind names a sink operation.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Op is one mutation to deliver to a sink.
type Op struct {
	Kind    OpKind
	Account registry.Account
	// ID is the target id; for create and update it equals Account.ID.
	ID string
}

// Apply delivers op to sink.
func Apply(ctx context.Context, sink Sink, op Op) error {
	switch op.Kind {
	case OpCreate:
		return sink.CreateEntry(ctx, op.Account)
	case OpUpdate:
		return sink.UpdateEntry(ctx, op.Account)
	case OpDelete:
		return sink.DeleteEntry(ctx, op.ID)
	default:
		return fmt.Errorf("unknown sink op %q", op.Kind)
	}
}

// Discard is the sink used when no backend is configured. It only logs.
type Discard struct {
	Log *slog.Logger
}

func (d Discard) CreateEntry(ctx context.Context, a registry.Account) error {
	d.debug(ctx, OpCreate, a.ID)
	return nil
}

func (d Discard) UpdateEntry(ctx context.Context, a registry.Account) error {
	d.debug(ctx, OpUpdate, a.ID)
	return nil
}

func (d Discard) DeleteEntry(ctx context.Context, id string) error {
	d.debug(ctx, OpDelete, id)
	return nil
}

func (d Discard) debug(ctx context.Context, kind OpKind, id string) {
	if d.Log != nil {
		d.Log.DebugContext(ctx, "persistence sink disabled; dropping op", "op", kind, "account_id", id)
	}
}
