package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/tinoosan/accounts/internal/errs"
	"github.com/tinoosan/accounts/internal/meta"
	"github.com/tinoosan/accounts/internal/persist"
	"github.com/tinoosan/accounts/internal/registry"
	"github.com/tinoosan/accounts/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type fakeSink struct {
	mu  sync.Mutex
	ops []persist.Op
	err error
}

func (f *fakeSink) add(op persist.Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.ops = append(f.ops, op)
	return nil
}

func (f *fakeSink) CreateEntry(_ context.Context, a registry.Account) error {
	return f.add(persist.Op{Kind: persist.OpCreate, Account: a, ID: a.ID})
}
func (f *fakeSink) UpdateEntry(_ context.Context, a registry.Account) error {
	return f.add(persist.Op{Kind: persist.OpUpdate, Account: a, ID: a.ID})
}
func (f *fakeSink) DeleteEntry(_ context.Context, id string) error {
	return f.add(persist.Op{Kind: persist.OpDelete, ID: id})
}

func newService(t *testing.T, sink persist.Sink, opts ...memory.Option) (Service, *memory.Store) {
	t.Helper()
	store := memory.New(opts...)
	return New(store, store, sink, testLogger()), store
}

func acct(id, name string) registry.Account {
	return registry.Account{ID: id, Attributes: meta.New(map[string]any{"name": name})}
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	svc, _ := newService(t, sink)

	if _, err := svc.Create(ctx, acct("1", "A")); err != nil {
		t.Fatalf("create 1: %v", err)
	}
	if _, err := svc.Create(ctx, acct("2", "B")); err != nil {
		t.Fatalf("create 2: %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 2 || list[0].ID != "1" || list[1].ID != "2" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if _, err := svc.Update(ctx, "1", acct("1", "A2")); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Get(ctx, "1")
	if err != nil || !got.Equal(acct("1", "A2")) {
		t.Fatalf("get after update: %+v %v", got, err)
	}

	if err := svc.Delete(ctx, "2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = svc.List(ctx)
	if len(list) != 1 || !list[0].Equal(acct("1", "A2")) {
		t.Fatalf("unexpected list after delete: %+v", list)
	}
	if err := svc.Delete(ctx, "2"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}

	want := []persist.OpKind{persist.OpCreate, persist.OpCreate, persist.OpUpdate, persist.OpDelete}
	if len(sink.ops) != len(want) {
		t.Fatalf("expected %d mirrored ops, got %+v", len(want), sink.ops)
	}
	for i, k := range want {
		if sink.ops[i].Kind != k {
			t.Fatalf("op %d: got %s want %s", i, sink.ops[i].Kind, k)
		}
	}
}

func TestFailedLookupsDoNotReachSink(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	svc, store := newService(t, sink)
	_, _ = svc.Create(ctx, acct("1", "A"))

	if _, err := svc.Get(ctx, "nope"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Update(ctx, "nope", acct("nope", "x")); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Delete(ctx, "nope"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.Len() != 1 || len(sink.ops) != 1 {
		t.Fatalf("store or sink changed: len=%d ops=%d", store.Len(), len(sink.ops))
	}
}

func TestCreateRequiresID(t *testing.T) {
	svc, store := newService(t, nil)
	if _, err := svc.Create(context.Background(), acct("  ", "A")); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("invalid create must not append")
	}
}

func TestDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)
	_, _ = svc.Create(ctx, acct("1", "A"))
	if _, err := svc.Create(ctx, acct("1", "A'")); err != nil {
		t.Fatalf("duplicates are accepted by default: %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected both records, got %d", len(list))
	}

	strict, _ := newService(t, nil, memory.WithDuplicatePolicy(memory.DuplicatesReject))
	_, _ = strict.Create(ctx, acct("1", "A"))
	if _, err := strict.Create(ctx, acct("1", "A'")); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateInheritsIDAndHandlesRename(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	svc, _ := newService(t, sink)
	_, _ = svc.Create(ctx, acct("1", "A"))

	updated, err := svc.Update(ctx, "1", registry.Account{Attributes: meta.New(map[string]any{"name": "no id"})})
	if err != nil || updated.ID != "1" {
		t.Fatalf("update without id: %+v %v", updated, err)
	}

	renamed, err := svc.Update(ctx, "1", acct("9", "moved"))
	if err != nil || renamed.ID != "9" {
		t.Fatalf("rename: %+v %v", renamed, err)
	}
	if _, err := svc.Get(ctx, "1"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("old id should be gone, got %v", err)
	}
	last := sink.ops[len(sink.ops)-2:]
	if last[0].Kind != persist.OpDelete || last[0].ID != "1" || last[1].Kind != persist.OpCreate || last[1].ID != "9" {
		t.Fatalf("rename should move the durable copy: %+v", last)
	}
}

func TestRenameOntoTakenIDRejected(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	svc, _ := newService(t, sink, memory.WithDuplicatePolicy(memory.DuplicatesReject))
	_, _ = svc.Create(ctx, acct("1", "A"))
	_, _ = svc.Create(ctx, acct("2", "B"))
	before := len(sink.ops)

	if _, err := svc.Update(ctx, "1", acct("2", "moved")); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 2 || list[0].ID != "1" || list[1].ID != "2" {
		t.Fatalf("store must be unchanged: %+v", list)
	}
	if len(sink.ops) != before {
		t.Fatalf("rejected rename must not reach the sink: %+v", sink.ops[before:])
	}
}

func TestSinkFailureSurfacesAsPersistenceError(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{err: errors.New("db down")}
	svc, store := newService(t, sink)
	_, err := svc.Create(ctx, acct("1", "A"))
	if !errors.Is(err, errs.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	// the store stays authoritative
	if store.Len() != 1 {
		t.Fatalf("in-memory create should stand, len=%d", store.Len())
	}
}
