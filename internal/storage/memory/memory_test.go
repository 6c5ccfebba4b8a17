package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/tinoosan/accounts/internal/errs"
	"github.com/tinoosan/accounts/internal/meta"
	"github.com/tinoosan/accounts/internal/registry"
)

func acct(id, name string) registry.Account {
	return registry.Account{ID: id, Attributes: meta.New(map[string]any{"name": name})}
}

func ids(t *testing.T, s *Store) []string {
	t.Helper()
	list, err := s.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestCreatePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	if got := ids(t, s); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
	for _, id := range []string{"3", "1", "2"} {
		if _, err := s.CreateAccount(ctx, acct(id, "n"+id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	got := ids(t, s)
	if fmt.Sprint(got) != "[3 1 2]" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestGetFirstMatchAndNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, _ = s.CreateAccount(ctx, acct("1", "first"))
	_, _ = s.CreateAccount(ctx, acct("1", "second"))
	got, err := s.GetAccount(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Attributes["name"] != "first" {
		t.Fatalf("expected first match, got %+v", got)
	}
	if _, err := s.GetAccount(ctx, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"a", "b", "c"} {
		_, _ = s.CreateAccount(ctx, acct(id, id))
	}
	if _, err := s.UpdateAccount(ctx, "b", acct("b", "B2")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := ids(t, s); fmt.Sprint(got) != "[a b c]" {
		t.Fatalf("update reordered: %v", got)
	}
	got, _ := s.GetAccount(ctx, "b")
	if got.Attributes["name"] != "B2" {
		t.Fatalf("update not applied: %+v", got)
	}
	if _, err := s.UpdateAccount(ctx, "zz", acct("zz", "x")); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("failed update changed length: %d", s.Len())
	}
}

func TestDeleteCompactsAndIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"a", "b", "c"} {
		_, _ = s.CreateAccount(ctx, acct(id, id))
	}
	if err := s.DeleteAccount(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := ids(t, s); fmt.Sprint(got) != "[a c]" {
		t.Fatalf("unexpected sequence: %v", got)
	}
	if err := s.DeleteAccount(ctx, "b"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete should fail, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("unexpected length %d", s.Len())
	}
}

func TestDuplicatePolicies(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, _ = s.CreateAccount(ctx, acct("1", "A"))
	if _, err := s.CreateAccount(ctx, acct("1", "A again")); err != nil {
		t.Fatalf("allow policy should accept duplicates: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected both duplicates stored")
	}

	strict := New(WithDuplicatePolicy(DuplicatesReject))
	_, _ = strict.CreateAccount(ctx, acct("1", "A"))
	if _, err := strict.CreateAccount(ctx, acct("1", "B")); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if strict.Len() != 1 {
		t.Fatalf("rejected create must not append")
	}

	// a rename through update may not land on a stored id either
	_, _ = strict.CreateAccount(ctx, acct("2", "B"))
	if _, err := strict.UpdateAccount(ctx, "1", acct("2", "moved")); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict on rename, got %v", err)
	}
	got, err := strict.GetAccount(ctx, "1")
	if err != nil || got.Attributes["name"] != "A" {
		t.Fatalf("rejected rename must leave the record untouched: %+v %v", got, err)
	}
	if _, err := strict.UpdateAccount(ctx, "1", acct("1", "A2")); err != nil {
		t.Fatalf("update keeping its own id is not a conflict: %v", err)
	}
	if _, err := strict.UpdateAccount(ctx, "1", acct("3", "C")); err != nil {
		t.Fatalf("rename onto a free id: %v", err)
	}

	loose := New()
	_, _ = loose.CreateAccount(ctx, acct("1", "A"))
	_, _ = loose.CreateAccount(ctx, acct("2", "B"))
	if _, err := loose.UpdateAccount(ctx, "1", acct("2", "moved")); err != nil {
		t.Fatalf("allow policy accepts a rename onto a stored id: %v", err)
	}
}

func TestReturnedAccountsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()
	in := acct("1", "A")
	_, _ = s.CreateAccount(ctx, in)
	in.Attributes["name"] = "mutated by caller"
	got, _ := s.GetAccount(ctx, "1")
	got.Attributes["name"] = "mutated again"
	again, _ := s.GetAccount(ctx, "1")
	if again.Attributes["name"] != "A" {
		t.Fatalf("store state leaked: %+v", again)
	}
}

func TestConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprint(i)
			_, _ = s.CreateAccount(ctx, acct(id, id))
			_, _ = s.UpdateAccount(ctx, id, acct(id, "u"+id))
			if i%2 == 0 {
				_ = s.DeleteAccount(ctx, id)
			}
		}(i)
	}
	wg.Wait()
	if s.Len() != 25 {
		t.Fatalf("expected 25 accounts, got %d", s.Len())
	}
}
