package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tinoosan/accounts/internal/meta"
	"github.com/tinoosan/accounts/internal/registry"
	"github.com/tinoosan/accounts/internal/storage/memory"
)

// seedDev loads a few demo accounts straight into the in-memory store.
// They are not mirrored to the persistence sink.
func seedDev(store *memory.Store) []registry.Account {
	accs := []registry.Account{
		{ID: "1", Attributes: meta.New(map[string]any{"name": "Alice", "email": "alice@example.com"})},
		{ID: "2", Attributes: meta.New(map[string]any{"name": "Bob", "email": "bob@example.com"})},
		{ID: "3", Attributes: meta.New(map[string]any{"name": "Carol", "email": "carol@example.com", "tags": []any{"demo"}})},
	}
	for _, a := range accs {
		store.SeedAccount(a)
	}
	return accs
}

// logDevSeed emits structured logs with the seeded ids
func logDevSeed(l *slog.Logger, accs []registry.Account) {
	ids := make([]string, 0, len(accs))
	for _, a := range accs {
		ids = append(ids, a.ID)
	}
	l.Info("DEV seed (memory)", "account_ids", ids)
}

// printDevSeedBanner prints a simple banner for easy copy/paste of ids
func printDevSeedBanner(w io.Writer, accs []registry.Account) {
	fmt.Fprintln(w, "==================== DEV SEED ====================")
	for _, a := range accs {
		name, _ := a.Attributes.Get("name")
		fmt.Fprintf(w, "account_id: %s (%v)\n", a.ID, name)
	}
	fmt.Fprintln(w, "==================================================")
}
