package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinoosan/accounts/internal/config"
	"github.com/tinoosan/accounts/internal/persist"
	"github.com/tinoosan/accounts/internal/registry"
	"github.com/tinoosan/accounts/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLogLevel(tc.in).Level(); got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSeedDev(t *testing.T) {
	store := memory.New()
	accs := seedDev(store)
	if store.Len() != len(accs) {
		t.Fatalf("store has %d accounts, want %d", store.Len(), len(accs))
	}
	var buf bytes.Buffer
	printDevSeedBanner(&buf, accs)
	for _, a := range accs {
		if !strings.Contains(buf.String(), "account_id: "+a.ID) {
			t.Fatalf("banner missing %s:\n%s", a.ID, buf.String())
		}
	}
}

func TestOpenSinkNone(t *testing.T) {
	sink, closeFn, err := openSink(context.Background(), config.Config{PersistBackend: config.BackendNone}, testLogger())
	if err != nil {
		t.Fatalf("openSink: %v", err)
	}
	defer closeFn(context.Background())
	if _, ok := sink.(persist.Discard); !ok {
		t.Fatalf("want persist.Discard, got %T", sink)
	}
}

func TestOpenSinkSQLiteModes(t *testing.T) {
	for _, mode := range []string{config.ModeSync, config.ModeAsync} {
		t.Run(mode, func(t *testing.T) {
			cfg := config.Config{
				PersistBackend: config.BackendSQLite,
				PersistMode:    mode,
				SQLitePath:     filepath.Join(t.TempDir(), "accounts.db"),
				RetryMaxTries:  1,
			}
			sink, closeFn, err := openSink(context.Background(), cfg, testLogger())
			if err != nil {
				t.Fatalf("openSink: %v", err)
			}
			defer closeFn(context.Background())

			switch mode {
			case config.ModeSync:
				if _, ok := sink.(*persist.Retrying); !ok {
					t.Fatalf("sync mode: want *persist.Retrying, got %T", sink)
				}
			case config.ModeAsync:
				if _, ok := sink.(*persist.Queue); !ok {
					t.Fatalf("async mode: want *persist.Queue, got %T", sink)
				}
			}
			if err := sink.CreateEntry(context.Background(), registry.Account{ID: "1"}); err != nil {
				t.Fatalf("create entry: %v", err)
			}
			if err := persist.Ready(context.Background(), sink); err != nil {
				t.Fatalf("ready: %v", err)
			}
		})
	}
}

func TestOpenSinkUnknownBackend(t *testing.T) {
	if _, _, err := openSink(context.Background(), config.Config{PersistBackend: "mongo"}, testLogger()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
