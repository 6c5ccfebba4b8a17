package sqlite

import "github.com/tinoosan/accounts/internal/persist"

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ persist.Sink         = (*Store)(nil)
	_ persist.ReadyChecker = (*Store)(nil)
)
