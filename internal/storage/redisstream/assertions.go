package redisstream

import "github.com/tinoosan/accounts/internal/persist"

// Compile-time interface assertions documenting which interfaces Publisher satisfies.
var (
	_ persist.Sink         = (*Publisher)(nil)
	_ persist.ReadyChecker = (*Publisher)(nil)
)
