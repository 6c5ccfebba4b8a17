package memory

// Package memory holds the authoritative, insertion-ordered sequence of accounts.
// Lookups are linear scans with first-match semantics.
import (
    "context"
    "fmt"
    "sync"

    "github.com/tinoosan/accounts/internal/errs"
    "github.com/tinoosan/accounts/internal/registry"
)

// DuplicatePolicy controls whether create accepts an id that is already present.
type DuplicatePolicy string

const (
    // DuplicatesAllow appends unconditionally (append-only log semantics).
    DuplicatesAllow DuplicatePolicy = "allow"
    // DuplicatesReject fails create with errs.ErrConflict when the id is present.
    DuplicatesReject DuplicatePolicy = "reject"
)

// Option configures a Store.
type Option func(*Store)

// WithDuplicatePolicy sets the duplicate-id policy. Unknown values fall back to allow.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
    return func(s *Store) { s.policy = p }
}

// Store is the in-memory account sequence. A single RWMutex guards all
// operations so each scan-then-mutate runs as one step.
type Store struct {
    mu       sync.RWMutex
    accounts []registry.Account
    policy   DuplicatePolicy
}

// New constructs an empty in-memory store.
func New(opts ...Option) *Store {
    s := &Store{accounts: make([]registry.Account, 0), policy: DuplicatesAllow}
    for _, opt := range opts { opt(s) }
    return s
}

// Seed helpers for local dev/tests.
func (s *Store) SeedAccount(a registry.Account) { s.mu.Lock(); s.accounts = append(s.accounts, a.Clone()); s.mu.Unlock() }
func (s *Store) Reset() {
    s.mu.Lock()
    s.accounts = make([]registry.Account, 0)
    s.mu.Unlock()
}

// Len returns the number of stored accounts.
func (s *Store) Len() int { s.mu.RLock(); defer s.mu.RUnlock(); return len(s.accounts) }

// Policy returns the configured duplicate-id policy.
func (s *Store) Policy() DuplicatePolicy { return s.policy }

// CreateAccount appends a to the end of the sequence.
func (s *Store) CreateAccount(_ context.Context, a registry.Account) (registry.Account, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.policy == DuplicatesReject && s.indexLocked(a.ID) >= 0 {
        return registry.Account{}, fmt.Errorf("%w: account %q already exists", errs.ErrConflict, a.ID)
    }
    s.accounts = append(s.accounts, a.Clone())
    return a.Clone(), nil
}

// ListAccounts returns every account in insertion order.
func (s *Store) ListAccounts(_ context.Context) ([]registry.Account, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]registry.Account, 0, len(s.accounts))
    for _, a := range s.accounts { out = append(out, a.Clone()) }
    return out, nil
}

// GetAccount returns the first account whose id matches.
func (s *Store) GetAccount(_ context.Context, id string) (registry.Account, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    i := s.indexLocked(id)
    if i < 0 { return registry.Account{}, errs.ErrNotFound }
    return s.accounts[i].Clone(), nil
}

// UpdateAccount replaces the first account whose id matches, keeping its position.
// Under DuplicatesReject a rename onto an id that is already stored fails with errs.ErrConflict.
func (s *Store) UpdateAccount(_ context.Context, id string, a registry.Account) (registry.Account, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.indexLocked(id)
    if i < 0 { return registry.Account{}, errs.ErrNotFound }
    if s.policy == DuplicatesReject && a.ID != id && s.indexLocked(a.ID) >= 0 {
        return registry.Account{}, fmt.Errorf("%w: account %q already exists", errs.ErrConflict, a.ID)
    }
    s.accounts[i] = a.Clone()
    return a.Clone(), nil
}

// DeleteAccount removes the first account whose id matches; later accounts shift down.
func (s *Store) DeleteAccount(_ context.Context, id string) error {
    s.mu.Lock(); defer s.mu.Unlock()
    i := s.indexLocked(id)
    if i < 0 { return errs.ErrNotFound }
    copy(s.accounts[i:], s.accounts[i+1:])
    s.accounts[len(s.accounts)-1] = registry.Account{}
    s.accounts = s.accounts[:len(s.accounts)-1]
    return nil
}

// indexLocked returns the position of the first account with id, or -1.
// Caller must hold s.mu.
func (s *Store) indexLocked(id string) int {
    for i := range s.accounts {
        if s.accounts[i].ID == id { return i }
    }
    return -1
}
