package postgres

// Package postgres provides a pgx-backed persistence sink that mirrors the
// registry's mutations into the account_entries table. It is write-only from the
// registry's point of view; nothing here is read back by the service.

import (
    "context"
    "embed"
    "fmt"
    "io/fs"
    "sort"

    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/accounts/internal/registry"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store holds a pgx connection pool and implements persist.Sink.
// All methods are safe for concurrent use.
type Store struct {
    pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, err }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, err }
    // Verify connection
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
    return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Migrate applies the embedded schema files in name order. Each file is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
    names, err := fs.Glob(migrationsFS, "migrations/*.sql")
    if err != nil { return err }
    sort.Strings(names)
    for _, name := range names {
        b, err := migrationsFS.ReadFile(name)
        if err != nil { return err }
        if _, err := s.pool.Exec(ctx, string(b)); err != nil { return fmt.Errorf("apply %s: %w", name, err) }
    }
    return nil
}

// CreateEntry upserts the account row.
func (s *Store) CreateEntry(ctx context.Context, a registry.Account) error {
    return s.upsert(ctx, a)
}

// UpdateEntry upserts as well, so a mirror that missed the create still converges.
func (s *Store) UpdateEntry(ctx context.Context, a registry.Account) error {
    return s.upsert(ctx, a)
}

// DeleteEntry removes the row; deleting a missing row is not an error.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
    _, err := s.pool.Exec(ctx, `delete from account_entries where id = $1`, id)
    return err
}

func (s *Store) upsert(ctx context.Context, a registry.Account) error {
    attrs, err := a.Attributes.MarshalStableJSON()
    if err != nil { return fmt.Errorf("encode attributes: %w", err) }
    _, err = s.pool.Exec(ctx, `
        insert into account_entries (id, attributes)
        values ($1, $2)
        on conflict (id) do update
        set attributes = excluded.attributes, updated_at = now()
    `, a.ID, attrs)
    return err
}
