// Package account implements the account registry operations: mutations are
// applied to the authoritative in-memory sequence first and then mirrored to
// the persistence sink.
package account

import (
    "context"
    "fmt"
    "log/slog"
    "strings"

    "github.com/tinoosan/accounts/internal/errs"
    "github.com/tinoosan/accounts/internal/persist"
    "github.com/tinoosan/accounts/internal/registry"
)

type Repo interface {
    ListAccounts(ctx context.Context) ([]registry.Account, error)
    GetAccount(ctx context.Context, id string) (registry.Account, error)
}

type Writer interface {
    CreateAccount(ctx context.Context, a registry.Account) (registry.Account, error)
    UpdateAccount(ctx context.Context, id string, a registry.Account) (registry.Account, error)
    DeleteAccount(ctx context.Context, id string) error
}

type Service interface {
    Create(ctx context.Context, a registry.Account) (registry.Account, error)
    List(ctx context.Context) ([]registry.Account, error)
    Get(ctx context.Context, id string) (registry.Account, error)
    Update(ctx context.Context, id string, a registry.Account) (registry.Account, error)
    Delete(ctx context.Context, id string) error
}

type service struct {
    repo   Repo
    writer Writer
    sink   persist.Sink
    log    *slog.Logger
}

// New wires the service. A nil sink discards mirrored mutations.
func New(repo Repo, writer Writer, sink persist.Sink, logger *slog.Logger) Service {
    if logger == nil { logger = slog.Default() }
    if sink == nil { sink = persist.Discard{Log: logger} }
    return &service{repo: repo, writer: writer, sink: sink, log: logger}
}

// Create appends the account and mirrors it to the sink. The in-memory append
// stands even when the sink reports errs.ErrPersistence.
func (s *service) Create(ctx context.Context, a registry.Account) (registry.Account, error) {
    a.ID = strings.TrimSpace(a.ID)
    if a.ID == "" { return registry.Account{}, fmt.Errorf("%w: account id is required", errs.ErrInvalid) }
    created, err := s.writer.CreateAccount(ctx, a)
    if err != nil { return registry.Account{}, err }
    if err := s.mirror(ctx, persist.Op{Kind: persist.OpCreate, Account: created, ID: created.ID}); err != nil {
        return registry.Account{}, err
    }
    return created, nil
}

func (s *service) List(ctx context.Context) ([]registry.Account, error) {
    return s.repo.ListAccounts(ctx)
}

func (s *service) Get(ctx context.Context, id string) (registry.Account, error) {
    return s.repo.GetAccount(ctx, strings.TrimSpace(id))
}

// Update replaces the whole record for id. A replacement without an id inherits id.
func (s *service) Update(ctx context.Context, id string, a registry.Account) (registry.Account, error) {
    id = strings.TrimSpace(id)
    if id == "" { return registry.Account{}, fmt.Errorf("%w: account id is required", errs.ErrInvalid) }
    a.ID = strings.TrimSpace(a.ID)
    if a.ID == "" { a.ID = id }
    updated, err := s.writer.UpdateAccount(ctx, id, a)
    if err != nil { return registry.Account{}, err }
    if updated.ID != id {
        // the durable copy moves to the new id
        if err := s.mirror(ctx, persist.Op{Kind: persist.OpDelete, ID: id}); err != nil { return registry.Account{}, err }
        if err := s.mirror(ctx, persist.Op{Kind: persist.OpCreate, Account: updated, ID: updated.ID}); err != nil { return registry.Account{}, err }
        return updated, nil
    }
    if err := s.mirror(ctx, persist.Op{Kind: persist.OpUpdate, Account: updated, ID: id}); err != nil {
        return registry.Account{}, err
    }
    return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
    id = strings.TrimSpace(id)
    if id == "" { return fmt.Errorf("%w: account id is required", errs.ErrInvalid) }
    if err := s.writer.DeleteAccount(ctx, id); err != nil { return err }
    return s.mirror(ctx, persist.Op{Kind: persist.OpDelete, ID: id})
}

func (s *service) mirror(ctx context.Context, op persist.Op) error {
    if err := persist.Apply(ctx, s.sink, op); err != nil {
        s.log.ErrorContext(ctx, "persistence sink rejected op", "op", op.Kind, "account_id", op.ID, "err", err)
        return fmt.Errorf("%w: %s account %q: %v", errs.ErrPersistence, op.Kind, op.ID, err)
    }
    return nil
}
