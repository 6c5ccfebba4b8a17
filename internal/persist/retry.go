package persist

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/tinoosan/accounts/internal/registry"
)

// RetryPolicy bounds how hard Retrying tries before giving up on an op.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is used for zero fields of a RetryPolicy.
var DefaultRetryPolicy = RetryPolicy{
	MaxTries:        5,
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error { return backoff.Permanent(err) }

// Retrying is a Sink that retries every call with exponential backoff.
type Retrying struct {
	sink   Sink
	policy RetryPolicy
	log    *slog.Logger
}

// NewRetrying wraps sink with the given policy.
func NewRetrying(sink Sink, policy RetryPolicy, logger *slog.Logger) *Retrying {
	if policy.MaxTries == 0 {
		policy.MaxTries = DefaultRetryPolicy.MaxTries
	}
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = DefaultRetryPolicy.InitialInterval
	}
	if policy.MaxInterval <= 0 {
		policy.MaxInterval = DefaultRetryPolicy.MaxInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrying{sink: sink, policy: policy, log: logger}
}

func (r *Retrying) CreateEntry(ctx context.Context, a registry.Account) error {
	return r.Do(ctx, Op{Kind: OpCreate, Account: a, ID: a.ID})
}

func (r *Retrying) UpdateEntry(ctx context.Context, a registry.Account) error {
	return r.Do(ctx, Op{Kind: OpUpdate, Account: a, ID: a.ID})
}

func (r *Retrying) DeleteEntry(ctx context.Context, id string) error {
	return r.Do(ctx, Op{Kind: OpDelete, ID: id})
}

// Ready forwards to the wrapped sink.
func (r *Retrying) Ready(ctx context.Context) error { return Ready(ctx, r.sink) }

// Do delivers op, retrying transient failures until the policy is exhausted
// or ctx ends. The last error is returned.
func (r *Retrying) Do(ctx context.Context, op Op) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.MaxInterval = r.policy.MaxInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, Apply(ctx, r.sink, op)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.policy.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			retriesTotal.WithLabelValues(string(op.Kind)).Inc()
			r.log.WarnContext(ctx, "sink op failed; retrying", "op", op.Kind, "account_id", op.ID, "err", err, "next", next.String())
		}),
	)
	if err != nil {
		opsTotal.WithLabelValues(string(op.Kind), "error").Inc()
		return err
	}
	opsTotal.WithLabelValues(string(op.Kind), "ok").Inc()
	return nil
}
