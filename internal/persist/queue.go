package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tinoosan/accounts/internal/registry"
)

// ErrQueueClosed is returned when an op is offered after Close.
var ErrQueueClosed = errors.New("sink queue closed")

// QueueOptions sizes the asynchronous queue.
type QueueOptions struct {
	// Size is the channel capacity; offers block when it is full.
	Size int
	// Workers is the number of goroutines delivering ops.
	Workers int
	// OpTimeout bounds one delivery including its retries.
	OpTimeout time.Duration
	// MaxDeadLetters caps the dead-letter list; the oldest entries are dropped.
	MaxDeadLetters int
}

// DeadLetter is an op that could not be delivered.
type DeadLetter struct {
	Op  Op
	Err error
	At  time.Time
}

// Queue is a Sink that accepts ops immediately and delivers them in the
// background. Ops for the same account may be delivered out of order when
// more than one worker runs.
type Queue struct {
	sink Sink
	opts QueueOptions
	log  *slog.Logger

	ops chan Op
	wg  sync.WaitGroup

	// mu guards closed; offers hold it for reading so Close cannot close ops mid-send.
	mu     sync.RWMutex
	closed bool

	deadMu sync.Mutex
	dead   []DeadLetter
}

// NewQueue starts opts.Workers goroutines delivering to sink. The sink is
// usually a *Retrying so each op gets the retry policy before dead-lettering.
func NewQueue(sink Sink, opts QueueOptions, logger *slog.Logger) *Queue {
	if opts.Size <= 0 {
		opts.Size = 1024
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = 30 * time.Second
	}
	if opts.MaxDeadLetters <= 0 {
		opts.MaxDeadLetters = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{sink: sink, opts: opts, log: logger, ops: make(chan Op, opts.Size)}
	q.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go q.worker()
	}
	return q
}

func (q *Queue) CreateEntry(ctx context.Context, a registry.Account) error {
	return q.offer(ctx, Op{Kind: OpCreate, Account: a.Clone(), ID: a.ID})
}

func (q *Queue) UpdateEntry(ctx context.Context, a registry.Account) error {
	return q.offer(ctx, Op{Kind: OpUpdate, Account: a.Clone(), ID: a.ID})
}

func (q *Queue) DeleteEntry(ctx context.Context, id string) error {
	return q.offer(ctx, Op{Kind: OpDelete, ID: id})
}

// Ready forwards to the wrapped sink.
func (q *Queue) Ready(ctx context.Context) error { return Ready(ctx, q.sink) }

// Pending returns the number of ops waiting for a worker.
func (q *Queue) Pending() int { return len(q.ops) }

// DeadLetters returns a copy of the ops that exhausted delivery.
func (q *Queue) DeadLetters() []DeadLetter {
	q.deadMu.Lock()
	defer q.deadMu.Unlock()
	out := make([]DeadLetter, len(q.dead))
	copy(out, q.dead)
	return out
}

// Close stops accepting ops and waits for queued ones to be delivered or for ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ops)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) offer(ctx context.Context, op Op) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	queueDepth.Inc()
	select {
	case q.ops <- op:
		return nil
	case <-ctx.Done():
		queueDepth.Dec()
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for op := range q.ops {
		queueDepth.Dec()
		q.deliver(op)
	}
}

func (q *Queue) deliver(op Op) {
	ctx, cancel := context.WithTimeout(context.Background(), q.opts.OpTimeout)
	defer cancel()
	if err := Apply(ctx, q.sink, op); err != nil {
		failuresTotal.WithLabelValues(string(op.Kind)).Inc()
		q.log.Error("sink op dead-lettered", "op", op.Kind, "account_id", op.ID, "err", err)
		q.deadMu.Lock()
		q.dead = append(q.dead, DeadLetter{Op: op, Err: err, At: time.Now().UTC()})
		if over := len(q.dead) - q.opts.MaxDeadLetters; over > 0 {
			q.dead = append([]DeadLetter(nil), q.dead[over:]...)
		}
		q.deadMu.Unlock()
	}
}
