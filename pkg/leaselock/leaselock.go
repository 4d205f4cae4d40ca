// Package leaselock provides expiring, renewable locks stored in the
// app_locks table. A worker holds the lease on a report while it processes
// it, so redelivered messages for the same report never run twice at once.
package leaselock

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrBusy = errors.New("lease lock busy")
	ErrLost = errors.New("lease lock lost")
)

const (
	defaultTTL          = 5 * time.Minute
	defaultWaitInterval = 250 * time.Millisecond
	renewAttempts       = 3
	renewTimeout        = 15 * time.Second
)

// DB is the subset of a pgx pool or connection the locks need.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Client struct {
	db DB
}

// Options tune a single acquisition. Zero values select the defaults: a
// five minute TTL renewed at half its length, and no waiting.
type Options struct {
	TTL        time.Duration
	RenewEvery time.Duration

	Wait         bool
	WaitInterval time.Duration
	WaitJitter   time.Duration

	TokenPrefix string
}

// Lease is a held lock. Context is cancelled when the lease is released or
// lost; context.Cause reports ErrLost in the latter case.
type Lease struct {
	Key   string
	Token string

	Context context.Context

	client *Client
	cancel context.CancelCauseFunc

	stopOnce sync.Once
	stopCh   chan struct{}
}

func New(db DB) *Client {
	return &Client{db: db}
}

// ReportKey is the lock key guarding the processing of one report.
func ReportKey(reportID string) string {
	return "report:" + reportID
}

// WithLease runs fn while holding the lease on key. fn receives the lease
// context and must stop when it is cancelled.
func (c *Client) WithLease(ctx context.Context, key string, opts Options, fn func(ctx context.Context) error) error {
	lease, err := c.Acquire(ctx, key, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = lease.Release(context.Background())
	}()

	if err := fn(lease.Context); err != nil {
		if cause := context.Cause(lease.Context); errors.Is(cause, ErrLost) {
			return fmt.Errorf("%w: %w", ErrLost, err)
		}
		return err
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 || o.TTL.Milliseconds() <= 0 {
		o.TTL = defaultTTL
	}
	if o.RenewEvery <= 0 || o.RenewEvery >= o.TTL {
		o.RenewEvery = max(o.TTL/2, time.Second)
	}
	if o.WaitInterval <= 0 {
		o.WaitInterval = defaultWaitInterval
	}
	if o.WaitJitter < 0 {
		o.WaitJitter = 0
	}
	return o
}

// Acquire takes the lease on key. Without Options.Wait a held lease fails
// immediately with ErrBusy; with it, Acquire polls until ctx is done.
func (c *Client) Acquire(ctx context.Context, key string, opts Options) (*Lease, error) {
	if key == "" {
		return nil, errors.New("lease lock key is empty")
	}
	opts = opts.withDefaults()
	ttlMs := opts.TTL.Milliseconds()

	tok, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	token := opts.TokenPrefix + tok

	for {
		ok, err := c.tryAcquire(ctx, key, token, ttlMs)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lease %s: %w", key, err)
		}
		if ok {
			break
		}
		if !opts.Wait {
			return nil, ErrBusy
		}
		if err := sleepWithJitter(ctx, opts.WaitInterval, opts.WaitJitter); err != nil {
			return nil, err
		}
	}

	leaseCtx, cancel := context.WithCancelCause(ctx)
	l := &Lease{
		Key:     key,
		Token:   token,
		Context: leaseCtx,
		client:  c,
		cancel:  cancel,
		stopCh:  make(chan struct{}),
	}

	go l.renewLoop(opts.RenewEvery, ttlMs)

	return l, nil
}

func (c *Client) tryAcquire(ctx context.Context, key, token string, ttlMs int64) (bool, error) {
	var returnedKey string
	err := c.db.QueryRow(ctx, tryAcquireSQL, key, token, ttlMs).Scan(&returnedKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return returnedKey != "", nil
}

// Release stops renewal and deletes the lock row. It is safe to call more
// than once.
func (l *Lease) Release(ctx context.Context) error {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.cancel(context.Canceled)
	})

	_, err := l.client.db.Exec(ctx, releaseSQL, l.Key, l.Token)
	return err
}

func (l *Lease) renewLoop(every time.Duration, ttlMs int64) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-l.Context.Done():
			return
		case <-t.C:
			if err := l.renewOnce(ttlMs); err != nil {
				l.cancel(err)
				return
			}
		}
	}
}

func (l *Lease) renewOnce(ttlMs int64) error {
	for attempt := range renewAttempts {
		renewCtx, cancel := context.WithTimeout(l.Context, renewTimeout)
		var returnedKey string
		err := l.client.db.QueryRow(renewCtx, renewSQL, l.Key, l.Token, ttlMs).Scan(&returnedKey)
		cancel()
		if err == nil {
			return nil
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLost
		}
		if attempt == renewAttempts-1 {
			return err
		}
		if err := sleepWithJitter(l.Context, 200*time.Millisecond, 0); err != nil {
			return err
		}
	}
	return ErrLost
}

func sleepWithJitter(ctx context.Context, base, jitter time.Duration) error {
	d := base
	if jitter > 0 {
		d += time.Duration(rand.Int64N(int64(jitter) + 1))
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

const tryAcquireSQL = `
INSERT INTO app_locks (lock_key, locked_by, expires_at)
VALUES ($1, $2, now() + ($3::bigint * interval '1 millisecond'))
ON CONFLICT (lock_key) DO UPDATE
SET locked_by  = EXCLUDED.locked_by,
    expires_at = EXCLUDED.expires_at
WHERE app_locks.expires_at < now()
   OR app_locks.locked_by = EXCLUDED.locked_by
RETURNING lock_key;
`

const renewSQL = `
UPDATE app_locks
SET expires_at = now() + ($3::bigint * interval '1 millisecond')
WHERE lock_key = $1 AND locked_by = $2
RETURNING lock_key;
`

const releaseSQL = `
DELETE FROM app_locks
WHERE lock_key = $1 AND locked_by = $2;
`
