package leaselock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDB emulates app_locks in memory, ignoring expiry.
type memDB struct {
	mu       sync.Mutex
	locks    map[string]string
	lostRows bool
}

type row struct {
	key string
	err error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.key
	return nil
}

func newMemDB() *memDB {
	return &memDB{locks: make(map[string]string)}
}

func (m *memDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, token := args[0].(string), args[1].(string)
	switch {
	case strings.Contains(sql, "INSERT INTO app_locks"):
		if holder, ok := m.locks[key]; ok && holder != token {
			return row{err: pgx.ErrNoRows}
		}
		m.locks[key] = token
		return row{key: key}
	case strings.Contains(sql, "UPDATE app_locks"):
		if m.lostRows || m.locks[key] != token {
			return row{err: pgx.ErrNoRows}
		}
		return row{key: key}
	}
	return row{err: errors.New("unexpected query")}
}

func (m *memDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, token := args[0].(string), args[1].(string)
	if m.locks[key] == token {
		delete(m.locks, key)
	}
	return pgconn.CommandTag{}, nil
}

func (m *memDB) held(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.locks[key]
	return ok
}

func TestAcquireRelease(t *testing.T) {
	db := newMemDB()
	c := New(db)
	key := ReportKey("abc")

	lease, err := c.Acquire(context.Background(), key, Options{})
	require.NoError(t, err)
	assert.True(t, db.held(key))

	_, err = c.Acquire(context.Background(), key, Options{})
	assert.ErrorIs(t, err, ErrBusy)

	require.NoError(t, lease.Release(context.Background()))
	require.NoError(t, lease.Release(context.Background()))
	assert.False(t, db.held(key))
	assert.Error(t, lease.Context.Err())

	again, err := c.Acquire(context.Background(), key, Options{})
	require.NoError(t, err)
	require.NoError(t, again.Release(context.Background()))
}

func TestAcquire_WaitHonoursContext(t *testing.T) {
	db := newMemDB()
	c := New(db)

	held, err := c.Acquire(context.Background(), "k", Options{})
	require.NoError(t, err)
	defer held.Release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = c.Acquire(ctx, "k", Options{Wait: true, WaitInterval: 5 * time.Millisecond})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAcquire_EmptyKey(t *testing.T) {
	_, err := New(newMemDB()).Acquire(context.Background(), "", Options{})
	assert.Error(t, err)
}

func TestWithLease(t *testing.T) {
	db := newMemDB()
	c := New(db)

	ran := false
	err := c.WithLease(context.Background(), ReportKey("r1"), Options{}, func(ctx context.Context) error {
		ran = true
		assert.True(t, db.held(ReportKey("r1")))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, db.held(ReportKey("r1")))

	boom := errors.New("boom")
	err = c.WithLease(context.Background(), ReportKey("r1"), Options{}, func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, db.held(ReportKey("r1")))
}

func TestLeaseLost(t *testing.T) {
	db := newMemDB()
	db.lostRows = true
	c := New(db)

	err := c.WithLease(context.Background(), "k", Options{TTL: 2 * time.Second, RenewEvery: 10 * time.Millisecond}, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, ErrLost)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, defaultTTL, o.TTL)
	assert.Equal(t, defaultTTL/2, o.RenewEvery)
	assert.Equal(t, defaultWaitInterval, o.WaitInterval)

	o = Options{TTL: time.Second, RenewEvery: time.Hour}.withDefaults()
	assert.Equal(t, time.Second, o.RenewEvery)
}
