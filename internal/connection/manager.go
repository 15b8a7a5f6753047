package connection

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	srvErrors "github.com/portsight/vendor-intel/pkg/errors"
)

// Session is a live logical connection bound to a catalog/schema on the
// warehouse. It is owned exclusively by the Manager and dropped on
// replacement, never closed mid-use.
type Session struct {
	db        *sql.DB
	Catalog   string
	Schema    string
	CreatedAt time.Time
}

func (s *Session) DB() *sql.DB { return s.db }

// Connector dials a new underlying handle. The production connector opens
// database/sql against the warehouse; tests inject fakes.
type Connector interface {
	Connect(ctx context.Context) (*sql.DB, error)
}

// Lifecycle ensures the warehouse is running before a dial is attempted.
type Lifecycle interface {
	EnsureRunning(ctx context.Context) error
}

const probeStatement = "SELECT 1"

// Manager is the process-wide holder of exactly one live session. The
// construction critical section is protected by a mutex with double-checked
// locking: only one concurrent caller pays the dial cost (which may include
// waiting out the warehouse's STARTING window), everyone else either hits
// the fast path or briefly blocks and observes the now-valid session.
type Manager struct {
	connector Connector
	lifecycle Lifecycle

	catalog       string
	schema        string
	initialWait   time.Duration
	maxWait       time.Duration
	connectBudget time.Duration

	mu      sync.RWMutex
	session *Session
	stale   atomic.Bool

	log *zap.SugaredLogger
}

type Option func(*Manager)

// WithCatalogSchema sets the catalog and schema new sessions are bound to.
func WithCatalogSchema(catalog, schema string) Option {
	return func(m *Manager) {
		m.catalog = catalog
		m.schema = schema
	}
}

// WithConnectBudget bounds the total time spent retrying a dial before
// failing with ConnectionUnavailableError.
func WithConnectBudget(d time.Duration) Option {
	return func(m *Manager) { m.connectBudget = d }
}

// WithRetryIntervals sets the initial and maximum backoff intervals between
// dial attempts.
func WithRetryIntervals(initial, max time.Duration) Option {
	return func(m *Manager) {
		m.initialWait = initial
		m.maxWait = max
	}
}

func NewManager(connector Connector, lifecycle Lifecycle, opts ...Option) *Manager {
	m := &Manager{
		connector:     connector,
		lifecycle:     lifecycle,
		initialWait:   2 * time.Second,
		maxWait:       15 * time.Second,
		connectBudget: 90 * time.Second,
		log:           zap.S().Named("connection_manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire returns the shared session, dialing a new one when none exists or
// the current one fails its health probe. The caller's context aborts any
// in-flight backoff wait.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	s := m.session
	m.mu.RUnlock()
	if s != nil && !m.stale.Load() {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// another caller may have just built or healed the session
	if m.session != nil {
		if !m.stale.Load() {
			return m.session, nil
		}
		err := m.probe(ctx, m.session)
		if err == nil {
			m.stale.Store(false)
			return m.session, nil
		}
		m.log.Warnw("session probe failed, discarding handle", "age", time.Since(m.session.CreatedAt), "error", err)
		m.discardLocked()
	}

	s, err := m.dial(ctx)
	if err != nil {
		return nil, err
	}
	m.session = s
	m.log.Infow("warehouse session established", "catalog", s.Catalog, "schema", s.Schema)
	return s, nil
}

// MarkStale flags the current session so the next Acquire health-checks it
// before handing it out. Called by the query executor on transport-level
// failures.
func (m *Manager) MarkStale() {
	m.stale.Store(true)
}

// Reset discards the current session unconditionally, forcing a fresh dial
// on next access. Manual recovery only; staleness detection handles the
// automatic cases.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		m.log.Infow("session reset", "age", time.Since(m.session.CreatedAt))
	}
	m.discardLocked()
}

// Probe runs the trivial health statement against the shared session,
// marking it stale on failure. Used by the periodic keepalive task. With no
// session established there is nothing to check and Probe returns without
// dialing: the probe path must never start the warehouse, or a scheduled
// stop would be undone on the next tick.
func (m *Manager) Probe(ctx context.Context) error {
	m.mu.RLock()
	s := m.session
	m.mu.RUnlock()
	if s == nil {
		return nil
	}
	if err := m.probe(ctx, s); err != nil {
		m.MarkStale()
		return err
	}
	return nil
}

func (m *Manager) probe(ctx context.Context, s *Session) error {
	var one int
	return s.db.QueryRowContext(ctx, probeStatement).Scan(&one)
}

func (m *Manager) discardLocked() {
	if m.session != nil {
		_ = m.session.db.Close()
		m.session = nil
	}
	m.stale.Store(false)
}

// dial ensures the warehouse is running, then retries the connect with
// bounded exponential backoff. A warehouse still in STARTING rejects
// connections; the backoff budget covers the usual start window so callers
// never hang indefinitely.
func (m *Manager) dial(ctx context.Context) (*Session, error) {
	if err := m.lifecycle.EnsureRunning(ctx); err != nil {
		return nil, srvErrors.NewConnectionUnavailableError(err)
	}

	attempts := 0
	operation := func() (*sql.DB, error) {
		attempts++
		db, err := m.connector.Connect(ctx)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = m.initialWait
	expo.MaxInterval = m.maxWait

	db, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxElapsedTime(m.connectBudget),
	)
	if err != nil {
		m.log.Errorw("failed to establish warehouse session", "attempts", attempts, "error", err)
		return nil, srvErrors.NewConnectionUnavailableError(err)
	}

	return &Session{
		db:        db,
		Catalog:   m.catalog,
		Schema:    m.schema,
		CreatedAt: time.Now(),
	}, nil
}
