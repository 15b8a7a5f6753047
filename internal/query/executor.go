package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portsight/vendor-intel/internal/connection"
	"github.com/portsight/vendor-intel/internal/models"
	srvErrors "github.com/portsight/vendor-intel/pkg/errors"
)

// Statement is one parameterized read query together with the column arity
// its caller expects. The arity is what lets the executor fail loudly on
// results whose shape does not match, instead of coercing them into an
// empty collection.
type Statement struct {
	SQL     string
	Args    []any
	Columns int
}

// SessionProvider hands out the shared warehouse session.
type SessionProvider interface {
	Acquire(ctx context.Context) (*connection.Session, error)
	MarkStale()
}

// Recorder persists executed statements into the local query history.
type Recorder interface {
	Record(ctx context.Context, rec models.QueryRecord) error
}

// Executor runs statements against the shared session and decodes results
// defensively: the driver may hand back native rows, or a single string cell
// holding a tuple-text rendering of the whole result set.
type Executor struct {
	sessions SessionProvider
	history  Recorder
	log      *zap.SugaredLogger
}

func NewExecutor(sessions SessionProvider, history Recorder) *Executor {
	return &Executor{
		sessions: sessions,
		history:  history,
		log:      zap.S().Named("query_executor"),
	}
}

// Query executes the statement and returns decoded rows. Transport-level
// failures mark the session stale and surface as TransientQueryError so the
// caller may retry once against a fresh session.
func (e *Executor) Query(ctx context.Context, stmt Statement) ([]models.Row, error) {
	started := time.Now()
	rows, err := e.run(ctx, stmt)
	e.record(ctx, stmt, started, len(rows), err)
	return rows, err
}

func (e *Executor) run(ctx context.Context, stmt Statement) ([]models.Row, error) {
	session, err := e.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rs, err := session.DB().QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		e.sessions.MarkStale()
		e.log.Warnw("query transport failure", "error", err)
		return nil, srvErrors.NewTransientQueryError(err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		e.sessions.MarkStale()
		return nil, srvErrors.NewTransientQueryError(err)
	}

	var raw []models.Row
	for rs.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		// a scan failure is a driver-level fault, not a shape mismatch
		if err := rs.Scan(ptrs...); err != nil {
			e.sessions.MarkStale()
			return nil, srvErrors.NewTransientQueryError(err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		raw = append(raw, models.Row(values))
	}
	if err := rs.Err(); err != nil {
		e.sessions.MarkStale()
		return nil, srvErrors.NewTransientQueryError(err)
	}

	if len(cols) == stmt.Columns {
		return raw, nil
	}

	// some driver paths flatten the whole result set into one string cell
	if len(cols) == 1 && len(raw) == 1 {
		if text, ok := raw[0][0].(string); ok {
			return ParseTupleText(text, stmt.Columns)
		}
	}

	return nil, srvErrors.NewMalformedResultError(stmt.Columns, len(cols), "unexpected column arity")
}

func (e *Executor) record(ctx context.Context, stmt Statement, started time.Time, rowCount int, qerr error) {
	if e.history == nil {
		return
	}

	rec := models.QueryRecord{
		ID:        uuid.NewString(),
		SQL:       stmt.SQL,
		Outcome:   models.QueryOutcomeOK,
		RowCount:  rowCount,
		Duration:  time.Since(started),
		CreatedAt: started,
	}
	if qerr != nil {
		rec.Outcome = models.QueryOutcomeError
		rec.Error = qerr.Error()
	}

	if err := e.history.Record(ctx, rec); err != nil {
		e.log.Debugw("failed to record query history", "error", err)
	}
}
