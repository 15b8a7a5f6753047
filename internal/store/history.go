package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/portsight/vendor-intel/internal/models"
)

// QueryHistoryStore records every statement executed against the warehouse,
// with timing and outcome, for the /queries endpoint and offline debugging.
type QueryHistoryStore struct {
	db *sql.DB
}

func NewQueryHistoryStore(db *sql.DB) *QueryHistoryStore {
	return &QueryHistoryStore{db: db}
}

func (s *QueryHistoryStore) Record(ctx context.Context, rec models.QueryRecord) error {
	_, err := s.db.ExecContext(ctx, queryInsertHistory,
		rec.ID,
		rec.SQL,
		string(rec.Outcome),
		rec.RowCount,
		rec.Duration.Milliseconds(),
		rec.Error,
		rec.CreatedAt,
	)
	return err
}

func (s *QueryHistoryStore) List(ctx context.Context, opts ...ListOption) ([]models.QueryRecord, error) {
	builder := sq.Select(
		"id",
		"sql_text",
		"outcome",
		"row_count",
		"duration_ms",
		"error",
		"created_at",
	).From("query_history").
		OrderBy("created_at DESC")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.QueryRecord
	for rows.Next() {
		var rec models.QueryRecord
		var outcome string
		var durationMS int64
		err := rows.Scan(
			&rec.ID,
			&rec.SQL,
			&outcome,
			&rec.RowCount,
			&durationMS,
			&rec.Error,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Outcome = models.QueryOutcome(outcome)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Prune removes history entries older than the given number of days.
func (s *QueryHistoryStore) Prune(ctx context.Context, days int) error {
	_, err := s.db.ExecContext(ctx, queryPruneHistory, days)
	return err
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByOutcome(outcome models.QueryOutcome) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"outcome": string(outcome)})
	}
}

func Since(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"created_at": t})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}
