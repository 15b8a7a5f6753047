package services

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/query"
)

// QueryRunner executes one statement against the warehouse.
type QueryRunner interface {
	Query(ctx context.Context, stmt query.Statement) ([]models.Row, error)
}

// Reference views holding the canonical id -> name mappings.
const (
	itemsView = "ref_items"
	portsView = "ref_ports"
)

// Resolver maps caller-supplied numeric identifiers to canonical display
// names. Ids with no match are silently dropped from the result; callers fed
// only unresolved ids end up with an empty slice, never an error.
type Resolver struct {
	exec QueryRunner
	log  *zap.SugaredLogger
}

func NewResolver(exec QueryRunner) *Resolver {
	return &Resolver{
		exec: exec,
		log:  zap.S().Named("resolver"),
	}
}

func (r *Resolver) ResolveItemNames(ctx context.Context, ids []int64) ([]string, error) {
	return r.resolve(ctx, itemsView, "item_id", "item_description", ids)
}

func (r *Resolver) ResolvePortNames(ctx context.Context, ids []int64) ([]string, error) {
	return r.resolve(ctx, portsView, "port_id", "port_name", ids)
}

func (r *Resolver) resolve(ctx context.Context, view, idColumn, nameColumn string, ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	builder := sq.Select(nameColumn).
		Distinct().
		From(view).
		Where(sq.Eq{idColumn: ids})

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.exec.Query(ctx, query.Statement{SQL: sqlStr, Args: args, Columns: 1})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(toString(row[0]))
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	if len(names) < len(ids) {
		r.log.Debugw("some identifiers did not resolve", "view", view, "supplied", len(ids), "resolved", len(names))
	}

	return names, nil
}
