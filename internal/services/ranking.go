package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/query"
	srvErrors "github.com/portsight/vendor-intel/pkg/errors"
)

// DefaultTopVendorsPerPort is the truncation applied when the caller does
// not ask for a specific depth.
const DefaultTopVendorsPerPort = 2

// ordersView is the denormalized itemized-order view the aggregation runs
// against.
const ordersView = "po_itemized"

// RankingService computes the top vendors per delivery port for a set of
// item and port names.
type RankingService struct {
	exec QueryRunner
	log  *zap.SugaredLogger
}

func NewRankingService(exec QueryRunner) *RankingService {
	return &RankingService{
		exec: exec,
		log:  zap.S().Named("ranking_service"),
	}
}

// RankTopVendors returns the topN vendors by order count for every requested
// port, restricted to the requested items. Matching is case-insensitive and
// whitespace-tolerant on both sides. An empty normalized item or port set
// short-circuits to an empty result without issuing SQL.
//
// Vendors with equal totals are ordered by vendor name ascending, then
// vendor code ascending, so truncation is deterministic across runs.
func (s *RankingService) RankTopVendors(ctx context.Context, itemNames, portNames []string, topN int) ([]models.RankingRow, error) {
	if topN <= 0 {
		topN = DefaultTopVendorsPerPort
	}

	items := normalizeNames(itemNames)
	ports := normalizeNames(portNames)
	if len(items) == 0 || len(ports) == 0 {
		return nil, nil
	}

	stmt, err := buildAggregateStatement(items, ports)
	if err != nil {
		return nil, err
	}

	rows, err := s.exec.Query(ctx, stmt)
	if srvErrors.IsTransientQueryError(err) {
		// the session was marked stale; one retry gets a fresh one
		s.log.Warnw("retrying aggregation after transient failure", "error", err)
		rows, err = s.exec.Query(ctx, stmt)
	}
	if err != nil {
		return nil, err
	}

	return s.fold(rows, items, topN), nil
}

func buildAggregateStatement(items, ports []string) (query.Statement, error) {
	builder := sq.Select(
		"LOWER(TRIM(delivery_port)) AS port",
		"LOWER(TRIM(item_description)) AS item",
		"vendor_name",
		"vendor_code",
		"COUNT(*) AS orders",
	).From(ordersView).
		Where(sq.Eq{"LOWER(TRIM(item_description))": items}).
		Where(sq.Eq{"LOWER(TRIM(delivery_port))": ports}).
		GroupBy(
			"LOWER(TRIM(delivery_port))",
			"LOWER(TRIM(item_description))",
			"vendor_name",
			"vendor_code",
		).
		OrderBy("port", "orders DESC")

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return query.Statement{}, err
	}
	return query.Statement{SQL: sqlStr, Args: args, Columns: 5}, nil
}

// fold collapses aggregation rows into per-(port, vendor) tallies and emits
// the truncated ranking. The same (port, item, vendor) combination may
// appear in more than one row; totals stay correct because VendorAggregate
// recomputes TotalCount from its per-item map on every addition.
func (s *RankingService) fold(rows []models.Row, items []string, topN int) []models.RankingRow {
	var portOrder []string
	vendors := make(map[string]map[string]*models.VendorAggregate)

	for _, row := range rows {
		port := toString(row[0])
		item := toString(row[1])
		vendorName := strings.TrimSpace(toString(row[2]))
		vendorID := toString(row[3])
		count := toInt64(row[4])

		byVendor, ok := vendors[port]
		if !ok {
			byVendor = make(map[string]*models.VendorAggregate)
			vendors[port] = byVendor
			portOrder = append(portOrder, port)
		}

		agg, ok := byVendor[vendorID]
		if !ok {
			agg = models.NewVendorAggregate(vendorID, vendorName)
			byVendor[vendorID] = agg
		}
		agg.AddItemCount(item, count)
	}

	itemsJoined := strings.Join(items, ", ")

	var results []models.RankingRow
	for _, port := range portOrder {
		aggs := make([]*models.VendorAggregate, 0, len(vendors[port]))
		for _, agg := range vendors[port] {
			aggs = append(aggs, agg)
		}

		sort.Slice(aggs, func(i, j int) bool {
			if aggs[i].TotalCount != aggs[j].TotalCount {
				return aggs[i].TotalCount > aggs[j].TotalCount
			}
			if aggs[i].VendorName != aggs[j].VendorName {
				return aggs[i].VendorName < aggs[j].VendorName
			}
			return aggs[i].VendorID < aggs[j].VendorID
		})

		if len(aggs) > topN {
			aggs = aggs[:topN]
		}

		for _, agg := range aggs {
			results = append(results, models.RankingRow{
				Port:        port,
				Items:       itemsJoined,
				VendorName:  agg.VendorName,
				VendorID:    agg.VendorID,
				TotalOrders: agg.TotalCount,
				Breakdown:   breakdown(agg, items, port),
			})
		}
	}

	return results
}

// breakdown renders one line per requested item, including zero-count items
// for this vendor.
func breakdown(agg *models.VendorAggregate, items []string, port string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("Total %s ordered at %s: %d", item, port, agg.PerItemCount[item]))
	}
	return strings.Join(lines, "\n")
}

// normalizeNames trims and lowercases every name, dropping empties and
// duplicates while preserving first-seen order.
func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}
