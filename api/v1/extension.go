package v1

import (
	"github.com/portsight/vendor-intel/internal/models"
)

// NewRankingRowFromModel converts a models.RankingRow to an API RankingRow.
func NewRankingRowFromModel(row models.RankingRow) RankingRow {
	return RankingRow{
		Port:        row.Port,
		Items:       row.Items,
		VendorName:  row.VendorName,
		VendorId:    row.VendorID,
		TotalOrders: row.TotalOrders,
		Breakdown:   row.Breakdown,
	}
}

func NewWarehouseStatusFromModel(status models.WarehouseStatus) WarehouseStatus {
	return WarehouseStatus{
		State:      string(status.State),
		ObservedAt: status.ObservedAt,
	}
}

func NewQueryRecordFromModel(record models.QueryRecord) QueryRecord {
	api := QueryRecord{
		Id:         record.ID,
		Sql:        record.SQL,
		Outcome:    string(record.Outcome),
		RowCount:   record.RowCount,
		DurationMs: record.Duration.Milliseconds(),
		CreatedAt:  record.CreatedAt,
	}

	if record.Error != "" {
		e := record.Error
		api.Error = &e
	}

	return api
}
