package v1

import "time"

// VendorRankingRequest selects the items and ports the ranking runs over.
// Items and ports can be addressed by numeric id, by display name, or a mix
// of both; ids are resolved to names before the aggregation runs.
type VendorRankingRequest struct {
	ItemIds   *[]int64  `json:"itemIds,omitempty"`
	PortIds   *[]int64  `json:"portIds,omitempty"`
	ItemNames *[]string `json:"itemNames,omitempty"`
	PortNames *[]string `json:"portNames,omitempty"`
	TopN      *int      `json:"topN,omitempty"`
}

// RankingRow is one vendor's placement for one delivery port.
type RankingRow struct {
	Port        string `json:"port"`
	Items       string `json:"items"`
	VendorName  string `json:"vendorName"`
	VendorId    string `json:"vendorId"`
	TotalOrders int64  `json:"totalOrders"`
	Breakdown   string `json:"breakdown"`
}

type VendorRankingResponse struct {
	Rows    []RankingRow `json:"rows"`
	Message *string      `json:"message,omitempty"`
}

// WarehouseStatus reports the remote warehouse state as last observed.
type WarehouseStatus struct {
	State      string    `json:"state"`
	ObservedAt time.Time `json:"observedAt"`
}

// QueryRecord is one entry of the local query history.
type QueryRecord struct {
	Id         string    `json:"id"`
	Sql        string    `json:"sql"`
	Outcome    string    `json:"outcome"`
	RowCount   int       `json:"rowCount"`
	DurationMs int64     `json:"durationMs"`
	Error      *string   `json:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type QueryListResponse struct {
	Total   int           `json:"total"`
	Queries []QueryRecord `json:"queries"`
}

type Health struct {
	Status string `json:"status"`
}

// ListQueriesParams carries the query-string filters of GET /queries.
type ListQueriesParams struct {
	Outcome *string `form:"outcome"`
	Limit   *int    `form:"limit"`
	Offset  *int    `form:"offset"`
}
