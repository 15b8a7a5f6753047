package models

// Row is one decoded result record. Values are untyped at this layer; the
// consumer coerces each column as needed.
type Row []any

// VendorAggregate is the running tally for one (port, vendor) pair during a
// single ranking pass.
//
// TotalCount always equals the sum of PerItemCount values. It is recomputed
// from the map on every addition and must never be incremented independently,
// so rows repeating the same (port, item, vendor) combination cannot double
// the total.
type VendorAggregate struct {
	VendorID     string
	VendorName   string
	PerItemCount map[string]int64
	TotalCount   int64
}

func NewVendorAggregate(vendorID, vendorName string) *VendorAggregate {
	return &VendorAggregate{
		VendorID:     vendorID,
		VendorName:   vendorName,
		PerItemCount: make(map[string]int64),
	}
}

// AddItemCount adds a row's count into the per-item map and recomputes the
// total from the map.
func (a *VendorAggregate) AddItemCount(item string, count int64) {
	a.PerItemCount[item] += count

	var total int64
	for _, c := range a.PerItemCount {
		total += c
	}
	a.TotalCount = total
}

// RankingRow is one (port, selected vendor) line of a ranking result.
type RankingRow struct {
	Port        string
	Items       string
	VendorName  string
	VendorID    string
	TotalOrders int64
	Breakdown   string
}
