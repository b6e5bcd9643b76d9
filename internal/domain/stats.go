package domain

// SummaryStats are the admin dashboard totals. Revenue sums the price field
// across payment documents as stored, not per-item totals.
type SummaryStats struct {
	Users    int64   `json:"users"`
	MenuItem int64   `json:"menuItem"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// CategoryOrderStat is one row of the per-category order aggregation.
// Revenue sums the current menu price of each ordered item, so catalog
// price changes are reflected retroactively.
type CategoryOrderStat struct {
	Category string  `bson:"category" json:"category"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}
