package domain

import "time"

// PlanEntry is one sales-plan figure for a shop: a planned quantity for a
// SKU in a calendar month. Entries are keyed by (shop, sku, month) and
// upserted as planners revise figures.
type PlanEntry struct {
	ShopID    int64     `json:"shop_id"`
	SKU       string    `json:"sku"`
	Month     string    `json:"month"` // YYYY-MM
	Quantity  int64     `json:"quantity"`
	UpdatedBy int64     `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}
