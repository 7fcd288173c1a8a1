package model

import "time"

const (
	MovementInbound  = "Inbound"
	MovementOutbound = "Outbound"
)

// StockMovement rows are append-only.
type StockMovement struct {
	ID                int64     `db:"id"`
	ItemSKU           string    `db:"item_sku"`
	ProductName       string    `db:"product_name"`
	Quantity          int       `db:"quantity"`
	Type              string    `db:"type"`
	WarehouseLocation string    `db:"warehouse_location"`
	UserID            int64     `db:"user_id"`
	Timestamp         time.Time `db:"timestamp"`
	UserName          string    `db:"user_name"` // Joined
}
