package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Inventory struct {
	ID                int64           `db:"id" json:"id"`
	ItemSKU           string          `db:"item_sku" json:"item_sku"`
	ProductName       string          `db:"product_name" json:"product_name"`
	Category          string          `db:"category" json:"category"`
	WarehouseLocation string          `db:"warehouse_location" json:"warehouse_location"`
	RackLocation      string          `db:"rack_location" json:"rack_location"`
	QuantityInStock   int             `db:"quantity_in_stock" json:"quantity_in_stock"`
	ReorderLevel      int             `db:"reorder_level" json:"reorder_level"`
	UnitOfMeasure     string          `db:"unit_of_measure" json:"unit_of_measure"`
	CostPerUnit       decimal.Decimal `db:"cost_per_unit" json:"cost_per_unit"`
	TotalValue        decimal.Decimal `db:"total_value" json:"total_value"`
	LastRestocked     time.Time       `db:"last_restocked" json:"last_restocked"`
	StorageLocationID *int64          `db:"storage_location_id" json:"storage_location_id"` // Nullable
	UserID            int64           `db:"user_id" json:"user_id"`
}

// RecomputeTotalValue rounds the unit cost to the stored scale and keeps
// total_value equal to quantity times that cost.
func (i *Inventory) RecomputeTotalValue() {
	i.CostPerUnit = RoundMoney(i.CostPerUnit)
	i.TotalValue = i.CostPerUnit.Mul(decimal.NewFromInt(int64(i.QuantityInStock)))
}
