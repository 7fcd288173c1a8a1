package dto

import "github.com/shopspring/decimal"

type InventoryInput struct {
	ItemSKU           string          `json:"itemSKU"`
	ProductName       string          `json:"productName"`
	Category          string          `json:"category"`
	WarehouseLocation string          `json:"warehouseLocation"`
	RackLocation      string          `json:"rackLocation"`
	QuantityInStock   int             `json:"quantityInStock"`
	ReorderLevel      int             `json:"reorderLevel"`
	UnitOfMeasure     string          `json:"unitOfMeasure"`
	CostPerUnit       decimal.Decimal `json:"costPerUnit"`
}

// UpdateInventoryInput is a patch: nil means leave the field unchanged.
type UpdateInventoryInput struct {
	ItemSKU           *string          `json:"itemSKU"`
	ProductName       *string          `json:"productName"`
	Category          *string          `json:"category"`
	WarehouseLocation *string          `json:"warehouseLocation"`
	RackLocation      *string          `json:"rackLocation"`
	QuantityInStock   *int             `json:"quantityInStock"`
	ReorderLevel      *int             `json:"reorderLevel"`
	UnitOfMeasure     *string          `json:"unitOfMeasure"`
	CostPerUnit       *decimal.Decimal `json:"costPerUnit"`
}
