package dto

// DeletedWarehouse reports how many dependent rows went with the warehouse.
type DeletedWarehouse struct {
	ID                 int64
	WarehouseName      string
	InventoriesDeleted int64
	LocationsDeleted   int64
}
