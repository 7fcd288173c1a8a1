package dto

const (
	OrderByUtilization = "utilization"
	OrderByCapacity    = "capacity"
)

type StorageLocationFilters struct {
	UserID        int64
	WarehouseName string
	Search        string // Lower-cased substring over location code and warehouse name
	OrderBy       string
}

type DeletedStorageLocation struct {
	ID                 int64
	LocationCode       string
	InventoriesDeleted int64
}
