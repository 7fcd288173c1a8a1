package dto

type AddStorageLocationInput struct {
	LocationCode string `json:"locationCode"`
	SectionName  string `json:"sectionName"`
	StorageType  string `json:"storageType"`
	MaxCapacity  int    `json:"maxCapacity"`
	UnitType     string `json:"unitType"`
	WarehouseID  int64  `json:"warehouseId"`
}
