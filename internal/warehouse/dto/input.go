package dto

type AddWarehouseInput struct {
	WarehouseName string `json:"warehouseName"`
	WarehouseCode string `json:"warehouseCode"`
	Address       string `json:"address"`
	Manager       string `json:"manager"`
	ContactEmail  string `json:"contactEmail"`
	Region        string `json:"region"`
	Status        string `json:"status"`
}

// UpdateWarehouseInput is a patch: nil fields are left unchanged.
type UpdateWarehouseInput struct {
	WarehouseName *string `json:"warehouseName"`
	WarehouseCode *string `json:"warehouseCode"`
	Address       *string `json:"address"`
	Manager       *string `json:"manager"`
	ContactEmail  *string `json:"contactEmail"`
	Region        *string `json:"region"`
	Status        *string `json:"status"`
}
