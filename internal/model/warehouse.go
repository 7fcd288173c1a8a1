package model

import "time"

type Warehouse struct {
	ID                int64     `db:"id" json:"id"`
	WarehouseName     string    `db:"warehouse_name" json:"warehouse_name"`
	WarehouseCode     string    `db:"warehouse_code" json:"warehouse_code"`
	Address           string    `db:"address" json:"address"`
	Manager           string    `db:"manager" json:"manager"`
	ContactEmail      string    `db:"contact_email" json:"contact_email"`
	Region            string    `db:"region" json:"region"`
	Status            string    `db:"status" json:"status"`
	CreatedByUserID   int64     `db:"created_by_user_id" json:"created_by_user_id"`
	CreatedByLastName string    `db:"created_by_last_name" json:"created_by_last_name"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// WarehouseSummary is a warehouse with figures aggregated from its storage locations.
type WarehouseSummary struct {
	Warehouse
	TotalProducts       int `db:"total_products"`
	AvailableSectors    int `db:"available_sectors"`
	MaxCapacity         int `db:"max_capacity"`
	OccupiedCapacity    int `db:"occupied_capacity"`
	CapacityUtilization int `db:"-"`
}
