package model

import "time"

type StorageLocation struct {
	ID               int64     `db:"id" json:"id"`
	LocationCode     string    `db:"location_code" json:"location_code"`
	SectionName      string    `db:"section_name" json:"section_name"`
	StorageType      string    `db:"storage_type" json:"storage_type"`
	UnitType         string    `db:"unit_type" json:"unit_type"`
	MaxCapacity      int       `db:"max_capacity" json:"max_capacity"`
	OccupiedCapacity int       `db:"occupied_capacity" json:"occupied_capacity"`
	WarehouseID      int64     `db:"warehouse_id" json:"warehouse_id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	WarehouseName    string    `db:"warehouse_name" json:"warehouse_name"` // Joined
}

// AvailableCapacity never goes below zero.
func (s *StorageLocation) AvailableCapacity() int {
	if s.OccupiedCapacity >= s.MaxCapacity {
		return 0
	}
	return s.MaxCapacity - s.OccupiedCapacity
}

// CapacityStats aggregates every storage location owned by one user.
type CapacityStats struct {
	TotalLocations      int `db:"total_locations" json:"total_locations"`
	TotalCapacity       int `db:"total_capacity" json:"total_capacity"`
	TotalOccupied       int `db:"total_occupied" json:"total_occupied"`
	CapacityAlerts      int `db:"capacity_alerts" json:"capacity_alerts"`
	AverageUtilization  int `db:"-" json:"average_utilization"`
	AvailableSpace      int `db:"-" json:"available_space"`
	TotalAvailableSpace int `db:"-" json:"total_available_space"`
}
