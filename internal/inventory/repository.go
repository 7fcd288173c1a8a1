package inventory

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

type Repository interface {
	// Inventory items, always scoped to the owning user
	FindByID(ctx context.Context, userID, id int64) (*model.Inventory, error)
	FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error)
	ExistsSKU(ctx context.Context, userID int64, sku string, excludeID int64) (bool, error)

	Create(ctx context.Context, inv *model.Inventory) error
	Update(ctx context.Context, inv *model.Inventory) error
	Delete(ctx context.Context, id int64) error

	// Bulk removal for cascading deletes
	DeleteByStorageLocation(ctx context.Context, storageLocationID int64) (int64, error)
	DeleteByWarehouse(ctx context.Context, warehouseID int64) (int64, error)
}
