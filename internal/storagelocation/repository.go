package storagelocation

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/dto"
)

type Repository interface {
	Create(ctx context.Context, loc *model.StorageLocation) error
	FindByID(ctx context.Context, userID, id int64) (*model.StorageLocation, error)
	FindAll(ctx context.Context, filters *dto.StorageLocationFilters) ([]model.StorageLocation, error)
	GetStats(ctx context.Context, userID int64) (*model.CapacityStats, error)

	// Capacity bookkeeping; the lookups lock the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.StorageLocation, error)
	FindBySectionForUpdate(ctx context.Context, userID int64, sectionName string) (*model.StorageLocation, error)
	UpdateOccupiedCapacity(ctx context.Context, id int64, occupied int) error

	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByWarehouse(ctx context.Context, warehouseID int64) (int64, error)
}
