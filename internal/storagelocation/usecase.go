package storagelocation

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/dto"
)

type UseCase interface {
	AddStorageLocations(ctx context.Context, userID int64, inputs []dto.AddStorageLocationInput) ([]model.StorageLocation, error)
	DeleteStorageLocation(ctx context.Context, userID, id int64) (*dto.DeletedStorageLocation, error)

	ListStorageLocations(ctx context.Context, userID int64) ([]model.StorageLocation, error)
	ListByWarehouseName(ctx context.Context, userID int64, warehouseName string) ([]model.StorageLocation, error)
	Search(ctx context.Context, userID int64, term string) ([]model.StorageLocation, error)
	ListOrdered(ctx context.Context, userID int64, orderBy string) ([]model.StorageLocation, error)
	CapacityStats(ctx context.Context, userID int64) (*model.CapacityStats, error)
}
