package warehouse

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse/dto"
)

type UseCase interface {
	AddWarehouses(ctx context.Context, userID int64, inputs []dto.AddWarehouseInput) ([]model.Warehouse, error)
	UpdateWarehouse(ctx context.Context, userID, id int64, input *dto.UpdateWarehouseInput) (*model.Warehouse, error)
	DeleteWarehouse(ctx context.Context, userID, id int64) (*dto.DeletedWarehouse, error)

	ListWarehouses(ctx context.Context, userID int64) ([]model.Warehouse, error)
	GetWarehouse(ctx context.Context, userID, id int64) (*model.WarehouseSummary, error)
}
