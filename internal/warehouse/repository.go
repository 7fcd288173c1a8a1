package warehouse

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	FindByID(ctx context.Context, userID, id int64) (*model.Warehouse, error)
	FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.Warehouse, error)
	FindAll(ctx context.Context, userID int64) ([]model.Warehouse, error)
	GetSummary(ctx context.Context, userID, id int64) (*model.WarehouseSummary, error)
	Update(ctx context.Context, w *model.Warehouse) error
	Delete(ctx context.Context, id int64) (int64, error)
}
