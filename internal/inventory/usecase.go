package inventory

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

type UseCase interface {
	AddInventory(ctx context.Context, userID int64, items []dto.InventoryInput) ([]dto.AddedInventory, error)
	UpdateInventory(ctx context.Context, userID, id int64, input *dto.UpdateInventoryInput) (*model.Inventory, error)
	DeleteInventory(ctx context.Context, userID, id int64) (*dto.DeletedInventory, error)

	GetInventory(ctx context.Context, userID, id int64) (*model.Inventory, error)
	ListInventories(ctx context.Context, userID int64) ([]model.Inventory, error)
	ListLowStock(ctx context.Context, userID int64) ([]model.Inventory, error)
	SearchInventories(ctx context.Context, userID int64, term string) ([]model.Inventory, error)
}
