package stockmovement

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/stockmovement/dto"
)

type Repository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	FindAll(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, error)
}
