package stockmovement

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

type UseCase interface {
	ListMovements(ctx context.Context, userID int64) ([]model.StockMovement, error)
	ListRecentMovements(ctx context.Context, userID int64, limit int) ([]model.StockMovement, error)
}
