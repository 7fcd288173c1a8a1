package usecase

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/stockmovement"
	"github.com/fekuna/omnipos-warehouse-service/internal/stockmovement/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type stockMovementUseCase struct {
	repo   stockmovement.Repository
	logger logger.ZapLogger
}

func NewStockMovementUseCase(repo stockmovement.Repository, log logger.ZapLogger) stockmovement.UseCase {
	return &stockMovementUseCase{repo: repo, logger: log}
}

func (uc *stockMovementUseCase) ListMovements(ctx context.Context, userID int64) ([]model.StockMovement, error) {
	return uc.list(ctx, &dto.MovementFilters{UserID: userID})
}

func (uc *stockMovementUseCase) ListRecentMovements(ctx context.Context, userID int64, limit int) ([]model.StockMovement, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return uc.list(ctx, &dto.MovementFilters{UserID: userID, Limit: limit})
}

func (uc *stockMovementUseCase) list(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, error) {
	if f.UserID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	items, err := uc.repo.FindAll(ctx, f)
	if err != nil {
		uc.logger.Error("failed to list stock movements", zap.Int64("user_id", f.UserID), zap.Error(err))
		return nil, err
	}
	return items, nil
}
