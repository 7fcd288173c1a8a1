package usecase

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"go.uber.org/zap"
)

type auditLogUseCase struct {
	repo   auditlog.Repository
	logger logger.ZapLogger
}

func NewAuditLogUseCase(repo auditlog.Repository, log logger.ZapLogger) auditlog.UseCase {
	return &auditLogUseCase{repo: repo, logger: log}
}

func (uc *auditLogUseCase) ListAuditLogs(ctx context.Context, userID int64) ([]model.AuditLog, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	logs, err := uc.repo.FindAll(ctx, &dto.AuditLogFilters{UserID: userID})
	if err != nil {
		uc.logger.Error("failed to list audit logs", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return logs, nil
}
