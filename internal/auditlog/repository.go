package auditlog

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	FindAll(ctx context.Context, filters *dto.AuditLogFilters) ([]model.AuditLog, error)
}
