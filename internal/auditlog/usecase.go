package auditlog

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

type UseCase interface {
	ListAuditLogs(ctx context.Context, userID int64) ([]model.AuditLog, error)
}
