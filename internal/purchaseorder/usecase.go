package purchaseorder

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder/dto"
)

type UseCase interface {
	AddPurchaseOrder(ctx context.Context, userID int64, input *dto.AddPurchaseOrderInput) (*model.PurchaseOrder, error)
	ChangeStatus(ctx context.Context, userID, id int64, status string) (*model.PurchaseOrder, error)

	GetPurchaseOrder(ctx context.Context, userID, id int64) (*model.PurchaseOrder, error)
	ListPending(ctx context.Context, userID int64) ([]model.PurchaseOrder, error)
	ListDelivered(ctx context.Context, userID int64) ([]model.PurchaseOrder, error)
	ListAuditTrail(ctx context.Context, userID int64) ([]model.PurchaseOrderAudit, error)
}
