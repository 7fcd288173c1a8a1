package purchaseorder

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, userID, id int64) (*model.PurchaseOrder, error)
	FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.PurchaseOrder, error)
	FindByStatus(ctx context.Context, userID int64, status string) ([]model.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string) error

	// FindAuditTrail joins the user's purchase order audit entries with the orders they touched.
	FindAuditTrail(ctx context.Context, userID int64) ([]model.PurchaseOrderAudit, error)
}
