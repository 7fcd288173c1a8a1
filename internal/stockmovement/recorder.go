package stockmovement

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

// Recorder appends ledger entries in the unit of work its repository belongs to.
type Recorder struct {
	repo Repository
	now  func() time.Time
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

func (r *Recorder) Inbound(ctx context.Context, item *model.Inventory, quantity int, userID int64) error {
	return r.record(ctx, item, quantity, model.MovementInbound, userID)
}

func (r *Recorder) Outbound(ctx context.Context, item *model.Inventory, quantity int, userID int64) error {
	return r.record(ctx, item, quantity, model.MovementOutbound, userID)
}

// Delta records the signed quantity change as an inbound or outbound entry. Zero is a no-op.
func (r *Recorder) Delta(ctx context.Context, item *model.Inventory, delta int, userID int64) error {
	switch {
	case delta > 0:
		return r.Inbound(ctx, item, delta, userID)
	case delta < 0:
		return r.Outbound(ctx, item, -delta, userID)
	}
	return nil
}

func (r *Recorder) record(ctx context.Context, item *model.Inventory, quantity int, movementType string, userID int64) error {
	return r.repo.Create(ctx, &model.StockMovement{
		ItemSKU:           item.ItemSKU,
		ProductName:       item.ProductName,
		Quantity:          quantity,
		Type:              movementType,
		WarehouseLocation: item.WarehouseLocation,
		UserID:            userID,
		Timestamp:         r.now().UTC(),
	})
}
