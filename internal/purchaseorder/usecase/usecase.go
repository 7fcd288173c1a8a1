package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder"
	"github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/broker"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const eventPurchaseOrderDelivered = "PurchaseOrderDelivered"

// Accepted layouts for order dates, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "02/01/2006"}

type purchaseOrderUseCase struct {
	store    store.Gateway
	producer *broker.KafkaProducer
	logger   logger.ZapLogger
}

func NewPurchaseOrderUseCase(st store.Gateway, producer *broker.KafkaProducer, log logger.ZapLogger) purchaseorder.UseCase {
	return &purchaseOrderUseCase{
		store:    st,
		producer: producer,
		logger:   log,
	}
}

func (uc *purchaseOrderUseCase) AddPurchaseOrder(ctx context.Context, userID int64, input *dto.AddPurchaseOrderInput) (*model.PurchaseOrder, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	po, err := buildOrder(userID, input)
	if err != nil {
		return nil, err
	}

	err = uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		po.ID = 0
		if err := repos.PurchaseOrders().Create(ctx, po); err != nil {
			return err
		}
		return auditlog.NewRecorder(repos.AuditLogs()).Record(ctx,
			model.AuditActionCreate, model.TablePurchaseOrders, po.ID, userID,
			auditlog.WithNewValue(po.Status))
	})
	if err != nil {
		return nil, uc.fail("add purchase order", userID, err)
	}

	uc.logger.Info("purchase order created", zap.Int64("purchase_order_id", po.ID), zap.Int("items", len(po.Items)))
	return po, nil
}

func buildOrder(userID int64, in *dto.AddPurchaseOrderInput) (*model.PurchaseOrder, error) {
	if in == nil {
		return nil, apperror.Validation("purchase order input is required")
	}
	if strings.TrimSpace(in.SupplierName) == "" {
		return nil, apperror.Validation("supplier name is required")
	}
	if len(in.Items) == 0 {
		return nil, apperror.Validation("a purchase order needs at least one item")
	}

	orderDate, err := parseDate("orderDate", in.OrderDate)
	if err != nil {
		return nil, err
	}
	expected, err := parseDate("expectedDeliveryDate", in.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}

	po := &model.PurchaseOrder{
		PurchaseOrderNumber:  in.PurchaseOrderNumber,
		SupplierID:           in.SupplierID,
		SupplierName:         strings.TrimSpace(in.SupplierName),
		DeliveryWarehouse:    in.DeliveryWarehouse,
		OrderDate:            orderDate,
		ExpectedDeliveryDate: expected,
		Status:               model.PurchaseOrderPending,
		Notes:                in.Notes,
		TotalAmount:          model.RoundMoney(in.TotalAmount),
		UserID:               userID,
	}

	sum := decimal.Zero
	for _, item := range in.Items {
		switch {
		case strings.TrimSpace(item.ProductName) == "":
			return nil, apperror.Validation("item product name is required")
		case item.Quantity < 0:
			return nil, apperror.Validation("item quantity cannot be negative")
		case item.Price.IsNegative():
			return nil, apperror.Validation("item price cannot be negative")
		}
		price := model.RoundMoney(item.Price)
		po.Items = append(po.Items, model.PurchaseOrderItem{
			ProductName: strings.TrimSpace(item.ProductName),
			Price:       price,
			Quantity:    item.Quantity,
		})
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if po.TotalAmount.IsNegative() {
		return nil, apperror.Validation("total amount cannot be negative")
	}
	if po.TotalAmount.IsZero() {
		po.TotalAmount = sum
	}
	return po, nil
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.Validation("%s '%s' is not a valid date", field, value)
}

// ChangeStatus moves an order from Pending to Delivered. Any other transition is rejected.
func (uc *purchaseOrderUseCase) ChangeStatus(ctx context.Context, userID, id int64, status string) (*model.PurchaseOrder, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	status = strings.TrimSpace(status)

	var updated *model.PurchaseOrder
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		po, err := repos.PurchaseOrders().FindByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if po == nil {
			return apperror.NotFoundOrForbidden("purchase order", id)
		}
		if po.Status == status {
			return apperror.Validation("purchase order is already %s", status)
		}
		if po.Status != model.PurchaseOrderPending || status != model.PurchaseOrderDelivered {
			return apperror.Validation("cannot change purchase order status from %s to %s", po.Status, status)
		}

		if err := repos.PurchaseOrders().UpdateStatus(ctx, po.ID, status); err != nil {
			return err
		}
		err = auditlog.NewRecorder(repos.AuditLogs()).Record(ctx,
			model.AuditActionUpdate, model.TablePurchaseOrders, po.ID, userID,
			auditlog.WithOldValue(po.Status),
			auditlog.WithNewValue(status),
		)
		if err != nil {
			return err
		}

		po.Status = status
		updated = po
		return nil
	})
	if err != nil {
		return nil, uc.fail("change purchase order status", userID, err)
	}

	uc.publishDelivered(updated)
	return updated, nil
}

func (uc *purchaseOrderUseCase) publishDelivered(po *model.PurchaseOrder) {
	if uc.producer == nil {
		return
	}
	event := broker.NewEvent(eventPurchaseOrderDelivered, po)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		key := "purchase_order:" + strconv.FormatInt(po.ID, 10)
		if err := uc.producer.Publish(ctx, key, event); err != nil {
			uc.logger.Error("failed to publish purchase order event", zap.Int64("purchase_order_id", po.ID), zap.Error(err))
		}
	}()
}

func (uc *purchaseOrderUseCase) GetPurchaseOrder(ctx context.Context, userID, id int64) (*model.PurchaseOrder, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	po, err := uc.store.Repositories().PurchaseOrders().FindByID(ctx, userID, id)
	if err != nil {
		uc.logger.Error("failed to get purchase order", zap.Int64("purchase_order_id", id), zap.Error(err))
		return nil, err
	}
	if po == nil {
		return nil, apperror.NotFoundOrForbidden("purchase order", id)
	}
	return po, nil
}

func (uc *purchaseOrderUseCase) ListPending(ctx context.Context, userID int64) ([]model.PurchaseOrder, error) {
	return uc.listByStatus(ctx, userID, model.PurchaseOrderPending)
}

func (uc *purchaseOrderUseCase) ListDelivered(ctx context.Context, userID int64) ([]model.PurchaseOrder, error) {
	return uc.listByStatus(ctx, userID, model.PurchaseOrderDelivered)
}

func (uc *purchaseOrderUseCase) listByStatus(ctx context.Context, userID int64, status string) ([]model.PurchaseOrder, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	orders, err := uc.store.Repositories().PurchaseOrders().FindByStatus(ctx, userID, status)
	if err != nil {
		uc.logger.Error("failed to list purchase orders", zap.String("status", status), zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (uc *purchaseOrderUseCase) ListAuditTrail(ctx context.Context, userID int64) ([]model.PurchaseOrderAudit, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	rows, err := uc.store.Repositories().PurchaseOrders().FindAuditTrail(ctx, userID)
	if err != nil {
		uc.logger.Error("failed to list purchase order audit trail", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (uc *purchaseOrderUseCase) fail(op string, userID int64, err error) error {
	if appErr, ok := apperror.As(err); ok {
		uc.logger.Debug(op+" rejected", zap.Int64("user_id", userID), zap.String("kind", string(appErr.Kind)))
		return appErr
	}
	uc.logger.Error("failed to "+op, zap.Int64("user_id", userID), zap.Error(err))
	return err
}
