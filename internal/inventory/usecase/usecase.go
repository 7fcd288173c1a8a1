package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/stockmovement"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/broker"
	"github.com/fekuna/omnipos-warehouse-service/pkg/database"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/fekuna/omnipos-warehouse-service/pkg/search"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "inventory-usecase"

type inventoryUseCase struct {
	store    store.Gateway
	es       *search.Client
	producer *broker.KafkaProducer
	esIndex  string
	logger   logger.ZapLogger

	tracer     trace.Tracer
	rejections metric.Int64Counter
	now        func() time.Time
}

// NewInventoryUseCase builds the inventory workflow. es and producer are optional.
func NewInventoryUseCase(st store.Gateway, es *search.Client, producer *broker.KafkaProducer, esIndex string, log logger.ZapLogger) inventory.UseCase {
	rejections, err := otel.Meter(instrumentationName).Int64Counter("inventory.capacity_rejections",
		metric.WithDescription("Inventory mutations rejected because a storage location was full"),
	)
	if err != nil {
		log.Warn("failed to create capacity rejection counter", zap.Error(err))
	}
	return &inventoryUseCase{
		store:      st,
		es:         es,
		producer:   producer,
		esIndex:    esIndex,
		logger:     log,
		tracer:     otel.Tracer(instrumentationName),
		rejections: rejections,
		now:        time.Now,
	}
}

func (uc *inventoryUseCase) AddInventory(ctx context.Context, userID int64, items []dto.InventoryInput) ([]dto.AddedInventory, error) {
	ctx, span := uc.tracer.Start(ctx, "AddInventory", trace.WithAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int("items", len(items)),
	))
	defer span.End()

	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if len(items) == 0 {
		return nil, apperror.Validation("at least one inventory item is required")
	}

	var created []*model.Inventory
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		// Execute may run this more than once.
		created = created[:0]

		invRepo := repos.Inventories()
		capacity := newCapacityBatch(repos.StorageLocations(), userID)
		seen := make(map[string]struct{}, len(items))
		now := uc.now().UTC()

		for i := range items {
			in := &items[i]
			if err := validateInput(in); err != nil {
				return err
			}

			sku := strings.TrimSpace(in.ItemSKU)
			if _, dup := seen[sku]; dup {
				return apperror.DuplicateSKU(sku)
			}
			exists, err := invRepo.ExistsSKU(ctx, userID, sku, 0)
			if err != nil {
				return err
			}
			if exists {
				return apperror.DuplicateSKU(sku)
			}
			seen[sku] = struct{}{}

			inv := &model.Inventory{
				ItemSKU:           sku,
				ProductName:       strings.TrimSpace(in.ProductName),
				Category:          in.Category,
				WarehouseLocation: in.WarehouseLocation,
				RackLocation:      strings.TrimSpace(in.RackLocation),
				QuantityInStock:   in.QuantityInStock,
				ReorderLevel:      in.ReorderLevel,
				UnitOfMeasure:     in.UnitOfMeasure,
				CostPerUnit:       in.CostPerUnit,
				LastRestocked:     now,
				UserID:            userID,
			}
			inv.RecomputeTotalValue()

			if inv.RackLocation != "" {
				loc, err := capacity.reserve(ctx, inv.RackLocation, inv.QuantityInStock)
				if err != nil {
					return err
				}
				if loc != nil {
					locID := loc.ID
					inv.StorageLocationID = &locID
				}
			}
			created = append(created, inv)
		}

		for _, inv := range created {
			if err := invRepo.Create(ctx, inv); err != nil {
				if database.IsUniqueViolation(err) {
					return apperror.DuplicateSKU(inv.ItemSKU)
				}
				return err
			}
		}
		if err := capacity.flush(ctx); err != nil {
			return err
		}

		audit := auditlog.NewRecorder(repos.AuditLogs())
		movements := stockmovement.NewRecorder(repos.StockMovements())
		for _, inv := range created {
			err := audit.Record(ctx, model.AuditActionAdd, model.TableInventories, inv.ID, userID,
				auditlog.WithNewValue(strconv.Itoa(inv.QuantityInStock)))
			if err != nil {
				return err
			}
			if err := movements.Inbound(ctx, inv, inv.QuantityInStock, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, span, "add inventory", userID, err)
	}

	added := make([]dto.AddedInventory, 0, len(created))
	for _, inv := range created {
		added = append(added, dto.AddedInventory{
			ID:          inv.ID,
			ProductName: inv.ProductName,
			Quantity:    inv.QuantityInStock,
			UserID:      inv.UserID,
		})
		uc.afterWrite(eventInventoryAdded, inv)
	}

	uc.logger.Info("inventory added", zap.Int64("user_id", userID), zap.Int("count", len(added)))
	return added, nil
}

func (uc *inventoryUseCase) UpdateInventory(ctx context.Context, userID, id int64, input *dto.UpdateInventoryInput) (*model.Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "UpdateInventory", trace.WithAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("inventory_id", id),
	))
	defer span.End()

	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if input == nil {
		input = &dto.UpdateInventoryInput{}
	}

	var updated *model.Inventory
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		inv, err := repos.Inventories().FindByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFoundOrForbidden("inventory", id)
		}

		before := *inv
		applyPatch(inv, input)
		if err := validateItem(inv); err != nil {
			return err
		}

		if inv.ItemSKU != before.ItemSKU {
			exists, err := repos.Inventories().ExistsSKU(ctx, userID, inv.ItemSKU, inv.ID)
			if err != nil {
				return err
			}
			if exists {
				return apperror.DuplicateSKU(inv.ItemSKU)
			}
		}

		inv.RecomputeTotalValue()

		delta := inv.QuantityInStock - before.QuantityInStock
		if delta != 0 && inv.StorageLocationID != nil {
			if err := adjustOccupied(ctx, repos, userID, *inv.StorageLocationID, delta); err != nil {
				return err
			}
		}
		if delta > 0 {
			inv.LastRestocked = uc.now().UTC()
		}

		if err := repos.Inventories().Update(ctx, inv); err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.DuplicateSKU(inv.ItemSKU)
			}
			return err
		}

		err = auditlog.NewRecorder(repos.AuditLogs()).Record(ctx,
			model.AuditActionUpdate, model.TableInventories, inv.ID, userID,
			auditlog.WithOldValue(strconv.Itoa(before.QuantityInStock)),
			auditlog.WithNewValue(strconv.Itoa(inv.QuantityInStock)),
		)
		if err != nil {
			return err
		}
		if err := stockmovement.NewRecorder(repos.StockMovements()).Delta(ctx, inv, delta, userID); err != nil {
			return err
		}

		updated = inv
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, span, "update inventory", userID, err)
	}

	uc.afterWrite(eventInventoryUpdated, updated)
	return updated, nil
}

// adjustOccupied applies a quantity delta to the item's storage location,
// refusing growth past max capacity and clamping shrinkage at zero.
func adjustOccupied(ctx context.Context, repos store.Repositories, userID, locationID int64, delta int) error {
	loc, err := repos.StorageLocations().FindByIDForUpdate(ctx, userID, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return nil
	}

	occupied := loc.OccupiedCapacity + delta
	if delta > 0 && occupied > loc.MaxCapacity {
		return apperror.CapacityExceeded(loc.SectionName, occupied-loc.MaxCapacity, loc.AvailableCapacity()).
			With("location_id", loc.ID)
	}
	if occupied < 0 {
		occupied = 0
	}
	return repos.StorageLocations().UpdateOccupiedCapacity(ctx, loc.ID, occupied)
}

func (uc *inventoryUseCase) DeleteInventory(ctx context.Context, userID, id int64) (*dto.DeletedInventory, error) {
	ctx, span := uc.tracer.Start(ctx, "DeleteInventory", trace.WithAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("inventory_id", id),
	))
	defer span.End()

	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if id <= 0 {
		return nil, apperror.Validation("inventory id must be positive")
	}

	var removed *model.Inventory
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		inv, err := repos.Inventories().FindByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFoundOrForbidden("inventory", id)
		}

		if inv.StorageLocationID != nil && inv.QuantityInStock != 0 {
			if err := adjustOccupied(ctx, repos, userID, *inv.StorageLocationID, -inv.QuantityInStock); err != nil {
				return err
			}
		}

		if err := repos.Inventories().Delete(ctx, inv.ID); err != nil {
			return err
		}

		err = auditlog.NewRecorder(repos.AuditLogs()).Record(ctx,
			model.AuditActionDelete, model.TableInventories, inv.ID, userID,
			auditlog.WithDeletedValue(inv.ItemSKU),
		)
		if err != nil {
			return err
		}
		if inv.QuantityInStock > 0 {
			if err := stockmovement.NewRecorder(repos.StockMovements()).Outbound(ctx, inv, inv.QuantityInStock, userID); err != nil {
				return err
			}
		}

		removed = inv
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, span, "delete inventory", userID, err)
	}

	uc.afterWrite(eventInventoryDeleted, removed)
	return &dto.DeletedInventory{ID: removed.ID, ItemSKU: removed.ItemSKU}, nil
}

func (uc *inventoryUseCase) GetInventory(ctx context.Context, userID, id int64) (*model.Inventory, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	inv, err := uc.store.Repositories().Inventories().FindByID(ctx, userID, id)
	if err != nil {
		uc.logger.Error("failed to get inventory", zap.Int64("inventory_id", id), zap.Error(err))
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NotFoundOrForbidden("inventory", id)
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListInventories(ctx context.Context, userID int64) ([]model.Inventory, error) {
	return uc.list(ctx, &dto.InventoryFilters{UserID: userID})
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, userID int64) ([]model.Inventory, error) {
	return uc.list(ctx, &dto.InventoryFilters{UserID: userID, LowStock: true})
}

func (uc *inventoryUseCase) list(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, error) {
	if f.UserID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	items, err := uc.store.Repositories().Inventories().FindAll(ctx, f)
	if err != nil {
		uc.logger.Error("failed to list inventories", zap.Int64("user_id", f.UserID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

// fail records err on the span and logs it at a level matching its kind.
func (uc *inventoryUseCase) fail(ctx context.Context, span trace.Span, op string, userID int64, err error) error {
	span.RecordError(err)

	appErr, ok := apperror.As(err)
	if !ok {
		span.SetStatus(codes.Error, err.Error())
		uc.logger.Error("failed to "+op, zap.Int64("user_id", userID), zap.Error(err))
		return err
	}

	if appErr.Kind == apperror.KindCapacityExceeded && uc.rejections != nil {
		uc.rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
	uc.logger.Debug(op+" rejected",
		zap.Int64("user_id", userID),
		zap.String("kind", string(appErr.Kind)),
		zap.String("reason", appErr.Message),
	)
	return appErr
}

func validateInput(in *dto.InventoryInput) error {
	switch {
	case strings.TrimSpace(in.ItemSKU) == "":
		return apperror.Validation("item SKU is required")
	case strings.TrimSpace(in.ProductName) == "":
		return apperror.Validation("product name is required")
	case in.QuantityInStock < 0:
		return apperror.Validation("quantity in stock cannot be negative")
	case in.CostPerUnit.IsNegative():
		return apperror.Validation("cost per unit cannot be negative")
	}
	return nil
}

func validateItem(inv *model.Inventory) error {
	return validateInput(&dto.InventoryInput{
		ItemSKU:         inv.ItemSKU,
		ProductName:     inv.ProductName,
		QuantityInStock: inv.QuantityInStock,
		CostPerUnit:     inv.CostPerUnit,
	})
}

func applyPatch(inv *model.Inventory, p *dto.UpdateInventoryInput) {
	if p.ItemSKU != nil {
		inv.ItemSKU = strings.TrimSpace(*p.ItemSKU)
	}
	if p.ProductName != nil {
		inv.ProductName = strings.TrimSpace(*p.ProductName)
	}
	if p.Category != nil {
		inv.Category = *p.Category
	}
	if p.WarehouseLocation != nil {
		inv.WarehouseLocation = *p.WarehouseLocation
	}
	if p.RackLocation != nil {
		inv.RackLocation = strings.TrimSpace(*p.RackLocation)
	}
	if p.QuantityInStock != nil {
		inv.QuantityInStock = *p.QuantityInStock
	}
	if p.ReorderLevel != nil {
		inv.ReorderLevel = *p.ReorderLevel
	}
	if p.UnitOfMeasure != nil {
		inv.UnitOfMeasure = *p.UnitOfMeasure
	}
	if p.CostPerUnit != nil {
		inv.CostPerUnit = *p.CostPerUnit
	}
}
