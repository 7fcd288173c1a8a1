package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/broker"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	eventWarehouseCreated = "WarehouseCreated"
	eventWarehouseDeleted = "WarehouseDeleted"
)

type warehouseUseCase struct {
	store    store.Gateway
	producer *broker.KafkaProducer
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewWarehouseUseCase(st store.Gateway, producer *broker.KafkaProducer, log logger.ZapLogger) warehouse.UseCase {
	return &warehouseUseCase{
		store:    st,
		producer: producer,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *warehouseUseCase) AddWarehouses(ctx context.Context, userID int64, inputs []dto.AddWarehouseInput) ([]model.Warehouse, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if len(inputs) == 0 {
		return nil, apperror.Validation("at least one warehouse is required")
	}
	for _, in := range inputs {
		if strings.TrimSpace(in.WarehouseName) == "" || strings.TrimSpace(in.WarehouseCode) == "" {
			return nil, apperror.Validation("warehouse name and code are required")
		}
	}

	var created []model.Warehouse
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		created = created[:0]

		owner, err := repos.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if owner == nil {
			return apperror.Unauthenticated()
		}

		audit := auditlog.NewRecorder(repos.AuditLogs())
		now := uc.now().UTC()
		for _, in := range inputs {
			w := model.Warehouse{
				WarehouseName:     strings.TrimSpace(in.WarehouseName),
				WarehouseCode:     strings.TrimSpace(in.WarehouseCode),
				Address:           in.Address,
				Manager:           in.Manager,
				ContactEmail:      in.ContactEmail,
				Region:            in.Region,
				Status:            in.Status,
				CreatedByUserID:   owner.ID,
				CreatedByLastName: owner.LastName,
				CreatedAt:         now,
			}
			if err := repos.Warehouses().Create(ctx, &w); err != nil {
				return err
			}
			err := audit.Record(ctx, model.AuditActionCreate, model.TableWarehouses, w.ID, userID,
				auditlog.WithNewValue(w.WarehouseName))
			if err != nil {
				return err
			}
			created = append(created, w)
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail("add warehouses", userID, err)
	}

	for i := range created {
		uc.publish(eventWarehouseCreated, created[i].ID, &created[i])
	}
	uc.logger.Info("warehouses added", zap.Int64("user_id", userID), zap.Int("count", len(created)))
	return created, nil
}

func (uc *warehouseUseCase) UpdateWarehouse(ctx context.Context, userID, id int64, input *dto.UpdateWarehouseInput) (*model.Warehouse, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if input == nil {
		input = &dto.UpdateWarehouseInput{}
	}

	var updated *model.Warehouse
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		w, err := repos.Warehouses().FindByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if w == nil {
			return apperror.NotFoundOrForbidden("warehouse", id)
		}

		oldName := w.WarehouseName
		applyPatch(w, input)
		if w.WarehouseName == "" || w.WarehouseCode == "" {
			return apperror.Validation("warehouse name and code are required")
		}

		if err := repos.Warehouses().Update(ctx, w); err != nil {
			return err
		}
		err = auditlog.NewRecorder(repos.AuditLogs()).Record(ctx,
			model.AuditActionUpdate, model.TableWarehouses, w.ID, userID,
			auditlog.WithOldValue(oldName),
			auditlog.WithNewValue(w.WarehouseName),
		)
		if err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, uc.fail("update warehouse", userID, err)
	}
	return updated, nil
}

// DeleteWarehouse removes the warehouse with its storage locations and the
// inventory stored in them, dependents first.
func (uc *warehouseUseCase) DeleteWarehouse(ctx context.Context, userID, id int64) (*dto.DeletedWarehouse, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if id <= 0 {
		return nil, apperror.Validation("warehouse id must be positive")
	}

	var result *dto.DeletedWarehouse
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		w, err := repos.Warehouses().FindByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if w == nil {
			return apperror.NotFoundOrForbidden("warehouse", id)
		}

		audit := auditlog.NewRecorder(repos.AuditLogs())

		inventories, err := repos.Inventories().DeleteByWarehouse(ctx, w.ID)
		if err != nil {
			return err
		}
		if inventories > 0 {
			err := audit.Record(ctx, model.AuditActionDelete, model.TableInventories, w.ID, userID,
				auditlog.WithDeletedValue(strconv.FormatInt(inventories, 10)+" inventory rows of warehouse "+w.WarehouseName))
			if err != nil {
				return err
			}
		}

		locations, err := repos.StorageLocations().DeleteByWarehouse(ctx, w.ID)
		if err != nil {
			return err
		}
		if locations > 0 {
			err := audit.Record(ctx, model.AuditActionDelete, model.TableStorageLocations, w.ID, userID,
				auditlog.WithDeletedValue(strconv.FormatInt(locations, 10)+" storage locations of warehouse "+w.WarehouseName))
			if err != nil {
				return err
			}
		}

		n, err := repos.Warehouses().Delete(ctx, w.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			err := audit.Record(ctx, model.AuditActionDelete, model.TableWarehouses, w.ID, userID,
				auditlog.WithDeletedValue(w.WarehouseName))
			if err != nil {
				return err
			}
		}

		result = &dto.DeletedWarehouse{
			ID:                 w.ID,
			WarehouseName:      w.WarehouseName,
			InventoriesDeleted: inventories,
			LocationsDeleted:   locations,
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail("delete warehouse", userID, err)
	}

	uc.publish(eventWarehouseDeleted, result.ID, result)
	uc.logger.Info("warehouse deleted",
		zap.Int64("warehouse_id", result.ID),
		zap.Int64("inventories", result.InventoriesDeleted),
		zap.Int64("locations", result.LocationsDeleted),
	)
	return result, nil
}

func (uc *warehouseUseCase) ListWarehouses(ctx context.Context, userID int64) ([]model.Warehouse, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	items, err := uc.store.Repositories().Warehouses().FindAll(ctx, userID)
	if err != nil {
		uc.logger.Error("failed to list warehouses", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (uc *warehouseUseCase) GetWarehouse(ctx context.Context, userID, id int64) (*model.WarehouseSummary, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	s, err := uc.store.Repositories().Warehouses().GetSummary(ctx, userID, id)
	if err != nil {
		uc.logger.Error("failed to get warehouse", zap.Int64("warehouse_id", id), zap.Error(err))
		return nil, err
	}
	if s == nil {
		return nil, apperror.NotFound("warehouse with ID %d not found", id)
	}
	return s, nil
}

func (uc *warehouseUseCase) fail(op string, userID int64, err error) error {
	if appErr, ok := apperror.As(err); ok {
		uc.logger.Debug(op+" rejected", zap.Int64("user_id", userID), zap.String("kind", string(appErr.Kind)))
		return appErr
	}
	uc.logger.Error("failed to "+op, zap.Int64("user_id", userID), zap.Error(err))
	return err
}

func (uc *warehouseUseCase) publish(eventType string, warehouseID int64, payload interface{}) {
	if uc.producer == nil {
		return
	}
	event := broker.NewEvent(eventType, payload)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.producer.Publish(ctx, "warehouse:"+strconv.FormatInt(warehouseID, 10), event); err != nil {
			uc.logger.Error("failed to publish warehouse event", zap.String("event_type", eventType), zap.Error(err))
		}
	}()
}

func applyPatch(w *model.Warehouse, p *dto.UpdateWarehouseInput) {
	if p.WarehouseName != nil {
		w.WarehouseName = strings.TrimSpace(*p.WarehouseName)
	}
	if p.WarehouseCode != nil {
		w.WarehouseCode = strings.TrimSpace(*p.WarehouseCode)
	}
	if p.Address != nil {
		w.Address = *p.Address
	}
	if p.Manager != nil {
		w.Manager = *p.Manager
	}
	if p.ContactEmail != nil {
		w.ContactEmail = *p.ContactEmail
	}
	if p.Region != nil {
		w.Region = *p.Region
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
}
