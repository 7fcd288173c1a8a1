package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/cache"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/fekuna/omnipos-warehouse-service/pkg/search"
	"go.uber.org/zap"
)

type storageLocationUseCase struct {
	store    store.Gateway
	cache    *cache.RedisClient
	statsTTL time.Duration
	logger   logger.ZapLogger
	now      func() time.Time
}

// NewStorageLocationUseCase builds the usecase. cache may be nil, in which case
// aggregates are computed on every call.
func NewStorageLocationUseCase(st store.Gateway, cache *cache.RedisClient, statsTTL time.Duration, log logger.ZapLogger) storagelocation.UseCase {
	return &storageLocationUseCase{
		store:    st,
		cache:    cache,
		statsTTL: statsTTL,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *storageLocationUseCase) AddStorageLocations(ctx context.Context, userID int64, inputs []dto.AddStorageLocationInput) ([]model.StorageLocation, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if len(inputs) == 0 {
		return nil, apperror.Validation("at least one storage location is required")
	}
	for _, in := range inputs {
		switch {
		case strings.TrimSpace(in.LocationCode) == "":
			return nil, apperror.Validation("location code is required")
		case in.MaxCapacity < 0:
			return nil, apperror.Validation("max capacity cannot be negative")
		}
	}

	var created []model.StorageLocation
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		created = created[:0]

		audit := auditlog.NewRecorder(repos.AuditLogs())
		warehouses := map[int64]*model.Warehouse{}
		now := uc.now().UTC()

		for _, in := range inputs {
			w, ok := warehouses[in.WarehouseID]
			if !ok {
				var err error
				w, err = repos.Warehouses().FindByID(ctx, userID, in.WarehouseID)
				if err != nil {
					return err
				}
				warehouses[in.WarehouseID] = w
			}
			if w == nil {
				return apperror.NotFound("warehouse with ID %d not found", in.WarehouseID)
			}

			loc := model.StorageLocation{
				LocationCode:  strings.TrimSpace(in.LocationCode),
				SectionName:   strings.TrimSpace(in.SectionName),
				StorageType:   in.StorageType,
				UnitType:      in.UnitType,
				MaxCapacity:   in.MaxCapacity,
				WarehouseID:   w.ID,
				UserID:        userID,
				CreatedAt:     now,
				WarehouseName: w.WarehouseName,
			}
			if err := repos.StorageLocations().Create(ctx, &loc); err != nil {
				return err
			}
			err := audit.Record(ctx, model.AuditActionCreate, model.TableStorageLocations, loc.ID, userID,
				auditlog.WithNewValue(loc.LocationCode))
			if err != nil {
				return err
			}
			created = append(created, loc)
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail("add storage locations", userID, err)
	}

	uc.logger.Info("storage locations added", zap.Int64("user_id", userID), zap.Int("count", len(created)))
	return created, nil
}

// DeleteStorageLocation removes the location together with the inventory assigned to it.
func (uc *storageLocationUseCase) DeleteStorageLocation(ctx context.Context, userID, id int64) (*dto.DeletedStorageLocation, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	if id <= 0 {
		return nil, apperror.Validation("storage location id must be positive")
	}

	var result *dto.DeletedStorageLocation
	err := uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		loc, err := repos.StorageLocations().FindByIDForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		if loc == nil {
			return apperror.NotFoundOrForbidden("storage location", id)
		}

		audit := auditlog.NewRecorder(repos.AuditLogs())

		inventories, err := repos.Inventories().DeleteByStorageLocation(ctx, loc.ID)
		if err != nil {
			return err
		}
		if inventories > 0 {
			err := audit.Record(ctx, model.AuditActionDelete, model.TableInventories, loc.ID, userID,
				auditlog.WithDeletedValue(strconv.FormatInt(inventories, 10)+" inventory rows of location "+loc.LocationCode))
			if err != nil {
				return err
			}
		}

		n, err := repos.StorageLocations().Delete(ctx, loc.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			err := audit.Record(ctx, model.AuditActionDelete, model.TableStorageLocations, loc.ID, userID,
				auditlog.WithDeletedValue(loc.LocationCode))
			if err != nil {
				return err
			}
		}

		result = &dto.DeletedStorageLocation{
			ID:                 loc.ID,
			LocationCode:       loc.LocationCode,
			InventoriesDeleted: inventories,
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail("delete storage location", userID, err)
	}
	return result, nil
}

func (uc *storageLocationUseCase) ListStorageLocations(ctx context.Context, userID int64) ([]model.StorageLocation, error) {
	return uc.list(ctx, &dto.StorageLocationFilters{UserID: userID})
}

func (uc *storageLocationUseCase) ListByWarehouseName(ctx context.Context, userID int64, warehouseName string) ([]model.StorageLocation, error) {
	warehouseName = strings.TrimSpace(warehouseName)
	if warehouseName == "" {
		return nil, apperror.Validation("warehouse name is required")
	}
	items, err := uc.list(ctx, &dto.StorageLocationFilters{UserID: userID, WarehouseName: warehouseName})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NotFound("no storage locations found for warehouse '%s'", warehouseName)
	}
	return items, nil
}

func (uc *storageLocationUseCase) Search(ctx context.Context, userID int64, term string) ([]model.StorageLocation, error) {
	return uc.list(ctx, &dto.StorageLocationFilters{UserID: userID, Search: search.NormalizeTerm(term)})
}

func (uc *storageLocationUseCase) ListOrdered(ctx context.Context, userID int64, orderBy string) ([]model.StorageLocation, error) {
	orderBy = search.NormalizeTerm(orderBy)
	if orderBy != dto.OrderByUtilization && orderBy != dto.OrderByCapacity {
		return nil, apperror.Validation("orderBy must be '%s' or '%s'", dto.OrderByUtilization, dto.OrderByCapacity)
	}
	return uc.list(ctx, &dto.StorageLocationFilters{UserID: userID, OrderBy: orderBy})
}

func (uc *storageLocationUseCase) list(ctx context.Context, f *dto.StorageLocationFilters) ([]model.StorageLocation, error) {
	if f.UserID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	items, err := uc.store.Repositories().StorageLocations().FindAll(ctx, f)
	if err != nil {
		uc.logger.Error("failed to list storage locations", zap.Int64("user_id", f.UserID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

// CapacityStats reads through a short-lived cache; values may lag writes by up to the TTL.
func (uc *storageLocationUseCase) CapacityStats(ctx context.Context, userID int64) (*model.CapacityStats, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}

	cacheKey := statsCacheKey(userID)
	if uc.cache != nil {
		var cached model.CapacityStats
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("capacity stats cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	stats, err := uc.store.Repositories().StorageLocations().GetStats(ctx, userID)
	if err != nil {
		uc.logger.Error("failed to aggregate storage locations", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	derivePercentages(stats)

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, stats, uc.statsTTL); err != nil {
			uc.logger.Warn("capacity stats cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return stats, nil
}

func statsCacheKey(userID int64) string {
	return fmt.Sprintf("storage_locations:stats:%d", userID)
}

// derivePercentages fills the figures computed from the raw sums. All are 0
// when the user has no capacity at all.
func derivePercentages(s *model.CapacityStats) {
	s.TotalAvailableSpace = s.TotalCapacity - s.TotalOccupied
	if s.TotalAvailableSpace < 0 {
		s.TotalAvailableSpace = 0
	}
	if s.TotalCapacity == 0 {
		s.AverageUtilization = 0
		s.AvailableSpace = 0
		return
	}
	total := float64(s.TotalCapacity)
	s.AverageUtilization = int(math.Round(float64(s.TotalOccupied) / total * 100))
	s.AvailableSpace = int(math.Round(float64(s.TotalCapacity-s.TotalOccupied) / total * 100))
}

func (uc *storageLocationUseCase) fail(op string, userID int64, err error) error {
	if appErr, ok := apperror.As(err); ok {
		uc.logger.Debug(op+" rejected", zap.Int64("user_id", userID), zap.String("kind", string(appErr.Kind)))
		return appErr
	}
	uc.logger.Error("failed to "+op, zap.Int64("user_id", userID), zap.Error(err))
	return err
}
