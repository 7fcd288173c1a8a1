package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/testutil"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWarehouses(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")
	uc := NewWarehouseUseCase(st, nil, logger.NewNop())

	created, err := uc.AddWarehouses(context.Background(), u.ID, []dto.AddWarehouseInput{
		{WarehouseName: "North", WarehouseCode: "N-1", Address: "1 Dock Rd"},
		{WarehouseName: "South", WarehouseCode: "S-1", Address: "2 Pier St"},
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)
	assert.Equal(t, "User", created[0].CreatedByLastName)
	assert.Equal(t, u.ID, created[1].CreatedByUserID)
	assert.Equal(t, 2, testutil.Count(t, st.DB(), "audit_logs", "action = ? AND table_name = ?", model.AuditActionCreate, model.TableWarehouses))

	list, err := uc.ListWarehouses(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddWarehouses_InvalidRowAbortsBatch(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")
	uc := NewWarehouseUseCase(st, nil, logger.NewNop())

	_, err := uc.AddWarehouses(context.Background(), u.ID, []dto.AddWarehouseInput{
		{WarehouseName: "North", WarehouseCode: "N-1"},
		{WarehouseName: " ", WarehouseCode: "X"},
	})

	assert.True(t, apperror.Is(err, apperror.KindValidationFailed))
	assert.Equal(t, 0, testutil.Count(t, st.DB(), "warehouses", ""))

	_, err = uc.AddWarehouses(context.Background(), 0, []dto.AddWarehouseInput{{WarehouseName: "N", WarehouseCode: "N"}})
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
}

func TestUpdateWarehouse(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")
	other := testutil.SeedUser(t, st.DB(), "other@example.com")
	wh := testutil.SeedWarehouse(t, st.DB(), u.ID, "Main")
	uc := NewWarehouseUseCase(st, nil, logger.NewNop())
	name := "Main Renamed"

	updated, err := uc.UpdateWarehouse(context.Background(), u.ID, wh.ID, &dto.UpdateWarehouseInput{WarehouseName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Main Renamed", updated.WarehouseName)
	assert.Equal(t, "Main-CODE", updated.WarehouseCode)
	assert.Equal(t, 1, testutil.Count(t, st.DB(), "audit_logs", "old_value = 'Main' AND new_value = 'Main Renamed'"))

	_, err = uc.UpdateWarehouse(context.Background(), other.ID, wh.ID, &dto.UpdateWarehouseInput{WarehouseName: &name})
	assert.True(t, apperror.Is(err, apperror.KindNotFoundOrForbidden))
}

func TestDeleteWarehouse_Cascades(t *testing.T) {
	st := testutil.NewStore(t)
	db := st.DB()
	u := testutil.SeedUser(t, db, "owner@example.com")
	wh := testutil.SeedWarehouse(t, db, u.ID, "Main")
	keep := testutil.SeedWarehouse(t, db, u.ID, "Other")
	a1 := testutil.SeedLocation(t, db, u.ID, wh.ID, "A1", 100, 5)
	testutil.SeedLocation(t, db, u.ID, wh.ID, "A2", 100, 0)
	b1 := testutil.SeedLocation(t, db, u.ID, keep.ID, "B1", 100, 0)
	a1ID, b1ID := a1.ID, b1.ID
	testutil.SeedInventory(t, db, &model.Inventory{ItemSKU: "SKU-1", ProductName: "A", QuantityInStock: 5,
		CostPerUnit: decimal.NewFromInt(1), StorageLocationID: &a1ID, UserID: u.ID})
	testutil.SeedInventory(t, db, &model.Inventory{ItemSKU: "SKU-2", ProductName: "B", QuantityInStock: 0,
		CostPerUnit: decimal.NewFromInt(1), StorageLocationID: &b1ID, UserID: u.ID})
	testutil.SeedInventory(t, db, &model.Inventory{ItemSKU: "SKU-3", ProductName: "C", QuantityInStock: 1,
		CostPerUnit: decimal.NewFromInt(1), UserID: u.ID})
	uc := NewWarehouseUseCase(st, nil, logger.NewNop())

	deleted, err := uc.DeleteWarehouse(context.Background(), u.ID, wh.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.InventoriesDeleted)
	assert.Equal(t, int64(2), deleted.LocationsDeleted)
	assert.Equal(t, 2, testutil.Count(t, db, "inventories", ""))
	assert.Equal(t, 1, testutil.Count(t, db, "storage_locations", ""))
	assert.Equal(t, 1, testutil.Count(t, db, "warehouses", ""))
	assert.Equal(t, 3, testutil.Count(t, db, "audit_logs", "action = ?", model.AuditActionDelete))
}

func TestDeleteWarehouse_EmptySkipsDependentAudits(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")
	wh := testutil.SeedWarehouse(t, st.DB(), u.ID, "Main")
	uc := NewWarehouseUseCase(st, nil, logger.NewNop())

	_, err := uc.DeleteWarehouse(context.Background(), u.ID, wh.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, testutil.Count(t, st.DB(), "audit_logs", "table_name = ?", model.TableWarehouses))
	assert.Equal(t, 1, testutil.Count(t, st.DB(), "audit_logs", ""))
}

func TestDeleteWarehouse_OtherUser(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")
	intruder := testutil.SeedUser(t, st.DB(), "intruder@example.com")
	wh := testutil.SeedWarehouse(t, st.DB(), u.ID, "Main")
	uc := NewWarehouseUseCase(st, nil, logger.NewNop())

	_, err := uc.DeleteWarehouse(context.Background(), intruder.ID, wh.ID)

	assert.True(t, apperror.Is(err, apperror.KindNotFoundOrForbidden))
	assert.Equal(t, 1, testutil.Count(t, st.DB(), "warehouses", ""))
}

func TestGetWarehouse_Summary(t *testing.T) {
	st := testutil.NewStore(t)
	db := st.DB()
	u := testutil.SeedUser(t, db, "owner@example.com")
	wh := testutil.SeedWarehouse(t, db, u.ID, "Main")
	full := testutil.SeedLocation(t, db, u.ID, wh.ID, "A1", 50, 50)
	testutil.SeedLocation(t, db, u.ID, wh.ID, "A2", 150, 25)
	fullID := full.ID
	testutil.SeedInventory(t, db, &model.Inventory{ItemSKU: "SKU-1", ProductName: "A", QuantityInStock: 50,
		CostPerUnit: decimal.NewFromInt(1), StorageLocationID: &fullID, UserID: u.ID})
	uc := NewWarehouseUseCase(st, nil, logger.NewNop())

	s, err := uc.GetWarehouse(context.Background(), u.ID, wh.ID)

	require.NoError(t, err)
	assert.Equal(t, "Main", s.WarehouseName)
	assert.Equal(t, 1, s.TotalProducts)
	assert.Equal(t, 1, s.AvailableSectors)
	assert.Equal(t, 200, s.MaxCapacity)
	assert.Equal(t, 75, s.OccupiedCapacity)
	assert.Equal(t, 37, s.CapacityUtilization)

	_, err = uc.GetWarehouse(context.Background(), u.ID, wh.ID+1)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
