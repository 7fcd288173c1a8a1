package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/testutil"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db   *sqlx.DB
	uc   *inventoryUseCase
	user *model.User
	wh   *model.Warehouse
}

func setup(t *testing.T) *fixture {
	t.Helper()

	st := testutil.NewStore(t)
	db := st.DB()
	u := testutil.SeedUser(t, db, "owner@example.com")
	wh := testutil.SeedWarehouse(t, db, u.ID, "Main")

	uc := NewInventoryUseCase(st, nil, nil, "inventories", logger.NewNop()).(*inventoryUseCase)
	return &fixture{db: db, uc: uc, user: u, wh: wh}
}

func item(sku, rack string, qty int) dto.InventoryInput {
	return dto.InventoryInput{
		ItemSKU:           sku,
		ProductName:       "Product " + sku,
		Category:          "Hardware",
		WarehouseLocation: "Main",
		RackLocation:      rack,
		QuantityInStock:   qty,
		ReorderLevel:      2,
		UnitOfMeasure:     "pcs",
		CostPerUnit:       decimal.RequireFromString("2.50"),
	}
}

func TestAddInventory_CapacityExceeded(t *testing.T) {
	f := setup(t)
	loc := testutil.SeedLocation(t, f.db, f.user.ID, f.wh.ID, "A1", 100, 90)

	_, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{item("SKU-1", "A1", 20)})

	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindCapacityExceeded, appErr.Kind)
	assert.Equal(t, "A1", appErr.Details["location"])
	assert.Equal(t, 10, appErr.Details["overflow"])
	assert.Equal(t, 10, appErr.Details["available"])

	assert.Equal(t, 90, testutil.Occupied(t, f.db, loc.ID))
	assert.Equal(t, 0, testutil.Count(t, f.db, "inventories", ""))
	assert.Equal(t, 0, testutil.Count(t, f.db, "audit_logs", ""))
	assert.Equal(t, 0, testutil.Count(t, f.db, "stock_movements", ""))
}

func TestAddInventory_FillsLocationExactly(t *testing.T) {
	f := setup(t)
	loc := testutil.SeedLocation(t, f.db, f.user.ID, f.wh.ID, "A1", 100, 90)

	added, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{item("SKU-1", "A1", 10)})

	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "Product SKU-1", added[0].ProductName)
	assert.Equal(t, 10, added[0].Quantity)
	assert.Equal(t, f.user.ID, added[0].UserID)

	assert.Equal(t, 100, testutil.Occupied(t, f.db, loc.ID))

	inv, err := f.uc.GetInventory(context.Background(), f.user.ID, added[0].ID)
	require.NoError(t, err)
	require.NotNil(t, inv.StorageLocationID)
	assert.Equal(t, loc.ID, *inv.StorageLocationID)
	assert.True(t, decimal.RequireFromString("25").Equal(inv.TotalValue))

	assert.Equal(t, 1, testutil.Count(t, f.db, "audit_logs", "action = ? AND table_name = ?", model.AuditActionAdd, model.TableInventories))
	assert.Equal(t, 1, testutil.Count(t, f.db, "stock_movements", "type = ? AND quantity = 10", model.MovementInbound))
}

func TestAddInventory_BatchIsAtomic(t *testing.T) {
	f := setup(t)
	loc := testutil.SeedLocation(t, f.db, f.user.ID, f.wh.ID, "A1", 50, 0)

	batch := []dto.InventoryInput{
		item("SKU-1", "A1", 20),
		item("SKU-2", "A1", 20),
		item("SKU-3", "A1", 20), // 60 > 50 only once the first two are counted
		item("SKU-4", "", 1),
	}
	_, err := f.uc.AddInventory(context.Background(), f.user.ID, batch)

	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindCapacityExceeded, appErr.Kind)
	assert.Equal(t, 10, appErr.Details["overflow"])
	assert.Equal(t, 10, appErr.Details["available"])

	assert.Equal(t, 0, testutil.Occupied(t, f.db, loc.ID))
	assert.Equal(t, 0, testutil.Count(t, f.db, "inventories", ""))
	assert.Equal(t, 0, testutil.Count(t, f.db, "audit_logs", ""))
	assert.Equal(t, 0, testutil.Count(t, f.db, "stock_movements", ""))
}

func TestAddInventory_BatchAccumulatesPerLocation(t *testing.T) {
	f := setup(t)
	a1 := testutil.SeedLocation(t, f.db, f.user.ID, f.wh.ID, "A1", 50, 5)
	b1 := testutil.SeedLocation(t, f.db, f.user.ID, f.wh.ID, "B1", 10, 0)

	added, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{
		item("SKU-1", "A1", 20),
		item("SKU-2", "B1", 10),
		item("SKU-3", " A1 ", 25),
		item("SKU-4", "Z9", 1000), // No such section: stays unassigned
	})

	require.NoError(t, err)
	assert.Len(t, added, 4)
	assert.Equal(t, 50, testutil.Occupied(t, f.db, a1.ID))
	assert.Equal(t, 10, testutil.Occupied(t, f.db, b1.ID))
	assert.Equal(t, 1, testutil.Count(t, f.db, "inventories", "storage_location_id IS NULL"))
	assert.Equal(t, 4, testutil.Count(t, f.db, "audit_logs", ""))
	assert.Equal(t, 4, testutil.Count(t, f.db, "stock_movements", ""))
}

func TestAddInventory_DuplicateSKU(t *testing.T) {
	f := setup(t)
	testutil.SeedInventory(t, f.db, &model.Inventory{
		ItemSKU: "SKU-1", ProductName: "Existing", QuantityInStock: 1,
		CostPerUnit: decimal.NewFromInt(1), UserID: f.user.ID,
	})

	tests := []struct {
		name  string
		batch []dto.InventoryInput
	}{
		{"already persisted", []dto.InventoryInput{item("SKU-2", "", 1), item("SKU-1", "", 1)}},
		{"earlier in batch", []dto.InventoryInput{item("SKU-3", "", 1), item("SKU-3", "", 2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.AddInventory(context.Background(), f.user.ID, tt.batch)

			assert.True(t, apperror.Is(err, apperror.KindDuplicateSKU))
			assert.Equal(t, 1, testutil.Count(t, f.db, "inventories", ""))
		})
	}
}

func TestAddInventory_SKUIsScopedPerUser(t *testing.T) {
	f := setup(t)
	other := testutil.SeedUser(t, f.db, "other@example.com")
	testutil.SeedInventory(t, f.db, &model.Inventory{
		ItemSKU: "SKU-1", ProductName: "Theirs", QuantityInStock: 1,
		CostPerUnit: decimal.NewFromInt(1), UserID: other.ID,
	})

	_, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{item("SKU-1", "", 1)})

	assert.NoError(t, err)
}

func TestAddInventory_Validation(t *testing.T) {
	f := setup(t)

	blankSKU := item("   ", "", 1)
	blankName := item("SKU-1", "", 1)
	blankName.ProductName = " "
	negativeQty := item("SKU-1", "", -1)
	negativeCost := item("SKU-1", "", 1)
	negativeCost.CostPerUnit = decimal.NewFromInt(-1)

	for name, in := range map[string]dto.InventoryInput{
		"blank sku":     blankSKU,
		"blank name":    blankName,
		"negative qty":  negativeQty,
		"negative cost": negativeCost,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{item("SKU-OK", "", 1), in})
			assert.True(t, apperror.Is(err, apperror.KindValidationFailed))
		})
	}

	_, err := f.uc.AddInventory(context.Background(), f.user.ID, nil)
	assert.True(t, apperror.Is(err, apperror.KindValidationFailed))

	_, err = f.uc.AddInventory(context.Background(), 0, []dto.InventoryInput{item("SKU-1", "", 1)})
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))

	assert.Equal(t, 0, testutil.Count(t, f.db, "inventories", ""))
}

func TestAddInventory_IgnoresOtherUsersSections(t *testing.T) {
	f := setup(t)
	other := testutil.SeedUser(t, f.db, "other@example.com")
	otherWh := testutil.SeedWarehouse(t, f.db, other.ID, "Theirs")
	theirs := testutil.SeedLocation(t, f.db, other.ID, otherWh.ID, "A1", 10, 0)

	_, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{item("SKU-1", "A1", 5)})

	require.NoError(t, err)
	assert.Equal(t, 0, testutil.Occupied(t, f.db, theirs.ID))
	assert.Equal(t, 1, testutil.Count(t, f.db, "inventories", "storage_location_id IS NULL"))
}

func seedAssigned(t *testing.T, f *fixture, qty, occupied int) (*model.Inventory, *model.StorageLocation) {
	t.Helper()
	loc := testutil.SeedLocation(t, f.db, f.user.ID, f.wh.ID, "A1", 100, occupied)
	locID := loc.ID
	inv := testutil.SeedInventory(t, f.db, &model.Inventory{
		ItemSKU:           "SKU-1",
		ProductName:       "Widget",
		RackLocation:      "A1",
		QuantityInStock:   qty,
		CostPerUnit:       decimal.RequireFromString("4"),
		StorageLocationID: &locID,
		UserID:            f.user.ID,
	})
	return inv, loc
}

func TestUpdateInventory_ReleasesCapacity(t *testing.T) {
	f := setup(t)
	inv, loc := seedAssigned(t, f, 5, 20)
	qty := 3

	updated, err := f.uc.UpdateInventory(context.Background(), f.user.ID, inv.ID, &dto.UpdateInventoryInput{QuantityInStock: &qty})

	require.NoError(t, err)
	assert.Equal(t, 3, updated.QuantityInStock)
	assert.True(t, decimal.NewFromInt(12).Equal(updated.TotalValue))
	assert.Equal(t, "Widget", updated.ProductName)
	assert.Equal(t, 18, testutil.Occupied(t, f.db, loc.ID))

	assert.Equal(t, 1, testutil.Count(t, f.db, "audit_logs", "action = ? AND old_value = '5' AND new_value = '3'", model.AuditActionUpdate))
	assert.Equal(t, 1, testutil.Count(t, f.db, "stock_movements", "type = ? AND quantity = 2", model.MovementOutbound))
}

func TestUpdateInventory_CapacityExceeded(t *testing.T) {
	f := setup(t)
	inv, loc := seedAssigned(t, f, 5, 95)
	qty := 11

	_, err := f.uc.UpdateInventory(context.Background(), f.user.ID, inv.ID, &dto.UpdateInventoryInput{QuantityInStock: &qty})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindCapacityExceeded, appErr.Kind)
	assert.Equal(t, 5, appErr.Details["available"])
	assert.Equal(t, 95, testutil.Occupied(t, f.db, loc.ID))
	assert.Equal(t, 0, testutil.Count(t, f.db, "audit_logs", ""))
}

func TestUpdateInventory_ClampsAtZero(t *testing.T) {
	f := setup(t)
	inv, loc := seedAssigned(t, f, 10, 4) // Drifted counter
	qty := 0

	_, err := f.uc.UpdateInventory(context.Background(), f.user.ID, inv.ID, &dto.UpdateInventoryInput{QuantityInStock: &qty})

	require.NoError(t, err)
	assert.Equal(t, 0, testutil.Occupied(t, f.db, loc.ID))
}

func TestUpdateInventory_PatchLeavesAbsentFields(t *testing.T) {
	f := setup(t)
	inv, loc := seedAssigned(t, f, 5, 5)
	name := "Renamed"
	cost := decimal.RequireFromString("1.5")

	updated, err := f.uc.UpdateInventory(context.Background(), f.user.ID, inv.ID, &dto.UpdateInventoryInput{
		ProductName: &name,
		CostPerUnit: &cost,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.ProductName)
	assert.Equal(t, "SKU-1", updated.ItemSKU)
	assert.Equal(t, 5, updated.QuantityInStock)
	assert.True(t, decimal.RequireFromString("7.5").Equal(updated.TotalValue))
	assert.Equal(t, 5, testutil.Occupied(t, f.db, loc.ID))
	assert.Equal(t, 0, testutil.Count(t, f.db, "stock_movements", ""))
}

func TestUpdateInventory_DuplicateSKU(t *testing.T) {
	f := setup(t)
	inv, _ := seedAssigned(t, f, 5, 5)
	testutil.SeedInventory(t, f.db, &model.Inventory{
		ItemSKU: "SKU-2", ProductName: "Other", QuantityInStock: 1,
		CostPerUnit: decimal.NewFromInt(1), UserID: f.user.ID,
	})
	sku := "SKU-2"

	_, err := f.uc.UpdateInventory(context.Background(), f.user.ID, inv.ID, &dto.UpdateInventoryInput{ItemSKU: &sku})

	assert.True(t, apperror.Is(err, apperror.KindDuplicateSKU))
}

func TestUpdateInventory_OtherUsersItem(t *testing.T) {
	f := setup(t)
	inv, loc := seedAssigned(t, f, 5, 5)
	intruder := testutil.SeedUser(t, f.db, "intruder@example.com")
	qty := 50

	_, err := f.uc.UpdateInventory(context.Background(), intruder.ID, inv.ID, &dto.UpdateInventoryInput{QuantityInStock: &qty})

	assert.True(t, apperror.Is(err, apperror.KindNotFoundOrForbidden))
	assert.Equal(t, 5, testutil.Occupied(t, f.db, loc.ID))
}

func TestDeleteInventory_ReleasesCapacity(t *testing.T) {
	f := setup(t)
	inv, loc := seedAssigned(t, f, 5, 5)

	deleted, err := f.uc.DeleteInventory(context.Background(), f.user.ID, inv.ID)

	require.NoError(t, err)
	assert.Equal(t, inv.ID, deleted.ID)
	assert.Equal(t, "SKU-1", deleted.ItemSKU)
	assert.Equal(t, 0, testutil.Occupied(t, f.db, loc.ID))
	assert.Equal(t, 0, testutil.Count(t, f.db, "inventories", ""))
	assert.Equal(t, 1, testutil.Count(t, f.db, "audit_logs", "action = ? AND deleted_value = 'SKU-1'", model.AuditActionDelete))
	assert.Equal(t, 1, testutil.Count(t, f.db, "stock_movements", "type = ? AND quantity = 5", model.MovementOutbound))
}

func TestDeleteInventory_Rejections(t *testing.T) {
	f := setup(t)
	inv, loc := seedAssigned(t, f, 5, 5)
	intruder := testutil.SeedUser(t, f.db, "intruder@example.com")

	_, err := f.uc.DeleteInventory(context.Background(), f.user.ID, 0)
	assert.True(t, apperror.Is(err, apperror.KindValidationFailed))

	_, err = f.uc.DeleteInventory(context.Background(), intruder.ID, inv.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFoundOrForbidden))

	_, err = f.uc.DeleteInventory(context.Background(), f.user.ID, inv.ID+100)
	assert.True(t, apperror.Is(err, apperror.KindNotFoundOrForbidden))

	_, err = f.uc.DeleteInventory(context.Background(), 0, inv.ID)
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))

	assert.Equal(t, 1, testutil.Count(t, f.db, "inventories", ""))
	assert.Equal(t, 5, testutil.Occupied(t, f.db, loc.ID))
}

func TestQueries(t *testing.T) {
	f := setup(t)
	other := testutil.SeedUser(t, f.db, "other@example.com")
	_, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{
		item("BOLT-M8", "", 1),
		item("NUT-M8", "", 10),
	})
	require.NoError(t, err)
	testutil.SeedInventory(t, f.db, &model.Inventory{
		ItemSKU: "BOLT-M10", ProductName: "Bolt", QuantityInStock: 0,
		CostPerUnit: decimal.NewFromInt(1), UserID: other.ID,
	})

	all, err := f.uc.ListInventories(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	low, err := f.uc.ListLowStock(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "BOLT-M8", low[0].ItemSKU)

	found, err := f.uc.SearchInventories(context.Background(), f.user.ID, "  bolt ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "BOLT-M8", found[0].ItemSKU)

	_, err = f.uc.GetInventory(context.Background(), other.ID, all[0].ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFoundOrForbidden))
}

func assertStoredTotal(t *testing.T, got *model.Inventory, cost string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(cost).Equal(got.CostPerUnit), "cost %s", got.CostPerUnit)
	assert.True(t, got.CostPerUnit.Mul(decimal.NewFromInt(int64(got.QuantityInStock))).Equal(got.TotalValue),
		"total %s for %d x %s", got.TotalValue, got.QuantityInStock, got.CostPerUnit)
}

func TestAddInventory_RoundsCostToCents(t *testing.T) {
	tests := []struct {
		name string
		cost string
		want string
	}{
		{name: "half rounds up", cost: "0.005", want: "0.01"},
		{name: "below half rounds down", cost: "2.494", want: "2.49"},
		{name: "already cents", cost: "2.50", want: "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			in := item("SKU-1", "", 3)
			in.CostPerUnit = decimal.RequireFromString(tt.cost)

			added, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{in})
			require.NoError(t, err)

			got, err := f.uc.GetInventory(context.Background(), f.user.ID, added[0].ID)
			require.NoError(t, err)
			assertStoredTotal(t, got, tt.want)
		})
	}
}

func TestUpdateInventory_RoundsCostToCents(t *testing.T) {
	f := setup(t)
	inv, _ := seedAssigned(t, f, 3, 3)
	cost := decimal.RequireFromString("1.005")

	updated, err := f.uc.UpdateInventory(context.Background(), f.user.ID, inv.ID, &dto.UpdateInventoryInput{CostPerUnit: &cost})
	require.NoError(t, err)
	assertStoredTotal(t, updated, "1.01")

	got, err := f.uc.GetInventory(context.Background(), f.user.ID, inv.ID)
	require.NoError(t, err)
	assertStoredTotal(t, got, "1.01")
	assert.True(t, decimal.RequireFromString("3.03").Equal(got.TotalValue))
}

func TestSearchInventories_MatchesWildcardsLiterally(t *testing.T) {
	f := setup(t)
	_, err := f.uc.AddInventory(context.Background(), f.user.ID, []dto.InventoryInput{
		item("ABC", "", 1),
		item("XYZ", "", 1),
		item("50%_OFF", "", 1),
		item(`DIR\BIN`, "", 1),
	})
	require.NoError(t, err)

	tests := []struct {
		term string
		skus []string
	}{
		{term: "_", skus: []string{"50%_OFF"}},
		{term: "%", skus: []string{"50%_OFF"}},
		{term: "0%_", skus: []string{"50%_OFF"}},
		{term: `\`, skus: []string{`DIR\BIN`}},
		{term: "a_c", skus: nil},
		{term: "abc", skus: []string{"ABC"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			found, err := f.uc.SearchInventories(context.Background(), f.user.ID, tt.term)

			require.NoError(t, err)
			var skus []string
			for _, inv := range found {
				skus = append(skus, inv.ItemSKU)
			}
			assert.Equal(t, tt.skus, skus)
		})
	}
}
