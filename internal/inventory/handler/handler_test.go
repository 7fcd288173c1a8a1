package handler

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/gql/gqltest"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) AddInventory(ctx context.Context, userID int64, items []dto.InventoryInput) ([]dto.AddedInventory, error) {
	args := m.Called(ctx, userID, items)
	added, _ := args.Get(0).([]dto.AddedInventory)
	return added, args.Error(1)
}

func (m *MockUseCase) UpdateInventory(ctx context.Context, userID, id int64, input *dto.UpdateInventoryInput) (*model.Inventory, error) {
	args := m.Called(ctx, userID, id, input)
	item, _ := args.Get(0).(*model.Inventory)
	return item, args.Error(1)
}

func (m *MockUseCase) DeleteInventory(ctx context.Context, userID, id int64) (*dto.DeletedInventory, error) {
	args := m.Called(ctx, userID, id)
	deleted, _ := args.Get(0).(*dto.DeletedInventory)
	return deleted, args.Error(1)
}

func (m *MockUseCase) GetInventory(ctx context.Context, userID, id int64) (*model.Inventory, error) {
	args := m.Called(ctx, userID, id)
	item, _ := args.Get(0).(*model.Inventory)
	return item, args.Error(1)
}

func (m *MockUseCase) ListInventories(ctx context.Context, userID int64) ([]model.Inventory, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Inventory)
	return items, args.Error(1)
}

func (m *MockUseCase) ListLowStock(ctx context.Context, userID int64) ([]model.Inventory, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Inventory)
	return items, args.Error(1)
}

func (m *MockUseCase) SearchInventories(ctx context.Context, userID int64, term string) ([]model.Inventory, error) {
	args := m.Called(ctx, userID, term)
	items, _ := args.Get(0).([]model.Inventory)
	return items, args.Error(1)
}

func TestAddInventory_DecodesBatch(t *testing.T) {
	uc := new(MockUseCase)
	h := NewInventoryHandler(uc, logger.NewNop())
	uc.On("AddInventory", mock.Anything, int64(7), mock.MatchedBy(func(items []dto.InventoryInput) bool {
		return len(items) == 2 &&
			items[0].ItemSKU == "SKU-1" &&
			items[0].RackLocation == "A1" &&
			items[0].CostPerUnit.Equal(decimal.RequireFromString("2.5")) &&
			items[1].QuantityInStock == 3
	})).Return([]dto.AddedInventory{
		{ID: 1, ProductName: "Bolt", Quantity: 10, UserID: 7},
		{ID: 2, ProductName: "Nut", Quantity: 3, UserID: 7},
	}, nil)

	result := gqltest.Execute(t, 7, `mutation {
		addInventory(inventory: [
			{itemSKU: "SKU-1", productName: "Bolt", rackLocation: "A1", quantityInStock: 10, costPerUnit: 2.5},
			{itemSKU: "SKU-2", productName: "Nut", quantityInStock: 3, costPerUnit: 1}
		]) { id itemName quantity userId }
	}`, nil, h)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})["addInventory"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Bolt", first["itemName"])
	assert.Equal(t, 10, first["quantity"])
	assert.Equal(t, 7, first["userId"])
	uc.AssertExpectations(t)
}

func TestAddInventory_CapacityExceededSurfacesCode(t *testing.T) {
	uc := new(MockUseCase)
	h := NewInventoryHandler(uc, logger.NewNop())
	uc.On("AddInventory", mock.Anything, int64(7), mock.Anything).
		Return(nil, apperror.CapacityExceeded("A1", 10, 10))

	result := gqltest.Execute(t, 7, `mutation {
		addInventory(inventory: [{itemSKU: "S", productName: "P", quantityInStock: 20, costPerUnit: 1}]) { id }
	}`, nil, h)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "CAPACITY_EXCEEDED", gqltest.Code(result))
	assert.Equal(t, 10, result.Errors[0].Extensions["available"])
}

func TestUpdateInventory_PatchKeepsAbsentFieldsNil(t *testing.T) {
	uc := new(MockUseCase)
	h := NewInventoryHandler(uc, logger.NewNop())
	locID := int64(4)
	uc.On("UpdateInventory", mock.Anything, int64(7), int64(3), mock.MatchedBy(func(in *dto.UpdateInventoryInput) bool {
		return in.QuantityInStock != nil && *in.QuantityInStock == 18 &&
			in.ProductName == nil && in.CostPerUnit == nil
	})).Return(&model.Inventory{
		ID: 3, ItemSKU: "SKU-1", QuantityInStock: 18,
		CostPerUnit: decimal.RequireFromString("1.5"), TotalValue: decimal.RequireFromString("27"),
		LastRestocked: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), StorageLocationID: &locID,
	}, nil)

	result := gqltest.Execute(t, 7, `mutation($id: Int!) {
		updateInventory(id: $id, input: {quantityInStock: 18}) { id quantityInStock totalValue storageLocationId lastRestocked }
	}`, map[string]interface{}{"id": 3}, h)

	require.Empty(t, result.Errors)
	item := result.Data.(map[string]interface{})["updateInventory"].(map[string]interface{})
	assert.Equal(t, 18, item["quantityInStock"])
	assert.Equal(t, 27.0, item["totalValue"])
	assert.Equal(t, 4, item["storageLocationId"])
	assert.Equal(t, "2024-05-01T00:00:00Z", item["lastRestocked"])
	uc.AssertExpectations(t)
}

func TestDeleteInventory_RejectsNonPositiveID(t *testing.T) {
	uc := new(MockUseCase)
	h := NewInventoryHandler(uc, logger.NewNop())

	result := gqltest.Execute(t, 7, `mutation { deleteInventory(id: 0) { id } }`, nil, h)

	assert.Equal(t, "VALIDATION_FAILED", gqltest.Code(result))
	uc.AssertNotCalled(t, "DeleteInventory", mock.Anything, mock.Anything, mock.Anything)
}

func TestQueries_PassCallerIdentity(t *testing.T) {
	uc := new(MockUseCase)
	h := NewInventoryHandler(uc, logger.NewNop())
	uc.On("ListInventories", mock.Anything, int64(0)).Return(nil, apperror.Unauthenticated())
	uc.On("SearchInventories", mock.Anything, int64(5), "bolt").Return([]model.Inventory{{ID: 9, ProductName: "Bolt"}}, nil)

	anonymous := gqltest.Execute(t, 0, `{ allInventories { id } }`, nil, h)
	assert.Equal(t, "UNAUTHENTICATED", gqltest.Code(anonymous))

	found := gqltest.Execute(t, 5, `{ searchInventory(term: "  bolt ") { id productName } }`, nil, h)
	require.Empty(t, found.Errors)
	items := found.Data.(map[string]interface{})["searchInventory"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Bolt", items[0].(map[string]interface{})["productName"])
	uc.AssertExpectations(t)
}
