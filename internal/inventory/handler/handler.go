package handler

import (
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
)

var _ gql.Registrar = (*InventoryHandler)(nil)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger

	itemType    *graphql.Object
	addedType   *graphql.Object
	deletedType *graphql.Object
	inputType   *graphql.InputObject
	patchType   *graphql.InputObject
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	h := &InventoryHandler{uc: uc, logger: log}

	h.itemType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Inventory",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"itemSKU":           &graphql.Field{Type: graphql.String},
			"productName":       &graphql.Field{Type: graphql.String},
			"category":          &graphql.Field{Type: graphql.String},
			"warehouseLocation": &graphql.Field{Type: graphql.String},
			"rackLocation":      &graphql.Field{Type: graphql.String},
			"quantityInStock":   &graphql.Field{Type: graphql.Int},
			"reorderLevel":      &graphql.Field{Type: graphql.Int},
			"unitOfMeasure":     &graphql.Field{Type: graphql.String},
			"costPerUnit":       &graphql.Field{Type: graphql.Float},
			"totalValue":        &graphql.Field{Type: graphql.Float},
			"lastRestocked":     &graphql.Field{Type: graphql.DateTime},
			"storageLocationId": &graphql.Field{Type: graphql.Int},
		},
	})
	h.addedType = graphql.NewObject(graphql.ObjectConfig{
		Name: "InventoryPayload",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"itemName": &graphql.Field{Type: graphql.String},
			"quantity": &graphql.Field{Type: graphql.Int},
			"userId":   &graphql.Field{Type: graphql.Int},
		},
	})
	h.deletedType = graphql.NewObject(graphql.ObjectConfig{
		Name: "DeletedInventoryPayload",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"itemSKU": &graphql.Field{Type: graphql.String},
		},
	})
	h.inputType = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "InventoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"itemSKU":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"productName":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"category":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"warehouseLocation": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"rackLocation":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"quantityInStock":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"reorderLevel":      &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"unitOfMeasure":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"costPerUnit":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})
	h.patchType = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateInventoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"itemSKU":           &graphql.InputObjectFieldConfig{Type: graphql.String},
			"productName":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"category":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"warehouseLocation": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"rackLocation":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"quantityInStock":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"reorderLevel":      &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"unitOfMeasure":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"costPerUnit":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})
	return h
}

func (h *InventoryHandler) Register(r *gql.Registry) {
	idArg := graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)}}

	r.Query("allInventories", &graphql.Field{
		Type:    graphql.NewList(h.itemType),
		Resolve: h.allInventories,
	})
	r.Query("inventory", &graphql.Field{
		Type:    h.itemType,
		Args:    idArg,
		Resolve: h.inventory,
	})
	r.Query("searchInventory", &graphql.Field{
		Type:    graphql.NewList(h.itemType),
		Args:    graphql.FieldConfigArgument{"term": &graphql.ArgumentConfig{Type: graphql.String}},
		Resolve: h.searchInventory,
	})
	r.Query("lowStockInventories", &graphql.Field{
		Type:    graphql.NewList(h.itemType),
		Resolve: h.lowStockInventories,
	})

	r.Mutation("addInventory", &graphql.Field{
		Type: graphql.NewList(h.addedType),
		Args: graphql.FieldConfigArgument{
			"inventory": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(h.inputType)))},
		},
		Resolve: h.addInventory,
	})
	r.Mutation("updateInventory", &graphql.Field{
		Type: h.itemType,
		Args: graphql.FieldConfigArgument{
			"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(h.patchType)},
		},
		Resolve: h.updateInventory,
	})
	r.Mutation("deleteInventory", &graphql.Field{
		Type:    h.deletedType,
		Args:    idArg,
		Resolve: h.deleteInventory,
	})
}

func (h *InventoryHandler) addInventory(p graphql.ResolveParams) (interface{}, error) {
	var items []dto.InventoryInput
	if err := gql.DecodeArg(p.Args, "inventory", &items); err != nil {
		return nil, err
	}

	added, err := h.uc.AddInventory(p.Context, auth.GetUserID(p.Context), items)
	if err != nil {
		return nil, err
	}

	out := make([]addedPayload, len(added))
	for i, a := range added {
		out[i] = addedPayload{ID: a.ID, ItemName: a.ProductName, Quantity: a.Quantity, UserID: a.UserID}
	}
	return out, nil
}

func (h *InventoryHandler) updateInventory(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	var patch dto.UpdateInventoryInput
	if err := gql.DecodeArg(p.Args, "input", &patch); err != nil {
		return nil, err
	}

	item, err := h.uc.UpdateInventory(p.Context, auth.GetUserID(p.Context), id, &patch)
	if err != nil {
		return nil, err
	}
	return mapInventory(item), nil
}

func (h *InventoryHandler) deleteInventory(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	deleted, err := h.uc.DeleteInventory(p.Context, auth.GetUserID(p.Context), id)
	if err != nil {
		return nil, err
	}
	return deletedPayload{ID: deleted.ID, ItemSKU: deleted.ItemSKU}, nil
}

func (h *InventoryHandler) allInventories(p graphql.ResolveParams) (interface{}, error) {
	items, err := h.uc.ListInventories(p.Context, auth.GetUserID(p.Context))
	if err != nil {
		return nil, err
	}
	return mapInventories(items), nil
}

func (h *InventoryHandler) inventory(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	item, err := h.uc.GetInventory(p.Context, auth.GetUserID(p.Context), id)
	if err != nil {
		return nil, err
	}
	return mapInventory(item), nil
}

func (h *InventoryHandler) searchInventory(p graphql.ResolveParams) (interface{}, error) {
	items, err := h.uc.SearchInventories(p.Context, auth.GetUserID(p.Context), gql.StringArg(p.Args, "term"))
	if err != nil {
		return nil, err
	}
	return mapInventories(items), nil
}

func (h *InventoryHandler) lowStockInventories(p graphql.ResolveParams) (interface{}, error) {
	items, err := h.uc.ListLowStock(p.Context, auth.GetUserID(p.Context))
	if err != nil {
		return nil, err
	}
	return mapInventories(items), nil
}

type inventoryPayload struct {
	ID                int64       `json:"id"`
	ItemSKU           string      `json:"itemSKU"`
	ProductName       string      `json:"productName"`
	Category          string      `json:"category"`
	WarehouseLocation string      `json:"warehouseLocation"`
	RackLocation      string      `json:"rackLocation"`
	QuantityInStock   int         `json:"quantityInStock"`
	ReorderLevel      int         `json:"reorderLevel"`
	UnitOfMeasure     string      `json:"unitOfMeasure"`
	CostPerUnit       float64     `json:"costPerUnit"`
	TotalValue        float64     `json:"totalValue"`
	LastRestocked     time.Time   `json:"lastRestocked"`
	StorageLocationID interface{} `json:"storageLocationId"`
}

type addedPayload struct {
	ID       int64  `json:"id"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
	UserID   int64  `json:"userId"`
}

type deletedPayload struct {
	ID      int64  `json:"id"`
	ItemSKU string `json:"itemSKU"`
}

func mapInventory(m *model.Inventory) *inventoryPayload {
	if m == nil {
		return nil
	}
	out := &inventoryPayload{
		ID:                m.ID,
		ItemSKU:           m.ItemSKU,
		ProductName:       m.ProductName,
		Category:          m.Category,
		WarehouseLocation: m.WarehouseLocation,
		RackLocation:      m.RackLocation,
		QuantityInStock:   m.QuantityInStock,
		ReorderLevel:      m.ReorderLevel,
		UnitOfMeasure:     m.UnitOfMeasure,
		CostPerUnit:       gql.Float(m.CostPerUnit),
		TotalValue:        gql.Float(m.TotalValue),
		LastRestocked:     m.LastRestocked,
	}
	if m.StorageLocationID != nil {
		out.StorageLocationID = *m.StorageLocationID
	}
	return out
}

func mapInventories(items []model.Inventory) []*inventoryPayload {
	out := make([]*inventoryPayload, len(items))
	for i := range items {
		out[i] = mapInventory(&items[i])
	}
	return out
}
