package handler

import (
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
)

var _ gql.Registrar = (*WarehouseHandler)(nil)

type WarehouseHandler struct {
	uc     warehouse.UseCase
	logger logger.ZapLogger

	warehouseType *graphql.Object
	createdType   *graphql.Object
	summaryType   *graphql.Object
	deletedType   *graphql.Object
	inputType     *graphql.InputObject
	patchType     *graphql.InputObject
}

func NewWarehouseHandler(uc warehouse.UseCase, log logger.ZapLogger) *WarehouseHandler {
	h := &WarehouseHandler{uc: uc, logger: log}

	h.warehouseType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Warehouse",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"warehouseName":     &graphql.Field{Type: graphql.String},
			"warehouseCode":     &graphql.Field{Type: graphql.String},
			"address":           &graphql.Field{Type: graphql.String},
			"manager":           &graphql.Field{Type: graphql.String},
			"contactEmail":      &graphql.Field{Type: graphql.String},
			"region":            &graphql.Field{Type: graphql.String},
			"status":            &graphql.Field{Type: graphql.String},
			"createdByLastName": &graphql.Field{Type: graphql.String},
			"createdAt":         &graphql.Field{Type: graphql.DateTime},
		},
	})
	h.createdType = graphql.NewObject(graphql.ObjectConfig{
		Name: "WarehousePayload",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":     &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: graphql.String},
		},
	})
	h.summaryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "SelectedWarehousePayload",
		Fields: graphql.Fields{
			"warehouseId":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"warehouseName":       &graphql.Field{Type: graphql.String},
			"warehouseCode":       &graphql.Field{Type: graphql.String},
			"address":             &graphql.Field{Type: graphql.String},
			"manager":             &graphql.Field{Type: graphql.String},
			"region":              &graphql.Field{Type: graphql.String},
			"status":              &graphql.Field{Type: graphql.String},
			"contactEmail":        &graphql.Field{Type: graphql.String},
			"totalProducts":       &graphql.Field{Type: graphql.Int},
			"availableSectors":    &graphql.Field{Type: graphql.Int},
			"maxCapacity":         &graphql.Field{Type: graphql.Int},
			"occupiedCapacity":    &graphql.Field{Type: graphql.Int},
			"capacityUtilization": &graphql.Field{Type: graphql.Int},
		},
	})
	h.deletedType = graphql.NewObject(graphql.ObjectConfig{
		Name: "DeletedWarehousePayload",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"warehouseName":      &graphql.Field{Type: graphql.String},
			"inventoriesDeleted": &graphql.Field{Type: graphql.Int},
			"locationsDeleted":   &graphql.Field{Type: graphql.Int},
		},
	})

	inputFields := func(required bool) graphql.InputObjectConfigFieldMap {
		name, code := graphql.Input(graphql.String), graphql.Input(graphql.String)
		if required {
			name, code = graphql.NewNonNull(graphql.String), graphql.NewNonNull(graphql.String)
		}
		return graphql.InputObjectConfigFieldMap{
			"warehouseName": &graphql.InputObjectFieldConfig{Type: name},
			"warehouseCode": &graphql.InputObjectFieldConfig{Type: code},
			"address":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"manager":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"contactEmail":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"region":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		}
	}
	h.inputType = graphql.NewInputObject(graphql.InputObjectConfig{Name: "AddWarehouseInput", Fields: inputFields(true)})
	h.patchType = graphql.NewInputObject(graphql.InputObjectConfig{Name: "UpdateWarehouseInput", Fields: inputFields(false)})
	return h
}

func (h *WarehouseHandler) Register(r *gql.Registry) {
	idArg := graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)}}

	r.Query("allWarehouses", &graphql.Field{
		Type:    graphql.NewList(h.warehouseType),
		Resolve: h.allWarehouses,
	})
	r.Query("warehouse", &graphql.Field{
		Type:    h.summaryType,
		Args:    idArg,
		Resolve: h.warehouse,
	})

	r.Mutation("addWarehouse", &graphql.Field{
		Type: graphql.NewList(h.createdType),
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(h.inputType)))},
		},
		Resolve: h.addWarehouse,
	})
	r.Mutation("updateWarehouse", &graphql.Field{
		Type: h.warehouseType,
		Args: graphql.FieldConfigArgument{
			"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(h.patchType)},
		},
		Resolve: h.updateWarehouse,
	})
	r.Mutation("deleteWarehouse", &graphql.Field{
		Type:    h.deletedType,
		Args:    idArg,
		Resolve: h.deleteWarehouse,
	})
}

func (h *WarehouseHandler) addWarehouse(p graphql.ResolveParams) (interface{}, error) {
	var inputs []dto.AddWarehouseInput
	if err := gql.DecodeArg(p.Args, "input", &inputs); err != nil {
		return nil, err
	}

	created, err := h.uc.AddWarehouses(p.Context, auth.GetUserID(p.Context), inputs)
	if err != nil {
		return nil, err
	}

	out := make([]createdPayload, len(created))
	for i, w := range created {
		out[i] = createdPayload{ID: w.ID, Name: w.WarehouseName, Location: w.Address}
	}
	return out, nil
}

func (h *WarehouseHandler) updateWarehouse(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	var patch dto.UpdateWarehouseInput
	if err := gql.DecodeArg(p.Args, "input", &patch); err != nil {
		return nil, err
	}

	w, err := h.uc.UpdateWarehouse(p.Context, auth.GetUserID(p.Context), id, &patch)
	if err != nil {
		return nil, err
	}
	return mapWarehouse(w), nil
}

func (h *WarehouseHandler) deleteWarehouse(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	deleted, err := h.uc.DeleteWarehouse(p.Context, auth.GetUserID(p.Context), id)
	if err != nil {
		return nil, err
	}
	return deletedPayload{
		ID:                 deleted.ID,
		WarehouseName:      deleted.WarehouseName,
		InventoriesDeleted: deleted.InventoriesDeleted,
		LocationsDeleted:   deleted.LocationsDeleted,
	}, nil
}

func (h *WarehouseHandler) allWarehouses(p graphql.ResolveParams) (interface{}, error) {
	items, err := h.uc.ListWarehouses(p.Context, auth.GetUserID(p.Context))
	if err != nil {
		return nil, err
	}
	out := make([]*warehousePayload, len(items))
	for i := range items {
		out[i] = mapWarehouse(&items[i])
	}
	return out, nil
}

func (h *WarehouseHandler) warehouse(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	s, err := h.uc.GetWarehouse(p.Context, auth.GetUserID(p.Context), id)
	if err != nil {
		return nil, err
	}
	return summaryPayload{
		WarehouseID:         s.ID,
		WarehouseName:       s.WarehouseName,
		WarehouseCode:       s.WarehouseCode,
		Address:             s.Address,
		Manager:             s.Manager,
		Region:              s.Region,
		Status:              s.Status,
		ContactEmail:        s.ContactEmail,
		TotalProducts:       s.TotalProducts,
		AvailableSectors:    s.AvailableSectors,
		MaxCapacity:         s.MaxCapacity,
		OccupiedCapacity:    s.OccupiedCapacity,
		CapacityUtilization: s.CapacityUtilization,
	}, nil
}

type warehousePayload struct {
	ID                int64     `json:"id"`
	WarehouseName     string    `json:"warehouseName"`
	WarehouseCode     string    `json:"warehouseCode"`
	Address           string    `json:"address"`
	Manager           string    `json:"manager"`
	ContactEmail      string    `json:"contactEmail"`
	Region            string    `json:"region"`
	Status            string    `json:"status"`
	CreatedByLastName string    `json:"createdByLastName"`
	CreatedAt         time.Time `json:"createdAt"`
}

type createdPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type summaryPayload struct {
	WarehouseID         int64  `json:"warehouseId"`
	WarehouseName       string `json:"warehouseName"`
	WarehouseCode       string `json:"warehouseCode"`
	Address             string `json:"address"`
	Manager             string `json:"manager"`
	Region              string `json:"region"`
	Status              string `json:"status"`
	ContactEmail        string `json:"contactEmail"`
	TotalProducts       int    `json:"totalProducts"`
	AvailableSectors    int    `json:"availableSectors"`
	MaxCapacity         int    `json:"maxCapacity"`
	OccupiedCapacity    int    `json:"occupiedCapacity"`
	CapacityUtilization int    `json:"capacityUtilization"`
}

type deletedPayload struct {
	ID                 int64  `json:"id"`
	WarehouseName      string `json:"warehouseName"`
	InventoriesDeleted int64  `json:"inventoriesDeleted"`
	LocationsDeleted   int64  `json:"locationsDeleted"`
}

func mapWarehouse(m *model.Warehouse) *warehousePayload {
	if m == nil {
		return nil
	}
	return &warehousePayload{
		ID:                m.ID,
		WarehouseName:     m.WarehouseName,
		WarehouseCode:     m.WarehouseCode,
		Address:           m.Address,
		Manager:           m.Manager,
		ContactEmail:      m.ContactEmail,
		Region:            m.Region,
		Status:            m.Status,
		CreatedByLastName: m.CreatedByLastName,
		CreatedAt:         m.CreatedAt,
	}
}
