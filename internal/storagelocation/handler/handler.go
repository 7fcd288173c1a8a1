package handler

import (
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
)

var _ gql.Registrar = (*StorageLocationHandler)(nil)

type StorageLocationHandler struct {
	uc     storagelocation.UseCase
	logger logger.ZapLogger

	locationType *graphql.Object
	deletedType  *graphql.Object
	inputType    *graphql.InputObject
}

func NewStorageLocationHandler(uc storagelocation.UseCase, log logger.ZapLogger) *StorageLocationHandler {
	h := &StorageLocationHandler{uc: uc, logger: log}

	h.locationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "StorageLocation",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"locationCode":      &graphql.Field{Type: graphql.String},
			"sectionName":       &graphql.Field{Type: graphql.String},
			"storageType":       &graphql.Field{Type: graphql.String},
			"unitType":          &graphql.Field{Type: graphql.String},
			"maxCapacity":       &graphql.Field{Type: graphql.Int},
			"occupiedCapacity":  &graphql.Field{Type: graphql.Int},
			"availableCapacity": &graphql.Field{Type: graphql.Int},
			"warehouseId":       &graphql.Field{Type: graphql.Int},
			"warehouseName":     &graphql.Field{Type: graphql.String},
			"createdAt":         &graphql.Field{Type: graphql.DateTime},
		},
	})
	h.deletedType = graphql.NewObject(graphql.ObjectConfig{
		Name: "DeletedStorageLocationPayload",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"locationCode":       &graphql.Field{Type: graphql.String},
			"inventoriesDeleted": &graphql.Field{Type: graphql.Int},
		},
	})
	h.inputType = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddStorageLocationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"locationCode": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"sectionName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"storageType":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"maxCapacity":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"unitType":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"warehouseId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	return h
}

func (h *StorageLocationHandler) Register(r *gql.Registry) {
	list := graphql.NewList(h.locationType)

	r.Query("allStorageLocations", &graphql.Field{Type: list, Resolve: h.allStorageLocations})
	r.Query("storageLocationWarehouse", &graphql.Field{
		Type:    list,
		Args:    graphql.FieldConfigArgument{"warehouseName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}},
		Resolve: h.byWarehouse,
	})
	r.Query("storageLocationSearch", &graphql.Field{
		Type:    list,
		Args:    graphql.FieldConfigArgument{"searchTerm": &graphql.ArgumentConfig{Type: graphql.String}},
		Resolve: h.search,
	})
	r.Query("storageLocationByOrder", &graphql.Field{
		Type:    list,
		Args:    graphql.FieldConfigArgument{"orderBy": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}},
		Resolve: h.byOrder,
	})

	stats := map[string]func(*model.CapacityStats) int{
		"averageUtilizationStatus": func(s *model.CapacityStats) int { return s.AverageUtilization },
		"totalLocations":           func(s *model.CapacityStats) int { return s.TotalLocations },
		"availableSpace":           func(s *model.CapacityStats) int { return s.AvailableSpace },
		"capacityAlert":            func(s *model.CapacityStats) int { return s.CapacityAlerts },
		"totalCapacity":            func(s *model.CapacityStats) int { return s.TotalCapacity },
		"totalOccupiedCapacity":    func(s *model.CapacityStats) int { return s.TotalOccupied },
		"totalAvailableSpace":      func(s *model.CapacityStats) int { return s.TotalAvailableSpace },
	}
	for name, pick := range stats {
		r.Query(name, &graphql.Field{Type: graphql.Int, Resolve: h.stat(pick)})
	}

	r.Mutation("addStorageLocation", &graphql.Field{
		Type: list,
		Args: graphql.FieldConfigArgument{
			"storageLocation": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(h.inputType)))},
		},
		Resolve: h.addStorageLocation,
	})
	r.Mutation("deleteStorageLocation", &graphql.Field{
		Type:    h.deletedType,
		Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)}},
		Resolve: h.deleteStorageLocation,
	})
}

func (h *StorageLocationHandler) addStorageLocation(p graphql.ResolveParams) (interface{}, error) {
	var inputs []dto.AddStorageLocationInput
	if err := gql.DecodeArg(p.Args, "storageLocation", &inputs); err != nil {
		return nil, err
	}
	created, err := h.uc.AddStorageLocations(p.Context, auth.GetUserID(p.Context), inputs)
	if err != nil {
		return nil, err
	}
	return mapLocations(created), nil
}

func (h *StorageLocationHandler) deleteStorageLocation(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	deleted, err := h.uc.DeleteStorageLocation(p.Context, auth.GetUserID(p.Context), id)
	if err != nil {
		return nil, err
	}
	return deletedPayload{ID: deleted.ID, LocationCode: deleted.LocationCode, InventoriesDeleted: deleted.InventoriesDeleted}, nil
}

func (h *StorageLocationHandler) allStorageLocations(p graphql.ResolveParams) (interface{}, error) {
	return h.locations(h.uc.ListStorageLocations(p.Context, auth.GetUserID(p.Context)))
}

func (h *StorageLocationHandler) byWarehouse(p graphql.ResolveParams) (interface{}, error) {
	return h.locations(h.uc.ListByWarehouseName(p.Context, auth.GetUserID(p.Context), gql.StringArg(p.Args, "warehouseName")))
}

func (h *StorageLocationHandler) search(p graphql.ResolveParams) (interface{}, error) {
	return h.locations(h.uc.Search(p.Context, auth.GetUserID(p.Context), gql.StringArg(p.Args, "searchTerm")))
}

func (h *StorageLocationHandler) byOrder(p graphql.ResolveParams) (interface{}, error) {
	return h.locations(h.uc.ListOrdered(p.Context, auth.GetUserID(p.Context), gql.StringArg(p.Args, "orderBy")))
}

func (h *StorageLocationHandler) locations(items []model.StorageLocation, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return mapLocations(items), nil
}

func (h *StorageLocationHandler) stat(pick func(*model.CapacityStats) int) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		s, err := h.uc.CapacityStats(p.Context, auth.GetUserID(p.Context))
		if err != nil {
			return nil, err
		}
		return pick(s), nil
	}
}

type locationPayload struct {
	ID                int64     `json:"id"`
	LocationCode      string    `json:"locationCode"`
	SectionName       string    `json:"sectionName"`
	StorageType       string    `json:"storageType"`
	UnitType          string    `json:"unitType"`
	MaxCapacity       int       `json:"maxCapacity"`
	OccupiedCapacity  int       `json:"occupiedCapacity"`
	AvailableCapacity int       `json:"availableCapacity"`
	WarehouseID       int64     `json:"warehouseId"`
	WarehouseName     string    `json:"warehouseName"`
	CreatedAt         time.Time `json:"createdAt"`
}

type deletedPayload struct {
	ID                 int64  `json:"id"`
	LocationCode       string `json:"locationCode"`
	InventoriesDeleted int64  `json:"inventoriesDeleted"`
}

func mapLocations(items []model.StorageLocation) []locationPayload {
	out := make([]locationPayload, len(items))
	for i := range items {
		l := &items[i]
		out[i] = locationPayload{
			ID:                l.ID,
			LocationCode:      l.LocationCode,
			SectionName:       l.SectionName,
			StorageType:       l.StorageType,
			UnitType:          l.UnitType,
			MaxCapacity:       l.MaxCapacity,
			OccupiedCapacity:  l.OccupiedCapacity,
			AvailableCapacity: l.AvailableCapacity(),
			WarehouseID:       l.WarehouseID,
			WarehouseName:     l.WarehouseName,
			CreatedAt:         l.CreatedAt,
		}
	}
	return out
}
