package handler

import (
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/stockmovement"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
)

var _ gql.Registrar = (*StockMovementHandler)(nil)

type StockMovementHandler struct {
	uc           stockmovement.UseCase
	logger       logger.ZapLogger
	movementType *graphql.Object
}

func NewStockMovementHandler(uc stockmovement.UseCase, log logger.ZapLogger) *StockMovementHandler {
	return &StockMovementHandler{
		uc:     uc,
		logger: log,
		movementType: graphql.NewObject(graphql.ObjectConfig{
			Name: "StockMovement",
			Fields: graphql.Fields{
				"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"itemSku":       &graphql.Field{Type: graphql.String},
				"productName":   &graphql.Field{Type: graphql.String},
				"quantity":      &graphql.Field{Type: graphql.Int},
				"type":          &graphql.Field{Type: graphql.String},
				"warehouseName": &graphql.Field{Type: graphql.String},
				"user":          &graphql.Field{Type: graphql.String},
				"timestamp":     &graphql.Field{Type: graphql.DateTime},
			},
		}),
	}
}

func (h *StockMovementHandler) Register(r *gql.Registry) {
	list := graphql.NewList(h.movementType)

	r.Query("getAllStockMovements", &graphql.Field{Type: list, Resolve: h.all})
	r.Query("recentStockMovements", &graphql.Field{
		Type:    list,
		Args:    graphql.FieldConfigArgument{"limit": &graphql.ArgumentConfig{Type: graphql.Int}},
		Resolve: h.recent,
	})
}

func (h *StockMovementHandler) all(p graphql.ResolveParams) (interface{}, error) {
	return movements(h.uc.ListMovements(p.Context, auth.GetUserID(p.Context)))
}

func (h *StockMovementHandler) recent(p graphql.ResolveParams) (interface{}, error) {
	limit := gql.IntArg(p.Args, "limit", 0)
	return movements(h.uc.ListRecentMovements(p.Context, auth.GetUserID(p.Context), limit))
}

type movementPayload struct {
	ID            int64     `json:"id"`
	ItemSku       string    `json:"itemSku"`
	ProductName   string    `json:"productName"`
	Quantity      int       `json:"quantity"`
	Type          string    `json:"type"`
	WarehouseName string    `json:"warehouseName"`
	User          string    `json:"user"`
	Timestamp     time.Time `json:"timestamp"`
}

func movements(items []model.StockMovement, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	out := make([]movementPayload, len(items))
	for i, m := range items {
		out[i] = movementPayload{
			ID:            m.ID,
			ItemSku:       m.ItemSKU,
			ProductName:   m.ProductName,
			Quantity:      m.Quantity,
			Type:          m.Type,
			WarehouseName: m.WarehouseLocation,
			User:          m.UserName,
			Timestamp:     m.Timestamp,
		}
	}
	return out, nil
}
