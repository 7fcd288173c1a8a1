package handler

import (
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder"
	"github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
)

const (
	dateLayout      = "02/01/2006"
	timestampLayout = "02/01/2006 15:04:05"
)

var _ gql.Registrar = (*PurchaseOrderHandler)(nil)

type PurchaseOrderHandler struct {
	uc     purchaseorder.UseCase
	logger logger.ZapLogger

	orderType  *graphql.Object
	statusType *graphql.Object
	auditType  *graphql.Object
	itemInput  *graphql.InputObject
}

func NewPurchaseOrderHandler(uc purchaseorder.UseCase, log logger.ZapLogger) *PurchaseOrderHandler {
	h := &PurchaseOrderHandler{uc: uc, logger: log}

	itemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PurchaseOrderItem",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"productName": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"quantity":    &graphql.Field{Type: graphql.Int},
		},
	})
	h.orderType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PurchaseOrder",
		Fields: graphql.Fields{
			"id":                   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"purchaseOrderNumber":  &graphql.Field{Type: graphql.Int},
			"supplierId":           &graphql.Field{Type: graphql.Int},
			"supplierName":         &graphql.Field{Type: graphql.String},
			"deliveryWarehouse":    &graphql.Field{Type: graphql.String},
			"orderDate":            &graphql.Field{Type: graphql.String},
			"expectedDeliveryDate": &graphql.Field{Type: graphql.String},
			"status":               &graphql.Field{Type: graphql.String},
			"notes":                &graphql.Field{Type: graphql.String},
			"totalAmount":          &graphql.Field{Type: graphql.Float},
			"staffResponsible":     &graphql.Field{Type: graphql.String},
			"items":                &graphql.Field{Type: graphql.NewList(itemType)},
		},
	})
	h.statusType = graphql.NewObject(graphql.ObjectConfig{
		Name: "StatusChangePayload",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"status": &graphql.Field{Type: graphql.String},
		},
	})
	h.auditType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PurchaseOrderAuditPayload",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"action":       &graphql.Field{Type: graphql.String},
			"totalUnits":   &graphql.Field{Type: graphql.Int},
			"supplierName": &graphql.Field{Type: graphql.String},
			"timestamp":    &graphql.Field{Type: graphql.String},
		},
	})
	h.itemInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PurchaseOrderItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"quantity":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	return h
}

func (h *PurchaseOrderHandler) Register(r *gql.Registry) {
	list := graphql.NewList(h.orderType)
	idArg := graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)}}

	r.Query("allPendingPurchaseOrders", &graphql.Field{Type: list, Resolve: h.pending})
	r.Query("allDeliveredPurchasedOrders", &graphql.Field{Type: list, Resolve: h.delivered})
	r.Query("purchaseOrderById", &graphql.Field{Type: h.orderType, Args: idArg, Resolve: h.byID})
	r.Query("purchaseOrderAuditLogs", &graphql.Field{Type: graphql.NewList(h.auditType), Resolve: h.auditLogs})

	r.Mutation("addPurchaseOrder", &graphql.Field{
		Type: h.orderType,
		Args: graphql.FieldConfigArgument{
			"id":                   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			"supplierID":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			"supplierName":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"deliveryWarehouse":    &graphql.ArgumentConfig{Type: graphql.String},
			"orderDate":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"expectedDeliveryDate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"notes":                &graphql.ArgumentConfig{Type: graphql.String},
			"totalAmount":          &graphql.ArgumentConfig{Type: graphql.Float},
			"items":                &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(h.itemInput)))},
		},
		Resolve: h.addPurchaseOrder,
	})
	r.Mutation("changeStatusOfPurchaseOrder", &graphql.Field{
		Type: h.statusType,
		Args: graphql.FieldConfigArgument{
			"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: h.changeStatus,
	})
}

func (h *PurchaseOrderHandler) addPurchaseOrder(p graphql.ResolveParams) (interface{}, error) {
	var input dto.AddPurchaseOrderInput
	if err := gql.DecodeArgs(p.Args, &input); err != nil {
		return nil, err
	}
	po, err := h.uc.AddPurchaseOrder(p.Context, auth.GetUserID(p.Context), &input)
	if err != nil {
		return nil, err
	}
	return mapOrder(po), nil
}

func (h *PurchaseOrderHandler) changeStatus(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	po, err := h.uc.ChangeStatus(p.Context, auth.GetUserID(p.Context), id, gql.StringArg(p.Args, "status"))
	if err != nil {
		return nil, err
	}
	return statusPayload{ID: po.ID, Status: po.Status}, nil
}

func (h *PurchaseOrderHandler) pending(p graphql.ResolveParams) (interface{}, error) {
	return orders(h.uc.ListPending(p.Context, auth.GetUserID(p.Context)))
}

func (h *PurchaseOrderHandler) delivered(p graphql.ResolveParams) (interface{}, error) {
	return orders(h.uc.ListDelivered(p.Context, auth.GetUserID(p.Context)))
}

func (h *PurchaseOrderHandler) byID(p graphql.ResolveParams) (interface{}, error) {
	id, err := gql.IDArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	po, err := h.uc.GetPurchaseOrder(p.Context, auth.GetUserID(p.Context), id)
	if err != nil {
		return nil, err
	}
	return mapOrder(po), nil
}

func (h *PurchaseOrderHandler) auditLogs(p graphql.ResolveParams) (interface{}, error) {
	rows, err := h.uc.ListAuditTrail(p.Context, auth.GetUserID(p.Context))
	if err != nil {
		return nil, err
	}
	out := make([]auditPayload, len(rows))
	for i, a := range rows {
		out[i] = auditPayload{
			ID:           a.ID,
			Action:       a.Action,
			TotalUnits:   a.TotalUnits,
			SupplierName: a.SupplierName,
			Timestamp:    a.Timestamp.UTC().Format(timestampLayout),
		}
	}
	return out, nil
}

func orders(items []model.PurchaseOrder, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	out := make([]*orderPayload, len(items))
	for i := range items {
		out[i] = mapOrder(&items[i])
	}
	return out, nil
}

type orderPayload struct {
	ID                   int64         `json:"id"`
	PurchaseOrderNumber  int64         `json:"purchaseOrderNumber"`
	SupplierID           int64         `json:"supplierId"`
	SupplierName         string        `json:"supplierName"`
	DeliveryWarehouse    string        `json:"deliveryWarehouse"`
	OrderDate            string        `json:"orderDate"`
	ExpectedDeliveryDate string        `json:"expectedDeliveryDate"`
	Status               string        `json:"status"`
	Notes                string        `json:"notes"`
	TotalAmount          float64       `json:"totalAmount"`
	StaffResponsible     string        `json:"staffResponsible"`
	Items                []itemPayload `json:"items"`
}

type itemPayload struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type statusPayload struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type auditPayload struct {
	ID           int64  `json:"id"`
	Action       string `json:"action"`
	TotalUnits   int    `json:"totalUnits"`
	SupplierName string `json:"supplierName"`
	Timestamp    string `json:"timestamp"`
}

func mapOrder(po *model.PurchaseOrder) *orderPayload {
	out := &orderPayload{
		ID:                   po.ID,
		PurchaseOrderNumber:  po.PurchaseOrderNumber,
		SupplierID:           po.SupplierID,
		SupplierName:         po.SupplierName,
		DeliveryWarehouse:    po.DeliveryWarehouse,
		OrderDate:            formatDate(po.OrderDate),
		ExpectedDeliveryDate: formatDate(po.ExpectedDeliveryDate),
		Status:               po.Status,
		Notes:                po.Notes,
		TotalAmount:          gql.Float(po.TotalAmount),
		StaffResponsible:     po.StaffResponsible,
		Items:                make([]itemPayload, len(po.Items)),
	}
	for i, item := range po.Items {
		out.Items[i] = itemPayload{
			ID:          item.ID,
			ProductName: item.ProductName,
			Price:       gql.Float(item.Price),
			Quantity:    item.Quantity,
		}
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
