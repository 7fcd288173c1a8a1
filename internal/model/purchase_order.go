package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PurchaseOrderPending   = "Pending"
	PurchaseOrderDelivered = "Delivered"
)

type PurchaseOrder struct {
	ID                   int64               `db:"id"`
	PurchaseOrderNumber  int64               `db:"purchase_order_number"`
	SupplierID           int64               `db:"supplier_id"`
	SupplierName         string              `db:"supplier_name"`
	DeliveryWarehouse    string              `db:"delivery_warehouse"`
	OrderDate            time.Time           `db:"order_date"`
	ExpectedDeliveryDate time.Time           `db:"expected_delivery_date"`
	Status               string              `db:"status"`
	Notes                string              `db:"notes"`
	TotalAmount          decimal.Decimal     `db:"total_amount"`
	UserID               int64               `db:"user_id"`
	StaffResponsible     string              `db:"staff_responsible"` // Joined
	Items                []PurchaseOrderItem `db:"-"`
}

type PurchaseOrderItem struct {
	ID              int64           `db:"id"`
	PurchaseOrderID int64           `db:"purchase_order_id"`
	ProductName     string          `db:"product_name"`
	Price           decimal.Decimal `db:"price"`
	Quantity        int             `db:"quantity"`
}

// PurchaseOrderAudit is an audit row on purchase orders joined with the order it touched.
type PurchaseOrderAudit struct {
	ID           int64     `db:"id"`
	Action       string    `db:"action"`
	TotalUnits   int       `db:"total_units"`
	SupplierName string    `db:"supplier_name"`
	Timestamp    time.Time `db:"timestamp"`
}
