package dto

import "github.com/shopspring/decimal"

type AddPurchaseOrderInput struct {
	PurchaseOrderNumber  int64                    `json:"id"`
	SupplierID           int64                    `json:"supplierID"`
	SupplierName         string                   `json:"supplierName"`
	DeliveryWarehouse    string                   `json:"deliveryWarehouse"`
	OrderDate            string                   `json:"orderDate"`
	ExpectedDeliveryDate string                   `json:"expectedDeliveryDate"`
	Notes                string                   `json:"notes"`
	TotalAmount          decimal.Decimal          `json:"totalAmount"`
	Items                []PurchaseOrderItemInput `json:"items"`
}

type PurchaseOrderItemInput struct {
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}
