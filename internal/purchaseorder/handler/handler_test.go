package handler

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/gql/gqltest"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder/usecase"
	"github.com/fekuna/omnipos-warehouse-service/internal/testutil"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addOrder = `mutation {
	addPurchaseOrder(
		id: 1001, supplierID: 7, supplierName: "Acme Supply", deliveryWarehouse: "Main",
		orderDate: "2024-03-01", expectedDeliveryDate: "15/03/2024",
		items: [{productName: "Bolt", price: 0.25, quantity: 400}, {productName: "Nut", price: 0.1, quantity: 100}]
	) { id purchaseOrderNumber orderDate expectedDeliveryDate status totalAmount }
}`

func TestPurchaseOrderFlow(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "buyer@example.com")
	h := NewPurchaseOrderHandler(usecase.NewPurchaseOrderUseCase(st, nil, logger.NewNop()), logger.NewNop())

	added := gqltest.Execute(t, u.ID, addOrder, nil, h)
	require.Empty(t, added.Errors)
	po := added.Data.(map[string]interface{})["addPurchaseOrder"].(map[string]interface{})
	assert.Equal(t, 1001, po["purchaseOrderNumber"])
	assert.Equal(t, "01/03/2024", po["orderDate"])
	assert.Equal(t, "15/03/2024", po["expectedDeliveryDate"])
	assert.Equal(t, model.PurchaseOrderPending, po["status"])
	assert.Equal(t, 110.0, po["totalAmount"])
	vars := map[string]interface{}{"id": po["id"]}

	detail := gqltest.Execute(t, u.ID, `query($id: Int!) { purchaseOrderById(id: $id) { staffResponsible items { productName quantity } } }`, vars, h)
	require.Empty(t, detail.Errors)
	order := detail.Data.(map[string]interface{})["purchaseOrderById"].(map[string]interface{})
	assert.Equal(t, "Test User", order["staffResponsible"])
	assert.Len(t, order["items"], 2)

	changed := gqltest.Execute(t, u.ID, `mutation($id: Int!) { changeStatusOfPurchaseOrder(id: $id, status: "Delivered") { id status } }`, vars, h)
	require.Empty(t, changed.Errors)
	assert.Equal(t, "Delivered", changed.Data.(map[string]interface{})["changeStatusOfPurchaseOrder"].(map[string]interface{})["status"])

	again := gqltest.Execute(t, u.ID, `mutation($id: Int!) { changeStatusOfPurchaseOrder(id: $id, status: "Delivered") { id } }`, vars, h)
	assert.Equal(t, "VALIDATION_FAILED", gqltest.Code(again))

	delivered := gqltest.Execute(t, u.ID, `{ allDeliveredPurchasedOrders { id staffResponsible } allPendingPurchaseOrders { id } }`, nil, h)
	require.Empty(t, delivered.Errors)
	assert.Len(t, delivered.Data.(map[string]interface{})["allDeliveredPurchasedOrders"], 1)
	assert.Len(t, delivered.Data.(map[string]interface{})["allPendingPurchaseOrders"], 0)

	audits := gqltest.Execute(t, u.ID, `{ purchaseOrderAuditLogs { action totalUnits supplierName timestamp } }`, nil, h)
	require.Empty(t, audits.Errors)
	rows := audits.Data.(map[string]interface{})["purchaseOrderAuditLogs"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, 500, first["totalUnits"])
	_, err := time.Parse(timestampLayout, first["timestamp"].(string))
	assert.NoError(t, err)
}

func TestAddPurchaseOrder_RejectsEmptyItems(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "buyer@example.com")
	h := NewPurchaseOrderHandler(usecase.NewPurchaseOrderUseCase(st, nil, logger.NewNop()), logger.NewNop())

	result := gqltest.Execute(t, u.ID, `mutation {
		addPurchaseOrder(id: 1, supplierID: 1, supplierName: "Acme", orderDate: "2024-03-01",
			expectedDeliveryDate: "2024-03-02", items: []) { id }
	}`, nil, h)

	assert.Equal(t, "VALIDATION_FAILED", gqltest.Code(result))
}
