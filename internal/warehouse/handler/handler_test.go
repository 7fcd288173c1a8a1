package handler

import (
	"testing"

	"github.com/fekuna/omnipos-warehouse-service/internal/gql/gqltest"
	"github.com/fekuna/omnipos-warehouse-service/internal/testutil"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse/usecase"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseLifecycle(t *testing.T) {
	st := testutil.NewStore(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")
	h := NewWarehouseHandler(usecase.NewWarehouseUseCase(st, nil, logger.NewNop()), logger.NewNop())

	added := gqltest.Execute(t, u.ID, `mutation {
		addWarehouse(input: [{warehouseName: "North", warehouseCode: "N-1", address: "1 Dock Rd"}]) { id name location }
	}`, nil, h)
	require.Empty(t, added.Errors)
	rows := added.Data.(map[string]interface{})["addWarehouse"].([]interface{})
	require.Len(t, rows, 1)
	created := rows[0].(map[string]interface{})
	assert.Equal(t, "North", created["name"])
	assert.Equal(t, "1 Dock Rd", created["location"])
	id := created["id"]

	updated := gqltest.Execute(t, u.ID, `mutation($id: Int!) {
		updateWarehouse(id: $id, input: {region: "EU"}) { warehouseName warehouseCode region createdByLastName }
	}`, map[string]interface{}{"id": id}, h)
	require.Empty(t, updated.Errors)
	w := updated.Data.(map[string]interface{})["updateWarehouse"].(map[string]interface{})
	assert.Equal(t, "North", w["warehouseName"])
	assert.Equal(t, "EU", w["region"])
	assert.Equal(t, "User", w["createdByLastName"])

	summary := gqltest.Execute(t, u.ID, `query($id: Int!) { warehouse(id: $id) { warehouseId totalProducts capacityUtilization } }`,
		map[string]interface{}{"id": id}, h)
	require.Empty(t, summary.Errors)
	assert.Equal(t, 0, summary.Data.(map[string]interface{})["warehouse"].(map[string]interface{})["capacityUtilization"])

	deleted := gqltest.Execute(t, u.ID, `mutation($id: Int!) { deleteWarehouse(id: $id) { id warehouseName locationsDeleted } }`,
		map[string]interface{}{"id": id}, h)
	require.Empty(t, deleted.Errors)
	assert.Equal(t, "North", deleted.Data.(map[string]interface{})["deleteWarehouse"].(map[string]interface{})["warehouseName"])
	assert.Equal(t, 0, testutil.Count(t, st.DB(), "warehouses", ""))
}

func TestWarehouseErrors(t *testing.T) {
	st := testutil.NewStore(t)
	owner := testutil.SeedUser(t, st.DB(), "owner@example.com")
	other := testutil.SeedUser(t, st.DB(), "other@example.com")
	wh := testutil.SeedWarehouse(t, st.DB(), owner.ID, "Main")
	h := NewWarehouseHandler(usecase.NewWarehouseUseCase(st, nil, logger.NewNop()), logger.NewNop())
	vars := map[string]interface{}{"id": wh.ID}

	tests := []struct {
		name   string
		userID int64
		query  string
		code   string
	}{
		{"anonymous list", 0, `{ allWarehouses { id } }`, "UNAUTHENTICATED"},
		{"foreign delete", other.ID, `mutation($id: Int!) { deleteWarehouse(id: $id) { id } }`, "NOT_FOUND_OR_FORBIDDEN"},
		{"foreign summary", other.ID, `query($id: Int!) { warehouse(id: $id) { warehouseId } }`, "NOT_FOUND"},
		{"blank name", owner.ID, `mutation { addWarehouse(input: [{warehouseName: " ", warehouseCode: "X"}]) { id } }`, "VALIDATION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gqltest.Execute(t, tt.userID, tt.query, vars, h)

			assert.Equal(t, tt.code, gqltest.Code(result))
		})
	}
}
