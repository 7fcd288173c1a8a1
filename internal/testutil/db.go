// Package testutil provides an in-memory SQLite store with the production schema.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var dbSeq atomic.Int64

// NewDB opens a fresh migrated database that lives until the test ends.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=1", dbSeq.Add(1))
	db, err := sqlx.Open("sqlite3", dsn)
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.Migrate(context.Background(), db))
	return db
}

// Fixture bundles a store with one seeded user and warehouse.
type Fixture struct {
	Store     *store.Store
	User      *model.User
	Warehouse *model.Warehouse
}

// NewStore wraps NewDB in a Store with no retries.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(NewDB(t), store.RetryPolicy{MaxRetries: 0, MaxDelay: time.Millisecond}, logger.NewNop())
}

// SeedUser inserts a user whose password is "password".
func SeedUser(t *testing.T, db *sqlx.DB, email string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &model.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RolePending,
	}
	res, err := db.NamedExec(`
        INSERT INTO users (first_name, last_name, email, password_hash, role)
        VALUES (:first_name, :last_name, :email, :password_hash, :role)`, u)
	require.NoError(t, err)
	u.ID, err = res.LastInsertId()
	require.NoError(t, err)
	return u
}

func SeedWarehouse(t *testing.T, db *sqlx.DB, userID int64, name string) *model.Warehouse {
	t.Helper()

	w := &model.Warehouse{
		WarehouseName:     name,
		WarehouseCode:     name + "-CODE",
		Region:            "North",
		Status:            "Active",
		CreatedByUserID:   userID,
		CreatedByLastName: "User",
		CreatedAt:         time.Now().UTC(),
	}
	res, err := db.NamedExec(`
        INSERT INTO warehouses (warehouse_name, warehouse_code, region, status, created_by_user_id, created_by_last_name, created_at)
        VALUES (:warehouse_name, :warehouse_code, :region, :status, :created_by_user_id, :created_by_last_name, :created_at)`, w)
	require.NoError(t, err)
	w.ID, err = res.LastInsertId()
	require.NoError(t, err)
	return w
}

func SeedLocation(t *testing.T, db *sqlx.DB, userID, warehouseID int64, section string, max, occupied int) *model.StorageLocation {
	t.Helper()

	loc := &model.StorageLocation{
		LocationCode:     "LOC-" + section,
		SectionName:      section,
		StorageType:      "Shelf",
		UnitType:         "Units",
		MaxCapacity:      max,
		OccupiedCapacity: occupied,
		WarehouseID:      warehouseID,
		UserID:           userID,
		CreatedAt:        time.Now().UTC(),
	}
	res, err := db.NamedExec(`
        INSERT INTO storage_locations (location_code, section_name, storage_type, unit_type, max_capacity, occupied_capacity, warehouse_id, user_id, created_at)
        VALUES (:location_code, :section_name, :storage_type, :unit_type, :max_capacity, :occupied_capacity, :warehouse_id, :user_id, :created_at)`, loc)
	require.NoError(t, err)
	loc.ID, err = res.LastInsertId()
	require.NoError(t, err)
	return loc
}

// SeedInventory inserts an item directly, bypassing capacity bookkeeping.
func SeedInventory(t *testing.T, db *sqlx.DB, inv *model.Inventory) *model.Inventory {
	t.Helper()

	if inv.LastRestocked.IsZero() {
		inv.LastRestocked = time.Now().UTC()
	}
	inv.RecomputeTotalValue()
	res, err := db.NamedExec(`
        INSERT INTO inventories (item_sku, product_name, category, warehouse_location, rack_location, quantity_in_stock,
            reorder_level, unit_of_measure, cost_per_unit, total_value, last_restocked, storage_location_id, user_id)
        VALUES (:item_sku, :product_name, :category, :warehouse_location, :rack_location, :quantity_in_stock,
            :reorder_level, :unit_of_measure, :cost_per_unit, :total_value, :last_restocked, :storage_location_id, :user_id)`, inv)
	require.NoError(t, err)
	inv.ID, err = res.LastInsertId()
	require.NoError(t, err)
	return inv
}

// Count returns the number of rows in table matching the optional where clause.
func Count(t *testing.T, db *sqlx.DB, table, where string, args ...interface{}) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.Get(&n, query, args...))
	return n
}

func Occupied(t *testing.T, db *sqlx.DB, locationID int64) int {
	t.Helper()

	var n int
	require.NoError(t, db.Get(&n, `SELECT occupied_capacity FROM storage_locations WHERE id = ?`, locationID))
	return n
}
