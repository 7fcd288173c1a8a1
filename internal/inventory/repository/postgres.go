package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/pkg/database"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"
)

type PGRepository struct {
	DB sqlx.ExtContext
}

func NewPGRepository(db sqlx.ExtContext) *PGRepository {
	return &PGRepository{DB: db}
}

const inventoryColumns = `
    id, item_sku, product_name, category, warehouse_location, rack_location,
    quantity_in_stock, reorder_level, unit_of_measure, cost_per_unit, total_value,
    last_restocked, storage_location_id, user_id`

func (r *PGRepository) FindByID(ctx context.Context, userID, id int64) (*model.Inventory, error) {
	return r.findOne(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE id = ? AND user_id = ?`, id, userID)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = ? AND user_id = ?` + database.ForUpdate(r.DB)
	return r.findOne(ctx, query, id, userID)
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Inventory, error) {
	var inv model.Inventory
	err := sqlx.GetContext(ctx, r.DB, &inv, r.DB.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "select inventory")
	}
	return &inv, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{f.UserID}

	if f.Search != "" {
		like := database.ContainsPattern(f.Search)
		conditions = append(conditions,
			"(LOWER(item_sku) LIKE ?"+database.LikeEscape+
				" OR LOWER(product_name) LIKE ?"+database.LikeEscape+
				" OR LOWER(category) LIKE ?"+database.LikeEscape+")")
		args = append(args, like, like, like)
	}
	if f.LowStock {
		conditions = append(conditions, "quantity_in_stock <= reorder_level")
	}
	if len(f.IDs) > 0 {
		conditions = append(conditions, "id IN (?"+strings.Repeat(", ?", len(f.IDs)-1)+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY id`

	items := []model.Inventory{}
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, pkgerrors.Wrap(err, "select inventories")
	}
	return items, nil
}

func (r *PGRepository) ExistsSKU(ctx context.Context, userID int64, sku string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM inventories WHERE user_id = ? AND item_sku = ? AND id <> ?`
	if err := sqlx.GetContext(ctx, r.DB, &count, r.DB.Rebind(query), userID, sku, excludeID); err != nil {
		return false, pkgerrors.Wrap(err, "count inventory sku")
	}
	return count > 0, nil
}

func (r *PGRepository) Create(ctx context.Context, inv *model.Inventory) error {
	query := `
        INSERT INTO inventories (
            item_sku, product_name, category, warehouse_location, rack_location,
            quantity_in_stock, reorder_level, unit_of_measure, cost_per_unit, total_value,
            last_restocked, storage_location_id, user_id
        )
        VALUES (
            :item_sku, :product_name, :category, :warehouse_location, :rack_location,
            :quantity_in_stock, :reorder_level, :unit_of_measure, :cost_per_unit, :total_value,
            :last_restocked, :storage_location_id, :user_id
        )
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.DB, query, inv)
	if err != nil {
		return pkgerrors.Wrap(err, "insert inventory")
	}
	inv.ID = id
	return nil
}

func (r *PGRepository) Update(ctx context.Context, inv *model.Inventory) error {
	query := `
        UPDATE inventories SET
            item_sku = :item_sku,
            product_name = :product_name,
            category = :category,
            warehouse_location = :warehouse_location,
            rack_location = :rack_location,
            quantity_in_stock = :quantity_in_stock,
            reorder_level = :reorder_level,
            unit_of_measure = :unit_of_measure,
            cost_per_unit = :cost_per_unit,
            total_value = :total_value,
            last_restocked = :last_restocked
        WHERE id = :id AND user_id = :user_id
    `
	if _, err := sqlx.NamedExecContext(ctx, r.DB, query, inv); err != nil {
		return pkgerrors.Wrap(err, "update inventory")
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	if _, err := database.RowsAffected(ctx, r.DB, `DELETE FROM inventories WHERE id = ?`, id); err != nil {
		return pkgerrors.Wrap(err, "delete inventory")
	}
	return nil
}

func (r *PGRepository) DeleteByStorageLocation(ctx context.Context, storageLocationID int64) (int64, error) {
	n, err := database.RowsAffected(ctx, r.DB, `DELETE FROM inventories WHERE storage_location_id = ?`, storageLocationID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete inventories by storage location")
	}
	return n, nil
}

func (r *PGRepository) DeleteByWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	query := `
        DELETE FROM inventories
        WHERE storage_location_id IN (SELECT id FROM storage_locations WHERE warehouse_id = ?)
    `
	n, err := database.RowsAffected(ctx, r.DB, query, warehouseID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete inventories by warehouse")
	}
	return n, nil
}
