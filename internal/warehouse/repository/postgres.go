package repository

import (
	"context"
	"database/sql"
	"errors"

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

const warehouseColumns = `
    w.id, w.warehouse_name, w.warehouse_code, w.address, w.manager, w.contact_email,
    w.region, w.status, w.created_by_user_id, w.created_by_last_name, w.created_at`

func (r *PGRepository) Create(ctx context.Context, w *model.Warehouse) error {
	query := `
        INSERT INTO warehouses (
            warehouse_name, warehouse_code, address, manager, contact_email,
            region, status, created_by_user_id, created_by_last_name, created_at
        )
        VALUES (
            :warehouse_name, :warehouse_code, :address, :manager, :contact_email,
            :region, :status, :created_by_user_id, :created_by_last_name, :created_at
        )
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.DB, query, w)
	if err != nil {
		return pkgerrors.Wrap(err, "insert warehouse")
	}
	w.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, userID, id int64) (*model.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses w WHERE w.id = ? AND w.created_by_user_id = ?`
	return r.findOne(ctx, query, id, userID)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses w WHERE w.id = ? AND w.created_by_user_id = ?` +
		database.ForUpdate(r.DB)
	return r.findOne(ctx, query, id, userID)
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Warehouse, error) {
	var w model.Warehouse
	err := sqlx.GetContext(ctx, r.DB, &w, r.DB.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "select warehouse")
	}
	return &w, nil
}

func (r *PGRepository) FindAll(ctx context.Context, userID int64) ([]model.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses w WHERE w.created_by_user_id = ? ORDER BY w.id`

	items := []model.Warehouse{}
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(query), userID); err != nil {
		return nil, pkgerrors.Wrap(err, "select warehouses")
	}
	return items, nil
}

func (r *PGRepository) GetSummary(ctx context.Context, userID, id int64) (*model.WarehouseSummary, error) {
	query := `
        SELECT ` + warehouseColumns + `,
            (SELECT COUNT(*) FROM inventories i
                JOIN storage_locations sl ON sl.id = i.storage_location_id
                WHERE sl.warehouse_id = w.id) AS total_products,
            (SELECT COUNT(*) FROM storage_locations sl
                WHERE sl.warehouse_id = w.id AND sl.occupied_capacity < sl.max_capacity) AS available_sectors,
            (SELECT COALESCE(SUM(sl.max_capacity), 0) FROM storage_locations sl
                WHERE sl.warehouse_id = w.id) AS max_capacity,
            (SELECT COALESCE(SUM(sl.occupied_capacity), 0) FROM storage_locations sl
                WHERE sl.warehouse_id = w.id) AS occupied_capacity
        FROM warehouses w
        WHERE w.id = ? AND w.created_by_user_id = ?
    `
	var s model.WarehouseSummary
	err := sqlx.GetContext(ctx, r.DB, &s, r.DB.Rebind(query), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "select warehouse summary")
	}
	if s.MaxCapacity > 0 {
		s.CapacityUtilization = s.OccupiedCapacity * 100 / s.MaxCapacity
	}
	return &s, nil
}

func (r *PGRepository) Update(ctx context.Context, w *model.Warehouse) error {
	query := `
        UPDATE warehouses SET
            warehouse_name = :warehouse_name,
            warehouse_code = :warehouse_code,
            address = :address,
            manager = :manager,
            contact_email = :contact_email,
            region = :region,
            status = :status
        WHERE id = :id
    `
	if _, err := sqlx.NamedExecContext(ctx, r.DB, query, w); err != nil {
		return pkgerrors.Wrap(err, "update warehouse")
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := database.RowsAffected(ctx, r.DB, `DELETE FROM warehouses WHERE id = ?`, id)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete warehouse")
	}
	return n, nil
}
