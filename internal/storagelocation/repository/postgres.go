package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/dto"
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

const locationColumns = `
    sl.id, sl.location_code, sl.section_name, sl.storage_type, sl.unit_type, sl.max_capacity,
    sl.occupied_capacity, sl.warehouse_id, sl.user_id, sl.created_at,
    w.warehouse_name`

const locationFrom = ` FROM storage_locations sl JOIN warehouses w ON w.id = sl.warehouse_id`

func (r *PGRepository) Create(ctx context.Context, loc *model.StorageLocation) error {
	query := `
        INSERT INTO storage_locations (
            location_code, section_name, storage_type, unit_type, max_capacity,
            occupied_capacity, warehouse_id, user_id, created_at
        )
        VALUES (
            :location_code, :section_name, :storage_type, :unit_type, :max_capacity,
            :occupied_capacity, :warehouse_id, :user_id, :created_at
        )
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.DB, query, loc)
	if err != nil {
		return pkgerrors.Wrap(err, "insert storage location")
	}
	loc.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, userID, id int64) (*model.StorageLocation, error) {
	return r.findOne(ctx, `SELECT `+locationColumns+locationFrom+` WHERE sl.id = ? AND sl.user_id = ?`, id, userID)
}

// FindByIDForUpdate locks the storage location row only; FOR UPDATE OF sl leaves the joined warehouse unlocked.
func (r *PGRepository) FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.StorageLocation, error) {
	query := `SELECT ` + locationColumns + locationFrom + ` WHERE sl.id = ? AND sl.user_id = ?` + lockLocations(r.DB)
	return r.findOne(ctx, query, id, userID)
}

// FindBySectionForUpdate picks the oldest of the user's locations with that section name.
func (r *PGRepository) FindBySectionForUpdate(ctx context.Context, userID int64, sectionName string) (*model.StorageLocation, error) {
	query := `SELECT ` + locationColumns + locationFrom +
		` WHERE sl.user_id = ? AND sl.section_name = ? ORDER BY sl.id LIMIT 1` + lockLocations(r.DB)
	return r.findOne(ctx, query, userID, sectionName)
}

func lockLocations(db sqlx.ExtContext) string {
	if database.IsPostgres(db) {
		return " FOR UPDATE OF sl"
	}
	return ""
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.StorageLocation, error) {
	var loc model.StorageLocation
	err := sqlx.GetContext(ctx, r.DB, &loc, r.DB.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "select storage location")
	}
	return &loc, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StorageLocationFilters) ([]model.StorageLocation, error) {
	conditions := []string{"sl.user_id = ?"}
	args := []interface{}{f.UserID}

	if f.WarehouseName != "" {
		conditions = append(conditions, "w.warehouse_name = ?")
		args = append(args, f.WarehouseName)
	}
	if f.Search != "" {
		like := database.ContainsPattern(f.Search)
		conditions = append(conditions,
			"(LOWER(sl.location_code) LIKE ?"+database.LikeEscape+" OR LOWER(w.warehouse_name) LIKE ?"+database.LikeEscape+")")
		args = append(args, like, like)
	}

	orderBy := " ORDER BY sl.id"
	switch f.OrderBy {
	case dto.OrderByUtilization:
		orderBy = " ORDER BY CASE WHEN sl.max_capacity = 0 THEN 0 ELSE CAST(sl.occupied_capacity AS REAL) / sl.max_capacity END DESC, sl.id"
	case dto.OrderByCapacity:
		orderBy = " ORDER BY sl.max_capacity DESC, sl.id"
	}

	query := `SELECT ` + locationColumns + locationFrom + ` WHERE ` + strings.Join(conditions, " AND ") + orderBy

	items := []model.StorageLocation{}
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, pkgerrors.Wrap(err, "select storage locations")
	}
	return items, nil
}

func (r *PGRepository) GetStats(ctx context.Context, userID int64) (*model.CapacityStats, error) {
	query := `
        SELECT
            COUNT(*) AS total_locations,
            COALESCE(SUM(max_capacity), 0) AS total_capacity,
            COALESCE(SUM(occupied_capacity), 0) AS total_occupied,
            COALESCE(SUM(CASE WHEN occupied_capacity >= max_capacity THEN 1 ELSE 0 END), 0) AS capacity_alerts
        FROM storage_locations
        WHERE user_id = ?
    `
	var stats model.CapacityStats
	if err := sqlx.GetContext(ctx, r.DB, &stats, r.DB.Rebind(query), userID); err != nil {
		return nil, pkgerrors.Wrap(err, "aggregate storage locations")
	}
	return &stats, nil
}

func (r *PGRepository) UpdateOccupiedCapacity(ctx context.Context, id int64, occupied int) error {
	_, err := database.RowsAffected(ctx, r.DB, `UPDATE storage_locations SET occupied_capacity = ? WHERE id = ?`, occupied, id)
	if err != nil {
		return pkgerrors.Wrap(err, "update occupied capacity")
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := database.RowsAffected(ctx, r.DB, `DELETE FROM storage_locations WHERE id = ?`, id)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete storage location")
	}
	return n, nil
}

func (r *PGRepository) DeleteByWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	n, err := database.RowsAffected(ctx, r.DB, `DELETE FROM storage_locations WHERE warehouse_id = ?`, warehouseID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete storage locations by warehouse")
	}
	return n, nil
}
