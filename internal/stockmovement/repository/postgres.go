package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/stockmovement/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type PGRepository struct {
	DB sqlx.ExtContext
}

func NewPGRepository(db sqlx.ExtContext) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            item_sku, product_name, quantity, type, warehouse_location, user_id, timestamp
        )
        VALUES (
            :item_sku, :product_name, :quantity, :type, :warehouse_location, :user_id, :timestamp
        )
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.DB, query, m)
	if err != nil {
		return errors.Wrap(err, "insert stock movement")
	}
	m.ID = id
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.UserID != 0 {
		conditions = append(conditions, "m.user_id = ?")
		args = append(args, f.UserID)
	}
	if f.ItemSKU != "" {
		conditions = append(conditions, "m.item_sku = ?")
		args = append(args, f.ItemSKU)
	}
	if f.Type != "" {
		conditions = append(conditions, "m.type = ?")
		args = append(args, f.Type)
	}

	query := `
        SELECT m.id, m.item_sku, m.product_name, m.quantity, m.type, m.warehouse_location,
               m.user_id, m.timestamp,
               u.first_name || ' ' || u.last_name AS user_name
        FROM stock_movements m
        JOIN users u ON u.id = m.user_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.timestamp DESC, m.id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	items := []model.StockMovement{}
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "select stock movements")
	}
	return items, nil
}
