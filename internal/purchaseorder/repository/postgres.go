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

const orderColumns = `
    po.id, po.purchase_order_number, po.supplier_id, po.supplier_name, po.delivery_warehouse,
    po.order_date, po.expected_delivery_date, po.status, po.notes, po.total_amount, po.user_id,
    u.first_name || ' ' || u.last_name AS staff_responsible`

const orderFrom = ` FROM purchase_orders po JOIN users u ON u.id = po.user_id`

func (r *PGRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	query := `
        INSERT INTO purchase_orders (
            purchase_order_number, supplier_id, supplier_name, delivery_warehouse,
            order_date, expected_delivery_date, status, notes, total_amount, user_id
        )
        VALUES (
            :purchase_order_number, :supplier_id, :supplier_name, :delivery_warehouse,
            :order_date, :expected_delivery_date, :status, :notes, :total_amount, :user_id
        )
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.DB, query, po)
	if err != nil {
		return pkgerrors.Wrap(err, "insert purchase order")
	}
	po.ID = id

	itemQuery := `
        INSERT INTO purchase_order_items (purchase_order_id, product_name, price, quantity)
        VALUES (:purchase_order_id, :product_name, :price, :quantity)
        RETURNING id
    `
	for i := range po.Items {
		item := &po.Items[i]
		item.PurchaseOrderID = po.ID
		itemID, err := database.InsertReturningID(ctx, r.DB, itemQuery, item)
		if err != nil {
			return pkgerrors.Wrap(err, "insert purchase order item")
		}
		item.ID = itemID
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, userID, id int64) (*model.PurchaseOrder, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+orderFrom+` WHERE po.id = ? AND po.user_id = ?`, id, userID)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, userID, id int64) (*model.PurchaseOrder, error) {
	lock := ""
	if database.IsPostgres(r.DB) {
		lock = " FOR UPDATE OF po"
	}
	return r.findOne(ctx, `SELECT `+orderColumns+orderFrom+` WHERE po.id = ? AND po.user_id = ?`+lock, id, userID)
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := sqlx.GetContext(ctx, r.DB, &po, r.DB.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "select purchase order")
	}

	items := []model.PurchaseOrderItem{}
	itemQuery := `
        SELECT id, purchase_order_id, product_name, price, quantity
        FROM purchase_order_items WHERE purchase_order_id = ? ORDER BY id
    `
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(itemQuery), po.ID); err != nil {
		return nil, pkgerrors.Wrap(err, "select purchase order items")
	}
	po.Items = items
	return &po, nil
}

func (r *PGRepository) FindByStatus(ctx context.Context, userID int64, status string) ([]model.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` WHERE po.user_id = ? AND po.status = ? ORDER BY po.id`

	orders := []model.PurchaseOrder{}
	if err := sqlx.SelectContext(ctx, r.DB, &orders, r.DB.Rebind(query), userID, status); err != nil {
		return nil, pkgerrors.Wrap(err, "select purchase orders")
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := database.RowsAffected(ctx, r.DB, `UPDATE purchase_orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return pkgerrors.Wrap(err, "update purchase order status")
	}
	return nil
}

func (r *PGRepository) FindAuditTrail(ctx context.Context, userID int64) ([]model.PurchaseOrderAudit, error) {
	query := `
        SELECT a.id, a.action, a.timestamp, po.supplier_name,
            COALESCE((SELECT SUM(i.quantity) FROM purchase_order_items i WHERE i.purchase_order_id = po.id), 0) AS total_units
        FROM audit_logs a
        JOIN purchase_orders po ON po.id = a.record_id
        WHERE a.table_name = ? AND a.user_id = ?
        ORDER BY a.timestamp DESC, a.id DESC
    `
	rows := []model.PurchaseOrderAudit{}
	if err := sqlx.SelectContext(ctx, r.DB, &rows, r.DB.Rebind(query), model.TablePurchaseOrders, userID); err != nil {
		return nil, pkgerrors.Wrap(err, "select purchase order audit trail")
	}
	return rows, nil
}
