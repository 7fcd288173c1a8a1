package model

import "time"

const (
	AuditActionAdd    = "Add"
	AuditActionCreate = "Create"
	AuditActionUpdate = "Update"
	AuditActionDelete = "Delete"
	AuditActionLogin  = "Login"

	TableInventories      = "Inventories"
	TableStorageLocations = "StorageLocations"
	TableWarehouses       = "Warehouses"
	TablePurchaseOrders   = "PurchaseOrders"
	TableUsers            = "Users"
)

// AuditLog rows are append-only.
type AuditLog struct {
	ID           int64     `db:"id"`
	Action       string    `db:"action"`
	TableName    string    `db:"table_name"`
	RecordID     int64     `db:"record_id"`
	OldValue     *string   `db:"old_value"`
	NewValue     *string   `db:"new_value"`
	DeletedValue *string   `db:"deleted_value"`
	UserID       int64     `db:"user_id"`
	Timestamp    time.Time `db:"timestamp"`
	UserName     string    `db:"user_name"` // Joined
}
