package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
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

func (r *PGRepository) Create(ctx context.Context, e *model.AuditLog) error {
	query := `
        INSERT INTO audit_logs (
            action, table_name, record_id, old_value, new_value, deleted_value, user_id, timestamp
        )
        VALUES (
            :action, :table_name, :record_id, :old_value, :new_value, :deleted_value, :user_id, :timestamp
        )
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.DB, query, e)
	if err != nil {
		return errors.Wrap(err, "insert audit log")
	}
	e.ID = id
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.AuditLogFilters) ([]model.AuditLog, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.UserID != 0 {
		conditions = append(conditions, "a.user_id = ?")
		args = append(args, f.UserID)
	}
	if f.TableName != "" {
		conditions = append(conditions, "a.table_name = ?")
		args = append(args, f.TableName)
	}

	query := `
        SELECT a.id, a.action, a.table_name, a.record_id, a.old_value, a.new_value,
               a.deleted_value, a.user_id, a.timestamp,
               u.first_name || ' ' || u.last_name AS user_name
        FROM audit_logs a
        JOIN users u ON u.id = a.user_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.timestamp DESC, a.id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	items := []model.AuditLog{}
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "select audit logs")
	}
	return items, nil
}
