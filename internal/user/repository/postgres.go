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

const userColumns = `id, first_name, last_name, email, password_hash, role`

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var u model.User
	err := sqlx.GetContext(ctx, r.DB, &u, r.DB.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "select user")
	}
	return &u, nil
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (first_name, last_name, email, password_hash, role)
        VALUES (:first_name, :last_name, :email, :password_hash, :role)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.DB, query, u)
	if err != nil {
		return pkgerrors.Wrap(err, "insert user")
	}
	u.ID = id
	return nil
}
