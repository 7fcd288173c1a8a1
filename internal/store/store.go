package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	auditRepo "github.com/fekuna/omnipos-warehouse-service/internal/auditlog/repository"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory"
	invRepo "github.com/fekuna/omnipos-warehouse-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder"
	poRepo "github.com/fekuna/omnipos-warehouse-service/internal/purchaseorder/repository"
	"github.com/fekuna/omnipos-warehouse-service/internal/stockmovement"
	smRepo "github.com/fekuna/omnipos-warehouse-service/internal/stockmovement/repository"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation"
	slRepo "github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/repository"
	"github.com/fekuna/omnipos-warehouse-service/internal/user"
	userRepo "github.com/fekuna/omnipos-warehouse-service/internal/user/repository"
	"github.com/fekuna/omnipos-warehouse-service/internal/warehouse"
	whRepo "github.com/fekuna/omnipos-warehouse-service/internal/warehouse/repository"
	"github.com/fekuna/omnipos-warehouse-service/pkg/database"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// Repositories share one database handle: the pool for reads, a transaction inside Execute.
type Repositories interface {
	Users() user.Repository
	Warehouses() warehouse.Repository
	StorageLocations() storagelocation.Repository
	Inventories() inventory.Repository
	PurchaseOrders() purchaseorder.Repository
	AuditLogs() auditlog.Repository
	StockMovements() stockmovement.Repository
}

// Gateway is what usecases depend on.
type Gateway interface {
	Repositories() Repositories
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type RetryPolicy struct {
	MaxRetries int
	MaxDelay   time.Duration
}

type Store struct {
	db     *sqlx.DB
	retry  RetryPolicy
	logger logger.ZapLogger
}

func New(db *sqlx.DB, retry RetryPolicy, log logger.ZapLogger) *Store {
	return &Store{db: db, retry: retry, logger: log}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Repositories() Repositories {
	return repositories{db: s.db}
}

// Execute runs fn inside one transaction and commits when it returns nil.
// On a transient database failure the whole block, fn included, runs again,
// so fn must not cause effects outside the transaction.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	attempt := 0
	operation := func() (struct{}, error) {
		attempt++
		err := s.runInTx(ctx, fn)
		if err == nil {
			return struct{}{}, nil
		}
		if !database.IsTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		s.logger.Warn("transient database failure, retrying transaction",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return struct{}{}, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	if s.retry.MaxDelay > 0 {
		b.MaxInterval = s.retry.MaxDelay
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(s.retry.MaxRetries+1)),
	)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}

func (s *Store) runInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, s.txOptions())
	if err != nil {
		return pkgerrors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if err := fn(ctx, repositories{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, "commit transaction")
	}
	return nil
}

// Capacity checks read then write occupied_capacity, so Postgres runs them
// under repeatable read on top of the row locks.
func (s *Store) txOptions() *sql.TxOptions {
	if database.IsPostgres(s.db) {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type repositories struct {
	db sqlx.ExtContext
}

func (r repositories) Users() user.Repository { return userRepo.NewPGRepository(r.db) }
func (r repositories) Warehouses() warehouse.Repository {
	return whRepo.NewPGRepository(r.db)
}
func (r repositories) StorageLocations() storagelocation.Repository {
	return slRepo.NewPGRepository(r.db)
}
func (r repositories) Inventories() inventory.Repository { return invRepo.NewPGRepository(r.db) }
func (r repositories) PurchaseOrders() purchaseorder.Repository {
	return poRepo.NewPGRepository(r.db)
}
func (r repositories) AuditLogs() auditlog.Repository { return auditRepo.NewPGRepository(r.db) }
func (r repositories) StockMovements() stockmovement.Repository {
	return smRepo.NewPGRepository(r.db)
}
