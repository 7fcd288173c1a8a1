package auditlog

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
)

// Recorder appends audit entries through whatever repository it was given.
// Handing it a transaction-bound repository makes the entry commit or roll
// back together with the change it describes.
type Recorder struct {
	repo Repository
	now  func() time.Time
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

type Option func(*model.AuditLog)

func WithOldValue(v string) Option {
	return func(e *model.AuditLog) { e.OldValue = &v }
}

func WithNewValue(v string) Option {
	return func(e *model.AuditLog) { e.NewValue = &v }
}

func WithDeletedValue(v string) Option {
	return func(e *model.AuditLog) { e.DeletedValue = &v }
}

func (r *Recorder) Record(ctx context.Context, action, table string, recordID, userID int64, opts ...Option) error {
	entry := &model.AuditLog{
		Action:    action,
		TableName: table,
		RecordID:  recordID,
		UserID:    userID,
		Timestamp: r.now().UTC(),
	}
	for _, opt := range opts {
		opt(entry)
	}
	return r.repo.Create(ctx, entry)
}
