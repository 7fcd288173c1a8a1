package handler

import (
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/gql"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/graphql-go/graphql"
)

var _ gql.Registrar = (*AuditLogHandler)(nil)

type AuditLogHandler struct {
	uc      auditlog.UseCase
	logger  logger.ZapLogger
	logType *graphql.Object
}

func NewAuditLogHandler(uc auditlog.UseCase, log logger.ZapLogger) *AuditLogHandler {
	return &AuditLogHandler{
		uc:     uc,
		logger: log,
		logType: graphql.NewObject(graphql.ObjectConfig{
			Name: "AuditLog",
			Fields: graphql.Fields{
				"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"action":       &graphql.Field{Type: graphql.String},
				"tableName":    &graphql.Field{Type: graphql.String},
				"recordId":     &graphql.Field{Type: graphql.Int},
				"oldValue":     &graphql.Field{Type: graphql.String},
				"newValue":     &graphql.Field{Type: graphql.String},
				"deletedValue": &graphql.Field{Type: graphql.String},
				"userId":       &graphql.Field{Type: graphql.Int},
				"userName":     &graphql.Field{Type: graphql.String},
				"timestamp":    &graphql.Field{Type: graphql.DateTime},
			},
		}),
	}
}

func (h *AuditLogHandler) Register(r *gql.Registry) {
	r.Query("allAuditLogs", &graphql.Field{
		Type:    graphql.NewList(h.logType),
		Resolve: h.allAuditLogs,
	})
}

func (h *AuditLogHandler) allAuditLogs(p graphql.ResolveParams) (interface{}, error) {
	logs, err := h.uc.ListAuditLogs(p.Context, auth.GetUserID(p.Context))
	if err != nil {
		return nil, err
	}

	out := make([]logPayload, len(logs))
	for i, l := range logs {
		out[i] = logPayload{
			ID:           l.ID,
			Action:       l.Action,
			TableName:    l.TableName,
			RecordID:     l.RecordID,
			OldValue:     optional(l.OldValue),
			NewValue:     optional(l.NewValue),
			DeletedValue: optional(l.DeletedValue),
			UserID:       l.UserID,
			UserName:     l.UserName,
			Timestamp:    l.Timestamp,
		}
	}
	return out, nil
}

type logPayload struct {
	ID           int64       `json:"id"`
	Action       string      `json:"action"`
	TableName    string      `json:"tableName"`
	RecordID     int64       `json:"recordId"`
	OldValue     interface{} `json:"oldValue"`
	NewValue     interface{} `json:"newValue"`
	DeletedValue interface{} `json:"deletedValue"`
	UserID       int64       `json:"userId"`
	UserName     string      `json:"userName"`
	Timestamp    time.Time   `json:"timestamp"`
}

// optional turns a nil column into a GraphQL null.
func optional(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
