package dto

type AuditLogFilters struct {
	UserID    int64
	TableName string
	Limit     int
}
