package repository

import (
	"app/internal/domain/model"
	"context"
)

type AuditLogFilter struct {
	ActorUserID *int64
	Action      string
	Limit       int
}

// 管理者操作ログの保存・参照
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
