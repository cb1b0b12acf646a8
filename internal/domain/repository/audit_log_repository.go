package repository

import (
	"context"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.AuditLog, error)
}
