package repository

import (
	"context"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
)

type BloodRequestRepository interface {
	Create(ctx context.Context, request *entity.BloodRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error)
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]entity.BloodRequest, error)
	FindAll(ctx context.Context, filter *entity.RequestFilter) ([]entity.BloodRequest, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
