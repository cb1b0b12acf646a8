package repository

import (
	"context"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
)

type DonorProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DonorProfile, error)
	Save(ctx context.Context, profile *entity.DonorProfile) error
	Search(ctx context.Context, filter *entity.DonorFilter) ([]entity.DonorProfile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
