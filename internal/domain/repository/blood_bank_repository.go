package repository

import (
	"context"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
)

type BloodBankRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodBank, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.BloodBank, error)
	Save(ctx context.Context, bank *entity.BloodBank) error
	Search(ctx context.Context, filter *entity.BloodBankFilter) ([]entity.BloodBank, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
