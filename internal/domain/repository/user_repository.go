package repository

import (
	"context"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	// Create inserts the user together with any DonorProfile or BloodBank association set on it.
	Create(ctx context.Context, user *entity.User) error
	// FindByIdentifier matches either username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
