package repository

import (
	"context"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
)

type BloodStockRepository interface {
	FindByBankAndGroup(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup) (*entity.BloodStock, error)
	// FindAll returns entries with their BloodBank preloaded.
	FindAll(ctx context.Context, filter *entity.StockFilter) ([]entity.BloodStock, error)
	Create(ctx context.Context, stock *entity.BloodStock) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	DeleteByBankID(ctx context.Context, bankID uuid.UUID) (int64, error)
}
