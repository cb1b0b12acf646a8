package repository

import (
	"context"
	"errors"

	"nearest-blood-locator/internal/domain/entity"
	domainRepo "nearest-blood-locator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bloodStockRepository struct {
	db *gorm.DB
}

func NewBloodStockRepository(db *gorm.DB) domainRepo.BloodStockRepository {
	return &bloodStockRepository{db: db}
}

func (r *bloodStockRepository) FindByBankAndGroup(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup) (*entity.BloodStock, error) {
	var stock entity.BloodStock
	err := conn(ctx, r.db).
		Where("blood_bank_id = ? AND blood_group = ?", bankID, group).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *bloodStockRepository) FindAll(ctx context.Context, filter *entity.StockFilter) ([]entity.BloodStock, error) {
	var stock []entity.BloodStock
	query := conn(ctx, r.db).Preload("BloodBank")

	if filter != nil {
		if filter.BankID != nil {
			query = query.Where("blood_bank_id = ?", *filter.BankID)
		}
		if filter.BloodGroup != "" {
			query = query.Where("blood_group = ?", filter.BloodGroup)
		}
	}

	if err := query.Order("blood_bank_id ASC, blood_group ASC").Find(&stock).Error; err != nil {
		return nil, err
	}
	return stock, nil
}

func (r *bloodStockRepository) Create(ctx context.Context, stock *entity.BloodStock) error {
	return conn(ctx, r.db).Omit("BloodBank").Create(stock).Error
}

func (r *bloodStockRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return conn(ctx, r.db).
		Model(&entity.BloodStock{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *bloodStockRepository) DeleteByBankID(ctx context.Context, bankID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("blood_bank_id = ?", bankID).Delete(&entity.BloodStock{})
	return result.RowsAffected, result.Error
}
