package repository

import (
	"context"
	"errors"

	"nearest-blood-locator/internal/domain/entity"
	domainRepo "nearest-blood-locator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bloodBankRepository struct {
	db *gorm.DB
}

func NewBloodBankRepository(db *gorm.DB) domainRepo.BloodBankRepository {
	return &bloodBankRepository{db: db}
}

func (r *bloodBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodBank, error) {
	var bank entity.BloodBank
	err := conn(ctx, r.db).Where("id = ?", id).First(&bank).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bank, nil
}

func (r *bloodBankRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.BloodBank, error) {
	var bank entity.BloodBank
	err := conn(ctx, r.db).Where("owner_id = ?", ownerID).First(&bank).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bank, nil
}

func (r *bloodBankRepository) Save(ctx context.Context, bank *entity.BloodBank) error {
	return conn(ctx, r.db).Omit("Stock").Save(bank).Error
}

func (r *bloodBankRepository) Search(ctx context.Context, filter *entity.BloodBankFilter) ([]entity.BloodBank, error) {
	var banks []entity.BloodBank
	query := conn(ctx, r.db).Model(&entity.BloodBank{})

	if filter != nil {
		if filter.BloodGroup != "" {
			query = query.Where("? = ANY(string_to_array(available_blood_groups, ','))", string(filter.BloodGroup))
		}
		if filter.City != "" {
			query = query.Where("city ILIKE ?", containsPattern(filter.City))
		}
	}

	if err := query.Order("created_at ASC").Find(&banks).Error; err != nil {
		return nil, err
	}
	return banks, nil
}

func (r *bloodBankRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&entity.BloodBank{})
	return result.RowsAffected, result.Error
}
