package repository

import (
	"context"
	"errors"

	"nearest-blood-locator/internal/domain/entity"
	domainRepo "nearest-blood-locator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bloodRequestRepository struct {
	db *gorm.DB
}

func NewBloodRequestRepository(db *gorm.DB) domainRepo.BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

func (r *bloodRequestRepository) Create(ctx context.Context, request *entity.BloodRequest) error {
	return conn(ctx, r.db).Create(request).Error
}

func (r *bloodRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error) {
	var request entity.BloodRequest
	err := conn(ctx, r.db).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *bloodRequestRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]entity.BloodRequest, error) {
	var requests []entity.BloodRequest
	err := conn(ctx, r.db).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *bloodRequestRepository) FindAll(ctx context.Context, filter *entity.RequestFilter) ([]entity.BloodRequest, error) {
	var requests []entity.BloodRequest
	query := conn(ctx, r.db).Model(&entity.BloodRequest{})

	if filter != nil {
		if filter.BloodGroup != "" {
			query = query.Where("required_blood_group = ?", filter.BloodGroup)
		}
		if filter.City != "" {
			query = query.Where("city ILIKE ?", containsPattern(filter.City))
		}
	}

	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *bloodRequestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&entity.BloodRequest{})
	return result.RowsAffected, result.Error
}
