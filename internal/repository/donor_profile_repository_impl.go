package repository

import (
	"context"
	"errors"

	"nearest-blood-locator/internal/domain/entity"
	domainRepo "nearest-blood-locator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type donorProfileRepository struct {
	db *gorm.DB
}

func NewDonorProfileRepository(db *gorm.DB) domainRepo.DonorProfileRepository {
	return &donorProfileRepository{db: db}
}

func (r *donorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DonorProfile, error) {
	var profile entity.DonorProfile
	err := conn(ctx, r.db).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *donorProfileRepository) Save(ctx context.Context, profile *entity.DonorProfile) error {
	return conn(ctx, r.db).Save(profile).Error
}

// Search keeps insertion order; there is no proximity ranking.
func (r *donorProfileRepository) Search(ctx context.Context, filter *entity.DonorFilter) ([]entity.DonorProfile, error) {
	var profiles []entity.DonorProfile
	query := conn(ctx, r.db).Model(&entity.DonorProfile{})

	if filter != nil {
		if filter.BloodGroup != "" {
			query = query.Where("blood_group = ?", filter.BloodGroup)
		}
		if filter.Location != "" {
			query = query.Where("location ILIKE ?", containsPattern(filter.Location))
		}
		if filter.AvailableOnly {
			query = query.Where("availability = ?", entity.Available)
		}
	}

	if err := query.Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *donorProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&entity.DonorProfile{})
	return result.RowsAffected, result.Error
}
