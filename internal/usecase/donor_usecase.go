package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"nearest-blood-locator/internal/converter"
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/domain/repository"
	"nearest-blood-locator/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDonorNotFound       = errors.New("donor profile not found")
	ErrDonorFieldsRequired = errors.New("phone, city and bloodGroup are required to create a donor profile")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
)

type DonorUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.MyDonorResponse, error)
	// UpsertMyProfile reports whether the profile was created.
	UpsertMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertDonorRequest) (*dto.DonorResponse, bool, error)
	SearchDonors(ctx context.Context, filter *entity.DonorFilter) (*dto.DonorListResponse, error)
	DeleteMyProfile(ctx context.Context, userID uuid.UUID) error
}

type donorUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	userRepo     repository.UserRepository
	donorRepo    repository.DonorProfileRepository
	auditService service.AuditService
}

func NewDonorUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	donorRepo repository.DonorProfileRepository,
	auditService service.AuditService,
) DonorUsecase {
	return &donorUsecase{
		log:          log,
		tx:           tx,
		userRepo:     userRepo,
		donorRepo:    donorRepo,
		auditService: auditService,
	}
}

func (u *donorUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.MyDonorResponse, error) {
	profile, err := u.donorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find donor profile: %+v", err)
		return nil, err
	}

	return &dto.MyDonorResponse{
		Found: profile != nil,
		Donor: converter.DonorProfileToResponse(profile),
	}, nil
}

func (u *donorUsecase) UpsertMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertDonorRequest) (*dto.DonorResponse, bool, error) {
	var lastDonation *time.Time
	if req.LastDonationDate != "" {
		t, err := time.Parse("2006-01-02", req.LastDonationDate)
		if err != nil {
			return nil, false, ErrInvalidDateFormat
		}
		lastDonation = &t
	}

	var bloodGroup entity.BloodGroup
	if req.BloodGroup != "" {
		g, err := entity.ParseBloodGroup(req.BloodGroup)
		if err != nil {
			return nil, false, err
		}
		bloodGroup = g
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, false, err
	}
	if user == nil {
		return nil, false, ErrUserNotFound
	}

	var (
		profile *entity.DonorProfile
		created bool
	)
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.donorRepo.FindByUserID(ctx, userID)
		if err != nil {
			u.log.Warnf("Failed to find donor profile: %+v", err)
			return err
		}

		if existing == nil {
			profile, err = newDonorProfile(user, bloodGroup, req)
			if err != nil {
				return err
			}
			profile.LastDonationDate = lastDonation
			created = true
		} else {
			oldValue := converter.DonorProfileToResponse(existing)
			profile = existing
			applyDonorPatch(profile, bloodGroup, req)
			if lastDonation != nil {
				profile.LastDonationDate = lastDonation
			}
			if err := u.donorRepo.Save(ctx, profile); err != nil {
				u.log.Warnf("Failed to update donor profile: %+v", err)
				return err
			}
			return u.auditService.LogUpdate(ctx, userID, entity.AuditActionDonorSave, "donor_profile", profile.ID.String(), oldValue, converter.DonorProfileToResponse(profile))
		}

		if err := u.donorRepo.Save(ctx, profile); err != nil {
			u.log.Warnf("Failed to create donor profile: %+v", err)
			return err
		}
		return u.auditService.LogCreate(ctx, userID, entity.AuditActionDonorSave, "donor_profile", profile.ID.String(), converter.DonorProfileToResponse(profile))
	})
	if err != nil {
		return nil, false, err
	}

	return converter.DonorProfileToResponse(profile), created, nil
}

// newDonorProfile builds a first profile. Phone, city and blood group fall back to
// the values given at registration.
func newDonorProfile(user *entity.User, bloodGroup entity.BloodGroup, req *dto.UpsertDonorRequest) (*entity.DonorProfile, error) {
	phone := firstNonEmpty(req.Phone, user.Phone)
	city := firstNonEmpty(req.City, user.City)
	if bloodGroup == "" && user.BloodGroup != nil {
		bloodGroup = *user.BloodGroup
	}
	if phone == "" || city == "" || bloodGroup == "" {
		return nil, ErrDonorFieldsRequired
	}

	availability := entity.Available
	if req.AvailabilityStatus != nil {
		availability = entity.AvailabilityFromBool(*req.AvailabilityStatus)
	}

	return &entity.DonorProfile{
		ID:           uuid.New(),
		UserID:       user.ID,
		FullName:     firstNonEmpty(req.FullName, user.Username),
		BloodGroup:   bloodGroup,
		Age:          req.Age,
		PhoneNumber:  phone,
		Location:     city,
		Latitude:     user.Latitude,
		Longitude:    user.Longitude,
		Availability: availability,
	}, nil
}

func applyDonorPatch(profile *entity.DonorProfile, bloodGroup entity.BloodGroup, req *dto.UpsertDonorRequest) {
	if req.FullName != "" {
		profile.FullName = strings.TrimSpace(req.FullName)
	}
	if bloodGroup != "" {
		profile.BloodGroup = bloodGroup
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Phone != "" {
		profile.PhoneNumber = strings.TrimSpace(req.Phone)
	}
	if req.City != "" {
		profile.Location = strings.TrimSpace(req.City)
	}
	if req.AvailabilityStatus != nil {
		profile.Availability = entity.AvailabilityFromBool(*req.AvailabilityStatus)
	}
}

func (u *donorUsecase) SearchDonors(ctx context.Context, filter *entity.DonorFilter) (*dto.DonorListResponse, error) {
	profiles, err := u.donorRepo.Search(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to search donors: %+v", err)
		return nil, err
	}

	donors := converter.DonorProfilesToResponses(profiles)

	return &dto.DonorListResponse{
		Donors: donors,
		Count:  len(donors),
	}, nil
}

func (u *donorUsecase) DeleteMyProfile(ctx context.Context, userID uuid.UUID) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		profile, err := u.donorRepo.FindByUserID(ctx, userID)
		if err != nil {
			u.log.Warnf("Failed to find donor profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrDonorNotFound
		}

		affectedRows, err := u.donorRepo.DeleteByUserID(ctx, userID)
		if err != nil {
			u.log.Warnf("Failed delete donor profile: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrDonorNotFound
		}

		return u.auditService.LogDelete(ctx, userID, entity.AuditActionDonorDelete, "donor_profile", profile.ID.String(), converter.DonorProfileToResponse(profile))
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
