package usecase

import (
	"context"
	"errors"
	"strings"

	"nearest-blood-locator/internal/converter"
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/domain/repository"
	"nearest-blood-locator/internal/service"
	"nearest-blood-locator/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidUserType       = errors.New("userType must be one of donor, bank, recipient")
	ErrUserNotFound          = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, tokenID string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	userRepo     repository.UserRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	tokenStore   service.TokenStore
}

func NewAuthUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		tx:           tx,
		userRepo:     userRepo,
		auditService: auditService,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
	}
}

// Register creates the account. A donor who supplies blood group, phone and city
// gets a searchable donor profile right away; a bank gets a bank profile named
// after the account.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(req.UserType)
	if err != nil {
		return nil, ErrInvalidUserType
	}

	var bloodGroup *entity.BloodGroup
	if req.BloodGroup != "" {
		g, err := entity.ParseBloodGroup(req.BloodGroup)
		if err != nil {
			return nil, err
		}
		bloodGroup = &g
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		ID:         uuid.New(),
		Username:   strings.ToLower(strings.TrimSpace(req.Username)),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   string(hashedPassword),
		Phone:      strings.TrimSpace(req.Phone),
		City:       strings.TrimSpace(req.City),
		Role:       role,
		BloodGroup: bloodGroup,
		Latitude:   converter.FloatToDecimal(req.Latitude),
		Longitude:  converter.FloatToDecimal(req.Longitude),
	}

	switch role {
	case entity.RoleDonor:
		if bloodGroup != nil && user.Phone != "" && user.City != "" {
			user.DonorProfile = &entity.DonorProfile{
				ID:           uuid.New(),
				UserID:       user.ID,
				FullName:     user.Username,
				BloodGroup:   *bloodGroup,
				PhoneNumber:  user.Phone,
				Location:     user.City,
				Latitude:     user.Latitude,
				Longitude:    user.Longitude,
				Availability: entity.Available,
			}
		}
	case entity.RoleBank:
		user.BloodBank = &entity.BloodBank{
			ID:                   uuid.New(),
			OwnerID:              user.ID,
			Name:                 user.Username,
			City:                 user.City,
			ContactNumber:        user.Phone,
			AvailableBloodGroups: entity.BloodGroupSet{},
			StockStatus:          entity.StockAvailable,
		}
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			if isDuplicateKeyError(err, "username") {
				return ErrUsernameAlreadyExists
			}
			if isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), converter.UserToResponse(user))
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := u.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		u.log.Warnf("Failed to find user by identifier: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, user.ID, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, user.ID, entity.AuditActionUserLogin, "session", tokenID, nil); err != nil {
		u.log.Warnf("Failed to record login: %+v", err)
	}

	return &dto.LoginResponse{
		User:        *converter.UserToResponse(user),
		AccessToken: accessToken,
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := u.tokenStore.Revoke(ctx, userID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, userID, entity.AuditActionUserLogout, "session", tokenID, nil); err != nil {
		u.log.Warnf("Failed to record logout: %+v", err)
	}

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
