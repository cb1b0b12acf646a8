package usecase

import (
	"context"
	"testing"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/service"
	"nearest-blood-locator/internal/testutil"
	"nearest-blood-locator/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *testutil.Store
	tokens *testutil.TokenStore
	cache  *testutil.StockCache
	jwt    *jwt.JWTService

	auth     AuthUsecase
	donors   DonorUsecase
	banks    BloodBankUsecase
	stock    BloodStockUsecase
	requests BloodRequestUsecase
	audit    AuditLogUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := testutil.NopLogger()
	store := testutil.NewStore()
	tokens := testutil.NewTokenStore()
	cache := testutil.NewStockCache()
	jwtService := jwt.NewJWTService(testutil.TestConfig().JWT)
	tx := testutil.Transactor{}

	userRepo := testutil.NewUserRepository(store)
	donorRepo := testutil.NewDonorProfileRepository(store)
	bankRepo := testutil.NewBloodBankRepository(store)
	stockRepo := testutil.NewBloodStockRepository(store)
	requestRepo := testutil.NewBloodRequestRepository(store)
	auditRepo := testutil.NewAuditLogRepository(store)
	auditService := service.NewAuditService(log, auditRepo)

	return &fixture{
		store:    store,
		tokens:   tokens,
		cache:    cache,
		jwt:      jwtService,
		auth:     NewAuthUsecase(log, tx, userRepo, auditService, jwtService, tokens),
		donors:   NewDonorUsecase(log, tx, userRepo, donorRepo, auditService),
		banks:    NewBloodBankUsecase(log, tx, bankRepo, stockRepo, auditService, cache),
		stock:    NewBloodStockUsecase(log, tx, bankRepo, stockRepo, auditService, cache),
		requests: NewBloodRequestUsecase(log, tx, requestRepo, auditService),
		audit:    NewAuditLogUsecase(log, auditRepo),
	}
}

func (f *fixture) register(t *testing.T, req dto.RegisterRequest) uuid.UUID {
	t.Helper()
	if req.Email == "" {
		req.Email = req.Username + "@example.com"
	}
	if req.Password == "" {
		req.Password = "secret123"
	}
	user, err := f.auth.Register(context.Background(), &req)
	require.NoError(t, err)
	return user.ID
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
