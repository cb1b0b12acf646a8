package usecase

import (
	"context"
	"testing"
	"time"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/domain/repository"
	"nearest-blood-locator/internal/service"
	"nearest-blood-locator/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStockRepo runs afterRead once, right after a FindAll has loaded its rows.
type slowStockRepo struct {
	repository.BloodStockRepository
	afterRead func()
}

func (r *slowStockRepo) FindAll(ctx context.Context, filter *entity.StockFilter) ([]entity.BloodStock, error) {
	stock, err := r.BloodStockRepository.FindAll(ctx, filter)
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return stock, err
}

func TestGetPublicStock_UpdateDuringReadIsNotCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank"})
	_, err := f.stock.AddStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(10)})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := service.NewRedisStockCache(client, 5*time.Minute)

	log := testutil.NopLogger()
	bankRepo := testutil.NewBloodBankRepository(f.store)
	auditService := service.NewAuditService(log, testutil.NewAuditLogRepository(f.store))
	writer := NewBloodStockUsecase(log, testutil.Transactor{}, bankRepo, testutil.NewBloodStockRepository(f.store), auditService, cache)

	repo := &slowStockRepo{BloodStockRepository: testutil.NewBloodStockRepository(f.store)}
	reader := NewBloodStockUsecase(log, testutil.Transactor{}, bankRepo, repo, auditService, cache)

	repo.afterRead = func() {
		_, err := writer.UpdateStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(7)})
		require.NoError(t, err)
	}

	stale, err := reader.GetPublicStock(ctx, &entity.StockFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, stale.Count)
	assert.Equal(t, 10, stale.Stock[0].Quantity, "read started before the update")

	fresh, err := reader.GetPublicStock(ctx, &entity.StockFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, fresh.Count)
	assert.Equal(t, 7, fresh.Stock[0].Quantity)
}
