// Package backend runs the API server over in-memory storage for tests.
package backend

import (
	"net/http/httptest"
	"testing"

	"nearest-blood-locator/cmd/bootstrap"
	"nearest-blood-locator/config"
	"nearest-blood-locator/internal/testutil"
)

// Backend is the API server running over memory storage.
type Backend struct {
	Server     *httptest.Server
	Store      *testutil.Store
	TokenStore *testutil.TokenStore
	StockCache *testutil.StockCache
	Config     *config.Config
}

// URL is the API base URL including the version prefix.
func (b *Backend) URL() string {
	return b.Server.URL + "/api/v1"
}

// NewBackend starts the real router over memory repositories.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	store := testutil.NewStore()
	tokens := testutil.NewTokenStore()
	cache := testutil.NewStockCache()
	cfg := testutil.TestConfig()

	deps := bootstrap.Dependencies{
		Transactor: testutil.Transactor{},
		Users:      testutil.NewUserRepository(store),
		Donors:     testutil.NewDonorProfileRepository(store),
		BloodBanks: testutil.NewBloodBankRepository(store),
		BloodStock: testutil.NewBloodStockRepository(store),
		Requests:   testutil.NewBloodRequestRepository(store),
		AuditLogs:  testutil.NewAuditLogRepository(store),
		TokenStore: tokens,
		StockCache: cache,
	}

	server := httptest.NewServer(bootstrap.NewHandler(cfg, deps, testutil.NopLogger()))
	t.Cleanup(server.Close)

	return &Backend{
		Server:     server,
		Store:      store,
		TokenStore: tokens,
		StockCache: cache,
		Config:     cfg,
	}
}
