package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nearest-blood-locator/internal/service"

	"github.com/google/uuid"
)

// TokenStore is an in-memory access token whitelist.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]struct{})}
}

var _ service.TokenStore = (*TokenStore)(nil)

func tokenKey(userID uuid.UUID, tokenID string) string {
	return userID.String() + ":" + tokenID
}

func (s *TokenStore) Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenKey(userID, tokenID)] = struct{}{}
	return nil
}

func (s *TokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[tokenKey(userID, tokenID)]
	return ok, nil
}

func (s *TokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenKey(userID, tokenID))
	return nil
}

// StockCache is an in-memory versioned cache with the same invalidation rule
// as the Redis one.
type StockCache struct {
	mu      sync.Mutex
	version int64
	entries map[string][]byte

	Hits          int
	Invalidations int
}

func NewStockCache() *StockCache {
	return &StockCache{entries: make(map[string][]byte)}
}

var _ service.StockCache = (*StockCache)(nil)

func (c *StockCache) Version(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *StockCache) GetPublic(ctx context.Context, version int64, filterKey string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[fmt.Sprintf(service.RedisStockListingFormat, version, filterKey)]
	if ok {
		c.Hits++
	}
	return payload, ok, nil
}

func (c *StockCache) SetPublic(ctx context.Context, version int64, filterKey string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fmt.Sprintf(service.RedisStockListingFormat, version, filterKey)] = payload
	return nil
}

func (c *StockCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.Invalidations++
	return nil
}
