package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/repository"
	"github.com/dom/moodbite/internal/repository/postgres"
	"github.com/dom/moodbite/internal/testutil"
)

// memoryCache is an in-process AnalyticsCache that counts calls.
type memoryCache struct {
	mu          sync.Mutex
	summary     *domain.Analytics
	gets        int
	sets        int
	invalidates int
	failReads   bool
	failWrites  bool
}

var errCacheDown = errors.New("cache unavailable")

func (c *memoryCache) Get(ctx context.Context) (*domain.Analytics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failReads {
		return nil, false, errCacheDown
	}
	if c.summary == nil {
		return nil, false, nil
	}
	return c.summary, true, nil
}

func (c *memoryCache) Set(ctx context.Context, summary *domain.Analytics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.failWrites {
		return errCacheDown
	}
	c.summary = summary
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidates++
	if c.failWrites {
		return errCacheDown
	}
	c.summary = nil
	return nil
}

func newRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	return postgres.NewRepositories(testDB.DB)
}
