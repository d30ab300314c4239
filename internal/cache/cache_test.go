package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/moodbite/internal/cache"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *domain.Analytics {
	return &domain.Analytics{
		TotalUsers:          3,
		TotalMoodSelections: 7,
		TotalContacts:       1,
		MoodDistribution:    map[string]int64{"happy": 5, "sad": 2},
		GeneratedAt:         time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC),
	}
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	c := cache.NewNop()

	require.NoError(t, c.Set(ctx, sampleSummary()))
	summary, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, summary)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestRedisAnalyticsCache(t *testing.T) {
	client := testutil.NewRedisTestClient(t)
	ctx := context.Background()
	c := cache.NewRedisAnalyticsCache(client, time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	want := sampleSummary()
	require.NoError(t, c.Set(ctx, want))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Invalidating an empty cache is not an error
	assert.NoError(t, c.Invalidate(ctx))
}

func TestRedisAnalyticsCache_Expiry(t *testing.T) {
	client := testutil.NewRedisTestClient(t)
	ctx := context.Background()
	c := cache.NewRedisAnalyticsCache(client, 200*time.Millisecond)

	require.NoError(t, c.Set(ctx, sampleSummary()))

	assert.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx)
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := cache.NewRedisClient(ctx, cache.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
