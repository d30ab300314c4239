package mongo_test

import (
	"context"
	"testing"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/repository/mongo"
	"github.com/dom/moodbite/internal/repository/repotest"
	"github.com/dom/moodbite/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositories_Mongo(t *testing.T) {
	db := testutil.NewMongoTestDB(t)
	repotest.Run(t, mongo.NewRepositories(db))
}

func TestMoodRepository_ClientInfoRoundTrip(t *testing.T) {
	db := testutil.NewMongoTestDB(t)
	repo := mongo.NewMoodRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Save(t, mongo.NewUserRepository(db))
	selection := &domain.MoodSelection{
		ID:         uuid.New(),
		UserID:     user.ID,
		Mood:       "stressed",
		ClientInfo: map[string]any{"userAgent": "curl/8.0", "remoteAddr": "10.0.0.1"},
		CreatedAt:  user.CreatedAt,
	}
	require.NoError(t, repo.Create(ctx, selection))

	got, err := repo.ListByUserID(ctx, user.ID, domain.MoodHistoryLimit)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stressed", got[0].Mood)
	assert.Equal(t, "curl/8.0", got[0].ClientInfo["userAgent"])
	assert.Equal(t, "10.0.0.1", got[0].ClientInfo["remoteAddr"])
}

func TestEnsureIndexes_Idempotent(t *testing.T) {
	db := testutil.NewMongoTestDB(t)
	require.NoError(t, mongo.EnsureIndexes(context.Background(), db))
}
