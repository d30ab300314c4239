// Package repotest holds the behavior every repository backend must share.
package repotest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/repository"
	"github.com/dom/moodbite/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises repos against a freshly created, empty store.
func Run(t *testing.T, repos *repository.Repositories) {
	t.Run("User", func(t *testing.T) { testUsers(t, repos.User) })
	t.Run("Mood", func(t *testing.T) { testMoods(t, repos.Mood) })
	t.Run("Contact", func(t *testing.T) { testContacts(t, repos.Contact) })
	t.Run("Suggestion", func(t *testing.T) { testSuggestions(t, repos.Suggestion) })
}

func testUsers(t *testing.T, repo repository.UserRepository) {
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithName("Ann").
		WithEmail("ann@x.com").
		Save(t, repo)

	t.Run("get by email is exact match", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "ann@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "Ann", got.Name)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)

		_, err = repo.GetByEmail(ctx, "ANN@x.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ann@x.com", got.Email)

		_, err = repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate email is rejected without writing", func(t *testing.T) {
		dup, _ := testutil.NewUserBuilder().WithEmail("ann@x.com").User(t)
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		_, err = repo.GetByID(ctx, dup.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func testMoods(t *testing.T, repo repository.MoodRepository) {
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	moods := []string{"happy", "sad", "happy", "angry"}
	for i := 0; i < domain.MoodHistoryLimit+5; i++ {
		testutil.NewMoodBuilder(userID).
			WithMood(moods[i%len(moods)]).
			At(base.Add(time.Duration(i) * time.Minute)).
			Save(t, repo)
	}
	testutil.NewMoodBuilder(otherID).WithMood("excited").At(base).Save(t, repo)

	t.Run("history is capped and newest first", func(t *testing.T) {
		got, err := repo.ListByUserID(ctx, userID, domain.MoodHistoryLimit)
		require.NoError(t, err)
		require.Len(t, got, domain.MoodHistoryLimit)

		newest := base.Add(time.Duration(domain.MoodHistoryLimit+4) * time.Minute)
		assert.True(t, got[0].CreatedAt.Equal(newest), "first entry should be the newest, got %v", got[0].CreatedAt)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "entries out of order at %d", i)
			assert.Equal(t, userID, got[i].UserID)
		}
	})

	t.Run("history of another user", func(t *testing.T) {
		got, err := repo.ListByUserID(ctx, otherID, domain.MoodHistoryLimit)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "excited", got[0].Mood)
	})

	t.Run("counts", func(t *testing.T) {
		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(domain.MoodHistoryLimit+6), total)

		byMood, err := repo.CountByMood(ctx)
		require.NoError(t, err)

		dist := map[string]int64{}
		for _, c := range byMood {
			dist[c.Mood] = c.Count
		}
		// 55 entries cycle happy, sad, happy, angry
		assert.Equal(t, map[string]int64{"happy": 28, "sad": 14, "angry": 13, "excited": 1}, dist)
		assert.Equal(t, "happy", byMood[0].Mood, "largest bucket first")
	})

	t.Run("same timestamp orders by id", func(t *testing.T) {
		tieID := uuid.New()
		at := base.Add(24 * time.Hour)

		var ids []string
		for i := 0; i < 4; i++ {
			s := testutil.NewMoodBuilder(tieID).At(at).Save(t, repo)
			ids = append(ids, s.ID.String())
		}
		sort.Sort(sort.Reverse(sort.StringSlice(ids)))

		for attempt := 0; attempt < 3; attempt++ {
			got, err := repo.ListByUserID(ctx, tieID, domain.MoodHistoryLimit)
			require.NoError(t, err)
			require.Len(t, got, len(ids))
			for i, s := range got {
				assert.Equal(t, ids[i], s.ID.String(), "position %d", i)
			}
		}
	})
}

func testContacts(t *testing.T, repo repository.ContactRepository) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		msg := testutil.NewContactMessage(name, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Create(ctx, msg))
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "first", got[2].Name)
	assert.Equal(t, "first@example.com", got[2].Email)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func testSuggestions(t *testing.T, repo repository.SuggestionRepository) {
	ctx := context.Background()
	seed := domain.DefaultSuggestions()

	require.NoError(t, repo.UpsertMany(ctx, seed))
	// Seeding twice must not duplicate rows.
	require.NoError(t, repo.UpsertMany(ctx, domain.DefaultSuggestions()))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(seed))

	happy, err := repo.GetByMood(ctx, "happy")
	require.NoError(t, err)
	require.NotEmpty(t, happy)
	assert.Equal(t, "Ice Cream Sundae", happy[0].Name)
	assert.Equal(t, []string{"sweet", "cold", "dessert"}, happy[0].TagList())
	for i := 1; i < len(happy); i++ {
		assert.Greater(t, happy[i].Position, happy[i-1].Position)
	}

	none, err := repo.GetByMood(ctx, "bored")
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, repo.UpsertMany(ctx, nil))
}
