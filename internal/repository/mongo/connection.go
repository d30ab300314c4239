// Package mongo implements the repositories on top of a MongoDB document store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection       = "users"
	moodsCollection       = "mood_selections"
	contactsCollection    = "contact_messages"
	suggestionsCollection = "food_suggestions"
)

// NewConnection connects to uri, pings the server and ensures the indexes the
// repositories rely on exist.
func NewConnection(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}

// EnsureIndexes creates the unique email index and the history/listing indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		moodsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "mood", Value: 1}}},
		},
		contactsCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		suggestionsCollection: {
			{Keys: bson.D{{Key: "mood", Value: 1}, {Key: "position", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func NewRepositories(db *mongo.Database) *repository.Repositories {
	return &repository.Repositories{
		User:       NewUserRepository(db),
		Mood:       NewMoodRepository(db),
		Contact:    NewContactRepository(db),
		Suggestion: NewSuggestionRepository(db),
		Close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return db.Client().Disconnect(ctx)
		},
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	default:
		return err
	}
}
