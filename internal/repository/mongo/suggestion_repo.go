package mongo

import (
	"context"

	"github.com/dom/moodbite/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type suggestionRepository struct {
	coll *mongo.Collection
}

func NewSuggestionRepository(db *mongo.Database) *suggestionRepository {
	return &suggestionRepository{coll: db.Collection(suggestionsCollection)}
}

func (r *suggestionRepository) UpsertMany(ctx context.Context, suggestions []*domain.FoodSuggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(suggestions))
	for _, s := range suggestions {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": s.ID}).
			SetReplacement(newSuggestionDocument(s)).
			SetUpsert(true))
	}

	_, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *suggestionRepository) GetByMood(ctx context.Context, mood string) ([]*domain.FoodSuggestion, error) {
	return r.find(ctx, bson.M{"mood": mood}, bson.D{{Key: "position", Value: 1}})
}

func (r *suggestionRepository) GetAll(ctx context.Context) ([]*domain.FoodSuggestion, error) {
	return r.find(ctx, bson.D{}, bson.D{{Key: "mood", Value: 1}, {Key: "position", Value: 1}})
}

func (r *suggestionRepository) find(ctx context.Context, filter any, sort bson.D) ([]*domain.FoodSuggestion, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}

	var docs []suggestionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	suggestions := make([]*domain.FoodSuggestion, len(docs))
	for i, doc := range docs {
		suggestions[i] = doc.toDomain()
	}
	return suggestions, nil
}
