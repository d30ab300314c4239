package mongo

import (
	"context"

	"github.com/dom/moodbite/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type moodRepository struct {
	coll *mongo.Collection
}

func NewMoodRepository(db *mongo.Database) *moodRepository {
	return &moodRepository{coll: db.Collection(moodsCollection)}
}

func (r *moodRepository) Create(ctx context.Context, selection *domain.MoodSelection) error {
	_, err := r.coll.InsertOne(ctx, newMoodDocument(selection))
	return err
}

func (r *moodRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.MoodSelection, error) {
	opts := options.Find().
		// created_at is stored at millisecond precision; _id breaks ties.
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, err
	}

	var docs []moodDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	selections := make([]*domain.MoodSelection, 0, len(docs))
	for _, doc := range docs {
		s, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		selections = append(selections, s)
	}
	return selections, nil
}

func (r *moodRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *moodRepository) CountByMood(ctx context.Context) ([]domain.MoodCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$mood"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Mood  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make([]domain.MoodCount, len(rows))
	for i, row := range rows {
		counts[i] = domain.MoodCount{Mood: row.Mood, Count: row.Count}
	}
	return counts, nil
}
