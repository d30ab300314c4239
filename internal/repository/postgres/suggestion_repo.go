package postgres

import (
	"context"

	"github.com/dom/moodbite/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type suggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *suggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) UpsertMany(ctx context.Context, suggestions []*domain.FoodSuggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(suggestions).Error
}

func (r *suggestionRepository) GetByMood(ctx context.Context, mood string) ([]*domain.FoodSuggestion, error) {
	var suggestions []*domain.FoodSuggestion
	err := r.db.WithContext(ctx).
		Where("mood = ?", mood).
		Order("position ASC").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *suggestionRepository) GetAll(ctx context.Context) ([]*domain.FoodSuggestion, error) {
	var suggestions []*domain.FoodSuggestion
	err := r.db.WithContext(ctx).Order("mood ASC, position ASC").Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}
