package postgres

import (
	"context"

	"github.com/dom/moodbite/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type moodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *moodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, selection *domain.MoodSelection) error {
	return r.db.WithContext(ctx).Create(selection).Error
}

func (r *moodRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.MoodSelection, error) {
	var selections []*domain.MoodSelection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&selections).Error
	if err != nil {
		return nil, err
	}
	return selections, nil
}

func (r *moodRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MoodSelection{}).Count(&count).Error
	return count, err
}

func (r *moodRepository) CountByMood(ctx context.Context) ([]domain.MoodCount, error) {
	var counts []domain.MoodCount
	err := r.db.WithContext(ctx).
		Model(&domain.MoodSelection{}).
		Select("mood, COUNT(*) AS count").
		Group("mood").
		Order("count DESC, mood ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
