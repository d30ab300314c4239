package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dom/moodbite/internal/cache"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/metrics"
	"github.com/dom/moodbite/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MoodService struct {
	moodRepo    repository.MoodRepository
	suggestions *SuggestionService
	cache       cache.AnalyticsCache
	now         func() time.Time
	log         *zap.Logger
}

func NewMoodService(moodRepo repository.MoodRepository, suggestions *SuggestionService, analyticsCache cache.AnalyticsCache, log *zap.Logger) *MoodService {
	return &MoodService{
		moodRepo:    moodRepo,
		suggestions: suggestions,
		cache:       analyticsCache,
		now:         time.Now,
		log:         log.Named("mood"),
	}
}

func (s *MoodService) WithClock(now func() time.Time) *MoodService {
	s.now = now
	return s
}

type MoodResult struct {
	Selection   *domain.MoodSelection
	Suggestions []*domain.FoodSuggestion
}

// RecordMood appends a selection for userID. Any non-empty label is accepted;
// clientInfo is stored as-is and may be nil. Suggestions are empty when the
// catalog cannot be read.
func (s *MoodService) RecordMood(ctx context.Context, userID uuid.UUID, mood string, clientInfo map[string]any) (*MoodResult, error) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return nil, domain.NewValidationError("Mood is required")
	}

	selection := &domain.MoodSelection{
		ID:         uuid.New(),
		UserID:     userID,
		Mood:       mood,
		ClientInfo: clientInfo,
		CreatedAt:  s.now(),
	}
	if err := s.moodRepo.Create(ctx, selection); err != nil {
		return nil, fmt.Errorf("save mood selection: %w", err)
	}

	metrics.RecordMoodSelection(domain.NormalizeMood(mood), IsKnownMood(mood))
	invalidateAnalytics(ctx, s.cache, s.log)

	// The selection is stored; a catalog failure only drops the suggestions.
	suggestions, err := s.suggestions.ForMood(ctx, mood)
	if err != nil {
		s.log.Warn("failed to load suggestions", zap.String("mood", mood), zap.Error(err))
		suggestions = []*domain.FoodSuggestion{}
	}

	return &MoodResult{Selection: selection, Suggestions: suggestions}, nil
}

// ListMoodHistory returns up to domain.MoodHistoryLimit selections, newest first.
func (s *MoodService) ListMoodHistory(ctx context.Context, userID uuid.UUID) ([]*domain.MoodSelection, error) {
	return s.moodRepo.ListByUserID(ctx, userID, domain.MoodHistoryLimit)
}

func invalidateAnalytics(ctx context.Context, c cache.AnalyticsCache, log *zap.Logger) {
	if err := c.Invalidate(ctx); err != nil {
		log.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}
