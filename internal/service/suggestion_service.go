package service

import (
	"context"
	"fmt"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/repository"
)

// SuggestionService serves the fixed mood to food table.
type SuggestionService struct {
	suggestionRepo repository.SuggestionRepository
}

func NewSuggestionService(suggestionRepo repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{suggestionRepo: suggestionRepo}
}

// Seed writes the built-in table to the store. Running it again overwrites the
// same rows, so it is safe on every startup.
func (s *SuggestionService) Seed(ctx context.Context) (int, error) {
	suggestions := domain.DefaultSuggestions()
	if err := s.suggestionRepo.UpsertMany(ctx, suggestions); err != nil {
		return 0, fmt.Errorf("failed to upsert suggestions: %w", err)
	}
	return len(suggestions), nil
}

// ForMood returns the suggestions for mood, matched case-insensitively. Unknown
// moods yield an empty list.
func (s *SuggestionService) ForMood(ctx context.Context, mood string) ([]*domain.FoodSuggestion, error) {
	key := domain.NormalizeMood(mood)
	if key == "" {
		return []*domain.FoodSuggestion{}, nil
	}
	return s.suggestionRepo.GetByMood(ctx, key)
}

func (s *SuggestionService) All(ctx context.Context) ([]*domain.FoodSuggestion, error) {
	return s.suggestionRepo.GetAll(ctx)
}

// Moods lists the moods offered by the client picker.
func (s *SuggestionService) Moods() []domain.Mood {
	out := make([]domain.Mood, len(domain.AllMoods))
	copy(out, domain.AllMoods)
	return out
}

// IsKnownMood reports whether mood is part of the picker vocabulary.
func IsKnownMood(mood string) bool {
	key := domain.NormalizeMood(mood)
	for _, m := range domain.AllMoods {
		if string(m) == key {
			return true
		}
	}
	return false
}
