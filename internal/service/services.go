package service

import (
	"github.com/dom/moodbite/internal/cache"
	"github.com/dom/moodbite/internal/config"
	"github.com/dom/moodbite/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth       *AuthService
	Mood       *MoodService
	Contact    *ContactService
	Suggestion *SuggestionService
	Analytics  *AnalyticsService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, analyticsCache cache.AnalyticsCache, log *zap.Logger) *Services {
	suggestions := NewSuggestionService(repos.Suggestion)
	return &Services{
		Auth:       NewAuthService(repos.User, cfg, log),
		Mood:       NewMoodService(repos.Mood, suggestions, analyticsCache, log),
		Contact:    NewContactService(repos.Contact, analyticsCache, log),
		Suggestion: suggestions,
		Analytics:  NewAnalyticsService(repos, analyticsCache, log),
	}
}
