package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dom/moodbite/internal/cache"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/metrics"
	"github.com/dom/moodbite/internal/repository"
	"go.uber.org/zap"
)

type AnalyticsService struct {
	userRepo    repository.UserRepository
	moodRepo    repository.MoodRepository
	contactRepo repository.ContactRepository
	cache       cache.AnalyticsCache
	now         func() time.Time
	log         *zap.Logger
}

func NewAnalyticsService(repos *repository.Repositories, analyticsCache cache.AnalyticsCache, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		userRepo:    repos.User,
		moodRepo:    repos.Mood,
		contactRepo: repos.Contact,
		cache:       analyticsCache,
		now:         time.Now,
		log:         log.Named("analytics"),
	}
}

// Summary returns the cached summary when present, otherwise computes and
// caches a fresh one. Cache failures are logged and never fail the call.
func (s *AnalyticsService) Summary(ctx context.Context) (*domain.Analytics, error) {
	cached, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		metrics.RecordAnalyticsCache("error")
		s.log.Warn("analytics cache read failed", zap.Error(err))
	case ok:
		metrics.RecordAnalyticsCache("hit")
		return cached, nil
	default:
		metrics.RecordAnalyticsCache("miss")
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, summary); err != nil {
		s.log.Warn("analytics cache write failed", zap.Error(err))
	}
	return summary, nil
}

func (s *AnalyticsService) compute(ctx context.Context) (*domain.Analytics, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	moods, err := s.moodRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count mood selections: %w", err)
	}
	contacts, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	byMood, err := s.moodRepo.CountByMood(ctx)
	if err != nil {
		return nil, fmt.Errorf("mood distribution: %w", err)
	}

	distribution := make(map[string]int64, len(byMood))
	for _, c := range byMood {
		distribution[c.Mood] = c.Count
	}

	return &domain.Analytics{
		TotalUsers:          users,
		TotalMoodSelections: moods,
		TotalContacts:       contacts,
		MoodDistribution:    distribution,
		GeneratedAt:         s.now().UTC(),
	}, nil
}
