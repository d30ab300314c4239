package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dom/moodbite/internal/cache"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/metrics"
	"github.com/dom/moodbite/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ContactService struct {
	contactRepo repository.ContactRepository
	cache       cache.AnalyticsCache
	now         func() time.Time
	log         *zap.Logger
}

func NewContactService(contactRepo repository.ContactRepository, analyticsCache cache.AnalyticsCache, log *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		cache:       analyticsCache,
		now:         time.Now,
		log:         log.Named("contact"),
	}
}

func (s *ContactService) WithClock(now func() time.Time) *ContactService {
	s.now = now
	return s
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

func (s *ContactService) RecordContact(ctx context.Context, input ContactInput) (*domain.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || message == "" {
		return nil, domain.NewValidationError("Please provide name, email, and message")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.NewValidationError("Please provide a valid email address")
	}

	msg := &domain.ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}

	metrics.RecordContactMessage()
	invalidateAnalytics(ctx, s.cache, s.log)

	return msg, nil
}

// ListContacts returns every message, newest first.
func (s *ContactService) ListContacts(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}
