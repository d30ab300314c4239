package repository

import (
	"context"

	"github.com/dom/moodbite/internal/domain"
	"github.com/google/uuid"
)

// UserRepository is the credential store. Create returns domain.ErrDuplicateEmail
// when the email is taken; lookups return domain.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type MoodRepository interface {
	Create(ctx context.Context, selection *domain.MoodSelection) error
	// ListByUserID returns the newest selections first.
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.MoodSelection, error)
	Count(ctx context.Context) (int64, error)
	CountByMood(ctx context.Context) ([]domain.MoodCount, error)
}

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	// List returns every message, newest first.
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	Count(ctx context.Context) (int64, error)
}

type SuggestionRepository interface {
	UpsertMany(ctx context.Context, suggestions []*domain.FoodSuggestion) error
	GetByMood(ctx context.Context, mood string) ([]*domain.FoodSuggestion, error)
	GetAll(ctx context.Context) ([]*domain.FoodSuggestion, error)
}

type Repositories struct {
	User       UserRepository
	Mood       MoodRepository
	Contact    ContactRepository
	Suggestion SuggestionRepository

	// Close releases the underlying store connection.
	Close func() error
}
