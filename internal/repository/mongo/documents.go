package mongo

import (
	"encoding/json"
	"time"

	"github.com/dom/moodbite/internal/domain"
	"github.com/google/uuid"
)

// IDs are stored as their canonical string form so documents stay readable
// from the mongo shell.

type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

func (d userDocument) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}, nil
}

type moodDocument struct {
	ID         string         `bson:"_id"`
	UserID     string         `bson:"user_id"`
	Mood       string         `bson:"mood"`
	ClientInfo map[string]any `bson:"client_info,omitempty"`
	CreatedAt  time.Time      `bson:"created_at"`
}

func newMoodDocument(m *domain.MoodSelection) moodDocument {
	return moodDocument{
		ID:         m.ID.String(),
		UserID:     m.UserID.String(),
		Mood:       m.Mood,
		ClientInfo: m.ClientInfo,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func (d moodDocument) toDomain() (*domain.MoodSelection, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.MoodSelection{
		ID:         id,
		UserID:     userID,
		Mood:       d.Mood,
		ClientInfo: d.ClientInfo,
		CreatedAt:  d.CreatedAt,
	}, nil
}

type contactDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"created_at"`
}

func newContactDocument(c *domain.ContactMessage) contactDocument {
	return contactDocument{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func (d contactDocument) toDomain() (*domain.ContactMessage, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ContactMessage{
		ID:        id,
		Name:      d.Name,
		Email:     d.Email,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}, nil
}

type suggestionDocument struct {
	ID          string    `bson:"_id"`
	Mood        string    `bson:"mood"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Tags        []string  `bson:"tags"`
	Position    int       `bson:"position"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newSuggestionDocument(s *domain.FoodSuggestion) suggestionDocument {
	return suggestionDocument{
		ID:          s.ID,
		Mood:        s.Mood,
		Name:        s.Name,
		Description: s.Description,
		Tags:        s.TagList(),
		Position:    s.Position,
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
}

func (d suggestionDocument) toDomain() *domain.FoodSuggestion {
	s := &domain.FoodSuggestion{
		ID:          d.ID,
		Mood:        d.Mood,
		Name:        d.Name,
		Description: d.Description,
		Position:    d.Position,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Tags != nil {
		s.Tags, _ = json.Marshal(d.Tags)
	}
	return s
}
