package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// User returns the user the builder describes without storing it
func (b *UserBuilder) User(t *testing.T) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	return &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}, b.password
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	user, password := b.User(t)
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user, password
}

// Save stores the user through a repository, for backends without gorm
func (b *UserBuilder) Save(t *testing.T, repo repository.UserRepository) (*domain.User, string) {
	t.Helper()

	user, password := b.User(t)
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user, password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// BuildAndAuthenticate signs the user up via API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"name":     b.name,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Name:  authResp.User.Name,
		Email: authResp.User.Email,
	}

	return user, authResp.Token
}

// MoodBuilder creates mood selections at controlled timestamps
type MoodBuilder struct {
	userID uuid.UUID
	mood   string
	at     time.Time
}

// NewMoodBuilder creates a "happy" selection for userID stamped now
func NewMoodBuilder(userID uuid.UUID) *MoodBuilder {
	return &MoodBuilder{
		userID: userID,
		mood:   string(domain.MoodHappy),
		at:     time.Now(),
	}
}

// WithMood sets the mood label
func (b *MoodBuilder) WithMood(mood string) *MoodBuilder {
	b.mood = mood
	return b
}

// At sets the creation time
func (b *MoodBuilder) At(at time.Time) *MoodBuilder {
	b.at = at
	return b
}

// Save stores the selection through repo
func (b *MoodBuilder) Save(t *testing.T, repo repository.MoodRepository) *domain.MoodSelection {
	t.Helper()

	selection := &domain.MoodSelection{
		ID:        uuid.New(),
		UserID:    b.userID,
		Mood:      b.mood,
		CreatedAt: b.at,
	}
	if err := repo.Create(context.Background(), selection); err != nil {
		t.Fatalf("failed to create mood selection: %v", err)
	}
	return selection
}

// NewContactMessage returns an unsaved message stamped at
func NewContactMessage(name string, at time.Time) *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", name),
		Message:   fmt.Sprintf("hello from %s", name),
		CreatedAt: at,
	}
}

// FixedClock returns a clock that reports *now, letting tests move time.
func FixedClock(now *time.Time) func() time.Time {
	return func() time.Time { return *now }
}
