package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/service"
	"github.com/dom/moodbite/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestContactService_RecordContact(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	analyticsCache := &memoryCache{}
	contactService := service.NewContactService(repos.Contact, analyticsCache, zaptest.NewLogger(t))

	tests := []struct {
		name    string
		input   service.ContactInput
		wantMsg string
	}{
		{
			name:  "valid message",
			input: service.ContactInput{Name: "Bob", Email: "bob@example.com", Message: "Love the app"},
		},
		{
			name:  "trimmed fields",
			input: service.ContactInput{Name: " Bob ", Email: " bob@example.com ", Message: " Love the app "},
		},
		{
			name:    "missing name",
			input:   service.ContactInput{Email: "bob@example.com", Message: "hi"},
			wantMsg: "Please provide name, email, and message",
		},
		{
			name:    "missing message",
			input:   service.ContactInput{Name: "Bob", Email: "bob@example.com", Message: "  "},
			wantMsg: "Please provide name, email, and message",
		},
		{
			name:    "no at sign",
			input:   service.ContactInput{Name: "Bob", Email: "bob.example.com", Message: "hi"},
			wantMsg: "Please provide a valid email address",
		},
		{
			name:    "no dot in domain",
			input:   service.ContactInput{Name: "Bob", Email: "bob@example", Message: "hi"},
			wantMsg: "Please provide a valid email address",
		},
		{
			name:    "space inside address",
			input:   service.ContactInput{Name: "Bob", Email: "bo b@example.com", Message: "hi"},
			wantMsg: "Please provide a valid email address",
		},
	}

	accepted := 0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := contactService.RecordContact(ctx, tt.input)
			if tt.wantMsg != "" {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Equal(t, tt.wantMsg, err.Error())
				assert.Nil(t, msg)
				return
			}

			require.NoError(t, err)
			accepted++
			assert.Equal(t, "Bob", msg.Name)
			assert.Equal(t, "bob@example.com", msg.Email)
			assert.Equal(t, "Love the app", msg.Message)
		})
	}

	count, err := repos.Contact.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(accepted), count)
	assert.Equal(t, accepted, analyticsCache.invalidates)
}

func TestContactService_ListContacts(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	contactService := service.NewContactService(repos.Contact, &memoryCache{}, zaptest.NewLogger(t)).
		WithClock(testutil.FixedClock(&now))

	for _, name := range []string{"first", "second", "third"} {
		_, err := contactService.RecordContact(ctx, service.ContactInput{
			Name:    name,
			Email:   name + "@example.com",
			Message: "hello",
		})
		require.NoError(t, err)
		now = now.Add(time.Minute)
	}

	contacts, err := contactService.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "third", contacts[0].Name)
	assert.Equal(t, "second", contacts[1].Name)
	assert.Equal(t, "first", contacts[2].Name)
}
