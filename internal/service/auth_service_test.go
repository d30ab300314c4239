package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/repository/postgres"
	"github.com/dom/moodbite/internal/service"
	"github.com/dom/moodbite/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*service.AuthService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewAuthService(repos.User, testutil.TestConfig(), zaptest.NewLogger(t)), testDB
}

func TestAuthService_Signup(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.SignupInput
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful signup",
			input: service.SignupInput{
				Name:     "Ann",
				Email:    "ann@x.com",
				Password: "secret1",
			},
			checkUser: true,
		},
		{
			name: "surrounding whitespace is trimmed",
			input: service.SignupInput{
				Name:     "  Ann  ",
				Email:    " ann@x.com ",
				Password: "secret1",
			},
			checkUser: true,
		},
		{
			name:    "missing name",
			input:   service.SignupInput{Email: "ann@x.com", Password: "secret1"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing email",
			input:   service.SignupInput{Name: "Ann", Password: "secret1"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing password",
			input:   service.SignupInput{Name: "Ann", Email: "ann@x.com"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "blank name",
			input:   service.SignupInput{Name: "   ", Email: "ann@x.com", Password: "secret1"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "password longer than bcrypt accepts",
			input:   service.SignupInput{Name: "Ann", Email: "ann@x.com", Password: strings.Repeat("a", 80)},
			wantErr: domain.ErrValidation,
		},
		{
			name: "password at the bcrypt limit",
			input: service.SignupInput{
				Name:     "Ann",
				Email:    "ann@x.com",
				Password: strings.Repeat("a", service.MaxPasswordBytes),
			},
			checkUser: true,
		},
		{
			name: "duplicate email",
			input: service.SignupInput{
				Name:     "Other Ann",
				Email:    "ann@x.com",
				Password: "different",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("ann@x.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Signup(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			if tt.checkUser {
				assert.Equal(t, "Ann", result.User.Name)
				assert.Equal(t, "ann@x.com", result.User.Email)
				assert.NotEmpty(t, result.Token)
				assert.NotEqual(t, "secret1", result.User.PasswordHash)
			}
		})
	}
}

func TestAuthService_SignupDuplicateLeavesStoreUntouched(t *testing.T) {
	authService, testDB := newAuthService(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	first, err := authService.Signup(ctx, service.SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = authService.Signup(ctx, service.SignupInput{Name: "Impostor", Email: "ann@x.com", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	count, err := repos.User.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repos.User.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, stored.ID)
	assert.Equal(t, "Ann", stored.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestAuthService_SignupTokenMatchesUser(t *testing.T) {
	authService, _ := newAuthService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		email := fmt.Sprintf("user%d@example.com", i)
		result, err := authService.Signup(ctx, service.SignupInput{
			Name:     fmt.Sprintf("User %d", i),
			Email:    email,
			Password: "password123",
		})
		require.NoError(t, err)

		claims, err := authService.VerifyToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID.String(), claims.Subject)
		assert.Equal(t, email, claims.Email)
		assert.Equal(t, result.User.Name, claims.Name)

		userID, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, userID)
	}
}

func TestAuthService_HashCost(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	cfg.BcryptCost = 10
	authService := service.NewAuthService(repos.User, cfg, zaptest.NewLogger(t))

	result, err := authService.Signup(context.Background(), service.SignupInput{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(result.User.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestAuthService_Login(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	// Create a user for login tests
	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("ann@x.com").
		WithPassword("secret1").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "successful login",
			input: service.LoginInput{Email: user.Email, Password: rawPassword},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Email: user.Email, Password: "wrong"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "non-existent user",
			input:   service.LoginInput{Email: "nobody@x.com", Password: rawPassword},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "email lookup is case-sensitive",
			input:   service.LoginInput{Email: "ANN@x.com", Password: rawPassword},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "missing password",
			input:   service.LoginInput{Email: user.Email},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.Token)
		})
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithPassword("secret1").Build(t, testDB.DB)

	_, wrongPassword := authService.Login(ctx, service.LoginInput{Email: user.Email, Password: "wrong"})
	_, unknownEmail := authService.Login(ctx, service.LoginInput{Email: "ghost@x.com", Password: "secret1"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestAuthService_TokenExpiry(t *testing.T) {
	authService, testDB := newAuthService(t)

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	authService.WithClock(testutil.FixedClock(&now))

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	token, expiresAt, err := authService.IssueToken(user)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), expiresAt)

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{name: "immediately", at: now},
		{name: "one second before expiry", at: expiresAt.Add(-time.Second)},
		{name: "after expiry", at: expiresAt.Add(time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = tt.at
			claims, err := authService.VerifyToken(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID.String(), claims.Subject)
		})
	}
}

func TestAuthService_VerifyTokenRejectsForgeries(t *testing.T) {
	authService, testDB := newAuthService(t)
	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	valid, _, err := authService.IssueToken(user)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testutil.TestConfig().JWTSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": user.ID.String()}).
		SignedString([]byte(testutil.TestConfig().JWTSecret))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testutil.TestConfig().JWTSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "foreign secret", token: foreign},
		{name: "alg none", token: unsigned},
		{name: "other hmac algorithm", token: hs512},
		{name: "missing expiry", token: noExpiry},
		{name: "subject is not a user id", token: badSubject},
		{name: "tampered payload", token: valid[:len(valid)-4] + "abcd"},
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.VerifyToken(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithName("Ann").Build(t, testDB.DB)

	got, err := authService.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Ann", got.Name)

	_, err = authService.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
