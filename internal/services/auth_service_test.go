package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
	"taskmate/internal/repositories"
)

type recordingEmails struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (r *recordingEmails) SendWelcomeEmail(email, _ string) error {
	r.mu.Lock()
	r.sent = append(r.sent, email)
	r.mu.Unlock()
	close(r.done)
	return nil
}

func newAuth(emails EmailService) (AuthService, TokenService, repositories.UserRepository) {
	users := repositories.NewMemoryStore().Users()
	tokens := NewTokenService(testTokenConfig())
	return NewAuthService(users, tokens, emails), tokens, users
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	emails := &recordingEmails{done: make(chan struct{})}
	auth, tokens, _ := newAuth(emails)
	ctx := context.Background()

	user, session, err := auth.Signup(ctx, models.SignupRequest{Name: " Ann ", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, models.ThemeLight, user.Theme)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	id, err := tokens.Verify(session.AccessToken, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	select {
	case <-emails.done:
	case <-time.After(time.Second):
		t.Fatal("welcome email not sent")
	}
	assert.Equal(t, []string{"ann@example.com"}, emails.sent)

	logged, _, err := auth.Login(ctx, "ANN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestAuthService_SignupDuplicate(t *testing.T) {
	auth, _, _ := newAuth(nil)
	ctx := context.Background()

	_, _, err := auth.Signup(ctx, models.SignupRequest{Name: "a", Email: "a@x.io", Password: "secret1"})
	require.NoError(t, err)
	_, _, err = auth.Signup(ctx, models.SignupRequest{Name: "b", Email: "A@x.io", Password: "secret2"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "User already exists", MessageOf(err, ""))
}

func TestAuthService_LoginFailures(t *testing.T) {
	auth, _, _ := newAuth(nil)
	ctx := context.Background()
	_, _, err := auth.Signup(ctx, models.SignupRequest{Name: "a", Email: "a@x.io", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "a@x.io", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(ctx, "nobody@x.io", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", MessageOf(err, ""))
}

func TestAuthService_Refresh(t *testing.T) {
	auth, tokens, _ := newAuth(nil)
	ctx := context.Background()
	user, session, err := auth.Signup(ctx, models.SignupRequest{Name: "a", Email: "a@x.io", Password: "secret1"})
	require.NoError(t, err)

	got, access, err := auth.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	id, err := tokens.Verify(access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, _, err = auth.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, _, err = auth.Refresh(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAuthService_AuthenticateDeletedUser(t *testing.T) {
	auth, tokens, _ := newAuth(nil)

	access, err := tokens.IssueAccessToken("ghost")
	require.NoError(t, err)
	_, err = auth.Authenticate(context.Background(), access)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = auth.Authenticate(context.Background(), "junk")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
