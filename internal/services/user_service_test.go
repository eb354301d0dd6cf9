package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
)

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	auth, _, users := newAuth(nil)
	svc := NewUserService(users, auth)

	ann, _, err := auth.Signup(ctx, models.SignupRequest{Name: "Ann", Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, _, err = auth.Signup(ctx, models.SignupRequest{Name: "Bob", Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)

	// empty fields keep current values
	u, err := svc.UpdateProfile(ctx, ann.ID, models.ProfileUpdate{ProfilePicture: "https://img/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, "https://img/a.png", u.ProfilePicture)

	_, err = svc.UpdateProfile(ctx, ann.ID, models.ProfileUpdate{Email: "BOB@example.com"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Email already in use", MessageOf(err, ""))

	_, err = svc.UpdateProfile(ctx, ann.ID, models.ProfileUpdate{Password: "newpass1"})
	require.NoError(t, err)
	_, _, err = auth.Login(ctx, "ann@example.com", "newpass1")
	assert.NoError(t, err)
	_, _, err = auth.Login(ctx, "ann@example.com", "secret123")
	assert.Equal(t, KindInvalidCredentials, KindOf(err))
}

func TestUserService_SetTheme(t *testing.T) {
	ctx := context.Background()
	auth, _, users := newAuth(nil)
	svc := NewUserService(users, auth)

	ann, _, err := auth.Signup(ctx, models.SignupRequest{Name: "Ann", Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, ann.Theme)

	theme, err := svc.SetTheme(ctx, ann.ID, models.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, theme)

	u, err := svc.GetProfile(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, u.Theme)

	_, err = svc.SetTheme(ctx, ann.ID, "blue")
	assert.Equal(t, "Invalid theme value", MessageOf(err, ""))

	_, err = svc.GetProfile(ctx, "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}
