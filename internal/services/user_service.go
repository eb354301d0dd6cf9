package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"taskmate/internal/models"
	"taskmate/internal/repositories"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.User, error)
	SetTheme(ctx context.Context, userID string, theme models.Theme) (models.Theme, error)
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, internal("Failed to load user", err)
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields of in.
func (s *userService) UpdateProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		user.Email = email
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = strings.TrimSpace(in.ProfilePicture)
	}
	if in.Password != "" {
		if l := len(in.Password); l < 6 || l > 72 {
			return nil, validationError("Password must be between 6 and 72 characters")
		}
		hash, err := s.auth.HashPassword(in.Password)
		if err != nil {
			return nil, internal("Failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, validationError("Email already in use")
		case errors.Is(err, repositories.ErrNotFound):
			return nil, notFound("User not found")
		}
		return nil, internal("Failed to update profile", err)
	}
	log.Printf("[user][profile][ok] user=%s", user.ID)
	return user, nil
}

func (s *userService) SetTheme(ctx context.Context, userID string, theme models.Theme) (models.Theme, error) {
	if !theme.Valid() {
		return "", validationError("Invalid theme value")
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	user.Theme = theme
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", notFound("User not found")
		}
		return "", internal("Failed to update theme", err)
	}
	return theme, nil
}
