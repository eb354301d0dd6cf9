package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskmate/internal/models"
	"taskmate/internal/repositories"
)

// Session is a freshly issued token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, *Session, error)
	Login(ctx context.Context, email, password string) (*models.User, *Session, error)
	// Refresh verifies a refresh token and mints a new access token.
	Refresh(ctx context.Context, refreshToken string) (*models.User, string, error)
	// Authenticate resolves the user behind an access token.
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
	HashPassword(password string) (string, error)
}

var (
	ErrUserNotFound = errors.New("user not found")
)

type authService struct {
	users  repositories.UserRepository
	tokens TokenService
	emails EmailService
}

func NewAuthService(users repositories.UserRepository, tokens TokenService, emails EmailService) AuthService {
	return &authService{users: users, tokens: tokens, emails: emails}
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, *Session, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return nil, nil, validationError("Invalid user data")
	}
	if l := len(req.Password); l < 6 || l > 72 {
		return nil, nil, validationError("Password must be between 6 and 72 characters")
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, nil, internal("Failed to hash password", err)
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Theme:        models.ThemeLight,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, nil, validationError("User already exists")
		}
		return nil, nil, internal("Failed to create user", err)
	}
	log.Printf("[auth][signup][ok] user=%s", user.ID)

	if s.emails != nil {
		go func(email, name string) {
			if err := s.emails.SendWelcomeEmail(email, name); err != nil {
				// warn but do not fail signup
				log.Printf("[auth][signup][warn] welcome email to %s: %v", email, err)
			}
		}(user.Email, user.Name)
	}

	session, err := s.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	invalid := &Error{Kind: KindInvalidCredentials, Message: "Invalid email or password"}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("[auth][login] unknown email=%q", email)
			return nil, nil, invalid
		}
		return nil, nil, internal("Failed to load user", err)
	}
	if user.PasswordHash == "" {
		log.Printf("[auth][login] empty password_hash user=%s", user.ID)
		return nil, nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[auth][login] bcrypt mismatch user=%s", user.ID)
		return nil, nil, invalid
	}

	session, err := s.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[auth][login][ok] user=%s", user.ID)
	return user, session, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.User, string, error) {
	if refreshToken == "" {
		return nil, "", &Error{Kind: KindNotAuthenticated, Message: "No refresh token found"}
	}
	userID, err := s.tokens.Verify(refreshToken, RefreshToken)
	if err != nil {
		return nil, "", &Error{Kind: KindNotAuthenticated, Message: "Invalid refresh token", Err: err}
	}
	user, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	access, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, "", internal("Failed to issue token", err)
	}
	return user, access, nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := s.tokens.Verify(accessToken, AccessToken)
	if err != nil {
		return nil, err
	}
	return s.lookup(ctx, userID)
}

func (s *authService) lookup(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &Error{Kind: KindNotAuthenticated, Message: "User not found", Err: ErrUserNotFound}
		}
		return nil, internal("Failed to load user", err)
	}
	return user, nil
}

func (s *authService) issue(userID string) (*Session, error) {
	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, internal("Failed to issue token", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, internal("Failed to issue token", err)
	}
	return &Session{AccessToken: access, RefreshToken: refresh}, nil
}
