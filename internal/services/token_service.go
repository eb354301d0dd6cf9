package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the signature was valid but the token is past its expiry;
	// for access tokens the client may recover with one refresh.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures (including a token
	// signed with the other kind's secret) and wrong token type.
	ErrTokenInvalid = errors.New("invalid token")
)

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims carries only the user id. Tokens are stateless: nothing is stored
// server-side, so a token stays valid until expiry unless the secret rotates.
type Claims struct {
	UserID string    `json:"id"`
	Kind   TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type TokenService interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	Verify(token string, kind TokenKind) (string, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type tokenService struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenService(cfg TokenConfig) TokenService {
	return &tokenService{cfg: cfg, now: time.Now}
}

func (s *tokenService) AccessTTL() time.Duration  { return s.cfg.AccessTTL }
func (s *tokenService) RefreshTTL() time.Duration { return s.cfg.RefreshTTL }

func (s *tokenService) IssueAccessToken(userID string) (string, error) {
	return s.issue(userID, AccessToken, s.cfg.AccessTTL)
}

func (s *tokenService) IssueRefreshToken(userID string) (string, error) {
	return s.issue(userID, RefreshToken, s.cfg.RefreshTTL)
}

func (s *tokenService) issue(userID string, kind TokenKind, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	secret, err := s.secret(kind)
	if err != nil {
		return "", err
	}
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature, expiry and kind, and returns the user id.
func (s *tokenService) Verify(token string, kind TokenKind) (string, error) {
	secret, err := s.secret(kind)
	if err != nil {
		return "", err
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// только HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !parsed.Valid || claims.Kind != kind || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (s *tokenService) secret(kind TokenKind) ([]byte, error) {
	switch kind {
	case AccessToken:
		return []byte(s.cfg.AccessSecret), nil
	case RefreshToken:
		return []byte(s.cfg.RefreshSecret), nil
	}
	return nil, fmt.Errorf("unknown token kind %q", kind)
}
