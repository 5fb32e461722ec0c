package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fileupload/internal/config"
	"fileupload/internal/domain"
	"fileupload/internal/port"
)

const audienceAccess = "access"

// Claims represents the JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AuthService verifies caller sessions.
type AuthService interface {
	ValidateToken(ctx context.Context, tokenString string) (*domain.Session, error)
	IssueToken(subject, email string) (string, time.Time, error)
	RevokeToken(ctx context.Context, tokenString string) error
}

type authService struct {
	cfg        config.AuthConfig
	revocation port.SessionRevocationStore
}

// NewAuthService creates a new AuthService implementation. revocation may be
// nil, in which case no token is ever considered revoked.
func NewAuthService(cfg config.AuthConfig, revocation port.SessionRevocationStore) AuthService {
	return &authService{cfg: cfg, revocation: revocation}
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*domain.Session, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if s.revocation != nil && claims.ID != "" {
		revoked, err := s.revocation.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Fail closed: an unverifiable session is no session.
			log.Printf("authService.ValidateToken: revocation lookup for %s failed: %v", claims.ID, err)
			return nil, domain.ErrUnauthorized
		}
		if revoked {
			return nil, domain.ErrUnauthorized
		}
	}

	session := &domain.Session{
		Subject: claims.Subject,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (s *authService) IssueToken(subject, email string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("subject is required")
	}
	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audienceAccess},
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authService) RevokeToken(ctx context.Context, tokenString string) error {
	if s.revocation == nil {
		return errors.New("session revocation is not configured")
	}
	claims, err := s.parse(tokenString)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if claims.ID == "" {
		return fmt.Errorf("token has no id: %w", domain.ErrUnauthorized)
	}
	expiresAt := time.Now().Add(s.cfg.TokenExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.revocation.Revoke(ctx, claims.ID, expiresAt)
}

func (s *authService) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(audienceAccess),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
