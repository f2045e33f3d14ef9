package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
	"github.com/golang-jwt/jwt/v5"
)

type AuthService struct {
	authenticator ports.Authenticator
	jwtSecret     []byte
}

func NewAuthService(authenticator ports.Authenticator) *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("Warning: JWT_SECRET not set")
	}

	return &AuthService{
		authenticator: authenticator,
		jwtSecret:     []byte(secret),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if !s.authenticator.Verify(username, password) {
		return "", domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   username,
		"admin": true,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks an admin token issued by Login. Used by the HTTP
// middleware gating admin routes.
func (s *AuthService) VerifyToken(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return domain.ErrInvalidCredentials
	}
	return nil
}
