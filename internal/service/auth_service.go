package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// IdentityClaims are the claims the identity provider puts in its bearer tokens.
type IdentityClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTVerifier verifies HS256 tokens signed with the shared secret. Issuer
// and audience are only enforced when configured.
func NewJWTVerifier(cfg config.AuthConfig) domain.IdentityVerifier {
	return &jwtVerifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

func (v *jwtVerifier) Verify(ctx context.Context, tokenString string) (*domain.Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, domain.NewUnauthenticatedError("missing bearer token")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Bearer token expired", zap.Error(err))
			return nil, domain.NewUnauthenticatedError("token expired")
		}
		logger.Get().Debug("Bearer token rejected", zap.Error(err))
		return nil, domain.NewUnauthenticatedError("invalid token")
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.NewUnauthenticatedError("invalid token")
	}

	return &domain.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
