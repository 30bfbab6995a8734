package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kitchenhub/recipe-service/config"
	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/util/common"
	"github.com/kitchenhub/recipe-service/util/crypto"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// TokenType is reported next to every issued access token.
const TokenType = "bearer"

// AuthService hashes passwords and issues and resolves signed access tokens.
type AuthService struct {
	DB     *gorm.DB
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewAuthService builds the credential service from the process configuration.
func NewAuthService(db *gorm.DB) (*AuthService, error) {
	return NewAuthServiceWith(db, config.GetSecretKey(), config.GetAlgorithm(), config.GetAccessTokenTTL())
}

// NewAuthServiceWith builds the credential service with an explicit key,
// HMAC algorithm name and token lifetime.
func NewAuthServiceWith(db *gorm.DB, secret, algorithm string, ttl time.Duration) (*AuthService, error) {
	if secret == "" {
		return nil, errors.New("secret key can not be empty")
	}
	method, ok := jwt.GetSigningMethod(strings.ToUpper(algorithm)).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, common.NewErrorf("unsupported token algorithm: %s", algorithm)
	}
	return &AuthService{
		DB:     db,
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

func (s *AuthService) HashPassword(password string) (string, error) {
	return crypto.HashPassword(password)
}

func (s *AuthService) VerifyPassword(password, hash string) bool {
	return crypto.VerifyPassword(password, hash)
}

// IssueToken signs {sub: nickname, exp: now+ttl}.
func (s *AuthService) IssueToken(nickname string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   nickname,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// ResolveToken verifies signature and expiry and returns the subject's user.
// Every failure is reported as ErrUnauthorized.
func (s *AuthService) ResolveToken(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	user, err := database.GetUserByNickname(s.DB, claims.Subject)
	if database.IsNotFound(err) {
		return nil, ErrUnauthorized
	} else if err != nil {
		return nil, storageError("resolve token", err)
	}
	return user, nil
}
