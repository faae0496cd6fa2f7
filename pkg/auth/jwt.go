package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTService issues and validates signed access tokens for accounts.
type JWTService interface {
	GenerateAccessToken(accountID uuid.UUID, email string) (string, time.Time, error)
	ValidateToken(token string) (map[string]interface{}, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *jwtService) GenerateAccessToken(accountID uuid.UUID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiry)
	claims := jwt.MapClaims{
		"account_id": accountID.String(),
		"email":      email,
		"iat":        time.Now().Unix(),
		"exp":        expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *jwtService) ValidateToken(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
