package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenManager crea un TokenManager con firma HS256.
func NewJWTTokenManager(secret string) TokenManager {
	return &jwtTokenManager{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

func (j *jwtTokenManager) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(j.ttl).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *jwtTokenManager) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("auth: invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("auth: token without user_id")
	}
	return userID, nil
}
