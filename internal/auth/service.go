package auth

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// service implementa Service.
type service struct {
	repo   Repository
	tokens TokenManager
}

// NewService construye el servicio de autenticación.
func NewService(repo Repository, tokens TokenManager) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, email, password string) (string, string, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return "", "", ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	u := &User{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return "", "", err
	}

	token, err := s.tokens.GenerateToken(u.UserID)
	if err != nil {
		return "", "", err
	}
	log.Printf("[AUTH] usuario registrado: %s", u.UserID)
	return u.UserID, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.UserID)
	if err != nil {
		return "", "", err
	}
	return u.UserID, token, nil
}
