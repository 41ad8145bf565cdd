package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cat-api/internal/ports/auth"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

const bcryptCost = 10

// Service maneja cuentas. El hashing de password vive acá como colaborador
// del registro; la emisión/verificación de tokens queda fuera (adapter).
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Username string
	Email    string
	Password string
}

// Create registra un usuario nuevo. Role se fuerza a "user" sin mirar nada
// del cliente.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if len(username) < 2 || email == "" || len(in.Password) < 5 {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.ListAll(ctx)
}

type UpdateCurrentInput struct {
	Username *string
	Email    *string
	Password *string
}

// UpdateCurrent actualiza el perfil del actor autenticado. Si viene password
// nuevo, se re-hashea acá; el hash nunca entra por el request.
func (s *Service) UpdateCurrent(ctx context.Context, actorID string, in UpdateCurrentInput) (User, error) {
	if strings.TrimSpace(actorID) == "" {
		return User{}, ErrUnauthorized
	}
	if in.Username != nil && len(strings.TrimSpace(*in.Username)) < 2 {
		return User{}, ErrInvalidInput
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) == "" {
		return User{}, ErrInvalidInput
	}

	patch := UpdateInput{
		Username: in.Username,
		Email:    in.Email,
	}

	if in.Password != nil {
		if len(*in.Password) < 5 {
			return User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return User{}, err
		}
		h := string(hash)
		patch.PasswordHash = &h
	}

	return s.repo.UpdateByID(ctx, actorID, patch, s.now())
}

// DeleteCurrent borra la cuenta del actor autenticado.
func (s *Service) DeleteCurrent(ctx context.Context, actorID string) (User, error) {
	if strings.TrimSpace(actorID) == "" {
		return User{}, ErrUnauthorized
	}
	return s.repo.DeleteByID(ctx, actorID)
}
