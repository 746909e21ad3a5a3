package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobdesk/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	role := user.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if role == "" {
		role = user.RoleCandidate
	}
	// Admin accounts are provisioned out of band, never self-registered.
	if !role.Valid() || role == user.RoleAdmin {
		return user.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
