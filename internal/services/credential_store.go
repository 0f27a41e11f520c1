package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var ErrUserNotFound = errors.New("user not found")

// CredentialStore looks up operator accounts by username.
type CredentialStore interface {
	FindUser(ctx context.Context, usuario string) (*models.User, error)
}

// staticCredentialStore serves the single account from configuration.
type staticCredentialStore struct {
	user models.User
}

// NewStaticCredentialStore hashes password once so the login path always compares hashes.
func NewStaticCredentialStore(usuario, password string) (CredentialStore, error) {
	if usuario == "" || password == "" {
		return nil, errors.New("static credential store needs usuario and password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &staticCredentialStore{
		user: models.User{ID: 1, Usuario: usuario, PasswordHash: string(hash), Activo: true},
	}, nil
}

func (s *staticCredentialStore) FindUser(_ context.Context, usuario string) (*models.User, error) {
	if usuario != s.user.Usuario {
		return nil, ErrUserNotFound
	}
	user := s.user
	return &user, nil
}

// DBCredentialStore reads accounts from the usuarios table.
type DBCredentialStore struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

func NewDBCredentialStore(userRepo repositories.UserRepository, db *sql.DB) *DBCredentialStore {
	return &DBCredentialStore{userRepo: userRepo, db: db}
}

func (s *DBCredentialStore) FindUser(ctx context.Context, usuario string) (*models.User, error) {
	user, err := s.userRepo.FindUserByUsuario(ctx, usuario)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Bootstrap creates the initial account unless it already exists.
func (s *DBCredentialStore) Bootstrap(ctx context.Context, usuario, password string) (bool, error) {
	if usuario == "" || password == "" {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	created, err := s.userRepo.CreateUserIfMissing(ctx, s.db, usuario, string(hash))
	if err != nil {
		return false, fmt.Errorf("failed to bootstrap user: %w", err)
	}
	return created, nil
}
