package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gym_backend/internal/models"
)

// UserRepository defines the operator-account database operations.
type UserRepository interface {
	FindUserByUsuario(ctx context.Context, usuario string) (*models.User, error)
	CreateUserIfMissing(ctx context.Context, executor SQLExecutor, usuario, passwordHash string) (bool, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// FindUserByUsuario retrieves an account, including its password hash.
func (r *userRepository) FindUserByUsuario(ctx context.Context, usuario string) (*models.User, error) {
	query := `SELECT id, usuario, password_hash, activo, created_at
	          FROM usuarios
	          WHERE usuario = $1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, usuario).Scan(
		&user.ID, &user.Usuario, &user.PasswordHash, &user.Activo, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user %s: %v", ErrDatabaseError, usuario, err)
	}
	return user, nil
}

// CreateUserIfMissing inserts the account unless the username is taken.
// It reports whether a row was inserted.
func (r *userRepository) CreateUserIfMissing(ctx context.Context, executor SQLExecutor, usuario, passwordHash string) (bool, error) {
	query := `INSERT INTO usuarios (usuario, password_hash, activo)
	          VALUES ($1, $2, TRUE)
	          ON CONFLICT (usuario) DO NOTHING`

	result, err := executor.ExecContext(ctx, query, usuario, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("%w: usuario %s", ErrDuplicateKey, usuario)
		}
		return false, fmt.Errorf("%w: creating user %s: %v", ErrDatabaseError, usuario, err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: getting rows affected for user %s: %v", ErrDatabaseError, usuario, err)
	}
	return inserted > 0, nil
}
