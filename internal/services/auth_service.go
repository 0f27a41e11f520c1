package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// LoginRequest DTO
type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// LoginResult carries the bearer token; Token is empty when no issuer is configured.
type LoginResult struct {
	Usuario string
	Token   string
}

// TokenGenerator issues access tokens for authenticated operators.
type TokenGenerator interface {
	GenerateAccessToken(usuario string) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type authService struct {
	store  CredentialStore
	tokens TokenGenerator
}

// NewAuthService creates a new instance of AuthService. tokens may be nil.
func NewAuthService(store CredentialStore, tokens TokenGenerator) AuthService {
	return &authService{store: store, tokens: tokens}
}

// Login checks the pair against the credential store. Unknown users, inactive
// accounts and wrong passwords all yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	usuario := strings.TrimSpace(req.Usuario)
	if usuario == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.FindUser(ctx, usuario)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Activo {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	result := &LoginResult{Usuario: user.Usuario}
	if s.tokens != nil {
		token, err := s.tokens.GenerateAccessToken(user.Usuario)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
		}
		result.Token = token
	}
	return result, nil
}
