package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/refund-service/internal/auth"
	"github.com/spec-kit/refund-service/internal/config"
	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/repository"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

// MsgInvalidCredentials is shared by every login failure so accounts cannot be enumerated.
const MsgInvalidCredentials = "Email ou senha incorretos"

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationStore
	bcryptCost int
	// dummyHash is compared against for unknown emails so both failure paths cost the same.
	dummyHash string
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	revoked := deps.Revocations
	if revoked == nil {
		revoked = auth.NoopRevocationStore{}
	}
	dummyHash, _ := auth.HashPassword("not-a-real-password", cfg.Auth.BcryptCost)
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:    revoked,
		bcryptCost: cfg.Auth.BcryptCost,
		dummyHash:  dummyHash,
	}
}

// RegisterUser creates a new account.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(input.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email já cadastrado", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsCode(apperrors.MapError(err), apperrors.CodeConflict) {
			return nil, apperrors.NewConflict("Email já cadastrado", nil)
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.ComparePassword(s.dummyHash, password)
			return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, err
	}
	if !auth.ComparePassword(user.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}

// Logout revokes the caller's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, identity auth.Identity) error {
	if identity.TokenID == "" {
		return nil
	}
	return s.revoked.Revoke(ctx, identity.TokenID, identity.ExpiresAt)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
