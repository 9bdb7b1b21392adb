package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"dataconsult/internal/auth"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = &apperrors.Error{Kind: apperrors.KindUnauthorized, Message: "Invalid email or password"}
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = apperrors.Conflict("User with this email already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid, revoked or expired.
	ErrInvalidRefreshToken = &apperrors.Error{Kind: apperrors.KindUnauthorized, Message: "Invalid or expired refresh token"}
)

// Session is what a successful login or refresh hands back to the HTTP layer.
type Session struct {
	User         *model.User
	SessionToken string
	RefreshToken string
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   *auth.SessionService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions *auth.SessionService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		tokenStore: tokenStore,
	}
}

// Signup creates an APPLICANT account with a hashed password.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	return registerUser(ctx, s.userRepo, name, email, password, model.RoleApplicant)
}

// Login authenticates a user and issues a session and a refresh token.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Internal(fmt.Errorf("find user: %w", err))
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// Refresh validates a refresh token, reloads the user so role and profile
// changes reach the new session, and rotates the refresh token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.sessions.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, apperrors.Internal(fmt.Errorf("find user: %w", err))
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("revoke refresh token: %w", err))
	}
	return s.issue(ctx, user)
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.sessions.ValidateRefresh(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return apperrors.Internal(fmt.Errorf("delete refresh token: %w", err))
	}
	return nil
}

func (s *authService) issue(ctx context.Context, user *model.User) (*Session, error) {
	sessionToken, err := s.sessions.IssueSession(user)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("issue session: %w", err))
	}
	tokenID, refreshToken, err := s.sessions.IssueRefresh(user.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("issue refresh token: %w", err))
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, s.sessions.RefreshTTL()); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("store refresh token: %w", err))
	}
	return &Session{User: user, SessionToken: sessionToken, RefreshToken: refreshToken}, nil
}

// registerUser is shared by public signup and admin user creation.
func registerUser(ctx context.Context, repo repository.UserRepository, name, email, password string, role model.Role) (*model.User, error) {
	email = normalizeEmail(email)
	if !role.Valid() {
		return nil, apperrors.Validation("Invalid role")
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(fmt.Errorf("check user existence: %w", err))
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, apperrors.Internal(fmt.Errorf("create user: %w", err))
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
