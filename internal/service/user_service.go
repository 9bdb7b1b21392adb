package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"dataconsult/internal/auth"
	"dataconsult/internal/cache"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// fieldValidator checks single values that arrive outside a bound struct.
var fieldValidator = validator.New()

// CreateUserInput is an admin-created account.
type CreateUserInput struct {
	Name     string     `json:"name" validate:"required,min=1,max=100"`
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,min=6,max=100"`
	Role     model.Role `json:"role" validate:"required,oneof=ADMIN HR APPLICANT"`
}

// ProfilePatch updates the caller's own profile. Image may be null to clear it.
type ProfilePatch struct {
	Name  *string        `json:"name"`
	Image OptionalString `json:"image" swaggertype:"string"`
}

// PasswordChange replaces the caller's password.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=100"`
}

// UserService exposes user and profile operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*model.User, error)
	ChangePassword(ctx context.Context, id uint, in PasswordChange) error
}

type userService struct {
	repo   repository.UserRepository
	cache  *cache.Client
	store  ObjectStore
	logger *slog.Logger
}

// NewUserService builds a UserService. store may be nil when object storage
// is unavailable; replaced avatars are then left in place.
func NewUserService(repo repository.UserRepository, cache *cache.Client, store ObjectStore, logger *slog.Logger) UserService {
	return &userService{repo: repo, cache: cache, store: store, logger: logger}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list users: %w", err))
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Create adds an account with any role. The password hash never leaves the model.
func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.Validation("name is required")
	}
	return registerUser(ctx, s.repo, in.Name, in.Email, in.Password, in.Role)
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// UpdateProfile applies the fields present in patch. A patch with no
// recognized field is rejected rather than treated as a no-op.
func (s *userService) UpdateProfile(ctx context.Context, id uint, patch ProfilePatch) (*model.User, error) {
	if patch.Name == nil && !patch.Image.Set {
		return nil, apperrors.Validation("No valid fields to update")
	}

	var name string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if len([]rune(name)) < 1 || len([]rune(name)) > 100 {
			return nil, apperrors.Validation("name must be between 1 and 100 characters")
		}
	}
	var image *string
	if patch.Image.Set && patch.Image.Value != nil {
		v := strings.TrimSpace(*patch.Image.Value)
		if !isHTTPURL(v) {
			return nil, apperrors.Validation("image must be a valid URL")
		}
		image = &v
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	previous := user.Image
	if patch.Name != nil {
		user.Name = name
	}
	if patch.Image.Set {
		user.Image = image
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("update profile: %w", err))
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	if patch.Image.Set && previous != nil && (image == nil || *image != *previous) {
		s.removeAvatar(ctx, id, *previous)
	}
	return user, nil
}

// removeAvatar deletes a replaced avatar when it is one of this user's
// uploads. Links to other hosts or other users' objects are left alone.
// The profile is already saved, so failures are only logged.
func (s *userService) removeAvatar(ctx context.Context, id uint, imageURL string) {
	if s.store == nil {
		return
	}
	key, ok := s.store.ObjectKey(imageURL)
	if !ok || !strings.HasPrefix(key, fmt.Sprintf("%s/%d/", UploadAvatar, id)) {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "remove replaced avatar", "user_id", id, "key", key, "error", err)
	}
}

// ChangePassword verifies the current password before storing a new hash.
func (s *userService) ChangePassword(ctx context.Context, id uint, in PasswordChange) error {
	if n := len(in.NewPassword); n < 6 || n > 100 {
		return apperrors.Validation("newPassword must be between 6 and 100 characters")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, "User not found")
	}
	if !auth.CheckPassword(in.CurrentPassword, user.PasswordHash) {
		return apperrors.Validation("Current password is incorrect")
	}

	hashed, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	user.PasswordHash = hashed
	if err := s.repo.Update(ctx, user); err != nil {
		return apperrors.Internal(fmt.Errorf("update password: %w", err))
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func isHTTPURL(v string) bool {
	return fieldValidator.Var(v, "required,http_url,max=512") == nil
}
