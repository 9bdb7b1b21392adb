package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
)

func decodePatch(t *testing.T, body string) ProfilePatch {
	t.Helper()
	var patch ProfilePatch
	require.NoError(t, json.Unmarshal([]byte(body), &patch))
	return patch
}

func TestUserService_UpdateProfile(t *testing.T) {
	image := "https://cdn.example.com/old.png"

	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockUserRepository)
		check        func(*testing.T, *model.User)
		expectError  bool
		expectedKind apperrors.Kind
	}{
		{
			name:         "no recognized fields",
			body:         `{"nickname":"x"}`,
			setupMock:    func(m *MockUserRepository) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "blank name",
			body:         `{"name":"   "}`,
			setupMock:    func(m *MockUserRepository) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "image not a url",
			body:         `{"image":"not a url"}`,
			setupMock:    func(m *MockUserRepository) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name: "name only keeps image",
			body: `{"name":"  Ada  "}`,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Old", Image: &image}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, "Ada", u.Name)
				require.NotNil(t, u.Image)
				assert.Equal(t, image, *u.Image)
			},
		},
		{
			name: "explicit null clears image",
			body: `{"image":null}`,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Old", Image: &image}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, "Old", u.Name)
				assert.Nil(t, u.Image)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			user, err := NewUserService(repo, nil, nil, discardLogger()).UpdateProfile(context.Background(), 1, decodePatch(t, tt.body))
			if tt.expectError {
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				tt.check(t, user)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateProfileRemovesReplacedAvatar(t *testing.T) {
	const (
		ownURL     = "https://cdn.example.com/uploads/avatars/1/old.png"
		ownKey     = "avatars/1/old.png"
		newURL     = "https://cdn.example.com/uploads/avatars/1/new.png"
		foreignURL = "https://gravatar.example.org/avatar/abc.png"
		otherURL   = "https://cdn.example.com/uploads/avatars/2/theirs.png"
	)

	tests := []struct {
		name          string
		previous      string
		body          string
		setupStore    func(*MockObjectStore)
		expectDeleted bool
	}{
		{
			name:     "replaced upload is deleted",
			previous: ownURL,
			body:     `{"image":"` + newURL + `"}`,
			setupStore: func(m *MockObjectStore) {
				m.On("ObjectKey", ownURL).Return(ownKey, true)
				m.On("Delete", mock.Anything, ownKey).Return(nil)
			},
			expectDeleted: true,
		},
		{
			name:     "cleared upload is deleted",
			previous: ownURL,
			body:     `{"image":null}`,
			setupStore: func(m *MockObjectStore) {
				m.On("ObjectKey", ownURL).Return(ownKey, true)
				m.On("Delete", mock.Anything, ownKey).Return(nil)
			},
			expectDeleted: true,
		},
		{
			name:     "delete failure keeps the update",
			previous: ownURL,
			body:     `{"image":null}`,
			setupStore: func(m *MockObjectStore) {
				m.On("ObjectKey", ownURL).Return(ownKey, true)
				m.On("Delete", mock.Anything, ownKey).Return(errors.New("connection reset"))
			},
			expectDeleted: true,
		},
		{
			name:     "link outside the bucket is kept",
			previous: foreignURL,
			body:     `{"image":null}`,
			setupStore: func(m *MockObjectStore) {
				m.On("ObjectKey", foreignURL).Return("", false)
			},
		},
		{
			name:     "another user's object is kept",
			previous: otherURL,
			body:     `{"image":"` + newURL + `"}`,
			setupStore: func(m *MockObjectStore) {
				m.On("ObjectKey", otherURL).Return("avatars/2/theirs.png", true)
			},
		},
		{
			name:       "unchanged image is kept",
			previous:   ownURL,
			body:       `{"image":"` + ownURL + `"}`,
			setupStore: func(m *MockObjectStore) {},
		},
		{
			name:       "name only leaves image alone",
			previous:   ownURL,
			body:       `{"name":"Ada"}`,
			setupStore: func(m *MockObjectStore) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := tt.previous
			repo := new(MockUserRepository)
			repo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Old", Image: &previous}, nil)
			repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			store := new(MockObjectStore)
			tt.setupStore(store)

			_, err := NewUserService(repo, nil, store, discardLogger()).UpdateProfile(context.Background(), 1, decodePatch(t, tt.body))

			require.NoError(t, err)
			if !tt.expectDeleted {
				store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("current-pass"), bcrypt.MinCost)

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, PasswordHash: string(hash)}, nil)

		err := NewUserService(repo, nil, nil, discardLogger()).ChangePassword(context.Background(), 2, PasswordChange{
			CurrentPassword: "guess", NewPassword: "new-pass-123",
		})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("too short", func(t *testing.T) {
		err := NewUserService(new(MockUserRepository), nil, nil, discardLogger()).ChangePassword(context.Background(), 2, PasswordChange{
			CurrentPassword: "current-pass", NewPassword: "abc",
		})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("rehashes", func(t *testing.T) {
		user := &model.User{ID: 2, PasswordHash: string(hash)}
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(2)).Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		err := NewUserService(repo, nil, nil, discardLogger()).ChangePassword(context.Background(), 2, PasswordChange{
			CurrentPassword: "current-pass", NewPassword: "new-pass-123",
		})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-pass-123")))
		repo.AssertExpectations(t)
	})
}

func TestUserService_CreateRejectsDuplicate(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "hr@example.com").Return(&model.User{ID: 3}, nil)

	_, err := NewUserService(repo, nil, nil, discardLogger()).Create(context.Background(), CreateUserInput{
		Name: "HR", Email: "hr@example.com", Password: "secret1", Role: model.RoleHR,
	})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestUserService_GetProfileMissing(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewUserService(repo, nil, nil, discardLogger()).GetProfile(context.Background(), 42)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
