package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dataconsult/internal/auth"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validApplication(jobID uint) ApplicationInput {
	return ApplicationInput{
		JobID:     jobID,
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		ResumeURL: "https://cdn.example.com/resumes/1/cv.pdf",
	}
}

func TestApplicationService_Create(t *testing.T) {
	applicant := auth.Principal{UserID: 4, Role: model.RoleApplicant}

	tests := []struct {
		name         string
		setupMock    func(*MockApplicationRepository, *MockJobRepository, *MockNotificationService)
		expectedKind apperrors.Kind
		expectError  bool
	}{
		{
			name: "successful application",
			setupMock: func(apps *MockApplicationRepository, jobs *MockJobRepository, n *MockNotificationService) {
				jobs.On("FindByID", mock.Anything, uint(1)).Return(&model.Job{ID: 1, Title: "Data Engineer", IsActive: true}, nil)
				apps.On("FindByUserAndJob", mock.Anything, uint(4), uint(1)).Return(nil, gorm.ErrRecordNotFound)
				apps.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Application) bool {
					return a.Status == model.ApplicationStatusApplied && a.UserID == 4
				})).Return(nil)
				n.On("Notify", mock.Anything, model.NotificationApplication, mock.Anything, mock.Anything, mock.Anything).Return()
			},
		},
		{
			name: "job missing",
			setupMock: func(apps *MockApplicationRepository, jobs *MockJobRepository, n *MockNotificationService) {
				jobs.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectError:  true,
			expectedKind: apperrors.KindNotFound,
		},
		{
			name: "job inactive",
			setupMock: func(apps *MockApplicationRepository, jobs *MockJobRepository, n *MockNotificationService) {
				jobs.On("FindByID", mock.Anything, uint(1)).Return(&model.Job{ID: 1, IsActive: false}, nil)
			},
			expectError:  true,
			expectedKind: apperrors.KindNotFound,
		},
		{
			name: "already applied",
			setupMock: func(apps *MockApplicationRepository, jobs *MockJobRepository, n *MockNotificationService) {
				jobs.On("FindByID", mock.Anything, uint(1)).Return(&model.Job{ID: 1, IsActive: true}, nil)
				apps.On("FindByUserAndJob", mock.Anything, uint(4), uint(1)).Return(&model.Application{ID: 8}, nil)
			},
			expectError:  true,
			expectedKind: apperrors.KindConflict,
		},
		{
			name: "concurrent duplicate caught by unique index",
			setupMock: func(apps *MockApplicationRepository, jobs *MockJobRepository, n *MockNotificationService) {
				jobs.On("FindByID", mock.Anything, uint(1)).Return(&model.Job{ID: 1, IsActive: true}, nil)
				apps.On("FindByUserAndJob", mock.Anything, uint(4), uint(1)).Return(nil, gorm.ErrRecordNotFound)
				apps.On("Create", mock.Anything, mock.AnythingOfType("*model.Application")).Return(gorm.ErrDuplicatedKey)
			},
			expectError:  true,
			expectedKind: apperrors.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := new(MockApplicationRepository)
			jobs := new(MockJobRepository)
			notifier := new(MockNotificationService)
			tt.setupMock(apps, jobs, notifier)

			service := NewApplicationService(apps, jobs, notifier, discardLogger())
			app, err := service.Create(context.Background(), applicant, validApplication(1))

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, app)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.ApplicationStatusApplied, app.Status)
			}

			apps.AssertExpectations(t)
			jobs.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestApplicationService_CheckNeverFails(t *testing.T) {
	apps := new(MockApplicationRepository)
	apps.On("FindByUserAndJob", mock.Anything, uint(1), uint(2)).Return(nil, errors.New("connection reset"))
	apps.On("FindByUserAndJob", mock.Anything, uint(1), uint(3)).Return(&model.Application{Status: model.ApplicationStatusShortlisted}, nil)

	service := NewApplicationService(apps, new(MockJobRepository), new(MockNotificationService), discardLogger())

	assert.Equal(t, ApplicationCheck{Applied: false}, service.Check(context.Background(), 1, 2))

	check := service.Check(context.Background(), 1, 3)
	assert.True(t, check.Applied)
	require.NotNil(t, check.Status)
	assert.Equal(t, model.ApplicationStatusShortlisted, *check.Status)
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name         string
		update       StatusUpdate
		setupMock    func(*MockApplicationRepository)
		expectedKind apperrors.Kind
		expectError  bool
	}{
		{
			name:   "under review needs no description",
			update: StatusUpdate{Status: model.ApplicationStatusUnderReview},
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(&model.Application{ID: 7, Status: model.ApplicationStatusApplied}, nil)
				m.On("UpdateStatus", mock.Anything, uint(7), model.ApplicationStatusUnderReview, "").Return(nil)
			},
		},
		{
			name:   "shortlisted with description",
			update: StatusUpdate{Status: model.ApplicationStatusShortlisted, StatusDescription: "  Strong SQL  "},
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(&model.Application{ID: 7}, nil)
				m.On("UpdateStatus", mock.Anything, uint(7), model.ApplicationStatusShortlisted, "Strong SQL").Return(nil)
			},
		},
		{
			name:         "rejected without description",
			update:       StatusUpdate{Status: model.ApplicationStatusRejected, StatusDescription: "   "},
			setupMock:    func(m *MockApplicationRepository) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "selected without description",
			update:       StatusUpdate{Status: model.ApplicationStatusSelected},
			setupMock:    func(m *MockApplicationRepository) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "unknown status",
			update:       StatusUpdate{Status: "HIRED", StatusDescription: "yes"},
			setupMock:    func(m *MockApplicationRepository) {},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:   "missing application",
			update: StatusUpdate{Status: model.ApplicationStatusUnderReview},
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectError:  true,
			expectedKind: apperrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := new(MockApplicationRepository)
			tt.setupMock(apps)

			service := NewApplicationService(apps, new(MockJobRepository), new(MockNotificationService), discardLogger())
			app, err := service.UpdateStatus(context.Background(), 7, tt.update)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, app)
				apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.update.Status, app.Status)
			}
			apps.AssertExpectations(t)
		})
	}
}

func TestApplicationService_ListDateRange(t *testing.T) {
	apps := new(MockApplicationRepository)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	toBefore := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	apps.On("List", mock.Anything, repository.ApplicationFilter{
		JobID:    3,
		Status:   model.ApplicationStatusApplied,
		From:     &from,
		ToBefore: &toBefore,
	}).Return([]model.Application{{ID: 1}}, nil)

	service := NewApplicationService(apps, new(MockJobRepository), new(MockNotificationService), discardLogger())

	got, err := service.List(context.Background(), ApplicationQuery{
		JobID: "3", Status: "applied", DateFrom: "2024-03-01", DateTo: "2024-03-10",
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = service.List(context.Background(), ApplicationQuery{DateTo: "10/03/2024"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	apps.AssertExpectations(t)
}

func TestApplicationService_DeleteMissing(t *testing.T) {
	apps := new(MockApplicationRepository)
	apps.On("Delete", mock.Anything, uint(99)).Return(false, nil)

	service := NewApplicationService(apps, new(MockJobRepository), new(MockNotificationService), discardLogger())
	err := service.Delete(context.Background(), 99)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
