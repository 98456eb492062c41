package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
	"companion_collection/internal/service/mocks"
	"companion_collection/pkg/cadence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterUser(t *testing.T) {
	tests := []struct {
		name          string
		user          *model.User
		repoErr       error
		expectedName  string
		expectedError error
	}{
		{
			name:         "Display name trimmed",
			user:         &model.User{UserID: 1, Username: "ann", DisplayName: "  Ann  "},
			expectedName: "Ann",
		},
		{
			name:         "Falls back to username",
			user:         &model.User{UserID: 1, Username: "ann"},
			expectedName: "ann",
		},
		{
			name:          "No usable name",
			user:          &model.User{UserID: 1},
			expectedError: ErrInvalidDisplayName,
		},
		{
			name:          "Already registered",
			user:          &model.User{UserID: 1, DisplayName: "Ann"},
			repoErr:       repository.ErrDuplicate,
			expectedName:  "Ann",
			expectedError: ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockRepository{}
			clock := clockAt(2024, time.March, 10)
			service := NewUserService(mockRepo, newCalendar(t), clock, nil)

			if tt.expectedName != "" {
				mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.DisplayName == tt.expectedName && u.RegistrationDate.Equal(clock.T)
				})).Return(tt.repoErr)
			}

			err := service.RegisterUser(context.Background(), tt.user)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Rename(t *testing.T) {
	today := cadence.NewDate(2024, time.March, 9)
	yesterday := today.AddDays(-1)

	tests := []struct {
		name          string
		displayName   string
		lastRename    *cadence.Date
		repoErr       error
		expectedError error
	}{
		{name: "First rename", displayName: "Nova"},
		{name: "Renamed yesterday", displayName: "Nova", lastRename: &yesterday},
		{name: "Renamed today", displayName: "Nova", lastRename: &today, expectedError: ErrActionUnavailable},
		{name: "Blank name", displayName: "   ", expectedError: ErrInvalidDisplayName},
		{name: "Name too long", displayName: strings.Repeat("ж", maxDisplayNameLength+1), expectedError: ErrInvalidDisplayName},
		{name: "Concurrent rename", displayName: "Nova", repoErr: repository.ErrAlreadyPerformed, expectedError: ErrActionUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockRepository{}
			service := NewUserService(mockRepo, newCalendar(t), clockAt(2024, time.March, 10), nil)

			mockRepo.On("GetDailyState", mock.Anything, int64(1)).
				Return(&model.DailyState{UserID: 1, LastRenameDate: tt.lastRename}, nil).Maybe()
			mockRepo.On("RenameUser", mock.Anything, int64(1), "Nova", today).Return(tt.repoErr).Maybe()

			err := service.Rename(context.Background(), 1, tt.displayName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				if tt.repoErr == nil {
					mockRepo.AssertNotCalled(t, "RenameUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				}
				return
			}
			assert.NoError(t, err)
			mockRepo.AssertCalled(t, "RenameUser", mock.Anything, int64(1), "Nova", today)
		})
	}
}

func TestUserService_GetProfile(t *testing.T) {
	mockRepo := &mocks.MockRepository{}
	service := NewUserService(mockRepo, newCalendar(t), clockAt(2024, time.March, 10), nil)

	partnerID := uuid.New()
	today := cadence.NewDate(2024, time.March, 9)

	mockRepo.On("GetUserByID", mock.Anything, int64(1)).
		Return(&model.User{UserID: 1, DisplayName: "Ann", PartnerID: &partnerID}, nil)
	mockRepo.On("GetDailyState", mock.Anything, int64(1)).
		Return(&model.DailyState{UserID: 1, LastRenameDate: &today}, nil)
	mockRepo.On("CountAdoptions", mock.Anything, int64(1)).Return(2, nil)
	mockRepo.On("TotalBond", mock.Anything, int64(1)).Return(int64(17), nil)
	mockRepo.On("GetAdoption", mock.Anything, partnerID).
		Return(&model.Adoption{
			AdoptionID: partnerID,
			UserID:     1,
			AdoptedAt:  time.Date(2024, time.March, 7, 18, 0, 0, 0, time.UTC),
		}, nil)

	profile, err := service.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.CollectionSize)
	assert.Equal(t, int64(17), profile.TotalBond)
	assert.False(t, profile.CanRename)
	require.NotNil(t, profile.Partner)
	assert.True(t, profile.Partner.IsPartner)
	assert.Equal(t, 2, profile.Partner.DaysTogether)
	mockRepo.AssertExpectations(t)
}

type stubAvatars map[int64]string

func (s stubAvatars) AvatarFilePath(ctx context.Context, userID int64) (string, error) {
	return s[userID], nil
}

func TestUserService_GetAvatar(t *testing.T) {
	mockRepo := &mocks.MockRepository{}
	service := NewUserService(mockRepo, newCalendar(t), clockAt(2024, time.March, 10), stubAvatars{1: "photos/file_1.jpg"})

	mockRepo.On("GetUserByID", mock.Anything, int64(1)).Return(&model.User{UserID: 1}, nil)
	mockRepo.On("GetUserByID", mock.Anything, int64(2)).Return(&model.User{UserID: 2}, nil)
	mockRepo.On("GetUserByID", mock.Anything, int64(3)).Return(nil, repository.ErrNotFound)

	path, err := service.GetAvatar(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "photos/file_1.jpg", path)

	_, err = service.GetAvatar(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNoAvatar)

	_, err = service.GetAvatar(context.Background(), 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFriendService_AddFriend(t *testing.T) {
	tests := []struct {
		name          string
		friendID      int64
		setupMocks    func(mockRepo *mocks.MockRepository, at time.Time)
		expectedError error
	}{
		{
			name:          "Self",
			friendID:      1,
			expectedError: ErrSelfFriend,
		},
		{
			name:     "Unknown friend",
			friendID: 2,
			setupMocks: func(mockRepo *mocks.MockRepository, at time.Time) {
				mockRepo.On("GetUserByID", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:     "Added",
			friendID: 2,
			setupMocks: func(mockRepo *mocks.MockRepository, at time.Time) {
				mockRepo.On("GetUserByID", mock.Anything, int64(2)).Return(&model.User{UserID: 2}, nil)
				mockRepo.On("AddFriend", mock.Anything, int64(1), int64(2), at).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockRepository{}
			clock := clockAt(2024, time.March, 10)
			service := NewFriendService(mockRepo, clock)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo, clock.T)
			}

			err := service.AddFriend(context.Background(), 1, tt.friendID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFriendService_RemoveFriend(t *testing.T) {
	mockRepo := &mocks.MockRepository{}
	service := NewFriendService(mockRepo, clockAt(2024, time.March, 10))

	mockRepo.On("RemoveFriend", mock.Anything, int64(1), int64(3)).Return(repository.ErrNotFound)

	err := service.RemoveFriend(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
