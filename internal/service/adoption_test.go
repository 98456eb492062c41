package service

import (
	"context"
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

func companions(ids ...int64) []*model.Companion {
	out := make([]*model.Companion, len(ids))
	for i, id := range ids {
		out[i] = &model.Companion{CompanionID: id, Name: "c", Rarity: model.RarityCommon}
	}
	return out
}

func TestAdoptionService_Roll(t *testing.T) {
	before := cadence.NewDate(2024, time.March, 9)
	after := cadence.NewDate(2024, time.March, 10)

	tests := []struct {
		name          string
		lastRoll      *cadence.Date
		advance       time.Duration
		setupMocks    func(mockRepo *mocks.MockRepository)
		expectedError error
		checkOffer    func(t *testing.T, offer *model.Offer)
	}{
		{
			name:          "Already rolled before the reset",
			lastRoll:      datePtr(before),
			expectedError: ErrActionUnavailable,
		},
		{
			name:     "Available again at the reset",
			lastRoll: datePtr(before),
			advance:  time.Second,
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("ListUnownedCompanionIDs", mock.Anything, int64(1)).
					Return([]int64{2, 4, 6, 8, 10}, nil)
				mockRepo.On("SaveRoll", mock.Anything, int64(1), []int64{2, 4, 6}, after).
					Return(nil)
				mockRepo.On("GetCompanionsByIDs", mock.Anything, []int64{2, 4, 6}).
					Return(companions(2, 4, 6), nil)
			},
			checkOffer: func(t *testing.T, offer *model.Offer) {
				assert.Len(t, offer.Candidates, 3)
				assert.False(t, offer.CanRoll)
				assert.True(t, offer.CanAdopt)
				require.NotNil(t, offer.RolledOn)
				assert.Equal(t, after, *offer.RolledOn)
				assert.Equal(t, time.Date(2024, time.March, 11, 18, 0, 0, 0, time.UTC), offer.NextReset)
			},
		},
		{
			name: "Never rolled, fewer unowned than candidates",
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("ListUnownedCompanionIDs", mock.Anything, int64(1)).
					Return([]int64{7}, nil)
				mockRepo.On("SaveRoll", mock.Anything, int64(1), []int64{7}, before).
					Return(nil)
				mockRepo.On("GetCompanionsByIDs", mock.Anything, []int64{7}).
					Return(companions(7), nil)
			},
			checkOffer: func(t *testing.T, offer *model.Offer) {
				assert.Len(t, offer.Candidates, 1)
			},
		},
		{
			name: "Collection complete does not consume the roll",
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("ListUnownedCompanionIDs", mock.Anything, int64(1)).
					Return([]int64{}, nil)
			},
			expectedError: ErrCollectionComplete,
		},
		{
			name: "Concurrent roll wins the race",
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("ListUnownedCompanionIDs", mock.Anything, int64(1)).
					Return([]int64{1}, nil)
				mockRepo.On("SaveRoll", mock.Anything, int64(1), []int64{1}, before).
					Return(repository.ErrAlreadyPerformed)
			},
			expectedError: ErrActionUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockRepository{}
			clock := clockAt(2024, time.March, 10)
			clock.Advance(tt.advance)
			service := NewAdoptionService(mockRepo, newCalendar(t), clock, &mocks.Rand{}, testConfig)

			mockRepo.On("GetDailyState", mock.Anything, int64(1)).
				Return(&model.DailyState{UserID: 1, LastRollDate: tt.lastRoll}, nil)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			offer, err := service.Roll(context.Background(), 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, offer)
				mockRepo.AssertExpectations(t)
				return
			}

			require.NoError(t, err)
			tt.checkOffer(t, offer)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdoptionService_GetOffer(t *testing.T) {
	today := cadence.NewDate(2024, time.March, 9)
	yesterday := today.AddDays(-1)

	t.Run("Stale candidates are not offered", func(t *testing.T) {
		mockRepo := &mocks.MockRepository{}
		service := NewAdoptionService(mockRepo, newCalendar(t), clockAt(2024, time.March, 10), &mocks.Rand{}, testConfig)

		mockRepo.On("GetDailyState", mock.Anything, int64(1)).
			Return(&model.DailyState{
				UserID:         1,
				LastRollDate:   &yesterday,
				CandidateIDs:   []int64{1, 2},
				CandidatesDate: &yesterday,
			}, nil)

		offer, err := service.GetOffer(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, offer.Candidates)
		assert.Nil(t, offer.RolledOn)
		assert.True(t, offer.CanRoll)
		assert.False(t, offer.CanAdopt)
		mockRepo.AssertNotCalled(t, "GetCompanionsByIDs", mock.Anything, mock.Anything)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := &mocks.MockRepository{}
		service := NewAdoptionService(mockRepo, newCalendar(t), clockAt(2024, time.March, 10), &mocks.Rand{}, testConfig)

		mockRepo.On("GetDailyState", mock.Anything, int64(2)).
			Return(nil, repository.ErrNotFound)

		_, err := service.GetOffer(context.Background(), 2)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAdoptionService_Adopt(t *testing.T) {
	today := cadence.NewDate(2024, time.March, 9)
	yesterday := today.AddDays(-1)

	offered := func() *model.DailyState {
		return &model.DailyState{
			UserID:         1,
			LastRollDate:   &today,
			CandidateIDs:   []int64{3, 5},
			CandidatesDate: &today,
		}
	}

	tests := []struct {
		name          string
		companionID   int64
		state         func() *model.DailyState
		setupMocks    func(mockRepo *mocks.MockRepository)
		expectedError error
	}{
		{
			name:        "Successful adoption",
			companionID: 5,
			state:       offered,
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("CountAdoptions", mock.Anything, int64(1)).Return(2, nil)
				mockRepo.On("GetCompanionsByIDs", mock.Anything, []int64{5}).Return(companions(5), nil)
				mockRepo.On("CreateAdoption", mock.Anything, mock.MatchedBy(func(a *model.Adoption) bool {
					return a.UserID == 1 && a.Companion.CompanionID == 5
				}), today).Return(nil)
			},
		},
		{
			name:        "Already adopted today",
			companionID: 5,
			state: func() *model.DailyState {
				s := offered()
				s.LastAdoptDate = &today
				return s
			},
			expectedError: ErrActionUnavailable,
		},
		{
			name:        "Adopted yesterday is fine",
			companionID: 3,
			state: func() *model.DailyState {
				s := offered()
				s.LastAdoptDate = &yesterday
				return s
			},
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("CountAdoptions", mock.Anything, int64(1)).Return(0, nil)
				mockRepo.On("GetCompanionsByIDs", mock.Anything, []int64{3}).Return(companions(3), nil)
				mockRepo.On("CreateAdoption", mock.Anything, mock.Anything, today).Return(nil)
			},
		},
		{
			name:          "Companion not in offer",
			companionID:   4,
			state:         offered,
			expectedError: ErrNotInOffer,
		},
		{
			name:        "Offer from a previous day",
			companionID: 3,
			state: func() *model.DailyState {
				s := offered()
				s.CandidatesDate = &yesterday
				return s
			},
			expectedError: ErrNotInOffer,
		},
		{
			name:        "Collection full",
			companionID: 3,
			state:       offered,
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("CountAdoptions", mock.Anything, int64(1)).Return(testConfig.MaxCollectionSize, nil)
			},
			expectedError: ErrCollectionFull,
		},
		{
			name:        "Concurrent adoption wins the race",
			companionID: 3,
			state:       offered,
			setupMocks: func(mockRepo *mocks.MockRepository) {
				mockRepo.On("CountAdoptions", mock.Anything, int64(1)).Return(0, nil)
				mockRepo.On("GetCompanionsByIDs", mock.Anything, []int64{3}).Return(companions(3), nil)
				mockRepo.On("CreateAdoption", mock.Anything, mock.Anything, today).Return(repository.ErrAlreadyPerformed)
			},
			expectedError: ErrActionUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockRepository{}
			service := NewAdoptionService(mockRepo, newCalendar(t), clockAt(2024, time.March, 10), &mocks.Rand{}, testConfig)

			mockRepo.On("GetDailyState", mock.Anything, int64(1)).Return(tt.state(), nil)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			adoption, err := service.Adopt(context.Background(), 1, tt.companionID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, adoption)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.companionID, adoption.Companion.CompanionID)
				assert.NotEqual(t, uuid.Nil, adoption.AdoptionID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
