package mocks

import (
	"context"
	"time"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
	"companion_collection/pkg/cadence"
	"companion_collection/pkg/ranking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository satisfies every repository interface of the service
// package.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockRepository) UpdateAuthDate(ctx context.Context, userID int64, authDate time.Time) error {
	args := m.Called(ctx, userID, authDate)
	return args.Error(0)
}

func (m *MockRepository) RenameUser(ctx context.Context, userID int64, displayName string, today cadence.Date) error {
	args := m.Called(ctx, userID, displayName, today)
	return args.Error(0)
}

func (m *MockRepository) GetDailyState(ctx context.Context, userID int64) (*model.DailyState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyState), args.Error(1)
}

func (m *MockRepository) SaveRoll(ctx context.Context, userID int64, candidateIDs []int64, today cadence.Date) error {
	args := m.Called(ctx, userID, candidateIDs, today)
	return args.Error(0)
}

func (m *MockRepository) ListCompanions(ctx context.Context) ([]*model.Companion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Companion), args.Error(1)
}

func (m *MockRepository) GetCompanion(ctx context.Context, companionID int64) (*model.Companion, error) {
	args := m.Called(ctx, companionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Companion), args.Error(1)
}

func (m *MockRepository) GetCompanionsByIDs(ctx context.Context, ids []int64) ([]*model.Companion, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Companion), args.Error(1)
}

func (m *MockRepository) ListUnownedCompanionIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRepository) ListAdoptions(ctx context.Context, userID int64) ([]*model.Adoption, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Adoption), args.Error(1)
}

func (m *MockRepository) GetAdoption(ctx context.Context, adoptionID uuid.UUID) (*model.Adoption, error) {
	args := m.Called(ctx, adoptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Adoption), args.Error(1)
}

func (m *MockRepository) CountAdoptions(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CreateAdoption(ctx context.Context, adoption *model.Adoption, today cadence.Date) error {
	args := m.Called(ctx, adoption, today)
	return args.Error(0)
}

func (m *MockRepository) SetPartner(ctx context.Context, userID int64, adoptionID uuid.UUID) error {
	args := m.Called(ctx, userID, adoptionID)
	return args.Error(0)
}

func (m *MockRepository) Interact(ctx context.Context, userID int64, adoptionID uuid.UUID, bond int64, today cadence.Date) (*model.Adoption, error) {
	args := m.Called(ctx, userID, adoptionID, bond, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Adoption), args.Error(1)
}

func (m *MockRepository) TotalBond(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) AddFriend(ctx context.Context, userID, friendID int64, at time.Time) error {
	args := m.Called(ctx, userID, friendID, at)
	return args.Error(0)
}

func (m *MockRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func (m *MockRepository) ListFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRepository) ListFriends(ctx context.Context, userID int64) ([]*model.Friend, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Friend), args.Error(1)
}

func (m *MockRepository) LeaderboardPage(ctx context.Context, scope repository.LeaderboardScope, offset, limit int) ([]*model.LeaderboardEntry, error) {
	args := m.Called(ctx, scope, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Error(1)
}

func (m *MockRepository) LeaderboardBoundary(ctx context.Context, scope repository.LeaderboardScope, offset int) (ranking.Boundary, error) {
	args := m.Called(ctx, scope, offset)
	return args.Get(0).(ranking.Boundary), args.Error(1)
}
