package service

import (
	"context"
	"errors"
	"fmt"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
)

type FriendService struct {
	repo  FriendRepository
	clock Clock
}

func NewFriendService(repo FriendRepository, clock Clock) *FriendService {
	return &FriendService{
		repo:  repo,
		clock: clock,
	}
}

func (s *FriendService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return ErrSelfFriend
	}

	if _, err := s.repo.GetUserByID(ctx, friendID); err != nil {
		return mapUserErr(err)
	}

	if err := s.repo.AddFriend(ctx, userID, friendID, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}

	return nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	err := s.repo.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]*model.Friend, error) {
	friends, err := s.repo.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}
