package service

import (
	"context"
	"errors"
	"fmt"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
	"companion_collection/pkg/ranking"
)

type LeaderboardService struct {
	repo LeaderboardRepository
	cfg  GameConfig
}

func NewLeaderboardService(repo LeaderboardRepository, cfg GameConfig) *LeaderboardService {
	return &LeaderboardService{
		repo: repo,
		cfg:  cfg,
	}
}

// TotalBond ranks every user by the bond summed over their collection.
func (s *LeaderboardService) TotalBond(ctx context.Context, page, size int) (*model.LeaderboardPage, error) {
	return s.rank(ctx, repository.LeaderboardScope{}, page, size)
}

// CompanionBond ranks the owners of one companion by their bond with it.
func (s *LeaderboardService) CompanionBond(ctx context.Context, companionID int64, page, size int) (*model.LeaderboardPage, error) {
	if _, err := s.repo.GetCompanion(ctx, companionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanionNotFound
		}
		return nil, fmt.Errorf("failed to get companion: %w", err)
	}

	return s.rank(ctx, repository.LeaderboardScope{CompanionID: &companionID}, page, size)
}

// Friends ranks the user and their friends by total bond.
func (s *LeaderboardService) Friends(ctx context.Context, userID int64, page, size int) (*model.LeaderboardPage, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, mapUserErr(err)
	}

	friendIDs, err := s.repo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}

	return s.rank(ctx, repository.LeaderboardScope{UserIDs: append([]int64{userID}, friendIDs...)}, page, size)
}

func (s *LeaderboardService) rank(ctx context.Context, scope repository.LeaderboardScope, page, size int) (*model.LeaderboardPage, error) {
	if size == 0 {
		size = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}

	offset, err := ranking.Offset(page, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	entries, err := s.repo.LeaderboardPage(ctx, scope, offset, size)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard page: %w", err)
	}

	out := &model.LeaderboardPage{
		Page:    page,
		Size:    size,
		Entries: make([]model.LeaderboardEntry, 0, len(entries)),
	}
	if len(entries) == 0 {
		return out, nil
	}

	boundary, err := s.repo.LeaderboardBoundary(ctx, scope, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard boundary: %w", err)
	}

	// rows can change between the page and boundary queries
	ranks, err := ranking.Assign(entries, func(e *model.LeaderboardEntry) int64 { return e.Score }, page, size, boundary)
	if err != nil {
		return nil, fmt.Errorf("failed to rank leaderboard page: %w", err)
	}

	for i, e := range entries {
		e.Rank = ranks[i]
		out.Entries = append(out.Entries, *e)
	}

	return out, nil
}
