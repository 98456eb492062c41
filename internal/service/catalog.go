package service

import (
	"context"
	"errors"
	"fmt"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
)

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (s *CatalogService) ListCompanions(ctx context.Context) ([]*model.Companion, error) {
	companions, err := s.repo.ListCompanions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companions: %w", err)
	}
	return companions, nil
}

func (s *CatalogService) GetCompanion(ctx context.Context, companionID int64) (*model.Companion, error) {
	companion, err := s.repo.GetCompanion(ctx, companionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanionNotFound
		}
		return nil, fmt.Errorf("failed to get companion: %w", err)
	}
	return companion, nil
}
