package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
	"companion_collection/pkg/cadence"

	"github.com/google/uuid"
)

type AdoptionService struct {
	repo     AdoptionRepository
	calendar *cadence.Calendar
	clock    Clock
	rand     Randomizer
	cfg      GameConfig
}

func NewAdoptionService(repo AdoptionRepository, calendar *cadence.Calendar, clock Clock, rand Randomizer, cfg GameConfig) *AdoptionService {
	return &AdoptionService{
		repo:     repo,
		calendar: calendar,
		clock:    clock,
		rand:     rand,
		cfg:      cfg,
	}
}

// GetOffer returns today's candidates, empty when the user has not rolled
// since the last reset.
func (s *AdoptionService) GetOffer(ctx context.Context, userID int64) (*model.Offer, error) {
	state, err := s.repo.GetDailyState(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	now := s.clock.Now()
	today, err := s.calendar.Today(now)
	if err != nil {
		return nil, err
	}

	return s.buildOffer(ctx, state, today, now)
}

// Roll draws today's candidates from the companions the user does not own
// yet. An empty draw does not consume the roll.
func (s *AdoptionService) Roll(ctx context.Context, userID int64) (*model.Offer, error) {
	state, err := s.repo.GetDailyState(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	now := s.clock.Now()
	today, err := s.calendar.Today(now)
	if err != nil {
		return nil, err
	}

	if !cadence.IsActionAvailable(state.LastRollDate, today) {
		return nil, ErrActionUnavailable
	}

	unowned, err := s.repo.ListUnownedCompanionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unowned companions: %w", err)
	}
	if len(unowned) == 0 {
		return nil, ErrCollectionComplete
	}

	s.rand.Shuffle(len(unowned), func(i, j int) {
		unowned[i], unowned[j] = unowned[j], unowned[i]
	})
	candidates := unowned
	if s.cfg.CandidatesPerRoll > 0 && len(candidates) > s.cfg.CandidatesPerRoll {
		candidates = candidates[:s.cfg.CandidatesPerRoll]
	}

	err = s.repo.SaveRoll(ctx, userID, candidates, today)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyPerformed) {
			return nil, ErrActionUnavailable
		}
		return nil, fmt.Errorf("failed to save roll: %w", err)
	}

	state.LastRollDate = &today
	state.CandidatesDate = &today
	state.CandidateIDs = candidates

	return s.buildOffer(ctx, state, today, now)
}

// Adopt takes one companion from today's offer into the collection.
func (s *AdoptionService) Adopt(ctx context.Context, userID, companionID int64) (*model.Adoption, error) {
	state, err := s.repo.GetDailyState(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	now := s.clock.Now()
	today, err := s.calendar.Today(now)
	if err != nil {
		return nil, err
	}

	if !cadence.IsActionAvailable(state.LastAdoptDate, today) {
		return nil, ErrActionUnavailable
	}

	if !offeredToday(state, today) || !slices.Contains(state.CandidateIDs, companionID) {
		return nil, ErrNotInOffer
	}

	if s.cfg.MaxCollectionSize > 0 {
		count, err := s.repo.CountAdoptions(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count adoptions: %w", err)
		}
		if count >= s.cfg.MaxCollectionSize {
			return nil, ErrCollectionFull
		}
	}

	companions, err := s.repo.GetCompanionsByIDs(ctx, []int64{companionID})
	if err != nil {
		return nil, fmt.Errorf("failed to get companion: %w", err)
	}
	if len(companions) == 0 {
		return nil, ErrCompanionNotFound
	}

	adoption := &model.Adoption{
		AdoptionID: uuid.New(),
		UserID:     userID,
		Companion:  *companions[0],
		AdoptedAt:  now,
	}

	err = s.repo.CreateAdoption(ctx, adoption, today)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyPerformed), errors.Is(err, repository.ErrDuplicate):
			return nil, ErrActionUnavailable
		default:
			return nil, fmt.Errorf("failed to create adoption: %w", err)
		}
	}

	return adoption, nil
}

func (s *AdoptionService) buildOffer(ctx context.Context, state *model.DailyState, today cadence.Date, now time.Time) (*model.Offer, error) {
	next, err := s.calendar.NextReset(now)
	if err != nil {
		return nil, err
	}

	offer := &model.Offer{
		Candidates: []model.Companion{},
		CanRoll:    cadence.IsActionAvailable(state.LastRollDate, today),
		CanAdopt:   false,
		NextReset:  next,
	}

	if !offeredToday(state, today) {
		return offer, nil
	}

	offer.RolledOn = state.CandidatesDate
	offer.CanAdopt = cadence.IsActionAvailable(state.LastAdoptDate, today)

	companions, err := s.repo.GetCompanionsByIDs(ctx, state.CandidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}
	for _, c := range companions {
		offer.Candidates = append(offer.Candidates, *c)
	}

	return offer, nil
}

func offeredToday(state *model.DailyState, today cadence.Date) bool {
	return state.CandidatesDate != nil && state.CandidatesDate.Equal(today) && len(state.CandidateIDs) > 0
}
