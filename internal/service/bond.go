package service

import (
	"context"
	"errors"
	"fmt"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
	"companion_collection/pkg/cadence"

	"github.com/google/uuid"
)

type dialogueTier struct {
	minBond int64
	lines   []string
}

// ordered from the highest threshold down
var dialogueTiers = []dialogueTier{
	{minBond: 30, lines: []string{
		"%s curls up next to you like it has always belonged there.",
		"%s greets you before you even open the door.",
		"%s would follow you anywhere.",
	}},
	{minBond: 10, lines: []string{
		"%s bounces over, happy to see you.",
		"%s nudges your hand for attention.",
		"%s shows you something it found today.",
	}},
	{minBond: 0, lines: []string{
		"%s watches you carefully from a distance.",
		"%s takes a small step closer.",
		"%s accepts the treat, then hides.",
	}},
}

type BondService struct {
	repo     BondRepository
	calendar *cadence.Calendar
	clock    Clock
	rand     Randomizer
	cfg      GameConfig
}

func NewBondService(repo BondRepository, calendar *cadence.Calendar, clock Clock, rand Randomizer, cfg GameConfig) *BondService {
	return &BondService{
		repo:     repo,
		calendar: calendar,
		clock:    clock,
		rand:     rand,
		cfg:      cfg,
	}
}

func (s *BondService) ListCollection(ctx context.Context, userID int64) ([]*model.Adoption, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	adoptions, err := s.repo.ListAdoptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}

	today, err := s.calendar.Today(s.clock.Now())
	if err != nil {
		return nil, err
	}

	for _, a := range adoptions {
		if err := s.decorate(a, user, today); err != nil {
			return nil, err
		}
	}

	return adoptions, nil
}

func (s *BondService) GetPartner(ctx context.Context, userID int64) (*model.PartnerStatus, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	state, err := s.repo.GetDailyState(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	now := s.clock.Now()
	today, err := s.calendar.Today(now)
	if err != nil {
		return nil, err
	}

	next, err := s.calendar.NextReset(now)
	if err != nil {
		return nil, err
	}

	status := &model.PartnerStatus{NextReset: next}
	if user.PartnerID == nil {
		return status, nil
	}

	partner, err := s.repo.GetAdoption(ctx, *user.PartnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return status, nil
		}
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	if err := s.decorate(partner, user, today); err != nil {
		return nil, err
	}
	status.Partner = partner
	status.CanInteract = cadence.IsActionAvailable(state.LastInteractDate, today)

	return status, nil
}

func (s *BondService) SetPartner(ctx context.Context, userID int64, adoptionID uuid.UUID) (*model.Adoption, error) {
	adoption, err := s.repo.GetAdoption(ctx, adoptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdoptionNotFound
		}
		return nil, fmt.Errorf("failed to get adoption: %w", err)
	}
	if adoption.UserID != userID {
		return nil, ErrAdoptionNotFound
	}

	err = s.repo.SetPartner(ctx, userID, adoptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdoptionNotFound
		}
		return nil, fmt.Errorf("failed to set partner: %w", err)
	}

	today, err := s.calendar.Today(s.clock.Now())
	if err != nil {
		return nil, err
	}

	adoption.IsPartner = true
	adoption.DaysTogether, err = s.calendar.DaysSince(today, adoption.AdoptedAt)
	if err != nil {
		return nil, err
	}

	return adoption, nil
}

// Interact spends today's interaction on the partner and returns what it
// had to say.
func (s *BondService) Interact(ctx context.Context, userID int64) (*model.Interaction, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	if user.PartnerID == nil {
		return nil, ErrNoPartner
	}

	state, err := s.repo.GetDailyState(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	today, err := s.calendar.Today(s.clock.Now())
	if err != nil {
		return nil, err
	}

	if !cadence.IsActionAvailable(state.LastInteractDate, today) {
		return nil, ErrActionUnavailable
	}

	partner, err := s.repo.Interact(ctx, userID, *user.PartnerID, s.cfg.BondPerInteraction, today)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyPerformed):
			return nil, ErrActionUnavailable
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNoPartner
		default:
			return nil, fmt.Errorf("failed to interact: %w", err)
		}
	}

	if err := s.decorate(partner, user, today); err != nil {
		return nil, err
	}

	return &model.Interaction{
		Partner:  partner,
		Dialogue: s.dialogue(partner),
	}, nil
}

func (s *BondService) decorate(a *model.Adoption, user *model.User, today cadence.Date) error {
	days, err := s.calendar.DaysSince(today, a.AdoptedAt)
	if err != nil {
		return err
	}
	a.DaysTogether = days
	a.IsPartner = user.PartnerID != nil && *user.PartnerID == a.AdoptionID
	return nil
}

func (s *BondService) dialogue(a *model.Adoption) string {
	for _, tier := range dialogueTiers {
		if a.Bond >= tier.minBond {
			return fmt.Sprintf(tier.lines[s.rand.IntN(len(tier.lines))], a.Companion.Name)
		}
	}
	return ""
}
