package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"companion_collection/internal/model"
	"companion_collection/internal/repository"
	"companion_collection/pkg/cadence"
)

const maxDisplayNameLength = 32

type UserService struct {
	repo     UserRepository
	calendar *cadence.Calendar
	clock    Clock
	avatars  AvatarSource
}

func NewUserService(repo UserRepository, calendar *cadence.Calendar, clock Clock, avatars AvatarSource) *UserService {
	return &UserService{
		repo:     repo,
		calendar: calendar,
		clock:    clock,
		avatars:  avatars,
	}
}

func (s *UserService) RegisterUser(ctx context.Context, user *model.User) error {
	name, err := normalizeDisplayName(user.DisplayName)
	if err != nil {
		name, err = normalizeDisplayName(user.Username)
		if err != nil {
			return err
		}
	}
	user.DisplayName = name

	now := s.clock.Now()
	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = now
	}
	if user.AuthDate.IsZero() {
		user.AuthDate = now
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

func (s *UserService) TouchAuthDate(ctx context.Context, userID int64, authDate time.Time) error {
	if err := s.repo.UpdateAuthDate(ctx, userID, authDate); err != nil {
		return mapUserErr(err)
	}
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	state, err := s.repo.GetDailyState(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	today, err := s.calendar.Today(s.clock.Now())
	if err != nil {
		return nil, err
	}

	size, err := s.repo.CountAdoptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count adoptions: %w", err)
	}

	total, err := s.repo.TotalBond(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum bond: %w", err)
	}

	profile := &model.Profile{
		User:           user,
		CollectionSize: size,
		TotalBond:      total,
		CanRename:      cadence.IsActionAvailable(state.LastRenameDate, today),
	}

	if user.PartnerID != nil {
		partner, err := s.repo.GetAdoption(ctx, *user.PartnerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get partner: %w", err)
		}
		if partner != nil {
			partner.IsPartner = true
			partner.DaysTogether, err = s.calendar.DaysSince(today, partner.AdoptedAt)
			if err != nil {
				return nil, err
			}
			profile.Partner = partner
		}
	}

	return profile, nil
}

// Rename changes the display name, at most once per server day.
func (s *UserService) Rename(ctx context.Context, userID int64, displayName string) error {
	name, err := normalizeDisplayName(displayName)
	if err != nil {
		return err
	}

	state, err := s.repo.GetDailyState(ctx, userID)
	if err != nil {
		return mapUserErr(err)
	}

	today, err := s.calendar.Today(s.clock.Now())
	if err != nil {
		return err
	}

	if !cadence.IsActionAvailable(state.LastRenameDate, today) {
		return ErrActionUnavailable
	}

	err = s.repo.RenameUser(ctx, userID, name, today)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyPerformed):
			return ErrActionUnavailable
		case errors.Is(err, repository.ErrNotFound):
			return ErrUserNotFound
		default:
			return fmt.Errorf("failed to rename user: %w", err)
		}
	}

	return nil
}

func (s *UserService) GetAvatar(ctx context.Context, userID int64) (string, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return "", mapUserErr(err)
	}
	if s.avatars == nil {
		return "", ErrNoAvatar
	}

	path, err := s.avatars.AvatarFilePath(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get avatar: %w", err)
	}
	if path == "" {
		return "", ErrNoAvatar
	}

	return path, nil
}

func normalizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 || n > maxDisplayNameLength {
		return "", ErrInvalidDisplayName
	}
	return name, nil
}
