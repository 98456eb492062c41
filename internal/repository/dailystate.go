package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"companion_collection/internal/model"
	"companion_collection/pkg/cadence"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
)

type DailyState struct {
	UserID           int64         `db:"user_id"`
	LastRollDate     *cadence.Date `db:"last_roll_date"`
	CandidateIDs     *string       `db:"candidate_ids"`
	CandidatesDate   *cadence.Date `db:"candidates_date"`
	LastAdoptDate    *cadence.Date `db:"last_adopt_date"`
	LastInteractDate *cadence.Date `db:"last_interact_date"`
	LastRenameDate   *cadence.Date `db:"last_rename_date"`
}

func (r *Repository) GetDailyState(ctx context.Context, userID int64) (*model.DailyState, error) {
	query, args, err := r.sb.
		Select(
			"user_id",
			"last_roll_date",
			"candidate_ids",
			"candidates_date",
			"last_adopt_date",
			"last_interact_date",
			"last_rename_date",
		).
		From("daily_states").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var state DailyState
	err = r.db.GetContext(ctx, &state, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var candidates []int64
	if state.CandidateIDs != nil && *state.CandidateIDs != "" {
		if err := json.Unmarshal([]byte(*state.CandidateIDs), &candidates); err != nil {
			return nil, fmt.Errorf("failed to decode candidate ids: %w", err)
		}
	}

	return &model.DailyState{
		UserID:           state.UserID,
		LastRollDate:     state.LastRollDate,
		CandidateIDs:     candidates,
		CandidatesDate:   state.CandidatesDate,
		LastAdoptDate:    state.LastAdoptDate,
		LastInteractDate: state.LastInteractDate,
		LastRenameDate:   state.LastRenameDate,
	}, nil
}

// SaveRoll stores today's candidates and marks the roll action.
func (r *Repository) SaveRoll(ctx context.Context, userID int64, candidateIDs []int64, today cadence.Date) error {
	encoded, err := json.Marshal(candidateIDs)
	if err != nil {
		return fmt.Errorf("failed to encode candidate ids: %w", err)
	}

	return r.markPerformed(ctx, r.db, userID, "last_roll_date", today, map[string]interface{}{
		"candidate_ids":   string(encoded),
		"candidates_date": today,
	})
}
