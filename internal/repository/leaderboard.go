package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"companion_collection/internal/model"
	"companion_collection/pkg/ranking"

	"github.com/Masterminds/squirrel"
)

// LeaderboardScope selects the scored dataset. A nil CompanionID scores
// users by the bond summed over their collection; otherwise by the bond of
// that one companion. A non-nil UserIDs restricts the rows to those users.
type LeaderboardScope struct {
	CompanionID *int64
	UserIDs     []int64
}

type scoredRow struct {
	UserID      int64  `db:"user_id"`
	DisplayName string `db:"display_name"`
	Score       int64  `db:"score"`
}

var leaderboardOrder = []string{"s.score DESC", "s.display_name ASC", "s.user_id ASC"}

func (r *Repository) scored(scope LeaderboardScope) squirrel.SelectBuilder {
	var q squirrel.SelectBuilder
	if scope.CompanionID != nil {
		q = r.sb.
			Select("u.user_id", "u.display_name", "a.bond AS score").
			From("adoptions a").
			Join("users u ON u.user_id = a.user_id").
			Where(squirrel.Eq{"a.companion_id": *scope.CompanionID})
	} else {
		q = r.sb.
			Select("u.user_id", "u.display_name", "COALESCE(SUM(a.bond), 0) AS score").
			From("users u").
			LeftJoin("adoptions a ON a.user_id = u.user_id").
			GroupBy("u.user_id", "u.display_name")
	}

	if scope.UserIDs != nil {
		q = q.Where(squirrel.Eq{"u.user_id": scope.UserIDs})
	}

	return q
}

// LeaderboardPage returns limit rows starting at offset, best score first.
func (r *Repository) LeaderboardPage(ctx context.Context, scope LeaderboardScope, offset, limit int) ([]*model.LeaderboardEntry, error) {
	query, args, err := r.sb.
		Select("s.user_id", "s.display_name", "s.score").
		FromSelect(r.scored(scope), "s").
		OrderBy(leaderboardOrder...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	var rows []scoredRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	entries := make([]*model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = &model.LeaderboardEntry{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Score:       row.Score,
		}
	}

	return entries, nil
}

// LeaderboardBoundary describes the rows before offset: the score of the
// last of them and the number of distinct scores among them.
func (r *Repository) LeaderboardBoundary(ctx context.Context, scope LeaderboardScope, offset int) (ranking.Boundary, error) {
	if offset <= 0 {
		return ranking.Boundary{}, nil
	}

	precedingQuery, precedingArgs, err := r.sb.
		Select("s.score").
		FromSelect(r.scored(scope), "s").
		OrderBy(leaderboardOrder...).
		Limit(1).
		Offset(uint64(offset - 1)).
		ToSql()
	if err != nil {
		return ranking.Boundary{}, fmt.Errorf("failed to build boundary query: %w", err)
	}

	var preceding int64
	err = r.db.GetContext(ctx, &preceding, precedingQuery, precedingArgs...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// offset is past the end, the page will be empty
			return ranking.Boundary{}, nil
		}
		return ranking.Boundary{}, fmt.Errorf("failed to query boundary score: %w", err)
	}

	head := r.sb.
		Select("s.score").
		FromSelect(r.scored(scope), "s").
		OrderBy(leaderboardOrder...).
		Limit(uint64(offset))

	distinctQuery, distinctArgs, err := r.sb.
		Select("COUNT(DISTINCT p.score)").
		FromSelect(head, "p").
		ToSql()
	if err != nil {
		return ranking.Boundary{}, fmt.Errorf("failed to build distinct count query: %w", err)
	}

	var distinct int
	if err := r.db.GetContext(ctx, &distinct, distinctQuery, distinctArgs...); err != nil {
		return ranking.Boundary{}, fmt.Errorf("failed to count distinct scores: %w", err)
	}

	return ranking.Boundary{PrecedingScore: &preceding, DistinctBefore: distinct}, nil
}
