package repository

import (
	"context"
	"fmt"
	"time"

	"companion_collection/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// AddFriend stores the friendship in both directions. Existing rows are
// left untouched.
func (r *Repository) AddFriend(ctx context.Context, userID, friendID int64, at time.Time) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, pair := range [][2]int64{{userID, friendID}, {friendID, userID}} {
			query, args, err := r.sb.
				Insert("friendships").
				Columns("user_id", "friend_id", "created_at").
				Values(pair[0], pair[1], at.UTC()).
				Suffix("ON CONFLICT (user_id, friend_id) DO NOTHING").
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build friendship insert query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to insert friendship: %w", err)
			}
		}
		return nil
	})
}

func (r *Repository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	query, args, err := r.sb.
		Delete("friendships").
		Where(squirrel.Or{
			squirrel.Eq{"user_id": userID, "friend_id": friendID},
			squirrel.Eq{"user_id": friendID, "friend_id": userID},
		}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *Repository) ListFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	query, args, err := r.sb.
		Select("friend_id").
		From("friendships").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("friend_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, err
	}

	return ids, nil
}

// ListFriends returns the user's friends with their total bond, ordered by
// display name.
func (r *Repository) ListFriends(ctx context.Context, userID int64) ([]*model.Friend, error) {
	query, args, err := r.sb.
		Select("u.user_id", "u.display_name", "COALESCE(SUM(a.bond), 0) AS score").
		From("friendships f").
		Join("users u ON u.user_id = f.friend_id").
		LeftJoin("adoptions a ON a.user_id = u.user_id").
		Where(squirrel.Eq{"f.user_id": userID}).
		GroupBy("u.user_id", "u.display_name").
		OrderBy("u.display_name", "u.user_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []scoredRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	friends := make([]*model.Friend, len(rows))
	for i, row := range rows {
		friends[i] = &model.Friend{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			TotalBond:   row.Score,
		}
	}

	return friends, nil
}
