package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"companion_collection/internal/model"
	"companion_collection/pkg/cadence"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type User struct {
	UserID           int64      `db:"user_id"`
	Username         string     `db:"username"`
	DisplayName      string     `db:"display_name"`
	PartnerID        *uuid.UUID `db:"partner_id"`
	RegistrationDate time.Time  `db:"registration_date"`
	AuthDate         time.Time  `db:"last_auth_date"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		UserID:           u.UserID,
		Username:         u.Username,
		DisplayName:      u.DisplayName,
		PartnerID:        u.PartnerID,
		RegistrationDate: u.RegistrationDate,
		AuthDate:         u.AuthDate,
	}
}

var userColumns = []string{
	"user_id",
	"username",
	"display_name",
	"partner_id",
	"registration_date",
	"last_auth_date",
}

// CreateUser inserts the user together with its empty daily state.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := r.sb.
			Insert("users").
			SetMap(map[string]interface{}{
				"user_id":           user.UserID,
				"username":          user.Username,
				"display_name":      user.DisplayName,
				"registration_date": user.RegistrationDate.UTC(),
				"last_auth_date":    user.AuthDate.UTC(),
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build user insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		stateQuery, stateArgs, err := r.sb.
			Insert("daily_states").
			Columns("user_id").
			Values(user.UserID).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build daily state insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, stateQuery, stateArgs...)
		if err != nil {
			return fmt.Errorf("failed to insert daily state: %w", err)
		}

		return nil
	})
}

func (r *Repository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.getUser(ctx, r.db, userID)
}

func (r *Repository) getUser(ctx context.Context, q sqlx.QueryerContext, userID int64) (*model.User, error) {
	var user User
	query, args, err := r.sb.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = sqlx.GetContext(ctx, q, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

func (r *Repository) UpdateAuthDate(ctx context.Context, userID int64, authDate time.Time) error {
	query, args, err := r.sb.
		Update("users").
		Set("last_auth_date", authDate.UTC()).
		Where(squirrel.Eq{"user_id": userID}).
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

// RenameUser changes the display name and marks the daily rename action in
// one transaction.
func (r *Repository) RenameUser(ctx context.Context, userID int64, displayName string, today cadence.Date) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.markPerformed(ctx, tx, userID, "last_rename_date", today, nil); err != nil {
			return err
		}

		query, args, err := r.sb.
			Update("users").
			Set("display_name", displayName).
			Where(squirrel.Eq{"user_id": userID}).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		return expectAffected(result)
	})
}

func (r *Repository) SetPartner(ctx context.Context, userID int64, adoptionID uuid.UUID) error {
	query, args, err := r.sb.
		Update("users").
		Set("partner_id", adoptionID).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Expr("EXISTS (SELECT 1 FROM adoptions WHERE adoption_id = ? AND user_id = ?)", adoptionID, userID)).
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

func expectAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
