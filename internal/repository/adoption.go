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

type adoptionWithCompanion struct {
	AdoptionID  uuid.UUID `db:"adoption_id"`
	UserID      int64     `db:"user_id"`
	Bond        int64     `db:"bond"`
	AdoptedAt   time.Time `db:"adopted_at"`
	CompanionID int64     `db:"companion_id"`
	Name        string    `db:"name"`
	Species     string    `db:"species"`
	Rarity      string    `db:"rarity"`
	Description string    `db:"description"`
}

func (a *adoptionWithCompanion) toModel() *model.Adoption {
	return &model.Adoption{
		AdoptionID: a.AdoptionID,
		UserID:     a.UserID,
		Bond:       a.Bond,
		AdoptedAt:  a.AdoptedAt,
		Companion: model.Companion{
			CompanionID: a.CompanionID,
			Name:        a.Name,
			Species:     a.Species,
			Rarity:      model.Rarity(a.Rarity),
			Description: a.Description,
		},
	}
}

func (r *Repository) adoptionsQuery() squirrel.SelectBuilder {
	return r.sb.
		Select(
			"a.adoption_id",
			"a.user_id",
			"a.bond",
			"a.adopted_at",
			"c.companion_id",
			"c.name",
			"c.species",
			"c.rarity",
			"c.description",
		).
		From("adoptions a").
		Join("companions c ON c.companion_id = a.companion_id")
}

func (r *Repository) ListAdoptions(ctx context.Context, userID int64) ([]*model.Adoption, error) {
	query, args, err := r.adoptionsQuery().
		Where(squirrel.Eq{"a.user_id": userID}).
		OrderBy("a.adopted_at", "c.companion_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []adoptionWithCompanion
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list adoptions: %w", err)
	}

	out := make([]*model.Adoption, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}

	return out, nil
}

func (r *Repository) GetAdoption(ctx context.Context, adoptionID uuid.UUID) (*model.Adoption, error) {
	return r.getAdoption(ctx, r.db, adoptionID)
}

func (r *Repository) getAdoption(ctx context.Context, q sqlx.QueryerContext, adoptionID uuid.UUID) (*model.Adoption, error) {
	query, args, err := r.adoptionsQuery().
		Where(squirrel.Eq{"a.adoption_id": adoptionID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row adoptionWithCompanion
	err = sqlx.GetContext(ctx, q, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel(), nil
}

func (r *Repository) CountAdoptions(ctx context.Context, userID int64) (int, error) {
	query, args, err := r.sb.
		Select("COUNT(*)").
		From("adoptions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}

	return count, nil
}

// CreateAdoption stores a new adoption and marks today's adopt action. The
// adoption becomes the user's partner when none is set yet.
func (r *Repository) CreateAdoption(ctx context.Context, adoption *model.Adoption, today cadence.Date) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.markPerformed(ctx, tx, adoption.UserID, "last_adopt_date", today, nil); err != nil {
			return err
		}

		query, args, err := r.sb.
			Insert("adoptions").
			SetMap(map[string]interface{}{
				"adoption_id":  adoption.AdoptionID,
				"user_id":      adoption.UserID,
				"companion_id": adoption.Companion.CompanionID,
				"bond":         adoption.Bond,
				"adopted_at":   adoption.AdoptedAt.UTC(),
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build adoption insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to insert adoption: %w", err)
		}

		partnerQuery, partnerArgs, err := r.sb.
			Update("users").
			Set("partner_id", adoption.AdoptionID).
			Where(squirrel.Eq{"user_id": adoption.UserID, "partner_id": nil}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build partner update query: %w", err)
		}

		result, err := tx.ExecContext(ctx, partnerQuery, partnerArgs...)
		if err != nil {
			return fmt.Errorf("failed to set partner: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		adoption.IsPartner = rows > 0

		return nil
	})
}

// Interact adds bond to the adoption and marks today's interact action.
func (r *Repository) Interact(ctx context.Context, userID int64, adoptionID uuid.UUID, bond int64, today cadence.Date) (*model.Adoption, error) {
	var adoption *model.Adoption

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.markPerformed(ctx, tx, userID, "last_interact_date", today, nil); err != nil {
			return err
		}

		query, args, err := r.sb.
			Update("adoptions").
			Set("bond", squirrel.Expr("bond + ?", bond)).
			Where(squirrel.Eq{"adoption_id": adoptionID, "user_id": userID}).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if err := expectAffected(result); err != nil {
			return err
		}

		adoption, err = r.getAdoption(ctx, tx, adoptionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return adoption, nil
}

func (r *Repository) TotalBond(ctx context.Context, userID int64) (int64, error) {
	query, args, err := r.sb.
		Select("COALESCE(SUM(bond), 0)").
		From("adoptions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}

	return total, nil
}
