package repository

import (
	"context"
	"database/sql"
	"errors"

	"companion_collection/internal/model"

	"github.com/Masterminds/squirrel"
)

type Companion struct {
	CompanionID int64  `db:"companion_id"`
	Name        string `db:"name"`
	Species     string `db:"species"`
	Rarity      string `db:"rarity"`
	Description string `db:"description"`
}

func (c *Companion) toModel() model.Companion {
	return model.Companion{
		CompanionID: c.CompanionID,
		Name:        c.Name,
		Species:     c.Species,
		Rarity:      model.Rarity(c.Rarity),
		Description: c.Description,
	}
}

func (r *Repository) ListCompanions(ctx context.Context) ([]*model.Companion, error) {
	query, args, err := r.sb.
		Select("companion_id", "name", "species", "rarity", "description").
		From("companions").
		OrderBy("companion_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var companions []Companion
	err = r.db.SelectContext(ctx, &companions, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Companion, len(companions))
	for i := range companions {
		c := companions[i].toModel()
		out[i] = &c
	}

	return out, nil
}

func (r *Repository) GetCompanion(ctx context.Context, companionID int64) (*model.Companion, error) {
	query, args, err := r.sb.
		Select("companion_id", "name", "species", "rarity", "description").
		From("companions").
		Where(squirrel.Eq{"companion_id": companionID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var companion Companion
	err = r.db.GetContext(ctx, &companion, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	c := companion.toModel()
	return &c, nil
}

// GetCompanionsByIDs returns the companions in the order of ids, skipping
// unknown ones.
func (r *Repository) GetCompanionsByIDs(ctx context.Context, ids []int64) ([]*model.Companion, error) {
	if len(ids) == 0 {
		return []*model.Companion{}, nil
	}

	query, args, err := r.sb.
		Select("companion_id", "name", "species", "rarity", "description").
		From("companions").
		Where(squirrel.Eq{"companion_id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var companions []Companion
	err = r.db.SelectContext(ctx, &companions, query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Companion, len(companions))
	for _, c := range companions {
		byID[c.CompanionID] = c
	}

	out := make([]*model.Companion, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		m := c.toModel()
		out = append(out, &m)
	}

	return out, nil
}

// ListUnownedCompanionIDs returns the catalog ids the user has not adopted.
func (r *Repository) ListUnownedCompanionIDs(ctx context.Context, userID int64) ([]int64, error) {
	query, args, err := r.sb.
		Select("c.companion_id").
		From("companions c").
		LeftJoin("adoptions a ON a.companion_id = c.companion_id AND a.user_id = ?", userID).
		Where(squirrel.Eq{"a.adoption_id": nil}).
		OrderBy("c.companion_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []int64
	err = r.db.SelectContext(ctx, &ids, query, args...)
	if err != nil {
		return nil, err
	}

	return ids, nil
}
