package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tacops/internal/models"
	"tacops/internal/query"
)

type SquadronStore struct{ db *gorm.DB }

func NewSquadronStore(db *gorm.DB) *SquadronStore { return &SquadronStore{db: db} }

type ListSquadronsInput struct {
	Search string
	Page   query.Page
}

// List pages squadrons newest-first. Search matches code or name; no
// joins are involved, so the total is a plain row count.
func (s *SquadronStore) List(ctx context.Context, in ListSquadronsInput) ([]models.Squadron, int64, error) {
	var cond query.Expr
	if v := strings.TrimSpace(in.Search); v != "" {
		cond = query.Or(
			query.Contains("squadrons.code", v),
			query.Contains("squadrons.name", v),
		)
	}

	base := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.Squadron{})
		if cond != nil {
			sqlStr, args := cond.SQL()
			tx = tx.Where(sqlStr, args...)
		}
		return tx
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Squadron
	err := base().
		Order("squadrons.created_at DESC, squadrons.id DESC").
		Limit(in.Page.Limit).
		Offset(in.Page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *SquadronStore) GetByID(ctx context.Context, id uint) (*models.Squadron, error) {
	var sq models.Squadron
	if err := s.db.WithContext(ctx).First(&sq, id).Error; err != nil {
		return nil, translate(err)
	}
	return &sq, nil
}

func (s *SquadronStore) Create(ctx context.Context, sq *models.Squadron) error {
	return translate(s.db.WithContext(ctx).Create(sq).Error)
}

// Delete removes a squadron. The restrict rule on acps.squadron_id
// blocks the delete while ACPs reference it; that surfaces as a
// conflict, not a missing reference.
func (s *SquadronStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Squadron{}, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
