package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"tacops/internal/models"
	"tacops/internal/query"
)

type ACPStore struct{ db *gorm.DB }

func NewACPStore(db *gorm.DB) *ACPStore { return &ACPStore{db: db} }

type ListACPsInput struct {
	Search   string
	Squadron string
	Filters  query.Filters
	Page     query.Page
}

// acpColumns is the explicit projection for ACP reads: every ACP column
// plus the owning squadron aliased under squadron_*.
var acpColumns = strings.Join([]string{
	"acps.id", "acps.squadron_id", "acps.name", "acps.type",
	"acps.serial_number", "acps.description", "acps.created_at", "acps.updated_at",
	"squadrons.code AS squadron_code",
	"squadrons.name AS squadron_name",
	"squadrons.description AS squadron_description",
	"squadrons.created_at AS squadron_created_at",
	"squadrons.updated_at AS squadron_updated_at",
}, ", ")

type acpRow struct {
	ID           uint           `gorm:"column:id"`
	SquadronID   uint           `gorm:"column:squadron_id"`
	Name         string         `gorm:"column:name"`
	Type         models.ACPType `gorm:"column:type"`
	SerialNumber string         `gorm:"column:serial_number"`
	Description  string         `gorm:"column:description"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`

	SquadronCode        string    `gorm:"column:squadron_code"`
	SquadronName        string    `gorm:"column:squadron_name"`
	SquadronDescription string    `gorm:"column:squadron_description"`
	SquadronCreatedAt   time.Time `gorm:"column:squadron_created_at"`
	SquadronUpdatedAt   time.Time `gorm:"column:squadron_updated_at"`
}

func (r acpRow) toModel() *models.ACP {
	return &models.ACP{
		ID:           r.ID,
		SquadronID:   r.SquadronID,
		Name:         r.Name,
		Type:         r.Type,
		SerialNumber: r.SerialNumber,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Squadron: &models.Squadron{
			ID:          r.SquadronID,
			Code:        r.SquadronCode,
			Name:        r.SquadronName,
			Description: r.SquadronDescription,
			CreatedAt:   r.SquadronCreatedAt,
			UpdatedAt:   r.SquadronUpdatedAt,
		},
	}
}

// buildACPPredicate contributes one sub-predicate per present parameter
// and records the relations needed to evaluate them. The squadron join
// is always present because the projection embeds the squadron.
func buildACPPredicate(in ListACPsInput) (query.Expr, *query.JoinSet) {
	joins := &query.JoinSet{}
	joins.Add("squadron")

	var conds []query.Expr
	if v := strings.TrimSpace(in.Search); v != "" {
		conds = append(conds, query.Or(
			query.Contains("acps.name", v),
			query.Contains("acps.serial_number", v),
			query.Contains("acps.type", v),
		))
	}
	if v := strings.TrimSpace(query.Pick(in.Squadron, in.Filters, "squadron")); v != "" {
		conds = append(conds, query.Contains("squadrons.name", v))
	}
	return query.And(conds...), joins
}

// List pages ACPs newest-first with the owning squadron embedded. The
// count query shares the page query's join set; squadron is a to-one
// join, so rows count 1:1 and no distinct correction is needed.
func (s *ACPStore) List(ctx context.Context, in ListACPsInput) ([]*models.ACP, int64, error) {
	cond, joins := buildACPPredicate(in)
	clauses, toMany, err := joins.Resolve(models.ACPRelations)
	if err != nil {
		return nil, 0, err
	}

	apply := func(tx *gorm.DB) *gorm.DB {
		for _, j := range clauses {
			tx = tx.Joins(j)
		}
		if cond != nil {
			sqlStr, args := cond.SQL()
			tx = tx.Where(sqlStr, args...)
		}
		return tx
	}

	countQ := apply(s.db.WithContext(ctx).Model(&models.ACP{}))
	if toMany {
		countQ = countQ.Distinct("acps.id")
	}
	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []acpRow
	err = apply(s.db.WithContext(ctx).Model(&models.ACP{})).
		Select(acpColumns).
		Order("acps.created_at DESC, acps.id DESC").
		Limit(in.Page.Limit).
		Offset(in.Page.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*models.ACP, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, total, nil
}

// GetByID is the list composition with the predicate fixed to an exact
// id match and no pagination.
func (s *ACPStore) GetByID(ctx context.Context, id uint) (*models.ACP, error) {
	var rows []acpRow
	err := s.db.WithContext(ctx).Model(&models.ACP{}).
		Select(acpColumns).
		Joins(models.ACPRelations["squadron"].Join).
		Where("acps.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0].toModel(), nil
}

type CreateACPInput struct {
	SquadronID   uint
	Name         string
	Type         models.ACPType
	SerialNumber string
	Description  string
}

// Create validates the squadron reference before writing, then inserts.
// A duplicate serial number is rejected by the unique index and
// reported as a conflict; the existing row is untouched.
func (s *ACPStore) Create(ctx context.Context, in CreateACPInput) (*models.ACP, error) {
	var out *models.ACP
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sq models.Squadron
		if err := tx.First(&sq, in.SquadronID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBadReference
			}
			return err
		}
		a := models.ACP{
			SquadronID:   in.SquadronID,
			Name:         in.Name,
			Type:         in.Type,
			SerialNumber: in.SerialNumber,
			Description:  in.Description,
		}
		if err := tx.Create(&a).Error; err != nil {
			return translate(err)
		}
		a.Squadron = &sq
		out = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an ACP; its missions cascade away at the schema level.
func (s *ACPStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.ACP{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
