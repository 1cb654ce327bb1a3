package repo

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tacops/internal/models"
	"tacops/internal/query"
)

type MissionStore struct{ db *gorm.DB }

func NewMissionStore(db *gorm.DB) *MissionStore { return &MissionStore{db: db} }

type ListMissionsInput struct {
	Search     string
	Commander  string
	OperatorID string
	Filters    query.Filters
	Page       query.Page
}

// missionColumns projects mission rows with the commanding user and the
// joined assignment's operator. The users table appears twice, aliased
// commanders/operators, so the two identities never collide.
var missionColumns = strings.Join([]string{
	"missions.id", "missions.acp_id", "missions.commander_id", "missions.auth_code",
	"missions.name", "missions.description", "missions.status", "missions.mission_windows",
	"missions.created_at", "missions.updated_at",
	"commanders.name AS commander_name",
	"operators.id AS operator_id",
	"operators.name AS operator_name",
}, ", ")

// missionDetailColumns adds the owning ACP, its squadron and the
// commander's role for detail lookups.
var missionDetailColumns = missionColumns + ", " + strings.Join([]string{
	"commanders.role AS commander_role",
	"acps.name AS acp_name",
	"acps.type AS acp_type",
	"acps.serial_number AS acp_serial_number",
	"acps.description AS acp_description",
	"acps.created_at AS acp_created_at",
	"acps.updated_at AS acp_updated_at",
	"squadrons.id AS squadron_id",
	"squadrons.code AS squadron_code",
	"squadrons.name AS squadron_name",
	"squadrons.description AS squadron_description",
	"squadrons.created_at AS squadron_created_at",
	"squadrons.updated_at AS squadron_updated_at",
}, ", ")

type missionRow struct {
	ID          uint                  `gorm:"column:id"`
	ACPID       uint                  `gorm:"column:acp_id"`
	CommanderID string                `gorm:"column:commander_id"`
	AuthCode    string                `gorm:"column:auth_code"`
	Name        string                `gorm:"column:name"`
	Description string                `gorm:"column:description"`
	Status      models.MissionStatus  `gorm:"column:status"`
	Windows     models.MissionWindows `gorm:"column:mission_windows;serializer:json"`
	CreatedAt   time.Time             `gorm:"column:created_at"`
	UpdatedAt   time.Time             `gorm:"column:updated_at"`

	CommanderName string  `gorm:"column:commander_name"`
	CommanderRole string  `gorm:"column:commander_role"`
	OperatorID    *string `gorm:"column:operator_id"`
	OperatorName  *string `gorm:"column:operator_name"`

	ACPName         string         `gorm:"column:acp_name"`
	ACPType         models.ACPType `gorm:"column:acp_type"`
	ACPSerialNumber string         `gorm:"column:acp_serial_number"`
	ACPDescription  string         `gorm:"column:acp_description"`
	ACPCreatedAt    time.Time      `gorm:"column:acp_created_at"`
	ACPUpdatedAt    time.Time      `gorm:"column:acp_updated_at"`

	SquadronID          uint      `gorm:"column:squadron_id"`
	SquadronCode        string    `gorm:"column:squadron_code"`
	SquadronName        string    `gorm:"column:squadron_name"`
	SquadronDescription string    `gorm:"column:squadron_description"`
	SquadronCreatedAt   time.Time `gorm:"column:squadron_created_at"`
	SquadronUpdatedAt   time.Time `gorm:"column:squadron_updated_at"`
}

func (r missionRow) toView() models.MissionView {
	v := models.MissionView{
		Mission: models.Mission{
			ID:          r.ID,
			ACPID:       r.ACPID,
			CommanderID: r.CommanderID,
			AuthCode:    r.AuthCode,
			Name:        r.Name,
			Description: r.Description,
			Status:      r.Status,
			Windows:     r.Windows,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		Commander: &models.UserRef{
			ID:   r.CommanderID,
			Name: r.CommanderName,
			Role: models.Role(r.CommanderRole),
		},
	}
	if r.OperatorID != nil {
		op := &models.UserRef{ID: *r.OperatorID}
		if r.OperatorName != nil {
			op.Name = *r.OperatorName
		}
		v.Operator = op
	}
	return v
}

func (r missionRow) toDetailView() models.MissionView {
	v := r.toView()
	v.ACP = &models.ACP{
		ID:           r.ACPID,
		SquadronID:   r.SquadronID,
		Name:         r.ACPName,
		Type:         r.ACPType,
		SerialNumber: r.ACPSerialNumber,
		Description:  r.ACPDescription,
		CreatedAt:    r.ACPCreatedAt,
		UpdatedAt:    r.ACPUpdatedAt,
	}
	v.Squadron = &models.Squadron{
		ID:          r.SquadronID,
		Code:        r.SquadronCode,
		Name:        r.SquadronName,
		Description: r.SquadronDescription,
		CreatedAt:   r.SquadronCreatedAt,
		UpdatedAt:   r.SquadronUpdatedAt,
	}
	return v
}

// buildMissionPredicate contributes sub-predicates for the present
// parameters. The structured filters parameter feeds the same named
// filters, with direct query parameters taking precedence.
func buildMissionPredicate(in ListMissionsInput) (query.Expr, *query.JoinSet) {
	joins := &query.JoinSet{}
	// the projection always carries the commander and the assigned
	// operator identity
	joins.Add("commander", "operator")

	var conds []query.Expr
	if v := strings.TrimSpace(in.Search); v != "" {
		conds = append(conds, query.Contains("missions.name", v))
	}
	if v := strings.TrimSpace(query.Pick(in.OperatorID, in.Filters, "operatorId")); v != "" {
		conds = append(conds, query.Eq("mission_assignments.operator_id", v))
	}
	if v := strings.TrimSpace(query.Pick(in.Commander, in.Filters, "commander")); v != "" {
		conds = append(conds, query.Contains("commanders.name", v))
	}
	return query.And(conds...), joins
}

// List pages missions newest-first. Result rows carry one
// commander/operator pairing each, as the joined rowset produces them;
// the total, however, always counts distinct missions: the assignment
// join is to-many, so a naive row count would inflate it.
func (s *MissionStore) List(ctx context.Context, in ListMissionsInput) ([]models.MissionView, int64, error) {
	cond, joins := buildMissionPredicate(in)
	clauses, toMany, err := joins.Resolve(models.MissionRelations)
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

	countQ := apply(s.db.WithContext(ctx).Model(&models.Mission{}))
	if toMany {
		countQ = countQ.Distinct("missions.id")
	}
	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []missionRow
	err = apply(s.db.WithContext(ctx).Model(&models.Mission{})).
		Select(missionColumns).
		Order("missions.created_at DESC, missions.id DESC").
		Limit(in.Page.Limit).
		Offset(in.Page.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.MissionView, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toView())
	}
	return out, total, nil
}

// GetByID returns one mission with ACP, squadron, commander and the
// first assigned operator embedded.
func (s *MissionStore) GetByID(ctx context.Context, id uint) (*models.MissionView, error) {
	joins := &query.JoinSet{}
	joins.Add("commander", "operator", "acp", "squadron")
	clauses, _, err := joins.Resolve(models.MissionRelations)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&models.Mission{}).Select(missionDetailColumns)
	for _, j := range clauses {
		tx = tx.Joins(j)
	}
	var rows []missionRow
	if err := tx.Where("missions.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	v := rows[0].toDetailView()
	return &v, nil
}

type CreateMissionInput struct {
	ACPID       uint
	CommanderID string
	Name        string
	Description string
	Status      models.MissionStatus
	Windows     models.MissionWindows
	OperatorID  string
}

// Create inserts a mission with a freshly minted auth code and, when an
// operator is supplied, the assignment row in the same transaction. All
// referenced rows are checked before anything is written, so a missing
// operator aborts the whole create instead of leaving an unassigned
// mission behind a success response.
func (s *MissionStore) Create(ctx context.Context, in CreateMissionInput) (*models.Mission, error) {
	m := models.Mission{
		ACPID:       in.ACPID,
		CommanderID: in.CommanderID,
		AuthCode:    NewAuthCode(),
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Windows:     in.Windows,
	}
	if m.Status == "" {
		m.Status = models.MissionStatusActive
	}
	if m.Windows == nil {
		m.Windows = models.MissionWindows{}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.ACP{}, in.ACPID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBadReference
			}
			return err
		}
		if err := tx.First(&models.User{}, "id = ?", in.CommanderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBadReference
			}
			return err
		}
		if in.OperatorID != "" {
			if err := tx.First(&models.User{}, "id = ?", in.OperatorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBadReference
				}
				return err
			}
		}
		if err := tx.Create(&m).Error; err != nil {
			return translate(err)
		}
		if in.OperatorID != "" {
			asg := models.MissionAssignment{OperatorID: in.OperatorID, MissionID: m.ID}
			if err := tx.Create(&asg).Error; err != nil {
				return translate(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes a mission; assignments cascade away with it.
func (s *MissionStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Mission{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NewAuthCode mints a mission authorization code. The md5-of-uuid keeps
// codes short; the unique index backs the (negligible) collision case.
func NewAuthCode() string {
	h := md5.Sum([]byte(uuid.NewString()))
	return "TAC-" + strings.ToUpper(hex.EncodeToString(h[:])[:10])
}
