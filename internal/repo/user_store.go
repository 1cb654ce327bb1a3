package repo

import (
	"context"

	"gorm.io/gorm"

	"tacops/internal/models"
)

type UserStore struct{ db *gorm.DB }

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

// Ensure mirrors an externally-authenticated identity into the local
// users table so commander/operator foreign keys resolve. The identity
// provider owns these rows; this only keeps the reference copy fresh.
func (s *UserStore) Ensure(ctx context.Context, id, name, role string) error {
	if id == "" {
		return nil
	}
	if role == "" {
		role = string(models.RoleGuest)
	}
	if name == "" {
		name = id
	}
	var u models.User
	return s.db.WithContext(ctx).
		Where(models.User{ID: id}).
		Attrs(models.User{Name: name, Role: models.Role(role)}).
		FirstOrCreate(&u).Error
}
