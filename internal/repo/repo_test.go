package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tacops/internal/db"
	"tacops/internal/models"
)

// newTestDB opens a private in-memory sqlite database with foreign keys
// on. One connection max, so the memory database survives pool churn.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Squadron{},
		&models.ACP{},
		&models.Mission{},
		&models.MissionAssignment{},
	))
	return gdb
}

func seedSquadron(t *testing.T, gdb *gorm.DB, code, name string) *models.Squadron {
	t.Helper()
	sq := &models.Squadron{Code: code, Name: name}
	require.NoError(t, gdb.Create(sq).Error)
	return sq
}

func seedUser(t *testing.T, gdb *gorm.DB, id, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{ID: id, Name: name, Role: role}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedACP(t *testing.T, gdb *gorm.DB, squadronID uint, name, serial string, typ models.ACPType) *models.ACP {
	t.Helper()
	a := &models.ACP{SquadronID: squadronID, Name: name, Type: typ, SerialNumber: serial}
	require.NoError(t, gdb.Create(a).Error)
	return a
}
