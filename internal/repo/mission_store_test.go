package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacops/internal/models"
	"tacops/internal/query"
)

type missionFixture struct {
	squadron *models.Squadron
	acp      *models.ACP
}

func newMissionFixture(t *testing.T, store *MissionStore) (*missionFixture, context.Context) {
	t.Helper()
	ctx := context.Background()
	gdb := store.db
	sq := &models.Squadron{Code: "RVN-01", Name: "Raven Flight"}
	require.NoError(t, gdb.Create(sq).Error)
	a := &models.ACP{SquadronID: sq.ID, Name: "Eyrie", Type: models.ACPTypeSentinel, SerialNumber: "ACP-001"}
	require.NoError(t, gdb.Create(a).Error)
	for _, u := range []*models.User{
		{ID: "cmdr-1", Name: "Shaw", Role: models.RoleCommander},
		{ID: "cmdr-2", Name: "Vega", Role: models.RoleCommander},
		{ID: "op-1", Name: "Reyes", Role: models.RoleOperator},
		{ID: "op-2", Name: "Ito", Role: models.RoleOperator},
	} {
		require.NoError(t, gdb.Create(u).Error)
	}
	return &missionFixture{squadron: sq, acp: a}, ctx
}

func TestMissionCreate(t *testing.T) {
	gdb := newTestDB(t)
	store := NewMissionStore(gdb)
	fx, ctx := newMissionFixture(t, store)

	m, err := store.Create(ctx, CreateMissionInput{
		ACPID:       fx.acp.ID,
		CommanderID: "cmdr-1",
		Name:        "Dawn Patrol",
		OperatorID:  "op-1",
		Windows: models.MissionWindows{
			{Start: time.Now().UTC(), End: time.Now().UTC().Add(time.Hour), Label: "ingress"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, models.MissionStatusActive, m.Status)
	assert.True(t, strings.HasPrefix(m.AuthCode, "TAC-"))
	assert.Len(t, m.AuthCode, 14)
	assert.Equal(t, strings.ToUpper(m.AuthCode), m.AuthCode)

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Windows, 1)
	assert.Equal(t, "ingress", got.Windows[0].Label)
	require.NotNil(t, got.Operator)
	assert.Equal(t, "op-1", got.Operator.ID)
}

func TestMissionCreateMissingReferences(t *testing.T) {
	gdb := newTestDB(t)
	store := NewMissionStore(gdb)
	fx, ctx := newMissionFixture(t, store)

	cases := []struct {
		name string
		in   CreateMissionInput
	}{
		{"acp", CreateMissionInput{ACPID: 9999, CommanderID: "cmdr-1", Name: "X"}},
		{"commander", CreateMissionInput{ACPID: fx.acp.ID, CommanderID: "nobody", Name: "X"}},
		{"operator", CreateMissionInput{ACPID: fx.acp.ID, CommanderID: "cmdr-1", Name: "X", OperatorID: "nobody"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(ctx, tc.in)
			assert.ErrorIs(t, err, ErrBadReference)
		})
	}

	// nothing was written for any of the failed creates
	_, total, err := store.List(ctx, ListMissionsInput{Page: query.ParsePage("", "")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestMissionListDistinctTotal(t *testing.T) {
	gdb := newTestDB(t)
	store := NewMissionStore(gdb)
	fx, ctx := newMissionFixture(t, store)

	m, err := store.Create(ctx, CreateMissionInput{
		ACPID: fx.acp.ID, CommanderID: "cmdr-1", Name: "Dawn Patrol", OperatorID: "op-1",
	})
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&models.MissionAssignment{OperatorID: "op-2", MissionID: m.ID}).Error)

	_, err = store.Create(ctx, CreateMissionInput{
		ACPID: fx.acp.ID, CommanderID: "cmdr-2", Name: "Night Watch",
	})
	require.NoError(t, err)

	rows, total, err := store.List(ctx, ListMissionsInput{Page: query.ParsePage("", "")})
	require.NoError(t, err)

	// three joined rows (two operator pairings plus the unassigned
	// mission) but the total counts missions, not pairings
	assert.Len(t, rows, 3)
	assert.Equal(t, int64(2), total)
}

func TestMissionListFilters(t *testing.T) {
	gdb := newTestDB(t)
	store := NewMissionStore(gdb)
	fx, ctx := newMissionFixture(t, store)

	_, err := store.Create(ctx, CreateMissionInput{
		ACPID: fx.acp.ID, CommanderID: "cmdr-1", Name: "Dawn Patrol", OperatorID: "op-1",
	})
	require.NoError(t, err)
	_, err = store.Create(ctx, CreateMissionInput{
		ACPID: fx.acp.ID, CommanderID: "cmdr-2", Name: "Night Watch", OperatorID: "op-2",
	})
	require.NoError(t, err)

	t.Run("search by name", func(t *testing.T) {
		rows, total, err := store.List(ctx, ListMissionsInput{Search: "dawn", Page: query.ParsePage("", "")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Dawn Patrol", rows[0].Name)
	})

	t.Run("operator id", func(t *testing.T) {
		rows, total, err := store.List(ctx, ListMissionsInput{OperatorID: "op-2", Page: query.ParsePage("", "")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Night Watch", rows[0].Name)
	})

	t.Run("commander name substring", func(t *testing.T) {
		rows, total, err := store.List(ctx, ListMissionsInput{Commander: "shaw", Page: query.ParsePage("", "")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Dawn Patrol", rows[0].Name)
		require.NotNil(t, rows[0].Commander)
		assert.Equal(t, "Shaw", rows[0].Commander.Name)
	})

	t.Run("structured filters with direct precedence", func(t *testing.T) {
		fs, err := query.ParseFilters(`[{"field":"operatorId","value":"op-1"}]`)
		require.NoError(t, err)

		rows, total, err := store.List(ctx, ListMissionsInput{Filters: fs, Page: query.ParsePage("", "")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Dawn Patrol", rows[0].Name)

		rows, total, err = store.List(ctx, ListMissionsInput{OperatorID: "op-2", Filters: fs, Page: query.ParsePage("", "")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Night Watch", rows[0].Name)
	})
}

func TestMissionGetByIDDetail(t *testing.T) {
	gdb := newTestDB(t)
	store := NewMissionStore(gdb)
	fx, ctx := newMissionFixture(t, store)

	m, err := store.Create(ctx, CreateMissionInput{
		ACPID: fx.acp.ID, CommanderID: "cmdr-1", Name: "Dawn Patrol", OperatorID: "op-1",
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ACP)
	assert.Equal(t, "Eyrie", got.ACP.Name)
	require.NotNil(t, got.Squadron)
	assert.Equal(t, "RVN-01", got.Squadron.Code)
	require.NotNil(t, got.Commander)
	assert.Equal(t, models.RoleCommander, got.Commander.Role)
	require.NotNil(t, got.Operator)
	assert.Equal(t, "Reyes", got.Operator.Name)

	_, err = store.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMissionDeleteCascadesAssignments(t *testing.T) {
	gdb := newTestDB(t)
	store := NewMissionStore(gdb)
	fx, ctx := newMissionFixture(t, store)

	m, err := store.Create(ctx, CreateMissionInput{
		ACPID: fx.acp.ID, CommanderID: "cmdr-1", Name: "Dawn Patrol", OperatorID: "op-1",
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, m.ID))
	assert.ErrorIs(t, store.Delete(ctx, m.ID), ErrNotFound)

	var n int64
	require.NoError(t, gdb.Model(&models.MissionAssignment{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestNewAuthCodeShape(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code := NewAuthCode()
		assert.Regexp(t, `^TAC-[0-9A-F]{10}$`, code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestUserEnsure(t *testing.T) {
	gdb := newTestDB(t)
	store := NewUserStore(gdb)
	ctx := context.Background()

	require.NoError(t, store.Ensure(ctx, "u-1", "Shaw", "commander"))
	var u models.User
	require.NoError(t, gdb.First(&u, "id = ?", "u-1").Error)
	assert.Equal(t, models.RoleCommander, u.Role)

	// a second sighting does not overwrite the mirrored identity
	require.NoError(t, store.Ensure(ctx, "u-1", "Changed", "operator"))
	require.NoError(t, gdb.First(&u, "id = ?", "u-1").Error)
	assert.Equal(t, "Shaw", u.Name)

	// blank role defaults to guest, blank name to the id
	require.NoError(t, store.Ensure(ctx, "u-2", "", ""))
	require.NoError(t, gdb.First(&u, "id = ?", "u-2").Error)
	assert.Equal(t, models.RoleGuest, u.Role)
	assert.Equal(t, "u-2", u.Name)

	// empty id is a no-op
	require.NoError(t, store.Ensure(ctx, "", "x", "y"))
}
