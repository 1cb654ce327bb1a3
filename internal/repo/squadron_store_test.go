package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacops/internal/models"
	"tacops/internal/query"
)

func TestSquadronList(t *testing.T) {
	gdb := newTestDB(t)
	store := NewSquadronStore(gdb)
	ctx := context.Background()

	seedSquadron(t, gdb, "RVN-01", "Raven Flight")
	seedSquadron(t, gdb, "VPR-02", "Viper Wing")
	seedSquadron(t, gdb, "GST-03", "Ghost Recon")

	rows, total, err := store.List(ctx, ListSquadronsInput{Page: query.ParsePage("", "")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	// newest first
	assert.Equal(t, "GST-03", rows[0].Code)
	assert.Equal(t, "RVN-01", rows[2].Code)
}

func TestSquadronListSearch(t *testing.T) {
	gdb := newTestDB(t)
	store := NewSquadronStore(gdb)
	ctx := context.Background()

	seedSquadron(t, gdb, "RVN-01", "Raven Flight")
	seedSquadron(t, gdb, "VPR-02", "Viper Wing")

	// search matches code or name, case-insensitively
	rows, total, err := store.List(ctx, ListSquadronsInput{Search: "raven", Page: query.ParsePage("", "")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "RVN-01", rows[0].Code)

	rows, total, err = store.List(ctx, ListSquadronsInput{Search: "vpr", Page: query.ParsePage("", "")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Viper Wing", rows[0].Name)
}

func TestSquadronListPagination(t *testing.T) {
	gdb := newTestDB(t)
	store := NewSquadronStore(gdb)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedSquadron(t, gdb, "SQ-"+string(rune('A'+i)), "Squadron")
	}

	p := query.ParsePage("2", "2")
	rows, total, err := store.List(ctx, ListSquadronsInput{Page: p})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), p.Meta(total).TotalPages)

	// page past the end is empty, not an error
	rows, total, err = store.List(ctx, ListSquadronsInput{Page: query.ParsePage("9", "2")})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, rows)
}

func TestSquadronGetByID(t *testing.T) {
	gdb := newTestDB(t)
	store := NewSquadronStore(gdb)
	ctx := context.Background()

	sq := seedSquadron(t, gdb, "RVN-01", "Raven Flight")

	got, err := store.GetByID(ctx, sq.ID)
	require.NoError(t, err)
	assert.Equal(t, "Raven Flight", got.Name)

	_, err = store.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSquadronCreateDuplicateCode(t *testing.T) {
	gdb := newTestDB(t)
	store := NewSquadronStore(gdb)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Squadron{Code: "RVN-01", Name: "Raven"}))
	err := store.Create(ctx, &models.Squadron{Code: "RVN-01", Name: "Other"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSquadronDelete(t *testing.T) {
	gdb := newTestDB(t)
	store := NewSquadronStore(gdb)
	ctx := context.Background()

	sq := seedSquadron(t, gdb, "RVN-01", "Raven Flight")
	require.NoError(t, store.Delete(ctx, sq.ID))
	assert.ErrorIs(t, store.Delete(ctx, sq.ID), ErrNotFound)
}

func TestSquadronDeleteRestrictedByACP(t *testing.T) {
	gdb := newTestDB(t)
	store := NewSquadronStore(gdb)
	ctx := context.Background()

	sq := seedSquadron(t, gdb, "RVN-01", "Raven Flight")
	seedACP(t, gdb, sq.ID, "Eyrie", "ACP-001", models.ACPTypeSentinel)

	// the restrict rule blocks the delete while an ACP references it
	assert.ErrorIs(t, store.Delete(ctx, sq.ID), ErrConflict)

	got, err := store.GetByID(ctx, sq.ID)
	require.NoError(t, err)
	assert.Equal(t, sq.ID, got.ID)
}
