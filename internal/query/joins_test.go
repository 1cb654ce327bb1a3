package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRelations() map[string]Relation {
	return map[string]Relation{
		"acp": {
			Join: "LEFT JOIN acps ON acps.id = missions.acp_id",
		},
		"squadron": {
			Join:     "LEFT JOIN squadrons ON squadrons.id = acps.squadron_id",
			Requires: []string{"acp"},
		},
		"assignments": {
			Join:   "LEFT JOIN mission_assignments ON mission_assignments.mission_id = missions.id",
			ToMany: true,
		},
		"operator": {
			Join:     "LEFT JOIN users AS operators ON operators.id = mission_assignments.operator_id",
			Requires: []string{"assignments"},
		},
	}
}

func TestJoinSetAddDeduplicates(t *testing.T) {
	var s JoinSet
	assert.True(t, s.Empty())
	s.Add("acp", "acp", "operator")
	s.Add("acp")
	assert.False(t, s.Empty())

	clauses, _, err := s.Resolve(testRelations())
	require.NoError(t, err)
	assert.Len(t, clauses, 3) // acp, assignments, operator
}

func TestResolveExpandsPrerequisites(t *testing.T) {
	var s JoinSet
	s.Add("squadron")
	clauses, toMany, err := s.Resolve(testRelations())
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	// prerequisite joins come before their dependents
	assert.Contains(t, clauses[0], "JOIN acps")
	assert.Contains(t, clauses[1], "JOIN squadrons")
	assert.False(t, toMany)
}

func TestResolveFanOutFlag(t *testing.T) {
	var s JoinSet
	s.Add("operator")
	clauses, toMany, err := s.Resolve(testRelations())
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	assert.Contains(t, clauses[0], "mission_assignments")
	assert.True(t, toMany)
}

func TestResolveUnknownRelation(t *testing.T) {
	var s JoinSet
	s.Add("nope")
	_, _, err := s.Resolve(testRelations())
	assert.ErrorContains(t, err, `unknown relation "nope"`)
}

func TestValidateRelations(t *testing.T) {
	assert.NoError(t, ValidateRelations(testRelations()))

	broken := map[string]Relation{
		"operator": {Join: "x", Requires: []string{"assignments"}},
	}
	assert.ErrorContains(t, ValidateRelations(broken), "undeclared")
}
