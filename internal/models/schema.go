package models

import "tacops/internal/query"

// Named relation maps per root entity. Stores resolve these through a
// query.JoinSet so join conditions are declared once, never repeated at
// call sites. Fan-out relations are flagged so totals can be counted by
// distinct root key.
//
// The users table appears twice in the mission graph under distinct
// aliases: commanders for the owning user, operators for the assigned
// one.

var SquadronRelations = map[string]query.Relation{}

var ACPRelations = map[string]query.Relation{
	"squadron": {Join: "LEFT JOIN squadrons ON squadrons.id = acps.squadron_id"},
}

var MissionRelations = map[string]query.Relation{
	"acp":         {Join: "LEFT JOIN acps ON acps.id = missions.acp_id"},
	"squadron":    {Join: "LEFT JOIN squadrons ON squadrons.id = acps.squadron_id", Requires: []string{"acp"}},
	"commander":   {Join: "LEFT JOIN users commanders ON commanders.id = missions.commander_id"},
	"assignments": {Join: "LEFT JOIN mission_assignments ON mission_assignments.mission_id = missions.id", ToMany: true},
	"operator":    {Join: "LEFT JOIN users operators ON operators.id = mission_assignments.operator_id", Requires: []string{"assignments"}},
}

// ValidateRelations checks every relation map once at process start; a
// dangling prerequisite is a programming error, not a request error.
func ValidateRelations() error {
	for _, rels := range []map[string]query.Relation{SquadronRelations, ACPRelations, MissionRelations} {
		if err := query.ValidateRelations(rels); err != nil {
			return err
		}
	}
	return nil
}
