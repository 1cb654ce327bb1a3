// Package query holds the relational listing engine: composable
// predicates, named join resolution and pagination math. It renders SQL
// fragments with placeholder args but never touches a database itself,
// so every piece is testable in isolation.
package query

import (
	"fmt"
	"strings"
)

// Op identifies the comparison a leaf applies to its column.
type Op string

const (
	// OpEq is exact equality, used for opaque identifier fields.
	OpEq Op = "eq"
	// OpContains is a case-insensitive substring match for text fields.
	OpContains Op = "contains"
)

// Expr is a boolean condition renderable as a SQL fragment plus args.
// Leaves and groups are plain values; a tree can be inspected or
// serialized without a datastore behind it. A nil Expr means "match
// all".
type Expr interface {
	SQL() (string, []any)
}

// Cond is a single {column, op, value} leaf.
type Cond struct {
	Column string `json:"column"`
	Op     Op     `json:"op"`
	Value  any    `json:"value"`
}

func (c Cond) SQL() (string, []any) {
	if c.Op == OpContains {
		pattern := "%" + EscapeLike(strings.ToLower(fmt.Sprint(c.Value))) + "%"
		return "LOWER(" + c.Column + ") LIKE ? ESCAPE '!'", []any{pattern}
	}
	return c.Column + " = ?", []any{c.Value}
}

// Eq matches the column exactly.
func Eq(column string, v any) Expr { return Cond{Column: column, Op: OpEq, Value: v} }

// Contains matches case-insensitive substrings. Wildcard characters in
// v are escaped first, so user input always matches literally.
func Contains(column, v string) Expr { return Cond{Column: column, Op: OpContains, Value: v} }

type group struct {
	op    string
	exprs []Expr
}

func (g group) SQL() (string, []any) {
	parts := make([]string, 0, len(g.exprs))
	var args []any
	for _, e := range g.exprs {
		s, a := e.SQL()
		parts = append(parts, s)
		args = append(args, a...)
	}
	return "(" + strings.Join(parts, " "+g.op+" ") + ")", args
}

func combine(op string, exprs []Expr) Expr {
	var kept []Expr
	for _, e := range exprs {
		if e != nil {
			kept = append(kept, e)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return group{op: op, exprs: kept}
}

// And joins predicates with logical AND. Nils contribute nothing; an
// all-nil input yields nil, the match-all sentinel.
func And(exprs ...Expr) Expr { return combine("AND", exprs) }

// Or joins predicates with logical OR, parenthesized as one unit for
// the surrounding AND.
func Or(exprs ...Expr) Expr { return combine("OR", exprs) }

// likeEscaper uses '!' as the LIKE escape character: unlike backslash
// its quoting is identical on postgres, mysql and sqlite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// EscapeLike escapes LIKE metacharacters so a filter value cannot widen
// the match beyond its literal text.
func EscapeLike(s string) string { return likeEscaper.Replace(s) }
