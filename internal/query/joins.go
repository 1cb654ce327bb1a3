package query

import "fmt"

// Relation is one named edge of a root entity's relation map: the join
// clause that brings the related table in, the relations that must be
// joined before it, and whether the join can multiply root rows.
type Relation struct {
	Join     string
	ToMany   bool
	Requires []string
}

// JoinSet accumulates the named relations a query needs, in first-use
// order, deduplicated.
type JoinSet struct {
	names []string
	seen  map[string]struct{}
}

func (s *JoinSet) Add(names ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, n := range names {
		if _, ok := s.seen[n]; ok {
			continue
		}
		s.seen[n] = struct{}{}
		s.names = append(s.names, n)
	}
}

func (s *JoinSet) Empty() bool { return len(s.names) == 0 }

// Resolve expands prerequisites and returns join clauses in dependency
// order, plus whether any joined relation fans out. The fan-out flag is
// what tells the count side to count distinct root keys instead of
// joined rows.
func (s *JoinSet) Resolve(rels map[string]Relation) (clauses []string, toMany bool, err error) {
	done := make(map[string]struct{})
	var add func(name string) error
	add = func(name string) error {
		if _, ok := done[name]; ok {
			return nil
		}
		rel, ok := rels[name]
		if !ok {
			return fmt.Errorf("unknown relation %q", name)
		}
		done[name] = struct{}{}
		for _, dep := range rel.Requires {
			if err := add(dep); err != nil {
				return err
			}
		}
		clauses = append(clauses, rel.Join)
		if rel.ToMany {
			toMany = true
		}
		return nil
	}
	for _, n := range s.names {
		if err := add(n); err != nil {
			return nil, false, err
		}
	}
	return clauses, toMany, nil
}

// ValidateRelations checks that every prerequisite is declared. Run
// once at startup so a broken map fails the process, not a request.
func ValidateRelations(rels map[string]Relation) error {
	for name, rel := range rels {
		for _, dep := range rel.Requires {
			if _, ok := rels[dep]; !ok {
				return fmt.Errorf("relation %q requires undeclared relation %q", name, dep)
			}
		}
	}
	return nil
}
