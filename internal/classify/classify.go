// Package classify decides which collections hold authenticated principals.
//
// Auth collections get role management members and back the generated sign-in
// flows. The decision is a Predicate so it can be swapped from configuration
// or in tests.
package classify

import (
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/naming"
)

// Predicate reports whether a collection name is an auth collection.
type Predicate func(name string) bool

// DefaultNouns are the collection names treated as auth collections when no
// configuration overrides them.
var DefaultNouns = []string{
	"users",
	"admins",
	"accounts",
	"members",
	"customers",
	"profiles",
	"employees",
	"staff",
}

// Nouns returns a Predicate matching any of nouns. Matching ignores case and
// separators, so "Users", "users" and "USERS" all match "users", and
// "team_members" matches "team-members".
func Nouns(nouns ...string) Predicate {
	set := make(map[string]struct{}, len(nouns))
	for _, n := range nouns {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[normalize(n)] = struct{}{}
	}

	return func(name string) bool {
		_, ok := set[normalize(name)]
		return ok
	}
}

// Default returns the Predicate over DefaultNouns.
func Default() Predicate {
	return Nouns(DefaultNouns...)
}

// None never classifies a collection as an auth collection.
func None() Predicate {
	return func(string) bool { return false }
}

// AuthSubset returns the names matching p, preserving input order.
func AuthSubset(names []string, p Predicate) []string {
	var auth []string
	for _, name := range names {
		if p(name) {
			auth = append(auth, name)
		}
	}
	return auth
}

func normalize(name string) string {
	return strings.ToLower(naming.ToIdentifierCase(strings.TrimSpace(name)))
}
