package store

import (
	"github.com/simonhull/firebird-suite/plume/internal/classify"
	"github.com/simonhull/firebird-suite/plume/internal/input"
)

// Question keys, also used in answers files.
const (
	KeyStore       = "store"
	KeyCollections = "collections"
	KeyRoles       = "roles"
	KeyLogging     = "logging"
)

// Ask runs the store interview and fills the answer fields of base. Roles
// are only asked for when at least one collection classifies as an auth
// collection. Missing answers are reported as InputError as soon as they
// are given.
func Ask(s *input.Session, base Options) (Options, error) {
	opts := base
	if opts.IsAuth == nil {
		opts.IsAuth = classify.Default()
	}

	name, err := s.Text(input.Question{Key: KeyStore, Message: "Store name (e.g. shop)"})
	if err != nil {
		return opts, err
	}
	if name == "" {
		return opts, &InputError{Field: KeyStore, Message: "store name is required"}
	}
	opts.Store = name

	collections, err := s.List(input.Question{
		Key:     KeyCollections,
		Message: "Firestore collections (comma separated, e.g. products, orders)",
	})
	if err != nil {
		return opts, err
	}
	if len(collections) == 0 {
		return opts, &InputError{Field: KeyCollections, Message: "at least one collection is required"}
	}
	opts.Collections = collections

	if auth := classify.AuthSubset(collections, opts.IsAuth); len(auth) > 0 {
		roles, err := s.List(input.Question{
			Key:     KeyRoles,
			Message: "Roles for auth collections (comma separated, e.g. admin, editor)",
		})
		if err != nil {
			return opts, err
		}
		opts.Roles = roles
	}

	logging, err := s.Confirm(input.Question{Key: KeyLogging, Message: "Add activity logging?"})
	if err != nil {
		return opts, err
	}
	opts.Logging = logging

	return opts, nil
}
