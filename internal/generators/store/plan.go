package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/simonhull/firebird-suite/plume/internal/authflow"
	"github.com/simonhull/firebird-suite/plume/internal/classify"
	"github.com/simonhull/firebird-suite/plume/internal/naming"
)

// Options are the answers and settings for one store generation run.
type Options struct {
	Store       string   // store name, used for the output directory
	Collections []string // raw collection names in answer order
	Roles       []string // role names, only meaningful with auth collections
	Logging     bool     // add the activity logger and logging calls

	// IsAuth classifies collections. Nil uses classify.Default().
	IsAuth classify.Predicate

	Dir            string            // output root; "" is the working directory
	Extension      string            // module extension without dot; "" means "js"
	FirebaseImport string            // module exporting auth and db; "" means "@/firebase"
	PageSize       int               // page size for paginated fetches; 0 means 20
	Messages       map[string]string // auth failure message overrides

	// Now stamps the guide. Nil uses time.Now.
	Now func() time.Time
}

// CollectionSpec is one collection as the composers see it.
type CollectionSpec struct {
	Name   string // raw name, also the Firestore collection path
	IsAuth bool
}

// Suffix is the PascalCase member name suffix.
func (c CollectionSpec) Suffix() string {
	return naming.Suffix(c.Name)
}

// Ident is the camelCase identifier used for module-level bindings.
func (c CollectionSpec) Ident() string {
	return naming.ToIdentifierCase(c.Name)
}

// ActionsBinding is the name of the collection's exported action set.
func (c CollectionSpec) ActionsBinding() string {
	return c.Ident() + "Actions"
}

// Plan is the validated, derived view of Options every composer works from.
type Plan struct {
	Store          string
	Collections    []CollectionSpec
	Auth           []CollectionSpec
	Roles          []string
	AdminRole      string
	Logging        bool
	Extension      string
	FirebaseImport string
	PageSize       int
	Messages       []authflow.Failure
	Root           string // stores/<store> under the output dir
	GeneratedAt    time.Time
}

// Primary returns the primary auth collection, the first in the auth subset.
func (p *Plan) Primary() (CollectionSpec, bool) {
	if len(p.Auth) == 0 {
		return CollectionSpec{}, false
	}
	return p.Auth[0], true
}

// HasAuth reports whether any collection is an auth collection.
func (p *Plan) HasAuth() bool {
	return len(p.Auth) > 0
}

// Path returns the output path of an artifact relative to the store root.
func (p *Plan) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Root}, elem...)...)
}

// Module returns "<name>.<ext>".
func (p *Plan) Module(name string) string {
	return name + "." + p.Extension
}

// NewPlan validates opts and derives the plan. Every problem with the
// collection list is reported at once, before anything is composed.
func NewPlan(opts Options) (*Plan, error) {
	if opts.Store == "" {
		return nil, &InputError{Field: "store", Message: "store name is required"}
	}
	if !naming.ValidIdentifier(opts.Store) {
		return nil, &InputError{
			Field:   "store",
			Message: fmt.Sprintf("invalid store name %q: must start with a letter and contain only letters, digits, '_' or '-'", opts.Store),
		}
	}
	if len(opts.Collections) == 0 {
		return nil, &InputError{Field: "collections", Message: "at least one collection is required"}
	}

	var invalid []error
	for _, name := range opts.Collections {
		if !naming.ValidIdentifier(name) {
			invalid = append(invalid, &InvalidCollectionNameError{Name: name})
		}
	}
	if len(invalid) > 0 {
		return nil, invalidCollections(invalid)
	}

	isAuth := opts.IsAuth
	if isAuth == nil {
		isAuth = classify.Default()
	}

	plan := &Plan{
		Store:          opts.Store,
		Logging:        opts.Logging,
		Extension:      opts.Extension,
		FirebaseImport: opts.FirebaseImport,
		PageSize:       opts.PageSize,
		Messages:       authflow.Messages(opts.Messages),
	}
	if plan.Extension == "" {
		plan.Extension = "js"
	}
	if plan.FirebaseImport == "" {
		plan.FirebaseImport = "@/firebase"
	}
	if plan.PageSize <= 0 {
		plan.PageSize = 20
	}

	bySuffix := map[string]string{}
	for _, name := range opts.Collections {
		c := CollectionSpec{Name: name, IsAuth: isAuth(name)}
		if prev, ok := bySuffix[c.Suffix()]; ok {
			return nil, &InputError{
				Field:   "collections",
				Message: fmt.Sprintf("collections %q and %q both produce members named *%s", prev, name, c.Suffix()),
			}
		}
		bySuffix[c.Suffix()] = name

		plan.Collections = append(plan.Collections, c)
		if c.IsAuth {
			plan.Auth = append(plan.Auth, c)
		}
	}

	if plan.HasAuth() {
		plan.Roles = opts.Roles
		plan.AdminRole = authflow.AdminRole(opts.Roles)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	plan.GeneratedAt = now()
	plan.Root = filepath.Join(opts.Dir, "stores", opts.Store)

	return plan, nil
}
