// Package descriptor holds the table of CRUD operations every generated
// collection module exposes.
//
// The table is the single source of truth for member naming, documentation
// and the shared factory implementation. Adding a capability means adding
// one Descriptor to Table; the composers iterate the table and pick it up.
package descriptor

import "fmt"

// Descriptor describes one operation of the shared Firestore action set.
type Descriptor struct {
	// Key is the member name on the shared action set (e.g. "fetchInitialPage").
	Key string

	// Params are the JavaScript parameter names, in call order. Defaults are
	// written inline ("direction = 'asc'").
	Params []string

	// AuthOnly operations are only exposed on auth collections.
	AuthOnly bool

	// Async marks operations implemented as async functions in the factory.
	Async bool

	// Name derives the exported member name from a PascalCase suffix.
	Name func(suffix string) string

	// Doc derives the documentation sentence from the raw collection name.
	Doc func(collection string) string

	// Impl is the text/template body of the operation inside the shared
	// factory. See ImplData for the fields it can reference.
	Impl string
}

// ImplData is the data passed to Descriptor.Impl templates.
type ImplData struct {
	// RoleCheck guards destructive operations behind AdminRole.
	RoleCheck bool
	AdminRole string
}

// ParamNames returns the parameter names with any default values stripped.
func (d Descriptor) ParamNames() []string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = paramName(p)
	}
	return names
}

func prefix(verb string) func(string) string {
	return func(suffix string) string { return verb + suffix }
}

func wrap(verb, tail string) func(string) string {
	return func(suffix string) string { return verb + suffix + tail }
}

func doc(format string) func(string) string {
	return func(collection string) string { return fmt.Sprintf(format, collection) }
}

// Table is the ordered list of operations. Order is significant: composers
// emit members in this order.
var Table = []Descriptor{
	{
		Key:   "fetchInitialPage",
		Async: true,
		Name:  prefix("fetchInitialPage"),
		Doc:   doc("Fetch the first page of %s using the current filters and sort."),
		Impl:  fetchInitialPageImpl,
	},
	{
		Key:   "fetchNextPage",
		Async: true,
		Name:  prefix("fetchNextPage"),
		Doc:   doc("Fetch the next page of %s after the last loaded document."),
		Impl:  fetchNextPageImpl,
	},
	{
		Key:    "applyFilters",
		Params: []string{"filters"},
		Async:  true,
		Name:   wrap("apply", "Filters"),
		Doc:    doc("Replace the equality filters for %s and reload the first page."),
		Impl:   applyFiltersImpl,
	},
	{
		Key:    "changeSort",
		Params: []string{"field", "direction = 'asc'"},
		Async:  true,
		Name:   wrap("change", "Sort"),
		Doc:    doc("Change the sort field and direction for %s and reload the first page."),
		Impl:   changeSortImpl,
	},
	{
		Key:    "add",
		Params: []string{"data"},
		Async:  true,
		Name:   prefix("add"),
		Doc:    doc("Add a document to %s. createdAt and updatedAt are set by the server."),
		Impl:   addImpl,
	},
	{
		Key:    "getById",
		Params: []string{"id"},
		Async:  true,
		Name:   wrap("get", "ById"),
		Doc:    doc("Get a single document from %s by id. Resolves to null when it does not exist."),
		Impl:   getByIdImpl,
	},
	{
		Key:    "getWhere",
		Params: []string{"field", "operator", "value"},
		Async:  true,
		Name:   wrap("get", "Where"),
		Doc:    doc("Query %s with a single where(field, operator, value) clause."),
		Impl:   getWhereImpl,
	},
	{
		Key:    "update",
		Params: []string{"id", "data"},
		Async:  true,
		Name:   prefix("update"),
		Doc:    doc("Merge data into a document of %s and refresh the loaded copy."),
		Impl:   updateImpl,
	},
	{
		Key:    "search",
		Params: []string{"term", "field = 'name'"},
		Async:  true,
		Name:   prefix("search"),
		Doc:    doc("Prefix-search %s on a single field."),
		Impl:   searchImpl,
	},
	{
		Key:  "clearSearch",
		Name: wrap("clear", "Search"),
		Doc:  doc("Clear the search term and results for %s."),
		Impl: clearSearchImpl,
	},
	{
		Key:    "remove",
		Params: []string{"id"},
		Async:  true,
		Name:   prefix("delete"),
		Doc:    doc("Delete a document from %s."),
		Impl:   removeImpl,
	},
	{
		Key:      "assignRoles",
		Params:   []string{"id", "roles"},
		AuthOnly: true,
		Async:    true,
		Name:     wrap("assign", "Roles"),
		Doc:      doc("Add roles to a member of %s."),
		Impl:     assignRolesImpl,
	},
	{
		Key:      "revokeRoles",
		Params:   []string{"id", "roles"},
		AuthOnly: true,
		Async:    true,
		Name:     wrap("revoke", "Roles"),
		Doc:      doc("Remove roles from a member of %s."),
		Impl:     revokeRolesImpl,
	},
}

// ForCollection returns the descriptors exposed on a collection module:
// the whole table for auth collections, everything but AuthOnly otherwise.
func ForCollection(isAuth bool) []Descriptor {
	out := make([]Descriptor, 0, len(Table))
	for _, d := range Table {
		if d.AuthOnly && !isAuth {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Lookup returns the descriptor with the given key.
func Lookup(key string) (Descriptor, bool) {
	for _, d := range Table {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Keys returns the descriptor keys in table order.
func Keys() []string {
	keys := make([]string, len(Table))
	for i, d := range Table {
		keys[i] = d.Key
	}
	return keys
}

func paramName(p string) string {
	for i := 0; i < len(p); i++ {
		if p[i] == ' ' || p[i] == '=' {
			return p[:i]
		}
	}
	return p
}
