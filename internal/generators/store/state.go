package store

import (
	"fmt"

	"github.com/simonhull/firebird-suite/plume/internal/jsgen"
)

// ComposeState composes state.<ext>: one reactive object holding the shared
// loading, error and currentUser fields plus one slice per collection.
func ComposeState(p *Plan) (string, error) {
	entries := []jsgen.Entry{
		{Key: "loading", Value: jsgen.RawExpr("false")},
		{Key: "error", Value: jsgen.RawExpr("null")},
		{Key: "currentUser", Value: jsgen.RawExpr("null")},
	}
	for _, c := range p.Collections {
		entries = append(entries, jsgen.Entry{
			Key:   c.Name,
			Value: jsgen.Call{Fn: jsgen.Ident("createCollectionState")},
		})
	}

	body := []jsgen.Stmt{
		jsgen.Const{
			Doc:    []string{"Creates the empty per-collection slice used by the shared action factory."},
			Export: true,
			Name:   "createCollectionState",
			Value: jsgen.Arrow{Expr: jsgen.Object{Entries: []jsgen.Entry{
				{Key: "items", Value: jsgen.Array{}},
				{Key: "lastVisible", Value: jsgen.RawExpr("null")},
				{Key: "hasMore", Value: jsgen.RawExpr("true")},
				{Key: "filters", Value: jsgen.Object{}},
				{Key: "sort", Value: jsgen.Object{Inline: true, Entries: []jsgen.Entry{
					{Key: "field", Value: jsgen.Str("createdAt")},
					{Key: "direction", Value: jsgen.Str("desc")},
				}}},
				{Key: "searchTerm", Value: jsgen.Str("")},
				{Key: "searchResults", Value: jsgen.Array{}},
			}}},
		},
		jsgen.Blank{},
		jsgen.Const{
			Doc: []string{
				fmt.Sprintf("Shared state for the %s store.", p.Store),
				"",
				"loading, error and currentUser are shared by every operation. Only one",
				"operation is expected in flight at a time; overlapping operations race",
				"on these fields and the last to finish wins.",
			},
			Export: true,
			Name:   "state",
			Value: jsgen.Call{
				Fn:   jsgen.Ident("reactive"),
				Args: []jsgen.Expr{jsgen.Object{Entries: entries}},
			},
		},
		jsgen.Blank{},
		jsgen.ExportDefault{Value: jsgen.Ident("state")},
	}

	return jsgen.Print(&jsgen.File{
		Header:  []string{fmt.Sprintf("Generated by plume. State for the %s store.", p.Store)},
		Imports: []jsgen.Import{{Names: []string{"reactive"}, From: "vue"}},
		Body:    body,
	}), nil
}
