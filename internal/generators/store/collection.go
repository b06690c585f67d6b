package store

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/descriptor"
	"github.com/simonhull/firebird-suite/plume/internal/jsgen"
	"github.com/simonhull/firebird-suite/plume/internal/naming"
)

// MemberNames returns the exported member names of a collection module in
// table order.
func MemberNames(c CollectionSpec) []string {
	descs := descriptor.ForCollection(c.IsAuth)
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name(c.Suffix())
	}
	return names
}

// ComposeCollection composes actions/<name> for one collection: a lazily
// constructed action set from the shared factory and one forwarding wrapper
// per descriptor. The output depends only on c and the descriptor table.
func ComposeCollection(c CollectionSpec) (string, error) {
	if !naming.ValidIdentifier(c.Name) {
		return "", &InvalidCollectionNameError{Name: c.Name}
	}

	suffix := c.Suffix()
	binding := c.ActionsBinding()
	descs := descriptor.ForCollection(c.IsAuth)

	body := []jsgen.Stmt{
		jsgen.Let{Name: "actions", Value: jsgen.RawExpr("null")},
		jsgen.Blank{},
		jsgen.Const{
			Name: "getActions",
			Value: jsgen.Arrow{Body: []jsgen.Stmt{
				jsgen.If{
					Cond: "!actions",
					Then: []jsgen.Stmt{jsgen.Assign{
						Target: "actions",
						Value: jsgen.Call{
							Fn:   jsgen.Ident("useFirestoreCollectionActions"),
							Args: []jsgen.Expr{jsgen.Str(c.Name), jsgen.Ident("state")},
						},
					}},
				},
				jsgen.Return{Value: jsgen.Ident("actions")},
			}},
		},
	}

	entries := make([]jsgen.Entry, 0, len(descs))
	for _, d := range descs {
		member := d.Name(suffix)
		body = append(body, jsgen.Blank{}, jsgen.Const{
			Doc:    memberDoc(d, c.Name),
			Export: true,
			Name:   member,
			Value: jsgen.Arrow{
				Params: []string{"...args"},
				Expr: jsgen.Call{
					Fn:   jsgen.Ident("getActions()." + d.Key),
					Args: []jsgen.Expr{jsgen.Ident("...args")},
				},
			},
		})
		entries = append(entries, jsgen.Entry{Key: member})
	}

	body = append(body,
		jsgen.Blank{},
		jsgen.Const{Export: true, Name: binding, Value: jsgen.Object{Entries: entries}},
		jsgen.Blank{},
		jsgen.ExportDefault{Value: jsgen.Ident(binding)},
	)

	return jsgen.Print(&jsgen.File{
		Header: []string{fmt.Sprintf("Generated by plume. Actions for the %s collection.", c.Name)},
		Imports: []jsgen.Import{
			{Names: []string{"useFirestoreCollectionActions"}, From: "../useFirestoreCollectionActions"},
			{Names: []string{"state"}, From: "../state"},
		},
		Body: body,
	}), nil
}

func memberDoc(d descriptor.Descriptor, collection string) []string {
	lines := []string{d.Doc(collection)}
	if len(d.Params) > 0 {
		lines = append(lines, "")
		for _, p := range d.Params {
			lines = append(lines, "@param "+paramDoc(p))
		}
	}
	return lines
}

// paramDoc renders "direction = 'asc'" as "[direction='asc']".
func paramDoc(p string) string {
	name, def, ok := strings.Cut(p, "=")
	if !ok {
		return p
	}
	return "[" + strings.TrimSpace(name) + "=" + strings.TrimSpace(def) + "]"
}
