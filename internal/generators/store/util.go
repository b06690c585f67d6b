package store

import (
	"fmt"
	"strconv"

	"github.com/simonhull/firebird-suite/plume/internal/descriptor"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/jsgen"
)

// factoryImports are the firebase/firestore names the factory and the
// descriptor bodies use.
var factoryImports = []string{
	"collection", "doc", "getDoc", "getDocs", "addDoc", "updateDoc", "deleteDoc",
	"query", "where", "orderBy", "limit", "startAfter",
	"serverTimestamp", "arrayUnion", "arrayRemove",
}

const buildQueryBody = `
const current = slice()
const constraints = Object.entries(current.filters)
  .filter(([, value]) => value !== undefined && value !== null && value !== '')
  .map(([field, value]) => where(field, '==', value))
constraints.push(orderBy(current.sort.field, current.sort.direction))
if (cursor) {
  constraints.push(startAfter(cursor))
}
constraints.push(limit(PAGE_SIZE))
return query(colRef, ...constraints)
`

// ComposeUtil composes useFirestoreCollectionActions.<ext>, the shared
// factory every collection module binds to. Each descriptor contributes one
// inner function, rendered from its Impl template.
func ComposeUtil(p *Plan, r *generator.Renderer) (string, error) {
	data := descriptor.ImplData{
		RoleCheck: p.AdminRole != "",
		AdminRole: p.AdminRole,
	}

	inner := []jsgen.Stmt{
		jsgen.If{
			Cond: "!state[collectionName]",
			Then: []jsgen.Stmt{jsgen.Assign{
				Target: "state[collectionName]",
				Value:  jsgen.Call{Fn: jsgen.Ident("createCollectionState")},
			}},
		},
		jsgen.Blank{},
		jsgen.Const{Name: "colRef", Value: jsgen.Call{
			Fn:   jsgen.Ident("collection"),
			Args: []jsgen.Expr{jsgen.Ident("db"), jsgen.Ident("collectionName")},
		}},
		jsgen.Const{Name: "slice", Value: jsgen.Arrow{Expr: jsgen.Ident("state[collectionName]")}},
		jsgen.Const{Name: "toDoc", Value: jsgen.Arrow{
			Params: []string{"snapshot"},
			Expr: jsgen.Object{Inline: true, Entries: []jsgen.Entry{
				{Key: "id", Value: jsgen.Ident("snapshot.id")},
				{Key: "snapshot.data()", Spread: true},
			}},
		}},
		jsgen.Blank{},
		jsgen.Const{Name: "buildQuery", Value: jsgen.Arrow{
			Params: []string{"cursor"},
			Body:   []jsgen.Stmt{jsgen.Raw{Text: buildQueryBody}},
		}},
		jsgen.Blank{},
		jsgen.Const{Name: "run", Value: jsgen.Arrow{
			Async:  true,
			Params: []string{"operation"},
			Body: []jsgen.Stmt{
				jsgen.Assign{Target: "state.loading", Value: jsgen.RawExpr("true")},
				jsgen.Assign{Target: "state.error", Value: jsgen.RawExpr("null")},
				jsgen.Try{
					Body:  []jsgen.Stmt{jsgen.Return{Value: jsgen.Await{X: jsgen.Call{Fn: jsgen.Ident("operation")}}}},
					Param: "error",
					Catch: []jsgen.Stmt{
						jsgen.Assign{Target: "state.error", Value: jsgen.Ident("error.message")},
						jsgen.ExprStmt{X: jsgen.Call{
							Fn:   jsgen.Ident("console.error"),
							Args: []jsgen.Expr{jsgen.RawExpr("`[${collectionName}]`"), jsgen.Ident("error")},
						}},
						jsgen.Raw{Text: "throw error"},
					},
					Finally: []jsgen.Stmt{
						jsgen.Assign{Target: "state.loading", Value: jsgen.RawExpr("false")},
					},
				},
			},
		}},
	}

	returned := make([]jsgen.Entry, 0, len(descriptor.Table))
	for _, d := range descriptor.Table {
		impl, err := r.RenderString("impl/"+d.Key, d.Impl, data)
		if err != nil {
			return "", fmt.Errorf("descriptor %s: %w", d.Key, err)
		}
		inner = append(inner, jsgen.Blank{}, jsgen.Func{
			Doc:    []string{d.Doc("the collection")},
			Async:  d.Async,
			Name:   d.Key,
			Params: d.Params,
			Body:   []jsgen.Stmt{jsgen.Raw{Text: string(impl)}},
		})
		returned = append(returned, jsgen.Entry{Key: d.Key})
	}
	inner = append(inner, jsgen.Blank{}, jsgen.Return{Value: jsgen.Object{Entries: returned}})

	factoryDoc := []string{
		"Creates the CRUD action set for one Firestore collection, bound to the",
		"shared store state. Every operation sets state.loading and clears",
		"state.error on entry, records failures in state.error and rethrows them.",
	}
	if data.RoleCheck {
		factoryDoc = append(factoryDoc, "", fmt.Sprintf("Deletes require the current user to hold the %q role.", p.AdminRole))
	}
	factoryDoc = append(factoryDoc,
		"",
		"@param {string} collectionName Firestore collection path",
		"@param {object} state the store's reactive state",
	)

	body := []jsgen.Stmt{
		jsgen.Const{Export: true, Name: "PAGE_SIZE", Value: jsgen.RawExpr(strconv.Itoa(p.PageSize))},
		jsgen.Blank{},
		jsgen.Func{
			Doc:    factoryDoc,
			Export: true,
			Name:   "useFirestoreCollectionActions",
			Params: []string{"collectionName", "state"},
			Body:   inner,
		},
		jsgen.Blank{},
		jsgen.ExportDefault{Value: jsgen.Ident("useFirestoreCollectionActions")},
	}

	return jsgen.Print(&jsgen.File{
		Header: []string{"Generated by plume. Shared Firestore CRUD actions."},
		Imports: []jsgen.Import{
			{Names: factoryImports, From: "firebase/firestore"},
			{Names: []string{"db"}, From: p.FirebaseImport},
			{Names: []string{"createCollectionState"}, From: "./state"},
		},
		Body: body,
	}), nil
}
