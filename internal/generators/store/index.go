package store

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/authflow"
	"github.com/simonhull/firebird-suite/plume/internal/descriptor"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/jsgen"
	"github.com/simonhull/firebird-suite/plume/internal/naming"
)

// StoreHook returns the name of the exported composable, e.g. useShopStore.
func StoreHook(store string) string {
	return "use" + naming.Suffix(store) + "Store"
}

// ComposeIndex composes index.<ext>, the store's entry point. Auth blocks
// are present only when the plan has auth collections; activity logging
// calls only when logging is enabled.
func ComposeIndex(p *Plan, r *generator.Renderer) (string, error) {
	imports := []jsgen.Import{
		{Names: []string{"toRefs"}, From: "vue"},
	}
	if p.HasAuth() {
		imports = append(imports,
			jsgen.Import{Names: authflow.AuthImports, From: "firebase/auth"},
			jsgen.Import{Names: authflow.FirestoreImports, From: "firebase/firestore"},
			jsgen.Import{Names: []string{"auth", "db"}, From: p.FirebaseImport},
		)
	}
	imports = append(imports, jsgen.Import{Names: []string{"state"}, From: "./state"})
	for _, c := range p.Collections {
		imports = append(imports, jsgen.Import{
			Names: []string{c.ActionsBinding()},
			From:  "./actions/" + c.Name,
		})
	}
	roleLogging := p.Logging && p.HasAuth()
	if roleLogging {
		imports = append(imports, jsgen.Import{Names: []string{"logActivity"}, From: "./activityLogger"})
	}

	var body []jsgen.Stmt
	var exported []jsgen.Entry

	if p.HasAuth() {
		block, names, err := authBlock(p, r)
		if err != nil {
			return "", err
		}
		body = append(body, block...)
		for _, n := range names {
			exported = append(exported, jsgen.Entry{Key: n})
		}
	}

	for _, c := range p.Collections {
		exported = append(exported, jsgen.Entry{Key: c.ActionsBinding(), Spread: true})
	}

	if roleLogging {
		block, names := roleWrappers(p)
		body = append(body, block...)
		for _, n := range names {
			exported = append(exported, jsgen.Entry{Key: n})
		}
	}

	hook := StoreHook(p.Store)
	body = append(body,
		jsgen.Func{
			Doc: []string{
				fmt.Sprintf("The %s store: reactive state refs, auth flows and every collection's actions.", p.Store),
			},
			Export: true,
			Name:   hook,
			Body: []jsgen.Stmt{jsgen.Return{Value: jsgen.Object{Entries: append(
				[]jsgen.Entry{{Key: "toRefs(state)", Spread: true}},
				exported...,
			)}}},
		},
		jsgen.Blank{},
		jsgen.ExportDefault{Value: jsgen.Ident(hook)},
	)

	return jsgen.Print(&jsgen.File{
		Header:  []string{fmt.Sprintf("Generated by plume. Entry point for the %s store.", p.Store)},
		Imports: imports,
		Body:    body,
	}), nil
}

// authBlock returns the statements for the auth section and the names it
// adds to the store object.
func authBlock(p *Plan, r *generator.Renderer) ([]jsgen.Stmt, []string, error) {
	primary, _ := p.Primary()
	update, _ := descriptor.Lookup("update")

	var out []jsgen.Stmt

	// Session states
	for _, s := range authflow.SessionStates() {
		out = append(out, jsgen.Const{
			Export: true,
			Name:   "SESSION_" + strings.ToUpper(s.String()),
			Value:  jsgen.Str(s.String()),
		})
	}

	// Initializer block
	out = append(out,
		jsgen.Blank{},
		jsgen.Const{Name: "PRIMARY_AUTH_COLLECTION", Value: jsgen.Str(primary.Name)},
		jsgen.Const{Name: "primaryAuthActions", Value: jsgen.Ident(primary.ActionsBinding())},
		jsgen.Blank{},
	)

	// Failure table
	msgs := make([]jsgen.Entry, len(p.Messages))
	for i, f := range p.Messages {
		msgs[i] = jsgen.Entry{Key: f.Code, Value: jsgen.Str(f.Message)}
	}
	out = append(out,
		jsgen.Const{Name: "AUTH_ERROR_MESSAGES", Value: jsgen.Object{Entries: msgs}},
		jsgen.Blank{},
		jsgen.Const{
			Doc: []string{
				"Maps a failure to { code, message, originalCause }. Known codes use the",
				"table above, anything else keeps the failure's own message.",
			},
			Name: "toAuthError",
			Value: jsgen.Arrow{Params: []string{"error"}, Body: []jsgen.Stmt{jsgen.Raw{Text: fmt.Sprintf(`
const code = error?.code || 'auth/unknown'
const message = AUTH_ERROR_MESSAGES[code] || error?.message || %s
return { code, message, originalCause: error }
`, generator.JSString(authflow.FallbackMessage))}}},
		},
		jsgen.Blank{},
		jsgen.Const{
			Name: "requireUser",
			Value: jsgen.Arrow{Body: []jsgen.Stmt{jsgen.Raw{Text: fmt.Sprintf(`
const user = auth.currentUser
if (!user) {
  const error = new Error(AUTH_ERROR_MESSAGES[%[1]s])
  error.code = %[1]s
  throw error
}
return user
`, generator.JSString(authflow.NoCurrentUserCode))}}},
		},
		jsgen.Blank{},
		jsgen.Const{
			Doc: []string{
				"Merges the profile document of user into state.currentUser. A failed",
				"profile fetch is logged and the auth record is used on its own.",
			},
			Name: "mergeProfile",
			Value: jsgen.Arrow{Async: true, Params: []string{"user"}, Body: []jsgen.Stmt{jsgen.Raw{Text: `
if (!user) {
  state.currentUser = null
  return null
}
const base = {
  uid: user.uid,
  email: user.email,
  displayName: user.displayName,
  emailVerified: user.emailVerified,
}
try {
  const snapshot = await getDoc(doc(db, PRIMARY_AUTH_COLLECTION, user.uid))
  state.currentUser = snapshot.exists() ? { ...base, ...snapshot.data() } : base
} catch (error) {
  console.warn('Could not load the user profile:', error)
  state.currentUser = base
}
return state.currentUser
`}}},
		},
	)

	// Flows, each inside the shared envelope
	bodyData := authflow.BodyData{
		PrimaryActions: "primaryAuthActions",
		PrimaryUpdate:  update.Name(primary.Suffix()),
	}
	names := make([]string, 0, len(authflow.Flows)+2)
	for _, f := range authflow.Flows {
		text, err := r.RenderString("flow/"+f.Name, f.Body, bodyData)
		if err != nil {
			return nil, nil, fmt.Errorf("auth flow %s: %w", f.Name, err)
		}
		out = append(out, jsgen.Blank{}, envelope(f, string(text)))
		names = append(names, f.Name)
	}

	// Session restore
	out = append(out,
		jsgen.Blank{},
		jsgen.Let{Name: "sessionState", Value: jsgen.Ident("SESSION_UNINITIALIZED")},
		jsgen.Let{Name: "unsubscribeAuth", Value: jsgen.RawExpr("null")},
		jsgen.Blank{},
		jsgen.Func{
			Doc: []string{
				"Restores the signed-in session. The first call subscribes to auth state",
				"changes and resolves once the first change has been merged. Later calls",
				"return the current user without subscribing again.",
			},
			Export: true,
			Name:   "initAuth",
			Body: []jsgen.Stmt{jsgen.Raw{Text: `
if (sessionState !== SESSION_UNINITIALIZED) {
  return Promise.resolve(state.currentUser)
}
sessionState = SESSION_LISTENING
return new Promise((resolve) => {
  unsubscribeAuth = onAuthStateChanged(auth, async (user) => {
    await mergeProfile(user)
    sessionState = SESSION_RESOLVED
    resolve(state.currentUser)
  })
})
`}},
		},
		jsgen.Blank{},
		jsgen.Func{
			Doc:    []string{"Stops listening for auth state changes. initAuth may be called again afterwards."},
			Export: true,
			Name:   "disposeAuth",
			Body: []jsgen.Stmt{jsgen.Raw{Text: `
if (unsubscribeAuth) {
  unsubscribeAuth()
  unsubscribeAuth = null
}
sessionState = SESSION_UNINITIALIZED
`}},
		},
		jsgen.Blank{},
		jsgen.Const{
			Export: true,
			Name:   "getSessionState",
			Value:  jsgen.Arrow{Expr: jsgen.Ident("sessionState")},
		},
		jsgen.Blank{},
	)
	names = append(names, "initAuth", "disposeAuth", "getSessionState")

	return out, names, nil
}

// envelope wraps a flow body with the shared loading/error handling.
func envelope(f authflow.Flow, body string) jsgen.Func {
	return jsgen.Func{
		Doc:    f.Doc,
		Export: true,
		Async:  true,
		Name:   f.Name,
		Params: f.Params,
		Body: []jsgen.Stmt{
			jsgen.Assign{Target: "state.loading", Value: jsgen.RawExpr("true")},
			jsgen.Assign{Target: "state.error", Value: jsgen.RawExpr("null")},
			jsgen.Try{
				Body:  []jsgen.Stmt{jsgen.Raw{Text: body}},
				Param: "error",
				Catch: []jsgen.Stmt{
					jsgen.Const{Name: "authError", Value: jsgen.Call{
						Fn:   jsgen.Ident("toAuthError"),
						Args: []jsgen.Expr{jsgen.Ident("error")},
					}},
					jsgen.Assign{Target: "state.error", Value: jsgen.Ident("authError.message")},
					jsgen.Raw{Text: "throw authError"},
				},
				Finally: []jsgen.Stmt{
					jsgen.Assign{Target: "state.loading", Value: jsgen.RawExpr("false")},
				},
			},
		},
	}
}

// roleWrappers returns the actor context helper and one logged wrapper per
// role operation of every auth collection.
func roleWrappers(p *Plan) ([]jsgen.Stmt, []string) {
	adminRole := jsgen.Expr(jsgen.RawExpr("null"))
	if p.AdminRole != "" {
		adminRole = jsgen.Str(p.AdminRole)
	}

	out := []jsgen.Stmt{
		jsgen.Const{Name: "ROLES", Value: jsgen.Array{Items: jsgen.Strings(p.Roles)}},
		jsgen.Const{Name: "ADMIN_ROLE", Value: adminRole},
		jsgen.Blank{},
		jsgen.Const{
			Doc: []string{
				"Describes who is acting. The first configured role the user holds is",
				fmt.Sprintf("the actor type; with no signed-in user the %q actor is used.", authflow.SystemActorID),
			},
			Name: "getActorContext",
			Value: jsgen.Arrow{Body: []jsgen.Stmt{jsgen.Raw{Text: fmt.Sprintf(`
const user = state.currentUser
if (!user) {
  return {
    actorId: %[1]s,
    actorEmail: null,
    actorName: 'System',
    actorType: %[2]s,
    isAdminAction: false,
  }
}
const held = user.roles || []
return {
  actorId: user.uid,
  actorEmail: user.email || null,
  actorName: user.displayName || user.email || null,
  actorType: ROLES.find((role) => held.includes(role)) || %[3]s,
  isAdminAction: ADMIN_ROLE !== null && held.includes(ADMIN_ROLE),
}
`, generator.JSString(authflow.SystemActorID),
				generator.JSString(authflow.SystemActorType),
				generator.JSString(authflow.DefaultActorType))}}},
		},
	}

	var names []string
	for _, c := range p.Auth {
		for _, key := range []string{"assignRoles", "revokeRoles"} {
			d, _ := descriptor.Lookup(key)
			member := d.Name(c.Suffix())
			out = append(out, jsgen.Blank{}, jsgen.Func{
				Doc:    []string{d.Doc(c.Name) + " The change is recorded in the activity log."},
				Export: true,
				Async:  true,
				Name:   member,
				Params: d.Params,
				Body: []jsgen.Stmt{jsgen.Raw{Text: fmt.Sprintf(`
const result = await %[1]s.%[2]s(id, roles)
await logActivity({
  action: %[3]s,
  collection: %[4]s,
  documentId: id,
  details: { roles },
  ...getActorContext(),
})
return result
`, c.ActionsBinding(), member, generator.JSString(key), generator.JSString(c.Name))}},
			})
			names = append(names, member)
		}
	}
	out = append(out, jsgen.Blank{})

	return out, names
}
