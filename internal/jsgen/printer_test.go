package jsgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint_ImportsAndConst(t *testing.T) {
	f := &File{
		Header: []string{"Generated by plume."},
		Imports: []Import{
			{Names: []string{"reactive", "toRefs"}, From: "vue"},
			{Default: "productsActions", From: "./actions/products"},
		},
		Body: []Stmt{
			Const{Export: true, Name: "answer", Value: RawExpr("42")},
		},
	}

	expected := `// Generated by plume.

import { reactive, toRefs } from 'vue'
import productsActions from './actions/products'

export const answer = 42
`
	assert.Equal(t, expected, Print(f))
}

func TestPrint_LongImportWraps(t *testing.T) {
	names := []string{"collection", "query", "where", "orderBy", "limit", "startAfter", "getDocs", "getDoc", "doc"}
	out := Print(&File{Imports: []Import{{Names: names, From: "firebase/firestore"}}})

	assert.True(t, strings.HasPrefix(out, "import {\n  collection,\n"))
	assert.Contains(t, out, "  doc,\n} from 'firebase/firestore'\n")
}

func TestPrint_FuncWithTryFinally(t *testing.T) {
	fn := Func{
		Doc:    []string{"Sign in.", "", "@param {string} email"},
		Export: true,
		Async:  true,
		Name:   "login",
		Params: []string{"email", "password"},
		Body: []Stmt{
			Assign{Target: "state.loading", Value: RawExpr("true")},
			Try{
				Body:    []Stmt{Return{Value: Await{X: Call{Fn: Ident("signIn"), Args: []Expr{Ident("email"), Ident("password")}}}}},
				Param:   "error",
				Catch:   []Stmt{Raw{Text: "throw error"}},
				Finally: []Stmt{Assign{Target: "state.loading", Value: RawExpr("false")}},
			},
		},
	}

	expected := `/**
 * Sign in.
 *
 * @param {string} email
 */
export async function login(email, password) {
  state.loading = true
  try {
    return await signIn(email, password)
  } catch (error) {
    throw error
  } finally {
    state.loading = false
  }
}
`
	assert.Equal(t, expected, PrintStmts(fn))
}

func TestPrint_ObjectLiterals(t *testing.T) {
	obj := Object{Entries: []Entry{
		{Key: "loading", Value: RawExpr("false")},
		{Key: "client-submissions", Value: Call{Fn: Ident("createCollectionState")}},
		{Key: "sort", Value: Object{Inline: true, Entries: []Entry{
			{Key: "field", Value: Str("createdAt")},
			{Key: "direction", Value: Str("desc")},
		}}},
		{Key: "productsActions", Spread: true},
		{Key: "login"},
	}}

	expected := `export const state = reactive({
  loading: false,
  'client-submissions': createCollectionState(),
  sort: { field: 'createdAt', direction: 'desc' },
  ...productsActions,
  login,
})
`
	out := PrintStmts(Const{Export: true, Name: "state", Value: Call{Fn: Ident("reactive"), Args: []Expr{obj}}})
	assert.Equal(t, expected, out)
}

func TestPrint_ArrowBodies(t *testing.T) {
	stmts := []Stmt{
		Const{Name: "forward", Value: Arrow{Params: []string{"...args"}, Expr: RawExpr("getActions().add(...args)")}},
		Const{Name: "make", Value: Arrow{Expr: Object{Entries: []Entry{{Key: "items", Value: Array{}}}}}},
		Const{Name: "get", Value: Arrow{Body: []Stmt{
			If{Cond: "!actions", Then: []Stmt{Assign{Target: "actions", Value: RawExpr("create()")}}},
			Return{Value: Ident("actions")},
		}}},
	}

	expected := `const forward = (...args) => getActions().add(...args)
const make = () => ({
  items: [],
})
const get = () => {
  if (!actions) {
    actions = create()
  }
  return actions
}
`
	assert.Equal(t, expected, PrintStmts(stmts...))
}

func TestPrint_RawDedentsAndReindents(t *testing.T) {
	fn := Func{Name: "clear", Body: []Stmt{Raw{Text: `
        const current = slice()

        if (x) {
          current.items = []
        }
    `}}}

	expected := `function clear() {
  const current = slice()

  if (x) {
    current.items = []
  }
}
`
	assert.Equal(t, expected, PrintStmts(fn))
}

func TestPrint_EmptyFunctionAndStrings(t *testing.T) {
	out := PrintStmts(
		Func{Name: "noop"},
		Const{Name: "s", Value: Str(`it's a \ test`)},
		Let{Name: "handle"},
	)
	assert.Equal(t, "function noop() {}\nconst s = 'it\\'s a \\\\ test'\nlet handle\n", out)
}

func TestSpaced(t *testing.T) {
	stmts := Spaced(Comment{Lines: []string{"a"}}, Comment{Lines: []string{"b"}})
	assert.Equal(t, "// a\n\n// b\n", PrintStmts(stmts...))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "users", Key("users"))
	assert.Equal(t, "'client-submissions'", Key("client-submissions"))
	assert.Equal(t, "'auth/user-not-found'", Key("auth/user-not-found"))
}
