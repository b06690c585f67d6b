// Package jsgen is a small intermediate representation for the JavaScript
// modules plume emits, and the printer that renders it.
//
// Composers build a File from statements and expressions; Print turns it into
// source text with two-space indentation, single-quoted strings, trailing
// commas in multi-line literals and no semicolons.
package jsgen

// File is one JavaScript module.
type File struct {
	Header  []string // line comments printed before the imports
	Imports []Import
	Body    []Stmt
}

// Import is an ES module import. Default and Names may be combined;
// Names entries may carry an alias ("updateProfile as updateAuthProfile").
type Import struct {
	Default string
	Names   []string
	From    string
}

// Stmt is a statement node.
type Stmt interface{ stmt() }

// Expr is an expression node.
type Expr interface{ expr() }

// Blank is an empty line.
type Blank struct{}

// Comment is a run of // comments.
type Comment struct {
	Lines []string
}

// Const declares a const binding.
type Const struct {
	Doc    []string
	Export bool
	Name   string
	Value  Expr
}

// Let declares a mutable binding.
type Let struct {
	Name  string
	Value Expr
}

// Func is a function declaration.
type Func struct {
	Doc    []string
	Export bool
	Async  bool
	Name   string
	Params []string
	Body   []Stmt
}

// ExportDefault is `export default <value>`.
type ExportDefault struct {
	Value Expr
}

// Return returns Value, or nothing when Value is nil.
type Return struct {
	Value Expr
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	X Expr
}

// Assign is `Target = Value`.
type Assign struct {
	Target string
	Value  Expr
}

// If is a conditional with an optional else branch.
type If struct {
	Cond string
	Then []Stmt
	Else []Stmt
}

// Try is try/catch/finally. Catch and Finally may be empty, not both.
type Try struct {
	Body    []Stmt
	Param   string
	Catch   []Stmt
	Finally []Stmt
}

// Raw is verbatim source. Its common indentation is removed and the
// current indentation applied to every line.
type Raw struct {
	Text string
}

// Ident is an identifier or member expression printed as-is.
type Ident string

// Str is a string literal.
type Str string

// RawExpr is verbatim expression source.
type RawExpr string

// Call is a function call.
type Call struct {
	Fn   Expr
	Args []Expr
}

// Await awaits X.
type Await struct {
	X Expr
}

// Arrow is an arrow function with either an expression body (Expr) or a
// block body (Body).
type Arrow struct {
	Async  bool
	Params []string
	Expr   Expr
	Body   []Stmt
}

// Object is an object literal. Inline objects print on a single line.
type Object struct {
	Entries []Entry
	Inline  bool
}

// Entry is an object literal entry. A nil Value without Spread prints as
// shorthand; Spread prints `...Key`.
type Entry struct {
	Key    string
	Value  Expr
	Spread bool
}

// Array is an array literal printed on a single line.
type Array struct {
	Items []Expr
}

func (Blank) stmt()         {}
func (Comment) stmt()       {}
func (Const) stmt()         {}
func (Let) stmt()           {}
func (Func) stmt()          {}
func (ExportDefault) stmt() {}
func (Return) stmt()        {}
func (ExprStmt) stmt()      {}
func (Assign) stmt()        {}
func (If) stmt()            {}
func (Try) stmt()           {}
func (Raw) stmt()           {}

func (Ident) expr()   {}
func (Str) expr()     {}
func (RawExpr) expr() {}
func (Call) expr()    {}
func (Await) expr()   {}
func (Arrow) expr()   {}
func (Object) expr()  {}
func (Array) expr()   {}

// Spaced returns stmts with a Blank between each pair.
func Spaced(stmts ...Stmt) []Stmt {
	out := make([]Stmt, 0, len(stmts)*2)
	for i, s := range stmts {
		if i > 0 {
			out = append(out, Blank{})
		}
		out = append(out, s)
	}
	return out
}

// Strings converts values to string literals.
func Strings(values []string) []Expr {
	out := make([]Expr, len(values))
	for i, v := range values {
		out[i] = Str(v)
	}
	return out
}
