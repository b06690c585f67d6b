package jsgen

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	indentUnit    = "  "
	maxImportLine = 100
)

var plainKey = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Print renders f as JavaScript source ending in a single newline.
func Print(f *File) string {
	p := &printer{}
	p.file(f)
	return strings.TrimRight(p.b.String(), "\n") + "\n"
}

// PrintStmts renders statements at the top level. Useful for tests and for
// composing fragments.
func PrintStmts(stmts ...Stmt) string {
	p := &printer{}
	p.stmts(stmts)
	return p.b.String()
}

type printer struct {
	b     strings.Builder
	depth int
}

func (p *printer) file(f *File) {
	for _, line := range f.Header {
		p.line("// " + line)
	}
	if len(f.Header) > 0 {
		p.newline()
	}

	for _, imp := range f.Imports {
		p.importDecl(imp)
	}
	if len(f.Imports) > 0 && len(f.Body) > 0 {
		p.newline()
	}

	p.stmts(f.Body)
}

func (p *printer) importDecl(imp Import) {
	var clause []string
	if imp.Default != "" {
		clause = append(clause, imp.Default)
	}

	if len(imp.Names) > 0 {
		named := "{ " + strings.Join(imp.Names, ", ") + " }"
		single := "import " + strings.Join(append(clause, named), ", ") + " from " + quote(imp.From)
		if len(single) <= maxImportLine {
			p.line(single)
			return
		}

		head := "import "
		if imp.Default != "" {
			head += imp.Default + ", "
		}
		p.line(head + "{")
		p.depth++
		for _, name := range imp.Names {
			p.line(name + ",")
		}
		p.depth--
		p.line("} from " + quote(imp.From))
		return
	}

	p.line("import " + strings.Join(clause, ", ") + " from " + quote(imp.From))
}

func (p *printer) stmts(stmts []Stmt) {
	for _, s := range stmts {
		p.stmt(s)
	}
}

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case Blank:
		p.newline()
	case Comment:
		for _, line := range s.Lines {
			p.line("// " + line)
		}
	case Const:
		p.doc(s.Doc)
		p.write(p.indent() + exportPrefix(s.Export) + "const " + s.Name + " = ")
		p.expr(s.Value)
		p.newline()
	case Let:
		if s.Value == nil {
			p.line("let " + s.Name)
			return
		}
		p.write(p.indent() + "let " + s.Name + " = ")
		p.expr(s.Value)
		p.newline()
	case Func:
		p.doc(s.Doc)
		head := exportPrefix(s.Export)
		if s.Async {
			head += "async "
		}
		head += "function " + s.Name + "(" + strings.Join(s.Params, ", ") + ")"
		p.block(head, s.Body)
	case ExportDefault:
		p.write(p.indent() + "export default ")
		p.expr(s.Value)
		p.newline()
	case Return:
		if s.Value == nil {
			p.line("return")
			return
		}
		p.write(p.indent() + "return ")
		p.expr(s.Value)
		p.newline()
	case ExprStmt:
		p.write(p.indent())
		p.expr(s.X)
		p.newline()
	case Assign:
		p.write(p.indent() + s.Target + " = ")
		p.expr(s.Value)
		p.newline()
	case If:
		p.line("if (" + s.Cond + ") {")
		p.body(s.Then)
		if len(s.Else) > 0 {
			p.line("} else {")
			p.body(s.Else)
		}
		p.line("}")
	case Try:
		p.line("try {")
		p.body(s.Body)
		if len(s.Catch) > 0 || s.Param != "" {
			param := s.Param
			if param == "" {
				param = "error"
			}
			p.line("} catch (" + param + ") {")
			p.body(s.Catch)
		}
		if len(s.Finally) > 0 {
			p.line("} finally {")
			p.body(s.Finally)
		}
		p.line("}")
	case Raw:
		for _, line := range dedent(s.Text) {
			if line == "" {
				p.newline()
				continue
			}
			p.line(line)
		}
	default:
		panic(fmt.Sprintf("jsgen: unknown statement %T", s))
	}
}

// block prints `head {` body `}`, collapsing an empty body to `head {}`.
func (p *printer) block(head string, body []Stmt) {
	if len(body) == 0 {
		p.line(head + " {}")
		return
	}
	p.line(head + " {")
	p.body(body)
	p.line("}")
}

func (p *printer) body(stmts []Stmt) {
	p.depth++
	p.stmts(stmts)
	p.depth--
}

func (p *printer) doc(lines []string) {
	if len(lines) == 0 {
		return
	}
	p.line("/**")
	for _, l := range lines {
		if l == "" {
			p.line(" *")
			continue
		}
		p.line(" * " + l)
	}
	p.line(" */")
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case Ident:
		p.write(string(e))
	case RawExpr:
		p.write(string(e))
	case Str:
		p.write(quote(string(e)))
	case Await:
		p.write("await ")
		p.expr(e.X)
	case Call:
		p.expr(e.Fn)
		p.write("(")
		for i, arg := range e.Args {
			if i > 0 {
				p.write(", ")
			}
			p.expr(arg)
		}
		p.write(")")
	case Arrow:
		if e.Async {
			p.write("async ")
		}
		p.write("(" + strings.Join(e.Params, ", ") + ") => ")
		if e.Body != nil {
			p.write("{\n")
			p.body(e.Body)
			p.write(p.indent() + "}")
			return
		}
		if _, ok := e.Expr.(Object); ok {
			p.write("(")
			p.expr(e.Expr)
			p.write(")")
			return
		}
		p.expr(e.Expr)
	case Object:
		p.object(e)
	case Array:
		p.write("[")
		for i, item := range e.Items {
			if i > 0 {
				p.write(", ")
			}
			p.expr(item)
		}
		p.write("]")
	default:
		panic(fmt.Sprintf("jsgen: unknown expression %T", e))
	}
}

func (p *printer) object(o Object) {
	if len(o.Entries) == 0 {
		p.write("{}")
		return
	}

	if o.Inline {
		p.write("{ ")
		for i, entry := range o.Entries {
			if i > 0 {
				p.write(", ")
			}
			p.entry(entry)
		}
		p.write(" }")
		return
	}

	p.write("{\n")
	p.depth++
	for _, entry := range o.Entries {
		p.write(p.indent())
		p.entry(entry)
		p.write(",\n")
	}
	p.depth--
	p.write(p.indent() + "}")
}

func (p *printer) entry(entry Entry) {
	switch {
	case entry.Spread:
		p.write("..." + entry.Key)
	case entry.Value == nil:
		p.write(entry.Key)
	default:
		p.write(Key(entry.Key) + ": ")
		p.expr(entry.Value)
	}
}

func (p *printer) line(s string) {
	p.b.WriteString(p.indent())
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

func (p *printer) write(s string) {
	p.b.WriteString(s)
}

func (p *printer) newline() {
	p.b.WriteByte('\n')
}

func (p *printer) indent() string {
	return strings.Repeat(indentUnit, p.depth)
}

func exportPrefix(export bool) string {
	if export {
		return "export "
	}
	return ""
}

// Key returns k as an object key, quoting it when it is not a plain identifier.
func Key(k string) string {
	if plainKey.MatchString(k) {
		return k
	}
	return quote(k)
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// dedent splits text into lines, drops leading and trailing blank lines and
// removes the indentation common to every non-blank line.
func dedent(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\t", indentUnit), "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " "))
		if common == -1 || n < common {
			common = n
		}
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out[i] = strings.TrimRight(l[common:], " ")
	}
	return out
}
