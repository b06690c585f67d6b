// Package function scaffolds Firebase Cloud Functions (v2 API).
//
// Each function gets its own directory under functions/src with the handler,
// a payload validator and a Jest test for the validator. The three files are
// written as one transaction.
package function

import (
	"embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/naming"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Triggers lists the supported trigger kinds.
var Triggers = []string{TriggerHTTPS, TriggerCallable, TriggerFirestore}

const (
	TriggerHTTPS     = "https"
	TriggerCallable  = "callable"
	TriggerFirestore = "firestore"

	// DefaultTrigger is used when no valid trigger is given.
	DefaultTrigger = TriggerCallable
	DefaultRegion  = "us-central1"
	DefaultRuntime = "nodejs20"
)

var fieldName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Options are the answers and settings for one function.
type Options struct {
	Name        string   // identifier; the directory name under functions/src
	Trigger     string   // one of Triggers; anything else is DefaultTrigger
	DocPath     string   // document path for firestore triggers, e.g. orders/{orderId}
	Region      string   // "" is DefaultRegion
	Runtime     string   // "" is DefaultRuntime
	Fields      []string // required payload fields
	RequireAuth bool     // reject unauthenticated callers (https and callable only)
	Roles       []string // allowed custom-claim roles; empty allows any signed-in user

	Dir string // output root; "" is the working directory
}

// Trigger normalizes t, falling back to DefaultTrigger.
func Trigger(t string) string {
	for _, known := range Triggers {
		if strings.EqualFold(known, strings.TrimSpace(t)) {
			return known
		}
	}
	return DefaultTrigger
}

// DefaultDocPath is the document path suggested for a firestore trigger.
func DefaultDocPath(name string) string {
	return naming.ToIdentifierCase(name) + "/{docId}"
}

type templateData struct {
	Export       string
	Trigger      string
	TriggerLabel string
	DocPath      string
	Region       string
	NodeVersion  string
	Fields       []string
	RequireAuth  bool
	VerifyToken  bool
	Roles        []string
}

// Generator scaffolds Cloud Functions
type Generator struct {
	renderer *generator.Renderer
	log      logger.Logger
}

// New creates a new function generator. A nil log is silent.
func New(log logger.Logger) *Generator {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Generator{
		renderer: generator.NewRenderer(),
		log:      log,
	}
}

// Dir returns the directory a function's files are written to.
func Dir(root, name string) string {
	return filepath.Join(root, "functions", "src", name)
}

// ExportName is the exported handler name, a valid JavaScript identifier.
func ExportName(name string) string {
	return naming.ToIdentifierCase(name)
}

// ExportLine is the line that registers the function in functions/index.js.
func ExportLine(name string) string {
	export := ExportName(name)
	return fmt.Sprintf("exports.%s = require('./src/%s').%s", export, name, export)
}

// Generate validates opts and renders the handler, validator and test.
func (g *Generator) Generate(opts Options) ([]*generator.WriteFileOp, error) {
	data, err := g.plan(opts)
	if err != nil {
		return nil, err
	}

	dir := Dir(opts.Dir, opts.Name)
	files := []struct {
		tmpl string
		path string
	}{
		{"templates/index.js.tmpl", filepath.Join(dir, "index.js")},
		{"templates/validate.js.tmpl", filepath.Join(dir, "validate.js")},
		{"templates/test.js.tmpl", filepath.Join(dir, opts.Name+".test.js")},
	}

	ops := make([]*generator.WriteFileOp, 0, len(files))
	for _, f := range files {
		content, err := g.renderer.RenderFS(templatesFS, f.tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", filepath.Base(f.path), err)
		}
		ops = append(ops, generator.NewWriteFile(f.path, string(content)))
	}

	g.log.Debug("composed function",
		logger.F("name", opts.Name),
		logger.F("trigger", data.Trigger),
		logger.F("fields", len(data.Fields)))
	return ops, nil
}

// plan validates opts and derives the template data.
func (g *Generator) plan(opts Options) (templateData, error) {
	if opts.Name == "" {
		return templateData{}, &generator.InputError{Field: KeyName, Message: "function name is required"}
	}
	if !naming.ValidIdentifier(opts.Name) {
		return templateData{}, &generator.InputError{
			Field:      KeyName,
			Message:    fmt.Sprintf("invalid function name %q", opts.Name),
			Suggestion: "start with a letter and use only letters, digits, '_' or '-' (e.g. send-welcome)",
		}
	}

	trigger := Trigger(opts.Trigger)
	data := templateData{
		Export:      ExportName(opts.Name),
		Trigger:     trigger,
		Region:      opts.Region,
		NodeVersion: strings.TrimPrefix(opts.Runtime, "nodejs"),
	}
	if data.Region == "" {
		data.Region = DefaultRegion
	}
	if opts.Runtime == "" {
		data.NodeVersion = strings.TrimPrefix(DefaultRuntime, "nodejs")
	}

	var bad []string
	for _, f := range opts.Fields {
		if !fieldName.MatchString(f) {
			bad = append(bad, fmt.Sprintf("%q", f))
		}
	}
	if len(bad) > 0 {
		return templateData{}, &generator.InputError{
			Field:   KeyFields,
			Message: fmt.Sprintf("invalid field name(s) %s: fields must be JavaScript identifiers", strings.Join(bad, ", ")),
		}
	}
	data.Fields = opts.Fields

	switch trigger {
	case TriggerFirestore:
		data.TriggerLabel = "Firestore"
		data.DocPath = opts.DocPath
		if data.DocPath == "" {
			data.DocPath = DefaultDocPath(opts.Name)
		}
		if err := checkDocPath(data.DocPath); err != nil {
			return templateData{}, err
		}
		if opts.RequireAuth || len(opts.Roles) > 0 {
			g.log.Warn("auth checks do not apply to firestore triggers", logger.F("name", opts.Name))
		}
	default:
		if len(opts.Fields) == 0 {
			return templateData{}, &generator.InputError{
				Field:      KeyFields,
				Message:    fmt.Sprintf("%s functions need at least one required field", trigger),
				Suggestion: "list the payload fields the function reads, e.g. email, displayName",
			}
		}
		data.TriggerLabel = "Callable"
		if trigger == TriggerHTTPS {
			data.TriggerLabel = "HTTPS"
		}
		data.RequireAuth = opts.RequireAuth
		if opts.RequireAuth {
			data.Roles = opts.Roles
			data.VerifyToken = trigger == TriggerHTTPS
		}
	}

	return data, nil
}

// checkDocPath requires a document path: an even number of non-empty
// segments such as users/{userId} or users/{userId}/posts/{postId}.
func checkDocPath(path string) error {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for _, s := range segments {
		if s == "" {
			return &generator.InputError{Field: KeyDocPath, Message: fmt.Sprintf("invalid document path %q: empty segment", path)}
		}
	}
	if len(segments)%2 != 0 {
		return &generator.InputError{
			Field:      KeyDocPath,
			Message:    fmt.Sprintf("invalid document path %q: must point at a document, not a collection", path),
			Suggestion: "end the path with a document id wildcard, e.g. orders/{orderId}",
		}
	}
	return nil
}
