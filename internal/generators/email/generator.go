// Package email generates standalone HTML email templates.
//
// Output is a table-based, inline-styled document that renders in the common
// mail clients. Merge tokens such as {{first_name}} in any answer are passed
// through untouched for the sending service to fill in.
package email

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

// Styles lists the supported layouts.
var Styles = []string{"minimal", "branded", "card"}

const (
	// DefaultStyle is used when no valid style is given.
	DefaultStyle = "branded"
	// DefaultBrandColor is used when neither the answer nor plume.yml gives a
	// valid hex color.
	DefaultBrandColor = "#4F46E5"
	// DefaultFont is the font stack used when plume.yml does not set one.
	DefaultFont = "Helvetica, Arial, sans-serif"
)

var (
	hexColor    = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)
)

// Options are the answers and settings for one email template.
type Options struct {
	Name       string   // identifier, used for the file name
	Subject    string   // "" uses the title-cased name
	Preheader  string   // inbox preview text
	Heading    string   // "" uses the subject
	Paragraphs []string // body text, one entry per paragraph
	CTAText    string   // button label; "" omits the button
	CTAURL     string   // button target; "" leaves a {{cta_url}} token
	BrandColor string   // hex color; invalid values fall back to DefaultColor
	Style      string   // one of Styles; anything else is DefaultStyle
	Footer     string
	Company    string // shown in the branded banner
	Font       string // CSS font stack; "" is DefaultFont

	DefaultColor string // fallback for BrandColor; "" is DefaultBrandColor
	Dir          string // output root; "" is the working directory
}

// look holds the inline style fragments that differ between layouts.
type look struct {
	PageBackground string
	OuterPadding   string
	Container      string
	HeadingColor   string
	ButtonCell     string
	ButtonLink     string
	Banner         bool
}

func lookFor(style, brand string) look {
	link := "display:inline-block;padding:12px 24px;font-size:16px;font-weight:bold;text-decoration:none;"
	switch style {
	case "minimal":
		return look{
			PageBackground: "#FFFFFF",
			OuterPadding:   "24px 0",
			HeadingColor:   "#111827",
			ButtonCell:     fmt.Sprintf("border:2px solid %s;border-radius:4px;", brand),
			ButtonLink:     link + "color:" + brand + ";",
		}
	case "card":
		return look{
			PageBackground: "#F3F4F6",
			OuterPadding:   "40px 16px",
			Container:      fmt.Sprintf("background-color:#FFFFFF;border:1px solid #E5E7EB;border-top:4px solid %s;border-radius:8px;", brand),
			HeadingColor:   "#111827",
			ButtonCell:     fmt.Sprintf("background-color:%s;border-radius:6px;", brand),
			ButtonLink:     link + "color:#FFFFFF;",
		}
	default:
		return look{
			PageBackground: "#F3F4F6",
			OuterPadding:   "24px 0",
			Container:      "background-color:#FFFFFF;",
			HeadingColor:   brand,
			ButtonCell:     fmt.Sprintf("background-color:%s;border-radius:4px;", brand),
			ButtonLink:     link + "color:#FFFFFF;",
			Banner:         true,
		}
	}
}

type templateData struct {
	Subject    string
	Preheader  string
	Heading    string
	Banner     string
	Paragraphs []string
	CTAText    string
	CTAURL     string
	Footer     string
	Brand      string
	Font       string
	Style      string
	Look       look
}

// Generator generates email templates
type Generator struct {
	renderer *generator.Renderer
	log      logger.Logger
}

// New creates a new email generator. A nil log is silent.
func New(log logger.Logger) *Generator {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Generator{
		renderer: generator.NewRenderer(),
		log:      log,
	}
}

// Path returns where the template for name is written.
func Path(dir, name string) string {
	return filepath.Join(dir, "emails", naming.KebabCase(name)+".html")
}

// Generate validates opts and renders the template.
func (g *Generator) Generate(opts Options) ([]generator.Operation, error) {
	if opts.Name == "" {
		return nil, &generator.InputError{Field: KeyName, Message: "template name is required"}
	}
	if !naming.ValidIdentifier(opts.Name) {
		return nil, &generator.InputError{
			Field:      KeyName,
			Message:    fmt.Sprintf("invalid template name %q", opts.Name),
			Suggestion: "start with a letter and use only letters, digits, '_' or '-' (e.g. welcome-email)",
		}
	}

	data := g.data(opts)
	content, err := g.renderer.RenderFS(templatesFS, "templates/email.html.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("rendering email %s: %w", opts.Name, err)
	}

	g.log.Debug("composed email",
		logger.F("name", opts.Name),
		logger.F("style", data.Style),
		logger.F("bytes", len(content)))

	return []generator.Operation{
		generator.NewWriteFile(Path(opts.Dir, opts.Name), string(content)),
	}, nil
}

func (g *Generator) data(opts Options) templateData {
	style := DefaultStyle
	for _, s := range Styles {
		if strings.EqualFold(s, strings.TrimSpace(opts.Style)) {
			style = s
		}
	}

	fallback := opts.DefaultColor
	if !hexColor.MatchString(fallback) {
		fallback = DefaultBrandColor
	}
	brand := strings.TrimSpace(opts.BrandColor)
	switch {
	case brand == "":
		brand = fallback
	case !hexColor.MatchString(brand):
		g.log.Warn("invalid brand color, using default",
			logger.F("color", brand),
			logger.F("default", fallback))
		brand = fallback
	}

	subject := opts.Subject
	if subject == "" {
		subject = naming.Title(opts.Name)
	}
	heading := opts.Heading
	if heading == "" {
		heading = subject
	}
	banner := opts.Company
	if banner == "" {
		banner = naming.Title(opts.Name)
	}
	font := opts.Font
	if font == "" {
		font = DefaultFont
	}

	data := templateData{
		Subject:   subject,
		Preheader: opts.Preheader,
		Heading:   heading,
		Banner:    banner,
		CTAText:   opts.CTAText,
		CTAURL:    opts.CTAURL,
		Footer:    opts.Footer,
		Brand:     brand,
		Font:      font,
		Style:     style,
		Look:      lookFor(style, brand),
	}
	for _, p := range opts.Paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			data.Paragraphs = append(data.Paragraphs, p)
		}
	}
	if data.CTAText != "" && data.CTAURL == "" {
		data.CTAURL = "{{cta_url}}"
	}
	return data
}

// Placeholders returns the merge token names in content, in order of first
// appearance.
func Placeholders(content string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholder.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
