package email

import (
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/input"
	"github.com/simonhull/firebird-suite/plume/internal/naming"
)

// Question keys, also used in answers files.
const (
	KeyName       = "name"
	KeySubject    = "subject"
	KeyPreheader  = "preheader"
	KeyHeading    = "heading"
	KeyBody       = "body"
	KeyCTAText    = "cta_text"
	KeyCTAURL     = "cta_url"
	KeyBrandColor = "brand_color"
	KeyStyle      = "style"
	KeyFooter     = "footer"
)

// Ask runs the email interview on top of base, which carries the configured
// defaults (brand color, company, font, output dir).
func Ask(s *input.Session, base Options) (Options, error) {
	opts := base

	name, err := s.Text(input.Question{Key: KeyName, Message: "Template name (e.g. welcome-email)"})
	if err != nil {
		return opts, err
	}
	if name == "" {
		return opts, &generator.InputError{Field: KeyName, Message: "template name is required"}
	}
	opts.Name = name

	if opts.Subject, err = s.Text(input.Question{
		Key:     KeySubject,
		Message: "Subject line",
		Default: naming.Title(name),
	}); err != nil {
		return opts, err
	}
	if opts.Preheader, err = s.Text(input.Question{Key: KeyPreheader, Message: "Preheader (inbox preview text)"}); err != nil {
		return opts, err
	}
	if opts.Heading, err = s.Text(input.Question{
		Key:     KeyHeading,
		Message: "Heading",
		Default: opts.Subject,
	}); err != nil {
		return opts, err
	}

	body, err := s.Text(input.Question{
		Key:     KeyBody,
		Message: "Body text (separate paragraphs with |, tokens like {{first_name}} are kept)",
	})
	if err != nil {
		return opts, err
	}
	opts.Paragraphs = strings.Split(body, "|")

	if opts.CTAText, err = s.Text(input.Question{Key: KeyCTAText, Message: "Button text (blank for no button)"}); err != nil {
		return opts, err
	}
	if opts.CTAText != "" {
		if opts.CTAURL, err = s.Text(input.Question{
			Key:     KeyCTAURL,
			Message: "Button URL",
			Default: "{{cta_url}}",
		}); err != nil {
			return opts, err
		}
	}

	color := base.BrandColor
	if color == "" {
		color = base.DefaultColor
	}
	if opts.BrandColor, err = s.Text(input.Question{
		Key:     KeyBrandColor,
		Message: "Brand color (hex)",
		Default: color,
	}); err != nil {
		return opts, err
	}

	if opts.Style, err = s.Choose(input.Question{
		Key:     KeyStyle,
		Message: "Style",
		Default: DefaultStyle,
	}, Styles); err != nil {
		return opts, err
	}

	footer := ""
	if base.Company != "" {
		footer = "© " + base.Company
	}
	if opts.Footer, err = s.Text(input.Question{
		Key:     KeyFooter,
		Message: "Footer text",
		Default: footer,
	}); err != nil {
		return opts, err
	}

	return opts, nil
}
