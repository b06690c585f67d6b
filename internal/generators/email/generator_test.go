package email_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/generators/email"
	"github.com/simonhull/firebird-suite/plume/internal/input"
)

func render(t *testing.T, opts email.Options) (string, string) {
	t.Helper()
	ops, err := email.New(nil).Generate(opts)
	require.NoError(t, err)
	require.Len(t, ops, 1)

	op := ops[0].(*generator.WriteFileOp)
	return filepath.ToSlash(op.Path), string(op.Content)
}

func TestGenerate_Path(t *testing.T) {
	path, _ := render(t, email.Options{Name: "welcomeEmail"})
	assert.Equal(t, "emails/welcome-email.html", path)

	path, _ = render(t, email.Options{Name: "password_reset", Dir: "web"})
	assert.Equal(t, "web/emails/password-reset.html", path)
}

func TestGenerate_PreservesPlaceholders(t *testing.T) {
	_, html := render(t, email.Options{
		Name:       "welcome",
		Subject:    "Welcome, {{first_name}}!",
		Paragraphs: []string{"Hi {{first_name}},", "Your code is {{ code }}."},
		CTAText:    "Get started",
	})

	assert.Contains(t, html, "<title>Welcome, {{first_name}}!</title>")
	assert.Contains(t, html, "<p style=\"margin:0 0 16px;\">Hi {{first_name}},</p>")
	assert.Contains(t, html, `href="{{cta_url}}"`)
	assert.Contains(t, html, `href="{{unsubscribe_url}}"`)
	assert.Equal(t, []string{"first_name", "code", "cta_url", "unsubscribe_url"}, email.Placeholders(html))
}

func TestGenerate_EscapesMarkup(t *testing.T) {
	_, html := render(t, email.Options{
		Name:       "notice",
		Heading:    "Terms & <Conditions>",
		Paragraphs: []string{`Click "here"`},
	})

	assert.Contains(t, html, "Terms &amp; &lt;Conditions&gt;")
	assert.Contains(t, html, "Click &#34;here&#34;")
	assert.NotContains(t, html, "<Conditions>")
}

func TestGenerate_Styles(t *testing.T) {
	tests := []struct {
		style    string
		contains string
		banner   bool
	}{
		{"minimal", "border:2px solid #FF0000", false},
		{"branded", "background-color:#FF0000;padding:24px 32px", true},
		{"card", "border-top:4px solid #FF0000;border-radius:8px", false},
		{"CARD", "border-top:4px solid #FF0000", false},
		{"fancy", "background-color:#FF0000;padding:24px 32px", true},
		{"", "background-color:#FF0000;padding:24px 32px", true},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			_, html := render(t, email.Options{
				Name:       "promo",
				Company:    "Acme",
				BrandColor: "#FF0000",
				Style:      tt.style,
				CTAText:    "Shop now",
				CTAURL:     "https://example.com",
			})
			assert.Contains(t, html, tt.contains)
			if tt.banner {
				assert.Contains(t, html, ">Acme</td>")
			} else {
				assert.NotContains(t, html, ">Acme</td>")
			}
		})
	}
}

func TestGenerate_BrandColorFallback(t *testing.T) {
	tests := []struct {
		name     string
		color    string
		fallback string
		want     string
	}{
		{"valid long", "#12ab9F", "", "#12ab9F"},
		{"valid short", "#abc", "", "#abc"},
		{"invalid uses config default", "blue", "#00FF00", "#00FF00"},
		{"blank uses config default", "", "#00FF00", "#00FF00"},
		{"invalid with invalid default", "#12345", "nope", email.DefaultBrandColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, html := render(t, email.Options{
				Name:         "promo",
				Style:        "branded",
				BrandColor:   tt.color,
				DefaultColor: tt.fallback,
			})
			assert.Contains(t, html, "background-color:"+tt.want+";padding:24px 32px")
		})
	}
}

func TestGenerate_OptionalParts(t *testing.T) {
	_, html := render(t, email.Options{Name: "plain", Paragraphs: []string{"", "  "}})

	assert.NotContains(t, html, "<a href=\"{{cta_url}}\"")
	assert.NotContains(t, html, "display:none;max-height:0")
	assert.NotContains(t, html, "<p style=\"margin:0 0 16px;\">")
	assert.Contains(t, html, "<title>Plain</title>")
	assert.Contains(t, html, "Helvetica, Arial, sans-serif")
	assert.True(t, strings.HasSuffix(html, "</html>\n"))
}

func TestGenerate_InvalidName(t *testing.T) {
	for _, name := range []string{"", "welcome email", "1st", "hi!"} {
		t.Run(name, func(t *testing.T) {
			ops, err := email.New(nil).Generate(email.Options{Name: name})
			require.Error(t, err)
			assert.Nil(t, ops)
			assert.ErrorIs(t, err, generator.ErrInput)

			var inputErr *generator.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, email.KeyName, inputErr.Field)
		})
	}
}

func TestAsk(t *testing.T) {
	script := strings.Join([]string{
		"welcome-email",
		"",
		"Glad you're here",
		"",
		"Hi {{first_name}}, | Thanks for joining.",
		"Open app",
		"",
		"not-a-color",
		"card",
		"",
	}, "\n") + "\n"

	var prompts bytes.Buffer
	s := input.NewSession(input.NewLinePrompter(strings.NewReader(script), &prompts), nil)
	opts, err := email.Ask(s, email.Options{DefaultColor: "#4F46E5", Company: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, "welcome-email", opts.Name)
	assert.Equal(t, "Welcome Email", opts.Subject)
	assert.Equal(t, "Glad you're here", opts.Preheader)
	assert.Equal(t, "Welcome Email", opts.Heading)
	assert.Equal(t, []string{"Hi {{first_name}}, ", " Thanks for joining."}, opts.Paragraphs)
	assert.Equal(t, "Open app", opts.CTAText)
	assert.Equal(t, "{{cta_url}}", opts.CTAURL)
	assert.Equal(t, "not-a-color", opts.BrandColor)
	assert.Equal(t, "card", opts.Style)
	assert.Equal(t, "© Acme", opts.Footer)
	assert.Contains(t, prompts.String(), "Style [minimal/branded/card] (branded):")

	_, html := render(t, opts)
	assert.Contains(t, html, "border-top:4px solid #4F46E5")
	assert.Contains(t, html, "<p style=\"margin:0 0 16px;\">Thanks for joining.</p>")
}

func TestAsk_NoButtonSkipsURL(t *testing.T) {
	script := "digest\nWeekly digest\n\n\nNews.\n\n#000\nminimal\nBye\n"
	var prompts bytes.Buffer
	s := input.NewSession(input.NewLinePrompter(strings.NewReader(script), &prompts), nil)

	opts, err := email.Ask(s, email.Options{})
	require.NoError(t, err)
	assert.Empty(t, opts.CTAText)
	assert.Empty(t, opts.CTAURL)
	assert.NotContains(t, prompts.String(), "Button URL")
	assert.Equal(t, "#000", opts.BrandColor)
	assert.Equal(t, "Bye", opts.Footer)
}

func TestAsk_MissingName(t *testing.T) {
	s := input.NewSession(input.NewLinePrompter(strings.NewReader("\n"), &bytes.Buffer{}), nil)
	_, err := email.Ask(s, email.Options{})
	assert.ErrorIs(t, err, generator.ErrInput)
}
