// Package naming derives JavaScript identifiers from user-supplied names.
//
// Collection names arrive in whatever shape the developer typed them:
// "client-submissions", "client_submissions" or "Client Submissions". Every
// generated member name is built from the same PascalCase suffix so the three
// spellings above produce identical output.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	separators = regexp.MustCompile(`[-\s_]+`)

	// identifierPattern is the accepted shape for collection and store names.
	identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// ToIdentifierCase converts separator-delimited text to lowerCamelCase.
// The input is split on runs of hyphens, underscores and whitespace, every
// token is lower-cased, and all tokens but the first get an upper-case first
// letter. A single word is returned lower-cased. Empty input returns "".
//
//	ToIdentifierCase("client-submissions") // clientSubmissions
//	ToIdentifierCase("Client Submissions") // clientSubmissions
func ToIdentifierCase(s string) string {
	if s == "" {
		return ""
	}

	parts := separators.Split(s, -1)
	var b strings.Builder
	for i, part := range parts {
		part = strings.ToLower(part)
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(CapitalizeFirst(part))
	}
	return b.String()
}

// CapitalizeFirst upper-cases the first rune and leaves the rest untouched,
// so "userProfiles" becomes "UserProfiles" rather than "Userprofiles".
// Empty input returns "".
func CapitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Suffix returns the PascalCase suffix used to build member names for a
// collection: CapitalizeFirst(ToIdentifierCase(name)).
func Suffix(name string) string {
	return CapitalizeFirst(ToIdentifierCase(name))
}

// ValidIdentifier reports whether name starts with a letter and contains only
// letters, digits, underscores and hyphens.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// KebabCase converts camelCase, PascalCase or separator-delimited text to
// kebab-case: "welcomeEmail" → "welcome-email", "Order Shipped" → "order-shipped".
func KebabCase(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteRune('-')
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Title turns an identifier into a heading: "clientSubmissions" and
// "client-submissions" both become "Client Submissions".
func Title(s string) string {
	words := strings.Split(KebabCase(s), "-")
	for i, w := range words {
		words[i] = CapitalizeFirst(w)
	}
	return strings.Join(words, " ")
}
