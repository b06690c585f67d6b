package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToIdentifierCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"products", "products"},
		{"Products", "products"},
		{"client-submissions", "clientSubmissions"},
		{"client_submissions", "clientSubmissions"},
		{"Client Submissions", "clientSubmissions"},
		{"client -_ submissions", "clientSubmissions"},
		{"USER_PROFILES", "userProfiles"},
		{"a-b-c", "aBC"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToIdentifierCase(tt.input))
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Products", CapitalizeFirst("products"))
	// Internal capitals must survive.
	assert.Equal(t, "UserProfiles", CapitalizeFirst("userProfiles"))
	assert.Equal(t, "ABC", CapitalizeFirst("aBC"))
	assert.Equal(t, "Élan", CapitalizeFirst("élan"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestSuffix_SeparatorIndependent(t *testing.T) {
	for _, name := range []string{"client-submissions", "client_submissions", "Client Submissions", "CLIENT-SUBMISSIONS"} {
		assert.Equal(t, "ClientSubmissions", Suffix(name), name)
	}
}

func TestValidIdentifier(t *testing.T) {
	valid := []string{"users", "client-submissions", "order_items", "v2Orders", "A"}
	invalid := []string{"", "2fast", "-users", "user profiles", "users!", "ürün", "_private"}

	for _, name := range valid {
		assert.True(t, ValidIdentifier(name), name)
	}
	for _, name := range invalid {
		assert.False(t, ValidIdentifier(name), name)
	}
}

func TestKebabCase(t *testing.T) {
	assert.Equal(t, "welcome-email", KebabCase("welcomeEmail"))
	assert.Equal(t, "welcome-email", KebabCase("WelcomeEmail"))
	assert.Equal(t, "order-shipped", KebabCase("Order Shipped"))
	assert.Equal(t, "order-shipped", KebabCase("order__shipped"))
	assert.Equal(t, "v2-orders", KebabCase("v2Orders"))
	assert.Equal(t, "", KebabCase(""))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Client Submissions", Title("clientSubmissions"))
	assert.Equal(t, "Client Submissions", Title("client-submissions"))
	assert.Equal(t, "Users", Title("users"))
}
