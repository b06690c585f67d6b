package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output into a buffer for the duration of f.
func capture(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	defer SetWriter(prev)
	f()
	return buf.String()
}

func TestSuccess(t *testing.T) {
	out := capture(t, func() { Success("Test message") })

	assert.Contains(t, out, "🔥")
	assert.Contains(t, out, "Test message")
}

func TestError(t *testing.T) {
	out := capture(t, func() { Error("Error message") })

	assert.Contains(t, out, "❌")
	assert.Contains(t, out, "Error message")
}

func TestFailure_WritesToErrorWriter(t *testing.T) {
	var errBuf bytes.Buffer
	prev := SetErrorWriter(&errBuf)
	defer SetErrorWriter(prev)

	out := capture(t, func() { Failure(errors.New("store name is required")) })

	assert.Empty(t, out)
	assert.Contains(t, errBuf.String(), "❌ Error: store name is required")
}

func TestWarn(t *testing.T) {
	out := capture(t, func() { Warn("careful") })

	assert.Contains(t, out, "careful")
}

func TestInfoAndStep(t *testing.T) {
	out := capture(t, func() {
		Info("Next steps:")
		Step("npm install")
	})

	assert.Contains(t, out, "Next steps:")
	assert.Contains(t, out, "   npm install")
}

func TestVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(false)
	assert.Empty(t, capture(t, func() { Verbose("hidden") }))

	SetVerbose(true)
	assert.Contains(t, capture(t, func() { Verbose("shown") }), "shown")
}

func TestSetWriter_NilRestoresStdout(t *testing.T) {
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	defer SetWriter(prev)

	SetWriter(nil)
	assert.NotEqual(t, &buf, Writer())
}
