package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/plume/internal/commands"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/input"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

type result struct {
	out string
	err error
}

// runCLI runs plume in a fresh working directory with stdin set to script.
func runCLI(t *testing.T, script string, args ...string) result {
	t.Helper()
	t.Cleanup(func() { output.SetWriter(nil) })

	var out, errOut bytes.Buffer
	app := commands.NewApp()
	app.SetArgs(args)
	app.SetIn(strings.NewReader(script))
	app.SetOut(&out)
	app.SetErr(&errOut)

	err := app.Execute()
	return result{out: out.String(), err: err}
}

func TestStoreCmd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	res := runCLI(t, "shop\nproducts, orders\nn\n", "store")
	require.NoError(t, res.err)

	root := filepath.Join(dir, "stores", "shop")
	assert.FileExists(t, filepath.Join(root, "index.js"))
	assert.FileExists(t, filepath.Join(root, "actions", "orders.js"))
	assert.NoFileExists(t, filepath.Join(root, "activityLogger.js"))

	assert.Contains(t, res.out, "Store name (e.g. shop):")
	assert.Contains(t, res.out, "✓ Create")
	assert.Contains(t, res.out, "Generated store shop (6 files)")
	assert.Contains(t, res.out, "import { useShopStore } from '@/stores/shop'")
}

func TestStoreCmd_InvalidCollection(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	res := runCLI(t, "shop\nproducts, 2fast\nn\n", "store")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, generator.ErrInput)
	assert.Contains(t, res.err.Error(), `"2fast"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	res := runCLI(t, "shop\nusers\nadmin\ny\n", "store", "--dry-run")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "✓ [DRY RUN] Create stores/shop/activityLogger.js")
	assert.NotContains(t, res.out, "Generated store")

	_, err := os.Stat(filepath.Join(dir, "stores"))
	assert.True(t, os.IsNotExist(err))
}

func TestStoreCmd_AnswersAndConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile("plume.yml", []byte(`
output:
  dir: src
  extension: ts
auth:
  collections: [staff]
`), 0644))
	require.NoError(t, os.WriteFile("shop.yml", []byte(`
store: shop
collections: [staff, products]
roles: [manager]
logging: true
`), 0644))

	res := runCLI(t, "", "store", "--answers", "shop.yml", "--save-answers", "saved.yml")
	require.NoError(t, res.err)
	assert.NotContains(t, res.out, "Store name")

	index, err := os.ReadFile(filepath.Join(dir, "src", "stores", "shop", "index.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "assignStaffRoles")
	assert.Contains(t, string(index), "const ADMIN_ROLE = 'manager'")

	saved, err := input.LoadAnswers("saved.yml")
	require.NoError(t, err)
	assert.Equal(t, input.Answers{
		"store":       "shop",
		"collections": "staff, products",
		"roles":       "manager",
		"logging":     "y",
	}, saved)
}

func TestStoreCmd_SkipKeepsEditedFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runCLI(t, "shop\norders\nn\n", "store").err)

	state := filepath.Join(dir, "stores", "shop", "state.js")
	require.NoError(t, os.WriteFile(state, []byte("// edited\n"), 0644))

	res := runCLI(t, "shop\norders\nn\n", "store", "--skip")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "⊘ Skip stores/shop/state.js (kept existing)")
	assert.Contains(t, res.out, "✓ Unchanged stores/shop/index.js")

	data, err := os.ReadFile(state)
	require.NoError(t, err)
	assert.Equal(t, "// edited\n", string(data))
}

func TestStoreCmd_ConflictingFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	res := runCLI(t, "", "store", "--skip", "--diff")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, generator.ErrInput)
	assert.Contains(t, res.err.Error(), "mutually exclusive")
}

func TestStoreCmd_MissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	res := runCLI(t, "", "store", "--config", "nope.yml")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "loading config")
}

func TestEmailCmd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile("welcome.yml", []byte(`
name: welcomeEmail
subject: "Welcome, {{first_name}}"
body: "Thanks for joining."
cta_text: Get started
cta_url: https://example.com/start
style: card
`), 0644))

	res := runCLI(t, "", "email", "--answers", "welcome.yml")
	require.NoError(t, res.err)

	html, err := os.ReadFile(filepath.Join(dir, "emails", "welcome-email.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Welcome, {{first_name}}</title>")
	assert.Contains(t, string(html), `href="https://example.com/start"`)
	assert.Contains(t, res.out, "Merge tokens: first_name, unsubscribe_url")
}

func TestFunctionCmd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	res := runCLI(t, "send-welcome\nhttps\n\nemail\ny\n\n", "function")
	require.NoError(t, res.err)

	fnDir := filepath.Join(dir, "functions", "src", "send-welcome")
	for _, f := range []string{"index.js", "validate.js", "send-welcome.test.js"} {
		assert.FileExists(t, filepath.Join(fnDir, f))
	}
	index, err := os.ReadFile(filepath.Join(fnDir, "index.js"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "const REGION = 'us-central1'")
	assert.Contains(t, string(index), "verifyIdToken")

	assert.Contains(t, res.out, "exports.sendWelcome = require('./src/send-welcome').sendWelcome")
}

func TestFunctionCmd_NoFields(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	res := runCLI(t, "ping\ncallable\n\n\nn\n", "function")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, generator.ErrInput)

	_, err := os.Stat(filepath.Join(dir, "functions"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ReportsFailureOnStderr(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(func() { output.SetWriter(nil) })

	var out, errOut bytes.Buffer
	app := commands.NewApp()
	app.SetArgs([]string{"store"})
	app.SetIn(strings.NewReader("shop\n2fast\nn\n"))
	app.SetOut(&out)
	app.SetErr(&errOut)

	assert.Equal(t, 1, commands.Run(app))
	assert.Contains(t, errOut.String(), "❌ Error: ")
	assert.Contains(t, errOut.String(), `"2fast"`)
	assert.NotContains(t, out.String(), "❌ Error:")
}

func TestRun_Success(t *testing.T) {
	var out bytes.Buffer
	app := commands.NewApp()
	app.SetArgs([]string{"--version"})
	app.SetOut(&out)
	app.SetErr(&out)

	assert.Equal(t, 0, commands.Run(app))
	assert.Contains(t, out.String(), "plume version")
}

func TestRootCmd_Version(t *testing.T) {
	res := runCLI(t, "", "--version")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "plume version")
}
