package suggestsheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/browser"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultBookPath, opts.BookPath)
	assert.Equal(t, DefaultBookPath, opts.SavePath())
	assert.True(t, opts.Browser.Headless)
	assert.Equal(t, 10*time.Second, opts.Search.WaitTimeout)
	assert.Equal(t, "https://www.google.com/?hl=en", opts.Search.HomeURL)

	bopts, err := opts.BrowserConfig()
	require.NoError(t, err)
	assert.Equal(t, browser.DriverChromedp, bopts.Driver)
	assert.Equal(t, "en-US", bopts.Language)
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestsheet.yaml")
	config := `book: keywords.xlsx
output: out.xlsx
browser:
  driver: playwright
  driver_dir: /opt/playwright
  headless: false
search:
  wait_timeout: 5s
schedule: "30 7 * * 1-5"
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0644))

	opts, err := LoadOptions(path, false)
	require.NoError(t, err)
	assert.Equal(t, "keywords.xlsx", opts.BookPath)
	assert.Equal(t, "out.xlsx", opts.SavePath())
	assert.Equal(t, "playwright", opts.Browser.Driver)
	assert.Equal(t, "/opt/playwright", opts.Browser.DriverDir)
	assert.False(t, opts.Browser.Headless)
	assert.Equal(t, 5*time.Second, opts.Search.WaitTimeout)
	assert.Equal(t, "30 7 * * 1-5", opts.Schedule)
	// Unset keys keep their defaults
	assert.Equal(t, "li.sbct", opts.Search.ItemSelector)
	assert.Equal(t, 30*time.Second, opts.Browser.NavigationTimeout)
}

func TestLoadOptionsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.yaml")

	opts, err := LoadOptions(path, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	_, err = LoadOptions(path, false)
	assert.Error(t, err)
}

func TestLoadOptionsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser: [1, 2"), 0644))

	_, err := LoadOptions(path, false)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvBook, "env.xlsx")
	t.Setenv(EnvDriver, "playwright")
	t.Setenv(EnvBrowserPath, "/usr/bin/chromium")
	t.Setenv(EnvHeadless, "false")
	t.Setenv(EnvTimeout, "3s")

	opts := DefaultOptions()
	require.NoError(t, opts.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "env.xlsx", opts.BookPath)
	assert.Equal(t, "playwright", opts.Browser.Driver)
	assert.Equal(t, "/usr/bin/chromium", opts.Browser.BrowserPath)
	assert.False(t, opts.Browser.Headless)
	assert.Equal(t, 3*time.Second, opts.Search.WaitTimeout)
}

func TestApplyEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SUGGESTSHEET_DRIVER_DIR=/srv/driver\n"), 0644))
	// Registered so the variable set by godotenv is removed after the test.
	t.Setenv(EnvDriverDir, "")
	os.Unsetenv(EnvDriverDir)

	opts := DefaultOptions()
	require.NoError(t, opts.ApplyEnv(envFile))
	assert.Equal(t, "/srv/driver", opts.Browser.DriverDir)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv(EnvHeadless, "maybe")
	opts := DefaultOptions()
	assert.Error(t, opts.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
}
