// Package suggestsheet fills a weekday worksheet with the longest and
// shortest search suggestions for each of its keywords.
package suggestsheet

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/browser"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/suggest"
	"gopkg.in/yaml.v3"
)

// DefaultBookPath is the workbook read when none is configured.
const DefaultBookPath = "excel_file.xlsx"

// Options configures a run.
type Options struct {
	// BookPath is the workbook to read and update.
	BookPath string `yaml:"book"`
	// OutputPath is where the workbook is saved. Empty overwrites BookPath.
	OutputPath string `yaml:"output,omitempty"`
	// Browser configures the browser session.
	Browser BrowserOptions `yaml:"browser"`
	// Search configures the suggestion fetcher.
	Search suggest.Config `yaml:"search"`
	// Schedule is the cron spec used by the schedule command.
	Schedule string `yaml:"schedule"`
	// Date overrides the date used to pick the weekday sheet.
	// If nil, the local wall-clock time at run start is used.
	Date *time.Time `yaml:"-"`
}

// BrowserOptions is the YAML form of browser.Options.
type BrowserOptions struct {
	Driver            string        `yaml:"driver"`
	BrowserPath       string        `yaml:"browser_path,omitempty"`
	DriverDir         string        `yaml:"driver_dir,omitempty"`
	Headless          bool          `yaml:"headless"`
	NoSandbox         bool          `yaml:"no_sandbox,omitempty"`
	Language          string        `yaml:"language"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		BookPath: DefaultBookPath,
		Browser: BrowserOptions{
			Driver:            string(browser.DriverChromedp),
			Headless:          true,
			Language:          "en-US",
			NavigationTimeout: 30 * time.Second,
		},
		Search:   suggest.DefaultConfig(),
		Schedule: "0 6 * * *",
	}
}

// LoadOptions reads a YAML config file over the defaults. A missing file
// is not an error when optional is set.
func LoadOptions(path string, optional bool) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvBook        = "SUGGESTSHEET_BOOK"
	EnvDriver      = "SUGGESTSHEET_DRIVER"
	EnvBrowserPath = "SUGGESTSHEET_BROWSER_PATH"
	EnvDriverDir   = "SUGGESTSHEET_DRIVER_DIR"
	EnvHeadless    = "SUGGESTSHEET_HEADLESS"
	EnvTimeout     = "SUGGESTSHEET_TIMEOUT"
)

// ApplyEnv overrides options from the environment, loading envFiles (or
// .env when none are given) first if present.
func (o *Options) ApplyEnv(envFiles ...string) error {
	// Missing .env files are fine.
	_ = godotenv.Load(envFiles...)

	if v := os.Getenv(EnvBook); v != "" {
		o.BookPath = v
	}
	if v := os.Getenv(EnvDriver); v != "" {
		o.Browser.Driver = v
	}
	if v := os.Getenv(EnvBrowserPath); v != "" {
		o.Browser.BrowserPath = v
	}
	if v := os.Getenv(EnvDriverDir); v != "" {
		o.Browser.DriverDir = v
	}
	if v := os.Getenv(EnvHeadless); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHeadless, err)
		}
		o.Browser.Headless = b
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		o.Search.WaitTimeout = d
	}
	return nil
}

// SavePath returns the path the workbook is saved to.
func (o Options) SavePath() string {
	if o.OutputPath != "" {
		return o.OutputPath
	}
	return o.BookPath
}

// BrowserConfig converts the browser options for browser.Open.
func (o Options) BrowserConfig() (browser.Options, error) {
	driver, err := browser.ParseDriver(o.Browser.Driver)
	if err != nil {
		return browser.Options{}, err
	}
	return browser.Options{
		Driver:            driver,
		BrowserPath:       o.Browser.BrowserPath,
		DriverDir:         o.Browser.DriverDir,
		Headless:          o.Browser.Headless,
		NoSandbox:         o.Browser.NoSandbox,
		Language:          o.Browser.Language,
		NavigationTimeout: o.Browser.NavigationTimeout,
	}, nil
}
