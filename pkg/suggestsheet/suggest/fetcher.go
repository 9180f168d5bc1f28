// Package suggest reads search engine autocomplete suggestions through a
// browser session and picks the extreme ones.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/browser"
)

// Config describes the search page and how to find suggestions on it.
type Config struct {
	// HomeURL is the localized search home page.
	HomeURL string `yaml:"home_url"`
	// QuerySelector locates the query input.
	QuerySelector string `yaml:"query_selector"`
	// ItemSelector locates a rendered suggestion item.
	ItemSelector string `yaml:"item_selector"`
	// TextSelector locates the elements whose text is a suggestion.
	TextSelector string `yaml:"text_selector"`
	// WaitTimeout bounds each wait for the query input and the suggestion list.
	WaitTimeout time.Duration `yaml:"wait_timeout"`
}

// DefaultConfig returns the configuration for Google's English home page.
func DefaultConfig() Config {
	return Config{
		HomeURL:       "https://www.google.com/?hl=en",
		QuerySelector: `[name="q"]`,
		ItemSelector:  "li.sbct",
		TextSelector:  "li.sbct span",
		WaitTimeout:   10 * time.Second,
	}
}

// Step names a stage of a fetch, used in FetchError.
type Step string

const (
	StepNavigate Step = "navigate"
	StepInput    Step = "wait_input"
	StepType     Step = "type"
	StepList     Step = "wait_suggestions"
	StepExtract  Step = "extract"
)

// FetchError represents a failed suggestion fetch for one keyword.
type FetchError struct {
	Keyword string
	Step    Step
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch suggestions for %q (%s): %v", e.Keyword, e.Step, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a fetch. Suggestions is empty when Err is set.
type Result struct {
	Keyword     string
	Suggestions []string
	Err         error
}

// Fetcher reads suggestions for keywords, one at a time, from a single
// browser session.
type Fetcher struct {
	session browser.Session
	cfg     Config
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher. A nil logger uses slog.Default.
func NewFetcher(session browser.Session, cfg Config, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{session: session, cfg: cfg, logger: logger}
}

// Fetch returns the suggestions shown for keyword. Failures are logged and
// reported in Result.Err; they never abort the caller.
func (f *Fetcher) Fetch(ctx context.Context, keyword string) Result {
	suggestions, err := f.fetch(ctx, keyword)
	if err != nil {
		f.logger.Warn("error while fetching suggestions", "keyword", keyword, "error", err)
		return Result{Keyword: keyword, Err: err}
	}
	return Result{Keyword: keyword, Suggestions: suggestions}
}

func (f *Fetcher) fetch(ctx context.Context, keyword string) ([]string, error) {
	fail := func(step Step, err error) ([]string, error) {
		return nil, &FetchError{Keyword: keyword, Step: step, Err: err}
	}

	if err := f.session.Navigate(ctx, f.cfg.HomeURL); err != nil {
		return fail(StepNavigate, err)
	}
	if err := f.session.WaitPresent(ctx, f.cfg.QuerySelector, f.cfg.WaitTimeout); err != nil {
		return fail(StepInput, err)
	}
	// No submit: the suggestion list renders as the query is typed.
	if err := f.session.Type(ctx, f.cfg.QuerySelector, keyword); err != nil {
		return fail(StepType, err)
	}
	if err := f.session.WaitPresent(ctx, f.cfg.ItemSelector, f.cfg.WaitTimeout); err != nil {
		return fail(StepList, err)
	}

	html, err := f.session.HTML(ctx)
	if err != nil {
		return fail(StepExtract, err)
	}
	suggestions, err := ParseSuggestions(html, f.cfg.TextSelector)
	if err != nil {
		return fail(StepExtract, err)
	}
	return suggestions, nil
}
