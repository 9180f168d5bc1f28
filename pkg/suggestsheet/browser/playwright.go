package browser

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// playwrightSession drives Chromium through a locally installed Playwright
// driver.
type playwrightSession struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	page       playwright.Page
	navTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

func openPlaywright(opts Options) (*playwrightSession, error) {
	runOpts := &playwright.RunOptions{
		DriverDirectory:     opts.DriverDir,
		SkipInstallBrowsers: true,
		Verbose:             false,
		Stdout:              io.Discard,
		Stderr:              io.Discard,
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     launchArgs(opts),
	}
	if opts.BrowserPath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.BrowserPath)
	}
	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Locale: playwright.String(opts.Language),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &playwrightSession{
		pw:         pw,
		browser:    browser,
		page:       page,
		navTimeout: opts.NavigationTimeout,
	}, nil
}

// launchArgs returns the Chromium command-line switches for opts.
func launchArgs(opts Options) []string {
	args := []string{"--disable-gpu", "--lang=" + opts.Language}
	if opts.NoSandbox {
		args = append(args, "--no-sandbox")
	}
	return args
}

// milliseconds converts d to Playwright's timeout unit. Zero disables the
// timeout.
func milliseconds(d time.Duration) *float64 {
	return playwright.Float(float64(d / time.Millisecond))
}

// Playwright calls are synchronous and ignore ctx; it is checked before each
// call so a cancelled run stops at the next step.

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{Timeout: milliseconds(s.navTimeout)}); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (s *playwrightSession) WaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: milliseconds(timeout),
	})
	if err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

func (s *playwrightSession) Type(ctx context.Context, selector, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	input := s.page.Locator(selector).First()
	if err := input.Fill(""); err != nil {
		return fmt.Errorf("clear %q: %w", selector, err)
	}
	// Typed key by key so the page sees input events like a user's.
	if err := input.PressSequentially(text); err != nil {
		return fmt.Errorf("type into %q: %w", selector, err)
	}
	return nil
}

func (s *playwrightSession) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	html, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return html, nil
}

func (s *playwrightSession) Close() error {
	s.closeOnce.Do(func() {
		if err := s.browser.Close(); err != nil {
			s.closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		if err := s.pw.Stop(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	})
	return s.closeErr
}
