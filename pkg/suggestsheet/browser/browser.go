// Package browser launches and drives the headless browser used to read
// search suggestions.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Driver names a browser automation backend.
type Driver string

const (
	// DriverChromedp drives Chrome over the DevTools protocol.
	DriverChromedp Driver = "chromedp"
	// DriverPlaywright drives Chromium through the Playwright driver.
	DriverPlaywright Driver = "playwright"
)

// ErrUnknownDriver indicates an unsupported Driver value.
var ErrUnknownDriver = errors.New("unknown browser driver")

// Options configures the browser launch.
type Options struct {
	// Driver selects the automation backend. Defaults to DriverChromedp.
	Driver Driver
	// BrowserPath is the browser executable. Empty means auto-detect.
	BrowserPath string
	// DriverDir is the directory holding the Playwright driver.
	DriverDir string
	// Headless runs the browser without a window.
	Headless bool
	// NoSandbox disables the Chrome sandbox (needed in some containers).
	NoSandbox bool
	// Language is the UI language forced on the browser, e.g. "en-US".
	Language string
	// NavigationTimeout bounds a single page load.
	NavigationTimeout time.Duration
}

// Session is an open browser with a single page.
// Selectors are CSS selectors.
type Session interface {
	// Navigate loads url in the page.
	Navigate(ctx context.Context, url string) error
	// WaitPresent blocks until selector matches an element in the DOM or
	// timeout elapses.
	WaitPresent(ctx context.Context, selector string, timeout time.Duration) error
	// Type clears the element matching selector and types text into it.
	Type(ctx context.Context, selector, text string) error
	// HTML returns the current serialized document.
	HTML(ctx context.Context) (string, error)
	// Close shuts the browser down. Calling it more than once is a no-op.
	Close() error
}

// Open launches a browser with the configured driver.
func Open(ctx context.Context, opts Options) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Language == "" {
		opts.Language = "en-US"
	}

	switch opts.Driver {
	case DriverChromedp, "":
		return openChromedp(opts)
	case DriverPlaywright:
		return openPlaywright(opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}

// ParseDriver validates a driver name.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(s); d {
	case DriverChromedp, DriverPlaywright:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %s (must be chromedp or playwright)", ErrUnknownDriver, s)
	}
}
