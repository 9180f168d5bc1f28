// Package browsertest provides an in-memory browser.Session for tests.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrTimeout is returned by WaitPresent for selectors the page never renders.
var ErrTimeout = errors.New("browsertest: wait timed out")

// Session is a fake browser.Session. Typing a keyword "renders" the page in
// Pages[keyword]; a keyword with no entry renders nothing, so waiting for
// suggestions times out.
type Session struct {
	// Pages maps a typed keyword to the document returned by HTML.
	Pages map[string]string
	// NavigateErr, if set, is returned by every Navigate call.
	NavigateErr error
	// InputSelector is the selector that is present right after navigation.
	InputSelector string

	mu     sync.Mutex
	typed  string
	loaded bool
	calls  []string
	closed int
}

// New returns a fake whose query input matches inputSelector.
func New(inputSelector string, pages map[string]string) *Session {
	return &Session{Pages: pages, InputSelector: inputSelector}
}

func (s *Session) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("navigate %s", url)
	if s.NavigateErr != nil {
		return s.NavigateErr
	}
	s.loaded = true
	s.typed = ""
	return ctx.Err()
}

func (s *Session) WaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("wait %s %s", selector, timeout)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.loaded {
		return ErrTimeout
	}
	if selector == s.InputSelector {
		return nil
	}
	if _, ok := s.Pages[s.typed]; ok && s.typed != "" {
		return nil
	}
	return ErrTimeout
}

func (s *Session) Type(ctx context.Context, selector, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("type %s %s", selector, text)
	s.typed = text
	return ctx.Err()
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("html")
	return s.Pages[s.typed], ctx.Err()
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// Calls returns the recorded calls, one line each.
func (s *Session) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Closed returns how many times Close was called.
func (s *Session) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SuggestionPage renders a minimal results page with one suggestion item
// per entry, using the same markup as the live suggestion list.
func SuggestionPage(suggestions ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><textarea name="q"></textarea><ul role="listbox">`)
	for _, s := range suggestions {
		fmt.Fprintf(&b, `<li class="sbct"><div><span>%s</span></div></li>`, s)
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}
