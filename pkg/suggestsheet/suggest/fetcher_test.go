package suggest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/browser/browsertest"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetch(t *testing.T) {
	cfg := DefaultConfig()
	session := browsertest.New(cfg.QuerySelector, map[string]string{
		"coffee": browsertest.SuggestionPage("coffee shop", "coffee near me", "coffee beans"),
	})
	f := NewFetcher(session, cfg, quietLogger())

	res := f.Fetch(context.Background(), "coffee")
	require.NoError(t, res.Err)
	assert.Equal(t, "coffee", res.Keyword)
	assert.Equal(t, []string{"coffee shop", "coffee near me", "coffee beans"}, res.Suggestions)

	assert.Equal(t, []string{
		"navigate https://www.google.com/?hl=en",
		`wait [name="q"] 10s`,
		`type [name="q"] coffee`,
		"wait li.sbct 10s",
		"html",
	}, session.Calls())
}

func TestFetchSuggestionTimeout(t *testing.T) {
	cfg := DefaultConfig()
	session := browsertest.New(cfg.QuerySelector, nil)
	f := NewFetcher(session, cfg, quietLogger())

	res := f.Fetch(context.Background(), "zzzz")
	assert.Empty(t, res.Suggestions)

	var fe *FetchError
	require.ErrorAs(t, res.Err, &fe)
	assert.Equal(t, StepList, fe.Step)
	assert.Equal(t, "zzzz", fe.Keyword)
	assert.ErrorIs(t, res.Err, browsertest.ErrTimeout)
}

func TestFetchNavigationError(t *testing.T) {
	cfg := DefaultConfig()
	session := browsertest.New(cfg.QuerySelector, nil)
	session.NavigateErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	f := NewFetcher(session, cfg, quietLogger())

	res := f.Fetch(context.Background(), "coffee")
	assert.Empty(t, res.Suggestions)

	var fe *FetchError
	require.ErrorAs(t, res.Err, &fe)
	assert.Equal(t, StepNavigate, fe.Step)
	assert.Contains(t, fe.Error(), `"coffee"`)
}

func TestFetchMissingInput(t *testing.T) {
	cfg := DefaultConfig()
	session := browsertest.New("#other-input", map[string]string{"coffee": browsertest.SuggestionPage("x")})
	f := NewFetcher(session, cfg, quietLogger())

	res := f.Fetch(context.Background(), "coffee")
	var fe *FetchError
	require.ErrorAs(t, res.Err, &fe)
	assert.Equal(t, StepInput, fe.Step)
}

func TestFetchEmptyList(t *testing.T) {
	cfg := DefaultConfig()
	session := browsertest.New(cfg.QuerySelector, map[string]string{
		"coffee": `<ul><li class="sbct"><span> </span></li></ul>`,
	})
	f := NewFetcher(session, cfg, quietLogger())

	res := f.Fetch(context.Background(), "coffee")
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Suggestions)
}
