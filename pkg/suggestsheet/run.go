package suggestsheet

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/browser"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/models"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/sheet"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/suggest"
	"github.com/xuri/excelize/v2"
)

// Opener launches a browser session.
type Opener func(ctx context.Context, opts browser.Options) (browser.Session, error)

type runner struct {
	logger *slog.Logger
	open   Opener
	now    func() time.Time
}

// RunOption customizes a run.
type RunOption func(*runner)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) RunOption {
	return func(r *runner) { r.logger = logger }
}

// WithOpener replaces browser.Open.
func WithOpener(open Opener) RunOption {
	return func(r *runner) { r.open = open }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RunOption {
	return func(r *runner) { r.now = now }
}

// Run opens a browser and the workbook, fills every keyword row of today's
// weekday sheet with its longest and shortest suggestion, and saves the
// workbook. The browser is always closed before Run returns.
//
// Per-keyword fetch failures leave the row's results empty and yield
// OutcomePartialFailure. Any other failure ends the run; its cause is in
// RunResult.Err as a *RunError.
func Run(ctx context.Context, opts Options, runOpts ...RunOption) *models.RunResult {
	r := &runner{
		logger: slog.Default(),
		open:   browser.Open,
		now:    time.Now,
	}
	for _, o := range runOpts {
		o(r)
	}
	return r.run(ctx, opts)
}

func (r *runner) run(ctx context.Context, opts Options) (res *models.RunResult) {
	runID := uuid.NewString()
	logger := r.logger.With("run", runID)

	started := r.now()
	today := started
	if opts.Date != nil {
		today = *opts.Date
	}
	res = &models.RunResult{
		RunID:    runID,
		Weekday:  today.Weekday().String(),
		BookPath: opts.BookPath,
		Started:  started,
	}

	defer func() {
		res.Finished = r.now()
		processed, skipped, failed := res.Counts()
		attrs := []any{
			"outcome", res.Outcome,
			"processed", processed,
			"skipped", skipped,
			"failed", failed,
			"elapsed", res.Finished.Sub(res.Started).Round(time.Millisecond),
		}
		if res.Err != nil {
			logger.Error("script failed", append(attrs, "error", res.Err)...)
			return
		}
		logger.Info("script completed", attrs...)
	}()

	fail := func(outcome models.Outcome, stage Stage, err error) *models.RunResult {
		res.Outcome = outcome
		res.Err = NewRunError(stage, err)
		return res
	}

	logger.Info("today is", "weekday", res.Weekday)

	// Init
	bopts, err := opts.BrowserConfig()
	if err != nil {
		return fail(models.OutcomeSetupFailure, StageInit, err)
	}
	session, err := r.open(ctx, bopts)
	if err != nil {
		return fail(models.OutcomeSetupFailure, StageInit, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close browser", "error", err)
		}
		logger.Info("browser closed")
	}()

	if _, err := os.Stat(opts.BookPath); os.IsNotExist(err) {
		return fail(models.OutcomeSetupFailure, StageInit, fmt.Errorf("%w: %s", ErrFileNotFound, opts.BookPath))
	}
	f, err := excelize.OpenFile(opts.BookPath)
	if err != nil {
		return fail(models.OutcomeSetupFailure, StageInit, fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()

	sheetName, err := sheet.Select(f, today)
	if err != nil {
		return fail(models.OutcomeSetupFailure, StageInit, err)
	}
	res.SheetName = sheetName

	rows, err := sheet.Keywords(f, sheetName)
	if err != nil {
		return fail(models.OutcomeSetupFailure, StageInit, fmt.Errorf("read keywords: %w", err))
	}

	// Iterate
	fetcher := suggest.NewFetcher(session, opts.Search, logger)
	failed := 0
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return fail(models.OutcomeAborted, StageIterate, err)
		}
		if row.Empty() {
			logger.Debug("skipping row without keyword", "row", row.R)
			res.Rows = append(res.Rows, models.RowResult{R: row.R, Skipped: true})
			continue
		}

		logger.Info("processing keyword", "row", row.R, "keyword", row.Keyword)
		fetched := fetcher.Fetch(ctx, row.Keyword)
		longest, shortest, ok := suggest.Extremes(fetched.Suggestions)
		logger.Info("suggestions found",
			"keyword", row.Keyword,
			"count", len(fetched.Suggestions),
			"longest", orNone(longest, ok),
			"shortest", orNone(shortest, ok),
		)

		if err := sheet.WriteExtremes(f, sheetName, row.R, longest, shortest, ok); err != nil {
			return fail(models.OutcomeAborted, StageIterate, fmt.Errorf("write row %d: %w", row.R, err))
		}
		if fetched.Err != nil {
			failed++
		}
		res.Rows = append(res.Rows, models.RowResult{
			R:           row.R,
			Keyword:     row.Keyword,
			Suggestions: fetched.Suggestions,
			Longest:     longest,
			Shortest:    shortest,
			Err:         fetched.Err,
		})
	}

	// Persist
	if err := f.SaveAs(opts.SavePath()); err != nil {
		return fail(models.OutcomePersistFailure, StagePersist, fmt.Errorf("save workbook: %w", err))
	}

	res.Outcome = models.OutcomeSuccess
	if failed > 0 {
		res.Outcome = models.OutcomePartialFailure
	}
	return res
}

func orNone(s string, ok bool) string {
	if !ok {
		return "None"
	}
	return s
}
