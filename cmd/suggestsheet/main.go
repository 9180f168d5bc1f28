// Package main provides the CLI entry point for suggestsheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet"
	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/schedule"
)

const defaultConfigPath = "suggestsheet.yaml"

var (
	configPath  string
	outputPath  string
	driver      string
	browserPath string
	driverDir   string
	headless    bool
	noSandbox   bool
	timeout     time.Duration
	date        string
	verbose     bool
	cronSpec    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree, binding flags to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "suggestsheet [workbook.xlsx]",
		Short: "Fill today's keyword sheet with search suggestions",
		Long: `suggestsheet reads keywords from the worksheet named for today's weekday,
looks up each keyword's search autocomplete suggestions in a headless browser,
and writes the longest and shortest suggestion back into columns B and C.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file path (default: "+defaultConfigPath+" if present)")
	flags.StringVarP(&outputPath, "output", "o", "", "Save the workbook here instead of overwriting the input")
	flags.StringVar(&driver, "driver", "", "Browser driver: chromedp or playwright")
	flags.StringVar(&browserPath, "browser-path", "", "Browser executable path (default: auto-detect)")
	flags.StringVar(&driverDir, "driver-dir", "", "Playwright driver directory")
	flags.BoolVar(&headless, "headless", true, "Run the browser without a window")
	flags.BoolVar(&noSandbox, "no-sandbox", false, "Disable the Chromium sandbox")
	flags.DurationVar(&timeout, "timeout", 0, "Wait timeout for the search box and suggestion list (default 10s)")
	flags.StringVar(&date, "date", "", "Pick the weekday sheet for this date (YYYY-MM-DD) instead of today")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	scheduleCmd := &cobra.Command{
		Use:   "schedule [workbook.xlsx]",
		Short: "Run on a cron schedule until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSchedule,
	}
	scheduleCmd.Flags().StringVar(&cronSpec, "cron", "", `Cron spec, "minute hour dom month dow" (default from config, "0 6 * * *")`)
	rootCmd.AddCommand(scheduleCmd)

	return rootCmd
}

// reportedError is a run failure already logged in the run summary.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

// reportError prints err unless the run summary already logged it.
func reportError(w io.Writer, err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := suggestsheet.Run(ctx, opts, suggestsheet.WithLogger(newLogger()))
	if res.Outcome.Failed() {
		return &reportedError{err: fmt.Errorf("%s: %w", res.Outcome, res.Err)}
	}
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args)
	if err != nil {
		return err
	}
	if opts.Date != nil {
		return errors.New("--date cannot be used with schedule")
	}
	if cmd.Flags().Changed("cron") {
		opts.Schedule = cronSpec
	}

	logger := newLogger()
	sched, err := schedule.New(opts.Schedule, func(ctx context.Context) {
		suggestsheet.Run(ctx, opts, suggestsheet.WithLogger(logger))
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched.Start(ctx)
	<-ctx.Done()
	sched.Stop()
	return nil
}

// loadOptions layers defaults, the config file, the environment and flags.
func loadOptions(cmd *cobra.Command, args []string) (suggestsheet.Options, error) {
	path, optional := configPath, false
	if path == "" {
		path, optional = defaultConfigPath, true
	}
	opts, err := suggestsheet.LoadOptions(path, optional)
	if err != nil {
		return opts, err
	}
	if err := opts.ApplyEnv(); err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		opts.OutputPath = outputPath
	}
	if flags.Changed("driver") {
		opts.Browser.Driver = driver
	}
	if flags.Changed("browser-path") {
		opts.Browser.BrowserPath = browserPath
	}
	if flags.Changed("driver-dir") {
		opts.Browser.DriverDir = driverDir
	}
	if flags.Changed("headless") {
		opts.Browser.Headless = headless
	}
	if flags.Changed("no-sandbox") {
		opts.Browser.NoSandbox = noSandbox
	}
	if flags.Changed("timeout") {
		opts.Search.WaitTimeout = timeout
	}
	if date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid date: %s (must be YYYY-MM-DD)", date)
		}
		opts.Date = &d
	}
	if len(args) == 1 {
		opts.BookPath = args[0]
	}

	// Validate driver early so a typo does not launch anything
	if _, err := opts.BrowserConfig(); err != nil {
		return opts, err
	}

	return opts, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
