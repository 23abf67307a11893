package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/fetcher"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"github.com/pfrederiksen/ufc-events/internal/scraper"
	"github.com/pfrederiksen/ufc-events/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

const defaultDataDir = "~/.local/share/ufc-events"

// Version is reported by --version
var Version = "dev"

// config holds the resolved command-line settings
type config struct {
	url         string
	scheduled   int
	past        int
	concurrency int
	timeout     time.Duration
	retries     uint64
	format      OutputFormat
	sortOrder   SortOrder
	dataDir     string
	newOnly     bool
	save        bool
	verbose     bool
	logLevel    string
}

// exitCode carries a non-error exit status out of a command
type exitCode int

func (c exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(c))
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := &config{}
	var format, sortOrder string

	cmd := &cobra.Command{
		Use:     "ufc-events",
		Short:   "List upcoming and recent UFC events",
		Version: Version,
		Long: `A CLI tool that extracts scheduled and past UFC events from the
Wikipedia "List of UFC events" page, including fight cards and bonus awards.
With --new-only it reports only events not seen in the saved snapshot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.format = OutputFormat(strings.ToLower(format))
			cfg.sortOrder = SortOrder(strings.ToLower(sortOrder))
			return runList(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	url := os.Getenv("UFC_EVENTS_URL")
	if url == "" {
		url = scraper.EventsURL
	}
	dataDir := os.Getenv("UFC_EVENTS_DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.url, "url", url, "Events listing page (env UFC_EVENTS_URL)")
	flags.IntVar(&cfg.scheduled, "scheduled", scraper.DefaultScheduledEvents, "Number of scheduled events to extract")
	flags.IntVar(&cfg.past, "past", scraper.DefaultPastEvents, "Number of past events to extract")
	flags.IntVar(&cfg.concurrency, "concurrency", 1, "Detail pages fetched in parallel")
	flags.DurationVar(&cfg.timeout, "timeout", fetcher.Timeout, "Timeout per request")
	flags.Uint64Var(&cfg.retries, "retries", fetcher.DefaultRetries, "Retries for failed requests")
	flags.StringVar(&format, "format", string(FormatText), "Output format: text, json or ics")
	flags.StringVar(&sortOrder, "sort", string(SortBySource), "Sort order: source, date or name")
	flags.BoolVar(&cfg.newOnly, "new-only", false, "Report only events not in the saved snapshot")
	flags.BoolVar(&cfg.save, "save", false, "Save the extracted events as the new snapshot")
	flags.BoolVar(&cfg.verbose, "verbose", false, "Enable debug logging and print run metrics")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	cmd.PersistentFlags().StringVar(&cfg.dataDir, "data-dir", dataDir, "Data directory for snapshots (env UFC_EVENTS_DATA_DIR)")

	cmd.AddCommand(newShowCmd(&cfg.dataDir))

	return cmd
}

func newShowCmd(dataDir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event from the saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.New(*dataDir)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			evt, err := store.GetEventByID(args[0])
			if err != nil {
				return err
			}
			result := &OutputResult{
				CheckedAt:  time.Now().UTC(),
				Events:     []*event.Event{evt},
				EventCount: 1,
			}
			return WriteOutput(cmd.OutOrStdout(), result, OutputFormat(strings.ToLower(format)), true)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(FormatText), "Output format: text, json or ics")

	return cmd
}

func newLogger(cfg *config, w io.Writer) (*logger.Logger, error) {
	if cfg.verbose {
		return logger.New(logger.LevelDebug, w), nil
	}
	level, err := logger.ParseLevel(cfg.logLevel)
	if err != nil {
		return nil, err
	}
	return logger.New(level, w), nil
}

func (cfg *config) validate() error {
	if !cfg.format.valid() {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", cfg.format)
	}
	if !cfg.sortOrder.valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'source', 'date' or 'name')", cfg.sortOrder)
	}
	if cfg.scheduled < 0 || cfg.past < 0 {
		return errors.New("--scheduled and --past must not be negative")
	}
	return nil
}

// runList is the main command logic
func runList(ctx context.Context, cfg *config, stdout io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := fetcher.New(
		fetcher.WithTimeout(cfg.timeout),
		fetcher.WithRetries(cfg.retries),
		fetcher.WithLogger(log),
	)
	metrics := logger.NewMetrics()
	sc := scraper.New(client,
		scraper.WithQuantities(cfg.scheduled, cfg.past),
		scraper.WithConcurrency(cfg.concurrency),
		scraper.WithLogger(log),
		scraper.WithMetrics(metrics),
		scraper.WithBaseURL(cfg.url),
	)

	log.Debug("Fetching events", logger.Fields{"url": cfg.url, "scheduled": cfg.scheduled, "past": cfg.past})

	start := time.Now()
	events, err := sc.FetchEvents(ctx, cfg.url)
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}
	metrics.RecordTiming("run", time.Since(start))

	result, err := report(cfg, events, log)
	if err != nil {
		return err
	}

	sortEvents(result.Events, cfg.sortOrder)
	if err := WriteOutput(stdout, result, cfg.format, cfg.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if cfg.verbose {
		if err := writeMetrics(os.Stderr, metrics.Snapshot()); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	if cfg.newOnly && len(result.Events) > 0 {
		return exitCode(ExitNewEvents)
	}
	return nil
}

// report builds the output for events, consulting and updating the saved
// snapshot when --new-only or --save ask for it
func report(cfg *config, events []*event.Event, log *logger.Logger) (*OutputResult, error) {
	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Source:     cfg.url,
		Events:     events,
		EventCount: len(events),
		NewOnly:    cfg.newOnly,
	}

	if !cfg.newOnly && !cfg.save {
		return result, nil
	}

	store, err := storage.New(cfg.dataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	if cfg.newOnly {
		previous, err := store.LoadSnapshot()
		if err != nil {
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}
		log.Debug("Loaded previous snapshot", logger.Fields{"path": store.Path(), "events": len(previous.Events)})

		diff := event.Diff(previous, events)
		result.Events = diff.NewEvents
		result.EventCount = len(diff.NewEvents)
		result.Changes = diff.Changes
	}

	if cfg.save {
		if err := store.CreateSnapshotFromEvents(events); err != nil {
			return nil, fmt.Errorf("saving snapshot: %w", err)
		}
		log.Debug("Saved snapshot", logger.Fields{"path": store.Path(), "events": len(events)})
	}

	return result, nil
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(NewRootCmd(), os.Stderr))
}

func run(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}
