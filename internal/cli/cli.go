package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbrevik/gigwire/internal/adapter"
	"github.com/mbrevik/gigwire/internal/calendar"
	"github.com/mbrevik/gigwire/internal/config"
	"github.com/mbrevik/gigwire/internal/logger"
	"github.com/mbrevik/gigwire/internal/notifier"
	"github.com/mbrevik/gigwire/internal/pipeline"
	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/store/memory"
	"github.com/mbrevik/gigwire/internal/store/postgres"
	"github.com/mbrevik/gigwire/internal/store/rest"
	"github.com/mbrevik/gigwire/internal/venue"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

// exitCode is what Execute exits with after a completed run.
var exitCode = ExitSuccess

var (
	flagConfig  string
	flagVenue   string
	flagFormat  string
	flagICSFile string
	flagDryRun  bool
	flagNotify  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gigwire",
		Short: "Ingest live-music listings from venue websites",
		Long: `Scrapes configured venue websites, normalizes their listings and
reconciles them into the canonical event store without creating duplicates.`,
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "config.yaml", "Path to the YAML configuration file")
	cmd.Flags().StringVar(&flagVenue, "venue", "", "Only scrape this venue id")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagICSFile, "ics-file", "", "Write newly inserted events to this iCalendar file")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Run against an in-memory store; nothing is written or posted")
	cmd.Flags().BoolVar(&flagNotify, "notify", false, "Announce newly inserted events")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runIngest is the main command logic
func runIngest(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	registry, venues, err := buildRegistry(cfg, flagVenue)
	if err != nil {
		return err
	}

	ctx := context.Background()

	events, artists, closeStore, err := buildStore(ctx, cfg, flagDryRun)
	if err != nil {
		return err
	}
	defer closeStore()

	lock, err := pipeline.AcquireLock(cfg.LockPath, 10*time.Minute)
	if err != nil {
		return fmt.Errorf("another run appears to be in progress: %w", err)
	}
	defer lock.Release()

	// Progress lines go to stderr under JSON output so stdout stays parseable.
	var progress io.Writer = os.Stdout
	if format == FormatJSON {
		progress = os.Stderr
	}

	p := pipeline.New(registry, events, artists, pipeline.WithOutput(progress))
	summary := p.Run(ctx)

	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Summary:   summary,
		NewEvents: summary.NewEvents,
		Venues:    venues,
	}
	sortEvents(result.NewEvents, SortByDate)

	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if flagVerbose {
		writeMetrics(os.Stderr)
	}

	if flagICSFile != "" && len(summary.NewEvents) > 0 {
		ics := calendar.GenerateICS(summary.NewEvents, venues)
		if err := os.WriteFile(flagICSFile, []byte(ics), 0o644); err != nil {
			return fmt.Errorf("writing ics file: %w", err)
		}
	}

	if flagNotify && len(summary.NewEvents) > 0 && cfg.Notifier.Enabled {
		n, err := buildNotifier(cfg, flagDryRun)
		if err != nil {
			return err
		}
		if err := n.Notify(summary.NewEvents, venues); err != nil {
			return fmt.Errorf("announcing new events: %w", err)
		}
	}

	// Calling os.Exit here would skip the deferred lock release and store
	// close; Execute exits with this code after RunE returns.
	switch {
	case summary.VenueErrors > 0 && summary.Inserted == 0 && summary.Updated == 0:
		exitCode = ExitError
	case len(summary.NewEvents) > 0:
		exitCode = ExitNewEvents
	default:
		exitCode = ExitSuccess
	}
	return nil
}

// buildRegistry turns venue configs into adapter entries, optionally
// filtered to a single venue id.
func buildRegistry(cfg *config.Config, only string) ([]pipeline.Entry, map[string]venue.Venue, error) {
	var registry []pipeline.Entry
	venues := make(map[string]venue.Venue)

	for _, vc := range cfg.Venues {
		if only != "" && vc.ID != only {
			continue
		}
		v, err := venue.New(vc.ID, vc.Name, vc.BaseURL, vc.Timezone, vc.DefaultImage)
		if err != nil {
			return nil, nil, fmt.Errorf("venue %q: %w", vc.ID, err)
		}
		a, err := adapter.New(vc.Adapter, v)
		if err != nil {
			return nil, nil, fmt.Errorf("venue %q: %w", vc.ID, err)
		}
		registry = append(registry, pipeline.Entry{Adapter: a})
		venues[v.ID] = v
	}

	if len(registry) == 0 {
		if only != "" {
			return nil, nil, fmt.Errorf("no venue with id %q in config", only)
		}
		return nil, nil, fmt.Errorf("no venues configured")
	}
	return registry, venues, nil
}

// buildStore opens the configured backend. Dry runs always get a fresh
// in-memory store so nothing durable is touched.
func buildStore(ctx context.Context, cfg *config.Config, dryRun bool) (store.EventStore, store.ArtistStore, func(), error) {
	if dryRun || cfg.Store.Backend == "memory" {
		s := memory.New()
		return s, s, func() {}, nil
	}

	switch cfg.Store.Backend {
	case "postgres":
		s, err := postgres.Open(ctx, cfg.Store.DSN, postgres.Options{
			SimpleProtocol: cfg.Store.SimpleProtocol,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return s, s, s.Close, nil
	case "rest":
		c := rest.New(cfg.Store.BaseURL, cfg.Store.Token)
		return c, c, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func buildNotifier(cfg *config.Config, dryRun bool) (notifier.Notifier, error) {
	if dryRun || cfg.Notifier.DryRun {
		return notifier.NewDryRunNotifier(), nil
	}
	return notifier.NewTwitterNotifier()
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(exitCode)
}
