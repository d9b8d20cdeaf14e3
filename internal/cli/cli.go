package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"volleyzone-tables/internal/division"
	"volleyzone-tables/internal/logger"
	"volleyzone-tables/internal/scraper"
	"volleyzone-tables/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Environment variables supplying flag defaults
const (
	EnvEndpoint  = "VOLLEYZONE_ENDPOINT"
	EnvDivisions = "VOLLEYZONE_DIVISIONS"
	EnvParallel  = "VOLLEYZONE_PARALLEL"
	EnvTimeout   = "VOLLEYZONE_TIMEOUT"
)

var (
	flagConfig   string
	flagEndpoint string
	flagParallel int
	flagTimeout  time.Duration
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volleyzone-tables [output-dir]",
		Short: "Export Volleyzone league tables to CSV",
		Long: `Fetches the standings table of each configured Volleyzone division and
writes it to <label>.csv in the output directory (default: current directory).
The run stops at the first failed division.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExport,
	}

	cmd.Flags().StringVar(&flagConfig, "config", os.Getenv(EnvDivisions), "YAML file listing divisions (or env: "+EnvDivisions+")")
	cmd.Flags().StringVar(&flagEndpoint, "endpoint", getEnv(EnvEndpoint, scraper.TableURL), "Table endpoint URL (or env: "+EnvEndpoint+")")
	cmd.Flags().IntVar(&flagParallel, "parallel", getEnvAsInt(EnvParallel, 1), "Number of divisions fetched at once (or env: "+EnvParallel+")")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", getEnvAsDuration(EnvTimeout, scraper.Timeout), "Per-request timeout, 0 for none (or env: "+EnvTimeout+")")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runExport is the main command logic
func runExport(cmd *cobra.Command, args []string) error {
	outputDir := ""
	if len(args) == 1 {
		outputDir = args[0]
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	if flagParallel < 1 {
		return fmt.Errorf("invalid --parallel: %d (must be at least 1)", flagParallel)
	}
	if flagTimeout < 0 {
		return fmt.Errorf("invalid --timeout: %s (must not be negative)", flagTimeout)
	}

	divisions := division.Defaults()
	if flagConfig != "" {
		loaded, err := division.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading divisions: %w", err)
		}
		divisions = loaded
	}

	store, err := storage.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc := scraper.New(scraper.WithURL(flagEndpoint), scraper.WithTimeout(flagTimeout))

	log.Debug("Starting export", logger.Fields{
		"divisions": len(divisions),
		"endpoint":  sc.URL(),
		"output":    store.Dir(),
		"parallel":  flagParallel,
		"timeout":   flagTimeout.String(),
	})

	// Runner logs through the default logger set above
	metrics := logger.NewMetrics()
	runner := &Runner{
		Divisions: divisions,
		Fetcher:   sc,
		Storage:   store,
		Parallel:  flagParallel,
		Metrics:   metrics,
	}

	summary, err := runner.Run(cmd.Context())
	metrics.GetSnapshot().Log(log)
	if err != nil {
		log.Error("Export failed", logger.Fields{
			"saved":     len(summary.Results),
			"divisions": len(divisions),
		}, err)
		return err
	}

	log.Info("Export complete", logger.Fields{"divisions": len(summary.Results), "rows": summary.Rows})
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Execute runs the CLI
func Execute() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Could not load .env file", logger.Fields{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
