package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/config"
	"github.com/kamusis/colorname-cli/internal/logging"
	"github.com/kamusis/colorname-cli/internal/tablecache"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "colorname",
	Short:        "colorname — classify image pixels into color names",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `colorname maps every pixel of an image to one of eleven color names
(black, blue, brown, grey, green, orange, pink, purple, red, white, yellow)
using a precomputed 32768-bucket lookup table, and renders the result back
into representative colors.

Configuration lives in ~/.colorname/colorname.yaml (see 'colorname init').`,
	PersistentPreRunE: loadEnv,
}

var (
	flagTable    string
	flagWorkers  int
	flagLogLevel string
	flagNoCache  bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagTable, "table", "", "Path to the color name table (overrides config)")
	pf.IntVar(&flagWorkers, "workers", 0, "Goroutines used per image (overrides config)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Parse the text table directly, bypassing the compiled cache")
}

// env is the resolved configuration shared by all commands.
var env struct {
	cfg    *config.Config
	logger *slog.Logger
}

// loadEnv resolves config, applies global flags and builds the logger.
func loadEnv(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	if flagTable != "" {
		if cfg.Table, err = config.ExpandPath(flagTable); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	env.cfg = cfg
	env.logger = logger
	return nil
}

// loadTable returns the configured compact table, through the compiled cache
// unless --no-cache is set. In strict mode tables with unnamed buckets are
// rejected.
func loadTable(cmd *cobra.Command) (*colorname.Table, error) {
	var (
		t   *colorname.Table
		err error
	)
	if flagNoCache {
		t, err = colorname.LoadTable(env.cfg.Table)
	} else {
		c := tablecache.New(env.cfg.CacheDir)
		c.Logger = env.logger
		t, err = c.Load(cmd.Context(), env.cfg.Table)
	}
	if err != nil {
		if errors.Is(err, colorname.ErrTableNotFound) {
			return nil, fmt.Errorf("%w\nSet 'table' in colorname.yaml or pass --table.", err)
		}
		return nil, err
	}
	if env.cfg.Strict {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	env.logger.Debug("table ready", "path", env.cfg.Table, "cached", !flagNoCache)
	return t, nil
}

// transformOptions maps the configuration onto colorname options.
func transformOptions() ([]colorname.Option, error) {
	unknown, err := env.cfg.Unknown()
	if err != nil {
		return nil, err
	}
	return []colorname.Option{
		colorname.WithWorkers(env.cfg.Workers),
		colorname.WithUnknownColor(unknown),
		colorname.WithLogger(env.logger),
	}, nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		// Table and image failures exit with their status code; anything
		// else exits with 1.
		os.Exit(int(colorname.StatusOf(err)))
	}
}
