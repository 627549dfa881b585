package cmd

import (
	"fmt"
	"os"

	"github.com/kamusis/colorname-cli/internal/config"
	"github.com/spf13/cobra"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.colorname with a default config",
	Long: `Initialize ~/.colorname/.

Writes colorname.yaml (unless it exists or --force is given), a .env template
for per-machine overrides, and the cache directory. Pass --table to record
the location of your color name table:

  colorname init --table ~/data/w2c.txt`,
	Args: cobra.NoArgs,
	RunE: runInit,
	// init must work even when the existing config is broken.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing colorname.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.colorname directory ─────────────────────────────────────
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	// ── 2. Create ~/.colorname/ if it doesn't exist ──────────────────────────
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("colorname directory ready: %s", dir))

	// ── 3. Write colorname.yaml if missing ────────────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) || flagInitForce {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if flagTable != "" {
			cfg.Table = flagTable
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 4. dotenv template ────────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	p, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf("Overrides file ready: %s", p))

	// ── 5. Cache directory and table check ────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return fmt.Errorf("cannot create cache dir %s: %w", cfg.CacheDir, err)
	}
	printOK("", fmt.Sprintf("Cache directory ready: %s", cfg.CacheDir))

	if _, err := os.Stat(cfg.Table); err != nil {
		printWarn("", fmt.Sprintf("table not found at %s — copy it there or edit %s", cfg.Table, cfgPath))
	} else {
		printInfo("", "run 'colorname table compile' to build the cache")
	}
	return nil
}
