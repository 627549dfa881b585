package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that colorname's configuration, table and cache are usable.
Run this command when something seems wrong, or before filing a bug report.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("colorname doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config file ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ colorname.yaml ]")
	cfgPath, err := config.ConfigPath()
	if err != nil {
		failD("cannot determine home directory: %v", err)
	} else if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printWarn("", fmt.Sprintf("%s not found — using defaults (run 'colorname init')", cfgPath))
	} else {
		printOK("", fmt.Sprintf("valid YAML: %s", cfgPath))
	}
	cfg := env.cfg
	if _, err := cfg.Unknown(); err != nil {
		failD("unknown_color: %v", err)
	}
	if cfg.Workers < 0 {
		printWarn("", fmt.Sprintf("workers = %d — negative values run sequentially", cfg.Workers))
	}
	fmt.Fprintln(stdout)

	// ── Check 2: table file ───────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Table ]")
	t, loadErr := colorname.LoadTable(cfg.Table)
	switch {
	case errors.Is(loadErr, colorname.ErrTableNotFound):
		failD("cannot open %s — set 'table' in colorname.yaml", cfg.Table)
	case loadErr != nil:
		failD("%s: %v (status 0x%04x)", cfg.Table, loadErr, uint16(colorname.StatusOf(loadErr)))
	default:
		printOK("", fmt.Sprintf("%s: %d rows", cfg.Table, t.Len()))
		if err := t.Validate(); err != nil {
			if cfg.Strict {
				failD("%v (strict mode)", err)
			} else {
				printWarn("", err.Error())
			}
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 3: cache directory and lock ─────────────────────────────────────
	fmt.Fprintln(stdout, "[ Cache ]")
	c := newCache()
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		failD("cannot create cache dir %s: %v", c.Dir, err)
	} else if err := probeWritable(c.Dir); err != nil {
		failD("cache dir %s is not writable: %v", c.Dir, err)
	} else {
		printOK("", fmt.Sprintf("cache dir writable: %s", c.Dir))
		entries, _ := c.Entries()
		if loadErr == nil {
			if ok, _ := c.Cached(cfg.Table); ok {
				printOK("", "compiled table is up to date")
			} else {
				printMiss("", "table not compiled yet (run 'colorname table compile')")
			}
		}
		if n := len(entries); n > 1 {
			printInfo("", fmt.Sprintf("%d compiled tables cached (run 'colorname table clean')", n))
		}
	}
	fmt.Fprintln(stdout)

	// ── Summary ──────────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "===================")
	if allOK {
		fmt.Fprintln(stdout, "✓  All checks passed. colorname is ready to use.")
		return nil
	}
	fmt.Fprintln(stderr, "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}

// probeWritable creates and removes a throwaway file in dir.
func probeWritable(dir string) error {
	p := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(p, []byte("probe"), 0o644); err != nil {
		return err
	}
	return os.Remove(p)
}
