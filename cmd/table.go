package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/tablecache"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Inspect and manage the color name table",
}

var tableInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show bucket counts per color name and flag unnamed buckets",
	Long: `Load the configured table and show how many of its 32768 buckets map to
each color name. Buckets whose weights are all zero have no color name;
they are reported here and rendered with unknown_color.`,
	Args: cobra.NoArgs,
	RunE: runTableInspect,
}

var tableCompileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the text table into the binary cache",
	Args:  cobra.NoArgs,
	RunE:  runTableCompile,
}

var tableCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove compiled tables that no longer match the configured table",
	Args:  cobra.NoArgs,
	RunE:  runTableClean,
}

func init() {
	tableCmd.AddCommand(tableInspectCmd, tableCompileCmd, tableCleanCmd)
	rootCmd.AddCommand(tableCmd)
}

func newCache() *tablecache.Cache {
	c := tablecache.New(env.cfg.CacheDir)
	c.Logger = env.logger
	return c
}

func runTableInspect(cmd *cobra.Command, _ []string) error {
	t, err := loadTable(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "📦 Table: %s\n", env.cfg.Table)
	fmt.Fprintf(stdout, "Buckets:  %d (%d levels per channel, step %d)\n", t.Len(), colorname.Levels, colorname.Step)

	counts := t.Counts()
	fmt.Fprintln(stdout, "\nColor names:")
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, c := range colorname.Categories() {
		col := colorname.DefaultPalette[c-1]
		fmt.Fprintf(w, "  %2d\t%s\t#%02x%02x%02x\t%d\n", c, displayName(c), col.R, col.G, col.B, counts[c])
	}
	_ = w.Flush()

	fmt.Fprintln(stdout)
	if err := t.Validate(); err != nil {
		printWarn("", fmt.Sprintf("%d bucket(s) without a color name — %v", counts[colorname.Unknown], err))
		printInfo("", "set 'strict: true' in colorname.yaml to reject such tables")
	} else {
		printOK("", "every bucket has a color name")
	}

	if !flagNoCache {
		c := newCache()
		if ok, err := c.Cached(env.cfg.Table); err == nil && ok {
			printOK("", "compiled copy present in "+c.Dir)
		} else {
			printMiss("", "no compiled copy (run 'colorname table compile')")
		}
	}
	return nil
}

func runTableCompile(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	t, path, err := newCache().Compile(cmd.Context(), env.cfg.Table)
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("Compiled %s → %s (%d buckets, %s)", env.cfg.Table, path, t.Len(), time.Since(start).Round(time.Millisecond)))
	return nil
}

func runTableClean(cmd *cobra.Command, _ []string) error {
	c := newCache()
	var keep []string
	if _, err := os.Stat(env.cfg.Table); err == nil {
		keep = append(keep, env.cfg.Table)
	}
	removed, err := c.Prune(cmd.Context(), keep...)
	for _, p := range removed {
		printOK("", "removed "+p)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		printSkip("", "nothing to clean in "+c.Dir)
	}
	return nil
}
