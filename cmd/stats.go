package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/imageio"
	"github.com/spf13/cobra"
)

var (
	flagStatsAll  bool
	flagStatsOnly []string
)

var statsCmd = &cobra.Command{
	Use:   "stats <image>...",
	Short: "Show how many pixels fall into each color name",
	Long: `Classify each image and print the pixel count and share per color name.

Example:
  colorname stats photo.jpg
  colorname stats photo.jpg --only red,orange --only 11`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsAll, "all", false, "List categories with zero pixels too")
	statsCmd.Flags().StringSliceVar(&flagStatsOnly, "only", nil, "Restrict output to these color names or ids")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	only, err := parseCategories(flagStatsOnly)
	if err != nil {
		return err
	}
	t, err := loadTable(cmd)
	if err != nil {
		return err
	}

	var failed int
	for _, in := range args {
		src, format, err := imageio.Read(in)
		if err != nil {
			printErr(in, err.Error())
			failed++
			continue
		}
		h, err := colorname.CountCategories(t, src)
		if err != nil {
			printErr(in, err.Error())
			failed++
			continue
		}
		printSection(fmt.Sprintf("%s (%s, %dx%d)", in, format, src.Rect.Dx(), src.Rect.Dy()))
		printHistogram(h, only, flagStatsAll)
	}
	if failed > 0 {
		return fmt.Errorf("%d image(s) could not be processed", failed)
	}
	return nil
}

// parseCategories resolves color names or ids, dropping duplicates. An
// empty list yields nil.
func parseCategories(names []string) ([]colorname.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]colorname.Category, 0, len(names))
	seen := map[colorname.Category]bool{}
	for _, n := range names {
		c, err := colorname.ParseCategory(n)
		if err != nil {
			return nil, err
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

// printHistogram lists the categories in cats, or every category plus the
// unknown row when cats is nil.
func printHistogram(h colorname.Histogram, cats []colorname.Category, all bool) {
	withUnknown := cats == nil
	if cats == nil {
		cats = colorname.Categories()
	}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, c := range cats {
		if h[c] == 0 && !all {
			continue
		}
		fmt.Fprintf(w, "  %2d\t%s\t%d\t%5.1f%%\n", c, displayName(c), h[c], 100*h.Fraction(c))
	}
	if withUnknown && (h[colorname.Unknown] > 0 || all) {
		fmt.Fprintf(w, "   -\t%s\t%d\t%5.1f%%\n", displayName(colorname.Unknown), h[colorname.Unknown], 100*h.Fraction(colorname.Unknown))
	}
	_ = w.Flush()
	fmt.Fprintf(stdout, "\n  %d pixel(s)\n", h.Total())
}
