package cmd

import (
	"fmt"
	"strconv"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/config"
	"github.com/spf13/cobra"
)

var flagLookupProbs bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <r> <g> <b> | <#rrggbb>",
	Short: "Show the bucket and color name of a single color",
	Long: `Look up one color in the table.

Example:
  colorname lookup 200 30 40
  colorname lookup '#c81e28' --probs`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&flagLookupProbs, "probs", false, "Also print the weight of every category")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	c, err := parseColorArgs(args)
	if err != nil {
		return err
	}

	idx := colorname.BucketIndex(c.R, c.G, c.B)
	fmt.Fprintf(stdout, "Color:    #%02x%02x%02x (%d, %d, %d)\n", c.R, c.G, c.B, c.R, c.G, c.B)
	fmt.Fprintf(stdout, "Bucket:   %d\n", idx)

	if !flagLookupProbs {
		t, err := loadTable(cmd)
		if err != nil {
			return err
		}
		cat := t.At(idx)
		fmt.Fprintf(stdout, "Category: %d (%s)\n", cat, displayName(cat))
		return nil
	}

	p, err := colorname.LoadProbTable(env.cfg.Table)
	if err != nil {
		return err
	}
	w := p.Row(idx)
	cat := w.Dominant()
	fmt.Fprintf(stdout, "Category: %d (%s)\n", cat, displayName(cat))
	fmt.Fprintln(stdout, "\nWeights:")
	for i, v := range w {
		k := colorname.Category(i + 1)
		marker := " "
		if k == cat {
			marker = "*"
		}
		fmt.Fprintf(stdout, "  %s %-7s %.6f\n", marker, displayName(k), v)
	}
	return nil
}

// parseColorArgs accepts either three channel values or one hex color.
func parseColorArgs(args []string) (colorname.RGBColor, error) {
	switch len(args) {
	case 1:
		return config.ParseHexColor(args[0])
	case 3:
		var ch [3]uint8
		for i, a := range args {
			v, err := strconv.ParseUint(a, 10, 8)
			if err != nil {
				return colorname.RGBColor{}, fmt.Errorf("invalid channel value %q: want 0-255", a)
			}
			ch[i] = uint8(v)
		}
		return colorname.RGBColor{R: ch[0], G: ch[1], B: ch[2]}, nil
	default:
		return colorname.RGBColor{}, fmt.Errorf("want either <r> <g> <b> or <#rrggbb>")
	}
}
