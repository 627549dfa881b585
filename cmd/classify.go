package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/imageio"
	"github.com/spf13/cobra"
)

// idScale spreads category ids 0..11 over the grey range for --scale.
const idScale = 255 / colorname.NumCategories

var (
	flagClassifyOut   string
	flagClassifyScale bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <image>",
	Short: "Write the color name id of every pixel as a greyscale PNG",
	Long: `Classify every pixel of an image and write the category ids
(1=black ... 11=yellow, 0=unknown) as an 8-bit greyscale PNG.

Example:
  colorname classify photo.jpg -o photo.ids.png
  colorname classify photo.jpg --scale`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVarP(&flagClassifyOut, "output", "o", "", "Output PNG (default: <image>.ids.png)")
	classifyCmd.Flags().BoolVar(&flagClassifyScale, "scale", false, "Multiply ids so they are visible when viewed")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	in := args[0]
	out := flagClassifyOut
	if out == "" {
		out = derivedPath(in, ".ids.png")
	}

	t, err := loadTable(cmd)
	if err != nil {
		return err
	}
	opts, err := transformOptions()
	if err != nil {
		return err
	}
	src, _, err := imageio.Read(in)
	if err != nil {
		return err
	}

	ids, err := colorname.Classify(t, src, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if flagClassifyScale {
		for i, v := range ids.Pix {
			ids.Pix[i] = v * idScale
		}
	}
	if err := imageio.WritePNG(out, ids); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("Classified %s → %s (%dx%d)", in, out, ids.Rect.Dx(), ids.Rect.Dy()))
	return nil
}

// derivedPath replaces the extension of in with suffix.
func derivedPath(in, suffix string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + suffix
}
