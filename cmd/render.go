package cmd

import (
	"fmt"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/imageio"
	"github.com/spf13/cobra"
)

var flagRenderOut string

var renderCmd = &cobra.Command{
	Use:   "render <image>",
	Short: "Repaint every pixel with the color of its color name",
	Long: `Classify every pixel of an image and replace it with the representative
color of its category. Buckets without a named category are painted with
unknown_color from colorname.yaml.

Example:
  colorname render photo.jpg -o photo.names.png`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagRenderOut, "output", "o", "", "Output PNG (default: <image>.names.png)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	in := args[0]
	out := flagRenderOut
	if out == "" {
		out = derivedPath(in, ".names.png")
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

	dst, err := colorname.Render(t, src, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := imageio.WritePNG(out, dst); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("Rendered %s → %s", in, out))
	return nil
}
