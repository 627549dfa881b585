// Package imageio reads and writes image files for the colorname CLI.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/kamusis/colorname-cli/internal/colorname"
)

// Read decodes the PNG, JPEG or GIF file at path into the 3-channel form
// accepted by colorname.Classify. format is the registered codec name.
func Read(path string) (img *colorname.RGB, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("cannot decode %s: %w", path, err)
	}
	return colorname.FromImage(src), format, nil
}

// WritePNG encodes img as PNG at path. The file is written to a temporary
// name in the same directory and renamed into place.
func WritePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".colorname-*.png")
	if err != nil {
		return fmt.Errorf("cannot create temp file in %s: %w", dir, err)
	}
	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
