package colorname

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rowWeights produces a deterministic weight vector for bucket i with
// frequent ties and some all-zero rows.
func rowWeights(i int) Weights {
	var w Weights
	if i%97 == 0 {
		return w
	}
	for j := range w {
		w[j] = float64((i*7 + j*3) % 5)
	}
	return w
}

// expectedDominant is an independent arg-max with first-occurrence ties.
func expectedDominant(w Weights) Category {
	best, idx := 0.0, 0
	for j := 0; j < NumCategories; j++ {
		if w[j] > best {
			best, idx = w[j], j+1
		}
	}
	return Category(idx)
}

// tableText renders rows [0, n) in the on-disk format.
func tableText(n int, weights func(i int) Weights) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r := (i / (Levels * Levels)) * Step
		g := (i / Levels % Levels) * Step
		b := (i % Levels) * Step
		fmt.Fprintf(&sb, "%d %d %d", r, g, b)
		w := weights(i)
		for _, v := range w {
			fmt.Fprintf(&sb, " %g", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeTableFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "w2c.txt")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func uniformImage(w, h int, c RGBColor) *RGB {
	img := NewRGB(imageRect(w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

func gradientImage(w, h int) *RGB {
	img := NewRGB(imageRect(w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGB(x, y, RGBColor{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
			})
		}
	}
	return img
}

func imageRect(w, h int) image.Rectangle {
	return image.Rect(0, 0, w, h)
}
