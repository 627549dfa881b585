package colorname

import (
	"log/slog"

	"github.com/kamusis/colorname-cli/internal/logging"
)

type options struct {
	workers int
	palette Palette
	unknown RGBColor
	logger  *slog.Logger
}

// Option configures Classify, Render and Histogram.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		workers: 1,
		palette: DefaultPalette,
		logger:  logging.Discard(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithWorkers splits the rows of the image across n goroutines. Values
// below 2 keep the transform sequential. The output does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPalette replaces DefaultPalette for Render.
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// WithUnknownColor sets the color Render writes for buckets without a named
// category. The default is black.
func WithUnknownColor(c RGBColor) Option {
	return func(o *options) {
		o.unknown = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
