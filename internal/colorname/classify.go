package colorname

import (
	"image"

	"golang.org/x/sync/errgroup"
)

// Classify writes the category id of every pixel of src into a new
// single-channel image with the same bounds.
//
// src must be a non-empty *RGB; anything else fails with
// ErrUnsupportedSource before any allocation. Ids are copied from the table
// verbatim, so Unknown buckets produce 0.
func Classify(t *Table, src image.Image, opts ...Option) (*image.Gray, error) {
	return ClassifyInto(t, src, nil, opts...)
}

// ClassifyInto is Classify with a reusable destination. dst is written in
// place when its bounds equal those of src; otherwise a new image is
// allocated. The populated destination is returned.
func ClassifyInto(t *Table, src image.Image, dst *image.Gray, opts ...Option) (*image.Gray, error) {
	s, err := checkSource(t, src)
	if err != nil {
		return nil, err
	}
	if dst == nil || dst.Rect != s.Rect {
		dst = image.NewGray(s.Rect)
	}
	o := newOptions(opts)

	w := s.Rect.Dx()
	forEachRow(o, s.Rect, func(y int) {
		sp := s.Pix[s.PixOffset(s.Rect.Min.X, y):]
		dp := dst.Pix[dst.PixOffset(s.Rect.Min.X, y):]
		for x := 0; x < w; x++ {
			i := x * 3
			dp[x] = uint8(t.ids[BucketIndex(sp[i], sp[i+1], sp[i+2])])
		}
	})
	o.logger.Debug("classified image", "width", w, "height", s.Rect.Dy(), "workers", o.workers)
	return dst, nil
}

// Render replaces every pixel of src by the palette color of its category,
// returning a new image with the same bounds. Buckets without a named
// category are drawn in the unknown color (see WithUnknownColor).
func Render(t *Table, src image.Image, opts ...Option) (*RGB, error) {
	s, err := checkSource(t, src)
	if err != nil {
		return nil, err
	}
	dst := NewRGB(s.Rect)
	o := newOptions(opts)

	w := s.Rect.Dx()
	forEachRow(o, s.Rect, func(y int) {
		sp := s.Pix[s.PixOffset(s.Rect.Min.X, y):]
		dp := dst.Pix[dst.PixOffset(s.Rect.Min.X, y):]
		for x := 0; x < w; x++ {
			i := x * 3
			c, ok := o.palette.Color(t.ids[BucketIndex(sp[i], sp[i+1], sp[i+2])])
			if !ok {
				c = o.unknown
			}
			dp[i+0] = c.R
			dp[i+1] = c.G
			dp[i+2] = c.B
		}
	})
	o.logger.Debug("rendered image", "width", w, "height", s.Rect.Dy(), "workers", o.workers)
	return dst, nil
}

// Histogram counts the pixels of each category. Index 0 counts pixels whose
// bucket has no named category.
type Histogram [NumCategories + 1]int

// Total returns the number of counted pixels.
func (h *Histogram) Total() int {
	var n int
	for _, v := range h {
		n += v
	}
	return n
}

// Fraction returns the share of pixels in category c, or 0 for an empty
// histogram.
func (h *Histogram) Fraction(c Category) float64 {
	total := h.Total()
	if total == 0 || int(c) >= len(h) {
		return 0
	}
	return float64(h[c]) / float64(total)
}

// CountCategories classifies src and tallies the result per category.
// Preconditions match Classify.
func CountCategories(t *Table, src image.Image) (Histogram, error) {
	var h Histogram
	s, err := checkSource(t, src)
	if err != nil {
		return h, err
	}
	w := s.Rect.Dx()
	for y := s.Rect.Min.Y; y < s.Rect.Max.Y; y++ {
		sp := s.Pix[s.PixOffset(s.Rect.Min.X, y):]
		for x := 0; x < w; x++ {
			i := x * 3
			c := t.ids[BucketIndex(sp[i], sp[i+1], sp[i+2])]
			if !c.Valid() {
				c = Unknown
			}
			h[c]++
		}
	}
	return h, nil
}

func checkSource(t *Table, src image.Image) (*RGB, error) {
	s, ok := src.(*RGB)
	if !ok || s.Empty() {
		return nil, ErrUnsupportedSource
	}
	if t == nil {
		return nil, ErrNilTable
	}
	return s, nil
}

// forEachRow calls fn for every row of r. With more than one worker the rows
// are split into contiguous bands, each handled by its own goroutine. fn
// must only write to row y of the destination.
func forEachRow(o options, r image.Rectangle, fn func(y int)) {
	if o.workers <= 1 || r.Dy() < 2 {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			fn(y)
		}
		return
	}

	workers := min(o.workers, r.Dy())
	band := (r.Dy() + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := r.Min.Y; start < r.Max.Y; start += band {
		end := min(start+band, r.Max.Y)
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}
