package colorname

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketIndex_AllColors(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				got := BucketIndex(uint8(r), uint8(g), uint8(b))
				want := b/8 + 32*(g/8) + 1024*(r/8)
				if got != want || got < 0 || got >= Buckets {
					t.Fatalf("BucketIndex(%d,%d,%d)=%d want %d", r, g, b, got, want)
				}
			}
		}
	}
}

func TestBucketIndex_Corners(t *testing.T) {
	assert.Equal(t, 0, BucketIndex(0, 0, 0))
	assert.Equal(t, Buckets-1, BucketIndex(255, 255, 255))
	assert.Equal(t, 31*1024, BucketIndex(255, 0, 0))
	assert.Equal(t, 31*32, BucketIndex(0, 255, 0))
	assert.Equal(t, 31, BucketIndex(0, 0, 255))
	assert.Equal(t, BucketIndex(8, 16, 24), BucketIndex(15, 23, 31))
}

func TestClassify_UnsupportedSource(t *testing.T) {
	tbl := NewUniformTable(Red)
	var nilRGB *RGB

	sources := map[string]image.Image{
		"nil":       nil,
		"typed_nil": nilRGB,
		"empty":     NewRGB(image.Rectangle{}),
		"zero_rows": NewRGB(image.Rect(0, 0, 4, 0)),
		"rgba":      image.NewRGBA(image.Rect(0, 0, 2, 2)),
		"gray":      image.NewGray(image.Rect(0, 0, 2, 2)),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			dst, err := Classify(tbl, src)
			assert.Nil(t, dst)
			assert.ErrorIs(t, err, ErrUnsupportedSource)
			assert.Equal(t, StatusInvalidInput, StatusOf(err))

			rendered, err := Render(tbl, src)
			assert.Nil(t, rendered)
			assert.ErrorIs(t, err, ErrUnsupportedSource)

			_, err = CountCategories(tbl, src)
			assert.ErrorIs(t, err, ErrUnsupportedSource)
		})
	}
}

func TestClassifyInto_UnsupportedSourceLeavesDestination(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 2, 2))
	dst.Pix[0] = 99

	out, err := ClassifyInto(NewUniformTable(Red), image.NewRGBA(image.Rect(0, 0, 2, 2)), dst)
	require.ErrorIs(t, err, ErrUnsupportedSource)
	assert.Nil(t, out)
	assert.Equal(t, uint8(99), dst.Pix[0])
}

func TestClassify_NilTable(t *testing.T) {
	_, err := Classify(nil, uniformImage(2, 2, RGBColor{}))
	assert.ErrorIs(t, err, ErrNilTable)
	_, err = Render(nil, uniformImage(2, 2, RGBColor{}))
	assert.ErrorIs(t, err, ErrNilTable)
}

func TestClassify_UniformImage(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(tableText(Buckets, rowWeights)))
	require.NoError(t, err)

	for _, c := range []RGBColor{{0, 0, 0}, {12, 200, 77}, {255, 255, 255}, {97, 3, 160}} {
		img := uniformImage(7, 5, c)
		dst, err := Classify(tbl, img)
		require.NoError(t, err)
		require.Equal(t, img.Bounds(), dst.Bounds())

		want := uint8(tbl.At(BucketIndex(c.R, c.G, c.B)))
		for i, v := range dst.Pix {
			if v != want {
				t.Fatalf("color %v: pixel %d = %d want %d", c, i, v, want)
			}
		}
	}
}

func TestClassify_MatchesPerPixelLookup(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(tableText(Buckets, rowWeights)))
	require.NoError(t, err)

	img := gradientImage(33, 21)
	dst, err := Classify(tbl, img)
	require.NoError(t, err)

	for y := 0; y < 21; y++ {
		for x := 0; x < 33; x++ {
			c := img.RGBAt(x, y)
			require.Equal(t, uint8(tbl.Lookup(c.R, c.G, c.B)), dst.GrayAt(x, y).Y, "pixel (%d,%d)", x, y)
		}
	}
}

func TestClassify_NonZeroOrigin(t *testing.T) {
	img := NewRGB(image.Rect(10, 20, 14, 23))
	img.SetRGB(12, 21, RGBColor{255, 0, 0})

	ids := make([]Category, Buckets)
	ids[BucketIndex(255, 0, 0)] = Red
	tbl, err := NewTable(ids)
	require.NoError(t, err)

	dst, err := Classify(tbl, img)
	require.NoError(t, err)
	assert.Equal(t, img.Rect, dst.Rect)
	assert.Equal(t, uint8(Red), dst.GrayAt(12, 21).Y)
	assert.Equal(t, uint8(Unknown), dst.GrayAt(10, 20).Y)
}

func TestClassifyInto_ReusesMatchingDestination(t *testing.T) {
	img := gradientImage(8, 8)
	dst := image.NewGray(img.Rect)

	out, err := ClassifyInto(NewUniformTable(Green), img, dst)
	require.NoError(t, err)
	assert.Same(t, dst, out)
	for _, v := range dst.Pix {
		require.Equal(t, uint8(Green), v)
	}

	other := image.NewGray(image.Rect(0, 0, 3, 3))
	out, err = ClassifyInto(NewUniformTable(Green), img, other)
	require.NoError(t, err)
	assert.NotSame(t, other, out)
	assert.Equal(t, img.Rect, out.Rect)
}

func TestRender_UniformCategory(t *testing.T) {
	tbl := NewUniformTable(Brown)
	out, err := Render(tbl, gradientImage(19, 11))
	require.NoError(t, err)

	want := DefaultPalette[Brown-1]
	for y := 0; y < 11; y++ {
		for x := 0; x < 19; x++ {
			require.Equal(t, want, out.RGBAt(x, y))
		}
	}
}

func TestRoundTrip_CategoryOneEverywhere(t *testing.T) {
	tbl := NewUniformTable(Black)
	img := gradientImage(16, 9)

	ids, err := Classify(tbl, img)
	require.NoError(t, err)
	for _, v := range ids.Pix {
		require.Equal(t, uint8(1), v)
	}

	out, err := Render(tbl, img)
	require.NoError(t, err)
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, DefaultPalette[0], out.RGBAt(x, y))
		}
	}
}

func TestRender_UnknownCategoryUsesUnknownColor(t *testing.T) {
	img := uniformImage(3, 3, RGBColor{1, 2, 3})

	out, err := Render(NewUniformTable(Unknown), img)
	require.NoError(t, err)
	assert.Equal(t, RGBColor{}, out.RGBAt(1, 1))

	magenta := RGBColor{255, 0, 128}
	out, err = Render(NewUniformTable(Unknown), img, WithUnknownColor(magenta))
	require.NoError(t, err)
	assert.Equal(t, magenta, out.RGBAt(2, 2))

	out, err = Render(NewUniformTable(Category(200)), img, WithUnknownColor(magenta))
	require.NoError(t, err)
	assert.Equal(t, magenta, out.RGBAt(0, 0))
}

func TestRender_CustomPalette(t *testing.T) {
	p := DefaultPalette
	p[Red-1] = RGBColor{200, 10, 10}

	out, err := Render(NewUniformTable(Red), gradientImage(4, 4), WithPalette(p))
	require.NoError(t, err)
	assert.Equal(t, RGBColor{200, 10, 10}, out.RGBAt(3, 3))
}

func TestWorkers_SameResult(t *testing.T) {
	tbl, err := ReadTable(strings.NewReader(tableText(Buckets, rowWeights)))
	require.NoError(t, err)
	img := gradientImage(41, 37)

	seqIDs, err := Classify(tbl, img)
	require.NoError(t, err)
	seqRGB, err := Render(tbl, img)
	require.NoError(t, err)

	for _, n := range []int{2, 3, 8, 64} {
		ids, err := Classify(tbl, img, WithWorkers(n))
		require.NoError(t, err)
		assert.Equal(t, seqIDs.Pix, ids.Pix, "workers=%d", n)

		out, err := Render(tbl, img, WithWorkers(n))
		require.NoError(t, err)
		assert.Equal(t, seqRGB.Pix, out.Pix, "workers=%d", n)
	}
}

func TestCountCategories(t *testing.T) {
	ids := make([]Category, Buckets)
	for i := range ids {
		ids[i] = White
	}
	ids[BucketIndex(0, 0, 0)] = Black
	ids[BucketIndex(255, 0, 0)] = Unknown
	tbl, err := NewTable(ids)
	require.NoError(t, err)

	img := uniformImage(4, 2, RGBColor{200, 200, 200})
	img.SetRGB(0, 0, RGBColor{0, 0, 0})
	img.SetRGB(1, 0, RGBColor{255, 0, 0})

	h, err := CountCategories(tbl, img)
	require.NoError(t, err)
	assert.Equal(t, 8, h.Total())
	assert.Equal(t, 1, h[Black])
	assert.Equal(t, 1, h[Unknown])
	assert.Equal(t, 6, h[White])
	assert.InDelta(t, 0.75, h.Fraction(White), 1e-9)

	var empty Histogram
	assert.Zero(t, empty.Fraction(White))
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	src.SetNRGBA(1, 0, color.NRGBA{40, 50, 60, 0})

	rgb := FromImage(src)
	assert.Equal(t, RGBColor{10, 20, 30}, rgb.RGBAt(0, 0))
	assert.Equal(t, RGBColor{40, 50, 60}, rgb.RGBAt(1, 0))

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 77})
	assert.Equal(t, RGBColor{77, 77, 77}, FromImage(gray).RGBAt(0, 0))

	clone := FromImage(rgb)
	assert.Equal(t, rgb.Pix, clone.Pix)
	clone.SetRGB(0, 0, RGBColor{})
	assert.Equal(t, RGBColor{10, 20, 30}, rgb.RGBAt(0, 0))
}
