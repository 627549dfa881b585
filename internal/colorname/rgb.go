package colorname

import (
	"image"
	"image/color"
)

// RGBColor is an opaque 24-bit color.
type RGBColor struct {
	R, G, B uint8
}

func (c RGBColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// RGBModel converts any color to RGBColor, discarding alpha.
var RGBModel color.Model = color.ModelFunc(rgbModel)

func rgbModel(c color.Color) color.Color {
	if c, ok := c.(RGBColor); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBColor{n.R, n.G, n.B}
}

// RGB is an in-memory image of 3-byte pixels stored as R, G, B.
type RGB struct {
	// Pix holds the pixels in row-major order. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB returns a new RGB image with the given bounds.
func NewRGB(r image.Rectangle) *RGB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &RGB{
		Pix:    make([]uint8, 3*w*h),
		Stride: 3 * w,
		Rect:   r,
	}
}

func (p *RGB) ColorModel() color.Model { return RGBModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

// RGBAt returns the pixel at (x, y), or the zero color outside the bounds.
func (p *RGB) RGBAt(x, y int) RGBColor {
	if !(image.Point{x, y}.In(p.Rect)) {
		return RGBColor{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return RGBColor{s[0], s[1], s[2]}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB) Set(x, y int, c color.Color) {
	p.SetRGB(x, y, rgbModel(c).(RGBColor))
}

// SetRGB sets the pixel at (x, y); points outside the bounds are ignored.
func (p *RGB) SetRGB(x, y int, c RGBColor) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
}

// Empty reports whether the image has no pixels.
func (p *RGB) Empty() bool {
	return p == nil || p.Rect.Empty()
}

// FromImage copies img into a new RGB image with the same bounds. Alpha is
// dropped; no other color conversion takes place.
func FromImage(img image.Image) *RGB {
	if src, ok := img.(*RGB); ok {
		dst := NewRGB(src.Rect)
		for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(dst.Rect.Min.X, y):], src.Pix[src.PixOffset(src.Rect.Min.X, y):src.PixOffset(src.Rect.Max.X, y)])
		}
		return dst
	}
	b := img.Bounds()
	dst := NewRGB(b)
	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			sp := src.Pix[src.PixOffset(b.Min.X, y):]
			dp := dst.Pix[dst.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				dp[x*3+0] = sp[x*4+0]
				dp[x*3+1] = sp[x*4+1]
				dp[x*3+2] = sp[x*4+2]
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetRGB(x, y, rgbModel(img.At(x, y)).(RGBColor))
			}
		}
	}
	return dst
}
