package colorname

// Palette maps each named category to the color used when rendering.
// Entry i holds the color of category i+1.
type Palette [NumCategories]RGBColor

// DefaultPalette is the representative color of every category.
var DefaultPalette = Palette{
	{0, 0, 0},       // black
	{0, 0, 255},     // blue
	{128, 102, 64},  // brown
	{128, 128, 128}, // grey
	{0, 255, 0},     // green
	{255, 204, 0},   // orange
	{255, 128, 255}, // pink
	{255, 0, 255},   // purple
	{255, 0, 0},     // red
	{255, 255, 255}, // white
	{255, 255, 0},   // yellow
}

// Color returns the palette color of c. ok is false when c is not a named
// category.
func (p *Palette) Color(c Category) (col RGBColor, ok bool) {
	if !c.Valid() {
		return RGBColor{}, false
	}
	return p[c-1], true
}
