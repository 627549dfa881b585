package colorname

const (
	// Levels is the number of quantization levels per color channel.
	Levels = 32
	// Step is the width of one quantization level.
	Step = 256 / Levels
	// Buckets is the number of distinct quantized colors and the exact row
	// count of a color name table.
	Buckets = Levels * Levels * Levels
)

// BucketIndex returns the table index for a pixel. Each channel is quantized
// to Levels values; red is the most significant channel.
func BucketIndex(r, g, b uint8) int {
	return int(b)/Step + int(g)/Step*Levels + int(r)/Step*Levels*Levels
}
