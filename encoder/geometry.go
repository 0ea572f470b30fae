package encoder

import "github.com/arloliu/v210/pack"

// LineAlign is the number of pixels a v210 line is padded to.
const LineAlign = 48

// BitsPerCodedSample is the average number of coded bits per pixel: 10-bit
// luma plus half-rate 10-bit U and V.
const BitsPerCodedSample = 20

// Stride returns the number of bytes per packed line for width pixels.
// Lines are padded to a multiple of 48 pixels, which pack into 128 bytes.
func Stride(width int) int {
	aligned := (width + LineAlign - 1) / LineAlign * LineAlign
	return aligned * 8 / 3
}

// ContentBytes returns the number of bytes of packed words in a line of width
// pixels; the rest of the stride is padding.
func ContentBytes(width int) int {
	return (width*8 + 11) / 12 * pack.WordBytes
}

// LinePadding returns the number of zero bytes at the end of each line.
func LinePadding(width int) int {
	return Stride(width) - ContentBytes(width)
}

// FrameSize returns the size of a packed frame in bytes.
func FrameSize(width, height int) int {
	return height * Stride(width)
}

// EstimateBitRate returns the bit rate of a v210 stream in bits per second.
// The raw rate at BitsPerCodedSample is scaled by 16/15 to account for the
// two padding bits in every 30-bit word.
func EstimateBitRate(width, height int, fps float64) int64 {
	raw := float64(width) * float64(height) * BitsPerCodedSample * fps
	return int64(raw * 16 / 15)
}
