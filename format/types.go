package format

type (
	PixelFormat     uint8
	CompressionType uint8
)

const (
	PixelFormatNone PixelFormat = 0x0 // PixelFormatNone marks an unset pixel format.
	YUV420P         PixelFormat = 0x1 // YUV420P is planar 8-bit 4:2:0.
	YUV422P         PixelFormat = 0x2 // YUV422P is planar 8-bit 4:2:2.
	YUV422P10       PixelFormat = 0x3 // YUV422P10 is planar 10-bit 4:2:2, one sample per uint16.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// SupportedPixelFormats lists the source formats the encoder accepts.
var SupportedPixelFormats = []PixelFormat{YUV422P10, YUV422P, YUV420P}

func (p PixelFormat) String() string {
	switch p {
	case YUV420P:
		return "yuv420p"
	case YUV422P:
		return "yuv422p"
	case YUV422P10:
		return "yuv422p10"
	default:
		return "unknown"
	}
}

// BitDepth returns the number of significant bits per sample, or 0 for
// unknown formats.
func (p PixelFormat) BitDepth() int {
	switch p {
	case YUV420P, YUV422P:
		return 8
	case YUV422P10:
		return 10
	default:
		return 0
	}
}

// ChromaHeightShift returns log2 of the vertical chroma subsampling factor.
func (p PixelFormat) ChromaHeightShift() int {
	if p == YUV420P {
		return 1
	}

	return 0
}

// ChromaRows returns the number of chroma rows for a frame of the given height.
func (p PixelFormat) ChromaRows(height int) int {
	shift := p.ChromaHeightShift()
	return (height + (1 << shift) - 1) >> shift
}

// IsSupported reports whether the encoder accepts p as a source format.
func (p PixelFormat) IsSupported() bool {
	return p.BitDepth() != 0
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
