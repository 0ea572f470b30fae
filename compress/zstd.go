package compress

// ZstdCompressor uses Zstandard. It gives the best ratio of the built-in
// codecs and is the usual choice for archived footage.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
