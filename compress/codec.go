package compress

import (
	"fmt"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
)

// Compressor compresses one payload.
//
// The returned slice is owned by the caller; the input is not modified. A
// codec may return the input itself when it does not transform data.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// It returns an error if the data is corrupted or was produced by another
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// SizedDecompressor is implemented by codecs whose format does not record the
// decoded size, so they decode best when the caller knows it.
type SizedDecompressor interface {
	DecompressSized(data []byte, size int) ([]byte, error)
}

// DecompressSized decodes data that should expand to exactly size bytes.
// Codecs that do not implement SizedDecompressor fall back to Decompress;
// the caller still checks the result length.
func DecompressSized(d Decompressor, data []byte, size int) ([]byte, error) {
	if sd, ok := d.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	return d.Decompress(data)
}

// CompressionStats accumulates sizes over a series of compressed payloads.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the total size of the payloads before compression
	OriginalSize int64

	// CompressedSize is the total size of the payloads after compression
	CompressedSize int64

	// CompressionTimeNs is the total time spent compressing
	CompressionTimeNs int64
}

// Add records one compressed payload.
func (s *CompressionStats) Add(original, compressed int, elapsedNs int64) {
	s.OriginalSize += int64(original)
	s.CompressedSize += int64(compressed)
	s.CompressionTimeNs += elapsedNs
}

// CompressionRatio returns compressed size / original size, or 0 when nothing
// has been recorded.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a codec for compressionType. Target names the payload
// in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}
