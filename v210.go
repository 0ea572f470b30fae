// Package v210 converts planar YUV frames into the v210 packed 10-bit 4:2:2
// layout used by SDI capture and playout cards and by uncompressed QuickTime
// and MXF files.
//
// v210 stores three 10-bit samples in each little-endian 32-bit word and six
// pixels in every 16 bytes:
//
//	word 0: U0 Y0 V0
//	word 1: Y1 U1 Y2
//	word 2: V1 Y3 U2
//	word 3: Y4 V2 Y5
//
// Each line is padded to a multiple of 48 pixels (128 bytes), so the line
// stride depends only on the frame width.
//
// # Core Features
//
//   - 10-bit 4:2:2 sources are clamped to the legal range [4, 1019]
//   - 8-bit 4:2:2 and 4:2:0 sources are clamped to [1, 254] and scaled to 10 bits
//   - 4:2:0 chroma is reused across line pairs, or across same-field lines for
//     interlaced frames
//   - Byte-identical generic and wide packers, chosen from CPU features
//   - Frame side data (captions, AFD, bar data) carried into packets
//   - A checksummed archive container with optional Zstd, S2 or LZ4 compression
//
// # Basic Usage
//
//	enc, err := v210.NewEncoder(1920, 1080)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, _ := frame.New(format.YUV422P10, 1920, 1080, 0)
//	// ... fill f.Planes16 ...
//
//	pkt, err := enc.Encode(f)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained control
// use the encoder, pack, frame and archive packages directly.
package v210

import (
	"io"

	"github.com/arloliu/v210/archive"
	"github.com/arloliu/v210/encoder"
	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/frame"
	"github.com/arloliu/v210/internal/hash"
)

// NewEncoder creates an encoder for width x height frames.
//
// Available options:
//   - encoder.WithPacker(pack.Generic()) / encoder.WithPackerName("wide")
//   - encoder.WithAllocator(encoder.NewPoolAllocator(size))
//   - encoder.WithLogger(logger)
//
// Returns an error if width is odd or either dimension is not positive.
func NewEncoder(width, height int, opts ...encoder.Option) (*encoder.Encoder, error) {
	return encoder.New(width, height, opts...)
}

// NewPooledEncoder creates an encoder that recycles frame buffers. Call
// Packet.Release once a packet has been consumed to return its buffer.
func NewPooledEncoder(width, height int, opts ...encoder.Option) (*encoder.Encoder, error) {
	alloc := encoder.NewPoolAllocator(encoder.FrameSize(width, height))
	return encoder.New(width, height, append([]encoder.Option{encoder.WithAllocator(alloc)}, opts...)...)
}

// Encode packs a single frame. For more than one frame create an Encoder and
// reuse it.
func Encode(f *frame.Frame, opts ...encoder.Option) (*encoder.Packet, error) {
	if f == nil {
		return nil, errs.ErrNilFrame
	}
	enc, err := encoder.New(f.Width, f.Height, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(f)
}

// Stride returns the packed line size in bytes for width pixels.
func Stride(width int) int {
	return encoder.Stride(width)
}

// FrameSize returns the packed frame size in bytes.
func FrameSize(width, height int) int {
	return encoder.FrameSize(width, height)
}

// NewArchiveWriter writes an archive header for the encoder's geometry and
// returns a writer for its packets.
func NewArchiveWriter(w io.Writer, enc *encoder.Encoder, pf format.PixelFormat, opts ...archive.Option) (*archive.Writer, error) {
	return archive.NewWriter(w, enc.Width(), enc.Height(), pf, opts...)
}

// NewArchiveReader opens an archive written by NewArchiveWriter.
func NewArchiveReader(r io.Reader, opts ...archive.Option) (*archive.Reader, error) {
	return archive.NewReader(r, opts...)
}

// Checksum returns the xxHash64 of a packed frame, the same hash archive
// records use. It is handy for comparing encoder output across runs.
func Checksum(data []byte) uint64 {
	return hash.Checksum(data)
}
