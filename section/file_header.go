package section

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
)

// FileHeader describes the stream stored in an archive.
type FileHeader struct {
	Version     uint16                 // byte offset 4-5
	PixelFormat format.PixelFormat     // byte offset 6, source format of the packed frames
	Compression format.CompressionType // byte offset 7, payload compression
	Width       uint32                 // byte offset 8-11
	Height      uint32                 // byte offset 12-15
	Stride      uint32                 // byte offset 16-19, packed line size in bytes
	Flags       uint32                 // byte offset 20-23
	StreamID    uuid.UUID              // byte offset 24-39
}

// NewFileHeader creates a version 1 header with a fresh random stream ID.
func NewFileHeader(pf format.PixelFormat, width, height, stride int) *FileHeader {
	return &FileHeader{
		Version:     Version,
		PixelFormat: pf,
		Compression: format.CompressionNone,
		Width:       uint32(width),  //nolint:gosec
		Height:      uint32(height), //nolint:gosec
		Stride:      uint32(stride), //nolint:gosec
		StreamID:    uuid.New(),
	}
}

// IsInterlaced reports whether the interlaced flag is set.
func (h *FileHeader) IsInterlaced() bool {
	return h.Flags&FileFlagInterlaced != 0
}

// SetInterlaced sets or clears the interlaced flag.
func (h *FileHeader) SetInterlaced(v bool) {
	if v {
		h.Flags |= FileFlagInterlaced
	} else {
		h.Flags &^= FileFlagInterlaced
	}
}

// FrameSize returns the packed size of one frame.
func (h *FileHeader) FrameSize() int {
	return int(h.Height) * int(h.Stride)
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 48 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrUnsupportedVersion or
//     a field validation error
func (h *FileHeader) Parse(data []byte) error {
	if len(data) != FileHeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if string(data[0:4]) != Magic {
		return errs.ErrInvalidMagic
	}

	h.Version = binary.LittleEndian.Uint16(data[4:6])
	h.PixelFormat = format.PixelFormat(data[6])
	h.Compression = format.CompressionType(data[7])
	h.Width = binary.LittleEndian.Uint32(data[8:12])
	h.Height = binary.LittleEndian.Uint32(data[12:16])
	h.Stride = binary.LittleEndian.Uint32(data[16:20])
	h.Flags = binary.LittleEndian.Uint32(data[20:24])
	copy(h.StreamID[:], data[24:40])

	if !allZero(data[40:48]) {
		return fmt.Errorf("%w: reserved bytes set", errs.ErrInvalidRecord)
	}

	return h.Validate()
}

// Validate checks the header fields.
func (h *FileHeader) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}
	if !h.PixelFormat.IsSupported() {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedPixelFormat, h.PixelFormat)
	}
	if !validCompression(h.Compression) {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, h.Compression)
	}
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, h.Width, h.Height)
	}
	if h.Width&1 != 0 {
		return fmt.Errorf("%w: width %d", errs.ErrOddWidth, h.Width)
	}
	if h.Stride == 0 || h.Stride%4 != 0 {
		return fmt.Errorf("%w: stride %d", errs.ErrInvalidStride, h.Stride)
	}
	if h.Flags&^fileFlagsKnown != 0 {
		return fmt.Errorf("%w: unknown file flags %#x", errs.ErrInvalidRecord, h.Flags)
	}
	if uint64(h.Height)*uint64(h.Stride) > MaxRecordSize {
		return fmt.Errorf("%w: frame size %d exceeds %d", errs.ErrInvalidRecord, uint64(h.Height)*uint64(h.Stride), MaxRecordSize)
	}

	return nil
}

// Bytes serializes the header into a new 48-byte slice.
func (h *FileHeader) Bytes() []byte {
	b := make([]byte, FileHeaderSize)
	copy(b[0:4], Magic)
	binary.LittleEndian.PutUint16(b[4:6], h.Version)
	b[6] = uint8(h.PixelFormat)
	b[7] = uint8(h.Compression)
	binary.LittleEndian.PutUint32(b[8:12], h.Width)
	binary.LittleEndian.PutUint32(b[12:16], h.Height)
	binary.LittleEndian.PutUint32(b[16:20], h.Stride)
	binary.LittleEndian.PutUint32(b[20:24], h.Flags)
	copy(b[24:40], h.StreamID[:])

	return b
}

// ParseFileHeader parses a FileHeader from the start of data.
//
// Returns:
//   - FileHeader: Parsed header
//   - error: ErrInvalidHeaderSize if data is shorter than 48 bytes, or any
//     error from Parse
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < FileHeaderSize {
		return FileHeader{}, errs.ErrInvalidHeaderSize
	}

	h := FileHeader{}
	if err := h.Parse(data[:FileHeaderSize]); err != nil {
		return FileHeader{}, err
	}

	return h, nil
}

func validCompression(c format.CompressionType) bool {
	switch c {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return true
	default:
		return false
	}
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}

	return true
}
