package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/v210/errs"
)

// RecordHeader precedes each packet in an archive.
type RecordHeader struct {
	PTS           int64  // byte offset 0-7
	Flags         uint32 // byte offset 8-11
	RawSize       uint32 // byte offset 12-15, payload size before compression
	StoredSize    uint32 // byte offset 16-19, payload size as written
	SideDataCount uint16 // byte offset 20-21
	Checksum      uint64 // byte offset 24-31, xxHash64 of side data and raw payload
	SideDataBytes uint32 // byte offset 32-35, total size of the side data entries
}

// IsKey reports whether the key flag is set.
func (h *RecordHeader) IsKey() bool {
	return h.Flags&RecordFlagKey != 0
}

// SetKey sets or clears the key flag.
func (h *RecordHeader) SetKey(v bool) {
	if v {
		h.Flags |= RecordFlagKey
	} else {
		h.Flags &^= RecordFlagKey
	}
}

// BodySize returns the number of bytes that follow the header.
func (h *RecordHeader) BodySize() int {
	return int(h.SideDataBytes) + int(h.StoredSize)
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 40 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 40 bytes, ErrInvalidRecord
//     if a field is out of range
func (h *RecordHeader) Parse(data []byte) error {
	if len(data) != RecordHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.PTS = int64(binary.LittleEndian.Uint64(data[0:8])) //nolint:gosec
	h.Flags = binary.LittleEndian.Uint32(data[8:12])
	h.RawSize = binary.LittleEndian.Uint32(data[12:16])
	h.StoredSize = binary.LittleEndian.Uint32(data[16:20])
	h.SideDataCount = binary.LittleEndian.Uint16(data[20:22])
	h.Checksum = binary.LittleEndian.Uint64(data[24:32])
	h.SideDataBytes = binary.LittleEndian.Uint32(data[32:36])

	if !allZero(data[22:24]) || !allZero(data[36:40]) {
		return fmt.Errorf("%w: reserved bytes set", errs.ErrInvalidRecord)
	}

	return h.Validate()
}

// Validate checks the header fields.
func (h *RecordHeader) Validate() error {
	if h.Flags&^recordFlagsKnown != 0 {
		return fmt.Errorf("%w: unknown record flags %#x", errs.ErrInvalidRecord, h.Flags)
	}
	if h.RawSize > MaxRecordSize || h.StoredSize > MaxRecordSize {
		return fmt.Errorf("%w: payload size %d/%d exceeds %d", errs.ErrInvalidRecord, h.RawSize, h.StoredSize, MaxRecordSize)
	}
	if h.SideDataCount > MaxSideDataEntries {
		return fmt.Errorf("%w: %d side data entries", errs.ErrInvalidRecord, h.SideDataCount)
	}
	if int(h.SideDataBytes) < int(h.SideDataCount)*SideDataEntrySize {
		return fmt.Errorf("%w: %d side data bytes for %d entries", errs.ErrInvalidRecord, h.SideDataBytes, h.SideDataCount)
	}
	if h.SideDataBytes > MaxRecordSize {
		return fmt.Errorf("%w: side data size %d exceeds %d", errs.ErrInvalidRecord, h.SideDataBytes, MaxRecordSize)
	}

	return nil
}

// Bytes serializes the header into a new 40-byte slice.
func (h *RecordHeader) Bytes() []byte {
	b := make([]byte, RecordHeaderSize)
	h.PutBytes(b)

	return b
}

// PutBytes serializes the header into b, which must hold RecordHeaderSize
// bytes.
func (h *RecordHeader) PutBytes(b []byte) {
	_ = b[RecordHeaderSize-1]
	binary.LittleEndian.PutUint64(b[0:8], uint64(h.PTS)) //nolint:gosec
	binary.LittleEndian.PutUint32(b[8:12], h.Flags)
	binary.LittleEndian.PutUint32(b[12:16], h.RawSize)
	binary.LittleEndian.PutUint32(b[16:20], h.StoredSize)
	binary.LittleEndian.PutUint16(b[20:22], h.SideDataCount)
	clear(b[22:24])
	binary.LittleEndian.PutUint64(b[24:32], h.Checksum)
	binary.LittleEndian.PutUint32(b[32:36], h.SideDataBytes)
	clear(b[36:40])
}
