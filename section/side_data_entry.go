package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/frame"
)

// AppendSideData appends the entry encoding of sd to dst.
func AppendSideData(dst []byte, sd frame.SideData) []byte {
	var hdr [SideDataEntrySize]byte
	hdr[0] = uint8(sd.Type)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(sd.Data))) //nolint:gosec
	dst = append(dst, hdr[:]...)

	return append(dst, sd.Data...)
}

// SideDataSize returns the encoded size of list.
func SideDataSize(list []frame.SideData) int {
	n := 0
	for _, sd := range list {
		n += SideDataEntrySize + len(sd.Data)
	}

	return n
}

// ParseSideData decodes exactly count entries that fill data. The returned
// blocks alias data.
func ParseSideData(data []byte, count int) ([]frame.SideData, error) {
	list := make([]frame.SideData, 0, count)
	for i := 0; i < count; i++ {
		if len(data) < SideDataEntrySize {
			return nil, fmt.Errorf("%w: side data entry %d truncated", errs.ErrInvalidRecord, i)
		}
		if !allZero(data[1:4]) {
			return nil, fmt.Errorf("%w: side data entry %d reserved bytes set", errs.ErrInvalidRecord, i)
		}
		t := frame.SideDataType(data[0])
		n := binary.LittleEndian.Uint32(data[4:8])
		data = data[SideDataEntrySize:]
		if uint64(n) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: side data entry %d length %d exceeds record", errs.ErrInvalidRecord, i, n)
		}
		list = append(list, frame.SideData{Type: t, Data: data[:n:n]})
		data = data[n:]
	}
	if len(data) != 0 {
		return nil, fmt.Errorf("%w: %d trailing side data bytes", errs.ErrInvalidRecord, len(data))
	}

	return list, nil
}
