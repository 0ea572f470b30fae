package pack

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/arloliu/v210/errs"
)

// Group geometry.
const (
	GroupSize  = 6  // luma samples per group
	GroupBytes = 16 // packed bytes per group
	WordBytes  = 4  // bytes per packed word
	Line8Size  = 12 // luma samples per unrolled 8-bit iteration of the generic packer
)

var le = binary.LittleEndian

// Packer packs the bulk of a line.
//
// PackLine8 and PackLine10 consume the leading n luma samples of y and n/2
// samples of u and v, write the packed words to dst, and return the number of
// bytes written. Only whole iterations are consumed: n is expected to be a
// multiple of the variant's group, and any shorter remainder is left for the
// caller.
type Packer interface {
	// Name identifies the variant.
	Name() string
	// PackLine8 packs 8-bit samples in groups of 12*SampleFactor8 luma.
	PackLine8(y, u, v []uint8, dst []byte, n int) int
	// PackLine10 packs 10-bit samples in groups of 6*SampleFactor10 luma.
	PackLine10(y, u, v []uint16, dst []byte, n int) int
	// SampleFactor8 is the number of 12-sample groups per 8-bit iteration.
	SampleFactor8() int
	// SampleFactor10 is the number of 6-sample groups per 10-bit iteration.
	SampleFactor10() int
}

// Group10 packs y[0:6], u[0:3] and v[0:3] into dst[0:16].
func Group10(dst []byte, y, u, v []uint16) {
	_ = dst[15]
	_ = y[5]
	_ = u[2]
	_ = v[2]
	le.PutUint32(dst[0:], Word(Clip10(u[0]), Clip10(y[0]), Clip10(v[0])))
	le.PutUint32(dst[4:], Word(Clip10(y[1]), Clip10(u[1]), Clip10(y[2])))
	le.PutUint32(dst[8:], Word(Clip10(v[1]), Clip10(y[3]), Clip10(u[2])))
	le.PutUint32(dst[12:], Word(Clip10(y[4]), Clip10(v[2]), Clip10(y[5])))
}

// Group8 is Group10 for 8-bit sources.
func Group8(dst []byte, y, u, v []uint8) {
	_ = dst[15]
	_ = y[5]
	_ = u[2]
	_ = v[2]
	le.PutUint32(dst[0:], Word(Legal8(u[0]), Legal8(y[0]), Legal8(v[0])))
	le.PutUint32(dst[4:], Word(Legal8(y[1]), Legal8(u[1]), Legal8(y[2])))
	le.PutUint32(dst[8:], Word(Legal8(v[1]), Legal8(y[3]), Legal8(u[2])))
	le.PutUint32(dst[12:], Word(Legal8(y[4]), Legal8(v[2]), Legal8(y[5])))
}

// PutWord stores one packed word at dst[0:4].
func PutWord(dst []byte, w uint32) {
	le.PutUint32(dst, w)
}

var variants = map[string]Packer{
	genericName: genericPacker{},
	wideName:    widePacker{},
}

// ByName returns the variant with the given name.
func ByName(name string) (Packer, error) {
	if p, ok := variants[name]; ok {
		return p, nil
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrUnknownPacker, name)
}

// Names returns the registered variant names in sorted order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
