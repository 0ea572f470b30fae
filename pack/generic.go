package pack

const genericName = "generic"

// genericPacker packs one group per iteration for 10-bit input and two groups
// per iteration for 8-bit input.
type genericPacker struct{}

var _ Packer = genericPacker{}

// Generic returns the portable packer.
func Generic() Packer {
	return genericPacker{}
}

func (genericPacker) Name() string        { return genericName }
func (genericPacker) SampleFactor8() int  { return 1 }
func (genericPacker) SampleFactor10() int { return 1 }

func (genericPacker) PackLine10(y, u, v []uint16, dst []byte, n int) int {
	off := 0
	for i := 0; i < n-(GroupSize-1); i += GroupSize {
		c := i / 2
		Group10(dst[off:], y[i:], u[c:], v[c:])
		off += GroupBytes
	}

	return off
}

func (genericPacker) PackLine8(y, u, v []uint8, dst []byte, n int) int {
	off := 0
	for i := 0; i < n-(Line8Size-1); i += Line8Size {
		c := i / 2
		Group8(dst[off:], y[i:], u[c:], v[c:])
		Group8(dst[off+GroupBytes:], y[i+GroupSize:], u[c+GroupSize/2:], v[c+GroupSize/2:])
		off += 2 * GroupBytes
	}

	return off
}
