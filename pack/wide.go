package pack

const wideName = "wide"

// widePacker doubles the iteration width of the generic packer and stores two
// words per 64-bit write. On a little-endian layout a 64-bit store of
// lo|hi<<32 is the same four bytes of lo followed by the four bytes of hi.
type widePacker struct{}

var _ Packer = widePacker{}

// Wide returns the packer that consumes two iterations' worth of samples at a
// time.
func Wide() Packer {
	return widePacker{}
}

func (widePacker) Name() string        { return wideName }
func (widePacker) SampleFactor8() int  { return 2 }
func (widePacker) SampleFactor10() int { return 2 }

func (widePacker) PackLine10(y, u, v []uint16, dst []byte, n int) int {
	const step = 2 * GroupSize
	off := 0
	for i := 0; i < n-(step-1); i += step {
		c := i / 2
		yy := y[i : i+step : i+step]
		uu := u[c : c+step/2 : c+step/2]
		vv := v[c : c+step/2 : c+step/2]
		d := dst[off : off+2*GroupBytes : off+2*GroupBytes]

		le.PutUint64(d[0:], pair(
			Word(Clip10(uu[0]), Clip10(yy[0]), Clip10(vv[0])),
			Word(Clip10(yy[1]), Clip10(uu[1]), Clip10(yy[2]))))
		le.PutUint64(d[8:], pair(
			Word(Clip10(vv[1]), Clip10(yy[3]), Clip10(uu[2])),
			Word(Clip10(yy[4]), Clip10(vv[2]), Clip10(yy[5]))))
		le.PutUint64(d[16:], pair(
			Word(Clip10(uu[3]), Clip10(yy[6]), Clip10(vv[3])),
			Word(Clip10(yy[7]), Clip10(uu[4]), Clip10(yy[8]))))
		le.PutUint64(d[24:], pair(
			Word(Clip10(vv[4]), Clip10(yy[9]), Clip10(uu[5])),
			Word(Clip10(yy[10]), Clip10(vv[5]), Clip10(yy[11]))))
		off += 2 * GroupBytes
	}

	return off
}

func (widePacker) PackLine8(y, u, v []uint8, dst []byte, n int) int {
	const step = 2 * Line8Size
	off := 0
	for i := 0; i < n-(step-1); i += step {
		c := i / 2
		for g := 0; g < step/GroupSize; g++ {
			yy := y[i+g*GroupSize : i+(g+1)*GroupSize]
			uu := u[c+g*GroupSize/2 : c+(g+1)*GroupSize/2]
			vv := v[c+g*GroupSize/2 : c+(g+1)*GroupSize/2]
			d := dst[off : off+GroupBytes : off+GroupBytes]

			le.PutUint64(d[0:], pair(
				Word(Legal8(uu[0]), Legal8(yy[0]), Legal8(vv[0])),
				Word(Legal8(yy[1]), Legal8(uu[1]), Legal8(yy[2]))))
			le.PutUint64(d[8:], pair(
				Word(Legal8(vv[1]), Legal8(yy[3]), Legal8(uu[2])),
				Word(Legal8(yy[4]), Legal8(vv[2]), Legal8(yy[5]))))
			off += GroupBytes
		}
	}

	return off
}

func pair(lo, hi uint32) uint64 {
	return uint64(lo) | uint64(hi)<<32
}
