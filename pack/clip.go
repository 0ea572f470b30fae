package pack

// Legal sample ranges.
const (
	Min10 = 4    // lowest legal 10-bit code
	Max10 = 1019 // highest legal 10-bit code
	Min8  = 1    // lowest legal 8-bit code
	Max8  = 254  // highest legal 8-bit code
)

// Sample is a planar source sample. 10-bit samples are carried in uint16.
type Sample interface {
	~uint8 | ~uint16
}

// Clip10 clamps a 10-bit sample to [Min10, Max10].
func Clip10(v uint16) uint32 {
	if v < Min10 {
		return Min10
	}
	if v > Max10 {
		return Max10
	}

	return uint32(v)
}

// Clip8 clamps an 8-bit sample to [Min8, Max8].
func Clip8(v uint8) uint32 {
	if v < Min8 {
		return Min8
	}
	if v > Max8 {
		return Max8
	}

	return uint32(v)
}

// Legal8 clamps an 8-bit sample and scales it to 10 bits.
func Legal8(v uint8) uint32 {
	return Clip8(v) << 2
}

// Word assembles three 10-bit slots into one packed word.
func Word(s0, s1, s2 uint32) uint32 {
	return s0 | s1<<10 | s2<<20
}
