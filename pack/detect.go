package pack

import "golang.org/x/sys/cpu"

// Detect returns the packer best suited to the host CPU. It is meant to be
// called once when an encoder is built.
func Detect() Packer {
	if hasWideVectors() {
		return Wide()
	}

	return Generic()
}

func hasWideVectors() bool {
	return cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
}
