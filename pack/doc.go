// Package pack implements the v210 line packers.
//
// v210 stores 4:2:2 video as little-endian 32-bit words, each holding three
// 10-bit samples and two zero padding bits:
//
//	bit  31 30 | 29 ........ 20 | 19 ........ 10 | 9 .......... 0
//	      0  0 |   sample 2     |   sample 1     |   sample 0
//
// Six luma samples and their three U and three V samples make one group of
// four words (16 bytes):
//
//	word 0: U0 Y0 V0
//	word 1: Y1 U1 Y2
//	word 2: V1 Y3 U2
//	word 3: Y4 V2 Y5
//
// Samples are clamped to the legal range before packing. 10-bit samples are
// clamped to [4, 1019]; codes 0-3 and 1020-1023 are reserved for timing
// reference signals. 8-bit samples are clamped to [1, 254] and shifted left by
// two, so the low two bits of an upscaled sample are always zero.
//
// # Variants
//
// A Packer packs the bulk of a line. Every variant produces byte-identical
// output; they differ only in how many groups one loop iteration consumes,
// which the encoder reads through SampleFactor8 and SampleFactor10 to size the
// bulk part of each line:
//
//	p := pack.Detect()            // Wide on AVX2/ASIMD hosts, Generic elsewhere
//	n := p.PackLine10(y, u, v, dst, width)
//
// Packers hold no state and are safe for concurrent use.
package pack
