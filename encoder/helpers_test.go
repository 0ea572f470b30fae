package encoder

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/frame"
	"github.com/arloliu/v210/pack"
)

var allFormats = []format.PixelFormat{format.YUV422P10, format.YUV422P, format.YUV420P}

func allPackers() []pack.Packer {
	return []pack.Packer{pack.Generic(), pack.Wide()}
}

// newTestFrame allocates a frame with padded strides and fills it with random
// samples. With legalOnly, samples stay inside the clamp range.
func newTestFrame(t testing.TB, rng *rand.Rand, pf format.PixelFormat, w, h int, legalOnly bool) *frame.Frame {
	t.Helper()
	f, err := frame.New(pf, w, h, 32)
	require.NoError(t, err)

	if pf.BitDepth() > 8 {
		for i := range f.Planes16 {
			for j := range f.Planes16[i].Data {
				if legalOnly {
					f.Planes16[i].Data[j] = uint16(pack.Min10 + rng.Intn(pack.Max10-pack.Min10+1))
				} else {
					f.Planes16[i].Data[j] = uint16(rng.Intn(1 << 11))
				}
			}
		}

		return f
	}

	for i := range f.Planes8 {
		for j := range f.Planes8[i].Data {
			if legalOnly {
				f.Planes8[i].Data[j] = uint8(pack.Min8 + rng.Intn(pack.Max8-pack.Min8+1))
			} else {
				f.Planes8[i].Data[j] = uint8(rng.Intn(256))
			}
		}
	}

	return f
}

// legalSamples returns the clamped 10-bit values of pixels x and x+1 of line
// h, reading chroma from row c.
func legalSamples(f *frame.Frame, h, c, x int) (y0, y1, u, v uint32) {
	if f.Format.BitDepth() > 8 {
		p := f.Planes16
		return pack.Clip10(p[0].Data[h*p[0].Stride+x]),
			pack.Clip10(p[0].Data[h*p[0].Stride+x+1]),
			pack.Clip10(p[1].Data[c*p[1].Stride+x/2]),
			pack.Clip10(p[2].Data[c*p[2].Stride+x/2])
	}
	p := f.Planes8

	return pack.Legal8(p[0].Data[h*p[0].Stride+x]),
		pack.Legal8(p[0].Data[h*p[0].Stride+x+1]),
		pack.Legal8(p[1].Data[c*p[1].Stride+x/2]),
		pack.Legal8(p[2].Data[c*p[2].Stride+x/2])
}

// referencePack packs f one sample at a time: the line is written as the
// sequence U0 Y0 V0 Y1 U1 Y2 V1 Y3 ..., three samples per word, with a
// zero-filled final word and zero line padding.
func referencePack(f *frame.Frame, chromaRow func(int) int) []byte {
	stride := Stride(f.Width)
	out := make([]byte, f.Height*stride)
	for h := 0; h < f.Height; h++ {
		seq := make([]uint32, 0, 2*f.Width)
		c := chromaRow(h)
		for x := 0; x < f.Width; x += 2 {
			y0, y1, u, v := legalSamples(f, h, c, x)
			seq = append(seq, u, y0, v, y1)
		}

		line := out[h*stride : (h+1)*stride]
		for i := 0; i < len(seq); i += 3 {
			var s [3]uint32
			copy(s[:], seq[i:min(i+3, len(seq))])
			binary.LittleEndian.PutUint32(line[i/3*4:], s[0]|s[1]<<10|s[2]<<20)
		}
	}

	return out
}

// unpackedLine holds the 10-bit samples recovered from one packed line.
type unpackedLine struct {
	Y, U, V []uint32
}

// unpackLine reverses the packing of one line of width pixels.
func unpackLine(t testing.TB, line []byte, width int) unpackedLine {
	t.Helper()
	seq := make([]uint32, 0, len(line)/4*3)
	for off := 0; off+4 <= len(line); off += 4 {
		w := binary.LittleEndian.Uint32(line[off:])
		require.Zero(t, w>>30, "padding bits set in word at %d", off)
		seq = append(seq, w&0x3ff, (w>>10)&0x3ff, (w>>20)&0x3ff)
	}

	out := unpackedLine{
		Y: make([]uint32, width),
		U: make([]uint32, width/2),
		V: make([]uint32, width/2),
	}
	for k := 0; k < width/2; k++ {
		out.U[k] = seq[4*k]
		out.Y[2*k] = seq[4*k+1]
		out.V[k] = seq[4*k+2]
		out.Y[2*k+1] = seq[4*k+3]
	}

	return out
}

func unpackFrame(t testing.TB, data []byte, width, height int) []unpackedLine {
	t.Helper()
	stride := Stride(width)
	lines := make([]unpackedLine, height)
	for h := range lines {
		lines[h] = unpackLine(t, data[h*stride:h*stride+ContentBytes(width)], width)
	}

	return lines
}

// countingPacker records the sample counts handed to the bulk packer.
type countingPacker struct {
	pack.Packer
	counts []int
}

func (c *countingPacker) PackLine8(y, u, v []uint8, dst []byte, n int) int {
	c.counts = append(c.counts, n)
	return c.Packer.PackLine8(y, u, v, dst, n)
}

func (c *countingPacker) PackLine10(y, u, v []uint16, dst []byte, n int) int {
	c.counts = append(c.counts, n)
	return c.Packer.PackLine10(y, u, v, dst, n)
}
