package encoder

import (
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/frame"
	"github.com/arloliu/v210/pack"
)

// layout describes the output frame and how output lines map to chroma rows.
type layout struct {
	width  int
	height int
	stride int
	chroma func(line int) int
}

// chromaRowMapper returns the chroma row used for each output line.
func chromaRowMapper(pf format.PixelFormat, interlaced bool, chromaRows int) func(int) int {
	if pf.ChromaHeightShift() == 0 {
		return func(line int) int { return line }
	}
	if !interlaced {
		return func(line int) int { return line / 2 }
	}

	// The chroma cursor is captured at line 0 of each group of four and
	// rewound at line 2, so each field pairs with its own chroma row. For
	// heights of 4k+2 the last bottom-field line would point one row past
	// the plane; it reuses the last row instead.
	last := chromaRows - 1
	return func(line int) int {
		row := line/4*2 + line%2
		if row > last {
			return last
		}

		return row
	}
}

// packRows packs every line of planes into dst.
//
// groupSize is the number of luma samples packLine consumes per iteration.
// group and legal pack the scalar tail with the same clamping as packLine.
func packRows[T pack.Sample](
	dst []byte,
	planes [3]frame.Plane[T],
	l layout,
	packLine func(y, u, v []T, dst []byte, n int) int,
	groupSize int,
	group func(dst []byte, y, u, v []T),
	legal func(T) uint32,
) {
	width, cw := l.width, l.width/2
	bulk := width / groupSize * groupSize

	for h := 0; h < l.height; h++ {
		c := l.chroma(h)
		y := planes[frame.PlaneY].Row(h, width)
		u := planes[frame.PlaneU].Row(c, cw)
		v := planes[frame.PlaneV].Row(c, cw)
		line := dst[h*l.stride : (h+1)*l.stride]

		off := packLine(y[:bulk], u[:bulk/2], v[:bulk/2], line, bulk)
		off = packTail(line, off, y[bulk:], u[bulk/2:], v[bulk/2:], group, legal)
		clear(line[off:])
	}
}

// packTail packs the samples the bulk packer left over and returns the new
// write offset.
//
// Whole groups of six are packed first. Even widths then leave zero, two or
// four luma samples, which are folded into whole words:
//
//	2 left: [U0 Y0 V0] [Y1 -- --]
//	4 left: [U0 Y0 V0] [Y1 U1 Y2] [V1 Y3 --]
func packTail[T pack.Sample](
	line []byte, off int,
	y, u, v []T,
	group func(dst []byte, y, u, v []T),
	legal func(T) uint32,
) int {
	for len(y) >= pack.GroupSize {
		group(line[off:], y, u, v)
		y, u, v = y[pack.GroupSize:], u[pack.GroupSize/2:], v[pack.GroupSize/2:]
		off += pack.GroupBytes
	}

	switch len(y) {
	case 2:
		pack.PutWord(line[off:], pack.Word(legal(u[0]), legal(y[0]), legal(v[0])))
		pack.PutWord(line[off+4:], legal(y[1]))
		off += 2 * pack.WordBytes
	case 4:
		pack.PutWord(line[off:], pack.Word(legal(u[0]), legal(y[0]), legal(v[0])))
		pack.PutWord(line[off+4:], pack.Word(legal(y[1]), legal(u[1]), legal(y[2])))
		pack.PutWord(line[off+8:], pack.Word(legal(v[1]), legal(y[3]), 0))
		off += 3 * pack.WordBytes
	}

	return off
}
