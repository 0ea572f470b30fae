// Package frame describes planar YUV input frames and the metadata that
// travels with them.
//
// A Frame borrows its sample buffers; nothing in this module writes to them.
// 8-bit formats use Planes8 and 10-bit formats use Planes16, both ordered
// Y, U, V. Strides are in samples, not bytes, and may exceed the row width.
package frame

import (
	"fmt"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/pack"
)

// Plane indices.
const (
	PlaneY = 0
	PlaneU = 1
	PlaneV = 2
)

// Plane is one component of a frame.
type Plane[T pack.Sample] struct {
	Data   []T
	Stride int // samples per row, including any trailing padding
}

// Row returns the first n samples of row r.
func (p Plane[T]) Row(r, n int) []T {
	start := r * p.Stride
	return p.Data[start : start+n : start+n]
}

// check verifies that rows of width samples fit in the plane.
func (p Plane[T]) check(name string, width, rows int) error {
	if p.Stride < width {
		return fmt.Errorf("%w: %s plane stride %d < width %d", errs.ErrInvalidStride, name, p.Stride, width)
	}
	if rows == 0 {
		return nil
	}
	need := (rows-1)*p.Stride + width
	if len(p.Data) < need {
		return fmt.Errorf("%w: %s plane has %d samples, need %d", errs.ErrShortPlane, name, len(p.Data), need)
	}

	return nil
}

// Frame is a planar YUV picture.
type Frame struct {
	Format     format.PixelFormat
	Width      int
	Height     int
	Interlaced bool
	PTS        int64

	Planes8  [3]Plane[uint8]
	Planes16 [3]Plane[uint16]

	SideData []SideData
}

// ChromaWidth returns the number of chroma samples per row.
func (f *Frame) ChromaWidth() int {
	return (f.Width + 1) / 2
}

// ChromaRows returns the number of rows in the U and V planes.
func (f *Frame) ChromaRows() int {
	return f.Format.ChromaRows(f.Height)
}

// Validate checks that the format is supported and that every plane is large
// enough for the frame geometry.
func (f *Frame) Validate() error {
	if !f.Format.IsSupported() {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedPixelFormat, f.Format)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, f.Width, f.Height)
	}

	cw, ch := f.ChromaWidth(), f.ChromaRows()
	if f.Format.BitDepth() > 8 {
		return checkPlanes(f.Planes16, f.Width, f.Height, cw, ch)
	}

	return checkPlanes(f.Planes8, f.Width, f.Height, cw, ch)
}

func checkPlanes[T pack.Sample](planes [3]Plane[T], w, h, cw, ch int) error {
	if err := planes[PlaneY].check("Y", w, h); err != nil {
		return err
	}
	if err := planes[PlaneU].check("U", cw, ch); err != nil {
		return err
	}

	return planes[PlaneV].check("V", cw, ch)
}

// New allocates a frame with tightly packed planes. Pad rounds every stride up
// to a multiple of pad samples; pass 0 or 1 for no padding.
func New(pf format.PixelFormat, width, height, pad int) (*Frame, error) {
	if !pf.IsSupported() {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedPixelFormat, pf)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, width, height)
	}

	f := &Frame{Format: pf, Width: width, Height: height}
	ys, cs := alignUp(width, pad), alignUp(f.ChromaWidth(), pad)
	ch := f.ChromaRows()

	if pf.BitDepth() > 8 {
		f.Planes16 = [3]Plane[uint16]{
			{Data: make([]uint16, ys*height), Stride: ys},
			{Data: make([]uint16, cs*ch), Stride: cs},
			{Data: make([]uint16, cs*ch), Stride: cs},
		}
	} else {
		f.Planes8 = [3]Plane[uint8]{
			{Data: make([]uint8, ys*height), Stride: ys},
			{Data: make([]uint8, cs*ch), Stride: cs},
			{Data: make([]uint8, cs*ch), Stride: cs},
		}
	}

	return f, nil
}

func alignUp(n, pad int) int {
	if pad <= 1 {
		return n
	}

	return (n + pad - 1) / pad * pad
}
