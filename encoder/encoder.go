package encoder

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/frame"
	"github.com/arloliu/v210/internal/options"
	"github.com/arloliu/v210/pack"
)

// Encoder packs frames of one geometry into v210.
type Encoder struct {
	width     int
	height    int
	stride    int
	packer    pack.Packer
	allocator Allocator
	log       *logrus.Entry
}

// New creates an encoder for width x height frames.
//
// Returns an error wrapping errs.ErrOddWidth if width is odd, and
// errs.ErrInvalidDimensions if either dimension is not positive.
func New(width, height int, opts ...Option) (*Encoder, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	log := cfg.logger.WithFields(logrus.Fields{
		"component": "v210enc",
		"width":     width,
		"height":    height,
	})

	if width <= 0 || height <= 0 {
		log.WithField("function", "New").Error("invalid frame dimensions")
		return nil, fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, width, height)
	}
	if width&1 != 0 {
		log.WithField("function", "New").Error("v210 needs even width")
		return nil, fmt.Errorf("%w: width %d", errs.ErrOddWidth, width)
	}

	if cfg.packer == nil {
		cfg.packer = pack.Detect()
	}

	e := &Encoder{
		width:     width,
		height:    height,
		stride:    Stride(width),
		packer:    cfg.packer,
		allocator: cfg.allocator,
		log:       log,
	}

	log.WithFields(logrus.Fields{
		"function": "New",
		"packer":   e.packer.Name(),
		"stride":   e.stride,
		"padding":  LinePadding(width),
	}).Debug("v210 encoder initialized")

	return e, nil
}

// Width returns the frame width in pixels.
func (e *Encoder) Width() int { return e.width }

// Height returns the frame height in lines.
func (e *Encoder) Height() int { return e.height }

// Stride returns the packed line size in bytes.
func (e *Encoder) Stride() int { return e.stride }

// FrameSize returns the packed frame size in bytes.
func (e *Encoder) FrameSize() int { return e.height * e.stride }

// Packer returns the packer variant in use.
func (e *Encoder) Packer() pack.Packer { return e.packer }

// BitRate returns the stream bit rate at fps frames per second.
func (e *Encoder) BitRate(fps float64) int64 {
	return EstimateBitRate(e.width, e.height, fps)
}

// Encode packs f into a newly allocated packet.
//
// The packet is returned only on success; on error nothing has been handed
// out and f is untouched.
func (e *Encoder) Encode(f *frame.Frame) (*Packet, error) {
	if err := e.checkFrame(f); err != nil {
		return nil, err
	}

	size := e.FrameSize()
	buf, err := e.allocator.Allocate(size)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"function": "Encode",
			"size":     size,
			"error":    err.Error(),
		}).Error("error getting output packet")

		return nil, fmt.Errorf("%w: %w", errs.ErrAllocation, err)
	}
	if len(buf) < size {
		e.release(buf)
		return nil, fmt.Errorf("%w: allocator returned %d bytes, need %d", errs.ErrAllocation, len(buf), size)
	}

	e.packFrame(f, buf[:size])

	return newPacket(buf[:size], f, e.allocator), nil
}

// EncodeInto packs f into dst, which must hold at least FrameSize bytes.
// Bytes beyond FrameSize are left alone.
func (e *Encoder) EncodeInto(f *frame.Frame, dst []byte) error {
	if err := e.checkFrame(f); err != nil {
		return err
	}

	size := e.FrameSize()
	if len(dst) < size {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrShortBuffer, size, len(dst))
	}
	e.packFrame(f, dst[:size])

	return nil
}

func (e *Encoder) checkFrame(f *frame.Frame) error {
	if f == nil {
		return errs.ErrNilFrame
	}
	if f.Width != e.width || f.Height != e.height {
		return fmt.Errorf("%w: frame %dx%d, encoder %dx%d",
			errs.ErrFrameGeometry, f.Width, f.Height, e.width, e.height)
	}

	return f.Validate()
}

func (e *Encoder) packFrame(f *frame.Frame, dst []byte) {
	l := layout{
		width:  e.width,
		height: e.height,
		stride: e.stride,
		chroma: chromaRowMapper(f.Format, f.Interlaced, f.ChromaRows()),
	}

	switch f.Format {
	case format.YUV422P10:
		packRows(dst, f.Planes16, l, e.packer.PackLine10,
			pack.GroupSize*e.packer.SampleFactor10(), pack.Group10, pack.Clip10)
	case format.YUV422P, format.YUV420P:
		packRows(dst, f.Planes8, l, e.packer.PackLine8,
			pack.Line8Size*e.packer.SampleFactor8(), pack.Group8, pack.Legal8)
	}
}

func (e *Encoder) release(buf []byte) {
	if r, ok := e.allocator.(Releaser); ok {
		r.Release(buf)
	}
}
