package encoder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/frame"
	"github.com/arloliu/v210/pack"
)

func TestNew(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	enc, err := New(1920, 1080, WithPackerName("generic"), WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, 1920, enc.Width())
	require.Equal(t, 1080, enc.Height())
	require.Equal(t, 5120, enc.Stride())
	require.Equal(t, 5120*1080, enc.FrameSize())
	require.Equal(t, "generic", enc.Packer().Name())
	require.Equal(t, int64(1_105_920_000), enc.BitRate(25))
}

func TestNew_DetectsPacker(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	enc, err := New(64, 2, WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, pack.Detect().Name(), enc.Packer().Name())
}

func TestNew_OddWidth(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	enc, err := New(1919, 1080, WithLogger(logger))
	require.Nil(t, enc)
	require.ErrorIs(t, err, errs.ErrOddWidth)
	require.ErrorIs(t, err, errs.ErrConfig)

	require.NotNil(t, hook.LastEntry())
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Equal(t, "v210 needs even width", hook.LastEntry().Message)
	require.Equal(t, 1919, hook.LastEntry().Data["width"])
}

func TestNew_InvalidConfig(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	tests := []struct {
		name string
		w, h int
		opts []Option
		want error
	}{
		{"zero width", 0, 1080, nil, errs.ErrInvalidDimensions},
		{"negative height", 1920, -1, nil, errs.ErrInvalidDimensions},
		{"unknown packer", 1920, 1080, []Option{WithPackerName("sse9")}, errs.ErrUnknownPacker},
		{"nil packer", 1920, 1080, []Option{WithPacker(nil)}, errs.ErrUnknownPacker},
		{"nil allocator", 1920, 1080, []Option{WithAllocator(nil)}, errs.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithLogger(logger)}, tt.opts...)
			enc, err := New(tt.w, tt.h, opts...)
			require.Nil(t, enc)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errs.ErrConfig)
		})
	}
}

func TestEncode_WorkedExample(t *testing.T) {
	f, err := frame.New(format.YUV422P10, 6, 1, 0)
	require.NoError(t, err)
	copy(f.Planes16[frame.PlaneY].Data, []uint16{100, 200, 300, 400, 500, 600})
	copy(f.Planes16[frame.PlaneU].Data, []uint16{10, 20, 30})
	copy(f.Planes16[frame.PlaneV].Data, []uint16{40, 50, 60})

	for _, p := range allPackers() {
		enc, err := New(6, 1, WithPacker(p))
		require.NoError(t, err)

		pkt, err := enc.Encode(f)
		require.NoError(t, err)
		require.Len(t, pkt.Data, 128)

		words := []uint32{
			10 | 100<<10 | 40<<20,
			200 | 20<<10 | 300<<20,
			50 | 400<<10 | 30<<20,
			500 | 60<<10 | 600<<20,
		}
		for i, w := range words {
			require.Equal(t, w, binary.LittleEndian.Uint32(pkt.Data[i*4:]), "%s word %d", p.Name(), i)
		}
		require.Equal(t, make([]byte, 128-16), pkt.Data[16:], "line padding must be zero")
	}
}

func TestEncode_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	widths := []int{2, 4, 6, 8, 10, 12, 22, 24, 46, 48, 50, 52, 54, 94, 96, 98, 100, 720, 1280}

	for _, pf := range allFormats {
		for _, width := range widths {
			for _, interlaced := range []bool{false, true} {
				f := newTestFrame(t, rng, pf, width, 9, false)
				f.Interlaced = interlaced
				want := referencePack(f, chromaRowMapper(pf, interlaced, f.ChromaRows()))

				for _, p := range allPackers() {
					name := fmt.Sprintf("%s/w%d/interlaced=%v/%s", pf, width, interlaced, p.Name())
					enc, err := New(width, 9, WithPacker(p))
					require.NoError(t, err, name)

					pkt, err := enc.Encode(f)
					require.NoError(t, err, name)
					require.Equal(t, want, pkt.Data, name)
				}
			}
		}
	}
}

func TestEncode_SizeAndPadding(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for _, pf := range allFormats {
		for width := 2; width <= 200; width += 2 {
			f := newTestFrame(t, rng, pf, width, 3, false)
			enc, err := New(width, 3)
			require.NoError(t, err)

			pkt, err := enc.Encode(f)
			require.NoError(t, err)
			require.Len(t, pkt.Data, 3*Stride(width))

			stride, content := Stride(width), ContentBytes(width)
			for h := 0; h < 3; h++ {
				pad := pkt.Data[h*stride+content : (h+1)*stride]
				require.Equal(t, make([]byte, len(pad)), pad, "%s width %d line %d", pf, width, h)
			}
		}
	}
}

func TestEncode_DirtyBufferIsFullyOverwritten(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	f := newTestFrame(t, rng, format.YUV422P, 52, 4, false)
	enc, err := New(52, 4)
	require.NoError(t, err)

	dst := make([]byte, enc.FrameSize()+8)
	for i := range dst {
		dst[i] = 0xff
	}
	require.NoError(t, enc.EncodeInto(f, dst))

	want := referencePack(f, chromaRowMapper(f.Format, false, f.ChromaRows()))
	require.Equal(t, want, dst[:enc.FrameSize()])
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, dst[enc.FrameSize():])
}

func TestEncode_Clamping10(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := newTestFrame(t, rng, format.YUV422P10, 100, 4, false)
	// Force the extremes into every plane.
	for i := range f.Planes16 {
		f.Planes16[i].Data[0] = 0
		f.Planes16[i].Data[1] = 1023
	}

	enc, err := New(100, 4)
	require.NoError(t, err)
	pkt, err := enc.Encode(f)
	require.NoError(t, err)

	for h, line := range unpackFrame(t, pkt.Data, 100, 4) {
		for _, plane := range [][]uint32{line.Y, line.U, line.V} {
			for _, s := range plane {
				require.GreaterOrEqual(t, s, uint32(pack.Min10), "line %d", h)
				require.LessOrEqual(t, s, uint32(pack.Max10), "line %d", h)
			}
		}
	}
}

func TestEncode_Clamping8(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	f := newTestFrame(t, rng, format.YUV422P, 50, 2, false)
	f.Planes8[frame.PlaneY].Data[0] = 0
	f.Planes8[frame.PlaneY].Data[1] = 255

	enc, err := New(50, 2)
	require.NoError(t, err)
	pkt, err := enc.Encode(f)
	require.NoError(t, err)

	lines := unpackFrame(t, pkt.Data, 50, 2)
	for h, line := range lines {
		y := f.Planes8[frame.PlaneY].Row(h, 50)
		u := f.Planes8[frame.PlaneU].Row(h, 25)
		v := f.Planes8[frame.PlaneV].Row(h, 25)
		for x := range line.Y {
			require.Equal(t, pack.Clip8(y[x])<<2, line.Y[x])
		}
		for x := range line.U {
			require.Equal(t, pack.Clip8(u[x])<<2, line.U[x])
			require.Equal(t, pack.Clip8(v[x])<<2, line.V[x])
		}
	}
	require.Equal(t, uint32(4), lines[0].Y[0])
	require.Equal(t, uint32(1016), lines[0].Y[1])
}

func TestEncode_RoundTripLegalInput(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for _, pf := range []format.PixelFormat{format.YUV422P10, format.YUV422P} {
		for _, width := range []int{6, 48, 50, 52, 1920} {
			f := newTestFrame(t, rng, pf, width, 3, true)
			enc, err := New(width, 3)
			require.NoError(t, err)
			pkt, err := enc.Encode(f)
			require.NoError(t, err)

			for h, line := range unpackFrame(t, pkt.Data, width, 3) {
				for x := 0; x < width; x++ {
					require.Equal(t, sourceSample(f, frame.PlaneY, h, x), line.Y[x], "%s w%d y(%d,%d)", pf, width, x, h)
				}
				for x := 0; x < width/2; x++ {
					require.Equal(t, sourceSample(f, frame.PlaneU, h, x), line.U[x])
					require.Equal(t, sourceSample(f, frame.PlaneV, h, x), line.V[x])
				}
			}
		}
	}
}

// sourceSample returns a source sample on the 10-bit scale.
func sourceSample(f *frame.Frame, plane, row, x int) uint32 {
	if f.Format.BitDepth() > 8 {
		p := f.Planes16[plane]
		return uint32(p.Data[row*p.Stride+x])
	}
	p := f.Planes8[plane]

	return uint32(p.Data[row*p.Stride+x]) << 2
}

func TestEncode_BulkAndTailSplit(t *testing.T) {
	rng := rand.New(rand.NewSource(10))

	tests := []struct {
		pf    format.PixelFormat
		p     pack.Packer
		width int
		bulk  int
	}{
		{format.YUV422P10, pack.Generic(), 48, 48},
		{format.YUV422P10, pack.Wide(), 48, 48},
		{format.YUV422P, pack.Generic(), 48, 48},
		{format.YUV422P, pack.Wide(), 48, 48},
		{format.YUV422P10, pack.Generic(), 50, 48},
		{format.YUV422P10, pack.Wide(), 52, 48},
		{format.YUV422P, pack.Generic(), 54, 48},
		{format.YUV420P, pack.Wide(), 70, 48},
		{format.YUV422P10, pack.Wide(), 4, 0},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%s/%s/w%d", tt.pf, tt.p.Name(), tt.width)
		cp := &countingPacker{Packer: tt.p}
		enc, err := New(tt.width, 2, WithPacker(cp))
		require.NoError(t, err, name)

		f := newTestFrame(t, rng, tt.pf, tt.width, 2, false)
		pkt, err := enc.Encode(f)
		require.NoError(t, err, name)
		require.Equal(t, []int{tt.bulk, tt.bulk}, cp.counts, name)

		want := referencePack(f, chromaRowMapper(tt.pf, false, f.ChromaRows()))
		require.Equal(t, want, pkt.Data, name)
	}
}

func TestEncode_WidthRemainders(t *testing.T) {
	// Width 50 leaves two samples after the last group, width 52 leaves four.
	f, err := frame.New(format.YUV422P10, 52, 1, 0)
	require.NoError(t, err)
	for x := range f.Planes16[frame.PlaneY].Data {
		f.Planes16[frame.PlaneY].Data[x] = uint16(100 + x)
	}
	for x := range f.Planes16[frame.PlaneU].Data {
		f.Planes16[frame.PlaneU].Data[x] = uint16(500 + x)
		f.Planes16[frame.PlaneV].Data[x] = uint16(800 + x)
	}

	enc, err := New(52, 1, WithPackerName("generic"))
	require.NoError(t, err)
	pkt, err := enc.Encode(f)
	require.NoError(t, err)

	word := func(i int) uint32 { return binary.LittleEndian.Uint32(pkt.Data[i*4:]) }
	// 8 groups of 6 = 32 words, then [U24 Y48 V24] [Y49 U25 Y50] [V25 Y51 0].
	require.Equal(t, uint32(524|148<<10|824<<20), word(32))
	require.Equal(t, uint32(149|525<<10|150<<20), word(33))
	require.Equal(t, uint32(825|151<<10), word(34))
	require.Zero(t, word(35))

	f50, err := frame.New(format.YUV422P10, 50, 1, 0)
	require.NoError(t, err)
	copy(f50.Planes16[frame.PlaneY].Data, f.Planes16[frame.PlaneY].Data[:50])
	copy(f50.Planes16[frame.PlaneU].Data, f.Planes16[frame.PlaneU].Data[:25])
	copy(f50.Planes16[frame.PlaneV].Data, f.Planes16[frame.PlaneV].Data[:25])

	enc50, err := New(50, 1, WithPackerName("generic"))
	require.NoError(t, err)
	pkt50, err := enc50.Encode(f50)
	require.NoError(t, err)

	require.Equal(t, pkt.Data[:32*4], pkt50.Data[:32*4])
	// [U24 Y48 V24] [Y49 0 0]
	require.Equal(t, uint32(524|148<<10|824<<20), binary.LittleEndian.Uint32(pkt50.Data[32*4:]))
	require.Equal(t, uint32(149), binary.LittleEndian.Uint32(pkt50.Data[33*4:]))
	require.Equal(t, make([]byte, 256-34*4), pkt50.Data[34*4:])
}

func TestEncode_420ProgressiveChroma(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const width, height = 52, 8
	f := newTestFrame(t, rng, format.YUV420P, width, height, true)

	enc, err := New(width, height)
	require.NoError(t, err)
	pkt, err := enc.Encode(f)
	require.NoError(t, err)

	lines := unpackFrame(t, pkt.Data, width, height)
	for k := 0; k < height/2; k++ {
		require.Equal(t, lines[2*k].U, lines[2*k+1].U, "pair %d", k)
		require.Equal(t, lines[2*k].V, lines[2*k+1].V, "pair %d", k)
		for x := 0; x < width/2; x++ {
			require.Equal(t, sourceSample(f, frame.PlaneU, k, x), lines[2*k].U[x])
			require.Equal(t, sourceSample(f, frame.PlaneV, k, x), lines[2*k].V[x])
		}
	}
	require.NotEqual(t, lines[0].U, lines[2].U)
}

func TestEncode_420InterlacedChroma(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	const width, height = 48, 8
	f := newTestFrame(t, rng, format.YUV420P, width, height, true)
	f.Interlaced = true

	enc, err := New(width, height)
	require.NoError(t, err)
	pkt, err := enc.Encode(f)
	require.NoError(t, err)

	lines := unpackFrame(t, pkt.Data, width, height)
	for k := 0; k < height/4; k++ {
		top, bottom := lines[4*k], lines[4*k+1]
		require.Equal(t, top.U, lines[4*k+2].U, "group %d top field", k)
		require.Equal(t, top.V, lines[4*k+2].V, "group %d top field", k)
		require.Equal(t, bottom.U, lines[4*k+3].U, "group %d bottom field", k)
		require.Equal(t, bottom.V, lines[4*k+3].V, "group %d bottom field", k)
		require.NotEqual(t, top.U, bottom.U, "group %d fields", k)

		for x := 0; x < width/2; x++ {
			require.Equal(t, sourceSample(f, frame.PlaneU, 2*k, x), top.U[x])
			require.Equal(t, sourceSample(f, frame.PlaneU, 2*k+1, x), bottom.U[x])
		}
	}
}

func TestChromaRowMapper(t *testing.T) {
	rows := func(m func(int) int, n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = m(i)
		}

		return out
	}

	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, rows(chromaRowMapper(format.YUV422P, true, 6), 6))
	require.Equal(t, []int{0, 0, 1, 1, 2, 2, 3, 3}, rows(chromaRowMapper(format.YUV420P, false, 4), 8))
	require.Equal(t, []int{0, 1, 0, 1, 2, 3, 2, 3}, rows(chromaRowMapper(format.YUV420P, true, 4), 8))
	// 4k+2 lines: the final bottom-field line stays inside the plane.
	require.Equal(t, []int{0, 1, 0, 1, 2, 2}, rows(chromaRowMapper(format.YUV420P, true, 3), 6))
}

func TestEncode_420InterlacedOddGroup(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	f := newTestFrame(t, rng, format.YUV420P, 48, 6, false)
	f.Interlaced = true
	// Trim the chroma planes to exactly three rows so any overrun would panic.
	for _, i := range []int{frame.PlaneU, frame.PlaneV} {
		f.Planes8[i].Data = f.Planes8[i].Data[:2*f.Planes8[i].Stride+24]
	}

	enc, err := New(48, 6)
	require.NoError(t, err)
	pkt, err := enc.Encode(f)
	require.NoError(t, err)
	require.Len(t, pkt.Data, 6*128)
}

func TestEncode_StrideIndependentOfFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	enc, err := New(100, 4)
	require.NoError(t, err)

	for _, pf := range allFormats {
		pkt, err := enc.Encode(newTestFrame(t, rng, pf, 100, 4, false))
		require.NoError(t, err)
		require.Len(t, pkt.Data, 4*Stride(100), pf.String())
	}
}

func TestEncode_FrameErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	enc, err := New(48, 4)
	require.NoError(t, err)

	t.Run("nil frame", func(t *testing.T) {
		_, err := enc.Encode(nil)
		require.ErrorIs(t, err, errs.ErrNilFrame)
	})

	t.Run("geometry mismatch", func(t *testing.T) {
		_, err := enc.Encode(newTestFrame(t, rng, format.YUV422P, 50, 4, false))
		require.ErrorIs(t, err, errs.ErrFrameGeometry)
		require.ErrorIs(t, err, errs.ErrConfig)
	})

	t.Run("unsupported format", func(t *testing.T) {
		f := newTestFrame(t, rng, format.YUV422P, 48, 4, false)
		f.Format = format.PixelFormatNone
		_, err := enc.Encode(f)
		require.ErrorIs(t, err, errs.ErrUnsupportedPixelFormat)
	})

	t.Run("short plane", func(t *testing.T) {
		f := newTestFrame(t, rng, format.YUV422P10, 48, 4, false)
		f.Planes16[frame.PlaneV].Data = f.Planes16[frame.PlaneV].Data[:10]
		err := enc.EncodeInto(f, make([]byte, enc.FrameSize()))
		require.ErrorIs(t, err, errs.ErrShortPlane)
	})

	t.Run("short destination", func(t *testing.T) {
		f := newTestFrame(t, rng, format.YUV422P10, 48, 4, false)
		dst := make([]byte, enc.FrameSize()-1)
		err := enc.EncodeInto(f, dst)
		require.ErrorIs(t, err, errs.ErrShortBuffer)
		require.ErrorIs(t, err, errs.ErrResource)
		require.Equal(t, make([]byte, len(dst)), dst, "nothing written on failure")
	})
}

type failingAllocator struct{ err error }

func (a failingAllocator) Allocate(int) ([]byte, error) { return nil, a.err }

type shortAllocator struct{}

func (shortAllocator) Allocate(size int) ([]byte, error) { return make([]byte, size/2), nil }

func TestEncode_AllocationFailure(t *testing.T) {
	rng := rand.New(rand.NewSource(16))
	logger, hook := logtest.NewNullLogger()
	errOOM := errors.New("out of frame buffers")

	enc, err := New(48, 2, WithAllocator(failingAllocator{err: errOOM}), WithLogger(logger))
	require.NoError(t, err)

	f := newTestFrame(t, rng, format.YUV422P, 48, 2, false)
	before := append([]uint8(nil), f.Planes8[frame.PlaneY].Data...)

	pkt, err := enc.Encode(f)
	require.Nil(t, pkt)
	require.ErrorIs(t, err, errs.ErrAllocation)
	require.ErrorIs(t, err, errs.ErrResource)
	require.ErrorIs(t, err, errOOM)
	require.Equal(t, before, f.Planes8[frame.PlaneY].Data)
	require.Equal(t, "error getting output packet", hook.LastEntry().Message)

	enc, err = New(48, 2, WithAllocator(shortAllocator{}), WithLogger(logger))
	require.NoError(t, err)
	_, err = enc.Encode(f)
	require.ErrorIs(t, err, errs.ErrAllocation)
}

func TestEncode_PoolAllocator(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	alloc := NewPoolAllocator(FrameSize(96, 4))
	enc, err := New(96, 4, WithAllocator(alloc))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		f := newTestFrame(t, rng, format.YUV422P10, 96, 4, false)
		pkt, err := enc.Encode(f)
		require.NoError(t, err)
		require.Equal(t, referencePack(f, chromaRowMapper(f.Format, false, f.ChromaRows())), pkt.Data)

		pkt.Release()
		require.Nil(t, pkt.Data)
		pkt.Release()
	}
}

func TestEncode_SideData(t *testing.T) {
	rng := rand.New(rand.NewSource(18))
	enc, err := New(48, 2)
	require.NoError(t, err)

	f := newTestFrame(t, rng, format.YUV422P, 48, 2, false)
	f.PTS = -3003
	f.AddSideData(frame.SideDataA53CC, []byte{0xfc, 0x80, 0x80})
	f.AddSideData(frame.SideDataAFD, []byte{0x08})
	f.AddSideData(frame.SideDataBarData, nil)
	f.AddSideData(frame.SideDataType(0x7f), []byte{1, 2, 3})
	f.AddSideData(frame.SideDataSEIUnregistered, []byte("uuid+payload"))

	pkt, err := enc.Encode(f)
	require.NoError(t, err)
	require.True(t, pkt.Key)
	require.Equal(t, int64(-3003), pkt.PTS)

	pts, ok := pkt.OrigPTS()
	require.True(t, ok)
	require.Equal(t, int64(-3003), pts)

	types := make([]frame.SideDataType, 0, len(pkt.SideData))
	for _, sd := range pkt.SideData {
		types = append(types, sd.Type)
	}
	require.Equal(t, []frame.SideDataType{
		frame.SideDataOrigPTS,
		frame.SideDataA53CC,
		frame.SideDataAFD,
		frame.SideDataSEIUnregistered,
	}, types)

	cc, ok := pkt.Lookup(frame.SideDataA53CC)
	require.True(t, ok)
	require.Equal(t, []byte{0xfc, 0x80, 0x80}, cc)

	// The packet owns its copy.
	f.SideData[0].Data[0] = 0
	cc, _ = pkt.Lookup(frame.SideDataA53CC)
	require.Equal(t, byte(0xfc), cc[0])

	_, ok = pkt.Lookup(frame.SideDataBarData)
	require.False(t, ok)
}

func TestEncode_Concurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	enc, err := New(1280, 8)
	require.NoError(t, err)

	frames := make([]*frame.Frame, 16)
	want := make([][]byte, len(frames))
	for i := range frames {
		frames[i] = newTestFrame(t, rng, allFormats[i%len(allFormats)], 1280, 8, false)
		want[i] = referencePack(frames[i], chromaRowMapper(frames[i].Format, false, frames[i].ChromaRows()))
	}

	var wg sync.WaitGroup
	got := make([][]byte, len(frames))
	errList := make([]error, len(frames))
	for i := range frames {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pkt, err := enc.Encode(frames[i])
			errList[i] = err
			if err == nil {
				got[i] = pkt.Data
			}
		}(i)
	}
	wg.Wait()

	for i := range frames {
		require.NoError(t, errList[i])
		require.Equal(t, want[i], got[i], "frame %d", i)
	}
}
