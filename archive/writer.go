package archive

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arloliu/v210/compress"
	"github.com/arloliu/v210/encoder"
	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/internal/hash"
	"github.com/arloliu/v210/internal/options"
	"github.com/arloliu/v210/internal/pool"
	"github.com/arloliu/v210/section"
)

// Writer appends packets to an archive.
type Writer struct {
	w       io.Writer
	header  section.FileHeader
	codec   compress.Codec
	stats   compress.CompressionStats
	records int
	closed  bool
	log     *logrus.Entry
}

// NewWriter writes a file header for width x height frames packed from pf
// and returns a Writer for the records that follow.
//
// The caller keeps ownership of w; Close does not close it.
func NewWriter(w io.Writer, width, height int, pf format.PixelFormat, opts ...Option) (*Writer, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, width, height)
	}

	header := section.NewFileHeader(pf, width, height, encoder.Stride(width))
	header.Compression = cfg.compression
	header.SetInterlaced(cfg.interlaced)
	if cfg.streamID != uuid.Nil {
		header.StreamID = cfg.streamID
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(header.Compression, "payload")
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(header.Bytes()); err != nil {
		return nil, fmt.Errorf("write file header: %w", err)
	}

	log := cfg.logger.WithFields(logrus.Fields{
		"component": "archive",
		"stream_id": header.StreamID.String(),
	})
	log.WithFields(logrus.Fields{
		"function":    "NewWriter",
		"width":       width,
		"height":      height,
		"format":      pf.String(),
		"compression": header.Compression.String(),
	}).Info("archive opened")

	return &Writer{
		w:      w,
		header: *header,
		codec:  codec,
		stats:  compress.CompressionStats{Algorithm: header.Compression},
		log:    log,
	}, nil
}

// Header returns the file header written by NewWriter.
func (w *Writer) Header() section.FileHeader {
	return w.header
}

// WritePacket appends one record.
//
// The packet must hold exactly one frame of the archive geometry.
func (w *Writer) WritePacket(p *encoder.Packet) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if p == nil || len(p.Data) != w.header.FrameSize() {
		size := 0
		if p != nil {
			size = len(p.Data)
		}

		return fmt.Errorf("%w: packet holds %d bytes, frame size is %d", errs.ErrInvalidRecord, size, w.header.FrameSize())
	}
	if len(p.SideData) > section.MaxSideDataEntries {
		return fmt.Errorf("%w: %d side data entries", errs.ErrInvalidRecord, len(p.SideData))
	}

	bb := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(bb)

	bb.Resize(section.RecordHeaderSize)
	bb.Grow(section.SideDataSize(p.SideData))
	for _, sd := range p.SideData {
		bb.B = section.AppendSideData(bb.B, sd)
	}
	sideData := bb.B[section.RecordHeaderSize:]

	digest := hash.NewDigest()
	digest.Write(sideData)
	digest.Write(p.Data)

	start := time.Now()
	stored, err := w.codec.Compress(p.Data)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}
	w.stats.Add(len(p.Data), len(stored), time.Since(start).Nanoseconds())

	rh := section.RecordHeader{
		PTS:           p.PTS,
		RawSize:       uint32(len(p.Data)),     //nolint:gosec
		StoredSize:    uint32(len(stored)),     //nolint:gosec
		SideDataCount: uint16(len(p.SideData)), //nolint:gosec
		Checksum:      digest.Sum64(),
		SideDataBytes: uint32(len(sideData)), //nolint:gosec
	}
	rh.SetKey(p.Key)
	rh.PutBytes(bb.B[:section.RecordHeaderSize])

	if _, err := bb.WriteTo(w.w); err != nil {
		return fmt.Errorf("write record header: %w", err)
	}
	if _, err := w.w.Write(stored); err != nil {
		return fmt.Errorf("write record payload: %w", err)
	}
	w.records++

	return nil
}

// Records returns the number of records written.
func (w *Writer) Records() int {
	return w.records
}

// Stats returns the accumulated payload compression statistics.
func (w *Writer) Stats() compress.CompressionStats {
	return w.stats
}

// Close marks the writer closed and logs a summary. Further writes fail with
// errs.ErrWriterClosed. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.log.WithFields(logrus.Fields{
		"function":      "Close",
		"records":       w.records,
		"raw_bytes":     w.stats.OriginalSize,
		"stored_bytes":  w.stats.CompressedSize,
		"space_savings": fmt.Sprintf("%.1f%%", w.stats.SpaceSavings()),
	}).Info("archive closed")

	return nil
}
