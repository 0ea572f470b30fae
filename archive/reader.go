package archive

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/v210/compress"
	"github.com/arloliu/v210/encoder"
	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/internal/hash"
	"github.com/arloliu/v210/internal/options"
	"github.com/arloliu/v210/section"
)

// Reader returns the packets stored in an archive.
type Reader struct {
	r      io.Reader
	header section.FileHeader
	codec  compress.Codec
	buf    [section.RecordHeaderSize]byte
	log    *logrus.Entry
}

// NewReader reads and validates the file header.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var raw [section.FileHeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeaderSize, err)
		}

		return nil, fmt.Errorf("read file header: %w", err)
	}

	header, err := section.ParseFileHeader(raw[:])
	if err != nil {
		return nil, err
	}
	if want := encoder.Stride(int(header.Width)); int(header.Stride) != want {
		return nil, fmt.Errorf("%w: stride %d for width %d, want %d",
			errs.ErrInvalidStride, header.Stride, header.Width, want)
	}

	codec, err := compress.CreateCodec(header.Compression, "payload")
	if err != nil {
		return nil, err
	}

	log := cfg.logger.WithFields(logrus.Fields{
		"component": "archive",
		"stream_id": header.StreamID.String(),
	})
	log.WithFields(logrus.Fields{
		"function":    "NewReader",
		"width":       header.Width,
		"height":      header.Height,
		"format":      header.PixelFormat.String(),
		"compression": header.Compression.String(),
	}).Debug("archive opened for reading")

	return &Reader{r: r, header: header, codec: codec, log: log}, nil
}

// Header returns the archive file header.
func (r *Reader) Header() section.FileHeader {
	return r.header
}

// Next returns the next packet, or io.EOF after the last record.
//
// A record cut short by the end of the input, or one whose checksum does not
// match, fails with an error wrapping errs.ErrInvalidRecord or
// errs.ErrChecksumMismatch.
func (r *Reader) Next() (*encoder.Packet, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated record header", errs.ErrInvalidRecord)
		}

		return nil, fmt.Errorf("read record header: %w", err)
	}

	var rh section.RecordHeader
	if err := rh.Parse(r.buf[:]); err != nil {
		return nil, err
	}

	frameSize := r.header.FrameSize()
	if int(rh.RawSize) != frameSize {
		return nil, fmt.Errorf("%w: raw size %d, frame size %d", errs.ErrInvalidRecord, rh.RawSize, frameSize)
	}
	if r.header.Compression == format.CompressionNone && rh.StoredSize != rh.RawSize {
		return nil, fmt.Errorf("%w: uncompressed record stores %d bytes", errs.ErrInvalidRecord, rh.StoredSize)
	}

	body := make([]byte, rh.BodySize())
	if _, err := io.ReadFull(r.r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated record body", errs.ErrInvalidRecord)
		}

		return nil, fmt.Errorf("read record body: %w", err)
	}

	sideRaw, stored := body[:rh.SideDataBytes], body[rh.SideDataBytes:]
	sideData, err := section.ParseSideData(sideRaw, int(rh.SideDataCount))
	if err != nil {
		return nil, err
	}

	data, err := compress.DecompressSized(r.codec, stored, frameSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidRecord, err)
	}
	if len(data) != frameSize {
		return nil, fmt.Errorf("%w: payload decompressed to %d bytes, frame size %d", errs.ErrInvalidRecord, len(data), frameSize)
	}

	digest := hash.NewDigest()
	digest.Write(sideRaw)
	digest.Write(data)
	if sum := digest.Sum64(); sum != rh.Checksum {
		r.log.WithFields(logrus.Fields{
			"function": "Next",
			"pts":      rh.PTS,
			"want":     rh.Checksum,
			"got":      sum,
		}).Warn("record checksum mismatch")

		return nil, fmt.Errorf("%w: pts %d", errs.ErrChecksumMismatch, rh.PTS)
	}

	return &encoder.Packet{
		Data:     data,
		PTS:      rh.PTS,
		Key:      rh.IsKey(),
		SideData: sideData,
	}, nil
}

// All iterates over the remaining packets. Iteration stops after the last
// record or after yielding the first error.
func (r *Reader) All() iter.Seq2[*encoder.Packet, error] {
	return func(yield func(*encoder.Packet, error) bool) {
		for {
			p, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(p, err) || err != nil {
				return
			}
		}
	}
}
