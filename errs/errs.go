// Package errs defines the sentinel errors shared by the v210 packages.
//
// Errors fall into two categories. ErrConfig covers everything that is wrong
// with how an encoder was set up or how a frame is described: odd widths,
// unsupported pixel formats, planes that are too short for the declared
// geometry. ErrResource covers output buffer problems. Every specific sentinel
// wraps its category, so callers can test either level with errors.Is:
//
//	if errors.Is(err, errs.ErrConfig) {
//	    // reject the stream, retrying will not help
//	}
//
// Sample values never produce errors; out-of-range samples are clamped.
package errs

import (
	"errors"
	"fmt"
)

// Error categories.
var (
	// ErrConfig is the category of fatal setup and frame description errors.
	ErrConfig = errors.New("v210: configuration error")

	// ErrResource is the category of output buffer errors. The input frame is
	// untouched and the call may be retried.
	ErrResource = errors.New("v210: resource error")
)

// Configuration errors.
var (
	ErrOddWidth               = fmt.Errorf("%w: v210 needs even width", ErrConfig)
	ErrInvalidDimensions      = fmt.Errorf("%w: width and height must be positive", ErrConfig)
	ErrUnsupportedPixelFormat = fmt.Errorf("%w: unsupported pixel format", ErrConfig)
	ErrFrameGeometry          = fmt.Errorf("%w: frame geometry does not match encoder", ErrConfig)
	ErrShortPlane             = fmt.Errorf("%w: plane too short for frame geometry", ErrConfig)
	ErrInvalidStride          = fmt.Errorf("%w: plane stride smaller than row width", ErrConfig)
	ErrNilFrame               = fmt.Errorf("%w: nil frame", ErrConfig)
	ErrUnknownPacker          = fmt.Errorf("%w: unknown packer variant", ErrConfig)
	ErrInvalidCompression     = fmt.Errorf("%w: invalid compression type", ErrConfig)
)

// Resource errors.
var (
	ErrAllocation  = fmt.Errorf("%w: output buffer allocation failed", ErrResource)
	ErrShortBuffer = fmt.Errorf("%w: output buffer too small", ErrResource)
)

// Archive errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagic       = errors.New("invalid archive magic")
	ErrUnsupportedVersion = errors.New("unsupported archive version")
	ErrInvalidRecord      = errors.New("invalid archive record")
	ErrChecksumMismatch   = errors.New("payload checksum mismatch")
	ErrWriterClosed       = errors.New("archive writer is closed")
)
