// Package encoder packs planar YUV frames into v210.
//
// An Encoder is bound to one frame geometry at construction. Width must be
// even; an odd width is rejected by New and no frame is ever processed.
//
//	enc, err := encoder.New(1920, 1080)
//	if err != nil {
//	    return err
//	}
//	pkt, err := enc.Encode(frm)
//
// # Output Layout
//
// Every line occupies Stride(width) bytes: the packed words for the line
// followed by zero padding, so lines start on 128-byte boundaries relative to
// the buffer start. A frame is height lines back to back.
//
//	width 1920 -> stride 5120, content 5120, padding 0
//	width 1280 -> stride 3456, content 3416, padding 40
//	width   52 -> stride  256, content  140, padding 116
//
// # Line Packing
//
// The bulk of each line goes through the Packer selected at construction.
// The bulk covers the largest multiple of the packer's group size; the rest
// of the line is packed six samples at a time, and widths that are not a
// multiple of six end in a short run of two or three words.
//
// # 4:2:0 Sources
//
// YUV420P frames carry one chroma row per two luma rows. Progressive frames
// use chroma row h/2 for output line h. Interlaced frames keep the fields
// apart: lines 4k and 4k+2 use chroma row 2k, lines 4k+1 and 4k+3 use chroma
// row 2k+1.
//
// # Thread Safety
//
// An Encoder is immutable after New. Encode and EncodeInto may run
// concurrently on distinct frames and output buffers.
package encoder
