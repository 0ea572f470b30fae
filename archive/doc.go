// Package archive stores encoded v210 packets in a simple sequential
// container.
//
// An archive opens with a section.FileHeader describing the stream, followed
// by one record per packet. Records carry the packet PTS, key flag and side
// data, and the packed frame, optionally compressed with one of the codecs in
// the compress package. Every record is checksummed with xxHash64 so a Reader
// rejects damaged payloads instead of returning garbage frames.
//
// Writing:
//
//	w, err := archive.NewWriter(f, 1920, 1080, format.YUV422P10,
//	    archive.WithCompression(format.CompressionZstd))
//	...
//	for pkt := range packets {
//	    if err := w.WritePacket(pkt); err != nil { ... }
//	}
//	err = w.Close()
//
// Reading:
//
//	r, err := archive.NewReader(f)
//	...
//	for pkt, err := range r.All() {
//	    if err != nil { ... }
//	}
//
// Neither Writer nor Reader is safe for concurrent use.
package archive
