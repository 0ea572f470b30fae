// Package compress provides the payload codecs used when v210 frames are
// stored in an archive.
//
// Packed v210 lines are dense but rarely random: line padding is all zeros,
// blanking and graphics produce long runs of identical words, and the two
// padding bits of every word are zero. General-purpose compressors therefore
// pay off for storage and transfer even though the format itself is
// uncompressed.
//
// # Supported Algorithms
//
//   - None: payload stored as-is
//   - Zstd: best ratio, for archival
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression, for playback-side reads
//
// All codecs implement Codec:
//
//	codec, err := compress.CreateCodec(format.CompressionS2, "payload")
//	stored, err := codec.Compress(packet.Data)
//	raw, err := codec.Decompress(stored)
//
// The zstd codec uses github.com/klauspost/compress/zstd. Building with the
// gozstd tag (and cgo) switches it to the libzstd binding from
// github.com/valyala/gozstd; both produce standard zstd frames.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Encoders and
// decoders that hold internal state are taken from sync.Pools per call.
package compress
