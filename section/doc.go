// Package section defines the fixed binary structures of the v210 archive
// format.
//
// An archive is a file header followed by one record per packet. All
// integers are little-endian.
//
//	┌──────────────────────────────────────────────┐
//	│ FileHeader (48 bytes)                        │
//	│  0  magic "V210"                             │
//	│  4  version (2)   6 pixel fmt   7 compression│
//	│  8  width (4)    12 height (4)   16 stride   │
//	│ 20  flags (4)                                │
//	│ 24  stream ID (16, UUID)                     │
//	│ 40  reserved (8)                             │
//	├──────────────────────────────────────────────┤
//	│ RecordHeader (40 bytes)                      │
//	│  0  PTS (8)                                  │
//	│  8  flags (4)    12 raw size   16 stored size│
//	│ 20  side data count (2)   22 reserved (2)    │
//	│ 24  checksum (8, xxHash64, see below)      │
//	│ 32  side data bytes (4)   36 reserved (4)    │
//	├──────────────────────────────────────────────┤
//	│ Side data entries                            │
//	│  type (1) reserved (3) length (4) data (N)   │
//	├──────────────────────────────────────────────┤
//	│ Payload (stored size bytes, maybe compressed)│
//	├──────────────────────────────────────────────┤
//	│ RecordHeader ...                             │
//	└──────────────────────────────────────────────┘
//
// Reserved bytes are written as zero and must be zero on read. The record
// checksum covers the encoded side data entries followed by the uncompressed
// payload.
//
// Headers serialize with Bytes and deserialize with Parse, which validates
// sizes, magic, version and enum values. Parse does not check relationships
// between fields that need encoder knowledge, such as stride against width;
// the archive package does that.
package section
