package section

// Archive magic and version.
const (
	Magic   = "V210" // Magic opens every archive.
	Version = 1      // Version is the only layout this package reads and writes.
)

// Fixed section sizes in bytes.
const (
	FileHeaderSize     = 48 // file header at offset 0
	RecordHeaderSize   = 40 // header in front of every record
	SideDataEntrySize  = 8  // side data entry header, followed by its payload
	MaxSideDataEntries = 255
)

// File header flags.
const (
	FileFlagInterlaced uint32 = 1 << 0 // source frames are interlaced
	fileFlagsKnown            = FileFlagInterlaced
)

// Record header flags.
const (
	RecordFlagKey uint32 = 1 << 0 // packet is a key frame
	recordFlagsKnown     = RecordFlagKey
)

// MaxRecordSize bounds the raw and stored payload sizes a reader accepts.
const MaxRecordSize = 1 << 30
