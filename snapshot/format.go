package snapshot

import "errors"

const (
	// MagicNumber identifies pointbsp snapshot files (ASCII: "PBT1").
	MagicNumber = 0x50425431
	// Version is the current file format version.
	Version = 0x00010000
)

var (
	// ErrInvalidMagic is returned when a file does not start with MagicNumber.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for unknown format versions.
	ErrInvalidVersion = errors.New("unsupported version")
	// ErrChecksumMismatch is returned when the payload checksum does not match.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrMalformed is returned when the payload cannot be decoded.
	ErrMalformed = errors.New("malformed snapshot")
)

// fileHeader precedes the compressed payload block.
//
// Layout (little-endian):
//
//	Magic       uint32
//	Version     uint32
//	Compression uint8
//	PointCount  uint64
//	PayloadSize uint64  // uncompressed payload size
//	BlockSize   uint64  // size of the (possibly compressed) block that follows
//	Checksum    uint32  // CRC32 (IEEE) of the block
type fileHeader struct {
	Magic       uint32
	Version     uint32
	Compression CompressionType
	PointCount  uint64
	PayloadSize uint64
	BlockSize   uint64
	Checksum    uint32
}

// maxTreeDepth bounds decode recursion for malformed or hostile inputs.
// Legitimate trees are bounded by the caller's maxDepth at build time.
const maxTreeDepth = 4096

// maxPayloadSize bounds decode allocations against hostile headers. 4 GiB of
// payload holds well over a hundred million points.
const maxPayloadSize = 1 << 32
