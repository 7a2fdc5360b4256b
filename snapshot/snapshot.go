// Package snapshot implements the binary container for persisting a built
// partition tree: a fixed header, a compressed payload block holding the
// element buffer and the preorder node structure, and a CRC32 checksum.
//
// Node ranges are not stored. Internal nodes record the offset splitting
// their children's ranges, so all ranges are reconstructed from the root
// range while decoding.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/pointbsp/internal/mmap"
)

// Element is one entry of the persisted element buffer.
type Element struct {
	ID       uint32
	Position [3]float64
}

// Node is one persisted tree node. A node is a leaf iff Left is nil; Left and
// Right are always present together. Mid is the absolute element-buffer
// offset where the left child's range ends and the right child's begins.
type Node struct {
	Axis  int
	Split float64
	Mid   int

	Left, Right *Node
}

// Snapshot is the decoded content of a snapshot file.
type Snapshot struct {
	Elements []Element
	Root     *Node
}

// Options contains configuration options for writing snapshots.
type Options struct {
	// Compression selects the payload compression algorithm.
	Compression CompressionType
}

// DefaultOptions contains the default configuration options for writing snapshots.
var DefaultOptions = Options{
	Compression: CompressionZSTD,
}

const elementSize = 4 + 3*8

// Write encodes the snapshot to w.
func Write(w io.Writer, snap *Snapshot, optFns ...func(o *Options)) error {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if !opts.Compression.valid() {
		return fmt.Errorf("unknown compression type: %d", opts.Compression)
	}

	payload := encodePayload(snap)

	block, err := compress(payload, opts.Compression)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	hdr := fileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: opts.Compression,
		PointCount:  uint64(len(snap.Elements)),
		PayloadSize: uint64(len(payload)),
		BlockSize:   uint64(len(block)),
		Checksum:    crc32.ChecksumIEEE(block),
	}
	if err := writeHeader(w, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if _, err := w.Write(block); err != nil {
		return fmt.Errorf("write payload block: %w", err)
	}

	return nil
}

// Read decodes a snapshot from r, verifying magic, version and checksum.
func Read(r io.Reader) (*Snapshot, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	block := make([]byte, hdr.BlockSize)
	if _, err := io.ReadFull(r, block); err != nil {
		return nil, fmt.Errorf("read payload block: %w", err)
	}

	if crc32.ChecksumIEEE(block) != hdr.Checksum {
		return nil, ErrChecksumMismatch
	}

	payload, err := decompress(block, hdr.Compression, int(hdr.PayloadSize))
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	return decodePayload(payload, int(hdr.PointCount))
}

// ReadFile decodes a snapshot from a file using a read-only memory mapping.
// The mapping is released before ReadFile returns; the decoded snapshot does
// not reference the file.
func ReadFile(path string) (*Snapshot, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	return Read(bytes.NewReader(m.Bytes()))
}

func writeHeader(w io.Writer, hdr *fileHeader) error {
	buf := make([]byte, 0, 37)
	buf = binary.LittleEndian.AppendUint32(buf, hdr.Magic)
	buf = binary.LittleEndian.AppendUint32(buf, hdr.Version)
	buf = append(buf, byte(hdr.Compression))
	buf = binary.LittleEndian.AppendUint64(buf, hdr.PointCount)
	buf = binary.LittleEndian.AppendUint64(buf, hdr.PayloadSize)
	buf = binary.LittleEndian.AppendUint64(buf, hdr.BlockSize)
	buf = binary.LittleEndian.AppendUint32(buf, hdr.Checksum)

	_, err := w.Write(buf)
	return err
}

func readHeader(r io.Reader) (*fileHeader, error) {
	buf := make([]byte, 37)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	hdr := &fileHeader{
		Magic:       binary.LittleEndian.Uint32(buf[0:]),
		Version:     binary.LittleEndian.Uint32(buf[4:]),
		Compression: CompressionType(buf[8]),
		PointCount:  binary.LittleEndian.Uint64(buf[9:]),
		PayloadSize: binary.LittleEndian.Uint64(buf[17:]),
		BlockSize:   binary.LittleEndian.Uint64(buf[25:]),
		Checksum:    binary.LittleEndian.Uint32(buf[33:]),
	}

	if hdr.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if hdr.Version != Version {
		return nil, ErrInvalidVersion
	}
	if !hdr.Compression.valid() {
		return nil, fmt.Errorf("%w: unknown compression type %d", ErrMalformed, hdr.Compression)
	}
	if hdr.PayloadSize > maxPayloadSize {
		return nil, fmt.Errorf("%w: payload size %d exceeds limit", ErrMalformed, hdr.PayloadSize)
	}
	// A block never exceeds the payload by more than the codec worst case, so
	// cap it before anything is allocated from the declared size.
	if hdr.BlockSize > hdr.PayloadSize+hdr.PayloadSize/255+64 {
		return nil, fmt.Errorf("%w: block size %d exceeds payload bound", ErrMalformed, hdr.BlockSize)
	}
	if hdr.PointCount > hdr.PayloadSize/elementSize {
		return nil, fmt.Errorf("%w: point count exceeds payload size", ErrMalformed)
	}

	return hdr, nil
}

func encodePayload(snap *Snapshot) []byte {
	var buf bytes.Buffer
	buf.Grow(len(snap.Elements)*elementSize + 64)

	scratch := make([]byte, 8)
	put32 := func(v uint32) {
		binary.LittleEndian.PutUint32(scratch, v)
		buf.Write(scratch[:4])
	}
	put64 := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch, v)
		buf.Write(scratch)
	}

	for _, e := range snap.Elements {
		put32(e.ID)
		for _, c := range e.Position {
			put64(math.Float64bits(c))
		}
	}

	if snap.Root == nil {
		buf.WriteByte(0)
		return buf.Bytes()
	}
	buf.WriteByte(1)

	var encodeNode func(n *Node)
	encodeNode = func(n *Node) {
		if n.Left == nil {
			buf.WriteByte(nodeKindLeaf)
			return
		}
		buf.WriteByte(nodeKindInternal)
		buf.WriteByte(byte(n.Axis))
		put64(math.Float64bits(n.Split))
		put64(uint64(n.Mid))
		encodeNode(n.Left)
		encodeNode(n.Right)
	}
	encodeNode(snap.Root)

	return buf.Bytes()
}

const (
	nodeKindLeaf     = 0
	nodeKindInternal = 1
)

func decodePayload(payload []byte, pointCount int) (*Snapshot, error) {
	d := &payloadDecoder{buf: payload}

	snap := &Snapshot{
		Elements: make([]Element, pointCount),
	}
	for i := range snap.Elements {
		id, err := d.uint32()
		if err != nil {
			return nil, err
		}
		snap.Elements[i].ID = id
		for c := 0; c < 3; c++ {
			bits, err := d.uint64()
			if err != nil {
				return nil, err
			}
			snap.Elements[i].Position[c] = math.Float64frombits(bits)
		}
	}

	hasRoot, err := d.byte()
	if err != nil {
		return nil, err
	}
	if hasRoot == 0 {
		return snap, nil
	}

	snap.Root, err = d.node(0, pointCount, 0)
	if err != nil {
		return nil, err
	}
	if d.off != len(d.buf) {
		return nil, fmt.Errorf("%w: trailing payload bytes", ErrMalformed)
	}

	return snap, nil
}

type payloadDecoder struct {
	buf []byte
	off int
}

func (d *payloadDecoder) take(n int) ([]byte, error) {
	if len(d.buf)-d.off < n {
		return nil, fmt.Errorf("%w: truncated payload", ErrMalformed)
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *payloadDecoder) byte() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *payloadDecoder) uint32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *payloadDecoder) uint64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// node decodes one preorder-encoded node whose range is [begin, end).
func (d *payloadDecoder) node(begin, end, depth int) (*Node, error) {
	if depth > maxTreeDepth {
		return nil, fmt.Errorf("%w: tree too deep", ErrMalformed)
	}

	kind, err := d.byte()
	if err != nil {
		return nil, err
	}

	switch kind {
	case nodeKindLeaf:
		return &Node{}, nil
	case nodeKindInternal:
		axis, err := d.byte()
		if err != nil {
			return nil, err
		}
		if axis > 2 {
			return nil, fmt.Errorf("%w: split axis %d", ErrMalformed, axis)
		}

		bits, err := d.uint64()
		if err != nil {
			return nil, err
		}

		mid64, err := d.uint64()
		if err != nil {
			return nil, err
		}
		mid := int(mid64)
		if mid < begin || mid > end {
			return nil, fmt.Errorf("%w: split offset %d outside range [%d,%d]", ErrMalformed, mid, begin, end)
		}

		n := &Node{
			Axis:  int(axis),
			Split: math.Float64frombits(bits),
			Mid:   mid,
		}

		if n.Left, err = d.node(begin, mid, depth+1); err != nil {
			return nil, err
		}
		if n.Right, err = d.node(mid, end, depth+1); err != nil {
			return nil, err
		}

		return n, nil
	default:
		return nil, fmt.Errorf("%w: unknown node kind %d", ErrMalformed, kind)
	}
}
