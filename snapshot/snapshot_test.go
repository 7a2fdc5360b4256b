package snapshot

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	rng := rand.New(rand.NewSource(42))

	elements := make([]Element, 16)
	for i := range elements {
		elements[i].ID = uint32(i)
		for c := 0; c < 3; c++ {
			elements[i].Position[c] = rng.Float64()
		}
	}

	return &Snapshot{
		Elements: elements,
		Root: &Node{
			Axis:  0,
			Split: 0.5,
			Mid:   8,
			Left: &Node{
				Axis:  1,
				Split: 0.25,
				Mid:   4,
				Left:  &Node{},
				Right: &Node{},
			},
			Right: &Node{},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, compression := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(compression.String(), func(t *testing.T) {
			want := testSnapshot()

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, want, func(o *Options) {
				o.Compression = compression
			}))

			got, err := Read(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRoundTripLZ4(t *testing.T) {
	t.Run("Incompressible", func(t *testing.T) {
		// Random coordinates do not compress; the block must be stored raw
		// and still round trip.
		want := testSnapshot()

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, want, func(o *Options) {
			o.Compression = CompressionLZ4
		}))

		got, err := Read(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Compressible", func(t *testing.T) {
		// Repetitive coordinates compress to less than the payload size, so
		// this exercises the genuinely compressed path.
		elements := make([]Element, 512)
		for i := range elements {
			elements[i] = Element{ID: uint32(i), Position: [3]float64{1, 2, 3}}
		}
		want := &Snapshot{Elements: elements, Root: &Node{}}

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, want, func(o *Options) {
			o.Compression = CompressionLZ4
		}))
		assert.Less(t, buf.Len(), len(elements)*elementSize)

		got, err := Read(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestRoundTripEmptyTree(t *testing.T) {
	want := &Snapshot{}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want, func(o *Options) {
		o.Compression = CompressionNone
	}))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Nil(t, got.Root)
	assert.Empty(t, got.Elements)
}

func TestReadErrors(t *testing.T) {
	encode := func(t *testing.T, compression CompressionType) []byte {
		t.Helper()

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, testSnapshot(), func(o *Options) {
			o.Compression = compression
		}))
		return buf.Bytes()
	}

	t.Run("InvalidMagic", func(t *testing.T) {
		data := encode(t, CompressionNone)
		binary.LittleEndian.PutUint32(data[0:], 0xDEADBEEF)

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("InvalidVersion", func(t *testing.T) {
		data := encode(t, CompressionNone)
		binary.LittleEndian.PutUint32(data[4:], 0x00020000)

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("UnknownCompression", func(t *testing.T) {
		data := encode(t, CompressionNone)
		data[8] = 0xFF

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("CorruptedBlock", func(t *testing.T) {
		data := encode(t, CompressionZSTD)
		data[len(data)-1] ^= 0xFF

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("TruncatedHeader", func(t *testing.T) {
		data := encode(t, CompressionNone)

		_, err := Read(bytes.NewReader(data[:20]))
		assert.Error(t, err)
	})

	t.Run("TruncatedBlock", func(t *testing.T) {
		data := encode(t, CompressionNone)

		_, err := Read(bytes.NewReader(data[:len(data)-4]))
		assert.Error(t, err)
	})

	t.Run("OversizedPayload", func(t *testing.T) {
		data := encode(t, CompressionNone)
		binary.LittleEndian.PutUint64(data[17:], 1<<50)

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("OversizedBlock", func(t *testing.T) {
		data := encode(t, CompressionNone)
		binary.LittleEndian.PutUint64(data[25:], 1<<50)

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("PointCountOverPayload", func(t *testing.T) {
		data := encode(t, CompressionNone)
		binary.LittleEndian.PutUint64(data[9:], 1<<40)

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestDecodePayloadErrors(t *testing.T) {
	t.Run("TruncatedElements", func(t *testing.T) {
		_, err := decodePayload(make([]byte, elementSize-1), 1)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("UnknownNodeKind", func(t *testing.T) {
		payload := []byte{1, 0xFF}

		_, err := decodePayload(payload, 0)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("InvalidAxis", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteByte(1)
		buf.WriteByte(nodeKindInternal)
		buf.WriteByte(3)
		buf.Write(make([]byte, 16))
		buf.WriteByte(nodeKindLeaf)
		buf.WriteByte(nodeKindLeaf)

		_, err := decodePayload(buf.Bytes(), 0)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("SplitOffsetOutsideRange", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteByte(1)
		buf.WriteByte(nodeKindInternal)
		buf.WriteByte(0)
		buf.Write(make([]byte, 8))
		mid := make([]byte, 8)
		binary.LittleEndian.PutUint64(mid, 7)
		buf.Write(mid)
		buf.WriteByte(nodeKindLeaf)
		buf.WriteByte(nodeKindLeaf)

		_, err := decodePayload(buf.Bytes(), 0)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("TrailingBytes", func(t *testing.T) {
		payload := []byte{1, nodeKindLeaf, 0xAA}

		_, err := decodePayload(payload, 0)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestReadFile(t *testing.T) {
	want := testSnapshot()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want))

	path := filepath.Join(t.TempDir(), "index.pbt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteUnknownCompression(t *testing.T) {
	err := Write(&bytes.Buffer{}, testSnapshot(), func(o *Options) {
		o.Compression = CompressionType(9)
	})
	assert.Error(t, err)
}
