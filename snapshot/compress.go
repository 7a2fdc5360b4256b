package snapshot

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm used for the payload block.
type CompressionType uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

// String returns a string representation of the CompressionType.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

func (c CompressionType) valid() bool {
	return c == CompressionNone || c == CompressionLZ4 || c == CompressionZSTD
}

// ZSTD encoder/decoder pools for efficiency.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress compresses the payload using the given algorithm.
func compress(payload []byte, compression CompressionType) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 || n >= len(payload) {
			// Incompressible; store the block raw. A compressed block is
			// always strictly smaller than the payload, so the decoder can
			// tell the two apart by size alone.
			return append(buf[:0], payload...), nil
		}
		return buf[:n], nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(payload, nil), nil
	default:
		return nil, fmt.Errorf("unknown compression type: %d", compression)
	}
}

// decompress reverses compress. uncompressedSize is the expected payload size.
func decompress(block []byte, compression CompressionType, uncompressedSize int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return block, nil
	case CompressionLZ4:
		if len(block) == uncompressedSize {
			// Stored raw because the payload was incompressible.
			return block, nil
		}
		buf := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		return dec.DecodeAll(block, make([]byte, 0, uncompressedSize))
	default:
		return nil, fmt.Errorf("unknown compression type: %d", compression)
	}
}
