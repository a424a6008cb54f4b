package localfs

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/willief/AntTP-tutorial/storage"
)

// Compression identifies how a frame payload is compressed. Values are
// written to disk; changing them breaks existing stores.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return CompressionNone, nil
	case "", "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("localfs: unknown compression %q", name)
	}
}

// Frame layout:
//
//	magic "ANTF" | version (1) | compression (1) | uvarint size | blake3 (32) | payload
//
// The checksum covers the uncompressed value.
var frameMagic = [4]byte{'A', 'N', 'T', 'F'}

const (
	frameVersion  = 1
	checksumSize  = 32
	minFrameBytes = len(frameMagic) + 2 + 1 + checksumSize
)

var errIncompressible = errors.New("incompressible")

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("localfs: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("localfs: zstd decoder initialization failed: " + err.Error())
	}
}

func encodeFrame(value []byte, want Compression) ([]byte, error) {
	tag := want
	payload, err := compress(value, want)
	if errors.Is(err, errIncompressible) {
		tag, payload = CompressionNone, value
	} else if err != nil {
		return nil, err
	}

	sum := blake3.Sum256(value)
	var buf bytes.Buffer
	buf.Grow(minFrameBytes + binary.MaxVarintLen64 + len(payload))
	buf.Write(frameMagic[:])
	buf.WriteByte(frameVersion)
	buf.WriteByte(byte(tag))
	var size [binary.MaxVarintLen64]byte
	buf.Write(size[:binary.PutUvarint(size[:], uint64(len(value)))])
	buf.Write(sum[:])
	buf.Write(payload)
	return buf.Bytes(), nil
}

func decodeFrame(frame []byte) ([]byte, error) {
	if len(frame) < minFrameBytes || !bytes.Equal(frame[:4], frameMagic[:]) {
		return nil, fmt.Errorf("%w: bad frame header", storage.ErrCorrupt)
	}
	if frame[4] != frameVersion {
		return nil, fmt.Errorf("%w: unsupported frame version %d", storage.ErrCorrupt, frame[4])
	}
	tag := Compression(frame[5])
	size, n := binary.Uvarint(frame[6:])
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad size field", storage.ErrCorrupt)
	}
	rest := frame[6+n:]
	if len(rest) < checksumSize {
		return nil, fmt.Errorf("%w: truncated checksum", storage.ErrCorrupt)
	}
	var want [checksumSize]byte
	copy(want[:], rest[:checksumSize])
	value, err := decompress(rest[checksumSize:], tag, int(size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	if blake3.Sum256(value) != want {
		return nil, fmt.Errorf("%w: checksum mismatch", storage.ErrCorrupt)
	}
	return value, nil
}

func compress(data []byte, tag Compression) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		if len(data) == 0 {
			return nil, errIncompressible
		}
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		written, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// CompressBlock reports 0 for incompressible input.
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return dst[:written], nil
	case CompressionZstd:
		out := zstdEncoder.EncodeAll(data, nil)
		if len(out) >= len(data) {
			return nil, errIncompressible
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", tag)
	}
}

func decompress(payload []byte, tag Compression, size int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(payload) != size {
			return nil, fmt.Errorf("payload is %d bytes, expected %d", len(payload), size)
		}
		return append([]byte(nil), payload...), nil
	case CompressionLZ4:
		dst := make([]byte, size)
		read, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != size {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
		}
		return dst, nil
	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(out) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(out), size)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", tag)
	}
}
