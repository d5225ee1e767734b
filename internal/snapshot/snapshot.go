// Package snapshot implements the catalog backup format.
//
// A snapshot is a fixed header followed by a zstd frame:
//
//	offset  size  field
//	0       8     magic "SHELFBAK"
//	8       1     format version
//	9       8     xxh3-64 of the uncompressed payload (big-endian)
//	17      ...   zstd-compressed payload
//
// The payload is opaque to this package; the catalog stores its JSON
// document there.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/xxh3"
)

const (
	magic      = "SHELFBAK"
	version    = 1
	headerSize = len(magic) + 1 + 8

	// maxPayload bounds decompression of untrusted input.
	maxPayload = 256 << 20
)

// Errors returned by Read.
var (
	ErrBadMagic           = errors.New("not a shelf backup")
	ErrUnsupportedVersion = errors.New("unsupported backup version")
	ErrChecksum           = errors.New("backup checksum mismatch")
	ErrTruncated          = errors.New("backup is truncated")
	ErrDecompress         = errors.New("backup decompression failed")
)

// Encoder and decoder are safe for concurrent use and costly to build.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayload))
)

// Write writes payload to w as a snapshot.
func Write(w io.Writer, payload []byte) error {
	header := make([]byte, headerSize)
	copy(header, magic)
	header[len(magic)] = version
	binary.BigEndian.PutUint64(header[len(magic)+1:], xxh3.Hash(payload))

	_, err := w.Write(header)
	if err != nil {
		return fmt.Errorf("write backup header: %w", err)
	}

	_, err = w.Write(zstdEncoder.EncodeAll(payload, nil))
	if err != nil {
		return fmt.Errorf("write backup body: %w", err)
	}

	return nil
}

// Read reads a snapshot from r and returns its verified payload.
func Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return nil, ErrBadMagic
	}

	if len(data) < headerSize {
		return nil, ErrTruncated
	}

	if got := data[len(magic)]; got != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, got)
	}

	want := binary.BigEndian.Uint64(data[len(magic)+1 : headerSize])

	payload, err := zstdDecoder.DecodeAll(data[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}

	if got := xxh3.Hash(payload); got != want {
		return nil, fmt.Errorf("%w: want %016x, got %016x", ErrChecksum, want, got)
	}

	return payload, nil
}
