package ijvm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// magicNumber is the 4-byte big-endian header every IJVM binary image
// must start with (spec.md §3).
const magicNumber uint32 = 0x1DEADFAD

// Load opens path, parses the binary image (magic, constant-pool block,
// text block) and returns a Machine ready to Run/Step. On any load-time
// failure the returned error wraps one of ErrBadMagic, ErrTruncatedImage,
// or the underlying *os.PathError - no partial Machine is returned.
func Load(path string) (*Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return loadFrom(f)
}

// loadFrom parses an image from an already-open reader. Split out from
// Load so tests can exercise the parser against an in-memory buffer
// without touching the filesystem.
func loadFrom(r io.Reader) (*Machine, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedImage, err)
	}
	if magic != magicNumber {
		return nil, fmt.Errorf("%w: got 0x%08X", ErrBadMagic, magic)
	}

	constantPool, err := readBlock(r)
	if err != nil {
		return nil, err
	}

	text, err := readBlock(r)
	if err != nil {
		return nil, err
	}

	return newMachine(constantPool, text), nil
}

// readBlock discards the 4-byte origin, reads the 4-byte big-endian size
// N, then reads N raw bytes. Fails with ErrTruncatedImage on any short
// read (spec.md §4.1).
func readBlock(r io.Reader) ([]byte, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: block header: %v", ErrTruncatedImage, err)
	}

	size := binary.BigEndian.Uint32(header[4:8])
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: block body: %v", ErrTruncatedImage, err)
	}

	return data, nil
}
