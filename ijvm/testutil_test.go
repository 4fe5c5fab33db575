package ijvm

import (
	"bytes"
	"encoding/binary"
)

// buildImage assembles a binary IJVM image in memory: magic, then a
// constant-pool block, then a text block. Mirrors the on-disk format
// spec.md §3/§6 defines so tests never need real files on disk.
func buildImage(constantPool, text []byte) []byte {
	var buf bytes.Buffer

	binary.Write(&buf, binary.BigEndian, magicNumber)
	writeBlock(&buf, constantPool)
	writeBlock(&buf, text)

	return buf.Bytes()
}

func writeBlock(buf *bytes.Buffer, data []byte) {
	var origin uint32 // ignored by the loader
	binary.Write(buf, binary.BigEndian, origin)
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
}

// newTestMachine loads an in-memory image and swaps in the given input
// bytes and an output buffer the test can inspect.
func newTestMachine(constantPool, text []byte, input []byte) (*Machine, *bytes.Buffer) {
	img := buildImage(constantPool, text)
	m, err := loadFrom(bytes.NewReader(img))
	if err != nil {
		panic(err)
	}

	var out bytes.Buffer
	m.SetInput(bytes.NewReader(input))
	m.SetOutput(&out)
	return m, &out
}

// be32 encodes v as 4 big-endian bytes, the constant-pool word format.
func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// be16 encodes v as 2 big-endian bytes, the ushort/sshort operand format.
func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}
