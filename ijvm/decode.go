package ijvm

import "encoding/binary"

// Decoder (spec.md §4.2). All multi-byte text operands and constant-pool
// entries are big-endian; isolating the decoding here means the rest of
// the engine never reasons about byte order directly.

// byteOperand reads a signed byte at text[pc+off].
func (m *Machine) byteOperand(off int) int8 {
	return int8(m.text[m.pc+off])
}

// ubyteOperand reads an unsigned byte at text[pc+off].
func (m *Machine) ubyteOperand(off int) uint8 {
	return m.text[m.pc+off]
}

// shortOperand reads a signed big-endian 16-bit value at text[pc+off].
func (m *Machine) shortOperand(off int) int16 {
	return int16(binary.BigEndian.Uint16(m.text[m.pc+off : m.pc+off+2]))
}

// ushortOperand reads an unsigned big-endian 16-bit value at
// text[pc+off].
func (m *Machine) ushortOperand(off int) uint16 {
	return binary.BigEndian.Uint16(m.text[m.pc+off : m.pc+off+2])
}

// constant returns the big-endian 32-bit word at constant_pool[4*i:4*i+4]
// (spec.md §3: 4*(i+1) <= len(constant_pool) on a well-formed image).
func (m *Machine) constant(i int) word {
	return word(binary.BigEndian.Uint32(m.constantPool[4*i : 4*i+4]))
}
