package ijvm

// Inspectors (spec.md §6): pure reads consumed by the CLI and test
// harness, never by the engine itself.

// PC returns the current program counter.
func (m *Machine) PC() int {
	return m.pc
}

// TextPtr returns the raw text segment. Callers must treat it as
// read-only; the engine never mutates text after Load.
func (m *Machine) TextPtr() []byte {
	return m.text
}

// TextSize returns the length of the text segment in bytes.
func (m *Machine) TextSize() int {
	return len(m.text)
}

// CurrentOpcode returns the mnemonic of the opcode at pc, or "" if pc is
// past the end of text.
func (m *Machine) CurrentOpcode() string {
	if m.pc >= len(m.text) {
		return ""
	}
	return Opcode(m.text[m.pc]).String()
}

// TOS returns the value at the top of the operand stack.
func (m *Machine) TOS() word {
	return m.tos()
}

// StackDepth returns sp - floor, the number of words live in the current
// frame's operand stack region (locals and call bookkeeping excluded).
func (m *Machine) StackDepth() int {
	return m.stackDepth()
}

// StackView returns a slice into the live frame: backing[lv:sp+1].
func (m *Machine) StackView() []word {
	return m.backing[m.lv : m.sp+1]
}

// LocalsView returns a slice of just the current frame's local-variable
// region, distinct from StackView's full frame. Not named in spec.md §6
// but a natural read over the same Data Model (SPEC_FULL.md §4).
func (m *Machine) LocalsView(numLocals int) []word {
	return m.backing[m.lv : m.lv+numLocals]
}

// GetLocal reads local variable i of the executing frame.
func (m *Machine) GetLocal(i int) word {
	return m.local(i)
}

// GetConstant reads constant-pool entry i.
func (m *Machine) GetConstant(i int) word {
	return m.constant(i)
}

// ConstantPoolSize returns the number of 32-bit words in the constant
// pool.
func (m *Machine) ConstantPoolSize() int {
	return len(m.constantPool) / 4
}

// Halted reports whether the machine has stopped via HALT, ERR, or a
// runtime error.
func (m *Machine) Halted() bool {
	return m.halted
}
