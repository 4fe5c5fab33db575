package ijvm

// Stack/Frame Engine (spec.md §4.3). Locals and the operand stack share
// one backing array; sp indexes the top occupied slot, lv indexes local 0
// of the executing frame. No bounds checking is required on conforming
// input; push optionally rejects overflow with errStackOverflow rather
// than corrupting adjacent memory.

// push writes w above the current top of stack and advances sp.
func (m *Machine) push(w word) {
	if m.sp+1 >= len(m.backing) {
		m.fail(errStackOverflow)
		return
	}
	m.sp++
	m.backing[m.sp] = w
}

// pop reads the top of stack and retracts sp.
func (m *Machine) pop() word {
	w := m.backing[m.sp]
	m.sp--
	return w
}

// tos returns the top of stack without moving sp.
func (m *Machine) tos() word {
	return m.backing[m.sp]
}

// local reads local variable i of the executing frame.
func (m *Machine) local(i int) word {
	return m.backing[m.lv+i]
}

// setLocal writes local variable i of the executing frame.
func (m *Machine) setLocal(i int, w word) {
	m.backing[m.lv+i] = w
}

// stackDepth is sp - floor, the Inspector spec.md §6 names stack_depth().
// floor, not lv, marks the current frame's empty-operand-stack baseline:
// lv also anchors the locals and call-bookkeeping region, which isn't
// part of the operand stack proper.
func (m *Machine) stackDepth() int {
	return m.sp - m.floor
}
