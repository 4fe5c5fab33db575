package ijvm

// Dispatcher (spec.md §4.4): fetch-execute loop. Step performs exactly one
// opcode's semantics plus its PC update and reports whether the caller
// should keep going; Run loops Step until Finished.

// Run executes until Finished, i.e. until HALT/ERR or pc runs past the
// end of text. Runtime errors transition to halted and are not retried
// (spec.md §7); Run never returns an error itself - inspect Machine.Err()
// after it returns if that matters to the caller.
func (m *Machine) Run() {
	for !m.Finished() {
		if !m.Step() {
			return
		}
	}
	m.markRanOff()
}

// Step fetches text[pc], executes its semantics, advances pc, and reports
// whether execution should continue. Calling Step after Finished is a
// no-op that reports false; the first such call past a pc overrun (as
// opposed to an explicit HALT/ERR) records errProgramFinished.
func (m *Machine) Step() bool {
	if m.Finished() {
		m.markRanOff()
		return false
	}
	return m.step()
}

// fail transitions the machine to halted with the given runtime error,
// matching spec.md §7's "runtime errors transition to the halted state".
func (m *Machine) fail(err error) {
	m.err = err
	m.halted = true
}

// Err returns the runtime error that halted the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

func (m *Machine) step() bool {
	opcode := Opcode(m.text[m.pc])

	if m.log != nil {
		m.log.Step(m.pc, opcode.String(), m.sp, m.lv)
	}

	switch opcode {
	case OpNop:
		m.pc++

	case OpBipush:
		b := m.byteOperand(1)
		m.push(word(b))
		m.pc += 2

	case OpLdcW:
		i := m.ushortOperand(1)
		m.push(m.constant(int(i)))
		m.pc += 3

	case OpIload:
		idx, width := m.indexOperand()
		m.push(m.local(idx))
		m.pc += width

	case OpIstore:
		idx, width := m.indexOperand()
		m.setLocal(idx, m.pop())
		m.pc += width

	case OpIinc:
		idx := int(m.ubyteOperand(1))
		v := m.byteOperand(2)
		m.setLocal(idx, m.local(idx)+word(v))
		m.pc += 3

	case OpPop:
		m.pop()
		m.pc++

	case OpDup:
		m.push(m.tos())
		m.pc++

	case OpSwap:
		a := m.pop()
		b := m.pop()
		m.push(a)
		m.push(b)
		m.pc++

	case OpIadd:
		arg2 := m.pop()
		arg1 := m.pop()
		m.push(arg1 + arg2)
		m.pc++

	case OpIsub:
		arg2 := m.pop()
		arg1 := m.pop()
		m.push(arg1 - arg2)
		m.pc++

	case OpIand:
		arg2 := m.pop()
		arg1 := m.pop()
		m.push(arg1 & arg2)
		m.pc++

	case OpIor:
		arg2 := m.pop()
		arg1 := m.pop()
		m.push(arg1 | arg2)
		m.pc++

	case OpGoto:
		off := int(m.shortOperand(1))
		m.pc += off

	case OpIfeq:
		off := int(m.shortOperand(1))
		arg := m.pop()
		if arg == 0 {
			m.pc += off
		} else {
			m.pc += 3
		}

	case OpIflt:
		off := int(m.shortOperand(1))
		arg := m.pop()
		if arg < 0 {
			m.pc += off
		} else {
			m.pc += 3
		}

	case OpIfIcmpeq:
		off := int(m.shortOperand(1))
		a2 := m.pop()
		a1 := m.pop()
		if a1 == a2 {
			m.pc += off
		} else {
			m.pc += 3
		}

	case OpIn:
		b, err := m.in.ReadByte()
		if err != nil {
			if m.log != nil {
				m.log.RuntimeWarn(m.pc, "EOF on IN")
			}
			m.push(m.EOFValue)
		} else {
			m.push(word(b))
		}
		m.pc++

	case OpOut:
		v := m.pop()
		m.out.WriteByte(byte(v))
		m.out.Flush()
		m.pc++

	case OpHalt:
		m.halted = true

	case OpErr:
		m.halted = true
		m.ErrSignaled = true

	case OpWide:
		m.wide = true
		m.pc++
		m.step()
		m.wide = false

	case OpInvokeVirtual:
		m.invokeVirtual()

	case OpIreturn:
		m.ireturn()

	default:
		if m.log != nil {
			m.log.RuntimeWarn(m.pc, "unknown opcode")
		}
		m.fail(errUnknownOpcode)
	}

	return !m.halted
}

// indexOperand reads ILOAD/ISTORE's index operand: a ubyte at offset 1
// normally, or a ushort at offset 1 when the WIDE prefix set wide=true
// (spec.md §4.4 "WIDE prefix"). Returns the index and the total opcode
// width in bytes.
func (m *Machine) indexOperand() (idx int, width int) {
	if m.wide {
		return int(m.ushortOperand(1)), 3
	}
	return int(m.ubyteOperand(1)), 2
}

// invokeVirtual implements the call protocol of spec.md §4.4: resolve
// the method address from the constant pool, establish the callee's
// lv/locals, and push the saved-state slots OBJREF threads through -
// saved PC, saved LV, and saved floor (the caller's empty-operand-stack
// baseline), so stack_depth() stays meaningful across the call.
func (m *Machine) invokeVirtual() {
	methodIdx := int(m.ushortOperand(1))
	methodAddr := int(m.constant(methodIdx))

	prevPC := m.pc
	prevLV := m.lv
	prevFloor := m.floor

	m.pc = methodAddr
	numArgs := int(m.ushortOperand(0))
	numLocals := int(m.ushortOperand(2))

	m.lv = m.sp - numArgs + 1
	m.sp += numLocals

	m.push(word(prevPC))
	// local(0)'s new value is the in-frame index of the saved-PC slot.
	m.setLocal(0, word(m.sp-m.lv))
	m.push(word(prevLV - stackBase))
	m.push(word(prevFloor))

	// The callee's own operand stack starts empty above the
	// bookkeeping slots just pushed.
	m.floor = m.sp

	m.pc = methodAddr + 4
}

// ireturn implements the return protocol of spec.md §4.4: discard the
// callee frame down to and including the OBJREF slot, deposit the
// return value there, and restore the caller's lv/pc/floor.
func (m *Machine) ireturn() {
	r := m.pop()

	savedSlot := int(m.local(0))
	savedPC := int(m.local(savedSlot))
	savedLV := int(m.local(savedSlot + 1))
	savedFloor := int(m.local(savedSlot + 2))

	m.sp = m.lv
	m.backing[m.sp] = r

	m.lv = stackBase + savedLV
	m.floor = savedFloor
	m.pc = savedPC + 3
}
