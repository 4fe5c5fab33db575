package ijvm

import (
	"bufio"
	"io"
	"os"

	"ijvm/internal/trace"
)

// Register-free word/byte types (spec.md §3). Word arithmetic wraps on
// overflow via Go's normal int32 semantics; byte is always unsigned.
type word = int32

const (
	// stackWords is the minimum backing-array size spec.md §3 requires
	// for the operand stack ("at least 65,536 words").
	stackWords = 65536

	// outerFrameSPOffset is both sp's and floor's initial offset from lv
	// at load time: sp = floor = lv + 9, reserving the synthetic outer
	// frame's 10 slots (spec.md §4.1) below the operand-stack-empty
	// baseline. spec.md's Open Questions leaves whether this should be
	// image-derived unresolved; this repo keeps it a fixed constant
	// (see DESIGN.md).
	outerFrameSPOffset = 9

	// defaultEOFValue is what IN pushes when the input stream is
	// exhausted. spec.md's Open Questions notes two candidate values
	// across source snapshots ('0' vs 0) and takes 0 as canonical while
	// asking implementations to expose it as a switch; Machine.EOFValue
	// is that switch.
	defaultEOFValue word = 0
)

// Machine is the IJVM interpreter's state (spec.md §3 Data Model). It owns
// the text and constant-pool buffers produced by Load and the backing
// stack array the Stack/Frame Engine indexes into. A Machine is not
// thread-safe and not meant to be shared across goroutines (spec.md §5).
type Machine struct {
	constantPool []byte
	text         []byte

	backing [stackWords]word
	sp      int // index of the top occupied slot; equals floor when the operand stack is empty
	lv      int // index of local 0 for the executing frame

	// floor is the sp value at which the executing frame's operand
	// stack is empty: stack_depth() = sp - floor (spec.md §6). It sits
	// above lv's locals and any INVOKEVIRTUAL/IRETURN bookkeeping
	// slots, and is saved/restored across calls the same way lv is -
	// distinct from lv itself, which anchors the locals region, not
	// the operand stack.
	floor int

	pc     int
	halted bool
	wide   bool

	// ErrSignaled distinguishes an ERR-caused halt from a clean HALT for
	// the benefit of an external telemetry/CLI layer (SPEC_FULL.md §4).
	// It never feeds back into dispatch: spec.md's Data Model names
	// exactly one halted flag.
	ErrSignaled bool

	// EOFValue is pushed by IN when the input stream is exhausted.
	// Defaults to 0 (spec.md's Open Questions, "taken as canonical").
	EOFValue word

	err error

	in  *bufio.Reader
	out *bufio.Writer

	log *trace.Logger
}

const stackBase = 0

// newMachine initializes machine state from parsed image buffers exactly
// as spec.md §4.1 describes: pc=0, halted=false, wide=false, lv=stack
// base, sp = floor = lv + outerFrameSPOffset (reserving the synthetic
// outer frame's locals before any code runs). sp == floor at this point
// means the operand stack starts empty, satisfying spec.md §8's
// "stack_depth() = 0 after load" invariant.
func newMachine(constantPool, text []byte) *Machine {
	m := &Machine{
		constantPool: constantPool,
		text:         text,
		pc:           0,
		halted:       false,
		wide:         false,
		EOFValue:     defaultEOFValue,
	}
	m.lv = stackBase
	m.sp = m.lv + outerFrameSPOffset
	m.floor = m.sp
	m.SetInput(os.Stdin)
	m.SetOutput(os.Stdout)
	return m
}

// SetLogger wires step-level tracing. Never called by the engine itself;
// only by external collaborators such as cmd/ijvm.
func (m *Machine) SetLogger(l *trace.Logger) {
	m.log = l
}

// SetInput rebinds the byte-oriented input stream IN reads from
// (spec.md §4.5, §6).
func (m *Machine) SetInput(r io.Reader) {
	m.in = bufio.NewReader(r)
}

// SetOutput rebinds the byte-oriented output stream OUT writes to.
func (m *Machine) SetOutput(w io.Writer) {
	m.out = bufio.NewWriter(w)
}

// Destroy releases the machine's buffers and flushes any buffered output.
// Idempotent: calling it twice is harmless. A failed Load never returns a
// Machine, so Destroy is not required after a load failure (spec.md §7).
func (m *Machine) Destroy() {
	if m.out != nil {
		m.out.Flush()
	}
	m.constantPool = nil
	m.text = nil
	m.halted = true
}

// Finished reports whether execution should stop: halted, or pc has run
// past the end of text (spec.md §4.4).
func (m *Machine) Finished() bool {
	return m.halted || m.pc >= len(m.text)
}

// markRanOff records errProgramFinished the first time Finished becomes
// true without an explicit HALT/ERR (pc ran past the end of text). A
// no-op once halted is already set, so it never overwrites an error a
// runtime failure or ERR already recorded.
func (m *Machine) markRanOff() {
	if !m.halted {
		m.fail(errProgramFinished)
	}
}
