package ijvm

import "errors"

// Load-time errors, returned directly to the caller of Load.
var (
	ErrBadMagic       = errors.New("ijvm: bad magic number")
	ErrTruncatedImage = errors.New("ijvm: truncated image")
)

// Runtime errors. These never escape Run/Step as Go errors; instead they
// set Machine.err and flip Halted, matching spec.md's "transition to the
// halted state" rule for runtime failures.
var (
	errUnknownOpcode   = errors.New("ijvm: unknown opcode")
	errStackOverflow   = errors.New("ijvm: stack overflow")
	errProgramFinished = errors.New("ijvm: pc past end of text")
)
