package ijvm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroyIsIdempotentAndFlushesOutput(t *testing.T) {
	text := []byte{byte(OpBipush), 0x07, byte(OpOut), byte(OpHalt)}
	m, out := newTestMachine(nil, text, nil)

	m.Run()
	m.Destroy()
	m.Destroy() // must not panic

	assert.Equal(t, []byte{0x07}, out.Bytes())
	assert.True(t, m.Finished())
}

func TestSetInputSetOutputRebind(t *testing.T) {
	text := []byte{byte(OpIn), byte(OpOut), byte(OpHalt)}
	m, _ := newTestMachine(nil, text, []byte("x"))

	var rebound bytes.Buffer
	m.SetInput(bytes.NewReader([]byte("z")))
	m.SetOutput(&rebound)

	m.Run()

	assert.Equal(t, []byte("z"), rebound.Bytes())
}

func TestEOFValueIsConfigurable(t *testing.T) {
	text := []byte{byte(OpIn), byte(OpHalt)}
	m, _ := newTestMachine(nil, text, nil)
	m.EOFValue = 48 // ASCII '0', the alternate candidate spec.md's Open Questions names

	m.Run()

	require.Equal(t, word(48), m.TOS())
}

func TestErrSignaledDistinguishesERRFromHALT(t *testing.T) {
	halt, _ := newTestMachine(nil, []byte{byte(OpHalt)}, nil)
	halt.Run()
	assert.False(t, halt.ErrSignaled)

	errM, _ := newTestMachine(nil, []byte{byte(OpErr)}, nil)
	errM.Run()
	assert.True(t, errM.ErrSignaled)
	assert.True(t, errM.Halted())
}

func TestConstantPoolSizeAndGetConstant(t *testing.T) {
	cp := append(be32(1), be32(2)...)
	m, _ := newTestMachine(cp, []byte{byte(OpHalt)}, nil)

	assert.Equal(t, 2, m.ConstantPoolSize())
	assert.Equal(t, word(1), m.GetConstant(0))
	assert.Equal(t, word(2), m.GetConstant(1))
}

func TestRunningOffEndOfTextSetsProgramFinishedError(t *testing.T) {
	text := []byte{byte(OpNop)} // no HALT/ERR; pc runs past len(text)
	m, _ := newTestMachine(nil, text, nil)

	m.Run()

	require.True(t, m.Finished())
	require.Error(t, m.Err())
}

func TestStepPastEndSetsProgramFinishedErrorOnce(t *testing.T) {
	text := []byte{byte(OpNop)}
	m, _ := newTestMachine(nil, text, nil)

	assert.True(t, m.Step())  // executes NOP, pc=1
	assert.False(t, m.Step()) // pc past end, records the error
	require.Error(t, m.Err())

	assert.False(t, m.Step()) // idempotent, does not panic or change err
	require.Error(t, m.Err())
}

func TestCleanHaltDoesNotSetProgramFinishedError(t *testing.T) {
	m, _ := newTestMachine(nil, []byte{byte(OpHalt)}, nil)
	m.Run()
	assert.NoError(t, m.Err())
}

func TestLocalsView(t *testing.T) {
	text := []byte{byte(OpBipush), 0x09, byte(OpIstore), 0x02, byte(OpHalt)}
	m, _ := newTestMachine(nil, text, nil)

	m.Run()

	locals := m.LocalsView(3)
	assert.Equal(t, word(9), locals[2])
}
