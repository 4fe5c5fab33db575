// Package trace provides the execution tracing used by the interpreter's
// external collaborators (CLI, test harnesses). The core engine only holds
// an optional *Logger, which stays nil unless a collaborator such as
// cmd/ijvm sets one, so the dispatcher's step-by-step state is observable
// without the engine configuring a logging backend itself.
package trace

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a thin wrapper over logrus so call sites don't repeat field
// names for the handful of attributes the engine exposes (pc, opcode, sp, lv).
type Logger struct {
	*logrus.Logger
}

// New builds a Logger writing to stderr. Step-level tracing only appears
// when enabled is true (equivalent to the teacher's -debug flag); runtime
// warnings (EOF on IN, unknown opcode) always surface at Warn level.
func New(enabled bool) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if enabled {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return &Logger{Logger: l}
}

// Step logs one dispatcher step at debug level. Cheap no-op when the
// logger's level excludes Debug, since logrus skips field formatting in
// that case.
func (l *Logger) Step(pc int, opcode string, sp, lv int) {
	l.WithFields(logrus.Fields{
		"pc":     pc,
		"opcode": opcode,
		"sp":     sp,
		"lv":     lv,
	}).Debug("step")
}

// RuntimeWarn surfaces a recovered-locally condition, such as EOF on IN.
func (l *Logger) RuntimeWarn(pc int, msg string) {
	l.WithField("pc", pc).Warn(msg)
}
