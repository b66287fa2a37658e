package vm

import "fmt"

// RuntimeErrorKind identifies the fatal condition behind a RuntimeError.
type RuntimeErrorKind int

const (
	// IllegalMemoryAccess covers out-of-segment addresses, misaligned
	// halfword/word accesses, writes to read-only segments, and writes
	// beyond a static segment's materialized extent.
	IllegalMemoryAccess RuntimeErrorKind = iota
	// IllegalInstruction covers words the decoder or scheduler cannot match.
	IllegalInstruction
	// IllegalRegisterAccess covers a register index >= 32 or a write to $zero.
	IllegalRegisterAccess
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case IllegalMemoryAccess:
		return "IllegalMemoryAccess"
	case IllegalInstruction:
		return "IllegalInstruction"
	case IllegalRegisterAccess:
		return "IllegalRegisterAccess"
	default:
		return "UnknownRuntimeError"
	}
}

// RuntimeError is fatal: the step that produced it did not complete, and
// the embedder is expected to stop calling Step.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newRuntimeError(kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Trap is recoverable: it is carried alongside a successful Step result and
// never stops execution on its own. The embedder decides whether to pause,
// log, or continue.
type Trap struct {
	Message string
}

func (t *Trap) Error() string {
	return t.Message
}

func newTrap(format string, args ...any) *Trap {
	return &Trap{Message: fmt.Sprintf(format, args...)}
}
