package memory

import "fmt"

// Kind distinguishes the memory-semantics violations the core can raise.
// These are the MemoryError variants named in spec §6.
type Kind int

const (
	// VromRewrite is raised when a VROM address already holds a value and a
	// later write supplies a different one.
	VromRewrite Kind = iota
	// VromMissingValue is raised by a strict VROM read of an address that
	// was never written.
	VromMissingValue
	// VromMisaligned is raised by a multi-word VROM write whose address is
	// not a multiple of the word count.
	VromMisaligned
	// RamMisaligned is raised by a RAM access whose address violates its
	// width's natural-alignment requirement.
	RamMisaligned
)

func (k Kind) String() string {
	switch k {
	case VromRewrite:
		return "VromRewrite"
	case VromMissingValue:
		return "VromMissingValue"
	case VromMisaligned:
		return "VromMisaligned"
	case RamMisaligned:
		return "RamMisaligned"
	default:
		return "Unknown"
	}
}

// Error is a structured memory-semantics violation. It carries the
// offending address so callers can report it without re-parsing a string.
type Error struct {
	Kind    Kind
	Addr    uint32
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("memory error [%s] at addr %d: %s", e.Kind, e.Addr, e.Message)
}

// Is enables errors.Is comparisons against a Kind-only sentinel built with
// NewKindSentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewKindSentinel builds a bare Error usable as an errors.Is target, e.g.
// errors.Is(err, memory.NewKindSentinel(memory.VromRewrite)).
func NewKindSentinel(k Kind) *Error {
	return &Error{Kind: k}
}
