package petravm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petraprover/petravm/internal/petravm/memory"
)

// ErrorCode classifies a VMError, collapsing the core's error surface
// (spec §6, "Error surface") into one enum rather than a distinct error
// type per failure mode.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	ErrInvalidOpcode
	ErrUnsupportedOpcode
	ErrBadPC
	ErrInvalidInput
	ErrMemory
	ErrMissingAdvice
	ErrConfig
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidOpcode:
		return "InvalidOpcode"
	case ErrUnsupportedOpcode:
		return "UnsupportedOpcode"
	case ErrBadPC:
		return "BadPc"
	case ErrInvalidInput:
		return "InvalidInput"
	case ErrMemory:
		return "MemoryError"
	case ErrMissingAdvice:
		return "MissingAdvice"
	case ErrConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// VMError is the one error type the public API returns, grounded on
// pkg/vybium-starks-vm/errors.go's VMError{Code, Message, Cause} shape.
type VMError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *VMError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("petravm error [%s]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("petravm error [%s]: %s", e.Code, e.Message)
}

func (e *VMError) Unwrap() error { return e.Cause }

func (e *VMError) Is(target error) bool {
	t, ok := target.(*VMError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// wrapErr classifies an internal error into a VMError. memory.Error
// carries a Kind the classification can switch on directly; the
// interpreter's own fatal conditions (BadPc, UnsupportedOpcode,
// MissingAdvice) are plain wrapped errors identified by the marker word
// their fmt.Errorf messages carry, and a missing frame-size entry
// (isa.Image.FrameSize) is classified as InvalidInput.
func wrapErr(err error) *VMError {
	if err == nil {
		return nil
	}
	var memErr *memory.Error
	if errors.As(err, &memErr) {
		return &VMError{Code: ErrMemory, Message: memErr.Error(), Cause: err}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "BadPc"):
		return &VMError{Code: ErrBadPC, Message: msg, Cause: err}
	case strings.Contains(msg, "UnsupportedOpcode"):
		return &VMError{Code: ErrUnsupportedOpcode, Message: msg, Cause: err}
	case strings.Contains(msg, "MissingAdvice"):
		return &VMError{Code: ErrMissingAdvice, Message: msg, Cause: err}
	case strings.Contains(msg, "no frame-size entry"):
		return &VMError{Code: ErrInvalidInput, Message: msg, Cause: err}
	case strings.Contains(msg, "prover-only/verifier-only mismatch"):
		return &VMError{Code: ErrInvalidOpcode, Message: msg, Cause: err}
	default:
		return &VMError{Code: ErrUnknown, Message: msg, Cause: err}
	}
}
