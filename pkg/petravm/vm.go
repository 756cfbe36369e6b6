package petravm

import (
	"github.com/petraprover/petravm/internal/petravm/interp"
	"github.com/petraprover/petravm/internal/petravm/trace"
)

// VM is the public interface to PetraVM's execution core: load a program
// image and initial VROM, run it to completion, and get back the trace
// and its boundary values.
type VM interface {
	// Run executes the loaded program to completion and returns the
	// resulting Result.
	Run() (*Result, error)

	// Step executes exactly one instruction.
	Step() error
}

// Result is one completed run's output: the full event trace plus the
// boundary values a prover or verifier would check against it.
type Result struct {
	Trace    *trace.Trace
	Boundary Boundary
}

// Validate reconstructs the canonical channels and checks they all
// balance (spec §8, "Channel balance (the central property)"). A
// non-empty return means the run produced an inconsistent trace, which
// per spec §7 is always a core bug, not a caller error.
func (r *Result) Validate() []*ImbalanceError {
	imbalances := r.Trace.Validate(r.Boundary)
	if len(imbalances) == 0 {
		return nil
	}
	out := make([]*ImbalanceError, len(imbalances))
	for i, e := range imbalances {
		out[i] = newImbalanceError(e)
	}
	return out
}

// vmImpl wraps the internal interpreter behind the public VM interface.
type vmImpl struct {
	it *interp.Interpreter
}

// NewVM constructs a VM over the given program image and initial VROM.
// Per the external-interface convention (spec §6), word 0 of
// initialVROM is the initial return PC (typically zero), word 1 the
// initial return FP, words 2.. the user-visible arguments. cfg may be
// nil to use DefaultConfig.
func NewVM(program *Program, initialVROM []uint32, cfg *Config) (VM, error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, &VMError{Code: ErrConfig, Message: err.Error(), Cause: err}
		}
	}
	it, err := interp.New(program, initialVROM, cfg)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &vmImpl{it: it}, nil
}

func (v *vmImpl) Run() (*Result, error) {
	tr, boundary, err := v.it.Run()
	if err != nil {
		return nil, wrapErr(err)
	}
	return &Result{Trace: tr, Boundary: boundary}, nil
}

func (v *vmImpl) Step() error {
	if err := v.it.Step(); err != nil {
		return wrapErr(err)
	}
	return nil
}
