package isa

import (
	"fmt"

	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// Image is the complete program image the assembler hands the core (spec
// §6): PROM contents, the per-label frame-size table, and the PC-index
// map letting control flow resolve a field PC to its (prom_index,
// integer_pc) pair without a discrete-log computation.
type Image struct {
	PROM         *memory.PROM
	FrameSizes   map[field.F32]uint16
	PCIndex      map[field.F32]PCLocation
}

// PCLocation is the (prom_index, integer_pc) pair a field PC resolves to.
type PCLocation struct {
	PromIndex uint32
	IntegerPC uint32
}

// Resolve looks up the PROM location for a field PC, preferring an
// instruction's carried advice whenever one is supplied (it is returned
// as-is, not checked against the PC-index map) and otherwise the image's
// PC-index map.
func (img *Image) Resolve(target field.F32, advice *memory.Advice) (PCLocation, error) {
	if advice != nil {
		return PCLocation{PromIndex: advice.PromIndex, IntegerPC: advice.IntegerPC}, nil
	}
	loc, ok := img.PCIndex[target]
	if !ok {
		return PCLocation{}, fmt.Errorf("isa: no pc-index entry for field pc %v and no advice supplied", target)
	}
	return loc, nil
}

// FrameSize looks up the frame size declared for the label at the given
// field PC (the call target). Missing entries are a malformed program
// image (spec §6, InvalidInput).
func (img *Image) FrameSize(label field.F32) (uint16, error) {
	size, ok := img.FrameSizes[label]
	if !ok {
		return 0, fmt.Errorf("isa: no frame-size entry for label %v", label)
	}
	return size, nil
}

// Validate rejects program images whose PROM holds an unrecognized opcode
// or a record whose PROVER_ONLY flag disagrees with its opcode. It checks
// nothing else: CALLV/TAILV/JUMPV targets are read from VROM at run time
// and are not inspected here, so an image whose indirect target is
// deferred is not rejected up front; executing such an instruction while
// its target slot is still unwritten fails with a VROM missing-value
// error.
func (img *Image) Validate() error {
	for i, rec := range img.PROM.Records() {
		op := Opcode(rec.Opcode)
		if !op.Valid() {
			return fmt.Errorf("isa: prom record %d: unsupported opcode %d", i, rec.Opcode)
		}
		if op.IsProverOnly() != rec.ProverOnly {
			return fmt.Errorf("isa: prom record %d (%s): prover-only flag mismatch", i, op)
		}
	}
	return nil
}
