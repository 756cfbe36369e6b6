// Package testutil provides small helpers for hand-building interp
// programs in tests: a sequential-field-PC instruction builder plus a
// thin run wrapper, grounded on the shape of assembler-emitted programs
// original_source's tests/collatz.rs builds by hand.
package testutil

import (
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/interp"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
	"github.com/petraprover/petravm/internal/petravm/trace"
)

// Builder accumulates instruction records, assigning each non-prover-only
// record the next field PC in the One, One*G, One*G^2, ... chain. Every
// program built this way starts at prom index 0 / field PC field.One,
// matching interp.New's initial state.
type Builder struct {
	records []memory.InstructionRecord
	pc      field.F32
}

// NewBuilder starts a fresh program at field PC field.One.
func NewBuilder() *Builder {
	return &Builder{pc: field.One}
}

// Index returns the prom index the next Emit call will occupy.
func (b *Builder) Index() uint32 { return uint32(len(b.records)) }

// Emit appends an ordinary instruction with no jump advice or argument
// moves, returning its prom index.
func (b *Builder) Emit(op isa.Opcode, arg0, arg1, arg2 uint16) uint32 {
	return b.emit(op, arg0, arg1, arg2, nil, nil)
}

// EmitJump is like Emit but attaches advice pointing a control-flow
// instruction (BNZ/BZ/JUMPI/JUMPV/CALLI/CALLV/TAILI/TAILV) directly at a
// known prom index, sidestepping the need for a populated PCIndex map.
func (b *Builder) EmitJump(op isa.Opcode, arg0, arg1, arg2 uint16, targetIndex uint32) uint32 {
	return b.emit(op, arg0, arg1, arg2, &memory.Advice{PromIndex: targetIndex}, nil)
}

// EmitCall is like EmitJump but also attaches a CALL/TAIL's argument
// moves.
func (b *Builder) EmitCall(op isa.Opcode, arg0, arg1, arg2 uint16, targetIndex uint32, moves []memory.ArgMove) uint32 {
	return b.emit(op, arg0, arg1, arg2, &memory.Advice{PromIndex: targetIndex}, moves)
}

func (b *Builder) emit(op isa.Opcode, arg0, arg1, arg2 uint16, advice *memory.Advice, moves []memory.ArgMove) uint32 {
	idx := uint32(len(b.records))
	b.records = append(b.records, memory.InstructionRecord{
		Opcode:   uint16(op),
		Arg0:     arg0,
		Arg1:     arg1,
		Arg2:     arg2,
		FieldPC:  b.pc,
		Advice:   advice,
		ArgMoves: moves,
	})
	b.pc = b.pc.Mul(field.Generator)
	return idx
}

// Records returns the instruction records built so far.
func (b *Builder) Records() []memory.InstructionRecord { return b.records }

// Image wraps the built records into an isa.Image, keyed by the given
// frame sizes (map key: the field PC of the callee's entry instruction,
// from FieldPCForIndex).
func (b *Builder) Image(frameSizes map[field.F32]uint16) *isa.Image {
	return &isa.Image{
		PROM:       memory.NewPROM(b.Records()),
		FrameSizes: frameSizes,
		PCIndex:    map[field.F32]isa.PCLocation{},
	}
}

// FieldPCForIndex returns the field PC that prom index idx will carry in
// any program built by Builder, without requiring that index to have been
// emitted yet: every record advances the chain by one step regardless of
// opcode, so the sequence is a pure function of position.
func FieldPCForIndex(idx uint32) field.F32 {
	pc := field.One
	for k := uint32(0); k < idx; k++ {
		pc = pc.Mul(field.Generator)
	}
	return pc
}

// SplitTarget packs a field PC into the (lo, hi) halves BZ/BNZ/JUMPI/
// CALLI/TAILI expect across two argument fields.
func SplitTarget(pc field.F32) (lo, hi uint16) {
	v := uint32(pc)
	return uint16(v), uint16(v >> 16)
}

// Run constructs an interpreter over image/initialVROM with cfg (nil for
// interp.DefaultConfig) and runs it to completion.
func Run(image *isa.Image, initialVROM []uint32, cfg *interp.Config) (*trace.Trace, trace.Boundary, error) {
	it, err := interp.New(image, initialVROM, cfg)
	if err != nil {
		return nil, trace.Boundary{}, err
	}
	return it.Run()
}
