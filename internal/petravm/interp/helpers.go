package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// snapshot captures the architectural state as it stood just before the
// current instruction commits, for use as an event's Base.PC/FP/Ts. Must
// be called before commit/commitProverOnly/jumpTo mutate interpreter state.
func (i *Interpreter) snapshot() (field.F32, uint32, uint32) {
	return i.pc, i.fp, i.timestamp
}

// baseFor builds the shared Base for an event, given the pre-instruction
// snapshot (pc, fp, ts) and the computed next state. fp/nextFP differ only
// across CALL/TAIL/RET.
func (i *Interpreter) baseFor(op isa.Opcode, rec memory.InstructionRecord, pc field.F32, fp, ts uint32, nextPC field.F32, nextFP uint32) events.Base {
	return events.Base{
		Opcode: op,
		Arg0:   rec.Arg0, Arg1: rec.Arg1, Arg2: rec.Arg2,
		PC: pc, FP: fp, Ts: ts,
		NextPC: nextPC, NextFP: nextFP,
	}
}

// writeWord writes value to addr and turns any drained pending moves into
// DeferredMove events appended to the trace, fixing up calls whose
// argument moves raced ahead of the value they copy.
func (i *Interpreter) writeWord(addr, value uint32) error {
	deferred, err := i.vrom.WriteWord(addr, value)
	if err != nil {
		return err
	}
	for _, d := range deferred {
		i.trace.AppendDeferredMove(events.DeferredMove{
			Base: events.Base{
				Opcode: isa.MVV_W,
				PC:     d.PC, FP: d.FP, Ts: i.timestamp,
				NextPC: d.PC, NextFP: d.FP,
			},
			Addr: d.Addr, Value: d.Value,
		})
	}
	return nil
}

// commit finalizes an ordinary (non-control-flow) instruction: it advances
// PC/promIndex by the standard "multiply by G" step, bumps the
// timestamp, and returns the resulting (nextPC, nextFP) pair for the
// event's Base, committing the new position into the interpreter.
func (i *Interpreter) commit(op isa.Opcode) (field.F32, uint32) {
	nextPC, nextIdx := i.advance(op)
	i.pc = nextPC
	i.promIndex = nextIdx
	i.timestamp++
	return nextPC, i.fp
}

// commitProverOnly advances only promIndex, per the glossary's "prover-only
// instruction emits no state/PROM flush": the field PC and timestamp used
// for state channel chaining are left untouched so the surrounding real
// instructions chain through each other directly (see DESIGN.md).
func (i *Interpreter) commitProverOnly() {
	i.promIndex++
}
