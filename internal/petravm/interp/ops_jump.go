package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execJump handles JUMPI (target is a 32-bit immediate packed as
// arg0 | arg1<<16) and JUMPV (target is read from the vrom slot named by
// arg0), grounded on original_source/assembly/src/event/jump.rs. FP does
// not change across a jump.
func (i *Interpreter) execJump(op isa.Opcode, rec memory.InstructionRecord) error {
	var target field.F32
	var targetAddr uint32
	fromVrom := op == isa.JUMPV

	if fromVrom {
		targetAddr = i.addr(rec.Arg0)
		raw, err := i.vrom.ReadWord(targetAddr)
		if err != nil {
			return err
		}
		target = field.F32(raw)
	} else {
		target = field.F32(uint32(rec.Arg0) | uint32(rec.Arg1)<<16)
	}

	pc, fp, ts := i.snapshot()
	if err := i.jumpTo(target, rec.Advice); err != nil {
		return err
	}
	i.timestamp++

	i.trace.AppendJump(events.Jump{
		Base:       i.baseFor(op, rec, pc, fp, ts, i.pc, i.fp),
		Target:     target,
		TargetAddr: targetAddr,
		FromVrom:   fromVrom,
	})
	return nil
}
