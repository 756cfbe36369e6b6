package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execBranch handles BNZ/BZ: the condition at arg0 is tested against the
// opcode's polarity; on a match control jumps to the target field PC
// packed across arg1:arg2, otherwise execution falls through normally
// (grounded on original_source's arithmetization/branch.rs).
func (i *Interpreter) execBranch(op isa.Opcode, rec memory.InstructionRecord) error {
	cond := i.addr(rec.Arg0)
	condVal, err := i.vrom.ReadWord(cond)
	if err != nil {
		return err
	}
	target := field.F32(uint32(rec.Arg1) | uint32(rec.Arg2)<<16)
	taken := (op == isa.BNZ && condVal != 0) || (op == isa.BZ && condVal == 0)

	pc, fp, ts := i.snapshot()

	var nextPC field.F32
	var nextFP uint32
	if taken {
		if err := i.jumpTo(target, rec.Advice); err != nil {
			return err
		}
		i.timestamp++
		nextPC, nextFP = i.pc, i.fp
	} else {
		nextPC, nextFP = i.commit(op)
	}

	i.trace.AppendBranch(events.Branch{
		Base:     i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		CondAddr: cond, CondVal: condVal, Target: target, Taken: taken,
	})
	return nil
}
