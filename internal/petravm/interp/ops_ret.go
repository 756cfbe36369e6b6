package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execRet handles RET: restores control to the return PC/FP stored in
// the current frame's first two slots (written there by whichever
// CALL/TAIL allocated this frame). Returning to field PC zero halts the
// machine.
func (i *Interpreter) execRet(op isa.Opcode, rec memory.InstructionRecord) error {
	retPCRaw, err := i.vrom.ReadWord(i.fp)
	if err != nil {
		return err
	}
	retFP, err := i.vrom.ReadWord(i.fp ^ 1)
	if err != nil {
		return err
	}
	retPC := field.F32(retPCRaw)

	pc, fp, ts := i.snapshot()

	i.fp = retFP
	if retPC.IsZero() {
		i.pc = field.Zero
		i.halted = true
	} else if err := i.jumpTo(retPC, rec.Advice); err != nil {
		return err
	}
	i.timestamp++

	i.trace.AppendRet(events.Ret{
		Base:  i.baseFor(op, rec, pc, fp, ts, i.pc, i.fp),
		RetPC: retPC,
		RetFP: retFP,
	})
	return nil
}
