package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execMisc handles FP (read the current frame pointer into a vrom slot)
// and the prover-only allocator hints ALLOCI/ALLOCV. FP participates in
// the ordinary state/PROM chain like any other instruction; ALLOCI/ALLOCV
// do not (see commitProverOnly) — they exist purely to let the prover
// pre-size a frame the way the interpreter's own allocator would, so
// PROM padding and witness generation agree on VROM layout.
func (i *Interpreter) execMisc(op isa.Opcode, rec memory.InstructionRecord) error {
	switch op {
	case isa.FP:
		return i.execFP(op, rec)
	default:
		return i.execAlloc(op, rec)
	}
}

func (i *Interpreter) execFP(op isa.Opcode, rec memory.InstructionRecord) error {
	dst := i.addr(rec.Arg0)
	value := i.fp

	pc, fp, ts := i.snapshot()
	if err := i.writeWord(dst, value); err != nil {
		return err
	}

	nextPC, nextFP := i.commit(op)
	i.trace.AppendMisc(events.Misc{
		Base: i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		Dst:  dst, Value: value,
	})
	return nil
}

// execAlloc handles ALLOCI (immediate frame size) and ALLOCV (frame size
// read from vrom): both allocate a fresh VROM frame and write its base
// address to dst, without advancing the field PC or timestamp.
func (i *Interpreter) execAlloc(op isa.Opcode, rec memory.InstructionRecord) error {
	dst := i.addr(rec.Arg0)

	var size uint32
	if op == isa.ALLOCI {
		size = uint32(rec.Arg1)
	} else {
		sizeAddr := i.addr(rec.Arg1)
		var err error
		size, err = i.vrom.ReadWord(sizeAddr)
		if err != nil {
			return err
		}
	}

	base := i.vrom.AllocateFrame(size)

	pc, fp, ts := i.snapshot()
	if err := i.writeWord(dst, base); err != nil {
		return err
	}
	i.commitProverOnly()

	i.trace.AppendMisc(events.Misc{
		Base: i.baseFor(op, rec, pc, fp, ts, pc, fp),
		Dst:  dst, Value: base, ProverOnly: true,
	})
	return nil
}
