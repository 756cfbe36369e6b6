package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execB32 handles B32_MUL (two vrom operands) and B32_MULI (one vrom
// operand, one 32-bit immediate spanning two PROM slots).
func (i *Interpreter) execB32(op isa.Opcode, rec memory.InstructionRecord) error {
	dst := i.addr(rec.Arg0)
	src1 := i.addr(rec.Arg1)

	raw1, err := i.vrom.ReadWord(src1)
	if err != nil {
		return err
	}
	val1 := field.F32(raw1)

	var src2 uint32
	var val2 field.F32
	var imm32 uint32
	isImm := op == isa.B32_MULI

	if isImm {
		hiRec, err := i.image.PROM.At(i.promIndex + 1)
		if err != nil {
			return err
		}
		imm32 = uint32(rec.Arg2) | uint32(hiRec.Arg0)<<16
	} else {
		src2 = i.addr(rec.Arg2)
		raw2, err := i.vrom.ReadWord(src2)
		if err != nil {
			return err
		}
		val2 = field.F32(raw2)
	}

	var result field.F32
	if isImm {
		result = val1.Mul(field.F32(imm32))
	} else {
		result = val1.Mul(val2)
	}

	if err := i.writeWord(dst, uint32(result)); err != nil {
		return err
	}

	pc, fp, ts := i.snapshot()
	nextPC, nextFP := i.commit(op)
	i.trace.AppendB32Op(events.B32Op{
		Base:  i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		Dst:   dst, Src1: src1, Src2: src2,
		Imm32: imm32, IsImm: isImm,
		Val1: val1, Val2: val2, Result: result,
	})
	return nil
}
