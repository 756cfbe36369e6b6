package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

func (i *Interpreter) readF128(addr uint32) (field.F128, error) {
	if addr%4 != 0 {
		return field.F128{}, &memory.Error{Kind: memory.VromMisaligned, Addr: addr, Message: "128-bit vrom operand requires 4-word alignment"}
	}
	var words [4]uint32
	for k := 0; k < 4; k++ {
		w, err := i.vrom.ReadWord(addr + uint32(k))
		if err != nil {
			return field.F128{}, err
		}
		words[k] = w
	}
	return field.FromWords(words[0], words[1], words[2], words[3]), nil
}

// execB128 handles B128_ADD (four-word XOR) and B128_MUL (F128
// multiplication), both over 4-word-aligned operands.
func (i *Interpreter) execB128(op isa.Opcode, rec memory.InstructionRecord) error {
	dst := i.addr(rec.Arg0)
	src1 := i.addr(rec.Arg1)
	src2 := i.addr(rec.Arg2)

	val1, err := i.readF128(src1)
	if err != nil {
		return err
	}
	val2, err := i.readF128(src2)
	if err != nil {
		return err
	}

	var result field.F128
	switch op {
	case isa.B128_ADD:
		result = val1.Add(val2)
	case isa.B128_MUL:
		result = val1.Mul(val2)
	}

	if _, err := i.vrom.WriteU128(dst, result); err != nil {
		return err
	}

	pc, fp, ts := i.snapshot()
	nextPC, nextFP := i.commit(op)
	i.trace.AppendB128Op(events.B128Op{
		Base: i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		Dst:  dst, Src1: src1, Src2: src2,
		Val1: val1, Val2: val2, Result: result,
	})
	return nil
}
