package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/gadgets"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

var immShiftVariants = map[isa.Opcode]bool{isa.SLLI: true, isa.SRLI: true, isa.SRAI: true}
var arithShiftVariants = map[isa.Opcode]bool{isa.SRA: true, isa.SRAI: true}

// execShift handles SLL/SRL/SRA and their immediate variants. Shift
// amount is always taken modulo 32, so an amount >= 32 uses only its
// low 5 bits.
func (i *Interpreter) execShift(op isa.Opcode, rec memory.InstructionRecord) error {
	dst := i.addr(rec.Arg0)
	src := i.addr(rec.Arg1)

	srcVal, err := i.vrom.ReadWord(src)
	if err != nil {
		return err
	}

	immAmount := immShiftVariants[op]
	var amountAddr, rawAmount uint32
	if immAmount {
		rawAmount = uint32(rec.Arg2)
	} else {
		amountAddr = i.addr(rec.Arg2)
		rawAmount, err = i.vrom.ReadWord(amountAddr)
		if err != nil {
			return err
		}
	}
	amount := rawAmount % 32

	arithmetic := arithShiftVariants[op]
	signBit := (srcVal >> 31) & 1

	var result uint32
	switch op {
	case isa.SLL, isa.SLLI:
		result = gadgets.BarrelShift(srcVal, uint16(amount), gadgets.ShiftLogicalLeft)
	case isa.SRL, isa.SRLI:
		result = gadgets.BarrelShift(srcVal, uint16(amount), gadgets.ShiftLogicalRight)
	case isa.SRA, isa.SRAI:
		result = gadgets.ArithmeticRightShift(srcVal, uint16(amount))
	}

	if err := i.writeWord(dst, result); err != nil {
		return err
	}

	pc, fp, ts := i.snapshot()
	nextPC, nextFP := i.commit(op)
	i.trace.AppendShift(events.Shift{
		Base:       i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		Dst:        dst, Src: src, Amount: amountAddr,
		ImmAmount:  immAmount,
		SrcVal:     srcVal, AmountVal: amount, Result: result,
		Arithmetic: arithmetic, SignBit: signBit,
	})
	return nil
}
