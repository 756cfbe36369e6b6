package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// immediateVariants lists opcodes whose third argument field is a literal
// rather than a vrom address.
var immediateVariants = map[isa.Opcode]bool{
	isa.ADDI: true, isa.SUBI: true,
	isa.MULI: true, isa.MULIU: true, isa.MULISU: true,
	isa.SLTI: true, isa.SLTIU: true, isa.SLEI: true, isa.SLEIU: true,
	isa.ANDI: true, isa.ORI: true, isa.XORI: true,
}

func signExtend16(v uint16) uint32 { return uint32(int32(int16(v))) }

// execIntegerOp handles ADD/SUB/MUL family, comparisons, and bitwise
// logical ops, with their immediate variants.
func (i *Interpreter) execIntegerOp(op isa.Opcode, rec memory.InstructionRecord) error {
	dst := i.addr(rec.Arg0)
	src1 := i.addr(rec.Arg1)

	val1, err := i.vrom.ReadWord(src1)
	if err != nil {
		return err
	}

	imm := immediateVariants[op]
	var src2, val2 uint32
	if imm {
		if isLogical(op) {
			val2 = uint32(rec.Arg2)
		} else {
			val2 = signExtend16(rec.Arg2)
		}
	} else {
		src2 = i.addr(rec.Arg2)
		val2, err = i.vrom.ReadWord(src2)
		if err != nil {
			return err
		}
	}

	resLo, resHi, is64 := computeIntegerOp(op, val1, val2)

	if err := i.writeWord(dst, resLo); err != nil {
		return err
	}
	if is64 {
		if err := i.writeWord(dst+1, resHi); err != nil {
			return err
		}
	}

	pc, fp, ts := i.snapshot()
	nextPC, nextFP := i.commit(op)
	i.trace.AppendIntegerOp(events.IntegerOp{
		Base:     i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		Dst:      dst, Src1: src1, Src2: src2, Imm: imm,
		Val1: val1, Val2: val2,
		ResultLo: resLo, ResultHi: resHi, Is64: is64,
	})
	return nil
}

func isLogical(op isa.Opcode) bool {
	switch op {
	case isa.ANDI, isa.ORI, isa.XORI:
		return true
	default:
		return false
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// computeIntegerOp implements every ADD/SUB/MUL/comparison/logical
// variant's semantics, including the 64-bit-result MUL family. Shifts are
// not handled here; execShift computes them.
func computeIntegerOp(op isa.Opcode, a, b uint32) (lo, hi uint32, is64 bool) {
	switch op {
	case isa.ADD, isa.ADDI:
		return a + b, 0, false
	case isa.SUB, isa.SUBI:
		return a - b, 0, false
	case isa.MUL:
		p := int64(int32(a)) * int64(int32(b))
		return uint32(p), uint32(uint64(p) >> 32), true
	case isa.MULI:
		p := int64(int32(a)) * int64(int32(b))
		return uint32(p), uint32(uint64(p) >> 32), true
	case isa.MULU, isa.MULIU:
		p := uint64(a) * uint64(b)
		return uint32(p), uint32(p >> 32), true
	case isa.MULSU, isa.MULISU:
		p := int64(int32(a)) * int64(b)
		return uint32(p), uint32(uint64(p) >> 32), true
	case isa.SLTU, isa.SLTIU:
		return boolToWord(a < b), 0, false
	case isa.SLT, isa.SLTI:
		return boolToWord(int32(a) < int32(b)), 0, false
	case isa.SLEU, isa.SLEIU:
		return boolToWord(a <= b), 0, false
	case isa.SLE, isa.SLEI:
		return boolToWord(int32(a) <= int32(b)), 0, false
	case isa.AND, isa.ANDI:
		return a & b, 0, false
	case isa.OR, isa.ORI:
		return a | b, 0, false
	case isa.XOR, isa.XORI:
		return a ^ b, 0, false
	default:
		panic("computeIntegerOp: unreachable opcode " + op.String())
	}
}
