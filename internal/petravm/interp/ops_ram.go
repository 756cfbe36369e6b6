package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// ramWidth returns the access width in bytes for a RAM opcode.
func ramWidth(op isa.Opcode) int {
	switch op {
	case isa.LB, isa.LBU, isa.SB:
		return 1
	case isa.LH, isa.LHU, isa.SH:
		return 2
	default:
		return 4
	}
}

func ramIsStore(op isa.Opcode) bool {
	switch op {
	case isa.SB, isa.SH, isa.SW:
		return true
	default:
		return false
	}
}

func ramIsSigned(op isa.Opcode) bool {
	return op == isa.LB || op == isa.LH
}

func signExtendByte(v uint32) uint32  { return uint32(int32(int8(v))) }
func signExtendHalf(v uint32) uint32  { return uint32(int32(int16(v))) }

// execRam handles LB/LBU/LH/LHU/LW/SB/SH/SW: the effective RAM address is
// a vrom-held pointer plus a 16-bit offset (ordinary wrapping addition,
// not XOR), grounded on original_source/assembly/src/event/ram.rs.
func (i *Interpreter) execRam(op isa.Opcode, rec memory.InstructionRecord) error {
	slot := i.addr(rec.Arg0) // dst for loads, src for stores
	ptr := i.addr(rec.Arg1)
	offset := uint32(rec.Arg2)

	ptrVal, err := i.vrom.ReadWord(ptr)
	if err != nil {
		return err
	}
	ramAddr := ptrVal + offset

	width := ramWidth(op)
	isWrite := ramIsStore(op)
	signed := ramIsSigned(op)

	pc, fp, ts := i.snapshot()

	var value uint32
	if isWrite {
		value, err = i.vrom.ReadWord(slot)
		if err != nil {
			return err
		}
		switch width {
		case 1:
			err = i.ram.WriteByte(ramAddr, value, i.timestamp, i.pc)
		case 2:
			err = i.ram.WriteHalf(ramAddr, value, i.timestamp, i.pc)
		default:
			err = i.ram.WriteWord(ramAddr, value, i.timestamp, i.pc)
		}
		if err != nil {
			return err
		}
	} else {
		switch width {
		case 1:
			value, err = i.ram.ReadByte(ramAddr, i.timestamp, i.pc)
		case 2:
			value, err = i.ram.ReadHalf(ramAddr, i.timestamp, i.pc)
		default:
			value, err = i.ram.ReadWord(ramAddr, i.timestamp, i.pc)
		}
		if err != nil {
			return err
		}
		if signed {
			if width == 1 {
				value = signExtendByte(value)
			} else if width == 2 {
				value = signExtendHalf(value)
			}
		}
		if err := i.writeWord(slot, value); err != nil {
			return err
		}
	}

	nextPC, nextFP := i.commit(op)
	i.trace.AppendRam(events.Ram{
		Base:     i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		VromAddr: slot, RamAddr: ramAddr, Value: value,
		Width: width, IsWrite: isWrite, Signed: signed,
	})
	return nil
}
