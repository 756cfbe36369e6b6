package tables

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/gadgets"
	"github.com/petraprover/petravm/internal/petravm/isa"
)

// ShiftTable is the constraint table for SLL/SRL/SRA and their
// immediate variants, grounded on arithmetic_shifter.rs/
// barrel_shifter.rs's bit-decomposition network as the identity each
// row must satisfy, via the internal/petravm/gadgets primitives.
type ShiftTable struct {
	base

	Opcode     []isa.Opcode
	Dst, Src   []uint32
	ImmAmount  []bool
	SrcVal     []uint32
	AmountVal  []uint32
	Result     []uint32
	Arithmetic []bool
}

func NewShiftTable(rows []events.Shift) *ShiftTable {
	t := &ShiftTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.Opcode = append(t.Opcode, r.Opcode)
		t.Dst = append(t.Dst, r.Dst)
		t.Src = append(t.Src, r.Src)
		t.ImmAmount = append(t.ImmAmount, r.ImmAmount)
		t.SrcVal = append(t.SrcVal, r.SrcVal)
		t.AmountVal = append(t.AmountVal, r.AmountVal)
		t.Result = append(t.Result, r.Result)
		t.Arithmetic = append(t.Arithmetic, r.Arithmetic)
	}
	return t
}

func (t *ShiftTable) ID() TableID { return ShiftTableID }

func (t *ShiftTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.Opcode = append(t.Opcode, isa.SLL)
			t.Dst, t.Src = append(t.Dst, 0), append(t.Src, 0)
			t.ImmAmount = append(t.ImmAmount, false)
			t.SrcVal, t.AmountVal = append(t.SrcVal, 0), append(t.AmountVal, 0)
			t.Result = append(t.Result, 0)
			t.Arithmetic = append(t.Arithmetic, false)
			return
		}
		t.Opcode = append(t.Opcode, t.Opcode[src])
		t.Dst = append(t.Dst, t.Dst[src])
		t.Src = append(t.Src, t.Src[src])
		t.ImmAmount = append(t.ImmAmount, t.ImmAmount[src])
		t.SrcVal = append(t.SrcVal, t.SrcVal[src])
		t.AmountVal = append(t.AmountVal, t.AmountVal[src])
		t.Result = append(t.Result, t.Result[src])
		t.Arithmetic = append(t.Arithmetic, t.Arithmetic[src])
	})
}

func (t *ShiftTable) ConsistencyConstraints() []Constraint {
	return []Constraint{
		{
			Name: "result matches shift network",
			Check: func(row int) bool {
				switch t.Opcode[row] {
				case isa.SLL, isa.SLLI:
					return gadgets.BarrelShift(t.SrcVal[row], uint16(t.AmountVal[row]), gadgets.ShiftLogicalLeft) == t.Result[row]
				case isa.SRL, isa.SRLI:
					return gadgets.BarrelShift(t.SrcVal[row], uint16(t.AmountVal[row]), gadgets.ShiftLogicalRight) == t.Result[row]
				case isa.SRA, isa.SRAI:
					return gadgets.ArithmeticRightShift(t.SrcVal[row], uint16(t.AmountVal[row])) == t.Result[row]
				default:
					return false
				}
			},
		},
		{
			Name: "amount reduced modulo 32",
			Check: func(row int) bool { return t.AmountVal[row] < 32 },
		},
	}
}

func (t *ShiftTable) TransitionConstraints() []Constraint { return nil }
