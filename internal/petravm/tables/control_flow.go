package tables

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
)

// BranchTable is the constraint table for BNZ/BZ.
type BranchTable struct {
	base

	Opcode     []isa.Opcode
	CondVal    []uint32
	Taken      []bool
	PC, Target []field.F32
	NextPC     []field.F32
}

func NewBranchTable(rows []events.Branch) *BranchTable {
	t := &BranchTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.Opcode = append(t.Opcode, r.Opcode)
		t.CondVal = append(t.CondVal, r.CondVal)
		t.Taken = append(t.Taken, r.Taken)
		t.PC = append(t.PC, r.PC)
		t.Target = append(t.Target, r.Target)
		t.NextPC = append(t.NextPC, r.NextPC)
	}
	return t
}

func (t *BranchTable) ID() TableID { return BranchTableID }

func (t *BranchTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.Opcode = append(t.Opcode, isa.BZ)
			t.CondVal = append(t.CondVal, 0)
			t.Taken = append(t.Taken, true)
			t.PC = append(t.PC, field.Zero)
			t.Target = append(t.Target, field.Zero)
			t.NextPC = append(t.NextPC, field.Zero)
			return
		}
		t.Opcode = append(t.Opcode, t.Opcode[src])
		t.CondVal = append(t.CondVal, t.CondVal[src])
		t.Taken = append(t.Taken, t.Taken[src])
		t.PC = append(t.PC, t.PC[src])
		t.Target = append(t.Target, t.Target[src])
		t.NextPC = append(t.NextPC, t.NextPC[src])
	})
}

func (t *BranchTable) ConsistencyConstraints() []Constraint {
	return []Constraint{
		{
			Name: "polarity matches opcode",
			Check: func(row int) bool {
				want := (t.Opcode[row] == isa.BNZ && t.CondVal[row] != 0) ||
					(t.Opcode[row] == isa.BZ && t.CondVal[row] == 0)
				return want == t.Taken[row]
			},
		},
		{
			Name: "next pc follows taken flag",
			Check: func(row int) bool {
				if t.Taken[row] {
					return t.NextPC[row] == t.Target[row]
				}
				return t.NextPC[row] == t.PC[row].Mul(field.Generator)
			},
		},
	}
}

func (t *BranchTable) TransitionConstraints() []Constraint { return nil }

// JumpTable is the constraint table for JUMPI/JUMPV.
type JumpTable struct {
	base

	Target, NextPC []field.F32
}

func NewJumpTable(rows []events.Jump) *JumpTable {
	t := &JumpTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.Target = append(t.Target, r.Target)
		t.NextPC = append(t.NextPC, r.NextPC)
	}
	return t
}

func (t *JumpTable) ID() TableID { return JumpTableID }

func (t *JumpTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.Target = append(t.Target, field.Zero)
			t.NextPC = append(t.NextPC, field.Zero)
			return
		}
		t.Target = append(t.Target, t.Target[src])
		t.NextPC = append(t.NextPC, t.NextPC[src])
	})
}

func (t *JumpTable) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "next pc equals target",
		Check: func(row int) bool { return t.NextPC[row] == t.Target[row] },
	}}
}

func (t *JumpTable) TransitionConstraints() []Constraint { return nil }

// CallTable is the constraint table for CALLI/CALLV/TAILI/TAILV,
// grounded on the CALL-vs-TAIL return-context asymmetry (see
// DESIGN.md): a CALL writes a fresh return context (next field PC,
// caller's FP) into the new frame; a TAIL instead forwards its own
// frame's return context, since a tail call never returns to its own
// caller. The forwarded-context identity for TAIL is checked against
// the vrom touches directly (events.Call.Touches reads the caller's own
// slot 0/1), not reconstructible from this table's columns alone, so
// this table only checks the CALL case.
type CallTable struct {
	base

	IsTail       []bool
	PC, NextPC   []field.F32
	FP           []uint32
	NewFP        []uint32
	RetSlotValue []uint32
	OldFPValue   []uint32
}

func NewCallTable(rows []events.Call) *CallTable {
	t := &CallTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.IsTail = append(t.IsTail, r.IsTail)
		t.PC = append(t.PC, r.PC)
		t.NextPC = append(t.NextPC, r.NextPC)
		t.FP = append(t.FP, r.FP)
		t.NewFP = append(t.NewFP, r.NewFP)
		t.RetSlotValue = append(t.RetSlotValue, r.RetSlotValue)
		t.OldFPValue = append(t.OldFPValue, r.OldFPSlotValue)
	}
	return t
}

func (t *CallTable) ID() TableID { return CallTableID }

func (t *CallTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.IsTail = append(t.IsTail, true) // skips the CALL-only identity
			t.PC, t.NextPC = append(t.PC, field.Zero), append(t.NextPC, field.Zero)
			t.FP, t.NewFP = append(t.FP, 0), append(t.NewFP, 0)
			t.RetSlotValue, t.OldFPValue = append(t.RetSlotValue, 0), append(t.OldFPValue, 0)
			return
		}
		t.IsTail = append(t.IsTail, t.IsTail[src])
		t.PC = append(t.PC, t.PC[src])
		t.NextPC = append(t.NextPC, t.NextPC[src])
		t.FP = append(t.FP, t.FP[src])
		t.NewFP = append(t.NewFP, t.NewFP[src])
		t.RetSlotValue = append(t.RetSlotValue, t.RetSlotValue[src])
		t.OldFPValue = append(t.OldFPValue, t.OldFPValue[src])
	})
}

func (t *CallTable) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "CALL writes a fresh return context into the new frame",
		Check: func(row int) bool {
			if t.IsTail[row] {
				return true
			}
			return t.RetSlotValue[row] == uint32(t.PC[row].Mul(field.Generator)) &&
				t.OldFPValue[row] == t.FP[row]
		},
	}}
}

func (t *CallTable) TransitionConstraints() []Constraint { return nil }

// RetTable is the constraint table for RET.
type RetTable struct {
	base

	RetPC  []field.F32
	RetFP  []uint32
	NextPC []field.F32
	NextFP []uint32
}

func NewRetTable(rows []events.Ret) *RetTable {
	t := &RetTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.RetPC = append(t.RetPC, r.RetPC)
		t.RetFP = append(t.RetFP, r.RetFP)
		t.NextPC = append(t.NextPC, r.NextPC)
		t.NextFP = append(t.NextFP, r.NextFP)
	}
	return t
}

func (t *RetTable) ID() TableID { return RetTableID }

func (t *RetTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.RetPC, t.NextPC = append(t.RetPC, field.Zero), append(t.NextPC, field.Zero)
			t.RetFP, t.NextFP = append(t.RetFP, 0), append(t.NextFP, 0)
			return
		}
		t.RetPC = append(t.RetPC, t.RetPC[src])
		t.RetFP = append(t.RetFP, t.RetFP[src])
		t.NextPC = append(t.NextPC, t.NextPC[src])
		t.NextFP = append(t.NextFP, t.NextFP[src])
	})
}

func (t *RetTable) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "next state equals stored return context",
		Check: func(row int) bool {
			return t.NextPC[row] == t.RetPC[row] && t.NextFP[row] == t.RetFP[row]
		},
	}}
}

func (t *RetTable) TransitionConstraints() []Constraint { return nil }
