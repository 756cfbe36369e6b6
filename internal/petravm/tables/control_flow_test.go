package tables

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
)

func TestBranchTableConsistency(t *testing.T) {
	pc := field.F32(1)
	target := field.F32(7)
	rows := []events.Branch{
		{Base: events.Base{Opcode: isa.BNZ, PC: pc, NextPC: target}, CondVal: 1, Target: target, Taken: true},
		{Base: events.Base{Opcode: isa.BNZ, PC: pc, NextPC: pc.Mul(field.Generator)}, CondVal: 0, Target: target, Taken: false},
		{Base: events.Base{Opcode: isa.BZ, PC: pc, NextPC: target}, CondVal: 0, Target: target, Taken: true},
	}
	table := NewBranchTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestJumpTableConsistency(t *testing.T) {
	target := field.F32(42)
	rows := []events.Jump{
		{Base: events.Base{NextPC: target}, Target: target},
	}
	table := NewJumpTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestCallTableConsistency(t *testing.T) {
	pc := field.F32(3)
	fp := uint32(16)
	rows := []events.Call{
		{
			Base:           events.Base{PC: pc, FP: fp},
			RetSlotValue:   uint32(pc.Mul(field.Generator)),
			OldFPSlotValue: fp,
		},
		{
			Base:   events.Base{PC: pc, FP: fp},
			IsTail: true,
		},
	}
	table := NewCallTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestRetTableConsistency(t *testing.T) {
	retPC := field.F32(5)
	rows := []events.Ret{
		{Base: events.Base{NextPC: retPC, NextFP: 8}, RetPC: retPC, RetFP: 8},
	}
	table := NewRetTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}
