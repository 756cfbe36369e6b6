package tables

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/isa"
)

func TestIntegerOpTableConsistency(t *testing.T) {
	rows := []events.IntegerOp{
		{Base: events.Base{Opcode: isa.ADD}, Val1: 3, Val2: 4, ResultLo: 7},
		{Base: events.Base{Opcode: isa.SUB}, Val1: 10, Val2: 4, ResultLo: 6},
		{Base: events.Base{Opcode: isa.MULU}, Val1: 3, Val2: 5, ResultLo: 15, ResultHi: 0, Is64: true},
		{Base: events.Base{Opcode: isa.SLTU}, Val1: 1, Val2: 2, ResultLo: 1},
		{Base: events.Base{Opcode: isa.XOR}, Val1: 0xff00, Val2: 0x0ff0, ResultLo: 0xf0f0},
	}
	table := NewIntegerOpTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestIntegerOpTableCatchesBadRow(t *testing.T) {
	rows := []events.IntegerOp{
		{Base: events.Base{Opcode: isa.ADD}, Val1: 3, Val2: 4, ResultLo: 8},
	}
	table := NewIntegerOpTable(rows)
	if err := CheckAll(table); err == nil {
		t.Fatal("expected CheckAll to catch a wrong ADD result")
	}
}

func TestIntegerOpTablePad(t *testing.T) {
	rows := []events.IntegerOp{
		{Base: events.Base{Opcode: isa.ADD}, Val1: 1, Val2: 1, ResultLo: 2},
	}
	table := NewIntegerOpTable(rows)
	if err := table.Pad(4); err != nil {
		t.Fatalf("Pad: %v", err)
	}
	if table.PaddedHeight() != 4 {
		t.Fatalf("PaddedHeight() = %d, want 4", table.PaddedHeight())
	}
	if len(table.Opcode) != 4 {
		t.Fatalf("len(Opcode) = %d, want 4", len(table.Opcode))
	}
}
