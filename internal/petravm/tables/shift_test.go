package tables

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/isa"
)

func TestShiftTableConsistency(t *testing.T) {
	rows := []events.Shift{
		{Base: events.Base{Opcode: isa.SLL}, SrcVal: 1, AmountVal: 4, Result: 16},
		{Base: events.Base{Opcode: isa.SRL}, SrcVal: 0x80000000, AmountVal: 4, Result: 0x08000000},
		{Base: events.Base{Opcode: isa.SRA}, SrcVal: 0x80000000, AmountVal: 4, Result: 0xf8000000, Arithmetic: true},
	}
	table := NewShiftTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestShiftTableCatchesBadRow(t *testing.T) {
	rows := []events.Shift{
		{Base: events.Base{Opcode: isa.SLL}, SrcVal: 1, AmountVal: 4, Result: 1},
	}
	table := NewShiftTable(rows)
	if err := CheckAll(table); err == nil {
		t.Fatal("expected CheckAll to catch a wrong SLL result")
	}
}
