package tables

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/events"
)

func TestMoveTableConsistency(t *testing.T) {
	rows := []events.Move{
		{Base: events.Base{Arg1: 3}, DstPtrAddr: 10, DstPtrVal: 0x100, DstAddr: 0x100 ^ 3, Value: 99},
		{DstAddr: 42, Value: 7}, // LDI.W: no indirection
	}
	table := NewMoveTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestMoveTableCatchesBadAddress(t *testing.T) {
	rows := []events.Move{
		{Base: events.Base{Arg1: 3}, DstPtrAddr: 10, DstPtrVal: 0x100, DstAddr: 0x200, Value: 99},
	}
	table := NewMoveTable(rows)
	if err := CheckAll(table); err == nil {
		t.Fatal("expected CheckAll to catch a mismatched indirect destination")
	}
}
