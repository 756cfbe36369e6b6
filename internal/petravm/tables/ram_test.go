package tables

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/events"
)

func TestRamTableConsistency(t *testing.T) {
	rows := []events.Ram{
		{Width: 1, Value: 0xff, Signed: false},
		{Width: 2, Value: 0xffff, Signed: false},
		{Width: 4, Value: 0xdeadbeef, IsWrite: true},
		{Width: 1, Value: 0xfffffff0, Signed: true}, // sign-extended -16
	}
	table := NewRamTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestRamTableCatchesOversizedByte(t *testing.T) {
	rows := []events.Ram{
		{Width: 1, Value: 0x1ff},
	}
	table := NewRamTable(rows)
	if err := CheckAll(table); err == nil {
		t.Fatal("expected CheckAll to catch a byte value wider than 8 bits")
	}
}

func TestRamTableCatchesSignedStore(t *testing.T) {
	rows := []events.Ram{
		{Width: 1, Value: 0xff, Signed: true, IsWrite: true},
	}
	table := NewRamTable(rows)
	if err := CheckAll(table); err == nil {
		t.Fatal("expected CheckAll to catch a signed store")
	}
}
