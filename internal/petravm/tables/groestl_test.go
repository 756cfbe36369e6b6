package tables

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/gadgets"
)

func TestGroestlTableConsistency(t *testing.T) {
	src1 := make([]uint32, 16)
	src2 := make([]uint32, 16)
	for k := range src1 {
		src1[k] = uint32(k)
		src2[k] = uint32(k * 2)
	}
	result := gadgets.GroestlDigest(src1, src2, 16)
	rows := []events.Groestl{
		{IsCompress: true, Src1: src1, Src2: src2, Result: result},
	}
	table := NewGroestlTable(rows)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestGroestlTableCatchesBadResult(t *testing.T) {
	src1 := make([]uint32, 8)
	src2 := make([]uint32, 8)
	rows := []events.Groestl{
		{Src1: src1, Src2: src2, Result: make([]uint32, 8)},
	}
	table := NewGroestlTable(rows)
	if err := CheckAll(table); err == nil {
		t.Fatal("expected CheckAll to catch an all-zero result not matching the digest")
	}
}
