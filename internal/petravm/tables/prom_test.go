package tables

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

func TestPromTableConsistency(t *testing.T) {
	pc1 := field.One.Mul(field.Generator)
	pc2 := pc1.Mul(field.Generator)
	records := []memory.InstructionRecord{
		{Opcode: 1, FieldPC: pc1},
		{Opcode: 2, FieldPC: pc2},
	}
	prom := memory.NewPROM(records)
	table := NewPromTable(prom)
	if err := CheckAll(table); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
}

func TestPromTableCatchesNonGeneratorStep(t *testing.T) {
	records := []memory.InstructionRecord{
		{Opcode: 1, FieldPC: field.F32(5)},
		{Opcode: 2, FieldPC: field.F32(6)},
	}
	prom := memory.NewPROM(records)
	table := NewPromTable(prom)
	if err := CheckAll(table); err == nil {
		t.Fatal("expected CheckAll to catch a field pc step that isn't a generator multiply")
	}
}
