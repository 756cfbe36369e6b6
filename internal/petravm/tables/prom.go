package tables

import (
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// PromTable is the memory-plumbing table for the program image (spec §2
// component H), grounded on the teacher's program_table.go: one row per
// PROM slot. On the prom channel, keyed on (opcode, arg0, arg1, arg2,
// fieldPC), trace.Validate pushes each PROM record once as a boundary
// and each executed non-prover-only instruction pulls its own record.
type PromTable struct {
	base

	FieldPC            []field.F32
	Opcode             []uint16
	Arg0, Arg1, Arg2   []uint16
	ProverOnly         []bool
}

func NewPromTable(p *memory.PROM) *PromTable {
	records := p.Records()
	t := &PromTable{base: base{height: len(records)}}
	for _, r := range records {
		t.FieldPC = append(t.FieldPC, r.FieldPC)
		t.Opcode = append(t.Opcode, r.Opcode)
		t.Arg0 = append(t.Arg0, r.Arg0)
		t.Arg1 = append(t.Arg1, r.Arg1)
		t.Arg2 = append(t.Arg2, r.Arg2)
		t.ProverOnly = append(t.ProverOnly, r.ProverOnly)
	}
	return t
}

func (t *PromTable) ID() TableID { return PromTableID }

// Pad extends the table with isa.NOP rows, each one's field PC advancing
// by the generator from the previous row (real or padding), matching the
// advance-by-generator transition constraint below. NOP is valid and
// prover-only by construction, so a padded table still satisfies
// isa.Image.Validate() if its rows were ever re-wrapped into an Image.
func (t *PromTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		lastPC := field.One
		if n := len(t.FieldPC); n > 0 {
			lastPC = t.FieldPC[n-1]
		}
		t.FieldPC = append(t.FieldPC, lastPC.Mul(field.Generator))
		t.Opcode = append(t.Opcode, uint16(isa.NOP))
		t.Arg0 = append(t.Arg0, 0)
		t.Arg1 = append(t.Arg1, 0)
		t.Arg2 = append(t.Arg2, 0)
		t.ProverOnly = append(t.ProverOnly, true)
	})
}

func (t *PromTable) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "field pc is never the reserved halted value",
		Check: func(row int) bool { return !t.FieldPC[row].IsZero() },
	}}
}

func (t *PromTable) TransitionConstraints() []Constraint {
	return []Constraint{{
		Name: "field pc advances by the generator between consecutive slots",
		Check: func(row int) bool {
			if row+1 >= t.height {
				return true
			}
			return t.FieldPC[row+1] == t.FieldPC[row].Mul(field.Generator)
		},
	}}
}
