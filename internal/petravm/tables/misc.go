package tables

import (
	"github.com/petraprover/petravm/internal/petravm/events"
)

// MiscTable is the constraint table for FP and the prover-only
// allocator hints ALLOCI/ALLOCV, grounded on the interpreter's
// commitProverOnly (interp/helpers.go) (a prover-only row advances neither PC nor FP; see
// DESIGN.md's entry on the state-channel push/pull cancelling out).
type MiscTable struct {
	base

	ProverOnly []bool
	PC, NextPC []uint32
	FP, NextFP []uint32
}

func NewMiscTable(rows []events.Misc) *MiscTable {
	t := &MiscTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.ProverOnly = append(t.ProverOnly, r.ProverOnly)
		t.PC = append(t.PC, uint32(r.PC))
		t.NextPC = append(t.NextPC, uint32(r.NextPC))
		t.FP = append(t.FP, r.FP)
		t.NextFP = append(t.NextFP, r.NextFP)
	}
	return t
}

func (t *MiscTable) ID() TableID { return MiscTableID }

func (t *MiscTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.ProverOnly = append(t.ProverOnly, true)
			t.PC, t.NextPC = append(t.PC, 0), append(t.NextPC, 0)
			t.FP, t.NextFP = append(t.FP, 0), append(t.NextFP, 0)
			return
		}
		t.ProverOnly = append(t.ProverOnly, t.ProverOnly[src])
		t.PC = append(t.PC, t.PC[src])
		t.NextPC = append(t.NextPC, t.NextPC[src])
		t.FP = append(t.FP, t.FP[src])
		t.NextFP = append(t.NextFP, t.NextFP[src])
	})
}

func (t *MiscTable) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "prover-only rows do not advance pc or fp",
		Check: func(row int) bool {
			if !t.ProverOnly[row] {
				return true
			}
			return t.PC[row] == t.NextPC[row] && t.FP[row] == t.NextFP[row]
		},
	}}
}

func (t *MiscTable) TransitionConstraints() []Constraint { return nil }
