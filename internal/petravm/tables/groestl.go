package tables

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/gadgets"
)

// GroestlTable is the constraint table for GROESTL_COMPRESS/
// GROESTL_OUTPUT, reusing gadgets.GroestlDigest as the same identity
// the interpreter's execGroestl checks its result against (see
// DESIGN.md's sha3 stand-in entry).
type GroestlTable struct {
	base

	IsCompress []bool
	Src1, Src2 [][]uint32
	Result     [][]uint32
}

func NewGroestlTable(rows []events.Groestl) *GroestlTable {
	t := &GroestlTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.IsCompress = append(t.IsCompress, r.IsCompress)
		t.Src1 = append(t.Src1, r.Src1)
		t.Src2 = append(t.Src2, r.Src2)
		t.Result = append(t.Result, r.Result)
	}
	return t
}

func (t *GroestlTable) ID() TableID { return GroestlTableID }

func (t *GroestlTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.IsCompress = append(t.IsCompress, false)
			t.Src1, t.Src2 = append(t.Src1, nil), append(t.Src2, nil)
			t.Result = append(t.Result, nil)
			return
		}
		t.IsCompress = append(t.IsCompress, t.IsCompress[src])
		t.Src1 = append(t.Src1, t.Src1[src])
		t.Src2 = append(t.Src2, t.Src2[src])
		t.Result = append(t.Result, t.Result[src])
	})
}

func (t *GroestlTable) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "result equals the shared digest derivation",
		Check: func(row int) bool {
			want := gadgets.GroestlDigest(t.Src1[row], t.Src2[row], len(t.Result[row]))
			got := t.Result[row]
			if len(want) != len(got) {
				return false
			}
			for k := range want {
				if want[k] != got[k] {
					return false
				}
			}
			return true
		},
	}}
}

func (t *GroestlTable) TransitionConstraints() []Constraint { return nil }
