package tables

import (
	"github.com/petraprover/petravm/internal/petravm/events"
)

// RamTable is the constraint table for LB/LBU/LH/LHU/LW/SB/SH/SW,
// grounded on ops_ram.go's width/sign-extension handling and the
// teacher's ram_table.go for the table shape (one row per RAM access).
// The wrapping byte-address arithmetic itself is native uint32
// addition, not XOR, per DESIGN.md's RAM-addressing grounding note.
type RamTable struct {
	base

	RamAddr []uint32
	Value   []uint32
	Width   []int
	IsWrite []bool
	Signed  []bool
}

func NewRamTable(rows []events.Ram) *RamTable {
	t := &RamTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.RamAddr = append(t.RamAddr, r.RamAddr)
		t.Value = append(t.Value, r.Value)
		t.Width = append(t.Width, r.Width)
		t.IsWrite = append(t.IsWrite, r.IsWrite)
		t.Signed = append(t.Signed, r.Signed)
	}
	return t
}

func (t *RamTable) ID() TableID { return RamTableID }

func (t *RamTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.RamAddr, t.Value = append(t.RamAddr, 0), append(t.Value, 0)
			t.Width = append(t.Width, 4)
			t.IsWrite, t.Signed = append(t.IsWrite, false), append(t.Signed, false)
			return
		}
		t.RamAddr = append(t.RamAddr, t.RamAddr[src])
		t.Value = append(t.Value, t.Value[src])
		t.Width = append(t.Width, t.Width[src])
		t.IsWrite = append(t.IsWrite, t.IsWrite[src])
		t.Signed = append(t.Signed, t.Signed[src])
	})
}

func (t *RamTable) ConsistencyConstraints() []Constraint {
	return []Constraint{
		{
			Name: "width is one of byte/half/word",
			Check: func(row int) bool {
				w := t.Width[row]
				return w == 1 || w == 2 || w == 4
			},
		},
		{
			Name: "unsigned narrow accesses fit within their declared width",
			Check: func(row int) bool {
				if t.Signed[row] {
					return true // sign-extended to 32 bits by design
				}
				switch t.Width[row] {
				case 1:
					return t.Value[row] <= 0xff
				case 2:
					return t.Value[row] <= 0xffff
				default:
					return true
				}
			},
		},
		{
			Name: "signedness only applies to loads narrower than a word",
			Check: func(row int) bool {
				if !t.Signed[row] {
					return true
				}
				return !t.IsWrite[row] && t.Width[row] < 4
			},
		},
	}
}

func (t *RamTable) TransitionConstraints() []Constraint { return nil }
