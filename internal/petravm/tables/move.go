package tables

import (
	"github.com/petraprover/petravm/internal/petravm/events"
)

// MoveTable is the constraint table for MVV.W/MVV.L/MVI.H/LDI.W,
// grounded on the pointer-indirection write address computation
// (events.Move's DstPtrAddr/DstPtrVal/DstAddr, see DESIGN.md's entry on
// argument moves carried on the instruction record). A deferred move
// has no resolved Value yet at the point the row is recorded, so its
// value identity is instead checked once the pending update drains
// (events.DeferredMove); this table only checks the address computation.
type MoveTable struct {
	base

	Is128      []bool
	Deferred   []bool
	DstPtrAddr []uint32
	DstPtrVal  []uint32
	DstAddr    []uint32
	Offset     []uint32 // raw arg1, the offset XORed against DstPtrVal; unused for LDI.W
}

func NewMoveTable(rows []events.Move) *MoveTable {
	t := &MoveTable{base: base{height: len(rows)}}
	for _, r := range rows {
		t.Is128 = append(t.Is128, r.Is128)
		t.Deferred = append(t.Deferred, r.Deferred)
		t.DstPtrAddr = append(t.DstPtrAddr, r.DstPtrAddr)
		t.DstPtrVal = append(t.DstPtrVal, r.DstPtrVal)
		t.DstAddr = append(t.DstAddr, r.DstAddr)
		t.Offset = append(t.Offset, uint32(r.Arg1))
	}
	return t
}

func (t *MoveTable) ID() TableID { return MoveTableID }

func (t *MoveTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		if src < 0 {
			t.Is128, t.Deferred = append(t.Is128, false), append(t.Deferred, false)
			t.DstPtrAddr, t.DstPtrVal = append(t.DstPtrAddr, 0), append(t.DstPtrVal, 0)
			t.DstAddr, t.Offset = append(t.DstAddr, 0), append(t.Offset, 0)
			return
		}
		t.Is128 = append(t.Is128, t.Is128[src])
		t.Deferred = append(t.Deferred, t.Deferred[src])
		t.DstPtrAddr = append(t.DstPtrAddr, t.DstPtrAddr[src])
		t.DstPtrVal = append(t.DstPtrVal, t.DstPtrVal[src])
		t.DstAddr = append(t.DstAddr, t.DstAddr[src])
		t.Offset = append(t.Offset, t.Offset[src])
	})
}

func (t *MoveTable) ConsistencyConstraints() []Constraint {
	return []Constraint{{
		Name: "indirect destination resolves through the pointer slot",
		Check: func(row int) bool {
			if t.DstPtrAddr[row] == 0 {
				return true // LDI.W writes directly, no indirection
			}
			return t.DstAddr[row] == t.DstPtrVal[row]^t.Offset[row]
		},
	}}
}

func (t *MoveTable) TransitionConstraints() []Constraint { return nil }
