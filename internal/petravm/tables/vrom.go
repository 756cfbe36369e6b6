package tables

import (
	"sort"

	"github.com/petraprover/petravm/internal/petravm/memory"
)

// VromAddrSpaceTable is the memory-plumbing table for VROM's write-once
// address space (spec §2 component H), grounded on the teacher's
// ram_table.go contiguity-argument construction: one row per written
// address, in ascending order, with its value and its read count
// (memory.VROM.ReadCount). The vrom channel balance itself is checked by
// trace.Validate from the events' touches, not from these columns.
type VromAddrSpaceTable struct {
	base

	Addr      []uint32
	Value     []uint32
	ReadCount []uint64
}

func NewVromAddrSpaceTable(v *memory.VROM) *VromAddrSpaceTable {
	addrs := v.WrittenAddrs()
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	t := &VromAddrSpaceTable{base: base{height: len(addrs)}}
	snap := v.Snapshot()
	for _, a := range addrs {
		t.Addr = append(t.Addr, a)
		t.Value = append(t.Value, snap[a])
		t.ReadCount = append(t.ReadCount, v.ReadCount(a))
	}
	return t
}

func (t *VromAddrSpaceTable) ID() TableID { return VromAddrSpaceTableID }

func (t *VromAddrSpaceTable) Pad(target int) error {
	return t.pad(target, func(src int) {
		// A padding row repeats address 0 with a zero read-count: it
		// contributes neither a push nor a pull to the vrom channel.
		t.Addr = append(t.Addr, 0)
		t.Value = append(t.Value, 0)
		t.ReadCount = append(t.ReadCount, 0)
	})
}

func (t *VromAddrSpaceTable) ConsistencyConstraints() []Constraint {
	return []Constraint{}
}

func (t *VromAddrSpaceTable) TransitionConstraints() []Constraint {
	return []Constraint{{
		Name: "addresses are strictly increasing (one row per distinct address)",
		Check: func(row int) bool {
			if row+1 >= t.height {
				return true
			}
			return t.Addr[row] < t.Addr[row+1]
		},
	}}
}
