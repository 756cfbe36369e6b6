package channel

// Model bundles the canonical channel set enumerated in spec §4.3.
type Model struct {
	State         *Channel
	Prom          *Channel
	Vrom          *Channel
	VromAddrSpace *Channel
	Ram           *Channel // optional: only used when RAM events occurred
}

// NewModel creates the five canonical channels, empty.
func NewModel() *Model {
	return &Model{
		State:         New("state"),
		Prom:          New("prom"),
		Vrom:          New("vrom"),
		VromAddrSpace: New("vrom_addr_space"),
		Ram:           New("ram"),
	}
}

// Validate asserts every channel is balanced, returning one
// *ImbalanceError per unbalanced channel (nil if all are balanced). RAM is
// only checked when it has ever been touched, since it is an optional
// channel (spec §4.3).
func (m *Model) Validate() []*ImbalanceError {
	var errs []*ImbalanceError
	named := []*Channel{m.State, m.Prom, m.Vrom, m.VromAddrSpace}
	if len(m.Ram.counts) > 0 {
		named = append(named, m.Ram)
	}
	for _, c := range named {
		if !c.Balanced() {
			errs = append(errs, &ImbalanceError{Channel: c.Name, Entries: c.Imbalances()})
		}
	}
	return errs
}
