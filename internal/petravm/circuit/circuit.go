// Package circuit assembles PetraVM's per-opcode and memory-plumbing
// tables into one registry and checks every table's constraints,
// grounded on the teacher's AlgebraicExecutionTrace
// (internal/vybium-starks-vm/vm/tables.go): a fixed set of named
// tables, each padded independently to its own next power of two, and a
// list of cross-table linkages recording which channel each table's rows
// feed. Unlike the teacher's shared tallest-table height, PROM and the
// vrom address-space table pad to the program's and address window's own
// sizes — a short program doesn't force every per-opcode table up to its
// height, and a long-running program's per-opcode tables don't force
// PROM to pad out past its actual instruction count.
//
// Unlike the teacher, linkage challenges are not modeled here: PetraVM's
// channel balance is additive (field-element sums, not a running
// multiplicative product over a verifier challenge — see DESIGN.md's
// Open Question on this), and that balance is already checked directly
// by internal/petravm/trace.Validate against the touch-accounting model
// in internal/petravm/channel. A Linkage here is purely documentation:
// which channel a table's rows push onto or pull from.
package circuit

import (
	"fmt"

	"github.com/petraprover/petravm/internal/petravm/tables"
	"github.com/petraprover/petravm/internal/petravm/trace"
)

// Channel names the additive multiset each table's rows are checked
// against, mirroring internal/petravm/channel's five channel kinds.
type Channel int

const (
	StateChannel Channel = iota
	VromChannel
	AddrChannel
	PromChannel
	RamChannel
)

func (c Channel) String() string {
	switch c {
	case StateChannel:
		return "state"
	case VromChannel:
		return "vrom"
	case AddrChannel:
		return "addr"
	case PromChannel:
		return "prom"
	case RamChannel:
		return "ram"
	default:
		return "unknown"
	}
}

// Linkage records which channel one table's rows are accounted against.
type Linkage struct {
	Table   tables.TableID
	Channel Channel
}

// Trace is PetraVM's table registry: every per-opcode and
// memory-plumbing table built from one interpreter run's trace.Trace,
// plus the linkages documenting each table's channel.
type Trace struct {
	byID map[tables.TableID]tables.Table

	Linkages []Linkage
}

// Build constructs every table from t and wires the standard linkages.
func Build(t *trace.Trace) *Trace {
	ct := &Trace{byID: make(map[tables.TableID]tables.Table)}

	ct.add(tables.NewIntegerOpTable(t.IntegerOps))
	ct.add(tables.NewShiftTable(t.Shifts))
	ct.add(tables.NewB32Table(t.B32Ops))
	ct.add(tables.NewB128Table(t.B128Ops))
	ct.add(tables.NewBranchTable(t.Branches))
	ct.add(tables.NewJumpTable(t.Jumps))
	ct.add(tables.NewCallTable(t.Calls))
	ct.add(tables.NewRetTable(t.Rets))
	ct.add(tables.NewMoveTable(t.Moves))
	ct.add(tables.NewRamTable(t.Rams))
	ct.add(tables.NewGroestlTable(t.Groestls))
	ct.add(tables.NewMiscTable(t.Miscs))
	ct.add(tables.NewPromTable(t.PROM))
	ct.add(tables.NewVromAddrSpaceTable(t.VROM))

	ct.Linkages = standardLinkages()
	return ct
}

func (ct *Trace) add(tb tables.Table) { ct.byID[tb.ID()] = tb }

// Table retrieves a specific table by ID.
func (ct *Trace) Table(id tables.TableID) (tables.Table, error) {
	tb, ok := ct.byID[id]
	if !ok {
		return nil, fmt.Errorf("circuit: %s table not initialized", id)
	}
	return tb, nil
}

// AllTables returns every table, in TableID order.
func (ct *Trace) AllTables() []tables.Table {
	out := make([]tables.Table, 0, len(ct.byID))
	for id := tables.IntegerOpTableID; id <= tables.VromAddrSpaceTableID; id++ {
		if tb, ok := ct.byID[id]; ok {
			out = append(out, tb)
		}
	}
	return out
}

// PadAll pads every table to its own next power of two: the PROM and
// vrom-address-space tables pad to the program's and address window's
// own sizes respectively, independent of how tall any other table is.
func (ct *Trace) PadAll() error {
	for _, tb := range ct.AllTables() {
		target := nextPow2(tb.Height())
		if err := tb.Pad(target); err != nil {
			return fmt.Errorf("circuit: failed to pad %s table: %w", tb.ID(), err)
		}
	}
	return nil
}

// CheckAll runs every table's own constraint checks (tables.CheckAll)
// over every table in the registry, returning the first violation.
func (ct *Trace) CheckAll() error {
	for _, tb := range ct.AllTables() {
		if err := tables.CheckAll(tb); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the registry is well-formed: every table padded to its
// own next power of two, and every linkage naming a table that exists.
func (ct *Trace) Validate() error {
	for _, tb := range ct.AllTables() {
		want := nextPow2(tb.Height())
		if tb.PaddedHeight() != want {
			return fmt.Errorf("circuit: %s table has padded height %d, want %d",
				tb.ID(), tb.PaddedHeight(), want)
		}
	}
	for _, l := range ct.Linkages {
		if _, err := ct.Table(l.Table); err != nil {
			return fmt.Errorf("circuit: linkage to %s: %w", l.Table, err)
		}
	}
	return nil
}

func standardLinkages() []Linkage {
	return []Linkage{
		{Table: tables.IntegerOpTableID, Channel: StateChannel},
		{Table: tables.ShiftTableID, Channel: StateChannel},
		{Table: tables.B32TableID, Channel: StateChannel},
		{Table: tables.B128TableID, Channel: StateChannel},
		{Table: tables.BranchTableID, Channel: StateChannel},
		{Table: tables.JumpTableID, Channel: StateChannel},
		{Table: tables.CallTableID, Channel: StateChannel},
		{Table: tables.RetTableID, Channel: StateChannel},
		{Table: tables.MoveTableID, Channel: StateChannel},
		{Table: tables.RamTableID, Channel: RamChannel},
		{Table: tables.GroestlTableID, Channel: StateChannel},
		{Table: tables.MiscTableID, Channel: StateChannel},
		{Table: tables.PromTableID, Channel: PromChannel},
		{Table: tables.VromAddrSpaceTableID, Channel: VromChannel},
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

