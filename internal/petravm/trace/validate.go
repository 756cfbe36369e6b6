package trace

import (
	"github.com/petraprover/petravm/internal/petravm/channel"
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
)

// Validate reconstructs the canonical channels, fires every event (order
// does not matter — the multiset semantics is order-independent, spec
// §4.3/§5), applies the boundary conditions, and asserts every channel is
// balanced. This is a debugging pre-check: the proof itself is the
// cryptographic version of the same assertion (spec §4.5).
func (t *Trace) Validate(b Boundary) []*channel.ImbalanceError {
	m := channel.NewModel()

	// Boundary: verifier pushes the initial state once.
	m.State.Push(channel.StateKey(field.One, 0))
	// Boundary: verifier pulls the final state once.
	m.State.Pull(channel.StateKey(field.F32(b.FinalPC), b.FinalFP))

	// Boundary: PROM pushed once per record.
	for _, rec := range t.PROM.Records() {
		m.Prom.Push(channel.PromKey(rec.Opcode, rec.Arg0, rec.Arg1, rec.Arg2, rec.FieldPC))
	}

	// Boundary: VROM address space pushed once per address in the window.
	window := vromWindow(t)
	for addr := uint32(0); addr < window; addr++ {
		m.VromAddrSpace.Push(channel.AddrKey(addr))
	}

	// Write/skip split: every address in the window is pulled from the
	// address space exactly once, by either the write table or the skip
	// table; only written addresses push onto vrom, with multiplicity
	// equal to the number of times any event touched them.
	touchCounts := tallyTouches(t)
	for addr := uint32(0); addr < window; addr++ {
		m.VromAddrSpace.Pull(channel.AddrKey(addr))
	}
	for key, n := range touchCounts {
		for i := int64(0); i < n.count; i++ {
			m.Vrom.Push(channel.VromKey(n.addr, n.value))
		}
		_ = key
	}

	for _, e := range t.All {
		fireEvent(m, e)
	}
	for _, rc := range t.RAM.Log() {
		m.Ram.Push(channel.RamKey(rc.Addr, rc.Value, rc.Timestamp, rc.PC, rc.IsWrite))
		m.Ram.Pull(channel.RamKey(rc.Addr, rc.Value, rc.Timestamp, rc.PC, rc.IsWrite))
	}

	return m.Validate()
}

type touchAccum struct {
	addr, value uint32
	count       int64
}

// tallyTouches sums every event's VROM touches by (addr,value) key.
func tallyTouches(t *Trace) map[string]touchAccum {
	out := make(map[string]touchAccum)
	add := func(touches []events.VromTouch) {
		for _, tt := range touches {
			k := channel.VromKey(tt.Addr, tt.Value)
			a := out[k]
			a.addr, a.value = tt.Addr, tt.Value
			a.count++
			out[k] = a
		}
	}
	for _, e := range t.IntegerOps {
		add(e.Touches())
	}
	for _, e := range t.Shifts {
		add(e.Touches())
	}
	for _, e := range t.B32Ops {
		add(e.Touches())
	}
	for _, e := range t.B128Ops {
		add(e.Touches())
	}
	for _, e := range t.Branches {
		add(e.Touches())
	}
	for _, e := range t.Jumps {
		add(e.Touches())
	}
	for _, e := range t.Calls {
		add(e.Touches())
	}
	for _, e := range t.Rets {
		add(e.Touches())
	}
	for _, e := range t.Moves {
		add(e.Touches())
	}
	for _, e := range t.DeferredMoves {
		add(e.Touches())
	}
	for _, e := range t.Rams {
		add(e.Touches())
	}
	for _, e := range t.Groestls {
		add(e.Touches())
	}
	for _, e := range t.Miscs {
		add(e.Touches())
	}
	return out
}

// vromWindow returns the next power of two above the highest address
// touched by any write.
func vromWindow(t *Trace) uint32 {
	var max uint32
	for _, addr := range t.VROM.WrittenAddrs() {
		if addr+1 > max {
			max = addr + 1
		}
	}
	window := uint32(1)
	for window < max {
		window *= 2
	}
	if window == 0 {
		window = 1
	}
	return window
}

// fireEvent issues the state/prom/vrom flushes for one event, generically
// across every family via the Event interface's Base() and a family type
// switch for the vrom touches (spec §4.3's "illustrative" ADD flush,
// generalized to every opcode).
func fireEvent(m *channel.Model, e events.Event) {
	b := e.Base()
	m.State.Pull(channel.StateKey(b.PC, b.FP))
	m.State.Push(channel.StateKey(b.NextPC, b.NextFP))
	if !b.Opcode.IsProverOnly() {
		m.Prom.Pull(channel.PromKey(uint16(b.Opcode), b.Arg0, b.Arg1, b.Arg2, b.PC))
	}

	var touches []events.VromTouch
	switch ev := e.(type) {
	case events.IntegerOp:
		touches = ev.Touches()
	case events.Shift:
		touches = ev.Touches()
	case events.B32Op:
		touches = ev.Touches()
	case events.B128Op:
		touches = ev.Touches()
	case events.Branch:
		touches = ev.Touches()
	case events.Jump:
		touches = ev.Touches()
	case events.Call:
		touches = ev.Touches()
	case events.Ret:
		touches = ev.Touches()
	case events.Move:
		touches = ev.Touches()
	case events.DeferredMove:
		touches = ev.Touches()
	case events.Ram:
		touches = ev.Touches()
	case events.Groestl:
		touches = ev.Touches()
	case events.Misc:
		touches = ev.Touches()
	}
	for _, t := range touches {
		m.Vrom.Pull(channel.VromKey(t.Addr, t.Value))
	}
}
