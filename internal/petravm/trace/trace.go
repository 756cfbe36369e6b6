// Package trace implements the trace aggregator (spec §4.5): it owns
// every per-opcode event vector plus the final memory snapshot, and
// drives the channel-balance pre-check.
package trace

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// Trace is the run artifact: every event vector, in execution order both
// globally and per opcode family, plus the final memory snapshot.
type Trace struct {
	PROM *memory.PROM
	VROM *memory.VROM
	RAM  *memory.RAM

	IntegerOps    []events.IntegerOp
	Shifts        []events.Shift
	B32Ops        []events.B32Op
	B128Ops       []events.B128Op
	Branches      []events.Branch
	Jumps         []events.Jump
	Calls         []events.Call
	Rets          []events.Ret
	Moves         []events.Move
	DeferredMoves []events.DeferredMove
	Rams          []events.Ram
	Groestls      []events.Groestl
	Miscs         []events.Misc

	// All holds every event in execution order, the authoritative record
	// of the run (spec §3).
	All []events.Event

	// PCCounter is the per-integer-PC execution counter (spec §4.2 step
	// 4), keyed by integer PC.
	PCCounter map[uint32]uint64
}

// New creates an empty trace over the given memory spaces.
func New(prom *memory.PROM, vrom *memory.VROM, ram *memory.RAM) *Trace {
	return &Trace{
		PROM:      prom,
		VROM:      vrom,
		RAM:       ram,
		PCCounter: make(map[uint32]uint64),
	}
}

// Boundary bundles the final machine state the verifier checks against
// (spec §4.5, §6).
type Boundary struct {
	FinalPC        uint32 // field.F32 encoded as uint32
	FinalFP        uint32
	FinalTimestamp uint32
}

func (t *Trace) append(e events.Event) { t.All = append(t.All, e) }

// AppendIntegerOp appends an ADD/SUB/MUL-family event.
func (t *Trace) AppendIntegerOp(e events.IntegerOp) {
	t.IntegerOps = append(t.IntegerOps, e)
	t.append(e)
}

// AppendShift appends a shift-family event.
func (t *Trace) AppendShift(e events.Shift) {
	t.Shifts = append(t.Shifts, e)
	t.append(e)
}

// AppendB32Op appends a B32_MUL/B32_MULI event.
func (t *Trace) AppendB32Op(e events.B32Op) {
	t.B32Ops = append(t.B32Ops, e)
	t.append(e)
}

// AppendB128Op appends a B128_ADD/B128_MUL event.
func (t *Trace) AppendB128Op(e events.B128Op) {
	t.B128Ops = append(t.B128Ops, e)
	t.append(e)
}

// AppendBranch appends a BNZ/BZ event.
func (t *Trace) AppendBranch(e events.Branch) {
	t.Branches = append(t.Branches, e)
	t.append(e)
}

// AppendJump appends a JUMPI/JUMPV event.
func (t *Trace) AppendJump(e events.Jump) {
	t.Jumps = append(t.Jumps, e)
	t.append(e)
}

// AppendCall appends a CALLI/CALLV/TAILI/TAILV event.
func (t *Trace) AppendCall(e events.Call) {
	t.Calls = append(t.Calls, e)
	t.append(e)
}

// AppendRet appends a RET event.
func (t *Trace) AppendRet(e events.Ret) {
	t.Rets = append(t.Rets, e)
	t.append(e)
}

// AppendMove appends an MVV.W/MVV.L/MVI.H/LDI.W event.
func (t *Trace) AppendMove(e events.Move) {
	t.Moves = append(t.Moves, e)
	t.append(e)
}

// AppendDeferredMove appends a synthesized call-procedure deferred move.
func (t *Trace) AppendDeferredMove(e events.DeferredMove) {
	t.DeferredMoves = append(t.DeferredMoves, e)
	t.append(e)
}

// AppendRam appends a LB/LBU/LH/LHU/LW/SB/SH/SW event.
func (t *Trace) AppendRam(e events.Ram) {
	t.Rams = append(t.Rams, e)
	t.append(e)
}

// AppendGroestl appends a Groestl compression/output-transform event.
func (t *Trace) AppendGroestl(e events.Groestl) {
	t.Groestls = append(t.Groestls, e)
	t.append(e)
}

// AppendMisc appends an FP/ALLOCI/ALLOCV event.
func (t *Trace) AppendMisc(e events.Misc) {
	t.Miscs = append(t.Miscs, e)
	t.append(e)
}

// IncrementPCCounter bumps the execution counter for the given integer PC.
func (t *Trace) IncrementPCCounter(integerPC uint32) {
	t.PCCounter[integerPC]++
}

// TotalNonProverOnlyEvents sums every per-opcode vector except Miscs
// events flagged ProverOnly, for the event/counter consistency check
// (spec §8).
func (t *Trace) TotalNonProverOnlyEvents() int {
	total := len(t.IntegerOps) + len(t.Shifts) + len(t.B32Ops) + len(t.B128Ops) +
		len(t.Branches) + len(t.Jumps) + len(t.Calls) + len(t.Rets) +
		len(t.Moves) + len(t.DeferredMoves) + len(t.Rams) + len(t.Groestls)
	for _, m := range t.Miscs {
		if !m.ProverOnly {
			total++
		}
	}
	return total
}

// TotalPCCounter sums the per-PC execution counter.
func (t *Trace) TotalPCCounter() uint64 {
	var total uint64
	for _, v := range t.PCCounter {
		total += v
	}
	return total
}
