package memory

import (
	"github.com/petraprover/petravm/internal/petravm/field"
)

// PendingMove describes a value move registered against a VROM address
// that had not yet been written at the time the move was issued — the
// call-procedure protocol's one data-dependent control-flow path (spec
// §4.1, §9). When Addr is finally written, the pending entry is drained
// and the value is forwarded to ParentAddr, recursively.
type PendingMove struct {
	ParentAddr uint32
	PC         field.F32
	FP         uint32
}

// DeferredMove is the event-synthesis record produced when a pending move
// fires: the write that just landed at Addr with Value, issued in the
// context (PC, FP) the move was registered under. The interpreter turns
// these into MVV-shaped event records appended to the trace.
type DeferredMove struct {
	Addr  uint32
	Value uint32
	PC    field.F32
	FP    uint32
}

// VROM is PetraVM's write-once value memory: an address may be written
// any number of times but only with the same value.
type VROM struct {
	values    map[uint32]uint32
	pending   map[uint32][]PendingMove
	reads     map[uint32]uint64
	allocator *Allocator
}

// NewVROM creates an empty VROM with an allocator watermark starting at
// allocBase (addresses below it are reserved for fixed slots such as the
// root frame's return-PC/return-FP pair).
func NewVROM(allocBase uint32) *VROM {
	return &VROM{
		values:    make(map[uint32]uint32),
		pending:   make(map[uint32][]PendingMove),
		reads:     make(map[uint32]uint64),
		allocator: NewAllocator(allocBase),
	}
}

// WriteWord implements the write-once protocol. A write to an address
// already holding the same value succeeds silently; a write with a
// different value fails with VromRewrite. On a genuinely new write, any
// pending moves registered against addr are drained: the value is
// recursively forwarded to each ParentAddr, and the full set of
// newly-synthesized deferred events (including this write, if it itself
// drained a pending entry higher up) is returned for the interpreter to
// turn into events.
func (v *VROM) WriteWord(addr, value uint32) ([]DeferredMove, error) {
	if existing, ok := v.values[addr]; ok {
		if existing != value {
			return nil, &Error{Kind: VromRewrite, Addr: addr, Message: "write-once VROM address written with a conflicting value"}
		}
		return nil, nil
	}
	v.values[addr] = value

	pending := v.pending[addr]
	if len(pending) == 0 {
		return nil, nil
	}
	delete(v.pending, addr)

	var deferred []DeferredMove
	for _, p := range pending {
		deferred = append(deferred, DeferredMove{Addr: p.ParentAddr, Value: value, PC: p.PC, FP: p.FP})
		more, err := v.WriteWord(p.ParentAddr, value)
		if err != nil {
			return nil, err
		}
		deferred = append(deferred, more...)
	}
	return deferred, nil
}

// RegisterPendingMove records that, once addr acquires a value, it should
// be forwarded to parentAddr under the given (pc, fp) context. Used by
// CALL/TAIL argument moves that reference a callee's not-yet-written
// return slot.
func (v *VROM) RegisterPendingMove(addr, parentAddr uint32, pc field.F32, fp uint32) {
	v.pending[addr] = append(v.pending[addr], PendingMove{ParentAddr: parentAddr, PC: pc, FP: fp})
}

// ReadWord returns the stored value at addr, failing with
// VromMissingValue if addr was never written. Every strict read
// increments addr's read-count, which feeds the VROM write table's
// channel-flush multiplicity (spec §4.4).
func (v *VROM) ReadWord(addr uint32) (uint32, error) {
	val, ok := v.values[addr]
	if !ok {
		return 0, &Error{Kind: VromMissingValue, Addr: addr, Message: "read of an address that was never written"}
	}
	v.reads[addr]++
	return val, nil
}

// ReadWordOptional returns (value, true) if addr has been written, or
// (0, false) otherwise. Used only by move-related opcodes mid-call
// procedure, where a miss is expected and registers a pending move rather
// than failing.
func (v *VROM) ReadWordOptional(addr uint32) (uint32, bool) {
	val, ok := v.values[addr]
	if ok {
		v.reads[addr]++
	}
	return val, ok
}

// WriteU64 writes a 64-bit value as two consecutive little-endian words,
// requiring addr to be a multiple of 2.
func (v *VROM) WriteU64(addr uint32, val uint64) ([]DeferredMove, error) {
	if addr%2 != 0 {
		return nil, &Error{Kind: VromMisaligned, Addr: addr, Message: "64-bit VROM write requires 2-word alignment"}
	}
	var deferred []DeferredMove
	for i, word := range [2]uint32{uint32(val), uint32(val >> 32)} {
		d, err := v.WriteWord(addr+uint32(i), word)
		if err != nil {
			return nil, err
		}
		deferred = append(deferred, d...)
	}
	return deferred, nil
}

// WriteU128 writes a 128-bit value as four consecutive little-endian
// words, requiring addr to be a multiple of 4.
func (v *VROM) WriteU128(addr uint32, val field.F128) ([]DeferredMove, error) {
	if addr%4 != 0 {
		return nil, &Error{Kind: VromMisaligned, Addr: addr, Message: "128-bit VROM write requires 4-word alignment"}
	}
	words := val.ToWords()
	var deferred []DeferredMove
	for i, word := range words {
		d, err := v.WriteWord(addr+uint32(i), word)
		if err != nil {
			return nil, err
		}
		deferred = append(deferred, d...)
	}
	return deferred, nil
}

// AllocateFrame returns the base address of an aligned, power-of-two-sized
// VROM block of at least requestedSize words.
func (v *VROM) AllocateFrame(requestedSize uint32) uint32 {
	return v.allocator.Allocate(requestedSize)
}

// IsWritten reports whether addr currently holds a value.
func (v *VROM) IsWritten(addr uint32) bool {
	_, ok := v.values[addr]
	return ok
}

// ReadCount returns how many times addr has been read via ReadWord or a
// successful ReadWordOptional. tables.NewVromAddrSpaceTable records it
// per written address; trace.Validate's vrom push multiplicities come
// from the events' touch counts instead.
func (v *VROM) ReadCount(addr uint32) uint64 { return v.reads[addr] }

// WrittenAddrs returns every address ever written, unordered.
func (v *VROM) WrittenAddrs() []uint32 {
	addrs := make([]uint32, 0, len(v.values))
	for a := range v.values {
		addrs = append(addrs, a)
	}
	return addrs
}

// Snapshot returns a defensive copy of the final (addr -> value) mapping.
func (v *VROM) Snapshot() map[uint32]uint32 {
	out := make(map[uint32]uint32, len(v.values))
	for a, val := range v.values {
		out[a] = val
	}
	return out
}
