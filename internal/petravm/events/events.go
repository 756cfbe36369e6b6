// Package events defines PetraVM's per-instruction event records: plain
// data structs capturing the full before/after context the interpreter
// observed around one executed instruction (spec §3). Event kinds are
// grouped by opcode family — the same grouping the original
// implementation uses (assembly/src/event/{integer_ops,shift,b128,
// binary_ops/b32,branch,jump,call,mv,ram,groestl}.rs) — rather than one
// struct per individual opcode, and dispatched as a tagged sum rather
// than through a collection of trait objects (spec §9).
package events

import "github.com/petraprover/petravm/internal/petravm/isa"
import "github.com/petraprover/petravm/internal/petravm/field"

// Base is the context every event carries regardless of family,
// including the raw instruction fields needed to reproduce the PROM
// channel's packed-record pull (spec §4.3).
type Base struct {
	Opcode           isa.Opcode
	Arg0, Arg1, Arg2 uint16
	PC               field.F32
	FP               uint32
	Ts               uint32
	NextPC           field.F32
	NextFP           uint32 // equals FP except across CALL/TAIL/RET
}

// Event is implemented by every concrete per-family event type.
type Event interface {
	Base() Base
}

func (b Base) Base() Base { return b }

// IntegerOp covers ADD/SUB/MUL(U/SU)/comparisons/AND/OR/XOR and their
// immediate variants: all of them read one or two operands and a
// destination address, and write one (or for MUL, two) result words.
type IntegerOp struct {
	Base
	Dst, Src1, Src2 uint32 // resolved vrom addresses (fp xor raw arg), Src2 unused when Imm
	Imm             bool   // Src2 is an immediate literal, not a vrom address
	Val1, Val2      uint32 // resolved operand values
	ResultLo        uint32
	ResultHi        uint32 // only meaningful for MUL/MULU/MULSU
	Is64            bool
}

// Shift covers SLL/SRL/SRA and their immediate variants.
type Shift struct {
	Base
	Dst, Src, Amount uint32 // Amount is a resolved vrom address unless ImmAmount
	ImmAmount        bool
	SrcVal           uint32
	AmountVal        uint32 // already reduced modulo 32
	Result           uint32
	Arithmetic       bool
	SignBit          uint32 // 0 or 1, only meaningful when Arithmetic
}

// B32Op covers B32_MUL and B32_MULI.
type B32Op struct {
	Base
	Dst, Src1, Src2 uint32 // resolved vrom addresses; Src2 unused when IsImm
	Imm32           uint32
	IsImm           bool
	Val1, Val2      field.F32 // Val2 unused when IsImm (Imm32 is used instead)
	Result          field.F32
}

// B128Op covers B128_ADD and B128_MUL.
type B128Op struct {
	Base
	Dst, Src1, Src2 uint32 // resolved vrom addresses (4-word aligned)
	Val1, Val2      field.F128
	Result          field.F128
}

// Branch covers BNZ/BZ.
type Branch struct {
	Base
	CondAddr uint32 // resolved vrom address
	CondVal  uint32
	Target   field.F32
	Taken    bool
}

// Jump covers JUMPI/JUMPV.
type Jump struct {
	Base
	Target     field.F32
	TargetAddr uint32 // resolved vrom address holding the target, only meaningful for JUMPV
	FromVrom   bool
}

// MoveArg describes one argument move performed while setting up a new
// call frame: a value copied (or deferred) from the caller's frame to
// slot Dst of the callee's frame (spec §4.1's call-procedure protocol,
// grounded on original_source's handles_call_moves).
type MoveArg struct {
	Dst      uint32
	SrcAddr  uint32
	Value    uint32 // meaningful only when !Deferred
	Deferred bool   // the source was not yet written; a pending move was registered
}

// Call covers CALLI/CALLV/TAILI/TAILV. A CALL writes a fresh return
// context into the new frame (the next field PC and the caller's FP); a
// TAIL instead forwards the current frame's own return context, since a
// tail call never returns to its own caller.
type Call struct {
	Base
	Target         field.F32
	TargetAddr     uint32 // resolved vrom address holding the target, only meaningful for CALLV/TAILV
	FromVrom       bool
	IsTail         bool
	NextFPAddr     uint32 // fp xor next_fp arg: caller-frame slot the allocator's result is stored into
	NewFP          uint32 // the allocated callee frame's base address
	RetSlotValue   uint32 // value written to NewFP+0
	OldFPSlotValue uint32 // value written to NewFP^1
	Moves          []MoveArg
}

// Ret covers RET.
type Ret struct {
	Base
	RetPC field.F32
	RetFP uint32
}

// Move covers MVV.W / MVV.L / MVI.H / LDI.W. MVV.W/MVV.L/MVI.H address
// their destination indirectly: the dst argument names a slot in the
// current frame holding a pointer (typically a freshly allocated callee
// frame's base address), and the actual write lands at that pointer XOR
// offset. LDI.W writes directly to fp XOR dst with no indirection.
type Move struct {
	Base
	DstPtrAddr uint32 // fp xor dst arg; unused (zero) for LDI.W
	DstPtrVal  uint32 // value read from DstPtrAddr; unused for LDI.W
	DstAddr    uint32 // final write address
	SrcAddr    uint32 // fp xor src arg; unused for MVI.H/LDI.W
	Value      uint32
	ValueHi    uint32 // only meaningful for MVV.L (128-bit)
	Is128      bool
	Deferred   bool // source not yet written; a pending move was registered instead of firing now
}

// DeferredMove is synthesized when a call-procedure pending move finally
// fires (spec §4.1). It is not directly dispatched by the interpreter's
// fetch loop; it is appended whenever memory.VROM.WriteWord drains a
// pending-update entry.
type DeferredMove struct {
	Base
	Addr, Value uint32
}

// Ram covers LB/LBU/LH/LHU/LW/SB/SH/SW.
type Ram struct {
	Base
	VromAddr uint32 // vrom slot holding the RAM address operand (and, for stores, the value)
	RamAddr  uint32
	Value    uint32
	Width    int
	IsWrite  bool
	Signed   bool
}

// Groestl covers the optional Groestl-256 compression and output-transform
// opcodes (supplemented from original_source/assembly/src/event/groestl.rs;
// spec.md §4.2 lists them as optional). GROESTL_COMPRESS operates on two
// 512-bit (16-word) inputs and produces a 512-bit result; GROESTL_OUTPUT
// operates on two 256-bit (8-word) inputs and produces a 256-bit result.
type Groestl struct {
	Base
	Src1Addr, Src2Addr, DstAddr uint32
	Src1, Src2, Result          []uint32
	IsCompress                  bool // false => output transform
}

// Misc covers FP (frame-pointer read) and the prover-only allocator hints
// ALLOCI/ALLOCV.
type Misc struct {
	Base
	Dst        uint32 // resolved vrom address
	Value      uint32
	ProverOnly bool
}
