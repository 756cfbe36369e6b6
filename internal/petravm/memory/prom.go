// Package memory implements PetraVM's three address spaces: PROM
// (read-only program memory), VROM (write-once value memory with an
// allocator and deferred-write protocol) and RAM (conventional,
// timestamped read/write memory).
package memory

import (
	"fmt"

	"github.com/petraprover/petravm/internal/petravm/field"
)

// Advice is the prover-supplied (prom_index, integer_pc) hint a
// control-flow instruction carries for its jump target, letting the
// interpreter avoid a discrete-log lookup against the field PC.
type Advice struct {
	PromIndex uint32
	IntegerPC uint32
}

// ArgMove is one argument-passing move carried by a CALL/TAIL
// instruction: once the callee frame is allocated, Value[Src] (an offset
// in the caller's frame) is copied to offset Dst in the new frame (spec
// §4.1's call-procedure protocol). The assembler attaches these directly
// to the call instruction rather than encoding them as separate MVV
// instructions, since their destination frame does not exist until the
// call itself allocates it.
type ArgMove struct {
	Dst uint16
	Src uint16
	Is128 bool
}

// InstructionRecord is one slot of program memory: an opcode, its three
// raw argument fields, the field PC this instruction is assembled at, and
// the optional control-flow advice / prover-only flag. ArgMoves is only
// populated for CALLI/CALLV/TAILI/TAILV records.
type InstructionRecord struct {
	Opcode     uint16
	Arg0       uint16
	Arg1       uint16
	Arg2       uint16
	FieldPC    field.F32
	Advice     *Advice
	ProverOnly bool
	ArgMoves   []ArgMove
}

// PROM is the immutable, indexed program image. PROM.At takes a 0-based
// prom index: the instruction at integer PC i lives at PromIndex == i-1.
type PROM struct {
	records []InstructionRecord
}

// NewPROM wraps an assembler-produced record sequence. The slice is not
// copied; callers must not mutate it afterward.
func NewPROM(records []InstructionRecord) *PROM {
	return &PROM{records: records}
}

// Len returns the number of instruction records, including padding.
func (p *PROM) Len() int { return len(p.records) }

// At fetches the instruction at the given 0-based prom index. Returns a
// BadPc-flavored error if promIndex is out of range.
func (p *PROM) At(promIndex uint32) (InstructionRecord, error) {
	if int(promIndex) >= len(p.records) {
		return InstructionRecord{}, fmt.Errorf("prom: index %d out of range (len %d)", promIndex, len(p.records))
	}
	return p.records[promIndex], nil
}

// Records exposes the full record slice for the PROM plumbing table.
func (p *PROM) Records() []InstructionRecord { return p.records }

// nopOpcode mirrors isa.NOP's numeric value (0); memory cannot import isa
// (isa imports memory), so the two packages share this convention by
// value rather than by reference. isa.Opcode(0).Valid() and
// isa.Opcode(0).IsProverOnly() are both true, so a padding row built this
// way passes isa.Image.Validate() unchanged.
const nopOpcode = 0

// Pad extends the PROM, if necessary, to the next power of two that is at
// least 128 rows, filling with prover-only no-op records whose field PC
// continues advancing by the generator from the last real record. This
// matches the PROM table's row-count contract in spec §4.4.
func (p *PROM) Pad() {
	target := nextPow2AtLeast(len(p.records), 128)
	if target <= len(p.records) {
		return
	}
	lastPC := field.One
	if len(p.records) > 0 {
		lastPC = p.records[len(p.records)-1].FieldPC
	}
	for len(p.records) < target {
		lastPC = lastPC.Mul(field.Generator)
		p.records = append(p.records, InstructionRecord{
			Opcode:     nopOpcode,
			FieldPC:    lastPC,
			ProverOnly: true,
		})
	}
}

func nextPow2AtLeast(n, floor int) int {
	target := floor
	for target < n {
		target *= 2
	}
	return target
}
