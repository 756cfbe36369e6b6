// Package interp implements PetraVM's fetch-decode-execute loop: the
// deterministic state machine that decodes each instruction, updates
// architectural state, reads/writes the three memory spaces, and emits
// one event record per executed instruction.
package interp

import (
	"fmt"

	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
	"github.com/petraprover/petravm/internal/petravm/trace"
)

// Interpreter is PetraVM's single-threaded, strictly cooperative execution
// engine: one instruction fully executes before the next
// begins, synchronously, with no suspension on external I/O.
type Interpreter struct {
	image *isa.Image
	vrom  *memory.VROM
	ram   *memory.RAM
	trace *trace.Trace

	pc        field.F32
	promIndex uint32
	fp        uint32
	timestamp uint32
	halted    bool
	steps     uint64

	cfg *Config
}

// New constructs an interpreter over the given program image and initial
// VROM contents. By convention, word 0
// of initialVROM is the initial return PC (typically zero), word 1 the
// initial return FP, and words 2.. the user-visible arguments.
func New(image *isa.Image, initialVROM []uint32, cfg *Config) (*Interpreter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := image.Validate(); err != nil {
		return nil, err
	}

	vrom := memory.NewVROM(uint32(len(initialVROM)))
	for addr, val := range initialVROM {
		if _, err := vrom.WriteWord(uint32(addr), val); err != nil {
			return nil, fmt.Errorf("interp: loading initial vrom: %w", err)
		}
	}

	ram := memory.NewRAM()
	tr := trace.New(image.PROM, vrom, ram)

	return &Interpreter{
		image: image,
		vrom:  vrom,
		ram:   ram,
		trace: tr,
		pc:    field.One,
		fp:    0,
		cfg:   cfg,
	}, nil
}

// Run executes the program to completion (PC reaches zero) and returns
// the completed trace plus the final-state boundary.
func (i *Interpreter) Run() (*trace.Trace, trace.Boundary, error) {
	for !i.halted {
		if err := i.Step(); err != nil {
			return nil, trace.Boundary{}, err
		}
		i.steps++
		if i.steps > i.cfg.MaxSteps {
			return nil, trace.Boundary{}, fmt.Errorf("interp: exceeded max steps (%d)", i.cfg.MaxSteps)
		}
	}
	i.cfg.Observer.OnHalt(i.pc, i.fp)
	return i.trace, trace.Boundary{
		FinalPC:        uint32(i.pc),
		FinalFP:        i.fp,
		FinalTimestamp: i.timestamp,
	}, nil
}

// Step executes exactly one instruction.
func (i *Interpreter) Step() error {
	if int(i.promIndex) >= i.image.PROM.Len() {
		return fmt.Errorf("interp: BadPc: prom index %d out of range", i.promIndex)
	}
	rec, err := i.image.PROM.At(i.promIndex)
	if err != nil {
		return fmt.Errorf("interp: BadPc: %w", err)
	}

	op := isa.Opcode(rec.Opcode)
	if !op.Valid() {
		return fmt.Errorf("interp: UnsupportedOpcode: %d at prom index %d", rec.Opcode, i.promIndex)
	}
	if op.IsProverOnly() != rec.ProverOnly {
		return fmt.Errorf("interp: prover-only/verifier-only mismatch for %s at prom index %d", op, i.promIndex)
	}

	i.cfg.Observer.OnStep(i.pc, i.fp, rec.Opcode)

	if !rec.ProverOnly {
		i.trace.IncrementPCCounter(i.promIndex + 1)
		if op.TwoWordImmediate() {
			i.trace.IncrementPCCounter(i.promIndex + 2)
		}
	}

	return i.dispatch(op, rec)
}

// advance moves PC/promIndex forward by the ordinary "multiply by G"
// step, consuming one extra PROM slot for two-word-immediate opcodes.
func (i *Interpreter) advance(op isa.Opcode) (field.F32, uint32) {
	nextPC := i.pc.Mul(field.Generator)
	nextIdx := i.promIndex + 1
	if op.TwoWordImmediate() {
		nextIdx++
	}
	return nextPC, nextIdx
}

// jumpTo resolves a target field PC (via advice or the image's PC-index
// map) and repositions the interpreter there.
func (i *Interpreter) jumpTo(target field.F32, advice *memory.Advice) error {
	if target.IsZero() {
		i.pc = field.Zero
		i.halted = true
		return nil
	}
	loc, err := i.image.Resolve(target, advice)
	if err != nil {
		return fmt.Errorf("interp: MissingAdvice: %w", err)
	}
	i.pc = target
	i.promIndex = loc.PromIndex
	return nil
}

func (i *Interpreter) addr(raw uint16) uint32 { return i.fp ^ uint32(raw) }

// dispatch is the exhaustive opcode switch: a tagged sum rather
// than a virtual-dispatch table, so the hot loop never allocates an
// interface for polymorphic per-opcode behavior.
func (i *Interpreter) dispatch(op isa.Opcode, rec memory.InstructionRecord) error {
	switch op {
	case isa.ADD, isa.ADDI, isa.SUB, isa.SUBI,
		isa.MUL, isa.MULU, isa.MULSU, isa.MULI, isa.MULIU, isa.MULISU,
		isa.SLT, isa.SLTU, isa.SLE, isa.SLEU, isa.SLTI, isa.SLTIU, isa.SLEI, isa.SLEIU,
		isa.AND, isa.ANDI, isa.OR, isa.ORI, isa.XOR, isa.XORI:
		return i.execIntegerOp(op, rec)
	case isa.SLL, isa.SLLI, isa.SRL, isa.SRLI, isa.SRA, isa.SRAI:
		return i.execShift(op, rec)
	case isa.B32_MUL, isa.B32_MULI:
		return i.execB32(op, rec)
	case isa.B128_ADD, isa.B128_MUL:
		return i.execB128(op, rec)
	case isa.BNZ, isa.BZ:
		return i.execBranch(op, rec)
	case isa.JUMPI, isa.JUMPV:
		return i.execJump(op, rec)
	case isa.CALLI, isa.CALLV, isa.TAILI, isa.TAILV:
		return i.execCall(op, rec)
	case isa.RET:
		return i.execRet(op, rec)
	case isa.MVV_W, isa.MVV_L, isa.MVI_H, isa.LDI_W:
		return i.execMove(op, rec)
	case isa.LB, isa.LBU, isa.LH, isa.LHU, isa.LW, isa.SB, isa.SH, isa.SW:
		return i.execRam(op, rec)
	case isa.GROESTL_COMPRESS, isa.GROESTL_OUTPUT:
		return i.execGroestl(op, rec)
	case isa.FP, isa.ALLOCI, isa.ALLOCV:
		return i.execMisc(op, rec)
	default:
		return fmt.Errorf("interp: InvalidOpcode: %s", op)
	}
}
