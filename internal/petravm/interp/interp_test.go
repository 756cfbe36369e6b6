package interp_test

import (
	"errors"
	"testing"

	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/interp"
	"github.com/petraprover/petravm/internal/petravm/interp/testutil"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// TestIntegerOpAdd runs a single ADD and checks both the VROM write and
// the emitted IntegerOp event.
func TestIntegerOpAdd(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.ADD, 4, 2, 3) // vrom[4] = vrom[2] + vrom[3]
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	tr, _, err := testutil.Run(image, []uint32{0, 0, 3, 4}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := tr.VROM.ReadWord(4)
	if err != nil {
		t.Fatalf("ReadWord(4): %v", err)
	}
	if got != 7 {
		t.Fatalf("vrom[4] = %d, want 7", got)
	}
	if len(tr.IntegerOps) != 1 {
		t.Fatalf("expected 1 IntegerOp event, got %d", len(tr.IntegerOps))
	}
	ev := tr.IntegerOps[0]
	if ev.Val1 != 3 || ev.Val2 != 4 || ev.ResultLo != 7 {
		t.Fatalf("unexpected event %+v", ev)
	}
}

// TestIntegerOpMulImmediateIs64 checks that MULI writes both the low and
// high result words.
func TestIntegerOpMulImmediateIs64(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.MULI, 3, 2, 1000) // vrom[3:4] = vrom[2] * 1000
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	tr, _, err := testutil.Run(image, []uint32{0, 0, 5000000}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := int64(5000000) * int64(1000)
	lo, err := tr.VROM.ReadWord(3)
	if err != nil {
		t.Fatalf("ReadWord(3): %v", err)
	}
	hi, err := tr.VROM.ReadWord(4)
	if err != nil {
		t.Fatalf("ReadWord(4): %v", err)
	}
	got := uint64(lo) | uint64(hi)<<32
	if int64(got) != want {
		t.Fatalf("mul result = %d, want %d", int64(got), want)
	}
}

// TestBranchTakenAndNotTaken exercises both polarities of BZ in one
// program: the first BZ's condition is nonzero (not taken, falls
// through), the second's is zero (taken, jumps to DONE).
func TestBranchTakenAndNotTaken(t *testing.T) {
	b := testutil.NewBuilder()

	doneIdx := uint32(4) // decided up front; instructions below fill 0..4
	loLo, loHi := testutil.SplitTarget(testutil.FieldPCForIndex(doneIdx))

	b.Emit(isa.BZ, 2, loLo, loHi)    // vrom[2] = 1, not taken
	b.Emit(isa.ADDI, 5, 2, 10)       // vrom[5] = vrom[2] + 10 = 11 (only on fallthrough)
	b.Emit(isa.BZ, 3, loLo, loHi)    // vrom[3] = 0, taken -> jumps to DONE
	b.Emit(isa.ADDI, 6, 2, 99)       // skipped
	idx := b.Index()
	if idx != doneIdx {
		t.Fatalf("doneIdx out of sync: got index %d, want %d", idx, doneIdx)
	}
	b.Emit(isa.RET, 0, 0, 0) // DONE

	// Patch the two BZ records' advice/target to point at doneIdx.
	records := b.Records()
	records[0].Advice = &memory.Advice{PromIndex: doneIdx}
	records[2].Advice = &memory.Advice{PromIndex: doneIdx}

	image := &isa.Image{PROM: memory.NewPROM(records), PCIndex: map[field.F32]isa.PCLocation{}}
	tr, boundary, err := testutil.Run(image, []uint32{0, 0, 1, 0}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if boundary.FinalPC != 0 {
		t.Fatalf("FinalPC = %d, want 0 (halted)", boundary.FinalPC)
	}
	if v, _ := tr.VROM.ReadWord(5); v != 11 {
		t.Fatalf("vrom[5] = %d, want 11 (fallthrough should have run)", v)
	}
	if tr.VROM.IsWritten(6) {
		t.Fatal("vrom[6] should never have been written (second BZ should have jumped past it)")
	}
	if len(tr.Branches) != 2 {
		t.Fatalf("expected 2 Branch events, got %d", len(tr.Branches))
	}
	if tr.Branches[0].Taken {
		t.Fatal("first branch should not have been taken")
	}
	if !tr.Branches[1].Taken {
		t.Fatal("second branch should have been taken")
	}
}

// TestLoadImmediateAndReturn covers the "load immediate, then return"
// scenario: LDI.W writes a 32-bit immediate with no source operand, and
// the machine halts cleanly off a zero return PC.
func TestLoadImmediateAndReturn(t *testing.T) {
	b := testutil.NewBuilder()
	imm := uint32(0xBEEF1234)
	b.Emit(isa.LDI_W, 2, uint16(imm), uint16(imm>>16))
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	tr, boundary, err := testutil.Run(image, []uint32{0, 0}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if boundary.FinalPC != 0 || boundary.FinalFP != 0 {
		t.Fatalf("boundary = %+v, want final pc/fp both 0", boundary)
	}
	got, err := tr.VROM.ReadWord(2)
	if err != nil {
		t.Fatalf("ReadWord(2): %v", err)
	}
	if got != imm {
		t.Fatalf("vrom[2] = %#x, want %#x", got, imm)
	}
	if len(tr.Rets) != 1 {
		t.Fatalf("expected 1 Ret event, got %d", len(tr.Rets))
	}
}

// TestMoveMVVWord covers MVV.W's pointer-indirected copy: arg0 names a
// vrom slot holding a destination pointer, and the value lands at that
// pointer xor the instruction's offset.
func TestMoveMVVWord(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.MVV_W, 2, 1, 3) // vrom[vrom[2] ^ 1] = vrom[3]
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	// vrom[2] = 8 (dest pointer base), vrom[3] = 42 (value to copy).
	tr, _, err := testutil.Run(image, []uint32{0, 0, 8, 42}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, err := tr.VROM.ReadWord(8 ^ 1)
	if err != nil {
		t.Fatalf("ReadWord(8^1): %v", err)
	}
	if got != 42 {
		t.Fatalf("vrom[8^1] = %d, want 42", got)
	}
}

// TestRamStoreThenLoad round-trips a word through RAM via a vrom-held
// pointer, exercising both the write and the (unsigned word) read path.
func TestRamStoreThenLoad(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.SW, 2, 3, 0)  // RAM[vrom[3] + 0] = vrom[2]
	b.Emit(isa.LW, 4, 3, 0)  // vrom[4] = RAM[vrom[3] + 0]
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	// vrom[2] = value to store, vrom[3] = RAM pointer.
	tr, _, err := testutil.Run(image, []uint32{0, 0, 0xCAFEBABE, 4096}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, err := tr.VROM.ReadWord(4)
	if err != nil {
		t.Fatalf("ReadWord(4): %v", err)
	}
	if got != 0xCAFEBABE {
		t.Fatalf("vrom[4] = %#x, want 0xCAFEBABE", got)
	}
	if len(tr.Rams) != 2 {
		t.Fatalf("expected 2 Ram events, got %d", len(tr.Rams))
	}
}

// TestArithmeticShiftBoundary covers the "shift amount >= 32" edge case:
// SRAI's amount is taken modulo 32, and the shift preserves sign.
func TestArithmeticShiftBoundary(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.SRAI, 3, 2, 35) // amount 35 %% 32 == 3
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	tr, _, err := testutil.Run(image, []uint32{0, 0, 0x80000000}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, err := tr.VROM.ReadWord(3)
	if err != nil {
		t.Fatalf("ReadWord(3): %v", err)
	}
	want := uint32(0xF0000000)
	if got != want {
		t.Fatalf("vrom[3] = %#x, want %#x", got, want)
	}
	if len(tr.Shifts) != 1 {
		t.Fatalf("expected 1 Shift event, got %d", len(tr.Shifts))
	}
	ev := tr.Shifts[0]
	if ev.AmountVal != 3 || !ev.Arithmetic || ev.SignBit != 1 {
		t.Fatalf("unexpected shift event %+v", ev)
	}
}

// TestMiscFPReadsFramePointer covers the FP opcode: it writes the current
// frame pointer into a vrom slot and otherwise behaves like an ordinary
// instruction.
func TestMiscFPReadsFramePointer(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.FP, 5, 0, 0)
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	tr, _, err := testutil.Run(image, []uint32{0, 0}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, err := tr.VROM.ReadWord(5)
	if err != nil {
		t.Fatalf("ReadWord(5): %v", err)
	}
	if got != 0 {
		t.Fatalf("vrom[5] = %d, want 0 (root frame pointer)", got)
	}
}

// TestCallThenReturn exercises a single CALLI/RET round trip: the callee
// runs in a fresh, non-overlapping frame and its RET resumes the caller
// exactly where it left off.
func TestCallThenReturn(t *testing.T) {
	b := testutil.NewBuilder()

	calleeIdx := uint32(3)
	calleePC := testutil.FieldPCForIndex(calleeIdx)
	lo, hi := testutil.SplitTarget(calleePC)

	b.EmitCall(isa.CALLI, lo, hi, 7, calleeIdx, nil) // arg2=7: write new fp into vrom[7], the first slot past the initial VROM
	// dst=100 is well clear of the root frame (0..7) and of whatever
	// address the allocator hands the callee's frame, so this write can
	// never collide with one of the callee's own slots.
	b.Emit(isa.ADDI, 100, 6, 1) // runs after the call returns: vrom[100] = vrom[6] + 1
	b.Emit(isa.RET, 0, 0, 0)                         // caller's own return PC/FP (both 0) halts the machine
	// Callee (index 3): write a marker, then return.
	if got := b.Index(); got != calleeIdx {
		t.Fatalf("calleeIdx out of sync: got %d, want %d", got, calleeIdx)
	}
	b.Emit(isa.LDI_W, 2, 77, 0) // vrom[calleeFP ^ 2] = 77
	// The callee always returns to the instruction right after its single
	// call site, so its RET can carry that prom index as fixed advice
	// instead of needing a populated PCIndex map.
	b.EmitJump(isa.RET, 0, 0, 0, 1)

	frameSizes := map[field.F32]uint16{calleePC: 4}
	image := b.Image(frameSizes)
	tr, boundary, err := testutil.Run(image, []uint32{0, 0, 0, 0, 0, 0, 0}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if boundary.FinalPC != 0 || boundary.FinalFP != 0 {
		t.Fatalf("boundary = %+v, want caller's frame restored and halted", boundary)
	}
	if len(tr.Calls) != 1 || len(tr.Rets) != 2 {
		t.Fatalf("expected 1 Call and 2 Ret events, got %d calls %d rets", len(tr.Calls), len(tr.Rets))
	}
	newFP := tr.Calls[0].NewFP
	got, err := tr.VROM.ReadWord(newFP ^ 2)
	if err != nil {
		t.Fatalf("ReadWord(newFP^2): %v", err)
	}
	if got != 77 {
		t.Fatalf("callee's write = %d, want 77", got)
	}
	if v, _ := tr.VROM.ReadWord(100); v != 1 {
		t.Fatalf("vrom[100] = %d, want 1 (caller resumed after the call)", v)
	}
}

// TestVROMRewriteIsRejected covers the "VROM rewrite error" scenario: a
// second write to an already-written address with a different value must
// fail, surfaced as a structured *memory.Error.
func TestVROMRewriteIsRejected(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.ADDI, 3, 2, 1) // vrom[3] = vrom[2] + 1
	b.Emit(isa.ADDI, 3, 2, 2) // vrom[3] = vrom[2] + 2, conflicts
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	_, _, err := testutil.Run(image, []uint32{0, 0, 5}, nil)
	if err == nil {
		t.Fatal("expected a VromRewrite error")
	}
	var memErr *memory.Error
	if !errors.As(err, &memErr) {
		t.Fatalf("expected error to wrap *memory.Error, got %v", err)
	}
	if memErr.Kind != memory.VromRewrite {
		t.Fatalf("Kind = %v, want VromRewrite", memErr.Kind)
	}
}

// TestRunHaltsOnZeroReturnPC is the minimal end-to-end scenario: a single
// RET whose frame has a zero return PC halts immediately, leaving exactly
// one Ret event in the trace.
func TestRunHaltsOnZeroReturnPC(t *testing.T) {
	b := testutil.NewBuilder()
	b.Emit(isa.RET, 0, 0, 0)

	image := b.Image(nil)
	tr, boundary, err := testutil.Run(image, []uint32{0, 0}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if boundary.FinalPC != 0 || boundary.FinalFP != 0 {
		t.Fatalf("boundary = %+v, want zero", boundary)
	}
	if len(tr.Rets) != 1 {
		t.Fatalf("expected 1 Ret event, got %d", len(tr.Rets))
	}
}

// TestRunExceedsMaxSteps checks that an infinite self-jump is caught by
// Run's step budget rather than hanging.
func TestRunExceedsMaxSteps(t *testing.T) {
	b := testutil.NewBuilder()
	loopIdx := b.Index()
	b.EmitJump(isa.JUMPI, 0, 0, 0, loopIdx)

	records := b.Records()
	lo, hi := testutil.SplitTarget(testutil.FieldPCForIndex(loopIdx))
	records[0].Arg0, records[0].Arg1 = lo, hi

	image := &isa.Image{PROM: memory.NewPROM(records), PCIndex: map[field.F32]isa.PCLocation{}}
	cfg := interp.DefaultConfig().WithMaxSteps(10)
	_, _, err := testutil.Run(image, []uint32{0, 0}, cfg)
	if err == nil {
		t.Fatal("expected Run to stop after exceeding max steps")
	}
}
