package interp_test

import (
	"testing"

	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/interp/testutil"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// TestCollatzFiveStepCount builds the Collatz stopping-time loop
// (n -> n/2 if even, else 3n+1, counting steps until n == 1) as a
// self-tail-recursive function, one fresh frame per step. Grounded on
// original_source's tests/collatz.rs scenario.
//
// Frame layout (fp-relative): 0 retPC, 1 retFP, 2 n, 3 steps, 4 ram
// pointer, 5 n-1 scratch (for the n==1 test), 6 parity scratch, 7 new
// steps scratch, 8 new-n scratch, 9/10 3n+1's low/high product words,
// 11 scratch for the TAIL's new-fp bookkeeping write.
func TestCollatzFiveStepCount(t *testing.T) {
	const ramResultAddr = 0x3000

	b := testutil.NewBuilder()

	loopPC := testutil.FieldPCForIndex(0)
	loopLo, loopHi := testutil.SplitTarget(loopPC)
	evenIdx := uint32(8)
	evenLo, evenHi := testutil.SplitTarget(testutil.FieldPCForIndex(evenIdx))
	commonIdx := uint32(10)
	commonLo, commonHi := testutil.SplitTarget(testutil.FieldPCForIndex(commonIdx))
	doneIdx := uint32(11)
	doneLo, doneHi := testutil.SplitTarget(testutil.FieldPCForIndex(doneIdx))

	b.Emit(isa.SUBI, 5, 2, 1)                       // idx0: n-1 = n - 1
	b.EmitJump(isa.BZ, 5, doneLo, doneHi, doneIdx)   // idx1: if n == 1, done
	b.Emit(isa.ANDI, 6, 2, 1)                        // idx2: parity = n & 1
	b.EmitJump(isa.BZ, 6, evenLo, evenHi, evenIdx)   // idx3: if even, jump ahead
	b.Emit(isa.MULI, 9, 2, 3)                        // idx4 (odd): 3n (lo/hi) = n * 3
	b.Emit(isa.ADDI, 8, 9, 1)                        // idx5: new n = 3n + 1
	b.Emit(isa.ADDI, 7, 3, 1)                        // idx6: new steps = steps + 1
	b.EmitJump(isa.JUMPI, commonLo, commonHi, 0, commonIdx) // idx7: skip the even path
	if got := b.Index(); got != evenIdx {
		t.Fatalf("evenIdx out of sync: got %d, want %d", got, evenIdx)
	}
	b.Emit(isa.SRLI, 8, 2, 1) // idx8 (even): new n = n / 2
	b.Emit(isa.ADDI, 7, 3, 1) // idx9: new steps = steps + 1
	if got := b.Index(); got != commonIdx {
		t.Fatalf("commonIdx out of sync: got %d, want %d", got, commonIdx)
	}
	b.EmitCall(isa.TAILI, loopLo, loopHi, 11, 0, []memory.ArgMove{
		{Dst: 2, Src: 8}, // new n
		{Dst: 3, Src: 7}, // new steps
		{Dst: 4, Src: 4}, // ram pointer carried through unchanged
	})
	if got := b.Index(); got != doneIdx {
		t.Fatalf("doneIdx out of sync: got %d, want %d", got, doneIdx)
	}
	b.Emit(isa.SW, 3, 4, 0) // RAM[ramPtr] = steps
	b.Emit(isa.RET, 0, 0, 0)

	frameSizes := map[field.F32]uint16{loopPC: 12}
	image := b.Image(frameSizes)

	initialVROM := []uint32{0, 0, 5, 0, ramResultAddr}
	tr, boundary, err := testutil.Run(image, initialVROM, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if boundary.FinalPC != 0 || boundary.FinalFP != 0 {
		t.Fatalf("boundary = %+v, want halted at the original top-level frame", boundary)
	}

	got, err := tr.RAM.ReadWord(ramResultAddr, 0, field.Zero)
	if err != nil {
		t.Fatalf("RAM.ReadWord: %v", err)
	}
	if got != 5 {
		t.Fatalf("collatz(5) step count = %d, want 5 (5 -> 16 -> 8 -> 4 -> 2 -> 1)", got)
	}
	if len(tr.Calls) != 5 {
		t.Fatalf("expected 5 tail calls, got %d", len(tr.Calls))
	}
}
