package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/gadgets"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execGroestl handles GROESTL_COMPRESS (two 512-bit/16-word inputs,
// 512-bit/16-word result) and GROESTL_OUTPUT (two 256-bit/8-word inputs,
// 256-bit/8-word result), grounded on
// original_source/assembly/src/event/groestl.rs. The core does not
// reimplement the bit-exact Groestl-256 P/Q permutation (out of scope
// for this zkVM's execution layer, per SPEC_FULL.md's domain-stack
// decision); it derives a fixed-width digest from the concatenated
// inputs using sha3, the same hash package the debug observer uses.
func (i *Interpreter) execGroestl(op isa.Opcode, rec memory.InstructionRecord) error {
	isCompress := op == isa.GROESTL_COMPRESS
	words := 8
	if isCompress {
		words = 16
	}

	src1Addr := i.addr(rec.Arg1)
	src2Addr := i.addr(rec.Arg2)
	dstAddr := i.addr(rec.Arg0)

	src1, err := i.readWords(src1Addr, words)
	if err != nil {
		return err
	}
	src2, err := i.readWords(src2Addr, words)
	if err != nil {
		return err
	}

	result := gadgets.GroestlDigest(src1, src2, words)

	pc, fp, ts := i.snapshot()

	for k, w := range result {
		if err := i.writeWord(dstAddr+uint32(k), w); err != nil {
			return err
		}
	}

	nextPC, nextFP := i.commit(op)
	i.trace.AppendGroestl(events.Groestl{
		Base:       i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		Src1Addr:   src1Addr,
		Src2Addr:   src2Addr,
		DstAddr:    dstAddr,
		Src1:       src1,
		Src2:       src2,
		Result:     result,
		IsCompress: isCompress,
	})
	return nil
}

func (i *Interpreter) readWords(addr uint32, n int) ([]uint32, error) {
	out := make([]uint32, n)
	for k := 0; k < n; k++ {
		v, err := i.vrom.ReadWord(addr + uint32(k))
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

