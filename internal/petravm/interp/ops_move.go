package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execMove handles MVV.W/MVV.L/MVI.H/LDI.W, grounded on
// original_source/assembly/src/event/mv.rs.
func (i *Interpreter) execMove(op isa.Opcode, rec memory.InstructionRecord) error {
	switch op {
	case isa.LDI_W:
		return i.execLDIW(op, rec)
	case isa.MVI_H:
		return i.execMVIH(op, rec)
	default:
		return i.execMVV(op, rec)
	}
}

// execMVV handles MVV.W (one word) and MVV.L (four words, 128-bit
// aligned). dst names a slot in the current frame holding a pointer (the
// indirection that lets a caller address its not-yet-existing callee
// frame); the write lands at that pointer XOR offset. A word whose
// source has not yet been written registers a pending move rather than
// failing, so a later write to that source flushes it in.
func (i *Interpreter) execMVV(op isa.Opcode, rec memory.InstructionRecord) error {
	is128 := op == isa.MVV_L
	dstPtrAddr := i.addr(rec.Arg0)
	offset := uint32(rec.Arg1)
	srcAddr := i.addr(rec.Arg2)

	dstPtrVal, err := i.vrom.ReadWord(dstPtrAddr)
	if err != nil {
		return err
	}
	dstAddr := dstPtrVal ^ offset

	pc, fp, ts := i.snapshot()

	width := uint32(1)
	if is128 {
		width = 4
	}

	var value, valueHi uint32
	deferred := false
	for k := uint32(0); k < width; k++ {
		val, ok := i.vrom.ReadWordOptional(srcAddr + k)
		if !ok {
			i.vrom.RegisterPendingMove(srcAddr+k, dstAddr+k, pc, fp)
			deferred = true
			continue
		}
		if err := i.writeWord(dstAddr+k, val); err != nil {
			return err
		}
		switch k {
		case 0:
			value = val
		case 1:
			valueHi = val
		}
	}

	nextPC, nextFP := i.commit(op)
	i.trace.AppendMove(events.Move{
		Base:       i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		DstPtrAddr: dstPtrAddr, DstPtrVal: dstPtrVal, DstAddr: dstAddr, SrcAddr: srcAddr,
		Value: value, ValueHi: valueHi, Is128: is128, Deferred: deferred,
	})
	return nil
}

// execMVIH writes a 16-bit immediate, zero-extended, to the indirected
// destination named by arg0/arg1 — the immediate counterpart to MVV.W
// used to seed a callee frame with literal argument values.
func (i *Interpreter) execMVIH(op isa.Opcode, rec memory.InstructionRecord) error {
	dstPtrAddr := i.addr(rec.Arg0)
	offset := uint32(rec.Arg1)
	imm := uint32(rec.Arg2)

	dstPtrVal, err := i.vrom.ReadWord(dstPtrAddr)
	if err != nil {
		return err
	}
	dstAddr := dstPtrVal ^ offset

	pc, fp, ts := i.snapshot()

	if err := i.writeWord(dstAddr, imm); err != nil {
		return err
	}

	nextPC, nextFP := i.commit(op)
	i.trace.AppendMove(events.Move{
		Base:       i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		DstPtrAddr: dstPtrAddr, DstPtrVal: dstPtrVal, DstAddr: dstAddr,
		Value: imm,
	})
	return nil
}

// execLDIW writes a 32-bit immediate (packed across arg1:arg2) directly
// to fp xor dst, with no pointer indirection.
func (i *Interpreter) execLDIW(op isa.Opcode, rec memory.InstructionRecord) error {
	dst := i.addr(rec.Arg0)
	imm := uint32(rec.Arg1) | uint32(rec.Arg2)<<16

	pc, fp, ts := i.snapshot()

	if err := i.writeWord(dst, imm); err != nil {
		return err
	}

	nextPC, nextFP := i.commit(op)
	i.trace.AppendMove(events.Move{
		Base: i.baseFor(op, rec, pc, fp, ts, nextPC, nextFP),
		DstAddr: dst, Value: imm,
	})
	return nil
}
