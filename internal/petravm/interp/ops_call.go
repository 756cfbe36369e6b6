package interp

import (
	"github.com/petraprover/petravm/internal/petravm/events"
	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// execCall handles CALLI/CALLV/TAILI/TAILV: allocates a new frame sized
// per the target label's declared frame size, applies the instruction's
// carried argument moves into it, then transfers control.
//
// A CALL writes a fresh return context into the new frame: slot 0 gets
// the field PC to resume at (this instruction's next PC), slot 1 gets
// the caller's own FP. A TAIL instead forwards the current frame's own
// return context (its own slot 0/1), since a tail call never returns to
// its immediate caller — only to whoever called it.
func (i *Interpreter) execCall(op isa.Opcode, rec memory.InstructionRecord) error {
	isTail := op == isa.TAILI || op == isa.TAILV
	fromVrom := op == isa.CALLV || op == isa.TAILV

	var target field.F32
	var targetAddr uint32
	var nextFPArg uint16

	if fromVrom {
		targetAddr = i.addr(rec.Arg0)
		raw, err := i.vrom.ReadWord(targetAddr)
		if err != nil {
			return err
		}
		target = field.F32(raw)
		nextFPArg = rec.Arg1
	} else {
		target = field.F32(uint32(rec.Arg0) | uint32(rec.Arg1)<<16)
		nextFPArg = rec.Arg2
	}

	frameSize, err := i.image.FrameSize(target)
	if err != nil {
		return err
	}
	newFP := i.vrom.AllocateFrame(uint32(frameSize))
	nextFPAddr := i.addr(nextFPArg)
	if err := i.writeWord(nextFPAddr, newFP); err != nil {
		return err
	}

	var retSlotValue, oldFPSlotValue uint32
	if isTail {
		retSlotValue, err = i.vrom.ReadWord(i.fp)
		if err != nil {
			return err
		}
		oldFPSlotValue, err = i.vrom.ReadWord(i.fp ^ 1)
		if err != nil {
			return err
		}
	} else {
		retSlotValue = uint32(i.pc.Mul(field.Generator))
		oldFPSlotValue = i.fp
	}

	moves, err := i.applyArgMoves(rec.ArgMoves, newFP)
	if err != nil {
		return err
	}

	pc, fp, ts := i.snapshot()

	if err := i.writeWord(newFP, retSlotValue); err != nil {
		return err
	}
	if err := i.writeWord(newFP^1, oldFPSlotValue); err != nil {
		return err
	}

	i.fp = newFP
	if err := i.jumpTo(target, rec.Advice); err != nil {
		return err
	}
	i.timestamp++

	i.trace.AppendCall(events.Call{
		Base:           i.baseFor(op, rec, pc, fp, ts, i.pc, i.fp),
		Target:         target,
		TargetAddr:     targetAddr,
		FromVrom:       fromVrom,
		IsTail:         isTail,
		NextFPAddr:     nextFPAddr,
		NewFP:          newFP,
		RetSlotValue:   retSlotValue,
		OldFPSlotValue: oldFPSlotValue,
		Moves:          moves,
	})
	return nil
}

// applyArgMoves copies each argument move carried by a CALL/TAIL
// instruction into the freshly allocated frame. When a move's source has
// not yet been written — typically because it names another, still
// in-flight call's return slot — a pending move is registered with VROM
// instead of failing, and fires later once that slot is written (spec
// §4.1, §9's "pending moves and cyclic fix-up").
func (i *Interpreter) applyArgMoves(argMoves []memory.ArgMove, newFP uint32) ([]events.MoveArg, error) {
	if len(argMoves) == 0 {
		return nil, nil
	}
	pc, fp, _ := i.snapshot()
	out := make([]events.MoveArg, 0, len(argMoves))
	for _, m := range argMoves {
		width := uint32(1)
		if m.Is128 {
			width = 4
		}
		for k := uint32(0); k < width; k++ {
			srcAddr := i.addr(m.Src) + k
			dst := (newFP ^ uint32(m.Dst)) + k
			val, ok := i.vrom.ReadWordOptional(srcAddr)
			if !ok {
				i.vrom.RegisterPendingMove(srcAddr, dst, pc, fp)
				out = append(out, events.MoveArg{Dst: dst, SrcAddr: srcAddr, Deferred: true})
				continue
			}
			if err := i.writeWord(dst, val); err != nil {
				return nil, err
			}
			out = append(out, events.MoveArg{Dst: dst, SrcAddr: srcAddr, Value: val})
		}
	}
	return out, nil
}
