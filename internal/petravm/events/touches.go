package events

import "github.com/petraprover/petravm/internal/petravm/isa"

// VromTouch is one (address, value) pair an event referenced — whether by
// reading an existing operand or by writing its result. The vrom
// channel's push multiplicity for an address is, by spec §4.3/§4.4,
// defined as the number of such touches across the whole run, so each
// event type exposes them directly rather than the trace re-deriving
// them some other way.
type VromTouch struct {
	Addr, Value uint32
}

// Touches returns every (addr, value) pair this event references in vrom.
func (e IntegerOp) Touches() []VromTouch {
	t := []VromTouch{{e.Src1, e.Val1}}
	if !e.Imm {
		t = append(t, VromTouch{e.Src2, e.Val2})
	}
	t = append(t, VromTouch{e.Dst, e.ResultLo})
	if e.Is64 {
		t = append(t, VromTouch{e.Dst + 1, e.ResultHi})
	}
	return t
}

func (e Shift) Touches() []VromTouch {
	t := []VromTouch{{e.Src, e.SrcVal}}
	if !e.ImmAmount {
		t = append(t, VromTouch{e.Amount, e.AmountVal})
	}
	t = append(t, VromTouch{e.Dst, e.Result})
	return t
}

func (e B32Op) Touches() []VromTouch {
	t := []VromTouch{{e.Src1, uint32(e.Val1)}}
	if !e.IsImm {
		t = append(t, VromTouch{e.Src2, uint32(e.Val2)})
	}
	t = append(t, VromTouch{e.Dst, uint32(e.Result)})
	return t
}

func (e B128Op) Touches() []VromTouch {
	v1 := e.Val1.ToWords()
	res := e.Result.ToWords()
	t := []VromTouch{
		{e.Src1, v1[0]}, {e.Src1 + 1, v1[1]}, {e.Src1 + 2, v1[2]}, {e.Src1 + 3, v1[3]},
		{e.Dst, res[0]}, {e.Dst + 1, res[1]}, {e.Dst + 2, res[2]}, {e.Dst + 3, res[3]},
	}
	if e.Src2 != 0 || e.Opcode != 0 {
		v2 := e.Val2.ToWords()
		t = append(t, VromTouch{e.Src2, v2[0]}, VromTouch{e.Src2 + 1, v2[1]}, VromTouch{e.Src2 + 2, v2[2]}, VromTouch{e.Src2 + 3, v2[3]})
	}
	return t
}

func (e Branch) Touches() []VromTouch {
	return []VromTouch{{e.CondAddr, e.CondVal}}
}

func (e Jump) Touches() []VromTouch {
	if e.FromVrom {
		return []VromTouch{{e.TargetAddr, uint32(e.Target)}}
	}
	return nil
}

func (e Call) Touches() []VromTouch {
	var t []VromTouch
	if e.FromVrom {
		t = append(t, VromTouch{e.TargetAddr, uint32(e.Target)})
	}
	t = append(t, VromTouch{e.NextFPAddr, e.NewFP})
	t = append(t, VromTouch{e.NewFP, e.RetSlotValue})
	t = append(t, VromTouch{e.NewFP ^ 1, e.OldFPSlotValue})
	if e.IsTail {
		t = append(t, VromTouch{e.FP, e.RetSlotValue}, VromTouch{e.FP ^ 1, e.OldFPSlotValue})
	}
	for _, m := range e.Moves {
		if !m.Deferred {
			t = append(t, VromTouch{m.Dst, m.Value}, VromTouch{m.SrcAddr, m.Value})
		}
	}
	return t
}

func (e Ret) Touches() []VromTouch {
	return []VromTouch{{e.FP, uint32(e.RetPC)}, {e.FP ^ 1, e.RetFP}}
}

func (e Move) Touches() []VromTouch {
	if e.Deferred {
		if e.Opcode != isa.LDI_W {
			return []VromTouch{{e.DstPtrAddr, e.DstPtrVal}}
		}
		return nil
	}
	var t []VromTouch
	if e.Opcode != isa.LDI_W {
		t = append(t, VromTouch{e.DstPtrAddr, e.DstPtrVal})
	}
	if e.Opcode == isa.MVV_W || e.Opcode == isa.MVV_L {
		t = append(t, VromTouch{e.SrcAddr, e.Value})
	}
	t = append(t, VromTouch{e.DstAddr, e.Value})
	if e.Is128 {
		t = append(t, VromTouch{e.DstAddr + 1, e.ValueHi})
	}
	return t
}

func (e DeferredMove) Touches() []VromTouch {
	return []VromTouch{{e.Addr, e.Value}}
}

func (e Ram) Touches() []VromTouch {
	return []VromTouch{{e.VromAddr, e.Value}}
}

func (e Groestl) Touches() []VromTouch {
	var t []VromTouch
	for i, w := range e.Src1 {
		t = append(t, VromTouch{e.Src1Addr + uint32(i), w})
	}
	for i, w := range e.Src2 {
		t = append(t, VromTouch{e.Src2Addr + uint32(i), w})
	}
	for i, w := range e.Result {
		t = append(t, VromTouch{e.DstAddr + uint32(i), w})
	}
	return t
}

// Misc.Touches always reports its vrom write, even for the prover-only
// allocator hints: ProverOnly only exempts an event from the state/PROM
// chain (see commitProverOnly), not from vrom accounting — code that
// later reads an allocator-assigned address still needs this write
// counted as its push onto the vrom channel.
func (e Misc) Touches() []VromTouch {
	return []VromTouch{{e.Dst, e.Value}}
}
