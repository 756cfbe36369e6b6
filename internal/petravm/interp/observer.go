package interp

import "github.com/petraprover/petravm/internal/petravm/field"

// Observer receives optional debug notifications as the interpreter runs.
// It has no semantic effect on execution.
type Observer interface {
	OnStep(pc field.F32, fp uint32, opcode uint16)
	OnHalt(finalPC field.F32, finalFP uint32)
}

// NoopObserver implements Observer with no-ops; it is the default.
type NoopObserver struct{}

func (NoopObserver) OnStep(field.F32, uint32, uint16) {}
func (NoopObserver) OnHalt(field.F32, uint32)          {}
