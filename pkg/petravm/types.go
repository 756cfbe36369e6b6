package petravm

import (
	"github.com/petraprover/petravm/internal/petravm/channel"
	"github.com/petraprover/petravm/internal/petravm/interp"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/trace"
)

// Program is the complete program image the core executes (spec §6):
// PROM contents, frame-size map, and PC-index map. Exported as a type
// alias over isa.Image rather than a redeclared struct, the way the
// teacher aliases FieldElement/Proof/Claim over its internal types.
type Program = isa.Image

// Boundary carries the core's final-state values (spec §4.5): the
// initial-state push is always (1, 0) and need not be carried, but the
// final pc/fp/timestamp the caller observes are run-specific.
type Boundary = trace.Boundary

// Config configures one VM run (max-step bound, debug observer).
type Config = interp.Config

// Observer receives optional per-step debug notifications with no
// semantic effect on execution (spec §6, "Persisted state").
type Observer = interp.Observer

// DefaultConfig returns the default run configuration.
func DefaultConfig() *Config { return interp.DefaultConfig() }

// ImbalanceError reports one canonical channel that failed to balance
// after a run — spec §7 treats this as always a core bug, never a
// recoverable condition, but Result.Validate returns it rather than
// panicking so callers can choose how to react.
type ImbalanceError struct {
	Channel string
	Entries map[string]int64
}

func newImbalanceError(e *channel.ImbalanceError) *ImbalanceError {
	return &ImbalanceError{Channel: e.Channel, Entries: e.Entries}
}

func (e *ImbalanceError) Error() string {
	return (&channel.ImbalanceError{Channel: e.Channel, Entries: e.Entries}).Error()
}
