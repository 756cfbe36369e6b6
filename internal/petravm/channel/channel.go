// Package channel implements PetraVM's channel model: the algebraic
// accounting device linking the interpreter to the proof system (spec
// §4.3). A channel is an abstract, order-insensitive multiset of
// field-tuple keys; push increments a key's multiplicity, pull decrements
// it, and a channel is balanced iff every multiplicity is zero once all
// events and boundary conditions have been applied.
//
// This is a "keep HOW, replace WHAT" generalization of the teacher's
// cross-table-argument running-product machinery
// (PermutationArgumentComputer / EvaluationArgumentComputer): PetraVM's
// channels are additive multiset counters, not multiplicative running
// products over a Fiat-Shamir challenge, because the channel-balance
// check here is a pre-proof sanity check (spec §4.5), not the soundness
// argument itself (see DESIGN.md, "Open Questions").
package channel

import "fmt"

// Channel is an additive multiset over string-encoded tuple keys.
type Channel struct {
	Name   string
	counts map[string]int64
}

// New creates an empty, named channel.
func New(name string) *Channel {
	return &Channel{Name: name, counts: make(map[string]int64)}
}

// Push increments key's multiplicity.
func (c *Channel) Push(key string) {
	c.counts[key]++
	if c.counts[key] == 0 {
		delete(c.counts, key)
	}
}

// Pull decrements key's multiplicity. A key with no matching push becomes
// negative, which is precisely the imbalance the validate pre-check
// reports.
func (c *Channel) Pull(key string) {
	c.counts[key]--
	if c.counts[key] == 0 {
		delete(c.counts, key)
	}
}

// Balanced reports whether every key in the channel currently has
// multiplicity zero.
func (c *Channel) Balanced() bool { return len(c.counts) == 0 }

// Imbalances returns a defensive copy of every key with nonzero
// multiplicity, for diagnostics.
func (c *Channel) Imbalances() map[string]int64 {
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// ImbalanceError is returned by Model.Validate when one or more channels
// fail to balance. The validate pre-check is not tolerant of this: spec
// §7 says such imbalance is always a core bug, so callers are expected to
// panic on it rather than recover, but the error type itself carries
// enough detail to do either.
type ImbalanceError struct {
	Channel string
	Entries map[string]int64
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("channel %q imbalanced: %d distinct unmatched keys", e.Channel, len(e.Entries))
}
