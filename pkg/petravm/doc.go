// Package petravm provides the public API over PetraVM's execution core:
// a deterministic interpreter for a binary-tower-field zero-knowledge
// virtual machine, together with the channel-balance trace its
// arithmetization layer would turn into a constraint system.
//
// # Architecture
//
// - pkg/petravm/: public API (this package)
// - internal/petravm/: private implementation (not importable outside
//   this module)
//
// Implementation details in internal/ can change without breaking the
// public API's Program/Config/VM/Result shapes.
//
// # Quick start
//
//	vm, err := petravm.NewVM(program, initialVROM, petravm.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := vm.Run()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if imbalances := result.Validate(); len(imbalances) > 0 {
//		log.Fatalf("channel imbalance: %v", imbalances[0])
//	}
//
// # Non-goals
//
// This package executes programs and produces the trace a proving
// scheme would consume; it does not generate or verify a zero-knowledge
// proof itself (spec.md's Non-goals exclude the underlying proving
// scheme from this repository's scope).
package petravm
