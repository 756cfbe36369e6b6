// Package debug provides a debug Observer implementation that prints a
// sha3 content fingerprint of the program image and final VROM state,
// grounded on internal/vybium-starks-vm/utils/channel.go's Channel.hash
// (the teacher's own Fiat-Shamir transcript already reaches for
// golang.org/x/crypto/sha3 to fold data into a running state). Unlike the
// teacher's Channel, nothing here feeds back into execution or proving:
// the fingerprint is printed for a human to compare across runs, never
// consulted by the interpreter.
package debug

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/petraprover/petravm/internal/petravm/field"
	"github.com/petraprover/petravm/internal/petravm/isa"
	"github.com/petraprover/petravm/internal/petravm/memory"
)

// FingerprintObserver folds every step's (pc, fp, opcode) into a running
// sha3-256 state, the same way Channel.Send folds transcript data into
// its state, then on halt mixes in the final VROM snapshot and writes a
// hex fingerprint to w. It implements interp.Observer structurally,
// without importing interp (debug sits below interp in the dependency
// graph; the core never depends on its own debug tooling).
type FingerprintObserver struct {
	w     io.Writer
	vrom  *memory.VROM
	state [32]byte
	steps uint64
}

// NewFingerprintObserver seeds the running state from the program image's
// PROM contents, so two runs of different programs never collide on an
// empty starting state.
func NewFingerprintObserver(w io.Writer, image *isa.Image, vrom *memory.VROM) *FingerprintObserver {
	o := &FingerprintObserver{w: w, vrom: vrom}
	o.state = sha3.Sum256(promBytes(image))
	return o
}

// OnStep folds the step's (pc, fp, opcode) into the running state.
func (o *FingerprintObserver) OnStep(pc field.F32, fp uint32, opcode uint16) {
	buf := make([]byte, 0, len(o.state)+10)
	buf = append(buf, o.state[:]...)
	buf = appendU32(buf, uint32(pc))
	buf = appendU32(buf, fp)
	buf = append(buf, byte(opcode), byte(opcode>>8))
	o.state = sha3.Sum256(buf)
	o.steps++
}

// OnHalt mixes in the final VROM snapshot and writes the resulting
// fingerprint, along with the step count, to w.
func (o *FingerprintObserver) OnHalt(finalPC field.F32, finalFP uint32) {
	buf := append([]byte(nil), o.state[:]...)
	buf = appendU32(buf, uint32(finalPC))
	buf = appendU32(buf, finalFP)
	buf = append(buf, vromBytes(o.vrom)...)
	final := sha3.Sum256(buf)

	fmt.Fprintf(o.w, "petravm debug: fingerprint=%s steps=%d final_pc=%v final_fp=%d\n",
		hex.EncodeToString(final[:]), o.steps, finalPC, finalFP)
}

func promBytes(image *isa.Image) []byte {
	if image == nil || image.PROM == nil {
		return nil
	}
	var buf []byte
	for _, rec := range image.PROM.Records() {
		buf = append(buf, byte(rec.Opcode), byte(rec.Opcode>>8))
		buf = appendU16(buf, rec.Arg0)
		buf = appendU16(buf, rec.Arg1)
		buf = appendU16(buf, rec.Arg2)
		buf = appendU32(buf, uint32(rec.FieldPC))
	}
	return buf
}

// vromBytes serializes the VROM's written addresses in sorted order, so
// the fingerprint is deterministic regardless of WrittenAddrs' iteration
// order (it walks an unordered map internally).
func vromBytes(vrom *memory.VROM) []byte {
	if vrom == nil {
		return nil
	}
	addrs := vrom.WrittenAddrs()
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	snap := vrom.Snapshot()
	buf := make([]byte, 0, len(addrs)*8)
	for _, a := range addrs {
		buf = appendU32(buf, a)
		buf = appendU32(buf, snap[a])
	}
	return buf
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendU16(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}
