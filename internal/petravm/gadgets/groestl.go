package gadgets

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// GroestlDigest derives a words-length digest from src1||src2 via
// SHAKE256. Used by both the interpreter (interp/ops_groestl.go) and
// the Groestl constraint table as the shared definition of
// GROESTL_COMPRESS/GROESTL_OUTPUT's result, so both sides check the
// same identity (see DESIGN.md's entry on the sha3 stand-in).
func GroestlDigest(src1, src2 []uint32, words int) []uint32 {
	buf := make([]byte, 0, (len(src1)+len(src2))*4)
	for _, w := range src1 {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	for _, w := range src2 {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}

	h := sha3.NewShake256()
	h.Write(buf)
	out := make([]byte, words*4)
	h.Read(out)

	result := make([]uint32, words)
	for k := 0; k < words; k++ {
		result[k] = binary.LittleEndian.Uint32(out[k*4 : k*4+4])
	}
	return result
}
