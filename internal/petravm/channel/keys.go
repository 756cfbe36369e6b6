package channel

import (
	"fmt"

	"github.com/petraprover/petravm/internal/petravm/field"
)

// StateKey encodes the (PC, FP) tuple the state channel threads through
// consecutive instructions.
func StateKey(pc field.F32, fp uint32) string {
	return fmt.Sprintf("state:%08x:%08x", uint32(pc), fp)
}

// VromKey encodes the (addr, value) tuple the vrom channel threads
// through every VROM read/write.
func VromKey(addr, value uint32) string {
	return fmt.Sprintf("vrom:%08x:%08x", addr, value)
}

// AddrKey encodes the single-address tuple the vrom_addr_space channel
// enumerates.
func AddrKey(addr uint32) string {
	return fmt.Sprintf("addr:%08x", addr)
}

// PromKey encodes a packed instruction record as the prom channel's F128
// tuple. The packing here need only be injective over the fields that
// distinguish instructions (opcode, args, field pc); the concrete
// bit-packing convention used by the constraint layer is a backend
// concern (spec §4.4/§9).
func PromKey(opcode, arg0, arg1, arg2 uint16, fieldPC field.F32) string {
	return fmt.Sprintf("prom:%04x:%04x:%04x:%04x:%08x", opcode, arg0, arg1, arg2, uint32(fieldPC))
}

// RamKey encodes the (addr, value, ts, pc, op) tuple the optional ram
// channel carries.
func RamKey(addr, value, ts uint32, pc field.F32, isWrite bool) string {
	return fmt.Sprintf("ram:%08x:%08x:%08x:%08x:%t", addr, value, ts, uint32(pc), isWrite)
}
