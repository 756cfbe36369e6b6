package memory

import "github.com/petraprover/petravm/internal/petravm/field"

// AccessRecord is one entry of RAM's access log: the witness material for
// RAM's consistency argument (spec §3, §4.3).
type AccessRecord struct {
	Addr      uint32
	Value     uint32
	Timestamp uint32
	PC        field.F32
	IsWrite   bool
	Width     int // 1, 2, or 4 bytes
}

// RAM is conventional byte-addressed read/write memory with natural
// alignment requirements on halfword/word accesses and an append-only
// access log.
type RAM struct {
	mem map[uint32]byte
	log []AccessRecord
}

// NewRAM creates an empty, zero-initialized RAM.
func NewRAM() *RAM {
	return &RAM{mem: make(map[uint32]byte)}
}

func (r *RAM) getByte(addr uint32) byte { return r.mem[addr] }

func (r *RAM) checkAlign(addr uint32, width int) error {
	if width == 1 {
		return nil
	}
	if addr%uint32(width) != 0 {
		return &Error{Kind: RamMisaligned, Addr: addr, Message: "RAM access width requires natural alignment"}
	}
	return nil
}

func (r *RAM) readN(addr uint32, width int, ts uint32, pc field.F32) (uint32, error) {
	if err := r.checkAlign(addr, width); err != nil {
		return 0, err
	}
	var val uint32
	for i := 0; i < width; i++ {
		val |= uint32(r.getByte(addr+uint32(i))) << (8 * i)
	}
	r.log = append(r.log, AccessRecord{Addr: addr, Value: val, Timestamp: ts, PC: pc, IsWrite: false, Width: width})
	return val, nil
}

func (r *RAM) writeN(addr uint32, val uint32, width int, ts uint32, pc field.F32) error {
	if err := r.checkAlign(addr, width); err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		r.mem[addr+uint32(i)] = byte(val >> (8 * i))
	}
	r.log = append(r.log, AccessRecord{Addr: addr, Value: val, Timestamp: ts, PC: pc, IsWrite: true, Width: width})
	return nil
}

// ReadByte, ReadHalf, ReadWord read 1/2/4 bytes at addr, little-endian,
// logging the access under the given timestamp and issuing PC.
func (r *RAM) ReadByte(addr, ts uint32, pc field.F32) (uint32, error) { return r.readN(addr, 1, ts, pc) }
func (r *RAM) ReadHalf(addr, ts uint32, pc field.F32) (uint32, error) { return r.readN(addr, 2, ts, pc) }
func (r *RAM) ReadWord(addr, ts uint32, pc field.F32) (uint32, error) { return r.readN(addr, 4, ts, pc) }

// WriteByte, WriteHalf, WriteWord write 1/2/4 bytes at addr, little-endian.
func (r *RAM) WriteByte(addr, val, ts uint32, pc field.F32) error {
	return r.writeN(addr, val, 1, ts, pc)
}
func (r *RAM) WriteHalf(addr, val, ts uint32, pc field.F32) error {
	return r.writeN(addr, val, 2, ts, pc)
}
func (r *RAM) WriteWord(addr, val, ts uint32, pc field.F32) error {
	return r.writeN(addr, val, 4, ts, pc)
}

// Log returns the full, append-only access log.
func (r *RAM) Log() []AccessRecord { return r.log }

// Snapshot returns a defensive copy of the current byte-addressed memory.
func (r *RAM) Snapshot() map[uint32]byte {
	out := make(map[uint32]byte, len(r.mem))
	for a, b := range r.mem {
		out[a] = b
	}
	return out
}
