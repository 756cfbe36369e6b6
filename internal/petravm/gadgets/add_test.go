package gadgets

import "testing"

func TestU32AddU16(t *testing.T) {
	cases := []struct {
		xin     uint32
		yin     uint16
		carryIn bool
	}{
		{0, 0, false},
		{0xffffffff, 1, false},
		{0xffffffff, 0, true},
		{100, 200, true},
		{0xfffffffe, 1, true},
	}
	for _, c := range cases {
		zout, carry := U32AddU16(c.xin, c.yin, c.carryIn)
		want := uint64(c.xin) + uint64(c.yin)
		if c.carryIn {
			want++
		}
		if zout != uint32(want) {
			t.Fatalf("U32AddU16(%#x, %#x, %v) zout = %#x, want %#x", c.xin, c.yin, c.carryIn, zout, uint32(want))
		}
		if carry != (want > 0xffffffff) {
			t.Fatalf("U32AddU16(%#x, %#x, %v) carry = %v, want %v", c.xin, c.yin, c.carryIn, carry, want > 0xffffffff)
		}
	}
}
