package field

import "testing"

func TestAddIsXor(t *testing.T) {
	a, b := F32(0xDEADBEEF), F32(0x12345678)
	if got, want := a.Add(b), F32(uint32(a)^uint32(b)); got != want {
		t.Fatalf("Add = %v, want %v", got, want)
	}
	if a.Add(b) != a.Sub(b) {
		t.Fatalf("Add and Sub disagree in characteristic 2")
	}
}

func TestMulIdentity(t *testing.T) {
	a := F32(12345)
	if got := a.Mul(One); got != a {
		t.Fatalf("a*1 = %v, want %v", got, a)
	}
	if got := a.Mul(Zero); got != Zero {
		t.Fatalf("a*0 = %v, want 0", got)
	}
}

func TestMulCommutative(t *testing.T) {
	a, b := F32(0x1234), F32(0xABCD)
	if a.Mul(b) != b.Mul(a) {
		t.Fatalf("multiplication not commutative")
	}
}

func TestInv(t *testing.T) {
	a := F32(42)
	inv := a.Inv()
	if got := a.Mul(inv); got != One {
		t.Fatalf("a * a^-1 = %v, want 1", got)
	}
}

func TestGeneratorNonZero(t *testing.T) {
	if Generator.IsZero() {
		t.Fatalf("generator must be nonzero")
	}
	// G^1 != G^2 (generator isn't order-1)
	if Generator.Pow(1) == Generator.Pow(2) {
		t.Fatalf("generator appears to have trivial order")
	}
}

// TestGeneratorHasFullOrder checks Generator actually generates all of
// F32*: 2^32-1 = 3 * 5 * 17 * 257 * 65537, so an element has order 2^32-1
// iff raising it to (2^32-1)/p lands on anything but One, for every prime
// factor p. A generator stuck in a proper subfield (e.g. order 15, 255, or
// 65535) would fail this even though it passes the weaker G^1 != G^2 check
// above.
func TestGeneratorHasFullOrder(t *testing.T) {
	const order = uint32(0xFFFFFFFF) // 2^32 - 1
	factors := []uint32{3, 5, 17, 257, 65537}
	for _, p := range factors {
		if got := Generator.Pow(order / p); got == One {
			t.Fatalf("Generator^((2^32-1)/%d) = 1, generator's order divides (2^32-1)/%d, not the full group", p, p)
		}
	}
	if got := Generator.Pow(order); got != One {
		t.Fatalf("Generator^(2^32-1) = %v, want 1", got)
	}
}

func TestF128AddIsXor(t *testing.T) {
	a := F128{Lo: 0x1111111111111111, Hi: 0x2222222222222222}
	b := F128{Lo: 0x3333333333333333, Hi: 0x4444444444444444}
	got := a.Add(b)
	want := F128{Lo: a.Lo ^ b.Lo, Hi: a.Hi ^ b.Hi}
	if got != want {
		t.Fatalf("F128 Add = %+v, want %+v", got, want)
	}
}

func TestF128MulIdentity(t *testing.T) {
	a := F128{Lo: 0xABCDEF, Hi: 0x123456}
	if got := a.Mul(OneF128); got != a {
		t.Fatalf("a*1 = %+v, want %+v", got, a)
	}
	if got := a.Mul(ZeroF128); got != ZeroF128 {
		t.Fatalf("a*0 = %+v, want zero", got)
	}
}

func TestWordsRoundTrip(t *testing.T) {
	w0, w1, w2, w3 := uint32(1), uint32(2), uint32(3), uint32(4)
	f := FromWords(w0, w1, w2, w3)
	got := f.ToWords()
	want := [4]uint32{w0, w1, w2, w3}
	if got != want {
		t.Fatalf("round trip = %v, want %v", got, want)
	}
}
