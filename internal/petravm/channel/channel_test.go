package channel

import "testing"

func TestPushPullBalances(t *testing.T) {
	c := New("test")
	c.Push(AddrKey(5))
	if c.Balanced() {
		t.Fatalf("channel with an unmatched push should be unbalanced")
	}
	c.Pull(AddrKey(5))
	if !c.Balanced() {
		t.Fatalf("channel should balance after matching pull")
	}
}

func TestPullWithoutPushIsImbalance(t *testing.T) {
	c := New("test")
	c.Pull(AddrKey(1))
	if c.Balanced() {
		t.Fatalf("an unmatched pull must leave the channel unbalanced")
	}
}

func TestModelValidateEmpty(t *testing.T) {
	m := NewModel()
	if errs := m.Validate(); len(errs) != 0 {
		t.Fatalf("empty model should validate clean, got %v", errs)
	}
}

func TestModelValidateReportsEachUnbalancedChannel(t *testing.T) {
	m := NewModel()
	m.State.Push(StateKey(1, 0))
	m.Prom.Pull(PromKey(0, 0, 0, 0, 0))
	errs := m.Validate()
	if len(errs) != 2 {
		t.Fatalf("expected 2 unbalanced channels, got %d: %v", len(errs), errs)
	}
}
