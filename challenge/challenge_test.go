package challenge

import "testing"

func TestDecode(t *testing.T) {
	cases := []struct {
		v, pos, class int
	}{
		{1, 1, 0}, {2, 2, 0}, {3, 3, 0},
		{4, 1, 1}, {5, 2, 1}, {6, 3, 1},
		{7, 1, 2}, {8, 2, 2}, {9, 3, 2},
	}
	for _, c := range cases {
		pos, class, ok := Decode(c.v)
		if !ok || pos != c.pos || class != c.class {
			t.Errorf("Decode(%d) = (%d,%d,%v), want (%d,%d,true)", c.v, pos, class, ok, c.pos, c.class)
		}
	}
	if _, _, ok := Decode(0); ok {
		t.Error("Decode(0) must report an empty slot")
	}
	if _, _, ok := Decode(10); ok {
		t.Error("Decode(10) must be rejected")
	}
}

// TestClearTargets walks a solo challenge to completion
func TestClearTargets(t *testing.T) {
	c := New(Solo, 1, 5, 9, 1)
	if c.Unsolved != 4 {
		t.Fatalf("expected 4 unsolved, got %d", c.Unsolved)
	}

	if !c.Clear(1) {
		t.Fatal("clearing open target 1 failed")
	}
	if c.Clear(1) {
		t.Error("target 1 cleared twice")
	}
	if c.Clear(0) {
		t.Error("empty slot must never be clearable")
	}
	if c.Open(1) || !c.Open(5) {
		t.Error("open state wrong after clear")
	}
	c.Clear(5)
	c.Clear(9)
	if c.Done() {
		t.Error("aux still pending, challenge must not be done")
	}
	if !c.ClearAux() || c.ClearAux() {
		t.Error("aux should clear exactly once")
	}
	if !c.Done() || !c.Consistent() {
		t.Errorf("expected done and consistent, got %+v", c)
	}
}

func TestNewDuelWithZeroSlot(t *testing.T) {
	c := New(Duel, 0, 4, 7, 1)
	if c.AuxPending || c.AuxFlag != 0 {
		t.Error("duel variant must drop the aux flag")
	}
	if c.Unsolved != 2 {
		t.Errorf("expected 2 unsolved, got %d", c.Unsolved)
	}
}
