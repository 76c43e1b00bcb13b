package challenge

import (
	"math"
	"testing"
)

// TestStepMatchesFirmware verifies the LCG constants against hand-computed values
func TestStepMatchesFirmware(t *testing.T) {
	cases := []struct {
		in, want uint32
	}{
		{0, 12345},
		{1, 1103527590},
		{2, 59559187},
		{6, 178652871},
		{7, 1282168116},
	}
	for _, c := range cases {
		if got := step(c.in); got != c.want {
			t.Errorf("step(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

// TestSeedTruncatesHundredths verifies exact scaling of sensor readings
func TestSeedTruncatesHundredths(t *testing.T) {
	if got := Seed(23.45, 41.2); got != 2345+4120 {
		t.Errorf("Seed(23.45, 41.2) = %d, want %d", got, 2345+4120)
	}
	if got := Seed(0.07, 0); got != 7 {
		t.Errorf("Seed(0.07, 0) = %d, want 7", got)
	}
	if got := Seed(-1.239, 0); got != -123 {
		t.Errorf("Seed(-1.239, 0) = %d, want -123", got)
	}
	if got := Seed(math.NaN(), math.Inf(1)); got != 0 {
		t.Errorf("non-finite readings should seed 0, got %d", got)
	}
}

// TestGenerateDuelFromZeroSeed checks the first draw of a fresh generator
func TestGenerateDuelFromZeroSeed(t *testing.T) {
	g := NewGenerator()
	c := g.Generate(Duel, 0, 0)

	// step(0) = 12345 -> 345
	if c.Targets != [3]int{3, 4, 5} {
		t.Fatalf("expected targets 3,4,5 got %v", c.Targets)
	}
	if c.AuxPending {
		t.Error("duel challenge must not carry an aux requirement")
	}
	if c.Unsolved != 3 {
		t.Errorf("expected unsolved 3, got %d", c.Unsolved)
	}
	if g.Redraws() != 0 {
		t.Errorf("expected no redraws, got %d", g.Redraws())
	}
}

// TestGenerateSoloCountsAux checks the aux flag and unsolved counter of solo draws
func TestGenerateSoloCountsAux(t *testing.T) {
	g := NewGenerator()
	// seed 1 -> 1103527590 -> 590
	c := g.Generate(Solo, 0.01, 0)

	if c.Targets != [3]int{5, 9, 0} {
		t.Fatalf("expected targets 5,9,0 got %v", c.Targets)
	}
	if !c.AuxPending || c.AuxFlag != 0 {
		t.Errorf("expected pending aux flag 0, got pending=%v flag=%d", c.AuxPending, c.AuxFlag)
	}
	if c.Unsolved != 3 {
		t.Errorf("expected unsolved 1+2=3, got %d", c.Unsolved)
	}
	if !c.Consistent() {
		t.Error("challenge counter inconsistent")
	}
}

// TestGenerateRedrawsOnCollision uses seed 7 whose first draw is 116
func TestGenerateRedrawsOnCollision(t *testing.T) {
	g := NewGenerator()
	c := g.Generate(Duel, 0.07, 0)

	if g.Redraws() < 1 {
		t.Errorf("expected at least one redraw, got %d", g.Redraws())
	}
	if !distinctDigits(c.Targets) {
		t.Errorf("digits not distinct: %v", c.Targets)
	}
}

// TestGenerateCapPerturbs forces the cap and checks the fallback still yields distinct digits
func TestGenerateCapPerturbs(t *testing.T) {
	g := NewGenerator(WithMaxRedraws(0))
	c := g.Generate(Duel, 0.07, 0)

	if !g.Perturbed() {
		t.Fatal("expected generator to fall back to perturbation")
	}
	// 116 -> 1,0,6
	if c.Targets != [3]int{1, 0, 6} {
		t.Errorf("expected perturbed targets 1,0,6 got %v", c.Targets)
	}
	if c.Unsolved != 2 {
		t.Errorf("expected unsolved 2, got %d", c.Unsolved)
	}
}

// TestPerturb covers every collision shape
func TestPerturb(t *testing.T) {
	cases := []struct {
		in, want [3]int
	}{
		{[3]int{1, 1, 6}, [3]int{1, 0, 6}},
		{[3]int{0, 0, 0}, [3]int{0, 1, 2}},
		{[3]int{4, 2, 4}, [3]int{4, 2, 0}},
		{[3]int{0, 3, 3}, [3]int{0, 3, 1}},
		{[3]int{7, 8, 9}, [3]int{7, 8, 9}},
	}
	for _, c := range cases {
		if got := perturb(c.in); got != c.want {
			t.Errorf("perturb(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestGenerateDistinctProperty sweeps many seeds for both variants
func TestGenerateDistinctProperty(t *testing.T) {
	for _, v := range []Variant{Solo, Duel} {
		g := NewGenerator()
		for i := 0; i < 5000; i++ {
			temp := float64(i%400)/10 - 5
			humi := float64(i*7%1000) / 10
			c := g.Generate(v, temp, humi)

			for _, d := range c.Targets {
				if d < 0 || d > 9 {
					t.Fatalf("%s seed %d: digit out of range %v", v, i, c.Targets)
				}
			}
			if !distinctDigits(c.Targets) {
				t.Fatalf("%s seed %d: digits not distinct %v", v, i, c.Targets)
			}
			if !c.Consistent() {
				t.Fatalf("%s seed %d: inconsistent counter %+v", v, i, c)
			}
			if c.AuxFlag != 0 && c.AuxFlag != 1 {
				t.Fatalf("%s seed %d: aux flag %d", v, i, c.AuxFlag)
			}
		}
	}
}

// TestGenerateIgnoresHistory verifies a used generator matches a fresh one on the same reading
func TestGenerateIgnoresHistory(t *testing.T) {
	g := NewGenerator()
	first := g.Generate(Duel, 23.45, 51.2)
	for i := 0; i < 20; i++ {
		g.Generate(Solo, float64(i), 33)
	}
	again := g.Generate(Duel, 23.45, 51.2)
	fresh := NewGenerator().Generate(Duel, 23.45, 51.2)

	if first != again || again != fresh {
		t.Errorf("same reading gave %v, %v and fresh %v", first.Targets, again.Targets, fresh.Targets)
	}
}

// TestGenerateDeterministic verifies two generators agree on the same reading sequence
func TestGenerateDeterministic(t *testing.T) {
	a, b := NewGenerator(), NewGenerator()
	for i := 0; i < 100; i++ {
		ca := a.Generate(Solo, float64(i), 50)
		cb := b.Generate(Solo, float64(i), 50)
		if ca != cb {
			t.Fatalf("draw %d diverged: %+v vs %+v", i, ca, cb)
		}
	}
}
