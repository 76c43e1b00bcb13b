package challenge

// Variant selects which challenge shape the generator produces
type Variant uint8

const (
	// Solo challenges carry an auxiliary card requirement
	Solo Variant = iota
	// Duel challenges only carry targets
	Duel
)

func (v Variant) String() string {
	switch v {
	case Solo:
		return "solo"
	case Duel:
		return "duel"
	default:
		return "unknown"
	}
}

// TargetCount is the number of target slots in every challenge
const TargetCount = 3

// Challenge is one round's target configuration
// Unsolved always equals the open targets plus one while the aux requirement is pending
type Challenge struct {
	Targets    [TargetCount]int
	AuxFlag    int
	AuxPending bool
	Unsolved   int
}

// Decode maps a target value to its display cell (1-3) and segment class (0-2)
// Zero is an empty slot and reports ok=false
func Decode(v int) (position, class int, ok bool) {
	if v < 1 || v > 9 {
		return 0, 0, false
	}
	return (v-1)%3 + 1, (v - 1) / 3, true
}

// Open reports whether v is a still-open target
func (c Challenge) Open(v int) bool {
	if v < 1 || v > 9 {
		return false
	}
	for _, t := range c.Targets {
		if t == v {
			return true
		}
	}
	return false
}

// Clear marks the target equal to v as solved
func (c *Challenge) Clear(v int) bool {
	if v < 1 || v > 9 {
		return false
	}
	for i, t := range c.Targets {
		if t == v {
			c.Targets[i] = 0
			c.Unsolved--
			return true
		}
	}
	return false
}

// ClearAux resolves the pending auxiliary requirement
func (c *Challenge) ClearAux() bool {
	if !c.AuxPending {
		return false
	}
	c.AuxPending = false
	c.Unsolved--
	return true
}

// Done reports whether every sub-challenge is solved
func (c Challenge) Done() bool {
	return c.Unsolved <= 0
}

// OpenTargets counts nonzero target slots
func (c Challenge) OpenTargets() int {
	n := 0
	for _, t := range c.Targets {
		if t != 0 {
			n++
		}
	}
	return n
}

// Consistent checks the unsolved counter against the slots
func (c Challenge) Consistent() bool {
	want := c.OpenTargets()
	if c.AuxPending {
		want++
	}
	return want == c.Unsolved
}

// New builds a challenge from three digits for the given variant
func New(v Variant, d1, d2, d3, auxFlag int) Challenge {
	c := Challenge{Targets: [TargetCount]int{d1, d2, d3}}
	if v == Solo {
		c.AuxFlag = auxFlag
		c.AuxPending = true
	}
	c.Unsolved = c.OpenTargets()
	if c.AuxPending {
		c.Unsolved++
	}
	return c
}
