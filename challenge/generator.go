package challenge

import (
	"math"

	"github.com/shopspring/decimal"
)

// LCG parameters shared with the board firmware
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7fffffff

	// DefaultMaxRedraws caps the rejection loop before the digits are perturbed
	DefaultMaxRedraws = 64
)

var hundred = decimal.NewFromInt(100)

// Generator produces challenges from noisy sensor readings
// It only keeps the redraw statistics of the last call; not safe for concurrent use
type Generator struct {
	maxRedraws int
	redraws    int
	perturbed  bool
}

// Option configures a Generator
type Option func(*Generator)

// WithMaxRedraws sets the redraw cap, negative values fall back to the default
func WithMaxRedraws(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.maxRedraws = n
		}
	}
}

// NewGenerator creates a generator
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{maxRedraws: DefaultMaxRedraws}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed combines two readings into the integer seed, truncating each to hundredths
// Non-finite readings count as zero
func Seed(temp, humi float64) int64 {
	return scaled(temp) + scaled(humi)
}

func scaled(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return decimal.NewFromFloat(f).Mul(hundred).IntPart()
}

// step advances the LCG once with 32-bit wrapping arithmetic
func step(state uint32) uint32 {
	return (state*lcgMultiplier + lcgIncrement) & lcgMask
}

// Generate draws a challenge for variant v, reseeding from the readings on every call
// Equal readings always give the same challenge
func (g *Generator) Generate(v Variant, temp, humi float64) Challenge {
	g.redraws = 0
	g.perturbed = false

	state := step(uint32(Seed(temp, humi)))
	draw := int(state % 1000)
	d := digits(draw)
	for !distinctDigits(d) {
		if g.redraws >= g.maxRedraws {
			d = perturb(d)
			g.perturbed = true
			break
		}
		state = step(state)
		draw = int(state % 1000)
		d = digits(draw)
		g.redraws++
	}

	return New(v, d[0], d[1], d[2], draw%2)
}

// Redraws reports how many redraws the last Generate call needed
func (g *Generator) Redraws() int {
	return g.redraws
}

// Perturbed reports whether the last Generate call hit the redraw cap
func (g *Generator) Perturbed() bool {
	return g.perturbed
}

func digits(n int) [TargetCount]int {
	return [TargetCount]int{n / 100, n / 10 % 10, n % 10}
}

func distinctDigits(d [TargetCount]int) bool {
	return d[0] != d[1] && d[0] != d[2] && d[1] != d[2]
}

// perturb replaces every repeated digit with the smallest unused one
func perturb(d [TargetCount]int) [TargetCount]int {
	var used [10]bool
	for i, v := range d {
		if !used[v] {
			used[v] = true
			continue
		}
		for r := 0; r < 10; r++ {
			if !used[r] {
				d[i] = r
				used[r] = true
				break
			}
		}
	}
	return d
}
