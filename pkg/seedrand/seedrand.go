// Package seedrand provides a small deterministic random generator seeded
// from arbitrary text, so a room built for the same title always comes out
// the same.
package seedrand

import (
	"hash/fnv"
	"math"

	"golang.org/x/text/unicode/norm"
)

// fallbackState replaces a zero xorshift state, which would otherwise stick at zero.
const fallbackState uint32 = 0x9E3779B9

// Hash returns the FNV-1a hash of text in Unicode NFC form, so a title typed
// with combining marks seeds the same room as its precomposed spelling.
func Hash(text string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write(norm.NFC.Bytes([]byte(text)))
	return h.Sum32()
}

// Rand is an xorshift32 generator. It is not safe for concurrent use.
type Rand struct {
	state uint32
}

// New creates a generator from a 32-bit seed.
func New(seed uint32) *Rand {
	if seed == 0 {
		seed = fallbackState
	}
	return &Rand{state: seed}
}

// FromText creates a generator seeded by Hash(text).
func FromText(text string) *Rand {
	return New(Hash(text))
}

// Uint32 returns the next raw 32-bit value.
func (r *Rand) Uint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / (float64(math.MaxUint32) + 1)
}

// Range returns a value in [lo, hi). Swapped bounds are reordered.
func (r *Rand) Range(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// Snap rounds v to the nearest multiple of step. A non-positive step returns v.
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// SnapUp rounds v up to the next multiple of step.
func SnapUp(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step) * step
}
