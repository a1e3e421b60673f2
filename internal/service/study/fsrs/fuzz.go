package fsrs

import (
	"math"
	"strconv"
	"time"
)

// fuzzBand is a tier of the 3-tier fuzz system.
type fuzzBand struct {
	start  float64
	end    float64
	factor float64
}

var fuzzBands = []fuzzBand{
	{start: 2.5, end: 7.0, factor: 0.15},
	{start: 7.0, end: 20.0, factor: 0.10},
	{start: 20.0, end: math.Inf(1), factor: 0.05},
}

// FuzzRange returns the inclusive bounds a fuzzed interval is drawn from.
func FuzzRange(interval float64, elapsedDays, maximumInterval int) (minIvl, maxIvl int) {
	delta := 1.0
	for _, b := range fuzzBands {
		delta += b.factor * math.Max(math.Min(interval, b.end)-b.start, 0.0)
	}

	interval = math.Min(interval, float64(maximumInterval))
	minIvl = max(2, int(math.Round(interval-delta)))
	maxIvl = min(int(math.Round(interval+delta)), maximumInterval)

	if interval > float64(elapsedDays) {
		minIvl = max(minIvl, elapsedDays+1)
	}
	minIvl = min(minIvl, maxIvl)

	return minIvl, maxIvl
}

// Fuzzer spreads intervals deterministically: the same seed always yields
// the same fuzzed interval.
type Fuzzer struct {
	Seed            string
	Enabled         bool
	MaximumInterval int
}

// Apply fuzzes a whole-day interval. Intervals below 2.5 days and disabled
// fuzzers return the rounded interval unchanged.
func (f Fuzzer) Apply(interval float64, elapsedDays int) int {
	if !f.Enabled || interval < 2.5 {
		return int(math.Round(interval))
	}

	factor := newAlea(f.Seed).next()
	minIvl, maxIvl := FuzzRange(interval, elapsedDays, f.MaximumInterval)
	return int(math.Floor(factor*float64(maxIvl-minIvl+1))) + minIvl
}

// Seed builds the default fuzz seed from the review time, the review count
// after the review and the card's memory state.
func Seed(review time.Time, reps int, difficulty, stability float64) string {
	return strconv.FormatInt(review.UnixMilli(), 10) + "_" +
		strconv.Itoa(reps) + "_" +
		strconv.FormatFloat(difficulty*stability, 'f', -1, 64)
}

const twoPow32 = 4294967296.0

// alea is the Alea PRNG by Johannes Baagøe. It is seeded from a string so a
// seed produces the same sequence on every platform.
type alea struct {
	s0, s1, s2, c float64
}

func newAlea(seed string) *alea {
	m := &masher{n: 0xefc8249d}
	a := &alea{c: 1}
	a.s0 = m.mash(" ")
	a.s1 = m.mash(" ")
	a.s2 = m.mash(" ")

	a.s0 -= m.mash(seed)
	if a.s0 < 0 {
		a.s0++
	}
	a.s1 -= m.mash(seed)
	if a.s1 < 0 {
		a.s1++
	}
	a.s2 -= m.mash(seed)
	if a.s2 < 0 {
		a.s2++
	}
	return a
}

// next returns a value in [0, 1).
func (a *alea) next() float64 {
	t := 2091639*a.s0 + a.c/twoPow32
	a.s0 = a.s1
	a.s1 = a.s2
	a.c = math.Trunc(t)
	a.s2 = t - a.c
	return a.s2
}

type masher struct {
	n float64
}

func (m *masher) mash(data string) float64 {
	for i := 0; i < len(data); i++ {
		m.n += float64(data[i])
		h := 0.02519603282416938 * m.n
		m.n = toUint32(h)
		h -= m.n
		h *= m.n
		m.n = toUint32(h)
		h -= m.n
		m.n += h * twoPow32
	}
	return toUint32(m.n) / twoPow32
}

// toUint32 mirrors the unsigned 32-bit truncation of a non-negative value.
func toUint32(v float64) float64 {
	return float64(uint32(uint64(v)))
}
