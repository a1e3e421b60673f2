// Package fsrs implements the FSRS-6 spaced repetition algorithm and the
// schedulers built on top of it.
package fsrs

import (
	"fmt"
	"math"
	"slices"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

// MemoryState is the (stability, difficulty) pair the model tracks per card.
type MemoryState struct {
	Stability  float64
	Difficulty float64
}

// Model holds validated parameters plus the values derived from them.
// A Model is immutable; Update returns a new one.
type Model struct {
	params           Parameters
	decay            float64
	factor           float64
	intervalModifier float64
}

// NewModel validates params and derives the forgetting-curve constants.
func NewModel(params Parameters) (*Model, error) {
	p, err := UpdateParameters(params, PartialParameters{})
	if err != nil {
		return nil, err
	}

	decay, factor := curveConstants(p.W[20])
	im, err := IntervalModifier(p.RequestRetention, decay)
	if err != nil {
		return nil, err
	}

	return &Model{
		params:           p,
		decay:            decay,
		factor:           factor,
		intervalModifier: im,
	}, nil
}

// Update returns a model with patch applied. Derived values are recomputed.
func (m *Model) Update(patch PartialParameters) (*Model, error) {
	p, err := UpdateParameters(m.params, patch)
	if err != nil {
		return nil, err
	}
	return NewModel(p)
}

// Parameters returns a copy of the model parameters.
func (m *Model) Parameters() Parameters {
	p := m.params
	p.LearningSteps = slices.Clone(m.params.LearningSteps)
	p.RelearningSteps = slices.Clone(m.params.RelearningSteps)
	return p
}

func (m *Model) Decay() float64            { return m.decay }
func (m *Model) IntervalModifier() float64 { return m.intervalModifier }

// curveConstants derives the power-curve constants from w[20].
//
//	decay  = -w20
//	factor = 0.9^(1/decay) - 1
func curveConstants(w20 float64) (decay, factor float64) {
	decay = -w20
	factor = math.Exp(math.Log(0.9)/decay) - 1
	return decay, factor
}

// IntervalModifier converts a target retention into the multiplier applied
// to stability when computing intervals.
//
//	I(r) = (r^(1/decay) - 1) / factor
func IntervalModifier(requestRetention, decay float64) (float64, error) {
	if requestRetention <= 0 || requestRetention > 1 {
		return 0, fmt.Errorf("%w: request retention must be in (0, 1], got %v", domain.ErrInvalidParameter, requestRetention)
	}
	factor := math.Exp(math.Log(0.9)/decay) - 1
	return roundTo((math.Pow(requestRetention, 1/decay)-1)/factor, 8), nil
}

// ForgettingCurve returns the probability of recall after elapsedDays for
// the given stability and decay.
//
//	R(t, S) = (1 + factor * t / S)^decay
func ForgettingCurve(decay, elapsedDays, stability float64) float64 {
	factor := math.Exp(math.Log(0.9)/decay) - 1
	return roundTo(math.Pow(1+factor*elapsedDays/stability, decay), 8)
}

// ForgettingCurve evaluates the curve with the model's decay.
func (m *Model) ForgettingCurve(elapsedDays, stability float64) float64 {
	return roundTo(math.Pow(1+m.factor*elapsedDays/stability, m.decay), 8)
}

// InitStability returns the starting stability for a first rating.
//
//	S0(G) = max(w[G-1], 0.1)
func (m *Model) InitStability(r Rating) float64 {
	return math.Max(m.params.W[int(r)-1], 0.1)
}

// InitDifficulty returns the starting difficulty for a first rating.
//
//	D0(G) = w4 - e^(w5 * (G - 1)) + 1, clamped to [1, 10]
func (m *Model) InitDifficulty(r Rating) float64 {
	return clampDifficulty(m.rawInitDifficulty(r))
}

// rawInitDifficulty is D0 before clamping. Mean reversion targets the raw
// value for Easy, matching the FSRS-6 reference implementation (ts-fsrs and
// py-fsrs), not the clamped D0(Easy).
func (m *Model) rawInitDifficulty(r Rating) float64 {
	return roundTo(m.params.W[4]-math.Exp((float64(r)-1)*m.params.W[5])+1, 8)
}

// NextDifficulty calculates the new difficulty after a review.
//
//	delta = -w6 * (G - 3)
//	D'    = D + delta * (10 - D) / 9
//	D''   = w7 * D0(Easy) + (1 - w7) * D'
//	clamped to [1, 10]
func (m *Model) NextDifficulty(d float64, r Rating) float64 {
	delta := -m.params.W[6] * (float64(r) - 3)
	next := d + linearDamping(delta, d)
	return clampDifficulty(m.meanReversion(m.rawInitDifficulty(Easy), next))
}

func linearDamping(delta, d float64) float64 {
	return roundTo(delta*(10-d)/9, 8)
}

func (m *Model) meanReversion(init, current float64) float64 {
	w7 := m.params.W[7]
	return roundTo(w7*init+(1-w7)*current, 8)
}

// NextRecallStability calculates post-recall stability (Hard, Good, Easy).
//
//	S'r = S * (1 + e^w8 * (11 - D) * S^(-w9) * (e^(w10*(1-R)) - 1) * hardPenalty * easyBonus)
func (m *Model) NextRecallStability(d, s, r float64, rating Rating) float64 {
	w := m.params.W
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = w[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = w[16]
	}

	next := s * (1 + math.Exp(w[8])*
		(11-d)*
		math.Pow(s, -w[9])*
		(math.Exp((1-r)*w[10])-1)*
		hardPenalty*
		easyBonus)
	return clamp(roundTo(next, 8), SMin, SMax)
}

// NextForgetStability calculates post-lapse stability.
//
//	S'f = w11 * D^(-w12) * ((S+1)^w13 - 1) * e^(w14*(1-R))
func (m *Model) NextForgetStability(d, s, r float64) float64 {
	w := m.params.W
	next := w[11] *
		math.Pow(d, -w[12]) *
		(math.Pow(s+1, w[13]) - 1) *
		math.Exp((1-r)*w[14])
	return clamp(roundTo(next, 8), SMin, SMax)
}

// NextShortTermStability calculates stability for same-day reviews.
//
//	sinc = S^(-w19) * e^(w17 * (G - 3 + w18)), at least 1 for Good and Easy
//	S'   = S * sinc
func (m *Model) NextShortTermStability(s float64, rating Rating) float64 {
	w := m.params.W
	sinc := math.Pow(s, -w[19]) * math.Exp(w[17]*(float64(rating)-3+w[18]))
	if rating >= Good {
		sinc = math.Max(sinc, 1)
	}
	return clamp(roundTo(s*sinc, 8), SMin, SMax)
}

// againStability is the post-lapse stability capped by S / e^(w17*w18).
func (m *Model) againStability(s, forget float64) float64 {
	w17, w18 := 0.0, 0.0
	if m.params.EnableShortTerm {
		w17, w18 = m.params.W[17], m.params.W[18]
	}
	sMin := roundTo(s/math.Exp(w17*w18), 8)
	return clamp(sMin, SMin, forget)
}

// NextState computes the memory state after a review. A nil (or all-zero)
// previous state yields the initial state for the rating.
func (m *Model) NextState(prev *MemoryState, elapsedDays int, rating Rating) (MemoryState, error) {
	if rating < Manual || rating > Easy {
		return MemoryState{}, fmt.Errorf("%w: %d", domain.ErrInvalidGrade, rating)
	}
	if elapsedDays < 0 {
		return MemoryState{}, fmt.Errorf("%w: %d", domain.ErrInvalidElapsedDays, elapsedDays)
	}

	if prev == nil || (prev.Difficulty == 0 && prev.Stability == 0) {
		if rating == Manual {
			return MemoryState{}, fmt.Errorf("%w: manual rating needs a memory state", domain.ErrInvalidGrade)
		}
		return MemoryState{
			Stability:  m.InitStability(rating),
			Difficulty: m.InitDifficulty(rating),
		}, nil
	}
	if rating == Manual {
		return *prev, nil
	}
	if prev.Difficulty < 1 || prev.Stability < SMin {
		return MemoryState{}, fmt.Errorf("%w: stability=%v difficulty=%v",
			domain.ErrInvalidMemoryState, prev.Stability, prev.Difficulty)
	}

	d, s := prev.Difficulty, prev.Stability
	r := m.ForgettingCurve(float64(elapsedDays), s)

	var next float64
	switch {
	case elapsedDays == 0 && m.params.EnableShortTerm:
		next = m.NextShortTermStability(s, rating)
	case rating == Again:
		next = m.againStability(s, m.NextForgetStability(d, s, r))
	default:
		next = m.NextRecallStability(d, s, r, rating)
	}

	return MemoryState{
		Stability:  next,
		Difficulty: m.NextDifficulty(d, rating),
	}, nil
}

// NextInterval converts stability into a whole-day interval in
// [1, MaximumInterval], fuzzed when the fuzzer is enabled.
//
//	I = clamp(round(S * intervalModifier), 1, maximumInterval)
func (m *Model) NextInterval(stability float64, elapsedDays int, f Fuzzer) int {
	ivl := math.Round(stability * m.intervalModifier)
	ivl = math.Min(math.Max(1, ivl), float64(m.params.MaximumInterval))
	return f.Apply(ivl, elapsedDays)
}

// clampDifficulty constrains difficulty to [1, 10].
func clampDifficulty(d float64) float64 {
	return math.Max(1, math.Min(10, d))
}
