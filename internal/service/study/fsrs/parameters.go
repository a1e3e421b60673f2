package fsrs

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

const (
	// SMin and SMax bound every stability the model produces.
	SMin = 0.001
	SMax = 36500.0

	initSMax      = 100.0
	w17W18Ceiling = 2.0

	DefaultRequestRetention = 0.9
	DefaultMaximumInterval  = 36500
)

// DefaultWeights are the default FSRS-6 model weights (w[0]..w[20]).
var DefaultWeights = [21]float64{
	0.212,  // w0  - initial stability for Again
	1.2931, // w1  - initial stability for Hard
	2.3065, // w2  - initial stability for Good
	8.2956, // w3  - initial stability for Easy
	6.4133, // w4  - initial difficulty for Again
	0.8334, // w5  - initial difficulty slope
	3.0194, // w6  - difficulty delta per grade
	0.001,  // w7  - difficulty mean reversion weight
	1.8722, // w8  - recall stability: exp(w8)
	0.1666, // w9  - recall stability: S^(-w9)
	0.796,  // w10 - recall stability: exp(w10*(1-R)) - 1
	1.4835, // w11 - forget stability multiplier
	0.0614, // w12 - forget stability: D^(-w12)
	0.2629, // w13 - forget stability: (S+1)^w13 - 1
	1.6483, // w14 - forget stability: exp(w14*(1-R))
	0.6014, // w15 - recall stability: hard penalty
	1.8729, // w16 - recall stability: easy bonus
	0.5425, // w17 - short-term stability exponent
	0.0912, // w18 - short-term stability offset
	0.0658, // w19 - short-term stability saturation
	0.1542, // w20 - forgetting curve decay
}

// Parameters holds all FSRS configuration.
type Parameters struct {
	W                [21]float64
	RequestRetention float64
	MaximumInterval  int
	EnableFuzz       bool
	EnableShortTerm  bool
	LearningSteps    []time.Duration
	RelearningSteps  []time.Duration
}

// DefaultParameters returns sensible defaults.
func DefaultParameters() Parameters {
	return Parameters{
		W:                DefaultWeights,
		RequestRetention: DefaultRequestRetention,
		MaximumInterval:  DefaultMaximumInterval,
		EnableFuzz:       false,
		EnableShortTerm:  true,
		LearningSteps:    []time.Duration{time.Minute, 10 * time.Minute},
		RelearningSteps:  []time.Duration{10 * time.Minute},
	}
}

// PartialParameters is a patch over Parameters. Nil fields keep the base
// value; a non-nil empty step slice clears the steps.
type PartialParameters struct {
	W                []float64
	RequestRetention *float64
	MaximumInterval  *int
	EnableFuzz       *bool
	EnableShortTerm  *bool
	LearningSteps    []time.Duration
	RelearningSteps  []time.Duration
}

// GenerateParameters applies patch over DefaultParameters.
func GenerateParameters(patch PartialParameters) (Parameters, error) {
	return UpdateParameters(DefaultParameters(), patch)
}

// UpdateParameters applies patch over base, migrates and clips the weights
// and validates the result.
func UpdateParameters(base Parameters, patch PartialParameters) (Parameters, error) {
	p := base
	p.LearningSteps = slices.Clone(base.LearningSteps)
	p.RelearningSteps = slices.Clone(base.RelearningSteps)

	if patch.RequestRetention != nil {
		p.RequestRetention = *patch.RequestRetention
	}
	if patch.MaximumInterval != nil {
		p.MaximumInterval = *patch.MaximumInterval
	}
	if patch.EnableFuzz != nil {
		p.EnableFuzz = *patch.EnableFuzz
	}
	if patch.EnableShortTerm != nil {
		p.EnableShortTerm = *patch.EnableShortTerm
	}
	if patch.LearningSteps != nil {
		p.LearningSteps = slices.Clone(patch.LearningSteps)
	}
	if patch.RelearningSteps != nil {
		p.RelearningSteps = slices.Clone(patch.RelearningSteps)
	}

	w := p.W[:]
	if patch.W != nil {
		w = patch.W
	}
	p.W = MigrateWeights(w, len(p.RelearningSteps), p.EnableShortTerm)

	if err := p.validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

func (p Parameters) validate() error {
	if math.IsNaN(p.RequestRetention) || p.RequestRetention <= 0 || p.RequestRetention > 1 {
		return fmt.Errorf("%w: request retention must be in (0, 1], got %v", domain.ErrInvalidParameter, p.RequestRetention)
	}
	if p.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval must be positive, got %d", domain.ErrInvalidParameter, p.MaximumInterval)
	}
	for i, s := range p.LearningSteps {
		if s <= 0 {
			return fmt.Errorf("%w: learning step %d must be positive", domain.ErrInvalidParameter, i)
		}
	}
	for i, s := range p.RelearningSteps {
		if s <= 0 {
			return fmt.Errorf("%w: relearning step %d must be positive", domain.ErrInvalidParameter, i)
		}
	}
	return nil
}

// MigrateWeights converts a 17-, 19- or 21-element weight vector into a
// clipped FSRS-6 vector. Any other length falls back to DefaultWeights.
func MigrateWeights(w []float64, numRelearningSteps int, enableShortTerm bool) [21]float64 {
	var out [21]float64

	switch len(w) {
	case 21:
		copy(out[:], clipWeights(w, numRelearningSteps, enableShortTerm))
	case 19:
		clipped := clipWeights(w, numRelearningSteps, enableShortTerm)
		copy(out[:], append(clipped, 0.0, 0.5))
	case 17:
		clipped := clipWeights(w, numRelearningSteps, enableShortTerm)
		clipped[4] = roundTo(clipped[5]*2+clipped[4], 8)
		clipped[5] = roundTo(math.Log(clipped[5]*3+1)/3, 8)
		clipped[6] = roundTo(clipped[6]+0.5, 8)
		copy(out[:], append(clipped, 0.0, 0.0, 0.0, 0.5))
	default:
		slog.Warn("fsrs: invalid weight count, using defaults", slog.Int("count", len(w)))
		out = DefaultWeights
	}
	return out
}

type weightBound struct {
	lo, hi float64
}

// clipWeights clamps each weight into its allowed range. The result has the
// same length as w.
func clipWeights(w []float64, numRelearningSteps int, enableShortTerm bool) []float64 {
	ceiling := w17W18Ceiling
	if numRelearningSteps > 1 && len(w) > 14 {
		// Keep short-term growth across all relearning steps below the post-lapse stability.
		v := -(math.Log(w[11]) + math.Log(math.Pow(2, w[13])-1) + w[14]*0.3) / float64(numRelearningSteps)
		ceiling = clamp(roundTo(v, 8), 0.01, w17W18Ceiling)
	}
	w19Lo := 0.0
	if enableShortTerm {
		w19Lo = 0.01
	}

	bounds := [21]weightBound{
		{SMin, initSMax},
		{SMin, initSMax},
		{SMin, initSMax},
		{SMin, initSMax},
		{1, 10},
		{0.001, 4},
		{0.001, 4},
		{0.001, 0.75},
		{0, 4.5},
		{0, 0.8},
		{0.001, 3.5},
		{0.001, 5},
		{0.001, 0.25},
		{0.001, 0.9},
		{0, 4},
		{0, 1},
		{1, 6},
		{0, ceiling},
		{0, ceiling},
		{w19Lo, 0.8},
		{0.1, 0.8},
	}

	out := make([]float64, len(w), len(w)+4)
	for i, v := range w {
		if math.IsNaN(v) {
			v = 0
		}
		if i < len(bounds) {
			v = clamp(v, bounds[i].lo, bounds[i].hi)
		}
		out[i] = v
	}
	return out
}

// ParseWeights parses a comma-separated weight list. The length is not
// checked here: MigrateWeights falls back to the defaults for a bad count.
func ParseWeights(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	w := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: weight %q: %v", domain.ErrInvalidParameter, p, err)
		}
		w = append(w, v)
	}
	return w, nil
}

// ParseStep parses a step written as a positive integer followed by a unit:
// m (minutes), h (hours) or d (days).
func ParseStep(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: step %q", domain.ErrInvalidParameter, s)
	}

	var unit time.Duration
	switch s[len(s)-1] {
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return 0, fmt.Errorf("%w: step %q: unit must be m, h or d", domain.ErrInvalidParameter, s)
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: step %q: amount must be a positive integer", domain.ErrInvalidParameter, s)
	}
	return time.Duration(n) * unit, nil
}

// ParseSteps parses a comma-separated list of steps. An empty string yields
// an empty, non-nil list.
func ParseSteps(raw string) ([]time.Duration, error) {
	steps := []time.Duration{}
	if strings.TrimSpace(raw) == "" {
		return steps, nil
	}
	for _, part := range strings.Split(raw, ",") {
		d, err := ParseStep(part)
		if err != nil {
			return nil, err
		}
		steps = append(steps, d)
	}
	return steps, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
