package metric

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/codecity/pkg/tree"
)

type moments struct {
	mean, std float64
}

// ZScore maps a value to ((v-mean)/stddev + 1)·StandardLength, clamped below
// at MinimalLength. A value at the mean gets StandardLength.
type ZScore struct {
	forest *tree.Forest
	opts   Options
	stats  map[string]moments
}

// NewZScore computes mean and population standard deviation of every metric.
func NewZScore(f *tree.Forest, metrics []string, opts Options) (*ZScore, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := &ZScore{forest: f, opts: opts, stats: make(map[string]moments, len(metrics))}
	for _, m := range metrics {
		values := population(f, m, opts.LeavesOnly)
		var mo moments
		if len(values) > 0 {
			mo.mean, mo.std = stat.PopMeanStdDev(values, nil)
		}
		if mo.std == 0 || math.IsNaN(mo.std) {
			mo.std = 0
			logDegenerate(opts.Logger, m, "standard deviation is 0")
		}
		s.stats[m] = mo
	}
	return s, nil
}

// Normalize implements [Scaler].
func (s *ZScore) Normalize(id tree.NodeID, metric string) float64 {
	mo, ok := s.stats[metric]
	if !ok || mo.std == 0 {
		return s.opts.StandardLength
	}
	z := (value(s.forest, id, metric) - mo.mean) / mo.std
	return math.Max(s.opts.MinimalLength, (z+1)*s.opts.StandardLength)
}

// Moments returns the mean and population standard deviation of metric.
func (s *ZScore) Moments(metric string) (mean, std float64) {
	mo := s.stats[metric]
	return mo.mean, mo.std
}
