package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/codecity/pkg/tree"
)

// Linear interpolates between the minimal and maximal length by
// value/maxObserved.
type Linear struct {
	forest *tree.Forest
	opts   Options
	max    map[string]float64
}

// NewLinear computes the largest observed value of every metric.
func NewLinear(f *tree.Forest, metrics []string, opts Options) (*Linear, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := &Linear{forest: f, opts: opts, max: make(map[string]float64, len(metrics))}
	for _, m := range metrics {
		values := population(f, m, opts.LeavesOnly)
		hi := 0.0
		if len(values) > 0 {
			hi = floats.Max(values)
		}
		s.max[m] = hi
		if hi <= 0 {
			logDegenerate(opts.Logger, m, "maximum <= 0")
		}
	}
	return s, nil
}

// Normalize implements [Scaler].
func (s *Linear) Normalize(id tree.NodeID, metric string) float64 {
	hi, ok := s.max[metric]
	if !ok || hi <= 0 {
		return s.opts.MinimalLength
	}
	ratio := value(s.forest, id, metric) / hi
	ratio = math.Max(0, math.Min(1, ratio))
	return s.opts.MinimalLength + (s.opts.MaximalLength-s.opts.MinimalLength)*ratio
}

// MaxObserved returns the largest value seen for metric.
func (s *Linear) MaxObserved(metric string) float64 { return s.max[metric] }
