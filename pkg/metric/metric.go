// Package metric normalizes raw per-node metric values into bounded block
// lengths.
//
// Every layout consumes node sizes; the pipeline derives those sizes from
// metrics such as lines of code or cyclomatic complexity through a [Scaler].
// Two scalers exist:
//
//   - [Linear]: min-max interpolation against the largest observed value
//   - [ZScore]: distance from the population mean in standard deviations
//
// Nodes that lack a metric count as 0; they are never skipped, so aggregate
// statistics always cover the whole population. A metric whose values give no
// usable scale (largest value <= 0, or zero deviation) is degenerate: the
// scaler falls back to a fixed length and logs the condition instead of
// dividing by zero.
package metric

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Kind selects a scaler implementation.
type Kind string

// Scaler kinds.
const (
	KindLinear Kind = "linear"
	KindZScore Kind = "zscore"
)

// Default bounds for block lengths.
const (
	DefaultMinimalLength = 0.1
	DefaultMaximalLength = 5.0
)

// Scaler maps a node's metric value into a block length.
type Scaler interface {
	// Normalize returns the length for metric on node id. Metrics the scaler
	// was not built for are treated as degenerate.
	Normalize(id tree.NodeID, metric string) float64
}

// Options configures a scaler.
type Options struct {
	MinimalLength  float64
	MaximalLength  float64
	StandardLength float64 // z-score length of a value at the mean; 0 means halfway between the bounds

	// LeavesOnly restricts the statistics to leaf nodes.
	LeavesOnly bool

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.MinimalLength == 0 && o.MaximalLength == 0 {
		o.MinimalLength = DefaultMinimalLength
		o.MaximalLength = DefaultMaximalLength
	}
	if o.StandardLength == 0 {
		o.StandardLength = (o.MinimalLength + o.MaximalLength) / 2
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) validate() error {
	if err := errors.ValidateLength("minimal length", o.MinimalLength); err != nil {
		return err
	}
	if err := errors.ValidateLength("maximal length", o.MaximalLength); err != nil {
		return err
	}
	if o.MaximalLength < o.MinimalLength {
		return errors.New(errors.ErrCodeInvalidArgument, "maximal length %v is below minimal length %v", o.MaximalLength, o.MinimalLength)
	}
	return errors.ValidateLength("standard length", o.StandardLength)
}

// ParseKind parses a scaler name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLinear, KindZScore:
		return Kind(s), nil
	case "":
		return KindLinear, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidScale, "invalid scale: %q (must be one of: linear, zscore)", s)
	}
}

// New builds the scaler of the given kind over the nodes of f.
func New(kind Kind, f *tree.Forest, metrics []string, opts Options) (Scaler, error) {
	switch kind {
	case KindLinear, "":
		return NewLinear(f, metrics, opts)
	case KindZScore:
		return NewZScore(f, metrics, opts)
	default:
		return nil, errors.New(errors.ErrCodeInvalidScale, "invalid scale: %q", kind)
	}
}

// population collects the values of metric over the selected nodes, with
// missing values as 0.
func population(f *tree.Forest, metric string, leavesOnly bool) []float64 {
	values := make([]float64, 0, f.Len())
	for _, id := range f.IDs() {
		if leavesOnly && !f.IsLeaf(id) {
			continue
		}
		v, _ := f.Node(id).TryGetNumeric(metric)
		values = append(values, v)
	}
	return values
}

// value reads a metric of a node, missing values as 0.
func value(f *tree.Forest, id tree.NodeID, metric string) float64 {
	v, _ := f.Node(id).TryGetNumeric(metric)
	return v
}

func logDegenerate(l *log.Logger, metric, reason string) {
	l.Debug("degenerate metric, using fallback length", "metric", metric, "reason", reason, "code", errors.ErrCodeDegenerateMetric)
}
