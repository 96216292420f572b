// Package pipeline chains the layout engine into one call:
// scale -> layout -> edges.
//
// The CLI and the HTTP service both go through a [Runner], so a city laid
// out from the command line and one laid out over HTTP with the same
// [Options] produce the same document and share cache entries.
//
// # Stages
//
//  1. Scale: derive leaf sizes from metrics (only when a metric name is set)
//  2. Layout: place nodes with the selected algorithm
//  3. Edges: bundle dependency edges along the hierarchy
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Run(ctx, c, pipeline.Options{Layout: "balloon"})
//	if err != nil {
//	    return err
//	}
//	city.WriteLayout(res.Layout, os.Stdout)
package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/codecity/pkg/cache"
	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/layout"
	"github.com/matzehuels/codecity/pkg/metric"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultLayout is used when Options.Layout is empty.
	DefaultLayout = layout.KindTreemap

	// DefaultScale is used when Options.Scale is empty.
	DefaultScale = metric.KindLinear

	// DefaultMinLength and DefaultMaxLength bound scaled block lengths.
	DefaultMinLength = metric.DefaultMinimalLength
	DefaultMaxLength = metric.DefaultMaximalLength

	DefaultPadding     = layout.DefaultPadding
	DefaultInnerHeight = layout.DefaultInnerHeight
	DefaultStreetWidth = layout.DefaultStreetWidth
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It decodes from TOML (CLI config
// files) and JSON (service requests). Zero values select the defaults.
type Options struct {
	// Layout options
	Layout      string  `toml:"layout" json:"layout,omitempty"`
	Padding     float64 `toml:"padding" json:"padding,omitempty"`
	InnerHeight float64 `toml:"inner_height" json:"inner_height,omitempty"`
	StreetWidth float64 `toml:"street_width" json:"street_width,omitempty"`

	// Scale options
	Scale          string  `toml:"scale" json:"scale,omitempty"`
	MinLength      float64 `toml:"min_length" json:"min_length,omitempty"`
	MaxLength      float64 `toml:"max_length" json:"max_length,omitempty"`
	StandardLength float64 `toml:"standard_length" json:"standard_length,omitempty"`
	WidthMetric    string  `toml:"width_metric" json:"width_metric,omitempty"`
	HeightMetric   string  `toml:"height_metric" json:"height_metric,omitempty"`
	DepthMetric    string  `toml:"depth_metric" json:"depth_metric,omitempty"`
	ColorMetric    string  `toml:"color_metric" json:"color_metric,omitempty"`
	LeavesOnly     bool    `toml:"leaves_only" json:"leaves_only,omitempty"` // Scale statistics over leaves only

	// Edge options
	SkipEdges        bool    `toml:"skip_edges" json:"skip_edges,omitempty"`                 // Default false = bundle edges
	EdgesBelowGround bool    `toml:"edges_below_ground" json:"edges_below_ground,omitempty"` // Default false = above the blocks
	LevelDistance    float64 `toml:"level_distance" json:"level_distance,omitempty"`
	EdgeSamples      int     `toml:"edge_samples" json:"edge_samples,omitempty"` // 0 keeps raw control points

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`
}

// Result is the output of a pipeline run.
type Result struct {
	// Layout is the wire document.
	Layout *city.Layout

	// CityHash is the content hash of the canonical input city.
	CityHash string

	// Stats holds sizes and stage timings. Timings are zero on a cache hit.
	Stats Stats

	// CacheHit reports whether Layout came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ScaleTime  time.Duration
	LayoutTime time.Duration
	EdgeTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Layout == "" {
		o.Layout = string(DefaultLayout)
	}
	if o.Scale == "" {
		o.Scale = string(DefaultScale)
	}
	if o.MinLength == 0 && o.MaxLength == 0 {
		o.MinLength = DefaultMinLength
		o.MaxLength = DefaultMaxLength
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.InnerHeight == 0 {
		o.InnerHeight = DefaultInnerHeight
	}
	if o.StreetWidth == 0 {
		o.StreetWidth = DefaultStreetWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Layout and scale names are normalized to
// their canonical spelling.
func (o *Options) Validate() error {
	kind, err := layout.ParseKind(o.Layout)
	if err != nil {
		return err
	}
	o.Layout = string(kind)

	scale, err := metric.ParseKind(o.Scale)
	if err != nil {
		return err
	}
	o.Scale = string(scale)

	lengths := []struct {
		name string
		v    float64
	}{
		{"min_length", o.MinLength},
		{"max_length", o.MaxLength},
		{"standard_length", o.StandardLength},
		{"padding", o.Padding},
		{"inner_height", o.InnerHeight},
		{"street_width", o.StreetWidth},
		{"level_distance", o.LevelDistance},
	}
	for _, l := range lengths {
		if err := errors.ValidateLength(l.name, l.v); err != nil {
			return err
		}
	}
	if o.MaxLength < o.MinLength {
		return errors.New(errors.ErrCodeInvalidArgument, "max_length %v is below min_length %v", o.MaxLength, o.MinLength)
	}
	if o.EdgeSamples < 0 || o.EdgeSamples == 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "edge_samples must be 0 or at least 2, got %d", o.EdgeSamples)
	}
	for _, m := range o.metrics() {
		if err := errors.ValidateMetricName(m); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// Scales reports whether any size metric is configured.
func (o *Options) Scales() bool {
	return o.WidthMetric != "" || o.HeightMetric != "" || o.DepthMetric != "" || o.ColorMetric != ""
}

// metrics returns the configured metric names, without duplicates.
func (o *Options) metrics() []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range []string{o.WidthMetric, o.HeightMetric, o.DepthMetric, o.ColorMetric} {
		if m != "" && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// LayoutKeyOpts returns the cache key options for a layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Layout:           o.Layout,
		Scale:            o.Scale,
		MinLength:        o.MinLength,
		MaxLength:        o.MaxLength,
		StandardLength:   o.StandardLength,
		Padding:          o.Padding,
		InnerHeight:      o.InnerHeight,
		StreetWidth:      o.StreetWidth,
		SkipEdges:        o.SkipEdges,
		EdgesBelowGround: o.EdgesBelowGround,
		LevelDistance:    o.LevelDistance,
		EdgeSamples:      o.EdgeSamples,
		WidthMetric:      o.WidthMetric,
		HeightMetric:     o.HeightMetric,
		DepthMetric:      o.DepthMetric,
		ColorMetric:      o.ColorMetric,
		LeavesOnly:       o.LeavesOnly,
	}
}

// =============================================================================
// Configuration Files
// =============================================================================

// LoadOptions reads options from a TOML file. Unknown keys are rejected so
// that a misspelled option does not silently fall back to its default.
func LoadOptions(path string) (Options, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Options{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidArgument, "config %s: unknown option %q", path, undecoded[0].String())
	}
	return opts, nil
}
