package cache

// Keyer derives cache keys for pipeline results.
type Keyer interface {
	// LayoutKey names the layout computed for a city with the given options.
	LayoutKey(cityHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a computed layout.
// Logging and cache settings are deliberately absent.
type LayoutKeyOpts struct {
	Layout           string  `json:"layout"`
	Scale            string  `json:"scale"`
	MinLength        float64 `json:"min_length"`
	MaxLength        float64 `json:"max_length"`
	StandardLength   float64 `json:"standard_length"`
	Padding          float64 `json:"padding"`
	InnerHeight      float64 `json:"inner_height"`
	StreetWidth      float64 `json:"street_width"`
	SkipEdges        bool    `json:"skip_edges"`
	EdgesBelowGround bool    `json:"edges_below_ground"`
	LevelDistance    float64 `json:"level_distance"`
	EdgeSamples      int     `json:"edge_samples"`
	WidthMetric      string  `json:"width_metric"`
	HeightMetric     string  `json:"height_metric"`
	DepthMetric      string  `json:"depth_metric"`
	ColorMetric      string  `json:"color_metric"`
	LeavesOnly       bool    `json:"leaves_only"`
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the city hash together with the options.
func (DefaultKeyer) LayoutKey(cityHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", cityHash, opts)
}
