package city

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/codecity/pkg/errors"
)

// City is the input document.
type City struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges,omitempty"`
}

// Node is one element of the containment hierarchy.
type Node struct {
	ID      string             `json:"id"`
	Parent  string             `json:"parent,omitempty"`
	Leaf    *bool              `json:"leaf,omitempty"`
	Size    []float64          `json:"size,omitempty"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// Edge is a dependency between two nodes.
type Edge struct {
	ID   string `json:"id,omitempty"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Key returns the edge ID, or "from->to" when none is set.
func (e Edge) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.From + "->" + e.To
}

// Layout is the output document.
type Layout struct {
	Kind  string       `json:"layout"`
	Nodes []PlacedNode `json:"nodes"`
	Edges []PlacedEdge `json:"edges,omitempty"`
}

// PlacedNode is the transform of one node. Position is the ground anchor:
// the footprint centre at the bottom of the block.
type PlacedNode struct {
	ID       string     `json:"id"`
	Position [3]float64 `json:"position"`
	Scale    [3]float64 `json:"scale"`
	Rotation float64    `json:"rotation"`
	Color    *float64   `json:"color,omitempty"`
}

// PlacedEdge carries the control points of one edge.
type PlacedEdge struct {
	ID     string       `json:"id"`
	From   string       `json:"from"`
	To     string       `json:"to"`
	Points [][3]float64 `json:"points"`
}

// Decode parses a city document. Malformed JSON yields an
// errors.ErrCodeInvalidFormat error.
func Decode(data []byte) (*City, error) {
	var c City
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode city")
	}
	return &c, nil
}

// ReadCity decodes a city from r. ReadCity does not close r.
func ReadCity(r io.Reader) (*City, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read city: %w", err)
	}
	return Decode(data)
}

// ImportCity reads the city file at path.
func ImportCity(path string) (*City, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCity(f)
}

// WriteLayout encodes l as indented JSON.
func WriteLayout(l *Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes l to a JSON file at path.
func ExportLayout(l *Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

// MarshalLayout returns the compact JSON encoding of l.
func MarshalLayout(l *Layout) ([]byte, error) {
	return json.Marshal(l)
}

// DecodeLayout parses a layout document, as stored in caches.
func DecodeLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return &l, nil
}

// Canonical returns the compact JSON encoding of c, used for cache keys.
func (c *City) Canonical() ([]byte, error) {
	return json.Marshal(c)
}
