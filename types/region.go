// region.go defines the pixel rectangle a marker is expected in.

package types

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Region is an axis-aligned pixel rectangle within a frame.
//
// Like image.Rectangle, XMax and YMax are exclusive.
type Region struct {
	XMin int `yaml:"x_min"`
	YMin int `yaml:"y_min"`
	XMax int `yaml:"x_max"`
	YMax int `yaml:"y_max"`
}

// NewRegion builds a Region from two arbitrary corners, the way a
// drag-selection produces them.
func NewRegion(x0, y0, x1, y1 int) Region {
	return Region{
		XMin: min(x0, x1),
		YMin: min(y0, y1),
		XMax: max(x0, x1),
		YMax: max(y0, y1),
	}
}

// RegionFromString parses "x0,y0,x1,y1".
func RegionFromString(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("expected 'x0,y0,x1,y1', got %q", s)
	}
	var coords [4]int
	for idx, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Region{}, fmt.Errorf("unable to parse coordinate #%d of %q: %w", idx, s, err)
		}
		coords[idx] = v
	}
	return NewRegion(coords[0], coords[1], coords[2], coords[3]), nil
}

func (r Region) Rectangle() image.Rectangle {
	return image.Rect(r.XMin, r.YMin, r.XMax, r.YMax)
}

func (r Region) Width() int {
	return r.XMax - r.XMin
}

func (r Region) Height() int {
	return r.YMax - r.YMin
}

func (r Region) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Clamp returns the intersection of the region with the given bounds.
// The result may be empty.
func (r Region) Clamp(bounds image.Rectangle) image.Rectangle {
	return r.Rectangle().Intersect(bounds)
}

func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.XMin, r.YMin, r.XMax, r.YMax)
}

// Set implements pflag.Value.
func (r *Region) Set(s string) error {
	v, err := RegionFromString(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Type implements pflag.Value.
func (r *Region) Type() string {
	return "region"
}

func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Region) UnmarshalText(b []byte) error {
	return r.Set(string(b))
}

// UnmarshalYAML accepts either the "x0,y0,x1,y1" scalar form or
// a mapping with x_min/y_min/x_max/y_max keys.
func (r *Region) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return r.Set(node.Value)
	}
	type plain Region
	var v plain
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("unable to decode region: %w", err)
	}
	*r = NewRegion(v.XMin, v.YMin, v.XMax, v.YMax)
	return nil
}

func (r Region) MarshalYAML() (any, error) {
	return r.String(), nil
}
