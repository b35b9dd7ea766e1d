// Package molecule ties per-atom data to a molecule layout and hands it to
// the algorithms that read it.
package molecule

import (
	"sort"

	"github.com/turtacn/molsim/internal/domain/selection"
	"github.com/turtacn/molsim/pkg/errors"
)

// Default property keys.
const (
	KeyCoordinates = "coordinates"
	KeyElement     = "element"
)

// Properties is a string-keyed bag of molecule data.  It is not safe for
// concurrent writes.
type Properties struct {
	values map[string]interface{}
}

// NewProperties returns an empty bag.
func NewProperties() *Properties {
	return &Properties{values: map[string]interface{}{}}
}

// Set stores value under key, replacing any previous value.
func (p *Properties) Set(key string, value interface{}) *Properties {
	p.values[key] = value
	return p
}

// Get returns the value under key.
func (p *Properties) Get(key string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the stored keys in sorted order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PropertyMap renames the keys algorithms look up.  Empty fields fall back
// to the defaults.
type PropertyMap struct {
	Coordinates string `mapstructure:"coordinates_key" json:"coordinates_key,omitempty"`
	Element     string `mapstructure:"element_key" json:"element_key,omitempty"`
}

// CoordinatesKey returns the effective coordinates key.
func (m PropertyMap) CoordinatesKey() string {
	if m.Coordinates == "" {
		return KeyCoordinates
	}
	return m.Coordinates
}

// ElementKey returns the effective element key.
func (m PropertyMap) ElementKey() string {
	if m.Element == "" {
		return KeyElement
	}
	return m.Element
}

// CoordinatesOf fetches the coordinates stored under key.
func CoordinatesOf(p *Properties, key string) (*Coordinates, error) {
	return lookup[*Coordinates](p, key, "*molecule.Coordinates")
}

// ElementsOf fetches the elements stored under key.
func ElementsOf(p *Properties, key string) (*Elements, error) {
	return lookup[*Elements](p, key, "*molecule.Elements")
}

func lookup[T any](p *Properties, key, want string) (T, error) {
	var zero T
	v, ok := p.Get(key)
	if !ok {
		return zero, errors.MissingProperty(key)
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.InvalidCast(key, want, v)
	}
	return t, nil
}

// View is a selection of a molecule together with its data.
type View struct {
	Selection  *selection.AtomSelection
	Properties *Properties
}

// NewView pairs a selection with its data.
func NewView(sel *selection.AtomSelection, props *Properties) View {
	return View{Selection: sel, Properties: props}
}
