// Package terrain defines the query/mutation surface the combat core uses
// to talk to the terrain owner. The core never owns terrain data; matches
// that do not care about ground state run on a FlatField.
package terrain

import "github.com/kjard-games/snow-sub006/internal/model"

// Kind is the ground type under a position.
type Kind int8

const (
	KindSnow Kind = iota
	KindIce
	KindPowder
	KindPacked
)

func (k Kind) String() string {
	switch k {
	case KindIce:
		return "ice"
	case KindPowder:
		return "powder"
	case KindPacked:
		return "packed"
	default:
		return "snow"
	}
}

// Field is the terrain collaborator interface.
type Field interface {
	// KindAt returns the terrain type at a position.
	KindAt(loc model.Location) Kind

	// SpeedMultiplierAt returns the movement-speed multiplier at a position.
	SpeedMultiplierAt(loc model.Location) float64

	// Shape applies a ground effect of the given kind in a radius around loc.
	// Invoked by skills with ground-effect behavior.
	Shape(loc model.Location, radius int32, kind Kind)
}

// FlatField is a uniform in-memory Field. Shaped patches are tracked as
// circles, latest shape wins on overlap.
type FlatField struct {
	base    Kind
	patches []patch
}

type patch struct {
	center model.Location
	radius int32
	kind   Kind
}

// NewFlatField creates a FlatField with the given base terrain.
func NewFlatField(base Kind) *FlatField {
	return &FlatField{base: base}
}

func (f *FlatField) KindAt(loc model.Location) Kind {
	for i := len(f.patches) - 1; i >= 0; i-- {
		p := f.patches[i]
		if p.center.WithinRange(loc, p.radius) {
			return p.kind
		}
	}
	return f.base
}

func (f *FlatField) SpeedMultiplierAt(loc model.Location) float64 {
	switch f.KindAt(loc) {
	case KindIce:
		return 1.3
	case KindPowder:
		return 0.6
	case KindPacked:
		return 1.1
	default:
		return 1.0
	}
}

func (f *FlatField) Shape(loc model.Location, radius int32, kind Kind) {
	f.patches = append(f.patches, patch{center: loc, radius: radius, kind: kind})
}
