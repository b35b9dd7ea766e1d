package testutil

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/internal/domain/molecule"
	"github.com/turtacn/molsim/internal/domain/selection"
	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/pkg/types/element"
)

// Atom returns a synthetic element with the given radius and bond limit.
func Atom(radius float64, maxBonds int) element.Element {
	return element.Element{Number: 200, Symbol: "Q", Name: "test", CovalentRadius: radius, MaxBonds: maxBonds}
}

// Properties stores pos and elems, both in AtomIdx order, under the default
// keys.
func Properties(info *topology.Info, pos []r3.Vec, elems []element.Element) *molecule.Properties {
	coords, err := molecule.FromAtoms(info, pos)
	if err != nil {
		panic(err)
	}
	el, err := molecule.FromAtoms(info, elems)
	if err != nil {
		panic(err)
	}
	return molecule.NewProperties().
		Set(molecule.KeyCoordinates, coords).
		Set(molecule.KeyElement, el)
}

// Structure is a molecule ready to hand to a hunter.
type Structure struct {
	Info       *topology.Info
	Pos        []r3.Vec
	Elements   []element.Element
	Properties *molecule.Properties
}

// View returns a view of every atom.
func (s Structure) View() molecule.View {
	return molecule.NewView(selection.New(s.Info), s.Properties)
}

// ViewOf returns a view of sel.
func (s Structure) ViewOf(sel *selection.AtomSelection) molecule.View {
	return molecule.NewView(sel, s.Properties)
}

// NewStructure chunks pos into groups of chunkSize.
func NewStructure(chunkSize int, pos []r3.Vec, elems []element.Element) Structure {
	info := Chunked(len(pos), chunkSize)
	return Structure{Info: info, Pos: pos, Elements: elems, Properties: Properties(info, pos, elems)}
}

// Line places n atoms of elem on the x axis, spacing apart.
func Line(n, chunkSize int, spacing float64, elem element.Element) Structure {
	pos := make([]r3.Vec, n)
	elems := make([]element.Element, n)
	for i := range pos {
		pos[i] = r3.Vec{X: float64(i) * spacing}
		elems[i] = elem
	}
	return NewStructure(chunkSize, pos, elems)
}

// Cloud scatters n atoms of C, H, N and O uniformly in a cube of side edge.
// Consecutive atoms are spatially close so that chunks are compact.
func Cloud(seed int64, n, chunkSize int, edge float64) Structure {
	rng := rand.New(rand.NewSource(seed))
	palette := []element.Element{
		element.MustBySymbol("C"),
		element.MustBySymbol("H"),
		element.MustBySymbol("N"),
		element.MustBySymbol("O"),
	}
	pos := make([]r3.Vec, n)
	elems := make([]element.Element, n)
	var centre r3.Vec
	for i := range pos {
		if i%chunkSize == 0 {
			centre = r3.Vec{X: rng.Float64() * edge, Y: rng.Float64() * edge, Z: rng.Float64() * edge}
		}
		pos[i] = r3.Add(centre, r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()})
		elems[i] = palette[rng.Intn(len(palette))]
	}
	return NewStructure(chunkSize, pos, elems)
}
