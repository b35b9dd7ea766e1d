package connectivity

import (
	"fmt"
	"sort"

	"github.com/turtacn/molsim/internal/domain/selection"
	"github.com/turtacn/molsim/internal/domain/topology"
)

// BondID names a bond by its two atoms.
type BondID struct {
	Atom0 topology.AtomIdx `json:"atom0"`
	Atom1 topology.AtomIdx `json:"atom1"`
}

// NewBondID returns the bond a-b with the lower atom first.
func NewBondID(a, b topology.AtomIdx) BondID {
	if b < a {
		a, b = b, a
	}
	return BondID{Atom0: a, Atom1: b}
}

func (b BondID) Atoms() []topology.AtomIdx { return []topology.AtomIdx{b.Atom0, b.Atom1} }
func (b BondID) String() string            { return fmt.Sprintf("%d-%d", b.Atom0, b.Atom1) }

// AngleID names a bond angle; Atom1 is the vertex.
type AngleID struct {
	Atom0, Atom1, Atom2 topology.AtomIdx
}

func (a AngleID) Atoms() []topology.AtomIdx {
	return []topology.AtomIdx{a.Atom0, a.Atom1, a.Atom2}
}
func (a AngleID) String() string { return fmt.Sprintf("%d-%d-%d", a.Atom0, a.Atom1, a.Atom2) }

func (a AngleID) canonical() AngleID {
	if a.Atom2 < a.Atom0 {
		a.Atom0, a.Atom2 = a.Atom2, a.Atom0
	}
	return a
}

// DihedralID names a torsion a-b-c-d around the bond b-c.
type DihedralID struct {
	Atom0, Atom1, Atom2, Atom3 topology.AtomIdx
}

func (d DihedralID) Atoms() []topology.AtomIdx {
	return []topology.AtomIdx{d.Atom0, d.Atom1, d.Atom2, d.Atom3}
}
func (d DihedralID) String() string {
	return fmt.Sprintf("%d-%d-%d-%d", d.Atom0, d.Atom1, d.Atom2, d.Atom3)
}

// canonical orders the torsion so that the central bond reads low to high.
func (d DihedralID) canonical() DihedralID {
	if d.Atom2 < d.Atom1 {
		return DihedralID{Atom0: d.Atom3, Atom1: d.Atom2, Atom2: d.Atom1, Atom3: d.Atom0}
	}
	return d
}

// Internal is the set of internal-coordinate identifiers.
type Internal interface {
	BondID | AngleID | DihedralID
	Atoms() []topology.AtomIdx
}

// InScope keeps the ids whose atoms are all selected in sel.
func InScope[T Internal](ids []T, sel *selection.AtomSelection) []T {
	return filter(ids, func(atoms []topology.AtomIdx) bool {
		for _, a := range atoms {
			if !sel.IsSelected(a) {
				return false
			}
		}
		return true
	})
}

// Touching keeps the ids with at least one atom selected in sel.
func Touching[T Internal](ids []T, sel *selection.AtomSelection) []T {
	return filter(ids, func(atoms []topology.AtomIdx) bool {
		for _, a := range atoms {
			if sel.IsSelected(a) {
				return true
			}
		}
		return false
	})
}

func filter[T Internal](ids []T, keep func([]topology.AtomIdx) bool) []T {
	var out []T
	for _, id := range ids {
		if keep(id.Atoms()) {
			out = append(out, id)
		}
	}
	return out
}

func lessAtoms(a, b []topology.AtomIdx) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func sortIDs[T Internal](ids []T) {
	sort.Slice(ids, func(i, j int) bool { return lessAtoms(ids[i].Atoms(), ids[j].Atoms()) })
}

// SortBonds orders bonds by (Atom0, Atom1) and drops duplicates in place.
func SortBonds(bonds []BondID) []BondID {
	sortIDs(bonds)
	out := bonds[:0]
	for _, b := range bonds {
		if len(out) == 0 || out[len(out)-1] != b {
			out = append(out, b)
		}
	}
	return out
}
