// Package topology provides the immutable layout description of a molecule:
// which atoms exist and how they are grouped into spatial chunks (cut groups),
// residues, chains and segments.  Every selection, coordinate set and
// connectivity graph is tied to one Info through its fingerprint.
package topology

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/turtacn/molsim/pkg/errors"
)

// Index types.  All are zero-based positions inside one Info.
type (
	AtomIdx  int
	CGIdx    int
	ResIdx   int
	ChainIdx int
	SegIdx   int
)

const (
	// NoChain marks a residue that belongs to no chain.
	NoChain ChainIdx = -1
	// NoSegment marks an atom that belongs to no segment.
	NoSegment SegIdx = -1
)

// CGAtomIdx locates an atom by chunk and position inside that chunk.
type CGAtomIdx struct {
	CutGroup CGIdx
	Index    int
}

func (i CGAtomIdx) String() string { return fmt.Sprintf("CGAtomIdx(%d,%d)", i.CutGroup, i.Index) }

type atomData struct {
	name    string
	number  int
	cgAtom  CGAtomIdx
	residue ResIdx
	segment SegIdx
}

type cutGroupData struct {
	name  string
	atoms []AtomIdx
}

type residueData struct {
	name   string
	number int
	chain  ChainIdx
	atoms  []AtomIdx
}

type chainData struct {
	name     string
	residues []ResIdx
}

type segmentData struct {
	name  string
	atoms []AtomIdx
}

// Info is the read-only topology of one molecule.  It is safe for concurrent
// use.  Slices returned by accessors belong to the Info and must not be
// modified.
type Info struct {
	id       uuid.UUID
	name     string
	atoms    []atomData
	cgs      []cutGroupData
	residues []residueData
	chains   []chainData
	segments []segmentData
}

// ID returns the fingerprint that identifies this layout.
func (m *Info) ID() uuid.UUID { return m.id }

// Name returns the molecule name given to the builder.
func (m *Info) Name() string { return m.name }

func (m *Info) NAtoms() int     { return len(m.atoms) }
func (m *Info) NCutGroups() int { return len(m.cgs) }
func (m *Info) NResidues() int  { return len(m.residues) }
func (m *Info) NChains() int    { return len(m.chains) }
func (m *Info) NSegments() int  { return len(m.segments) }

// IsCompatibleWith reports whether other describes the same molecule layout.
func (m *Info) IsCompatibleWith(other *Info) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.id == other.id
}

// AssertCompatibleWith returns an Incompatible error when other has a
// different fingerprint.
func (m *Info) AssertCompatibleWith(other *Info) error {
	if m.IsCompatibleWith(other) {
		return nil
	}
	return errors.Incompatible("molecule layouts differ").
		WithDetail(fmt.Sprintf("this=%s other=%s", m.describe(), other.describe()))
}

func (m *Info) describe() string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", m.name, m.id)
}

// ── Range checks ─────────────────────────────────────────────────────────────

func outOfRange(kind string, idx, n int) error {
	return errors.InvalidArgument(kind+" index out of range").
		WithDetail(fmt.Sprintf("index=%d count=%d", idx, n))
}

// CheckAtom returns an InvalidArgument error when atom is out of range.
func (m *Info) CheckAtom(atom AtomIdx) error {
	if atom < 0 || int(atom) >= len(m.atoms) {
		return outOfRange("atom", int(atom), len(m.atoms))
	}
	return nil
}

// CheckCutGroup returns an InvalidArgument error when cg is out of range.
func (m *Info) CheckCutGroup(cg CGIdx) error {
	if cg < 0 || int(cg) >= len(m.cgs) {
		return outOfRange("cut group", int(cg), len(m.cgs))
	}
	return nil
}

// CheckResidue returns an InvalidArgument error when res is out of range.
func (m *Info) CheckResidue(res ResIdx) error {
	if res < 0 || int(res) >= len(m.residues) {
		return outOfRange("residue", int(res), len(m.residues))
	}
	return nil
}

// CheckChain returns an InvalidArgument error when chain is out of range.
func (m *Info) CheckChain(chain ChainIdx) error {
	if chain < 0 || int(chain) >= len(m.chains) {
		return outOfRange("chain", int(chain), len(m.chains))
	}
	return nil
}

// CheckSegment returns an InvalidArgument error when seg is out of range.
func (m *Info) CheckSegment(seg SegIdx) error {
	if seg < 0 || int(seg) >= len(m.segments) {
		return outOfRange("segment", int(seg), len(m.segments))
	}
	return nil
}

// ── Atom accessors (panic on out-of-range, like slice indexing) ──────────────

func (m *Info) AtomName(atom AtomIdx) string { return m.atoms[atom].name }
func (m *Info) AtomNumber(atom AtomIdx) int  { return m.atoms[atom].number }

// CGAtomIdx returns the chunk position of atom.
func (m *Info) CGAtomIdx(atom AtomIdx) CGAtomIdx { return m.atoms[atom].cgAtom }

// AtomIdx converts a chunk position back to the atom index.
func (m *Info) AtomIdx(idx CGAtomIdx) AtomIdx { return m.cgs[idx.CutGroup].atoms[idx.Index] }

func (m *Info) ResidueOf(atom AtomIdx) ResIdx { return m.atoms[atom].residue }
func (m *Info) SegmentOf(atom AtomIdx) SegIdx { return m.atoms[atom].segment }

// ChainOf returns the chain of the atom's residue, or NoChain.
func (m *Info) ChainOf(atom AtomIdx) ChainIdx {
	return m.residues[m.atoms[atom].residue].chain
}

// ── Group accessors ──────────────────────────────────────────────────────────

func (m *Info) CutGroupName(cg CGIdx) string       { return m.cgs[cg].name }
func (m *Info) NAtomsInCutGroup(cg CGIdx) int      { return len(m.cgs[cg].atoms) }
func (m *Info) AtomsInCutGroup(cg CGIdx) []AtomIdx { return m.cgs[cg].atoms }

func (m *Info) ResidueName(res ResIdx) string       { return m.residues[res].name }
func (m *Info) ResidueNumber(res ResIdx) int        { return m.residues[res].number }
func (m *Info) ChainOfResidue(res ResIdx) ChainIdx  { return m.residues[res].chain }
func (m *Info) AtomsInResidue(res ResIdx) []AtomIdx { return m.residues[res].atoms }

func (m *Info) ChainName(chain ChainIdx) string         { return m.chains[chain].name }
func (m *Info) ResiduesInChain(chain ChainIdx) []ResIdx { return m.chains[chain].residues }

// AtomsInChain returns the atoms of every residue in chain, ascending.
func (m *Info) AtomsInChain(chain ChainIdx) []AtomIdx {
	var out []AtomIdx
	for _, res := range m.chains[chain].residues {
		out = append(out, m.residues[res].atoms...)
	}
	return sortUnique(out)
}

func (m *Info) SegmentName(seg SegIdx) string       { return m.segments[seg].name }
func (m *Info) AtomsInSegment(seg SegIdx) []AtomIdx { return m.segments[seg].atoms }
