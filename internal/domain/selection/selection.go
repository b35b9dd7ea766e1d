// Package selection implements AtomSelection, an immutable subset of the atoms
// of one molecule.
//
// The representation is sparse over cut groups: a selection of everything or
// of nothing stores no per-chunk data at all, and a mixed selection stores
// only the chunks that hold at least one selected atom.  A stored chunk is
// either whole (all its atoms) or an explicit bitset of intra-chunk
// positions.  The selected-atom count is cached and kept equal to the sum over
// chunks on every operation.
//
// Every operation that changes the set returns a new AtomSelection; values
// are safe to share between goroutines.
package selection

import (
	"fmt"
	"sort"

	"github.com/turtacn/molsim/internal/domain/topology"
)

// AtomSelection is a subset of the atoms of the molecule described by Info().
type AtomSelection struct {
	info      *topology.Info
	nSelected int
	// cgs is nil when nothing or everything is selected.  Otherwise it holds
	// each chunk with at least one selected atom; a nil value means the
	// whole chunk.
	cgs map[topology.CGIdx]*atomSet
}

// New returns a selection of every atom of info.
func New(info *topology.Info) *AtomSelection {
	return &AtomSelection{info: info, nSelected: info.NAtoms()}
}

// NewNone returns an empty selection over info.
func NewNone(info *topology.Info) *AtomSelection {
	return &AtomSelection{info: info}
}

// NewFrom returns a selection of exactly the atoms matched by id.
func NewFrom(info *topology.Info, id topology.ID) (*AtomSelection, error) {
	return NewNone(info).Select(id)
}

// Info returns the layout this selection belongs to.
func (s *AtomSelection) Info() *topology.Info { return s.info }

func (s *AtomSelection) String() string {
	return fmt.Sprintf("AtomSelection(%d/%d)", s.nSelected, s.info.NAtoms())
}

// ── O(1) state ───────────────────────────────────────────────────────────────

// SelectedAll reports whether every atom is selected.  For a molecule with no
// atoms both SelectedAll and SelectedNone are true; check IsEmpty first when
// the distinction matters.
func (s *AtomSelection) SelectedAll() bool { return s.nSelected == s.info.NAtoms() }

// SelectedNone reports whether no atom is selected.
func (s *AtomSelection) SelectedNone() bool { return s.nSelected == 0 }

// IsEmpty is SelectedNone.
func (s *AtomSelection) IsEmpty() bool { return s.nSelected == 0 }

// NSelected returns the number of selected atoms.
func (s *AtomSelection) NSelected() int { return s.nSelected }

// ── Atom-level lookups ───────────────────────────────────────────────────────

func (s *AtomSelection) isSelected(atom topology.AtomIdx) bool {
	if s.cgs == nil {
		return s.nSelected != 0
	}
	idx := s.info.CGAtomIdx(atom)
	set, ok := s.cgs[idx.CutGroup]
	if !ok {
		return false
	}
	return set == nil || set.has(idx.Index)
}

// IsSelected reports whether atom is selected.  atom must be in range.
func (s *AtomSelection) IsSelected(atom topology.AtomIdx) bool { return s.isSelected(atom) }

func (s *AtomSelection) resolve(id topology.ID) ([]topology.AtomIdx, error) {
	return id.AtomsIn(s.info)
}

// Selected reports whether any atom matched by id is selected.
func (s *AtomSelection) Selected(id topology.ID) (bool, error) {
	atoms, err := s.resolve(id)
	if err != nil {
		return false, err
	}
	if s.cgs == nil {
		return s.nSelected != 0 && len(atoms) > 0, nil
	}
	for _, a := range atoms {
		if s.isSelected(a) {
			return true, nil
		}
	}
	return false, nil
}

// SelectedAllIn reports whether every atom matched by id is selected.
func (s *AtomSelection) SelectedAllIn(id topology.ID) (bool, error) {
	atoms, err := s.resolve(id)
	if err != nil {
		return false, err
	}
	if s.cgs == nil {
		return s.nSelected != 0 || len(atoms) == 0, nil
	}
	for _, a := range atoms {
		if !s.isSelected(a) {
			return false, nil
		}
	}
	return true, nil
}

// SelectedNoneIn reports whether no atom matched by id is selected.
func (s *AtomSelection) SelectedNoneIn(id topology.ID) (bool, error) {
	hit, err := s.Selected(id)
	if err != nil {
		return false, err
	}
	return !hit, nil
}

// NSelectedIn returns how many atoms matched by id are selected.
func (s *AtomSelection) NSelectedIn(id topology.ID) (int, error) {
	atoms, err := s.resolve(id)
	if err != nil {
		return 0, err
	}
	if s.cgs == nil {
		if s.nSelected == 0 {
			return 0, nil
		}
		return len(atoms), nil
	}
	n := 0
	for _, a := range atoms {
		if s.isSelected(a) {
			n++
		}
	}
	return n, nil
}

// ── Chunk-level lookups (used by the bond hunter) ────────────────────────────

// SelectedAllCutGroups reports whether every cut group holds at least one
// selected atom.
func (s *AtomSelection) SelectedAllCutGroups() bool {
	if s.cgs == nil {
		return s.nSelected != 0 || s.info.NCutGroups() == 0
	}
	return len(s.cgs) == s.info.NCutGroups()
}

// SelectedAllInCutGroup reports whether every atom of cg is selected.
// cg must be a valid index.
func (s *AtomSelection) SelectedAllInCutGroup(cg topology.CGIdx) bool {
	if s.cgs == nil {
		return s.nSelected != 0
	}
	set, ok := s.cgs[cg]
	return ok && set == nil
}

// NSelectedInCutGroup returns the number of selected atoms in cg.
func (s *AtomSelection) NSelectedInCutGroup(cg topology.CGIdx) int {
	if s.cgs == nil {
		if s.nSelected == 0 {
			return 0
		}
		return s.info.NAtomsInCutGroup(cg)
	}
	set, ok := s.cgs[cg]
	switch {
	case !ok:
		return 0
	case set == nil:
		return s.info.NAtomsInCutGroup(cg)
	default:
		return set.count
	}
}

// SelectedIndicesInCutGroup returns the selected positions inside cg in
// ascending order.
func (s *AtomSelection) SelectedIndicesInCutGroup(cg topology.CGIdx) []int {
	if s.SelectedAllInCutGroup(cg) {
		return sequence(s.info.NAtomsInCutGroup(cg))
	}
	if s.cgs == nil {
		return nil
	}
	if set, ok := s.cgs[cg]; ok {
		return set.indices()
	}
	return nil
}

// ── Enumeration ──────────────────────────────────────────────────────────────

// SelectedCutGroups returns, ascending, the cut groups with at least one
// selected atom.
func (s *AtomSelection) SelectedCutGroups() []topology.CGIdx {
	if s.cgs == nil {
		if s.nSelected == 0 {
			return nil
		}
		out := make([]topology.CGIdx, s.info.NCutGroups())
		for i := range out {
			out[i] = topology.CGIdx(i)
		}
		return out
	}
	out := make([]topology.CGIdx, 0, len(s.cgs))
	for cg := range s.cgs {
		out = append(out, cg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SelectedAtoms returns the selected atoms in ascending order.
func (s *AtomSelection) SelectedAtoms() []topology.AtomIdx {
	if s.nSelected == 0 {
		return nil
	}
	out := make([]topology.AtomIdx, 0, s.nSelected)
	if s.cgs == nil {
		for i := 0; i < s.nSelected; i++ {
			out = append(out, topology.AtomIdx(i))
		}
		return out
	}
	s.eachSelected(func(a topology.AtomIdx) { out = append(out, a) })
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// eachSelected calls fn for every selected atom of a mixed selection, chunk
// by chunk.
func (s *AtomSelection) eachSelected(fn func(topology.AtomIdx)) {
	for cg, set := range s.cgs {
		atoms := s.info.AtomsInCutGroup(cg)
		if set == nil {
			for _, a := range atoms {
				fn(a)
			}
			continue
		}
		for _, i := range set.indices() {
			fn(atoms[i])
		}
	}
}

// SelectedResidues returns, ascending, the residues with at least one
// selected atom.
func (s *AtomSelection) SelectedResidues() []topology.ResIdx {
	if s.cgs == nil {
		if s.nSelected == 0 {
			return nil
		}
		var out []topology.ResIdx
		for r := 0; r < s.info.NResidues(); r++ {
			if len(s.info.AtomsInResidue(topology.ResIdx(r))) > 0 {
				out = append(out, topology.ResIdx(r))
			}
		}
		return out
	}
	seen := map[topology.ResIdx]struct{}{}
	s.eachSelected(func(a topology.AtomIdx) { seen[s.info.ResidueOf(a)] = struct{}{} })
	return sortedKeys(seen)
}

// SelectedChains returns, ascending, the chains with at least one selected
// atom.
func (s *AtomSelection) SelectedChains() []topology.ChainIdx {
	if s.cgs == nil {
		if s.nSelected == 0 {
			return nil
		}
		var out []topology.ChainIdx
		for c := 0; c < s.info.NChains(); c++ {
			if len(s.info.AtomsInChain(topology.ChainIdx(c))) > 0 {
				out = append(out, topology.ChainIdx(c))
			}
		}
		return out
	}
	seen := map[topology.ChainIdx]struct{}{}
	s.eachSelected(func(a topology.AtomIdx) {
		if c := s.info.ChainOf(a); c != topology.NoChain {
			seen[c] = struct{}{}
		}
	})
	return sortedKeys(seen)
}

// SelectedSegments returns, ascending, the segments with at least one
// selected atom.
func (s *AtomSelection) SelectedSegments() []topology.SegIdx {
	if s.cgs == nil {
		if s.nSelected == 0 {
			return nil
		}
		var out []topology.SegIdx
		for g := 0; g < s.info.NSegments(); g++ {
			if len(s.info.AtomsInSegment(topology.SegIdx(g))) > 0 {
				out = append(out, topology.SegIdx(g))
			}
		}
		return out
	}
	seen := map[topology.SegIdx]struct{}{}
	s.eachSelected(func(a topology.AtomIdx) {
		if g := s.info.SegmentOf(a); g != topology.NoSegment {
			seen[g] = struct{}{}
		}
	})
	return sortedKeys(seen)
}

func sortedKeys[K ~int](m map[K]struct{}) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
