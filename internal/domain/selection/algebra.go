package selection

import (
	"github.com/turtacn/molsim/internal/domain/topology"
)

// chunkMap is the mixed-state representation: one entry per chunk that holds
// a selected atom, nil meaning the whole chunk.
type chunkMap map[topology.CGIdx]*atomSet

// build normalizes chunks into a selection.  Full bitsets collapse to nil,
// empty ones are dropped, and the map itself is discarded when the result is
// all or nothing.
func build(info *topology.Info, chunks chunkMap) *AtomSelection {
	n := 0
	for cg, set := range chunks {
		switch {
		case set == nil:
			n += info.NAtomsInCutGroup(cg)
		case set.count == 0:
			delete(chunks, cg)
		case set.full():
			chunks[cg] = nil
			n += set.size
		default:
			n += set.count
		}
	}
	out := &AtomSelection{info: info, nSelected: n}
	if n != 0 && n != info.NAtoms() {
		out.cgs = chunks
	}
	return out
}

// chunks returns a private copy of the mixed-state map.  All and none are
// expanded so that callers can edit uniformly.
func (s *AtomSelection) chunks() chunkMap {
	switch {
	case s.cgs != nil:
		out := make(chunkMap, len(s.cgs))
		for cg, set := range s.cgs {
			out[cg] = set
		}
		return out
	case s.nSelected == 0:
		return chunkMap{}
	default:
		out := make(chunkMap, s.info.NCutGroups())
		for cg := 0; cg < s.info.NCutGroups(); cg++ {
			out[topology.CGIdx(cg)] = nil
		}
		return out
	}
}

// editor applies atom-level edits with copy-on-write on the stored bitsets.
type editor struct {
	info   *topology.Info
	chunks chunkMap
	owned  map[topology.CGIdx]bool
}

func (s *AtomSelection) edit() *editor {
	return &editor{info: s.info, chunks: s.chunks(), owned: map[topology.CGIdx]bool{}}
}

// writable returns a bitset for cg that the editor may modify.
func (e *editor) writable(cg topology.CGIdx) *atomSet {
	set, ok := e.chunks[cg]
	switch {
	case e.owned[cg]:
		return set
	case !ok:
		set = newAtomSet(e.info.NAtomsInCutGroup(cg))
	case set == nil:
		set = fullAtomSet(e.info.NAtomsInCutGroup(cg))
	default:
		set = set.clone()
	}
	e.chunks[cg] = set
	e.owned[cg] = true
	return set
}

func (e *editor) add(atom topology.AtomIdx) {
	idx := e.info.CGAtomIdx(atom)
	if set, ok := e.chunks[idx.CutGroup]; ok && set == nil {
		return
	}
	e.writable(idx.CutGroup).add(idx.Index)
}

func (e *editor) remove(atom topology.AtomIdx) {
	idx := e.info.CGAtomIdx(atom)
	if _, ok := e.chunks[idx.CutGroup]; !ok {
		return
	}
	e.writable(idx.CutGroup).remove(idx.Index)
}

func (e *editor) done() *AtomSelection { return build(e.info, e.chunks) }

// ── Unary edits ──────────────────────────────────────────────────────────────

// Select returns a copy with the atoms matched by id added.
func (s *AtomSelection) Select(id topology.ID) (*AtomSelection, error) {
	atoms, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	if s.SelectedAll() {
		return s, nil
	}
	e := s.edit()
	for _, a := range atoms {
		e.add(a)
	}
	return e.done(), nil
}

// Deselect returns a copy with the atoms matched by id removed.
func (s *AtomSelection) Deselect(id topology.ID) (*AtomSelection, error) {
	atoms, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	if s.nSelected == 0 {
		return s, nil
	}
	e := s.edit()
	for _, a := range atoms {
		e.remove(a)
	}
	return e.done(), nil
}

// SelectOnly returns a selection of exactly the atoms matched by id.
func (s *AtomSelection) SelectOnly(id topology.ID) (*AtomSelection, error) {
	return NewFrom(s.info, id)
}

// SelectAll returns a selection of every atom.
func (s *AtomSelection) SelectAll() *AtomSelection { return New(s.info) }

// SelectNone returns an empty selection over the same molecule.
func (s *AtomSelection) SelectNone() *AtomSelection { return NewNone(s.info) }

// Invert returns the complement of s.
func (s *AtomSelection) Invert() *AtomSelection {
	if s.cgs == nil {
		return &AtomSelection{info: s.info, nSelected: s.info.NAtoms() - s.nSelected}
	}
	out := chunkMap{}
	for i := 0; i < s.info.NCutGroups(); i++ {
		cg := topology.CGIdx(i)
		set, ok := s.cgs[cg]
		switch {
		case !ok:
			out[cg] = nil
		case set == nil:
		default:
			out[cg] = set.complement()
		}
	}
	return build(s.info, out)
}

// Mask returns the part of s that lies inside id.
func (s *AtomSelection) Mask(id topology.ID) (*AtomSelection, error) {
	scope, err := NewFrom(s.info, id)
	if err != nil {
		return nil, err
	}
	return s.Intersect(scope)
}

// ── Binary operations ────────────────────────────────────────────────────────

// Intersect returns the atoms selected in both s and o.
func (s *AtomSelection) Intersect(o *AtomSelection) (*AtomSelection, error) {
	if err := s.info.AssertCompatibleWith(o.info); err != nil {
		return nil, err
	}
	switch {
	case s.nSelected == 0 || o.SelectedAll():
		return s, nil
	case o.nSelected == 0 || s.SelectedAll():
		return o, nil
	}
	out := chunkMap{}
	for cg, a := range s.cgs {
		b, ok := o.cgs[cg]
		switch {
		case !ok:
		case a == nil:
			out[cg] = b
		case b == nil:
			out[cg] = a
		default:
			out[cg] = a.intersect(b)
		}
	}
	return build(s.info, out), nil
}

// Unite returns the atoms selected in s or o.
func (s *AtomSelection) Unite(o *AtomSelection) (*AtomSelection, error) {
	if err := s.info.AssertCompatibleWith(o.info); err != nil {
		return nil, err
	}
	switch {
	case o.nSelected == 0 || s.SelectedAll():
		return s, nil
	case s.nSelected == 0 || o.SelectedAll():
		return o, nil
	}
	out := s.chunks()
	for cg, b := range o.cgs {
		a, ok := out[cg]
		switch {
		case !ok:
			out[cg] = b
		case a == nil:
		case b == nil:
			out[cg] = nil
		default:
			out[cg] = a.union(b)
		}
	}
	return build(s.info, out), nil
}

// Subtract returns the atoms selected in s but not in o.
func (s *AtomSelection) Subtract(o *AtomSelection) (*AtomSelection, error) {
	if err := s.info.AssertCompatibleWith(o.info); err != nil {
		return nil, err
	}
	switch {
	case s.nSelected == 0 || o.nSelected == 0:
		return s, nil
	case o.SelectedAll():
		return NewNone(s.info), nil
	case s.SelectedAll():
		return o.Invert(), nil
	}
	out := chunkMap{}
	for cg, a := range s.cgs {
		b, ok := o.cgs[cg]
		switch {
		case !ok:
			out[cg] = a
		case b == nil:
		case a == nil:
			out[cg] = b.complement()
		default:
			out[cg] = a.difference(b)
		}
	}
	return build(s.info, out), nil
}

// Contains reports whether every atom selected in o is also selected in s.
func (s *AtomSelection) Contains(o *AtomSelection) (bool, error) {
	rest, err := o.Subtract(s)
	if err != nil {
		return false, err
	}
	return rest.nSelected == 0, nil
}

// Intersects reports whether s and o share at least one selected atom.
func (s *AtomSelection) Intersects(o *AtomSelection) (bool, error) {
	common, err := s.Intersect(o)
	if err != nil {
		return false, err
	}
	return common.nSelected != 0, nil
}

// Equal reports whether s and o select the same atoms of the same molecule.
func (s *AtomSelection) Equal(o *AtomSelection) bool {
	if !s.info.IsCompatibleWith(o.info) || s.nSelected != o.nSelected {
		return false
	}
	if len(s.cgs) != len(o.cgs) {
		return false
	}
	for cg, a := range s.cgs {
		b, ok := o.cgs[cg]
		if !ok || (a == nil) != (b == nil) {
			return false
		}
		if a != nil && !a.equal(b) {
			return false
		}
	}
	return true
}
