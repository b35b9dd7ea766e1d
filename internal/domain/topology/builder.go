package topology

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/turtacn/molsim/pkg/errors"
)

// Builder assembles an Info.  Atoms receive indices in the order they are
// added; inside a cut group they keep that order.  A Builder is not safe for
// concurrent use and may be discarded after Build.
type Builder struct {
	name     string
	atoms    []atomData
	cgs      []cutGroupData
	residues []residueData
	chains   []chainData
	segments []segmentData
	err      error
}

// AtomOption customises an atom added with AddAtom.
type AtomOption func(*atomData)

// InSegment places the atom in seg.
func InSegment(seg SegIdx) AtomOption {
	return func(a *atomData) { a.segment = seg }
}

// NewBuilder starts a new molecule layout called name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// AddCutGroup appends a spatial chunk and returns its index.
func (b *Builder) AddCutGroup(name string) CGIdx {
	b.cgs = append(b.cgs, cutGroupData{name: name})
	return CGIdx(len(b.cgs) - 1)
}

// AddChain appends a chain and returns its index.
func (b *Builder) AddChain(name string) ChainIdx {
	b.chains = append(b.chains, chainData{name: name})
	return ChainIdx(len(b.chains) - 1)
}

// AddSegment appends a segment and returns its index.
func (b *Builder) AddSegment(name string) SegIdx {
	b.segments = append(b.segments, segmentData{name: name})
	return SegIdx(len(b.segments) - 1)
}

// AddResidue appends a residue belonging to chain (or NoChain).
func (b *Builder) AddResidue(name string, number int, chain ChainIdx) ResIdx {
	valid := chain == NoChain || (chain >= 0 && int(chain) < len(b.chains))
	if !valid {
		b.fail(fmt.Sprintf("residue %s%d references chain %d", name, number, chain))
	}
	b.residues = append(b.residues, residueData{name: name, number: number, chain: chain})
	res := ResIdx(len(b.residues) - 1)
	if valid && chain != NoChain {
		b.chains[chain].residues = append(b.chains[chain].residues, res)
	}
	return res
}

// AddAtom appends an atom to cut group cg and residue res.
func (b *Builder) AddAtom(name string, number int, cg CGIdx, res ResIdx, opts ...AtomOption) AtomIdx {
	a := atomData{name: name, number: number, residue: res, segment: NoSegment}
	for _, opt := range opts {
		opt(&a)
	}
	idx := AtomIdx(len(b.atoms))

	switch {
	case cg < 0 || int(cg) >= len(b.cgs):
		b.fail(fmt.Sprintf("atom %q references cut group %d", name, cg))
	case res < 0 || int(res) >= len(b.residues):
		b.fail(fmt.Sprintf("atom %q references residue %d", name, res))
	case a.segment != NoSegment && (a.segment < 0 || int(a.segment) >= len(b.segments)):
		b.fail(fmt.Sprintf("atom %q references segment %d", name, a.segment))
	default:
		a.cgAtom = CGAtomIdx{CutGroup: cg, Index: len(b.cgs[cg].atoms)}
		b.cgs[cg].atoms = append(b.cgs[cg].atoms, idx)
		b.residues[res].atoms = append(b.residues[res].atoms, idx)
		if a.segment != NoSegment {
			b.segments[a.segment].atoms = append(b.segments[a.segment].atoms, idx)
		}
	}
	b.atoms = append(b.atoms, a)
	return idx
}

func (b *Builder) fail(msg string) {
	if b.err == nil {
		b.err = errors.InvalidArgument("invalid molecule layout").WithDetail(msg)
	}
}

// Build validates the layout and returns an Info with a fresh fingerprint.
// The first reference error recorded while adding items is returned, as is
// an error for any cut group without atoms.
func (b *Builder) Build() (*Info, error) {
	if b.err != nil {
		return nil, b.err
	}
	for i, cg := range b.cgs {
		if len(cg.atoms) == 0 {
			return nil, errors.InvalidArgument("invalid molecule layout").
				WithDetail(fmt.Sprintf("cut group %d (%q) has no atoms", i, cg.name))
		}
	}
	info := &Info{
		id:       uuid.New(),
		name:     b.name,
		atoms:    append([]atomData(nil), b.atoms...),
		cgs:      make([]cutGroupData, len(b.cgs)),
		residues: make([]residueData, len(b.residues)),
		chains:   make([]chainData, len(b.chains)),
		segments: make([]segmentData, len(b.segments)),
	}
	for i, cg := range b.cgs {
		info.cgs[i] = cutGroupData{name: cg.name, atoms: append([]AtomIdx(nil), cg.atoms...)}
	}
	for i, r := range b.residues {
		info.residues[i] = residueData{name: r.name, number: r.number, chain: r.chain,
			atoms: append([]AtomIdx(nil), r.atoms...)}
	}
	for i, c := range b.chains {
		info.chains[i] = chainData{name: c.name, residues: append([]ResIdx(nil), c.residues...)}
	}
	for i, s := range b.segments {
		info.segments[i] = segmentData{name: s.name, atoms: append([]AtomIdx(nil), s.atoms...)}
	}
	return info, nil
}

// Chunked builds a layout for nAtoms atoms split into consecutive cut groups
// of at most chunkSize atoms, one residue per cut group, no chains or
// segments.  names and numbers are optional; missing entries default to the
// atom's position.
func Chunked(name string, nAtoms, chunkSize int, names []string) (*Info, error) {
	if nAtoms < 0 {
		return nil, errors.InvalidArgument("atom count must not be negative").
			WithDetail(fmt.Sprintf("atoms=%d", nAtoms))
	}
	if chunkSize < 1 {
		return nil, errors.InvalidArgument("chunk size must be positive").
			WithDetail(fmt.Sprintf("chunk_size=%d", chunkSize))
	}
	b := NewBuilder(name)
	var cg CGIdx
	var res ResIdx
	for i := 0; i < nAtoms; i++ {
		if i%chunkSize == 0 {
			n := i/chunkSize + 1
			cg = b.AddCutGroup(fmt.Sprintf("CG%d", n))
			res = b.AddResidue("RES", n, NoChain)
		}
		atomName := fmt.Sprintf("A%d", i+1)
		if i < len(names) && names[i] != "" {
			atomName = names[i]
		}
		b.AddAtom(atomName, i+1, cg, res)
	}
	return b.Build()
}

// sortUnique sorts atoms ascending and drops duplicates in place.
func sortUnique(atoms []AtomIdx) []AtomIdx {
	if len(atoms) < 2 {
		return atoms
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i] < atoms[j] })
	out := atoms[:1]
	for _, a := range atoms[1:] {
		if a != out[len(out)-1] {
			out = append(out, a)
		}
	}
	return out
}
