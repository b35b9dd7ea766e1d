package topology

import (
	"fmt"
	"strings"

	"github.com/turtacn/molsim/pkg/errors"
)

// ID is an id-expression that resolves to a set of atoms of one molecule.
// AtomsIn returns the atoms ascending and without duplicates.  Index IDs fail
// with InvalidArgument when out of range; name IDs fail with NotFound when
// nothing matches.
type ID interface {
	AtomsIn(info *Info) ([]AtomIdx, error)
	String() string
}

// ── Index IDs ────────────────────────────────────────────────────────────────

func (a AtomIdx) AtomsIn(info *Info) ([]AtomIdx, error) {
	if err := info.CheckAtom(a); err != nil {
		return nil, err
	}
	return []AtomIdx{a}, nil
}

func (a AtomIdx) String() string { return fmt.Sprintf("AtomIdx(%d)", int(a)) }

func (cg CGIdx) AtomsIn(info *Info) ([]AtomIdx, error) {
	if err := info.CheckCutGroup(cg); err != nil {
		return nil, err
	}
	return append([]AtomIdx(nil), info.AtomsInCutGroup(cg)...), nil
}

func (cg CGIdx) String() string { return fmt.Sprintf("CGIdx(%d)", int(cg)) }

func (r ResIdx) AtomsIn(info *Info) ([]AtomIdx, error) {
	if err := info.CheckResidue(r); err != nil {
		return nil, err
	}
	return append([]AtomIdx(nil), info.AtomsInResidue(r)...), nil
}

func (r ResIdx) String() string { return fmt.Sprintf("ResIdx(%d)", int(r)) }

func (c ChainIdx) AtomsIn(info *Info) ([]AtomIdx, error) {
	if err := info.CheckChain(c); err != nil {
		return nil, err
	}
	return info.AtomsInChain(c), nil
}

func (c ChainIdx) String() string { return fmt.Sprintf("ChainIdx(%d)", int(c)) }

func (s SegIdx) AtomsIn(info *Info) ([]AtomIdx, error) {
	if err := info.CheckSegment(s); err != nil {
		return nil, err
	}
	return append([]AtomIdx(nil), info.AtomsInSegment(s)...), nil
}

func (s SegIdx) String() string { return fmt.Sprintf("SegIdx(%d)", int(s)) }

// ── Name IDs ─────────────────────────────────────────────────────────────────

type (
	// AtomName matches atoms by name.
	AtomName string
	// CutGroupName matches every atom of the cut groups with this name.
	CutGroupName string
	// ResName matches every atom of the residues with this name.
	ResName string
	// ResNum matches every atom of the residues with this number.
	ResNum int
	// ChainName matches every atom of the chains with this name.
	ChainName string
	// SegName matches every atom of the segments with this name.
	SegName string
)

func notMatched(id ID) error {
	return errors.NotFound("id matches no atoms").WithDetail(id.String())
}

func (n AtomName) AtomsIn(info *Info) ([]AtomIdx, error) {
	var out []AtomIdx
	for i := range info.atoms {
		if info.atoms[i].name == string(n) {
			out = append(out, AtomIdx(i))
		}
	}
	if len(out) == 0 {
		return nil, notMatched(n)
	}
	return out, nil
}

func (n AtomName) String() string { return fmt.Sprintf("AtomName(%q)", string(n)) }

func (n CutGroupName) AtomsIn(info *Info) ([]AtomIdx, error) {
	var out []AtomIdx
	for i := range info.cgs {
		if info.cgs[i].name == string(n) {
			out = append(out, info.cgs[i].atoms...)
		}
	}
	if len(out) == 0 {
		return nil, notMatched(n)
	}
	return sortUnique(out), nil
}

func (n CutGroupName) String() string { return fmt.Sprintf("CutGroupName(%q)", string(n)) }

func (n ResName) AtomsIn(info *Info) ([]AtomIdx, error) {
	var out []AtomIdx
	for i := range info.residues {
		if info.residues[i].name == string(n) {
			out = append(out, info.residues[i].atoms...)
		}
	}
	if len(out) == 0 {
		return nil, notMatched(n)
	}
	return sortUnique(out), nil
}

func (n ResName) String() string { return fmt.Sprintf("ResName(%q)", string(n)) }

func (n ResNum) AtomsIn(info *Info) ([]AtomIdx, error) {
	var out []AtomIdx
	for i := range info.residues {
		if info.residues[i].number == int(n) {
			out = append(out, info.residues[i].atoms...)
		}
	}
	if len(out) == 0 {
		return nil, notMatched(n)
	}
	return sortUnique(out), nil
}

func (n ResNum) String() string { return fmt.Sprintf("ResNum(%d)", int(n)) }

func (n ChainName) AtomsIn(info *Info) ([]AtomIdx, error) {
	var out []AtomIdx
	for i := range info.chains {
		if info.chains[i].name == string(n) {
			out = append(out, info.AtomsInChain(ChainIdx(i))...)
		}
	}
	if len(out) == 0 {
		return nil, notMatched(n)
	}
	return sortUnique(out), nil
}

func (n ChainName) String() string { return fmt.Sprintf("ChainName(%q)", string(n)) }

func (n SegName) AtomsIn(info *Info) ([]AtomIdx, error) {
	var out []AtomIdx
	for i := range info.segments {
		if info.segments[i].name == string(n) {
			out = append(out, info.segments[i].atoms...)
		}
	}
	if len(out) == 0 {
		return nil, notMatched(n)
	}
	return sortUnique(out), nil
}

func (n SegName) String() string { return fmt.Sprintf("SegName(%q)", string(n)) }

// ── Combinators ──────────────────────────────────────────────────────────────

type anyOf []ID

// Or matches the atoms of any of ids.  Branches that match nothing are
// skipped; range errors are returned.  NotFound is reported only when no
// branch matches.
func Or(ids ...ID) ID { return anyOf(ids) }

func (o anyOf) AtomsIn(info *Info) ([]AtomIdx, error) {
	var out []AtomIdx
	for _, id := range o {
		atoms, err := id.AtomsIn(info)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, atoms...)
	}
	if len(out) == 0 {
		return nil, notMatched(o)
	}
	return sortUnique(out), nil
}

func (o anyOf) String() string { return joinIDs("Or", o) }

type allOf []ID

// And matches the atoms matched by every one of ids.
func And(ids ...ID) ID { return allOf(ids) }

func (a allOf) AtomsIn(info *Info) ([]AtomIdx, error) {
	if len(a) == 0 {
		return nil, notMatched(a)
	}
	acc, err := a[0].AtomsIn(info)
	if err != nil {
		return nil, err
	}
	for _, id := range a[1:] {
		atoms, err := id.AtomsIn(info)
		if err != nil {
			return nil, err
		}
		acc = intersectSorted(acc, atoms)
	}
	if len(acc) == 0 {
		return nil, notMatched(a)
	}
	return acc, nil
}

func (a allOf) String() string { return joinIDs("And", a) }

type everyAtom struct{}

// All matches every atom of the molecule (possibly none).
var All ID = everyAtom{}

func (everyAtom) AtomsIn(info *Info) ([]AtomIdx, error) {
	out := make([]AtomIdx, info.NAtoms())
	for i := range out {
		out[i] = AtomIdx(i)
	}
	return out, nil
}

func (everyAtom) String() string { return "All" }

func joinIDs(op string, ids []ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return op + "(" + strings.Join(parts, ", ") + ")"
}

func intersectSorted(a, b []AtomIdx) []AtomIdx {
	out := make([]AtomIdx, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
