package bondhunt

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/internal/domain/connectivity"
	"github.com/turtacn/molsim/internal/domain/molecule"
	"github.com/turtacn/molsim/internal/domain/selection"
	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/pkg/errors"
	"github.com/turtacn/molsim/pkg/types/element"
)

// input is a validated hunt request.
type input struct {
	sel       *selection.AtomSelection
	coords    *molecule.Coordinates
	elems     *molecule.Elements
	tolerance float64
	workers   int
}

// chunkScan holds the selected atoms of one chunk, ready for pair tests.
type chunkScan struct {
	atoms []topology.AtomIdx
	pos   []r3.Vec
	reach []float64 // tolerance · covalent radius

	// Axis-aligned box over pos.
	center   r3.Vec
	halfDiag float64
	maxReach float64
}

type scanStats struct {
	chunks  int
	scanned int
	pruned  int
}

type rowResult struct {
	bonds   []connectivity.BondID
	scanned int
	pruned  int
}

// chunkList returns the chunks to scan in ascending order.
func (in *input) chunkList() []topology.CGIdx {
	if !in.sel.SelectedAllCutGroups() {
		return in.sel.SelectedCutGroups()
	}
	out := make([]topology.CGIdx, in.sel.Info().NCutGroups())
	for i := range out {
		out[i] = topology.CGIdx(i)
	}
	return out
}

// gather reads the selected atoms of cg, leaving out dummy atoms.  A fully
// selected chunk without dummies shares the coordinate slice; otherwise only
// the kept positions are copied.  The result may hold no atoms.
func (in *input) gather(cg topology.CGIdx) chunkScan {
	info := in.sel.Info()
	members := info.AtomsInCutGroup(cg)
	pos := in.coords.Chunk(cg)
	elems := in.elems.Chunk(cg)

	var c chunkScan
	if in.sel.SelectedAllInCutGroup(cg) && !anyDummy(elems) {
		c.atoms = members
		c.pos = pos
		c.reach = make([]float64, len(elems))
		for i, e := range elems {
			c.reach[i] = in.tolerance * e.CovalentRadius
		}
	} else {
		idx := in.sel.SelectedIndicesInCutGroup(cg)
		c.atoms = make([]topology.AtomIdx, 0, len(idx))
		c.pos = make([]r3.Vec, 0, len(idx))
		c.reach = make([]float64, 0, len(idx))
		for _, i := range idx {
			if elems[i].IsDummy() {
				continue
			}
			c.atoms = append(c.atoms, members[i])
			c.pos = append(c.pos, pos[i])
			c.reach = append(c.reach, in.tolerance*elems[i].CovalentRadius)
		}
	}
	if len(c.pos) > 0 {
		c.bound()
	}
	return c
}

func anyDummy(elems []element.Element) bool {
	for _, e := range elems {
		if e.IsDummy() {
			return true
		}
	}
	return false
}

func (c *chunkScan) bound() {
	lo, hi := c.pos[0], c.pos[0]
	for _, p := range c.pos[1:] {
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	c.center = r3.Scale(0.5, r3.Add(lo, hi))
	c.halfDiag = r3.Norm(r3.Sub(hi, c.center))
	for _, r := range c.reach {
		c.maxReach = math.Max(c.maxReach, r)
	}
}

// disjoint reports whether no atom of a can bond to any atom of b.  Every
// pair distance is at least |cₐ-c_b| - ρₐ - ρ_b, and no cutoff exceeds the
// two largest reaches.
func disjoint(a, b *chunkScan) bool {
	limit := a.halfDiag + b.halfDiag + a.maxReach + b.maxReach
	return r3.Norm2(r3.Sub(a.center, b.center)) > limit*limit
}

func bonded(x, y r3.Vec, rx, ry float64) bool {
	cut := rx + ry
	return r3.Norm2(r3.Sub(x, y)) < cut*cut
}

// scanRow tests chunk i against itself and every later chunk.
func scanRow(chunks []chunkScan, i int) rowResult {
	var out rowResult
	a := &chunks[i]

	out.scanned++
	for p := 0; p < len(a.pos); p++ {
		for q := p + 1; q < len(a.pos); q++ {
			if bonded(a.pos[p], a.pos[q], a.reach[p], a.reach[q]) {
				out.bonds = append(out.bonds, connectivity.NewBondID(a.atoms[p], a.atoms[q]))
			}
		}
	}

	for j := i + 1; j < len(chunks); j++ {
		b := &chunks[j]
		if disjoint(a, b) {
			out.pruned++
			continue
		}
		out.scanned++
		for p := range a.pos {
			for q := range b.pos {
				if bonded(a.pos[p], b.pos[q], a.reach[p], b.reach[q]) {
					out.bonds = append(out.bonds, connectivity.NewBondID(a.atoms[p], b.atoms[q]))
				}
			}
		}
	}
	return out
}

func cancelled(err error) error {
	return errors.Wrap(err, errors.CodeCancelled, "bond hunt cancelled")
}

// scan runs the geometric pass and returns the sorted, de-duplicated bonds.
// Rows are independent; with more than one worker they run on an errgroup
// and are merged in row order afterwards.
func (h *BondHunter) scan(ctx context.Context, in *input) ([]connectivity.BondID, scanStats, error) {
	cgs := in.chunkList()
	chunks := make([]chunkScan, 0, len(cgs))
	for _, cg := range cgs {
		if c := in.gather(cg); len(c.atoms) > 0 {
			chunks = append(chunks, c)
		}
	}

	rows := make([]rowResult, len(chunks))
	if in.workers < 2 {
		for i := range chunks {
			if err := ctx.Err(); err != nil {
				return nil, scanStats{}, cancelled(err)
			}
			rows[i] = scanRow(chunks, i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(in.workers)
		for i := range chunks {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return cancelled(err)
				}
				rows[i] = scanRow(chunks, i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, scanStats{}, err
		}
	}

	stats := scanStats{chunks: len(chunks)}
	var n int
	for _, r := range rows {
		n += len(r.bonds)
	}
	bonds := make([]connectivity.BondID, 0, n)
	for _, r := range rows {
		bonds = append(bonds, r.bonds...)
		stats.scanned += r.scanned
		stats.pruned += r.pruned
	}
	return connectivity.SortBonds(bonds), stats, nil
}
