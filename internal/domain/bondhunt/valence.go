package bondhunt

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/internal/domain/connectivity"
	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/pkg/errors"
)

type neighbour struct {
	atom topology.AtomIdx
	d2   float64
}

// trimValence disconnects, for every selected atom in ascending order, the
// longest bonds beyond its element's limit.  Ranking is by squared distance
// and then by neighbour index, so equal lengths never collapse.  Counts are
// read when the atom is reached, so an atom already brought to its limit by
// an earlier neighbour is left alone.  Bonds to atoms outside the selection
// count towards the limit but are never removed.
func trimValence(in *input, work *connectivity.Connectivity) ([]connectivity.BondID, error) {
	info := in.sel.Info()
	var removed []connectivity.BondID

	for _, a := range in.sel.SelectedAtoms() {
		idx := info.CGAtomIdx(a)
		excess := work.NConnections(a) - in.elems.At(idx).MaxBonds
		if excess <= 0 {
			continue
		}

		x := in.coords.At(idx)
		var ranked []neighbour
		for _, b := range work.ConnectionsTo(a) {
			if !in.sel.IsSelected(b) {
				continue
			}
			ranked = append(ranked, neighbour{atom: b, d2: r3.Norm2(r3.Sub(x, in.coords.At(info.CGAtomIdx(b))))})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].d2 != ranked[j].d2 {
				return ranked[i].d2 > ranked[j].d2
			}
			return ranked[i].atom > ranked[j].atom
		})
		if excess > len(ranked) {
			excess = len(ranked)
		}

		for _, n := range ranked[:excess] {
			if err := work.Disconnect(a, n.atom); err != nil {
				return nil, errors.Wrap(err, errors.CodeInternal, "valence correction failed")
			}
			removed = append(removed, connectivity.NewBondID(a, n.atom))
		}
	}
	return removed, nil
}
