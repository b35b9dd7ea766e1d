// Package connectivity holds the bond graph of one molecule.
package connectivity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/pkg/errors"
)

// Connectivity is an undirected simple graph over the atoms of one molecule.
// Bonds are symmetric by construction and an atom is never bonded to itself.
// A Connectivity is not safe for concurrent mutation.
type Connectivity struct {
	info   *topology.Info
	g      *simple.UndirectedGraph
	nBonds int
}

// New returns a Connectivity with no bonds.
func New(info *topology.Info) *Connectivity {
	return &Connectivity{info: info, g: simple.NewUndirectedGraph()}
}

// Info returns the layout the graph indexes into.
func (c *Connectivity) Info() *topology.Info { return c.info }

func (c *Connectivity) String() string {
	return fmt.Sprintf("Connectivity(%s, %d bonds)", c.info.Name(), c.nBonds)
}

func (c *Connectivity) checkPair(a, b topology.AtomIdx) error {
	if err := c.info.CheckAtom(a); err != nil {
		return err
	}
	if err := c.info.CheckAtom(b); err != nil {
		return err
	}
	if a == b {
		return errors.InvalidArgument("atom cannot be bonded to itself").
			WithDetail(fmt.Sprintf("atom=%d", a))
	}
	return nil
}

// Connect adds the bond a-b.  Adding an existing bond is a no-op.
func (c *Connectivity) Connect(a, b topology.AtomIdx) error {
	if err := c.checkPair(a, b); err != nil {
		return err
	}
	c.connect(a, b)
	return nil
}

func (c *Connectivity) connect(a, b topology.AtomIdx) {
	if c.g.HasEdgeBetween(int64(a), int64(b)) {
		return
	}
	c.g.SetEdge(c.g.NewEdge(c.node(a), c.node(b)))
	c.nBonds++
}

func (c *Connectivity) node(a topology.AtomIdx) graph.Node {
	if n := c.g.Node(int64(a)); n != nil {
		return n
	}
	return simple.Node(a)
}

// Disconnect removes the bond a-b if present.
func (c *Connectivity) Disconnect(a, b topology.AtomIdx) error {
	if err := c.checkPair(a, b); err != nil {
		return err
	}
	c.disconnect(a, b)
	return nil
}

func (c *Connectivity) disconnect(a, b topology.AtomIdx) {
	if !c.g.HasEdgeBetween(int64(a), int64(b)) {
		return
	}
	c.g.RemoveEdge(int64(a), int64(b))
	c.nBonds--
}

// Apply validates every bond in add and then connects them all.  Either all
// bonds are added or, on error, none.
func (c *Connectivity) Apply(add []BondID) error {
	for _, b := range add {
		if err := c.checkPair(b.Atom0, b.Atom1); err != nil {
			return err
		}
	}
	for _, b := range add {
		c.connect(b.Atom0, b.Atom1)
	}
	return nil
}

// Remove validates every bond in del and then disconnects them all.
func (c *Connectivity) Remove(del []BondID) error {
	for _, b := range del {
		if err := c.checkPair(b.Atom0, b.Atom1); err != nil {
			return err
		}
	}
	for _, b := range del {
		c.disconnect(b.Atom0, b.Atom1)
	}
	return nil
}

// AreConnected reports whether a and b are bonded.
func (c *Connectivity) AreConnected(a, b topology.AtomIdx) bool {
	return a != b && c.g.HasEdgeBetween(int64(a), int64(b))
}

// NConnections returns the number of bonds of a.
func (c *Connectivity) NConnections(a topology.AtomIdx) int {
	if c.g.Node(int64(a)) == nil {
		return 0
	}
	return c.g.From(int64(a)).Len()
}

// ConnectionsTo returns the atoms bonded to a in ascending order.
func (c *Connectivity) ConnectionsTo(a topology.AtomIdx) []topology.AtomIdx {
	if c.g.Node(int64(a)) == nil {
		return nil
	}
	nodes := graph.NodesOf(c.g.From(int64(a)))
	out := make([]topology.AtomIdx, len(nodes))
	for i, n := range nodes {
		out[i] = topology.AtomIdx(n.ID())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NBonds returns the number of bonds.
func (c *Connectivity) NBonds() int { return c.nBonds }

// bonded returns the atoms with at least one bond in ascending order.
func (c *Connectivity) bonded() []topology.AtomIdx {
	nodes := graph.NodesOf(c.g.Nodes())
	out := make([]topology.AtomIdx, 0, len(nodes))
	for _, n := range nodes {
		if c.g.From(n.ID()).Len() > 0 {
			out = append(out, topology.AtomIdx(n.ID()))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bonds returns every bond, lowest atom first, sorted.
func (c *Connectivity) Bonds() []BondID {
	out := make([]BondID, 0, c.nBonds)
	for _, a := range c.bonded() {
		for _, b := range c.ConnectionsTo(a) {
			if b > a {
				out = append(out, BondID{Atom0: a, Atom1: b})
			}
		}
	}
	return out
}

// Angles returns every bonded triple a-b-c with a < c, sorted.
func (c *Connectivity) Angles() []AngleID {
	var out []AngleID
	for _, mid := range c.bonded() {
		nbrs := c.ConnectionsTo(mid)
		for i := 0; i < len(nbrs); i++ {
			for j := i + 1; j < len(nbrs); j++ {
				out = append(out, AngleID{Atom0: nbrs[i], Atom1: mid, Atom2: nbrs[j]}.canonical())
			}
		}
	}
	sortIDs(out)
	return out
}

// Dihedrals returns every bonded chain a-b-c-d with distinct atoms, each
// reported once in canonical orientation, sorted.
func (c *Connectivity) Dihedrals() []DihedralID {
	var out []DihedralID
	for _, bond := range c.Bonds() {
		left := c.ConnectionsTo(bond.Atom0)
		right := c.ConnectionsTo(bond.Atom1)
		for _, a := range left {
			if a == bond.Atom1 {
				continue
			}
			for _, d := range right {
				if d == bond.Atom0 || d == a {
					continue
				}
				out = append(out, DihedralID{Atom0: a, Atom1: bond.Atom0, Atom2: bond.Atom1, Atom3: d}.canonical())
			}
		}
	}
	sortIDs(out)
	return out
}

// Clone returns an independent copy.
func (c *Connectivity) Clone() *Connectivity {
	g := simple.NewUndirectedGraph()
	graph.Copy(g, c.g)
	return &Connectivity{info: c.info, g: g, nBonds: c.nBonds}
}

// Equal reports whether c and o hold the same bonds over the same molecule.
func (c *Connectivity) Equal(o *Connectivity) bool {
	if !c.info.IsCompatibleWith(o.info) || c.nBonds != o.nBonds {
		return false
	}
	for _, b := range c.Bonds() {
		if !o.AreConnected(b.Atom0, b.Atom1) {
			return false
		}
	}
	return true
}
