// Package bonding provides the application-level service that turns a parsed
// structure file into an inferred bond report.  It sits between the CLI and
// the bondhunt domain package.
package bonding

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/internal/domain/bondhunt"
	"github.com/turtacn/molsim/internal/domain/connectivity"
	"github.com/turtacn/molsim/internal/domain/molecule"
	"github.com/turtacn/molsim/internal/domain/selection"
	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/internal/infrastructure/format"
	"github.com/turtacn/molsim/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsim/pkg/errors"
	"github.com/turtacn/molsim/pkg/types/element"
)

// DefaultChunkSize is used when neither the input nor the service sets one.
const DefaultChunkSize = 32

// Service defines the bonding application operations.
type Service interface {
	Infer(ctx context.Context, input *InferInput) (*Report, error)
}

// InferInput contains input for inferring bonds.
type InferInput struct {
	Structure *format.Structure

	// ChunkSize overrides the service chunk size when positive.
	ChunkSize int

	// Selection is an atom index list such as "0-4,7".  Empty selects every
	// atom.
	Selection string
}

// Bond is one inferred bond.
type Bond struct {
	Atom0   int     `json:"atom0"`
	Atom1   int     `json:"atom1"`
	Symbol0 string  `json:"symbol0"`
	Symbol1 string  `json:"symbol1"`
	Length  float64 `json:"length"`
}

// AtomValence is the bond count of one selected atom.
type AtomValence struct {
	Atom     int    `json:"atom"`
	Symbol   string `json:"symbol"`
	Bonds    int    `json:"bonds"`
	MaxBonds int    `json:"max_bonds"`
}

// Agreement compares inferred bonds with the bonds the file declares, both
// restricted to the selection.
type Agreement struct {
	Declared int      `json:"declared"`
	Matched  int      `json:"matched"`
	Missing  [][2]int `json:"missing,omitempty"`
	Extra    [][2]int `json:"extra,omitempty"`
}

// Report is the result of Infer.
type Report struct {
	Title      string        `json:"title"`
	Variant    string        `json:"variant"`
	NAtoms     int           `json:"n_atoms"`
	NSelected  int           `json:"n_selected"`
	NCutGroups int           `json:"n_cut_groups"`
	Bonds      []Bond        `json:"bonds"`
	Valence    []AtomValence `json:"valence"`
	Agreement  *Agreement    `json:"agreement,omitempty"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// Config parameterizes the service.  Props must name the keys the hunter
// reads.
type Config struct {
	ChunkSize int
	Props     molecule.PropertyMap
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	hunter bondhunt.Hunter
	cfg    Config
	logger logging.Logger
}

// NewService creates a bonding service around hunter.
func NewService(hunter bondhunt.Hunter, cfg Config, logger logging.Logger) Service {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{hunter: hunter, cfg: cfg, logger: logger.Named("bonding")}
}

func (s *serviceImpl) Infer(ctx context.Context, input *InferInput) (*Report, error) {
	if input == nil || input.Structure == nil {
		return nil, errors.InvalidArgument("structure is required")
	}
	start := time.Now()
	st := input.Structure

	chunk := s.cfg.ChunkSize
	if input.ChunkSize > 0 {
		chunk = input.ChunkSize
	}
	names := make([]string, st.NAtoms())
	for i, a := range st.Atoms {
		names[i] = a.Symbol
	}
	info, err := topology.Chunked(st.Title, st.NAtoms(), chunk, names)
	if err != nil {
		return nil, err
	}

	elems, err := resolveElements(st)
	if err != nil {
		return nil, err
	}
	pos := st.Positions()
	coords, err := molecule.FromAtoms(info, pos)
	if err != nil {
		return nil, err
	}
	el, err := molecule.FromAtoms(info, elems)
	if err != nil {
		return nil, err
	}
	props := molecule.NewProperties().
		Set(s.cfg.Props.CoordinatesKey(), coords).
		Set(s.cfg.Props.ElementKey(), el)

	sel, err := s.selection(info, input.Selection)
	if err != nil {
		return nil, err
	}

	conn, err := s.hunter.Hunt(ctx, molecule.NewView(sel, props))
	if err != nil {
		s.logger.Warn("bond inference failed", logging.ErrFields(err)...)
		return nil, err
	}

	report := &Report{
		Title:      st.Title,
		Variant:    s.hunter.Variant(),
		NAtoms:     info.NAtoms(),
		NSelected:  sel.NSelected(),
		NCutGroups: info.NCutGroups(),
		Bonds:      describeBonds(conn.Bonds(), pos, elems),
		Valence:    valence(conn, sel, elems),
	}
	if len(st.Bonds) > 0 {
		report.Agreement, err = compare(conn, sel, st.Bonds)
		if err != nil {
			return nil, err
		}
	}
	report.Elapsed = time.Since(start)

	logging.LogOperationDuration(s.logger, "infer", start,
		logging.String("title", st.Title),
		logging.String("variant", report.Variant),
		logging.Int("atoms", report.NSelected),
		logging.Int("bonds", len(report.Bonds)),
	)
	return report, nil
}

func (s *serviceImpl) selection(info *topology.Info, list string) (*selection.AtomSelection, error) {
	if list == "" {
		return selection.New(info), nil
	}
	atoms, err := ParseIndexList(list, info.NAtoms())
	if err != nil {
		return nil, err
	}
	ids := make([]topology.ID, len(atoms))
	for i, a := range atoms {
		ids[i] = topology.AtomIdx(a)
	}
	return selection.NewFrom(info, topology.Or(ids...))
}

// resolveElements reads each atom symbol as an element symbol first, then
// as an atom name.
func resolveElements(st *format.Structure) ([]element.Element, error) {
	out := make([]element.Element, st.NAtoms())
	for i, a := range st.Atoms {
		e, err := element.BySymbol(a.Symbol)
		if err != nil {
			if e, err = element.FromAtomName(a.Symbol); err != nil {
				return nil, errors.Wrap(err, errors.CodeNotFound, "unknown element").
					WithDetail(fmt.Sprintf("atom=%d symbol=%q", i, a.Symbol))
			}
		}
		out[i] = e
	}
	return out, nil
}

func describeBonds(bonds []connectivity.BondID, pos []r3.Vec, elems []element.Element) []Bond {
	out := make([]Bond, len(bonds))
	for i, b := range bonds {
		a0, a1 := int(b.Atom0), int(b.Atom1)
		out[i] = Bond{
			Atom0:   a0,
			Atom1:   a1,
			Symbol0: elems[a0].Symbol,
			Symbol1: elems[a1].Symbol,
			Length:  r3.Norm(r3.Sub(pos[a0], pos[a1])),
		}
	}
	return out
}

func valence(conn *connectivity.Connectivity, sel *selection.AtomSelection, elems []element.Element) []AtomValence {
	atoms := sel.SelectedAtoms()
	out := make([]AtomValence, len(atoms))
	for i, a := range atoms {
		out[i] = AtomValence{
			Atom:     int(a),
			Symbol:   elems[a].Symbol,
			Bonds:    conn.NConnections(a),
			MaxBonds: elems[a].MaxBonds,
		}
	}
	return out
}

func compare(conn *connectivity.Connectivity, sel *selection.AtomSelection, declared [][2]int) (*Agreement, error) {
	ids := make([]connectivity.BondID, 0, len(declared))
	for _, d := range declared {
		if d[0] == d[1] || d[0] < 0 || d[1] < 0 || d[0] >= sel.Info().NAtoms() || d[1] >= sel.Info().NAtoms() {
			return nil, errors.InvalidArgument("declared bond refers to a missing atom").
				WithDetail(fmt.Sprintf("bond=%d-%d", d[0], d[1]))
		}
		ids = append(ids, connectivity.NewBondID(topology.AtomIdx(d[0]), topology.AtomIdx(d[1])))
	}
	want := connectivity.InScope(connectivity.SortBonds(ids), sel)

	ag := &Agreement{Declared: len(want)}
	seen := make(map[connectivity.BondID]bool, len(want))
	for _, b := range want {
		seen[b] = true
		if conn.AreConnected(b.Atom0, b.Atom1) {
			ag.Matched++
		} else {
			ag.Missing = append(ag.Missing, [2]int{int(b.Atom0), int(b.Atom1)})
		}
	}
	for _, b := range conn.Bonds() {
		if !seen[b] {
			ag.Extra = append(ag.Extra, [2]int{int(b.Atom0), int(b.Atom1)})
		}
	}
	return ag, nil
}
