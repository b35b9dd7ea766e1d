// Package bondhunt infers covalent connectivity from atom positions.
//
// A hunter bonds two selected atoms i and j when
//
//	|xᵢ - xⱼ|² < (t·(rᵢ + rⱼ))²
//
// where r is the element covalent radius and t the tolerance.  The chemical
// variant then trims every selected atom back to its element's maximum bond
// count, dropping the longest bonds first.
//
// Hunters are immutable once built and safe for concurrent use.
package bondhunt

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/turtacn/molsim/internal/domain/connectivity"
	"github.com/turtacn/molsim/internal/domain/molecule"
	"github.com/turtacn/molsim/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsim/pkg/errors"
)

// DefaultTolerance suits general bonding.  Chemically validated bonding
// usually wants a stricter 1.0.
const DefaultTolerance = 1.1

// Variant names, also used as metric labels.
const (
	VariantCovalent = "covalent"
	VariantChemical = "chemical"
)

// Hunter infers bonds for the selected atoms of a molecule view.
type Hunter interface {
	// Hunt returns a new graph holding the inferred bonds.
	Hunt(ctx context.Context, view molecule.View) (*connectivity.Connectivity, error)

	// HuntInto adds the inferred bonds to conn.  On error conn is unchanged.
	// Bonds already in conn count towards valence limits; the chemical
	// variant removes only bonds between selected atoms.
	HuntInto(ctx context.Context, view molecule.View, conn *connectivity.Connectivity) error

	// Variant is VariantCovalent or VariantChemical.
	Variant() string
}

// Recorder receives hunt statistics.  The prometheus HunterMetrics type
// satisfies it.
type Recorder interface {
	HuntFinished(variant string, atoms, bonds int, elapsed time.Duration, err error)
	ChunkPairs(scanned, pruned int)
	ValenceBondsRemoved(n int)
}

type nopRecorder struct{}

func (nopRecorder) HuntFinished(string, int, int, time.Duration, error) {}
func (nopRecorder) ChunkPairs(int, int)                                 {}
func (nopRecorder) ValenceBondsRemoved(int)                             {}

// Config selects and parameterizes a hunter.  It is the `hunter` section of
// the configuration file.
type Config struct {
	Tolerance      float64 `mapstructure:"tolerance" json:"tolerance"`
	EnforceValence bool    `mapstructure:"enforce_valence" json:"enforce_valence"`
	Workers        int     `mapstructure:"workers" json:"workers"`

	molecule.PropertyMap `mapstructure:",squash"`
}

// DefaultConfig returns the covalent variant at DefaultTolerance.
func DefaultConfig() Config {
	return Config{Tolerance: DefaultTolerance, Workers: 1}
}

type options struct {
	tolerance float64
	workers   int
	props     molecule.PropertyMap
	logger    logging.Logger
	recorder  Recorder
}

// Option configures a hunter.
type Option func(*options)

// WithTolerance sets the cutoff scale.  It must be positive and finite; the
// check happens on every hunt so that a bad value is reported as an error.
func WithTolerance(t float64) Option { return func(o *options) { o.tolerance = t } }

// WithWorkers sets how many chunk rows are scanned concurrently.  Values
// below 2 scan sequentially.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithPropertyMap renames the coordinate and element keys.
func WithPropertyMap(m molecule.PropertyMap) Option { return func(o *options) { o.props = m } }

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// BondHunter implements both variants.
type BondHunter struct {
	variant string
	valence bool
	opts    options
}

var _ Hunter = (*BondHunter)(nil)

func newHunter(variant string, valence bool, opts []Option) *BondHunter {
	o := options{
		tolerance: DefaultTolerance,
		workers:   1,
		logger:    logging.NewNopLogger(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.Named("bondhunt").With(logging.String("variant", variant))
	return &BondHunter{variant: variant, valence: valence, opts: o}
}

// NewCovalent returns the geometric-only hunter.
func NewCovalent(opts ...Option) *BondHunter { return newHunter(VariantCovalent, false, opts) }

// NewChemical returns the hunter with valence correction.
func NewChemical(opts ...Option) *BondHunter { return newHunter(VariantChemical, true, opts) }

// New builds the variant cfg selects.  opts are applied after cfg.
func New(cfg Config, opts ...Option) *BondHunter {
	base := []Option{
		WithTolerance(cfg.Tolerance),
		WithWorkers(cfg.Workers),
		WithPropertyMap(cfg.PropertyMap),
	}
	if cfg.EnforceValence {
		return NewChemical(append(base, opts...)...)
	}
	return NewCovalent(append(base, opts...)...)
}

func (h *BondHunter) Variant() string       { return h.variant }
func (h *BondHunter) Tolerance() float64    { return h.opts.tolerance }
func (h *BondHunter) EnforcesValence() bool { return h.valence }

func (h *BondHunter) String() string {
	return fmt.Sprintf("BondHunter(%s, tolerance=%g)", h.variant, h.opts.tolerance)
}

// Hunt implements Hunter.
func (h *BondHunter) Hunt(ctx context.Context, view molecule.View) (*connectivity.Connectivity, error) {
	if view.Selection == nil {
		return nil, errors.InvalidArgument("view has no selection")
	}
	conn := connectivity.New(view.Selection.Info())
	if err := h.HuntInto(ctx, view, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// HuntInto implements Hunter.
func (h *BondHunter) HuntInto(ctx context.Context, view molecule.View, conn *connectivity.Connectivity) (err error) {
	start := time.Now()
	var atoms, added int
	defer func() {
		h.opts.recorder.HuntFinished(h.variant, atoms, added, time.Since(start), err)
		if err != nil {
			h.opts.logger.Debug("bond hunt failed", logging.ErrFields(err)...)
		}
	}()

	in, err := h.prepare(view, conn)
	if err != nil {
		return err
	}
	atoms = in.sel.NSelected()
	if in.sel.IsEmpty() {
		return nil
	}

	found, stats, err := h.scan(ctx, in)
	if err != nil {
		return err
	}
	h.opts.recorder.ChunkPairs(stats.scanned, stats.pruned)

	if !h.valence {
		if err := conn.Apply(found); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "inferred bond rejected")
		}
		added = len(found)
		h.opts.logger.Debug("bond hunt finished",
			logging.Int("atoms", atoms),
			logging.Int("chunks", stats.chunks),
			logging.Int("pairs_scanned", stats.scanned),
			logging.Int("pairs_pruned", stats.pruned),
			logging.Int("bonds", added),
		)
		return nil
	}

	work := conn.Clone()
	if err := work.Apply(found); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "inferred bond rejected")
	}
	removed, err := trimValence(in, work)
	if err != nil {
		return err
	}
	h.opts.recorder.ValenceBondsRemoved(len(removed))

	if err := commit(conn, work); err != nil {
		return err
	}
	for _, b := range found {
		if work.AreConnected(b.Atom0, b.Atom1) {
			added++
		}
	}
	h.opts.logger.Debug("bond hunt finished",
		logging.Int("atoms", atoms),
		logging.Int("chunks", stats.chunks),
		logging.Int("pairs_scanned", stats.scanned),
		logging.Int("pairs_pruned", stats.pruned),
		logging.Int("bonds", added),
		logging.Int("valence_removed", len(removed)),
	)
	return nil
}

// prepare validates arguments, then properties, then compatibility, then the
// elements of the selected atoms, in that order.  No coordinates are read.
func (h *BondHunter) prepare(view molecule.View, conn *connectivity.Connectivity) (*input, error) {
	t := h.opts.tolerance
	if !(t > 0) || math.IsInf(t, 0) {
		return nil, errors.InvalidArgument("tolerance must be positive and finite").
			WithDetail(fmt.Sprintf("tolerance=%g", t))
	}
	if view.Selection == nil {
		return nil, errors.InvalidArgument("view has no selection")
	}
	if conn == nil {
		return nil, errors.InvalidArgument("nil connectivity")
	}

	coords, err := molecule.CoordinatesOf(view.Properties, h.opts.props.CoordinatesKey())
	if err != nil {
		return nil, err
	}
	elems, err := molecule.ElementsOf(view.Properties, h.opts.props.ElementKey())
	if err != nil {
		return nil, err
	}

	info := view.Selection.Info()
	if err := coords.AssertCompatibleWith(info); err != nil {
		return nil, err
	}
	if err := elems.AssertCompatibleWith(info); err != nil {
		return nil, err
	}
	if err := info.AssertCompatibleWith(conn.Info()); err != nil {
		return nil, err
	}
	for _, a := range view.Selection.SelectedAtoms() {
		if err := elems.At(info.CGAtomIdx(a)).Validate(); err != nil {
			if ae, ok := err.(*errors.AppError); ok {
				return nil, ae.WithDetail(fmt.Sprintf("atom=%d %s", a, ae.Detail))
			}
			return nil, err
		}
	}
	return &input{sel: view.Selection, coords: coords, elems: elems, tolerance: t, workers: h.opts.workers}, nil
}

// commit makes conn hold exactly the bonds of work.
func commit(conn, work *connectivity.Connectivity) error {
	var gone []connectivity.BondID
	for _, b := range conn.Bonds() {
		if !work.AreConnected(b.Atom0, b.Atom1) {
			gone = append(gone, b)
		}
	}
	if err := conn.Remove(gone); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "valence correction rejected")
	}
	if err := conn.Apply(work.Bonds()); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "valence correction rejected")
	}
	return nil
}
