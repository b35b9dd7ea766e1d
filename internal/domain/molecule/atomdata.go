package molecule

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/pkg/errors"
	"github.com/turtacn/molsim/pkg/types/element"
)

// AtomValues holds one value per atom, laid out chunk by chunk in the order
// of the owning layout.
type AtomValues[T any] struct {
	infoID uuid.UUID
	chunks [][]T
}

// Coordinates are atom positions in Ångström.
type Coordinates = AtomValues[r3.Vec]

// Elements are atom elements.
type Elements = AtomValues[element.Element]

// NewAtomValues wraps per-chunk values.  The shape must match info exactly.
func NewAtomValues[T any](info *topology.Info, chunks [][]T) (*AtomValues[T], error) {
	if len(chunks) != info.NCutGroups() {
		return nil, errors.Incompatible("per-chunk data does not match the molecule").
			WithDetail(fmt.Sprintf("chunks=%d want=%d", len(chunks), info.NCutGroups()))
	}
	out := make([][]T, len(chunks))
	for cg, vals := range chunks {
		if want := info.NAtomsInCutGroup(topology.CGIdx(cg)); len(vals) != want {
			return nil, errors.Incompatible("per-chunk data does not match the molecule").
				WithDetail(fmt.Sprintf("chunk=%d atoms=%d want=%d", cg, len(vals), want))
		}
		out[cg] = append([]T(nil), vals...)
	}
	return &AtomValues[T]{infoID: info.ID(), chunks: out}, nil
}

// FromAtoms distributes values given in AtomIdx order over the chunks of info.
func FromAtoms[T any](info *topology.Info, values []T) (*AtomValues[T], error) {
	if len(values) != info.NAtoms() {
		return nil, errors.Incompatible("per-atom data does not match the molecule").
			WithDetail(fmt.Sprintf("atoms=%d want=%d", len(values), info.NAtoms()))
	}
	chunks := make([][]T, info.NCutGroups())
	for cg := range chunks {
		chunks[cg] = make([]T, info.NAtomsInCutGroup(topology.CGIdx(cg)))
	}
	for atom, v := range values {
		idx := info.CGAtomIdx(topology.AtomIdx(atom))
		chunks[idx.CutGroup][idx.Index] = v
	}
	return &AtomValues[T]{infoID: info.ID(), chunks: chunks}, nil
}

// InfoID returns the fingerprint of the layout the values belong to.
func (v *AtomValues[T]) InfoID() uuid.UUID { return v.infoID }

// NCutGroups returns the number of chunks.
func (v *AtomValues[T]) NCutGroups() int { return len(v.chunks) }

// Chunk returns the values of cg.  The slice must not be modified.
func (v *AtomValues[T]) Chunk(cg topology.CGIdx) []T { return v.chunks[cg] }

// At returns the value of one atom.
func (v *AtomValues[T]) At(idx topology.CGAtomIdx) T { return v.chunks[idx.CutGroup][idx.Index] }

// AssertCompatibleWith fails with Incompatible unless the values were built
// for info.
func (v *AtomValues[T]) AssertCompatibleWith(info *topology.Info) error {
	if info == nil || v.infoID != info.ID() {
		return errors.Incompatible("property belongs to a different molecule").
			WithDetail(fmt.Sprintf("property=%s molecule=%s", v.infoID, infoID(info)))
	}
	return nil
}

func infoID(info *topology.Info) string {
	if info == nil {
		return "<nil>"
	}
	return info.ID().String()
}
