package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/internal/testutil"
	"github.com/turtacn/molsim/pkg/errors"
)

func TestInfo_Counts(t *testing.T) {
	info := testutil.Tripeptide()

	assert.Equal(t, "tripeptide", info.Name())
	assert.Equal(t, 11, info.NAtoms())
	assert.Equal(t, 3, info.NCutGroups())
	assert.Equal(t, 3, info.NResidues())
	assert.Equal(t, 1, info.NChains())
	assert.Equal(t, 2, info.NSegments())
	assert.Equal(t, 3, info.NAtomsInCutGroup(2))
}

func TestInfo_AtomMapping(t *testing.T) {
	info := testutil.Tripeptide()

	for atom := topology.AtomIdx(0); int(atom) < info.NAtoms(); atom++ {
		idx := info.CGAtomIdx(atom)
		assert.Equal(t, atom, info.AtomIdx(idx), "round trip for %d", atom)
	}
	assert.Equal(t, topology.CGAtomIdx{CutGroup: 1, Index: 1}, info.CGAtomIdx(5))
	assert.Equal(t, "CA", info.AtomName(5))
	assert.Equal(t, 6, info.AtomNumber(5))
}

func TestInfo_Membership(t *testing.T) {
	info := testutil.Tripeptide()

	assert.Equal(t, topology.ResIdx(1), info.ResidueOf(6))
	assert.Equal(t, topology.ChainIdx(0), info.ChainOf(6))
	assert.Equal(t, topology.NoChain, info.ChainOf(9))
	assert.Equal(t, topology.SegIdx(1), info.SegmentOf(9))
	assert.Equal(t, []topology.AtomIdx{0, 1, 2, 3, 4, 5, 6, 7}, info.AtomsInChain(0))
	assert.Equal(t, []topology.ResIdx{0, 1}, info.ResiduesInChain(0))
	assert.Equal(t, []topology.AtomIdx{8, 9, 10}, info.AtomsInSegment(1))
	assert.Equal(t, "GLY", info.ResidueName(1))
	assert.Equal(t, 2, info.ResidueNumber(1))
	assert.Equal(t, "A", info.ChainName(0))
	assert.Equal(t, "S2", info.SegmentName(1))
	assert.Equal(t, "CG1", info.CutGroupName(1))
}

func TestInfo_Checks(t *testing.T) {
	info := testutil.Tripeptide()

	assert.NoError(t, info.CheckAtom(10))
	assert.True(t, errors.IsCode(info.CheckAtom(11), errors.CodeInvalidArgument))
	assert.True(t, errors.IsCode(info.CheckAtom(-1), errors.CodeInvalidArgument))
	assert.True(t, errors.IsCode(info.CheckCutGroup(3), errors.CodeInvalidArgument))
	assert.True(t, errors.IsCode(info.CheckResidue(3), errors.CodeInvalidArgument))
	assert.True(t, errors.IsCode(info.CheckChain(1), errors.CodeInvalidArgument))
	assert.True(t, errors.IsCode(info.CheckSegment(2), errors.CodeInvalidArgument))
}

func TestInfo_Compatibility(t *testing.T) {
	a := testutil.Tripeptide()
	b := testutil.Tripeptide()

	assert.True(t, a.IsCompatibleWith(a))
	assert.False(t, a.IsCompatibleWith(b), "each build gets its own fingerprint")
	assert.NoError(t, a.AssertCompatibleWith(a))

	err := a.AssertCompatibleWith(b)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeIncompatible))
	assert.True(t, errors.IsCode(a.AssertCompatibleWith(nil), errors.CodeIncompatible))
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *topology.Builder)
	}{
		{"empty cut group", func(b *topology.Builder) {
			b.AddCutGroup("CG0")
		}},
		{"bad cut group", func(b *topology.Builder) {
			res := b.AddResidue("R", 1, topology.NoChain)
			b.AddAtom("X", 1, 4, res)
		}},
		{"bad residue", func(b *topology.Builder) {
			cg := b.AddCutGroup("CG0")
			b.AddAtom("X", 1, cg, 2)
		}},
		{"bad chain", func(b *topology.Builder) {
			b.AddResidue("R", 1, 3)
		}},
		{"bad segment", func(b *topology.Builder) {
			cg := b.AddCutGroup("CG0")
			res := b.AddResidue("R", 1, topology.NoChain)
			b.AddAtom("X", 1, cg, res, topology.InSegment(5))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := topology.NewBuilder("bad")
			tt.build(b)
			_, err := b.Build()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
		})
	}
}

func TestBuilder_EmptyMolecule(t *testing.T) {
	info := testutil.Empty()
	assert.Equal(t, 0, info.NAtoms())
	assert.Equal(t, 0, info.NCutGroups())
}

func TestChunked(t *testing.T) {
	info, err := topology.Chunked("water", 7, 3, []string{"OW", "HW1"})
	require.NoError(t, err)

	assert.Equal(t, 7, info.NAtoms())
	assert.Equal(t, 3, info.NCutGroups())
	assert.Equal(t, 3, info.NResidues())
	assert.Equal(t, 1, info.NAtomsInCutGroup(2))
	assert.Equal(t, "OW", info.AtomName(0))
	assert.Equal(t, "A3", info.AtomName(2))
	assert.Equal(t, topology.CGAtomIdx{CutGroup: 1, Index: 0}, info.CGAtomIdx(3))

	_, err = topology.Chunked("x", 3, 0, nil)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
	_, err = topology.Chunked("x", -1, 2, nil)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
}
