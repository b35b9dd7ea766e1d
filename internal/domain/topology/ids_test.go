package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/internal/testutil"
	"github.com/turtacn/molsim/pkg/errors"
)

func TestID_AtomsIn(t *testing.T) {
	info := testutil.Tripeptide()

	tests := []struct {
		id   topology.ID
		want []topology.AtomIdx
	}{
		{topology.AtomIdx(3), []topology.AtomIdx{3}},
		{topology.CGIdx(2), []topology.AtomIdx{8, 9, 10}},
		{topology.ResIdx(1), []topology.AtomIdx{4, 5, 6, 7}},
		{topology.ChainIdx(0), []topology.AtomIdx{0, 1, 2, 3, 4, 5, 6, 7}},
		{topology.SegIdx(1), []topology.AtomIdx{8, 9, 10}},
		{topology.AtomName("CA"), []topology.AtomIdx{1, 5}},
		{topology.CutGroupName("CG0"), []topology.AtomIdx{0, 1, 2, 3}},
		{topology.ResName("HOH"), []topology.AtomIdx{8, 9, 10}},
		{topology.ResNum(2), []topology.AtomIdx{4, 5, 6, 7}},
		{topology.ChainName("A"), []topology.AtomIdx{0, 1, 2, 3, 4, 5, 6, 7}},
		{topology.SegName("S2"), []topology.AtomIdx{8, 9, 10}},
		{topology.Or(topology.AtomIdx(9), topology.AtomName("N")), []topology.AtomIdx{0, 4, 9}},
		{topology.Or(topology.AtomName("ZZ"), topology.AtomIdx(2)), []topology.AtomIdx{2}},
		{topology.And(topology.AtomName("CA"), topology.ResNum(2)), []topology.AtomIdx{5}},
		{topology.All, []topology.AtomIdx{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			got, err := tt.id.AtomsIn(info)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID_Errors(t *testing.T) {
	info := testutil.Tripeptide()

	tests := []struct {
		id   topology.ID
		code errors.ErrorCode
	}{
		{topology.AtomIdx(42), errors.CodeInvalidArgument},
		{topology.CGIdx(-1), errors.CodeInvalidArgument},
		{topology.ResIdx(9), errors.CodeInvalidArgument},
		{topology.ChainIdx(1), errors.CodeInvalidArgument},
		{topology.SegIdx(7), errors.CodeInvalidArgument},
		{topology.AtomName("ZZ"), errors.CodeNotFound},
		{topology.ResName("TRP"), errors.CodeNotFound},
		{topology.ResNum(99), errors.CodeNotFound},
		{topology.ChainName("B"), errors.CodeNotFound},
		{topology.SegName("S9"), errors.CodeNotFound},
		{topology.CutGroupName("CG9"), errors.CodeNotFound},
		{topology.Or(topology.AtomName("ZZ")), errors.CodeNotFound},
		{topology.Or(topology.AtomIdx(100)), errors.CodeInvalidArgument},
		{topology.And(topology.AtomName("OW"), topology.ResNum(1)), errors.CodeNotFound},
		{topology.And(), errors.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			_, err := tt.id.AtomsIn(info)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestID_AllOnEmptyMolecule(t *testing.T) {
	got, err := topology.All.AtomsIn(testutil.Empty())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestID_CutGroupResultIsCopy(t *testing.T) {
	info := testutil.Tripeptide()
	got, err := topology.CGIdx(0).AtomsIn(info)
	require.NoError(t, err)
	got[0] = 99
	assert.Equal(t, topology.AtomIdx(0), info.AtomsInCutGroup(0)[0])
}
