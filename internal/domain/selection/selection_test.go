package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molsim/internal/domain/selection"
	"github.com/turtacn/molsim/internal/domain/topology"
	"github.com/turtacn/molsim/internal/testutil"
	"github.com/turtacn/molsim/pkg/errors"
)

func mustFrom(t *testing.T, info *topology.Info, id topology.ID) *selection.AtomSelection {
	t.Helper()
	sel, err := selection.NewFrom(info, id)
	require.NoError(t, err)
	return sel
}

func atoms(idx ...int) topology.ID {
	ids := make([]topology.ID, len(idx))
	for i, a := range idx {
		ids[i] = topology.AtomIdx(a)
	}
	return topology.Or(ids...)
}

func TestNew_AllAndNone(t *testing.T) {
	info := testutil.Tripeptide()

	all := selection.New(info)
	assert.True(t, all.SelectedAll())
	assert.False(t, all.SelectedNone())
	assert.Equal(t, 11, all.NSelected())
	assert.True(t, all.SelectedAllCutGroups())

	none := selection.NewNone(info)
	assert.True(t, none.SelectedNone())
	assert.True(t, none.IsEmpty())
	assert.False(t, none.SelectedAll())
	assert.Empty(t, none.SelectedAtoms())
	assert.Empty(t, none.SelectedCutGroups())
}

func TestSelection_EmptyMolecule(t *testing.T) {
	info := testutil.Empty()
	sel := selection.New(info)

	assert.True(t, sel.IsEmpty())
	assert.True(t, sel.SelectedNone())
	assert.True(t, sel.SelectedAll())
	assert.Equal(t, 0, sel.NSelected())
	assert.True(t, sel.Invert().SelectedNone())
}

func TestSelection_SelectAndQuery(t *testing.T) {
	info := testutil.Tripeptide()
	sel := mustFrom(t, info, topology.AtomName("CA"))

	assert.Equal(t, 2, sel.NSelected())
	assert.Equal(t, []topology.AtomIdx{1, 5}, sel.SelectedAtoms())
	assert.Equal(t, []topology.CGIdx{0, 1}, sel.SelectedCutGroups())
	assert.Equal(t, []topology.ResIdx{0, 1}, sel.SelectedResidues())
	assert.Equal(t, []topology.ChainIdx{0}, sel.SelectedChains())
	assert.Equal(t, []topology.SegIdx{0}, sel.SelectedSegments())
	assert.False(t, sel.SelectedAllCutGroups())

	hit, err := sel.Selected(topology.ResIdx(1))
	require.NoError(t, err)
	assert.True(t, hit)

	whole, err := sel.SelectedAllIn(topology.ResIdx(1))
	require.NoError(t, err)
	assert.False(t, whole)

	none, err := sel.SelectedNoneIn(topology.SegName("S2"))
	require.NoError(t, err)
	assert.True(t, none)

	n, err := sel.NSelectedIn(topology.ChainName("A"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = sel.Selected(topology.AtomIdx(11))
	assert.True(t, errors.IsCode(err, errors.CodeInvalidArgument))
	_, err = sel.Select(topology.ResName("TRP"))
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestSelection_ChunkHelpers(t *testing.T) {
	info := testutil.Tripeptide()
	sel := mustFrom(t, info, topology.Or(topology.CGIdx(2), topology.AtomIdx(1), topology.AtomIdx(3)))

	assert.True(t, sel.SelectedAllInCutGroup(2))
	assert.False(t, sel.SelectedAllInCutGroup(0))
	assert.False(t, sel.SelectedAllInCutGroup(1))
	assert.Equal(t, []int{0, 1, 2}, sel.SelectedIndicesInCutGroup(2))
	assert.Equal(t, []int{1, 3}, sel.SelectedIndicesInCutGroup(0))
	assert.Empty(t, sel.SelectedIndicesInCutGroup(1))
	assert.Equal(t, 2, sel.NSelectedInCutGroup(0))
	assert.Equal(t, 0, sel.NSelectedInCutGroup(1))
	assert.Equal(t, 3, sel.NSelectedInCutGroup(2))
	assert.Equal(t, []topology.ChainIdx{0}, sel.SelectedChains())
	assert.Equal(t, []topology.SegIdx{0, 1}, sel.SelectedSegments())
}

func TestSelection_CollapsesToAll(t *testing.T) {
	info := testutil.Tripeptide()
	sel := mustFrom(t, info, topology.Or(topology.CGIdx(0), topology.CGIdx(1)))
	sel, err := sel.Select(topology.AtomIdx(8))
	require.NoError(t, err)
	sel, err = sel.Select(topology.Or(topology.AtomIdx(9), topology.AtomIdx(10)))
	require.NoError(t, err)

	assert.True(t, sel.SelectedAll())
	assert.True(t, sel.Equal(selection.New(info)))

	sel, err = sel.Deselect(topology.All)
	require.NoError(t, err)
	assert.True(t, sel.SelectedNone())
	assert.True(t, sel.Equal(selection.NewNone(info)))
}

func TestSelection_Immutable(t *testing.T) {
	info := testutil.Tripeptide()
	base := mustFrom(t, info, atoms(0, 1))

	more, err := base.Select(topology.AtomIdx(2))
	require.NoError(t, err)
	less, err := base.Deselect(topology.AtomIdx(0))
	require.NoError(t, err)

	assert.Equal(t, []topology.AtomIdx{0, 1}, base.SelectedAtoms())
	assert.Equal(t, []topology.AtomIdx{0, 1, 2}, more.SelectedAtoms())
	assert.Equal(t, []topology.AtomIdx{1}, less.SelectedAtoms())
}

func TestSelection_Invert(t *testing.T) {
	info := testutil.Tripeptide()
	sel := mustFrom(t, info, topology.Or(topology.CGIdx(1), topology.AtomIdx(8)))

	inv := sel.Invert()
	assert.Equal(t, []topology.AtomIdx{0, 1, 2, 3, 9, 10}, inv.SelectedAtoms())
	assert.Equal(t, info.NAtoms(), sel.NSelected()+inv.NSelected())
	assert.True(t, inv.Invert().Equal(sel))
	assert.True(t, selection.New(info).Invert().SelectedNone())
}

func TestSelection_Algebra(t *testing.T) {
	info := testutil.Tripeptide()
	a := mustFrom(t, info, atoms(0, 1, 4, 5, 8))
	b := mustFrom(t, info, topology.Or(topology.CGIdx(0), topology.AtomIdx(9)))

	inter, err := a.Intersect(b)
	require.NoError(t, err)
	assert.Equal(t, []topology.AtomIdx{0, 1}, inter.SelectedAtoms())

	union, err := a.Unite(b)
	require.NoError(t, err)
	assert.Equal(t, []topology.AtomIdx{0, 1, 2, 3, 4, 5, 8, 9}, union.SelectedAtoms())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, []topology.AtomIdx{4, 5, 8}, diff.SelectedAtoms())

	diff, err = b.Subtract(a)
	require.NoError(t, err)
	assert.Equal(t, []topology.AtomIdx{2, 3, 9}, diff.SelectedAtoms())

	masked, err := a.Mask(topology.ResName("GLY"))
	require.NoError(t, err)
	assert.Equal(t, []topology.AtomIdx{4, 5}, masked.SelectedAtoms())

	ok, err := union.Contains(a)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = a.Contains(union)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.Intersects(b)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = diff.Intersects(inter)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelection_AlgebraLaws(t *testing.T) {
	info := testutil.Tripeptide()
	all := selection.New(info)
	none := selection.NewNone(info)
	cases := []*selection.AtomSelection{
		all,
		none,
		mustFrom(t, info, atoms(0, 5, 10)),
		mustFrom(t, info, topology.CGIdx(1)),
		mustFrom(t, info, topology.Or(topology.ChainName("A"), topology.AtomIdx(9))),
	}

	for i, a := range cases {
		for j, b := range cases {
			// De Morgan: ¬(a ∪ b) = ¬a ∩ ¬b
			u, err := a.Unite(b)
			require.NoError(t, err)
			ni, err := a.Invert().Intersect(b.Invert())
			require.NoError(t, err)
			assert.True(t, u.Invert().Equal(ni), "de morgan %d,%d", i, j)

			// a \ b = a ∩ ¬b
			d, err := a.Subtract(b)
			require.NoError(t, err)
			m, err := a.Intersect(b.Invert())
			require.NoError(t, err)
			assert.True(t, d.Equal(m), "difference %d,%d", i, j)

			// |a ∪ b| + |a ∩ b| = |a| + |b|
			in, err := a.Intersect(b)
			require.NoError(t, err)
			assert.Equal(t, a.NSelected()+b.NSelected(), u.NSelected()+in.NSelected(), "counts %d,%d", i, j)

			// commutativity
			u2, err := b.Unite(a)
			require.NoError(t, err)
			assert.True(t, u.Equal(u2), "unite commutes %d,%d", i, j)
		}

		self, err := a.Intersect(a)
		require.NoError(t, err)
		assert.True(t, self.Equal(a), "idempotent %d", i)

		withAll, err := a.Unite(all)
		require.NoError(t, err)
		assert.True(t, withAll.SelectedAll(), "absorb all %d", i)

		withNone, err := a.Intersect(none)
		require.NoError(t, err)
		assert.True(t, withNone.SelectedNone(), "absorb none %d", i)

		assert.True(t, a.Invert().Invert().Equal(a), "double invert %d", i)
	}
}

func TestSelection_UniteMatchesSelected(t *testing.T) {
	info := testutil.Tripeptide()
	a := mustFrom(t, info, atoms(0, 4))
	b := mustFrom(t, info, atoms(4, 9))
	u, err := a.Unite(b)
	require.NoError(t, err)

	for atom := 0; atom < info.NAtoms(); atom++ {
		id := topology.AtomIdx(atom)
		inA, _ := a.Selected(id)
		inB, _ := b.Selected(id)
		inU, err := u.Selected(id)
		require.NoError(t, err)
		assert.Equal(t, inA || inB, inU, "atom %d", atom)
	}
}

func TestSelection_Incompatible(t *testing.T) {
	a := selection.New(testutil.Tripeptide())
	b := selection.New(testutil.Tripeptide())

	_, err := a.Intersect(b)
	assert.True(t, errors.IsCode(err, errors.CodeIncompatible))
	_, err = a.Unite(b)
	assert.True(t, errors.IsCode(err, errors.CodeIncompatible))
	_, err = a.Subtract(b)
	assert.True(t, errors.IsCode(err, errors.CodeIncompatible))
	_, err = a.Contains(b)
	assert.True(t, errors.IsCode(err, errors.CodeIncompatible))
	_, err = a.Intersects(b)
	assert.True(t, errors.IsCode(err, errors.CodeIncompatible))
	assert.False(t, a.Equal(b))
}

func TestSelection_LargeChunk(t *testing.T) {
	info := testutil.Chunked(300, 130)
	sel := mustFrom(t, info, atoms(0, 64, 129, 130, 299))

	assert.Equal(t, 5, sel.NSelected())
	assert.Equal(t, []int{0, 64, 129}, sel.SelectedIndicesInCutGroup(0))
	assert.Equal(t, []int{0}, sel.SelectedIndicesInCutGroup(1))
	assert.Equal(t, []int{39}, sel.SelectedIndicesInCutGroup(2))

	inv := sel.Invert()
	assert.Equal(t, 295, inv.NSelected())
	assert.Equal(t, 127, inv.NSelectedInCutGroup(0))
	assert.Equal(t, "AtomSelection(295/300)", inv.String())
}
