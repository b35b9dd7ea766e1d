package testutil

import (
	"github.com/turtacn/molsim/internal/domain/topology"
)

// Tripeptide layout used across domain tests:
//
//	CG0 / ALA1 (chain A, seg S1): 0 N   1 CA  2 C   3 O
//	CG1 / GLY2 (chain A, seg S1): 4 N   5 CA  6 C   7 O
//	CG2 / HOH3 (no chain, seg S2): 8 OW  9 HW1 10 HW2
func Tripeptide() *topology.Info {
	b := topology.NewBuilder("tripeptide")
	chainA := b.AddChain("A")
	s1 := b.AddSegment("S1")
	s2 := b.AddSegment("S2")

	cg0 := b.AddCutGroup("CG0")
	ala := b.AddResidue("ALA", 1, chainA)
	for i, name := range []string{"N", "CA", "C", "O"} {
		b.AddAtom(name, i+1, cg0, ala, topology.InSegment(s1))
	}

	cg1 := b.AddCutGroup("CG1")
	gly := b.AddResidue("GLY", 2, chainA)
	for i, name := range []string{"N", "CA", "C", "O"} {
		b.AddAtom(name, i+5, cg1, gly, topology.InSegment(s1))
	}

	cg2 := b.AddCutGroup("CG2")
	hoh := b.AddResidue("HOH", 3, topology.NoChain)
	for i, name := range []string{"OW", "HW1", "HW2"} {
		b.AddAtom(name, i+9, cg2, hoh, topology.InSegment(s2))
	}

	info, err := b.Build()
	if err != nil {
		panic(err)
	}
	return info
}

// Empty returns a layout with no atoms.
func Empty() *topology.Info {
	info, err := topology.NewBuilder("empty").Build()
	if err != nil {
		panic(err)
	}
	return info
}

// Chunked returns a layout of nAtoms atoms in chunks of chunkSize.
func Chunked(nAtoms, chunkSize int) *topology.Info {
	info, err := topology.Chunked("chunked", nAtoms, chunkSize, nil)
	if err != nil {
		panic(err)
	}
	return info
}
