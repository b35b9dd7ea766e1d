package format

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/pkg/errors"
)

// maxPrealloc caps the atom slice reserved from a header count, which is
// untrusted until the atom lines are read.
const maxPrealloc = 1 << 16

// ReadXYZ parses the first frame of an XYZ file:
//
//	<atom count>
//	<title>
//	<symbol> <x> <y> <z>   (count lines)
//
// Columns past z are ignored, as are any frames after the first.
func ReadXYZ(r io.Reader) (*Structure, error) {
	l := newLines(r)

	head, err := l.next("atom count")
	if err != nil {
		return nil, err
	}
	n, err := l.integer(head, "atom count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Parse(l.n, fmt.Sprintf("negative atom count %d", n))
	}

	title, err := l.next("title line")
	if err != nil {
		return nil, err
	}

	s := &Structure{Title: strings.TrimSpace(title), Format: FormatXYZ, Atoms: make([]Atom, 0, min(n, maxPrealloc))}
	for i := 0; i < n; i++ {
		line, err := l.next(fmt.Sprintf("atom %d of %d", i+1, n))
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errors.Parse(l.n, "atom line needs a symbol and three coordinates")
		}
		var p [3]float64
		for k, name := range []string{"x", "y", "z"} {
			if p[k], err = l.float(fields[k+1], name+" coordinate"); err != nil {
				return nil, err
			}
		}
		s.Atoms = append(s.Atoms, Atom{Symbol: fields[0], Pos: r3.Vec{X: p[0], Y: p[1], Z: p[2]}})
	}
	return s, nil
}
