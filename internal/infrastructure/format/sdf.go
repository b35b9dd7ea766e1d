package format

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/pkg/errors"
)

// column returns line[lo:hi], clipped to the line length.
func column(line string, lo, hi int) string {
	if lo >= len(line) {
		return ""
	}
	if hi > len(line) {
		hi = len(line)
	}
	return line[lo:hi]
}

// ReadSDF parses the first record of a V2000 molfile or SD file.  Atom
// lines are read from the fixed columns
//
//	xxxxx.xxxxyyyyy.yyyyzzzzz.zzzz aaa
//
// and bond lines from the first two three-character fields.  Atom and bond
// properties past those columns are ignored.
func ReadSDF(r io.Reader) (*Structure, error) {
	l := newLines(r)

	title, err := l.next("title line")
	if err != nil {
		return nil, err
	}
	for _, what := range []string{"program line", "comment line"} {
		if _, err := l.next(what); err != nil {
			return nil, err
		}
	}

	counts, err := l.next("counts line")
	if err != nil {
		return nil, err
	}
	if strings.Contains(counts, "V3000") {
		return nil, errors.Parse(l.n, "V3000 molfiles are not supported")
	}
	nAtoms, err := l.integer(column(counts, 0, 3), "atom count")
	if err != nil {
		return nil, err
	}
	nBonds, err := l.integer(column(counts, 3, 6), "bond count")
	if err != nil {
		return nil, err
	}
	if nAtoms < 0 || nBonds < 0 {
		return nil, errors.Parse(l.n, "negative counts")
	}

	s := &Structure{
		Title:  strings.TrimSpace(title),
		Format: FormatSDF,
		Atoms:  make([]Atom, nAtoms),
		Bonds:  make([][2]int, 0, nBonds),
	}

	for i := range s.Atoms {
		line, err := l.next(fmt.Sprintf("atom %d of %d", i+1, nAtoms))
		if err != nil {
			return nil, err
		}
		if len(line) < 32 {
			return nil, errors.Parse(l.n, "atom line too short")
		}
		var p [3]float64
		for k, name := range []string{"x", "y", "z"} {
			if p[k], err = l.float(column(line, 10*k, 10*k+10), name+" coordinate"); err != nil {
				return nil, err
			}
		}
		sym := strings.TrimSpace(column(line, 31, 34))
		if sym == "" {
			return nil, errors.Parse(l.n, "atom line has no element symbol")
		}
		s.Atoms[i] = Atom{Symbol: sym, Pos: r3.Vec{X: p[0], Y: p[1], Z: p[2]}}
	}

	for i := 0; i < nBonds; i++ {
		line, err := l.next(fmt.Sprintf("bond %d of %d", i+1, nBonds))
		if err != nil {
			return nil, err
		}
		a, err := l.integer(column(line, 0, 3), "first bond atom")
		if err != nil {
			return nil, err
		}
		b, err := l.integer(column(line, 3, 6), "second bond atom")
		if err != nil {
			return nil, err
		}
		if a < 1 || a > nAtoms || b < 1 || b > nAtoms {
			return nil, errors.Parse(l.n, fmt.Sprintf("bond %d-%d refers to a missing atom", a, b))
		}
		if a == b {
			return nil, errors.Parse(l.n, fmt.Sprintf("atom %d bonded to itself", a))
		}
		s.Bonds = append(s.Bonds, [2]int{a - 1, b - 1})
	}
	return s, nil
}
