// Package format reads molecular structures from XYZ and MDL molfiles.
package format

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/molsim/pkg/errors"
)

// Supported format names.
const (
	FormatXYZ = "xyz"
	FormatSDF = "sdf"
)

// Atom is one parsed atom.  Pos is in Ångström.
type Atom struct {
	Symbol string `json:"symbol"`
	Pos    r3.Vec `json:"pos"`
}

// Structure is the first record of a structure file.  Bonds holds the
// declared bonds as zero-based atom pairs; XYZ files declare none.
type Structure struct {
	Title  string   `json:"title"`
	Format string   `json:"format"`
	Atoms  []Atom   `json:"atoms"`
	Bonds  [][2]int `json:"bonds,omitempty"`
}

// NAtoms returns the number of atoms.
func (s *Structure) NAtoms() int { return len(s.Atoms) }

// Positions returns the atom positions in file order.
func (s *Structure) Positions() []r3.Vec {
	out := make([]r3.Vec, len(s.Atoms))
	for i, a := range s.Atoms {
		out[i] = a.Pos
	}
	return out
}

// Detect maps a file name to a format by extension.
func Detect(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xyz":
		return FormatXYZ, nil
	case ".sdf", ".mol", ".sd":
		return FormatSDF, nil
	}
	return "", errors.InvalidArgument("unrecognised structure format").
		WithDetail(fmt.Sprintf("file=%q", name))
}

// Read parses r as the named format.
func Read(r io.Reader, format string) (*Structure, error) {
	switch format {
	case FormatXYZ:
		return ReadXYZ(r)
	case FormatSDF:
		return ReadSDF(r)
	}
	return nil, errors.InvalidArgument("unsupported structure format").
		WithDetail(fmt.Sprintf("format=%q", format))
}

// ReadFile opens path and parses it according to its extension.
func ReadFile(path string) (*Structure, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	return ReadFileAs(path, format)
}

// ReadFileAs opens path and parses it as format whatever its extension.
func ReadFileAs(path, format string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNotFound, "cannot open structure file")
	}
	defer f.Close()
	return Read(f, format)
}

// lines numbers the lines of a reader from 1.
type lines struct {
	sc *bufio.Scanner
	n  int
}

func newLines(r io.Reader) *lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lines{sc: sc}
}

// next returns the following line without its trailing carriage return.
func (l *lines) next(what string) (string, error) {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return "", errors.Wrap(err, errors.CodeParse, "read failed")
		}
		return "", errors.Parse(l.n+1, "unexpected end of file, expected "+what)
	}
	l.n++
	return strings.TrimRight(l.sc.Text(), "\r"), nil
}

func (l *lines) float(field, what string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, errors.Parse(l.n, fmt.Sprintf("invalid %s %q", what, strings.TrimSpace(field)))
	}
	return v, nil
}

func (l *lines) integer(field, what string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, errors.Parse(l.n, fmt.Sprintf("invalid %s %q", what, strings.TrimSpace(field)))
	}
	return v, nil
}
