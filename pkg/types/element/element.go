// Package element defines the chemical element value type consumed by the
// connectivity engine: covalent radius and maximum bond count per element.
// It holds data only and is safe to import from any layer.
package element

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/turtacn/molsim/pkg/errors"
)

// Element is an immutable chemical element record.
//
// CovalentRadius is in Ångström.  MaxBonds is the largest number of covalent
// bonds the element is allowed to form when valence correction is enforced.
type Element struct {
	Number         int     `json:"number"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Mass           float64 `json:"mass"`
	CovalentRadius float64 `json:"covalent_radius"`
	MaxBonds       int     `json:"max_bonds"`
}

// Dummy is the placeholder element (atomic number 0) used for virtual sites.
// It has no radius and never bonds: hunters skip dummy atoms.
var Dummy = Element{Number: 0, Symbol: "Xx", Name: "dummy"}

// IsDummy reports whether e is the dummy element.
func (e Element) IsDummy() bool { return e.Number == 0 }

// String returns the element symbol.
func (e Element) String() string { return e.Symbol }

// Validate checks that the record can take part in bond hunting: a real
// element needs a positive, finite covalent radius, and no element may have a
// negative bond limit.  The dummy element carries no radius.
func (e Element) Validate() error {
	if !e.IsDummy() && (!(e.CovalentRadius > 0) || math.IsInf(e.CovalentRadius, 0)) {
		return errors.InvalidArgument("covalent radius must be positive and finite").
			WithDetail(fmt.Sprintf("element=%s radius=%g", e.Symbol, e.CovalentRadius))
	}
	if e.MaxBonds < 0 {
		return errors.InvalidArgument("max bonds must not be negative").
			WithDetail(fmt.Sprintf("element=%s max_bonds=%d", e.Symbol, e.MaxBonds))
	}
	return nil
}

// BySymbol looks up an element by symbol.  Matching ignores case ("CL" and
// "cl" both resolve to chlorine).
func BySymbol(symbol string) (Element, error) {
	if e, ok := bySymbol[normalizeSymbol(symbol)]; ok {
		return e, nil
	}
	return Element{}, errors.NotFound("unknown element symbol").
		WithDetail(fmt.Sprintf("symbol=%q", symbol))
}

// MustBySymbol is BySymbol for package-level tables and tests; it panics on
// an unknown symbol.
func MustBySymbol(symbol string) Element {
	e, err := BySymbol(symbol)
	if err != nil {
		panic(err)
	}
	return e
}

// ByNumber looks up an element by atomic number.
func ByNumber(n int) (Element, error) {
	if e, ok := byNumber[n]; ok {
		return e, nil
	}
	return Element{}, errors.NotFound("unknown atomic number").
		WithDetail(fmt.Sprintf("number=%d", n))
}

// FromAtomName guesses the element from a PDB-style atom name such as "CA",
// "HB2" or "Cl1".  Leading digits are skipped; a mixed-case two-letter prefix
// ("Cl") is tried before the single leading letter.  Upper-case names are
// read as single-letter elements, so "CA" is carbon and not calcium.
func FromAtomName(name string) (Element, error) {
	trimmed := strings.TrimLeftFunc(strings.TrimSpace(name), unicode.IsDigit)
	letters := []rune{}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) {
			break
		}
		letters = append(letters, r)
	}
	if len(letters) == 0 {
		return Element{}, errors.NotFound("cannot infer element from atom name").
			WithDetail(fmt.Sprintf("name=%q", name))
	}
	if len(letters) >= 2 && unicode.IsUpper(letters[0]) && unicode.IsLower(letters[1]) {
		if e, ok := bySymbol[string(letters[:2])]; ok {
			return e, nil
		}
	}
	if e, ok := bySymbol[normalizeSymbol(string(letters[:1]))]; ok {
		return e, nil
	}
	return Element{}, errors.NotFound("cannot infer element from atom name").
		WithDetail(fmt.Sprintf("name=%q", name))
}

// All returns the built-in table ordered by atomic number.
func All() []Element {
	out := make([]Element, len(table))
	copy(out, table)
	return out
}

func normalizeSymbol(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
