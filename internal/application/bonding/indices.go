package bonding

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/molsim/pkg/errors"
)

// ParseIndexList parses a comma-separated list of zero-based atom indices
// and inclusive ranges, such as "0-4,7,10-12", against a molecule of n
// atoms.  The result is sorted and free of duplicates.
func ParseIndexList(list string, n int) ([]int, error) {
	var out []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, err := parseRange(part)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			return nil, errors.InvalidArgument("descending atom range").
				WithDetail(fmt.Sprintf("range=%q", part))
		}
		if hi >= n {
			return nil, errors.InvalidArgument("atom index out of range").
				WithDetail(fmt.Sprintf("index=%d atoms=%d", hi, n))
		}
		for i := lo; i <= hi; i++ {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, errors.InvalidArgument("empty atom selection").
			WithDetail(fmt.Sprintf("selection=%q", list))
	}

	sort.Ints(out)
	uniq := out[:1]
	for _, v := range out[1:] {
		if v != uniq[len(uniq)-1] {
			uniq = append(uniq, v)
		}
	}
	return uniq, nil
}

func parseRange(part string) (int, int, error) {
	from, to, isRange := strings.Cut(part, "-")
	lo, err := parseIndex(from, part)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := parseIndex(to, part)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func parseIndex(s, part string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, errors.InvalidArgument("invalid atom index").
			WithDetail(fmt.Sprintf("range=%q", part))
	}
	return v, nil
}
