package selection

import "math/bits"

// atomSet is a fixed-size bitset over the atom positions of one cut group.
// Values are treated as immutable once stored in an AtomSelection; every
// combining operation returns a fresh set.
type atomSet struct {
	size  int
	count int
	words []uint64
}

func newAtomSet(size int) *atomSet {
	return &atomSet{size: size, words: make([]uint64, (size+63)/64)}
}

func fullAtomSet(size int) *atomSet {
	s := newAtomSet(size)
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	s.trim()
	s.count = size
	return s
}

func (s *atomSet) clone() *atomSet {
	return &atomSet{size: s.size, count: s.count, words: append([]uint64(nil), s.words...)}
}

// trim clears the bits beyond size in the last word.
func (s *atomSet) trim() {
	if rem := s.size % 64; rem != 0 && len(s.words) > 0 {
		s.words[len(s.words)-1] &= (uint64(1) << uint(rem)) - 1
	}
}

func (s *atomSet) recount() {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	s.count = n
}

func (s *atomSet) has(i int) bool {
	return s.words[i/64]&(uint64(1)<<uint(i%64)) != 0
}

func (s *atomSet) add(i int) {
	mask := uint64(1) << uint(i%64)
	if s.words[i/64]&mask == 0 {
		s.words[i/64] |= mask
		s.count++
	}
}

func (s *atomSet) remove(i int) {
	mask := uint64(1) << uint(i%64)
	if s.words[i/64]&mask != 0 {
		s.words[i/64] &^= mask
		s.count--
	}
}

func (s *atomSet) full() bool { return s.count == s.size }

// indices returns the set positions in ascending order.
func (s *atomSet) indices() []int {
	out := make([]int, 0, s.count)
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*64+b)
			w &= w - 1
		}
	}
	return out
}

func (s *atomSet) union(o *atomSet) *atomSet {
	out := s.clone()
	for i := range out.words {
		out.words[i] |= o.words[i]
	}
	out.recount()
	return out
}

func (s *atomSet) intersect(o *atomSet) *atomSet {
	out := s.clone()
	for i := range out.words {
		out.words[i] &= o.words[i]
	}
	out.recount()
	return out
}

func (s *atomSet) difference(o *atomSet) *atomSet {
	out := s.clone()
	for i := range out.words {
		out.words[i] &^= o.words[i]
	}
	out.recount()
	return out
}

func (s *atomSet) complement() *atomSet {
	out := s.clone()
	for i := range out.words {
		out.words[i] = ^out.words[i]
	}
	out.trim()
	out.count = s.size - s.count
	return out
}

func (s *atomSet) equal(o *atomSet) bool {
	if s.size != o.size || s.count != o.count {
		return false
	}
	for i := range s.words {
		if s.words[i] != o.words[i] {
			return false
		}
	}
	return true
}
