package taa

import "github.com/dam/spot/automaton"

var _ automaton.State = (*state)(nil)

// Compare implements automaton.State: lexicographic order over the sorted
// identity sequence, shorter sequences sorting before longer ones once one
// is a prefix of the other (spec §4.2.2).
func (s *state) Compare(other automaton.State) int {
	o := other.(*state)
	n := len(s.ids)
	if len(o.ids) < n {
		n = len(o.ids)
	}
	for i := 0; i < n; i++ {
		if d := s.ids[i] - o.ids[i]; d != 0 {
			return d
		}
	}
	return len(s.ids) - len(o.ids)
}

// Hash implements automaton.State, mixing member identities with a
// Wang-style integer mixer so identity-equal sets hash equal (spec §4.2.2).
func (s *state) Hash() uint32 {
	res := wang32(0)
	for _, id := range s.ids {
		res += uint32(id)
		res ^= wang32(res)
	}
	return res
}

// Clone implements automaton.State, returning an independent copy whose
// ownership transfers to the caller (spec §5).
func (s *state) Clone() automaton.State {
	ids := make([]int, len(s.ids))
	copy(ids, s.ids)
	return &state{ids: ids}
}

// wang32 is Thomas Wang's 32-bit integer hash mixer, used verbatim by the
// original's wang32_hash.
func wang32(key uint32) uint32 {
	key = (key ^ 61) ^ (key >> 16)
	key = key + (key << 3)
	key = key ^ (key >> 4)
	key = key * 0x27d4eb2d
	key = key ^ (key >> 15)
	return key
}
