package bddlib

import "strings"

// FormatCube renders n as a sum of products, one product per path to the
// true terminal (low branch first), e.g. "!v0&v1 | v0&v2". The constant false renders as "0", the constant true (the
// empty product, satisfied regardless of any variable) as "1". This mirrors
// the original package's bdd_print_sat text form closely enough for the
// dumper (§6) without depending on any particular pretty-printer.
func (m *Manager) FormatCube(n Node) string {
	lits := m.cubes(n.idx, nil)
	if len(lits) == 0 {
		return "0"
	}
	terms := make([]string, len(lits))
	for i, lit := range lits {
		if len(lit) == 0 {
			terms[i] = "1"
			continue
		}
		terms[i] = strings.Join(lit, "&")
	}
	return strings.Join(terms, " | ")
}

// cubes enumerates, as slices of literal strings, every path from idx to the
// true terminal. prefix accumulates the literals seen so far on the current
// path.
func (m *Manager) cubes(idx int32, prefix []string) [][]string {
	switch idx {
	case falseIdx:
		return nil
	case trueIdx:
		cube := make([]string, len(prefix))
		copy(cube, prefix)
		return [][]string{cube}
	}
	n := m.nodes[idx]
	loPrefix := make([]string, len(prefix), len(prefix)+1)
	copy(loPrefix, prefix)
	loPrefix = append(loPrefix, negLit(n.v))
	hiPrefix := make([]string, len(prefix), len(prefix)+1)
	copy(hiPrefix, prefix)
	hiPrefix = append(hiPrefix, posLit(n.v))

	var out [][]string
	out = append(out, m.cubes(n.lo, loPrefix)...)
	out = append(out, m.cubes(n.hi, hiPrefix)...)
	return out
}

func posLit(v int32) string { return "v" + itoa(v) }
func negLit(v int32) string { return "!v" + itoa(v) }

func itoa(v int32) string {
	// Small, allocation-light integer-to-decimal conversion; variable counts
	// in this core never approach a range where strconv would matter more.
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
