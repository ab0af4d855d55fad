package buffer

import "github.com/rivo/uniseg"

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteIndexOfCol returns the byte index in s of the grapheme-cluster
// column col. Columns past the end of s map to len(s).
func byteIndexOfCol(s string, col int) int {
	if col <= 0 {
		return 0
	}
	idx := 0
	rest := s
	state := -1
	for i := 0; i < col && len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		idx += len(cluster)
	}
	return idx
}

// clampCol clamps a grapheme-cluster column to the valid range for s,
// which is [0, graphemeCount(s)].
func clampCol(s string, col int) int {
	if col < 0 {
		return 0
	}
	if n := graphemeCount(s); col > n {
		return n
	}
	return col
}
