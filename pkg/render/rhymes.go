package render

import (
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
)

// RhymePair is an unordered rhyme between two annotations. Left/Right
// carry no meaning beyond which side was encountered first.
type RhymePair struct {
	Left  *dictionary.Annotation
	Right *dictionary.Annotation
}

// ExtractRhymes walks each annotation's rhymes relation, supplied by
// rhymesOf, and returns the distinct unordered pairs. The relation is
// stored symmetrically, so a pair discoverable from either side still
// yields a single entry. Pair order follows the first discovery.
func ExtractRhymes(annotations []*dictionary.Annotation, rhymesOf func(*dictionary.Annotation) []*dictionary.Annotation) []RhymePair {
	type key struct{ lo, hi int64 }
	seen := make(map[key]bool)

	var pairs []RhymePair
	for _, a := range annotations {
		for _, r := range rhymesOf(a) {
			k := key{lo: a.ID, hi: r.ID}
			if k.lo > k.hi {
				k.lo, k.hi = k.hi, k.lo
			}
			if seen[k] {
				continue
			}
			seen[k] = true
			pairs = append(pairs, RhymePair{Left: r, Right: a})
		}
	}
	return pairs
}
