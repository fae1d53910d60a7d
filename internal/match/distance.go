package match

import (
	"github.com/agnivade/levenshtein"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/crete-bi/account-linkage/internal/normalize"
)

// shortNameLimit: below this length edit distance is unreliable, so only
// exact equality counts as a match.
const shortNameLimit = 4

// NameDistance computes a bounded dissimilarity between two raw names,
// fusing Levenshtein edit distance with fuzzy token similarity. Lower is
// closer; results above maxDist mean the pair should be rejected.
type NameDistance struct {
	version normalize.Version
}

// NewNameDistance creates a distance calculator using the given normalizer
// version.
func NewNameDistance(version normalize.Version) *NameDistance {
	return &NameDistance{version: version}
}

// Distance returns the fused name distance. Empty names yield maxDist+1
// (always rejected). Short names match only on exact equality.
func (d *NameDistance) Distance(nameA, nameB string, maxDist int) int {
	a := normalize.Name(nameA, d.version)
	b := normalize.Name(nameB, d.version)

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	if minLen == 0 {
		return maxDist + 1
	}

	if minLen < shortNameLimit {
		if a == b {
			return 0
		}
		if maxDist > shortNameLimit {
			return maxDist
		}
		return shortNameLimit
	}

	editDist := levenshtein.ComputeDistance(a, b)
	fuzzyDist := fuzzyDistance(a, b, maxDist)

	if fuzzyDist < editDist {
		return fuzzyDist
	}
	return editDist
}

// fuzzyDistance maps the best of four token-aware similarity ratios onto the
// edit-distance scale. Either signal finding a strong match is sufficient, so
// the caller takes the minimum of this and the true edit distance.
func fuzzyDistance(a, b string, maxDist int) int {
	best := fuzzy.WRatio(a, b)
	if r := fuzzy.TokenSetRatio(a, b); r > best {
		best = r
	}
	if r := fuzzy.TokenSortRatio(a, b); r > best {
		best = r
	}
	if r := fuzzy.PartialRatio(a, b); r > best {
		best = r
	}

	switch {
	case best >= 95:
		return 0
	case best >= 90:
		return 1
	case best >= 85:
		return 2
	case best >= 80:
		return 3
	}
	return maxDist
}
