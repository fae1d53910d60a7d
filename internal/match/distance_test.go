package match

import (
	"testing"

	"github.com/crete-bi/account-linkage/internal/normalize"
)

func TestDistanceEmptyNames(t *testing.T) {
	d := NewNameDistance(normalize.VersionAggressive)

	tests := []struct {
		name string
		a, b string
	}{
		{"both empty", "", ""},
		{"left empty", "", "acme supply"},
		{"right empty", "acme supply", ""},
		{"left normalizes to empty", "The Inc", "acme supply"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Distance(tt.a, tt.b, 5)
			if got != 6 {
				t.Errorf("Distance(%q, %q, 5) = %d, want 6 (maxDist+1)", tt.a, tt.b, got)
			}
		})
	}
}

func TestDistanceShortNames(t *testing.T) {
	d := NewNameDistance(normalize.VersionAggressive)

	// Short strings are unreliable for edit distance: exact match or nothing
	if got := d.Distance("Fyi", "Fyi", 5); got != 0 {
		t.Errorf("Distance(Fyi, Fyi) = %d, want 0", got)
	}
	if got := d.Distance("Fyi", "Fgo", 5); got != 5 {
		t.Errorf("Distance(Fyi, Fgo, 5) = %d, want max(4, 5) = 5", got)
	}
	if got := d.Distance("Fyi", "Fgo", 3); got != 4 {
		t.Errorf("Distance(Fyi, Fgo, 3) = %d, want max(4, 3) = 4", got)
	}
	// One short side is enough to trigger the short-name rule
	if got := d.Distance("abc", "abcdef", 5); got != 5 {
		t.Errorf("Distance(abc, abcdef, 5) = %d, want 5", got)
	}
}

func TestDistanceSuffixInsensitive(t *testing.T) {
	d := NewNameDistance(normalize.VersionAggressive)

	// Both normalize to "acme"
	if got := d.Distance("Acme Corporation", "acme corp", 5); got != 0 {
		t.Errorf("Distance(Acme Corporation, acme corp) = %d, want 0", got)
	}
}

func TestDistanceSingleEdit(t *testing.T) {
	d := NewNameDistance(normalize.VersionAggressive)

	if got := d.Distance("riverstone", "riverstona", 5); got != 1 {
		t.Errorf("Distance(riverstone, riverstona) = %d, want 1", got)
	}
}

func TestDistanceTokenReorder(t *testing.T) {
	d := NewNameDistance(normalize.VersionAggressive)

	// Edit distance is large but token-sort similarity is perfect; the
	// optimistic fusion takes the fuzzy signal
	if got := d.Distance("Smith Jones Plumbing", "Jones Smith Plumbing", 5); got != 0 {
		t.Errorf("Distance(token reorder) = %d, want 0", got)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	d := NewNameDistance(normalize.VersionAggressive)

	pairs := [][2]string{
		{"Acme Corporation", "acme corp"},
		{"riverstone", "riverstona"},
		{"Smith Jones Plumbing", "Jones Plumbing"},
		{"Fyi", "Fgo"},
		{"", "acme"},
		{"Zenith Mechanical", "Pinnacle Electric"},
	}

	for _, p := range pairs {
		ab := d.Distance(p[0], p[1], 5)
		ba := d.Distance(p[1], p[0], 5)
		if ab != ba {
			t.Errorf("Distance not symmetric for (%q, %q): %d vs %d", p[0], p[1], ab, ba)
		}
	}
}

func TestDistanceUnrelatedNamesCappedAtMax(t *testing.T) {
	d := NewNameDistance(normalize.VersionAggressive)

	// Unrelated names: the fuzzy leg maps to maxDist, so the fused distance
	// never exceeds maxDist for names long enough to compare
	got := d.Distance("Zenith Mechanical Contractors", "Pinnacle Electric Supply", 5)
	if got > 5 {
		t.Errorf("Distance(unrelated) = %d, want <= 5", got)
	}
}
