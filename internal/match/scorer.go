package match

import (
	"strings"

	"github.com/crete-bi/account-linkage/internal/normalize"
)

// FieldScores holds the auxiliary compatibility costs for one candidate
// pair. Negative values corroborate the match, positive values contradict
// it, zero means no information.
type FieldScores struct {
	Email int
	Phone int
	Zip   int
	City  int
	State int
	Bonus int
}

// Total sums the field costs including the bonus.
func (fs FieldScores) Total() int {
	return fs.Email + fs.Phone + fs.Zip + fs.City + fs.State + fs.Bonus
}

// Scorer computes auxiliary field scores for candidate pairs. Missing values
// on either side are always score-neutral, never an error.
type Scorer struct {
	profile ScoringProfile
}

// NewScorer creates a scorer for the given profile.
func NewScorer(profile ScoringProfile) *Scorer {
	return &Scorer{profile: profile}
}

// Score computes all field scores for a pair. dist is the already-computed
// name distance, used only for the multi-signal bonus.
func (s *Scorer) Score(pair CandidatePair, dist int) FieldScores {
	src := pair.Source
	ref := pair.Reference

	scores := FieldScores{
		Email: EmailScore(src.Email, ref.Email),
		City:  CityScore(src.City, ref.BillingCity, ref.ShippingCity),
	}

	if s.profile.UsePhone {
		scores.Phone = PhoneScore(src.Phone, ref.Phone)
	}
	if s.profile.UseZip {
		scores.Zip = ZipScore(src.Zip, ref.BillingPostalCode, ref.ShippingPostalCode)
	}
	if s.profile.UseState {
		scores.State = StateScore(src.State, ref.BillingState, ref.ShippingState)
	}
	if s.profile.UseBonus {
		scores.Bonus = multiSignalBonus(dist, scores)
	}

	return scores
}

// EmailScore: exact case-insensitive match or same domain corroborates;
// missing on either side is neutral.
func EmailScore(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return -1
	}
	da, db := normalize.EmailDomain(a), normalize.EmailDomain(b)
	if da != "" && da == db {
		return -1
	}
	return 0
}

// PhoneScore: exact match on normalized 10-digit numbers is a strong signal.
func PhoneScore(a, b string) int {
	na, nb := normalize.Phone(a), normalize.Phone(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return -2
	}
	return 0
}

// CityScore compares the source city against every candidate city on the
// reference side. A match corroborates; a definite mismatch contradicts;
// nothing to compare is neutral.
func CityScore(city string, refCities ...string) int {
	src := normalize.City(city)

	anyRef := false
	for _, rc := range refCities {
		rc = normalize.City(rc)
		if rc == "" {
			continue
		}
		anyRef = true
		if src != "" && src == rc {
			return -1
		}
	}

	if src == "" || !anyRef {
		return 0
	}
	return 1
}

// StateScore applies the city rule to USPS-normalized state codes.
func StateScore(state string, refStates ...string) int {
	src := normalize.State(state)

	anyRef := false
	for _, rs := range refStates {
		rs = normalize.State(rs)
		if rs == "" {
			continue
		}
		anyRef = true
		if src != "" && src == rs {
			return -1
		}
	}

	if src == "" || !anyRef {
		return 0
	}
	return 1
}

// ZipScore: match against any reference postal field corroborates; there is
// no mismatch penalty because zip data quality is too poor to contradict.
func ZipScore(zip string, refZips ...string) int {
	src := normalize.Zip(zip)
	if src == "" {
		return 0
	}
	for _, rz := range refZips {
		if normalize.Zip(rz) == src {
			return -1
		}
	}
	return 0
}

// multiSignalBonus grants an extra -1 when at least three independent
// signals corroborate the same pair.
func multiSignalBonus(dist int, scores FieldScores) int {
	signals := 0
	if dist <= 1 {
		signals++
	}
	if scores.Email < 0 {
		signals++
	}
	if scores.Phone < 0 {
		signals++
	}
	if scores.Zip < 0 {
		signals++
	}
	if scores.City < 0 {
		signals++
	}
	if scores.State < 0 {
		signals++
	}
	if signals >= 3 {
		return -1
	}
	return 0
}
