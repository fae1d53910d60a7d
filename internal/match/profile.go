package match

import "fmt"

// ScoringProfile selects which auxiliary field rules participate in scoring.
// Earlier pipeline generations scored only email and city; that variant is
// kept as "basic" for comparison runs but is deprecated in favor of "full".
type ScoringProfile struct {
	Name     string
	UsePhone bool
	UseZip   bool
	UseState bool
	UseBonus bool
}

// FullProfile is the canonical profile: all five field scores plus the
// multi-signal bonus.
func FullProfile() ScoringProfile {
	return ScoringProfile{
		Name:     "full",
		UsePhone: true,
		UseZip:   true,
		UseState: true,
		UseBonus: true,
	}
}

// BasicProfile scores email and city only. Deprecated.
func BasicProfile() ScoringProfile {
	return ScoringProfile{Name: "basic"}
}

// ParseProfile maps a config string to a profile.
func ParseProfile(s string) (ScoringProfile, error) {
	switch s {
	case "", "full":
		return FullProfile(), nil
	case "basic":
		return BasicProfile(), nil
	}
	return FullProfile(), fmt.Errorf("unknown scoring profile %q", s)
}
