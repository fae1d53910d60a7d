package normalize

import "strings"

// Phone reduces a raw phone value to its last 10 digits. Values with fewer
// than 7 digits carry no usable signal and normalize to "".
func Phone(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) < 7 {
		return ""
	}
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// Zip reduces a raw postal code to its first 5 digits. Values with fewer
// than 5 digits normalize to "".
func Zip(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) < 5 {
		return ""
	}
	return digits[:5]
}

// City lowercases and trims a city value for comparison.
func City(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// EmailDomain returns the lowercased domain part of an email address, or ""
// when the value does not look like an address.
func EmailDomain(raw string) string {
	e := strings.ToLower(strings.TrimSpace(raw))
	at := strings.LastIndex(e, "@")
	if at <= 0 || at == len(e)-1 {
		return ""
	}
	return e[at+1:]
}

func digitsOnly(s string) string {
	b := strings.Builder{}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// US state names to USPS postal codes. Two-character inputs pass through
// uppercased; anything unrecognized normalizes to "".
var stateCodes = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
}

// State normalizes a state value to a 2-letter USPS code.
func State(raw string) string {
	s := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if s == "" {
		return ""
	}
	if len(s) == 2 {
		return strings.ToUpper(s)
	}
	if code, ok := stateCodes[s]; ok {
		return code
	}
	return ""
}
