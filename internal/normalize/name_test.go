package normalize

import (
	"testing"
)

func TestNameAggressive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "legal suffix stripped",
			input: "Acme Corporation",
			want:  "acme",
		},
		{
			name:  "abbreviated suffix stripped",
			input: "acme corp",
			want:  "acme",
		},
		{
			name:  "ampersand folds into stop words",
			input: "Smith & Jones Plumbing, Inc.",
			want:  "smith jones plumbing",
		},
		{
			name:  "stop word the removed",
			input: "The Home Depot",
			want:  "home depot",
		},
		{
			name:  "punctuation to whitespace",
			input: "A.B.C. Heating/Cooling LLC",
			want:  "a b c heating cooling",
		},
		{
			name:  "suffix kept when embedded in a word",
			input: "Concord Services",
			want:  "concord services",
		},
		{
			name:  "multiple suffixes",
			input: "Omega Holdings Group Ltd",
			want:  "omega",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Name(tt.input, VersionAggressive)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNameLegacy(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Acme Corporation", "acme corporation"},
		{"  ACME   CORP  ", "acme corp"},
		{"Smith & Jones", "smith & jones"},
		{"", ""},
	}

	for _, tt := range tests {
		got := Name(tt.input, VersionLegacy)
		if got != tt.want {
			t.Errorf("Name(%q, legacy) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{
		"Acme Corporation",
		"Smith & Jones Plumbing, Inc.",
		"The Home Depot",
		"A.B.C. Heating/Cooling LLC",
		"Fyi",
		"",
		"   spaced    out   ",
	}

	for _, version := range []Version{VersionLegacy, VersionAggressive} {
		for _, input := range inputs {
			once := Name(input, version)
			twice := Name(once, version)
			if once != twice {
				t.Errorf("Name not idempotent in %v mode: %q -> %q -> %q", version, input, once, twice)
			}
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"legacy", VersionLegacy, false},
		{"v1", VersionLegacy, false},
		{"aggressive", VersionAggressive, false},
		{"v2", VersionAggressive, false},
		{"", VersionAggressive, false},
		{"V2", VersionAggressive, false},
		{"bogus", VersionAggressive, true},
	}

	for _, tt := range tests {
		got, err := ParseVersion(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBlockingKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"acme", "A"},
		{"zenith supply", "Z"},
		{"3m", "3"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := BlockingKey(tt.input); got != tt.want {
			t.Errorf("BlockingKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
