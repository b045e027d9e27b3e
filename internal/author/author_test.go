package author

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Müller", "muller"},
		{"  Guo ", "guo"},
		{"GUO", "guo"},
		{"Kämpfer", "kampfer"},
		{"Smith", "smith"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"J.-P. Blaizot", "jpblaizot"},
		{"M.-T. Li", "mtli"},
		{"van der Waals", "vanderwaals"},
	}
	for _, tt := range tests {
		if got := Compact(tt.in); got != tt.want {
			t.Errorf("Compact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractLastName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first last", "John Smith", "Smith"},
		{"initials last", "J. Smith", "Smith"},
		{"hyphenated initials", "M.-T. Li", "Li"},
		{"last comma first", "Smith, J.", "Smith"},
		{"single word", "Smith", "Smith"},
		{"collaboration", "BESIII Collaboration", "BESIII"},
		{"the collaboration", "The LHCb Collaboration", "LHCb"},
		{"data group style", "Particle Data Group", "Data"},
		{"cjk short", "李明", "李"},
		{"cjk compound", "欧阳修文章", "欧阳"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLastName(tt.in); got != tt.want {
				t.Errorf("ExtractLastName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// The two orderings of the same name must agree on the family name.
func TestExtractLastNameRoundTrip(t *testing.T) {
	if a, b := ExtractLastName("Smith, J."), ExtractLastName("J. Smith"); a != b {
		t.Errorf("round-trip mismatch: %q vs %q", a, b)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Smith", "Smith", true},
		{"Smith", "smith", true},
		{"Müller", "Muller", true},
		{"Bär", "Baer", true},
		{"Baer", "Bär", true},
		{"Weiß", "Weiss", true},
		{"Smith", "Jones", false},
		{"Guo", "Gao", false},
	}
	for _, tt := range tests {
		if got := Match(tt.a, tt.b); got != tt.want {
			t.Errorf("Match(%q, %q) = %t, want %t", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchReflexive(t *testing.T) {
	for _, name := range []string{"Smith", "Müller", "Bär", "李明", "", "van der Waals"} {
		if !Match(name, name) {
			t.Errorf("Match(%q, %q) = false, want true", name, name)
		}
	}
}

func TestMatchSymmetricDiacritics(t *testing.T) {
	pairs := [][2]string{
		{"Müller", "Muller"},
		{"Kämpfer", "KAMPFER"},
		{"Søren", "Soren"},
	}
	for _, p := range pairs {
		if Match(p[0], p[1]) != Match(p[1], p[0]) {
			t.Errorf("Match(%q, %q) not symmetric", p[0], p[1])
		}
	}
}
