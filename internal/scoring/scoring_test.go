package scoring

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"Alien", "alien", 0},
		{"ALIENS", "alien", 1},
		{"Pokémon", "pokemon", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.expected {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestScoreIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "Alien", "The Legend of Zelda: Breath of the Wild", "ポケモン"} {
		if got := Score(s, s); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"alien", "Aliens"},
		{"halo", "Halo 3"},
		{"", "predator"},
		{"star wars", "Star Trek"},
		{"kitten", "sitting"},
	}
	for _, p := range pairs {
		if ab, ba := Score(p[0], p[1]), Score(p[1], p[0]); ab != ba {
			t.Errorf("Score(%q, %q) = %d but Score(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreRange(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"alien", "Alien", 100},
		{"alien", "Aliens", 83},
		{"abc", "xyz", 0},
		{"", "abc", 0},
	}
	for _, tt := range tests {
		got := Score(tt.a, tt.b)
		if got != tt.expected {
			t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
		if got < 0 || got > 100 {
			t.Errorf("Score(%q, %q) = %d out of range", tt.a, tt.b, got)
		}
	}

	if got := Score("alien", "Predator"); got >= 40 {
		t.Errorf("Score(alien, Predator) = %d, expected below 40", got)
	}
}
