package theme

import "testing"

func TestBand(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{120, "strong"},
		{75, "strong"},
		{74, "fair"},
		{50, "fair"},
		{49, "weak"},
		{0, "weak"},
		{-5, "weak"},
	}
	for _, tt := range tests {
		if got := Band(tt.score).Label; got != tt.want {
			t.Errorf("Band(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
