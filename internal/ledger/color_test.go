package ledger

import "testing"

func TestPastelize(t *testing.T) {
	tests := []struct {
		name  string
		hex   string
		ratio float64
		want  string
	}{
		{"black at default ratio", "#000000", 0.7, "rgb(77, 77, 77)"},
		{"white is a fixed point", "#ffffff", 0.7, "rgb(255, 255, 255)"},
		{"pure red keeps its channel", "#ff0000", 0.7, "rgb(255, 77, 77)"},
		{"ratio one returns the color", "#336699", 1.0, "rgb(51, 102, 153)"},
		{"ratio zero returns white", "#336699", 0.0, "rgb(255, 255, 255)"},
		{"uppercase hex accepted", "#FF0000", 0.7, "rgb(255, 77, 77)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pastelize(tt.hex, tt.ratio); got != tt.want {
				t.Errorf("Pastelize(%q, %v) = %q, want %q", tt.hex, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestPastelizeFallback(t *testing.T) {
	invalid := []string{"", "000000", "#abc", "#12345", "#1234567", "#gggggg", "rgb(0,0,0)"}
	for _, hex := range invalid {
		if got := Pastelize(hex, DefaultPastelRatio); got != PastelFallback {
			t.Errorf("Pastelize(%q) = %q, want fallback %q", hex, got, PastelFallback)
		}
	}
}
