package confidence

import "testing"

func TestFormat_Tiers(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{1.0, TierHigh},
		{0.95, TierHigh},
		{0.8, TierHigh},
		{0.7999, TierMedium},
		{0.79, TierMedium},
		{0.5, TierMedium},
		{0.4999, TierLow},
		{0.49, TierLow},
		{0.0, TierLow},
	}

	for _, tt := range tests {
		if got := Format(tt.score).Tier; got != tt.want {
			t.Errorf("Format(%v).Tier = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFormat_Percentage(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0.95, 95},
		{0.9, 90},
		{0.126, 13},
		{0.124, 12},
		{0.004, 0},
		{1.0, 100},
		{0.0, 0},
	}

	for _, tt := range tests {
		if got := Format(tt.score).Percentage; got != tt.want {
			t.Errorf("Format(%v).Percentage = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	if got := Format(0.95).String(); got != "95%" {
		t.Errorf("String() = %q, want %q", got, "95%")
	}
}

func TestTier_Class(t *testing.T) {
	tests := map[Tier]string{
		TierHigh:   "confidence-high",
		TierMedium: "confidence-med",
		TierLow:    "confidence-low",
	}
	for tier, want := range tests {
		if got := tier.Class(); got != want {
			t.Errorf("%s.Class() = %q, want %q", tier, got, want)
		}
	}
}
