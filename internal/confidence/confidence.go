// Package confidence classifies backend confidence scores for display.
package confidence

import (
	"math"
	"strconv"
)

// Tier is the display bucket for a confidence score.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Tier thresholds. A score equal to a threshold stays in the upper tier.
const (
	HighThreshold   = 0.8
	MediumThreshold = 0.5
)

// Class returns the CSS class used by the HTML view for this tier.
func (t Tier) Class() string {
	switch t {
	case TierMedium:
		return "confidence-med"
	case TierLow:
		return "confidence-low"
	default:
		return "confidence-high"
	}
}

// Level is a formatted confidence score.
type Level struct {
	Percentage int  `json:"percentage" yaml:"percentage"`
	Tier       Tier `json:"tier" yaml:"tier"`
}

// String returns the percentage label, e.g. "95%".
func (l Level) String() string {
	return strconv.Itoa(l.Percentage) + "%"
}

// Format converts a score in [0,1] into a percentage and tier.
//
// Tiers are applied as successive downgrades rather than ranges:
// start at high, drop to medium below 0.8, drop to low below 0.5.
func Format(score float64) Level {
	tier := TierHigh
	if score < HighThreshold {
		tier = TierMedium
	}
	if score < MediumThreshold {
		tier = TierLow
	}

	return Level{
		Percentage: roundHalfUp(score * 100),
		Tier:       tier,
	}
}

// roundHalfUp rounds .5 toward positive infinity, so -0.5 becomes 0.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
