// Package quality maps combined fraud confidence and red-flag evidence
// onto the discrete trust tier shown to users.
package quality

import "jobscreen-engine/internal/domain"

// Tier indices order from most to least trustworthy; smaller is better.
type Tier int

const (
	Excellent Tier = iota
	VeryHigh
	High
	Good
	Moderate
	Fair
	Low
	VeryLow
	Poor
	Suspicious
)

var tierNames = [...]string{
	"EXCELLENT", "VERY HIGH", "HIGH", "GOOD", "MODERATE",
	"FAIR", "LOW", "VERY LOW", "POOR", "SUSPICIOUS",
}

func (t Tier) String() string {
	if t < Excellent || t > Suspicious {
		return "SUSPICIOUS"
	}
	return tierNames[t]
}

// Classify derives the tier. The primary axis is inverted confidence:
// low fraud-confidence means a high tier. Red flags can only demote from
// what confidence alone would assign — they are corroborating negative
// evidence, never offsetting positive evidence. The thresholds are
// monotonic and cover every confidence in [0,100].
func Classify(combined float64, severity domain.Severity, flagCount int) Tier {
	t := fromConfidence(combined)

	switch severity {
	case domain.SeverityHigh:
		t = t.demote(2)
	case domain.SeverityMedium:
		t = t.demote(1)
	}
	if flagCount > 4 {
		t = t.demote(1)
	}
	return t
}

func fromConfidence(c float64) Tier {
	switch {
	case c < 10:
		return Excellent
	case c < 20:
		return VeryHigh
	case c < 30:
		return High
	case c < 40:
		return Good
	case c < 50:
		return Moderate
	case c < 60:
		return Fair
	case c < 70:
		return Low
	case c < 80:
		return VeryLow
	case c < 90:
		return Poor
	default:
		return Suspicious
	}
}

func (t Tier) demote(n int) Tier {
	t += Tier(n)
	if t > Suspicious {
		return Suspicious
	}
	return t
}
