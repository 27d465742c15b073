package quality

import (
	"testing"

	"jobscreen-engine/internal/domain"
)

func TestFromConfidenceLadder(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Tier
	}{
		{0, Excellent},
		{9.99, Excellent},
		{10, VeryHigh},
		{25, High},
		{35, Good},
		{45, Moderate},
		{55, Fair},
		{65, Low},
		{75, VeryLow},
		{85, Poor},
		{90, Suspicious},
		{100, Suspicious},
	}
	for _, tt := range tests {
		if got := Classify(tt.confidence, domain.SeverityNone, 0); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}

func TestClassifyCoversFullRange(t *testing.T) {
	for c := 0.0; c <= 100; c += 0.5 {
		got := Classify(c, domain.SeverityNone, 0)
		if got < Excellent || got > Suspicious {
			t.Fatalf("confidence %v mapped outside the tier range: %v", c, got)
		}
	}
}

func TestClassifyMonotonicInConfidence(t *testing.T) {
	prev := Excellent
	for c := 0.0; c <= 100; c += 1 {
		got := Classify(c, domain.SeverityNone, 0)
		if got < prev {
			t.Fatalf("tier improved as confidence rose at %v: %v -> %v", c, prev, got)
		}
		prev = got
	}
}

func TestClassifyFlagsOnlyDemote(t *testing.T) {
	for c := 0.0; c <= 100; c += 10 {
		base := Classify(c, domain.SeverityNone, 0)
		for _, sev := range []domain.Severity{domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh} {
			for _, n := range []int{1, 3, 6} {
				got := Classify(c, sev, n)
				if got < base {
					t.Fatalf("flags improved the tier at c=%v sev=%v n=%d: %v -> %v", c, sev, n, base, got)
				}
			}
		}
	}
}

func TestClassifyHighSeverityDemotesTwo(t *testing.T) {
	if got := Classify(5, domain.SeverityHigh, 1); got != High {
		t.Fatalf("got %v, want HIGH", got)
	}
}

func TestClassifyMediumSeverityDemotesOne(t *testing.T) {
	if got := Classify(5, domain.SeverityMedium, 1); got != VeryHigh {
		t.Fatalf("got %v, want VERY HIGH", got)
	}
}

func TestClassifyManyFlagsDemoteExtra(t *testing.T) {
	few := Classify(5, domain.SeverityMedium, 4)
	many := Classify(5, domain.SeverityMedium, 5)
	if many != few+1 {
		t.Fatalf("5 flags should demote one more than 4: %v vs %v", many, few)
	}
}

func TestClassifyClampsAtSuspicious(t *testing.T) {
	if got := Classify(95, domain.SeverityHigh, 8); got != Suspicious {
		t.Fatalf("got %v, want SUSPICIOUS", got)
	}
}

func TestTierStrings(t *testing.T) {
	if Excellent.String() != "EXCELLENT" || Suspicious.String() != "SUSPICIOUS" {
		t.Fatal("tier names wrong")
	}
	if Tier(42).String() != "SUSPICIOUS" {
		t.Fatal("out-of-range tier should read SUSPICIOUS")
	}
}
