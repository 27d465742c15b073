// Package flags scans normalized posting text against a catalog of
// suspicious-pattern rules and a handful of text-quality signals. The
// detector is a pure function of its input: no I/O, no mutation, so a
// rescan of the same posting always yields the same ordered flag set.
package flags

import (
	"strings"

	"jobscreen-engine/internal/domain"
)

// Detector defaults; thresholds are exposed in config so they can be
// tuned without recompiling.
const (
	DefaultMinDescriptionLen = 120
	DefaultCapsRatio         = 0.3
	DefaultMisspellingCount  = 3
	DefaultEscalateCount     = 4
)

// Misspellings commonly seen in scam postings. Three or more trip the
// spelling_errors signal.
var misspellings = []string{
	"recieve", "succesful", "occassion", "excelent", "seperate",
	"occured", "reccommend", "experiance", "qualifed", "benifits",
	"salery", "comapny", "organiation", "oppurtunity", "intrested",
}

type Detector struct {
	Catalog           *Catalog
	MinDescriptionLen int     // below this, short_description fires
	CapsRatio         float64 // raw-text uppercase ratio above this fires excessive_caps
	MisspellingCount  int
	EscalateCount     int // aggregate severity escalates when more flags match
}

// NewDetector returns a detector over the given catalog with default
// thresholds. A nil catalog means the built-in one.
func NewDetector(c *Catalog) Detector {
	if c == nil {
		c = Default()
	}
	return Detector{
		Catalog:           c,
		MinDescriptionLen: DefaultMinDescriptionLen,
		CapsRatio:         DefaultCapsRatio,
		MisspellingCount:  DefaultMisspellingCount,
		EscalateCount:     DefaultEscalateCount,
	}
}

// Detect scans the normalized text and the posting's metadata. Matched
// flags come back in catalog scan order, one per category: a phrase that
// repeats ten times still contributes a single flag, which keeps the
// list bounded and the severity aggregate stable.
func (d Detector) Detect(normText string, p domain.JobPosting) []domain.RedFlag {
	var out []domain.RedFlag
	seen := map[string]bool{}
	add := func(name string, sev domain.Severity) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, domain.RedFlag{Name: name, Severity: sev})
	}

	for i := range d.Catalog.Rules {
		r := &d.Catalog.Rules[i]
		if ruleMatches(r, normText) {
			add(r.Name, r.severity)
		}
	}

	// Text-quality signals. Capitalization is measured on the raw
	// description; normalization lower-cases everything.
	if capsRatio(p.Description) > d.CapsRatio {
		add("excessive_caps", domain.SeverityMedium)
	}
	if countMisspellings(normText) >= d.MisspellingCount {
		add("spelling_errors", domain.SeverityLow)
	}
	if len(p.Description) < d.MinDescriptionLen {
		add("short_description", domain.SeverityMedium)
	}
	if missingRequirements(normText, p) {
		add("missing_requirements", domain.SeverityLow)
	}

	return out
}

// Aggregate returns the overall severity of a flag set: the highest
// individual severity, escalated one level when the count exceeds the
// escalation threshold. Flags are corroborating evidence; many weak ones
// still add up.
func (d Detector) Aggregate(flags []domain.RedFlag) domain.Severity {
	agg := domain.SeverityNone
	for _, f := range flags {
		if f.Severity > agg {
			agg = f.Severity
		}
	}
	if len(flags) > d.EscalateCount && agg != domain.SeverityNone {
		agg = agg.Escalate()
	}
	return agg
}

func ruleMatches(r *Rule, text string) bool {
	for _, needle := range r.Any {
		if strings.Contains(text, strings.ToLower(needle)) {
			return true
		}
	}
	for _, re := range r.compiled {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func capsRatio(raw string) float64 {
	if raw == "" {
		return 0
	}
	upper := 0
	for _, r := range raw {
		if r >= 'A' && r <= 'Z' {
			upper++
		}
	}
	return float64(upper) / float64(len([]rune(raw)))
}

// CountMisspellings counts distinct known misspellings present in the
// normalized text; the feature extractor uses the raw count.
func CountMisspellings(text string) int { return countMisspellings(text) }

func countMisspellings(text string) int {
	n := 0
	for _, m := range misspellings {
		if strings.Contains(text, m) {
			n++
		}
	}
	return n
}

func missingRequirements(normText string, p domain.JobPosting) bool {
	if strings.TrimSpace(p.Requirements) != "" {
		return false
	}
	for _, section := range []string{"requirement", "qualification", "skills", "what you will need"} {
		if strings.Contains(normText, section) {
			return false
		}
	}
	return true
}

// HasRequirementsSection is the feature-extractor view of the same check.
func HasRequirementsSection(normText string, p domain.JobPosting) bool {
	return !missingRequirements(normText, p)
}
