package domain

import "fmt"

// Severity of a single red flag, and of the aggregate over a posting.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "none"
	}
}

// Escalate bumps the severity one level, capped at high.
func (s Severity) Escalate() Severity {
	if s >= SeverityHigh {
		return SeverityHigh
	}
	return s + 1
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	case "none", "":
		*s = SeverityNone
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

// RedFlag is one matched catalog category. A posting owns an ordered set
// of these (catalog scan order, duplicates collapsed).
type RedFlag struct {
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
}

// AnalysisResult is the immutable output of one analysis call. It is
// assembled once by the orchestrator and never persisted by the engine.
type AnalysisResult struct {
	IsFake             bool      `json:"is_fake"`
	AIConfidence       float64   `json:"ai_confidence"`       // network alone, 0..100
	TreeConfidence     float64   `json:"tree_confidence"`     // forest alone, 0..100
	CombinedConfidence float64   `json:"combined_confidence"` // blended, 0..100
	RedFlags           []RedFlag `json:"red_flags_list"`
	RedFlagCount       int       `json:"red_flags_count"`
	RedFlagSeverity    Severity  `json:"red_flags_severity"`
	JobQuality         string    `json:"job_quality"`
	DomainScore        float64   `json:"domain_score"` // 0..1, higher = more suspicious

	// Pass-through descriptive fields for presentation.
	Company  string `json:"company"`
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
	Portal   string `json:"job_portal"`

	// Degraded is set when the pipeline substituted neutral defaults for
	// absent fields or ran without the tree classifier; Warnings names
	// each substitution.
	Degraded bool     `json:"degraded,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
