package flags

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"jobscreen-engine/internal/domain"
)

// Rule is one red-flag category: a name, a severity, and the phrases or
// regex patterns that trigger it. The catalog is data, not control flow;
// the detector only scans it. A matched rule yields exactly one RedFlag
// no matter how many of its patterns occur.
type Rule struct {
	Name     string   `yaml:"name"`
	Severity string   `yaml:"severity"` // low | medium | high
	Any      []string `yaml:"any"`      // case-insensitive substrings
	Patterns []string `yaml:"patterns"` // regexes, matched on normalized text

	severity domain.Severity
	compiled []*regexp.Regexp
}

// Catalog is the ordered set of red-flag rules. Scan order is catalog
// order, which fixes the insertion order of matched flags.
type Catalog struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads a catalog override from a yaml file and compiles it.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if err := c.Compile(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &c, nil
}

// Compile validates severities and compiles every rule pattern.
func (c *Catalog) Compile() error {
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Name == "" {
			return fmt.Errorf("rules[%d].name is required", i)
		}
		switch strings.ToLower(r.Severity) {
		case "low":
			r.severity = domain.SeverityLow
		case "medium":
			r.severity = domain.SeverityMedium
		case "high":
			r.severity = domain.SeverityHigh
		default:
			return fmt.Errorf("rules[%d] (%s): unknown severity %q", i, r.Name, r.Severity)
		}
		if len(r.Any) == 0 && len(r.Patterns) == 0 {
			return fmt.Errorf("rules[%d] (%s): needs at least one phrase or pattern", i, r.Name)
		}
		r.compiled = r.compiled[:0]
		for _, p := range r.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return fmt.Errorf("rules[%d] (%s): pattern %q: %w", i, r.Name, p, err)
			}
			r.compiled = append(r.compiled, re)
		}
	}
	return nil
}

// Default returns the built-in catalog. It is compiled and ready to scan.
func Default() *Catalog {
	c := &Catalog{Rules: []Rule{
		{
			Name:     "upfront_payment",
			Severity: "high",
			Any: []string{
				"registration fee", "processing fee", "application fee",
				"training fee", "joining fee", "deposit required",
				"security deposit", "upfront payment", "payment required",
				"pay a fee", "pay fee", "western union", "wire transfer",
				"money transfer",
			},
			Patterns: []string{
				`(?:investment|deposit|fee|payment)\s+(?:required|needed|mandatory)`,
				`pay\s+(?:a\s+)?(?:small\s+)?(?:registration|processing|joining)\s+fee`,
			},
		},
		{
			Name:     "crypto_scheme",
			Severity: "high",
			Any: []string{
				"bitcoin", "cryptocurrency", "crypto investment",
				"blockchain investment",
			},
			Patterns: []string{
				`(?:bitcoin|crypto|blockchain)\s+(?:investment|required|needed)`,
			},
		},
		{
			Name:     "unrealistic_earnings",
			Severity: "high",
			Any: []string{
				"guaranteed income", "guaranteed job", "easy money",
				"get rich quick", "make money fast", "passive income",
				"unlimited earning",
			},
			Patterns: []string{
				`earn\s+[$€£₹]\s*\d{3,}`,
				`(?:earn|make|get)\s+\$?\d{4,}\s*(?:per|daily|weekly|monthly|guaranteed)`,
			},
		},
		{
			Name:     "no_interview",
			Severity: "high",
			Any: []string{
				"no interview", "skip interview", "instant hire",
				"instant approval", "no background check", "no verification",
				"no assessment",
			},
			Patterns: []string{
				`(?:no|without|skip)\s+(?:background\s+check|verification|interview|assessment)`,
			},
		},
		{
			Name:     "chat_only_contact",
			Severity: "high",
			Any: []string{
				"whatsapp", "telegram", "viber", "dm only",
				"dm for details", "message for details", "inbox for details",
			},
			Patterns: []string{
				`(?:only|strictly|exclusively)\s+(?:on\s+|via\s+)?(?:whatsapp|telegram|viber|skype)`,
				`(?:whatsapp|telegram|viber|skype)\s+(?:only|required|mandatory)`,
			},
		},
		{
			Name:     "urgency_pressure",
			Severity: "medium",
			Any: []string{
				"urgent hiring", "urgent requirement", "act now",
				"apply immediately", "apply asap", "hurry up",
				"limited positions", "limited time offer", "don't miss",
				"last chance",
			},
			Patterns: []string{
				`(?:only|limited|few)\s+\d+\s+(?:position|seat|spot|vacanc|opening)`,
			},
		},
		{
			Name:     "mlm_language",
			Severity: "medium",
			Any: []string{
				"mlm", "network marketing", "multilevel marketing",
				"multi-level marketing", "pyramid scheme", "refer and earn",
				"referral commission", "recruitment bonus",
			},
			Patterns: []string{
				`(?:recruit|refer)\s+(?:friends|family|people)`,
			},
		},
		{
			Name:     "no_experience_bait",
			Severity: "medium",
			Any: []string{
				"no experience needed", "no experience required",
				"no qualification needed", "no degree required",
				"freshers welcome", "anyone can apply",
			},
		},
	}}
	if err := c.Compile(); err != nil {
		// The built-in table is static; a compile failure is a programming
		// error, not a runtime condition.
		panic(err)
	}
	return c
}
