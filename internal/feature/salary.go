package feature

import (
	"regexp"
	"strconv"
	"strings"
)

// SalaryRealism scores a declared salary against a broad plausibility
// band. It returns whether a concrete figure is present at all and a
// realism score in [0,1] — 1 for plainly plausible compensation, low
// for the four-figure-a-day promises scam postings favor. Absent salary
// is neutral (0.5): missing pay information is common and weak evidence.
func SalaryRealism(salary, normText string) (present bool, realism float64) {
	s := strings.ToLower(strings.TrimSpace(salary))
	if s == "" || s == "not specified" {
		// Some postings bury the figure in the description instead.
		s = firstSalaryMention(normText)
	}
	if s == "" {
		return false, 0.5
	}

	if strings.Contains(s, "unlimited") {
		return true, 0.15
	}
	if strings.Contains(s, "negotiable") || strings.Contains(s, "competitive") {
		// A figure-less promise; present but unverifiable.
		return true, 0.5
	}

	amount, ok := parseAmount(s)
	if !ok {
		return false, 0.5
	}

	// Rupee amounts are banded in USD-equivalent terms.
	if strings.ContainsAny(s, "₹") || strings.Contains(s, "inr") || strings.Contains(s, "rs.") {
		amount /= 80
	}
	if strings.Contains(s, "lpa") || strings.Contains(s, "lakh") {
		amount = amount * 100000 / 80
	}

	switch period(s) {
	case "hour":
		return true, band(amount, 8, 200, 500)
	case "day":
		return true, band(amount, 50, 1500, 5000)
	case "week":
		return true, band(amount, 300, 8000, 20000)
	case "month":
		return true, band(amount, 800, 40000, 100000)
	default: // annual or unstated
		return true, band(amount, 2000, 600000, 2000000)
	}
}

// band maps an amount onto a realism score: inside [lo,hi] is plausible,
// beyond absurd it approaches zero.
func band(amount, lo, hi, absurd float64) float64 {
	switch {
	case amount >= lo && amount <= hi:
		return 1
	case amount < lo:
		return 0.4
	case amount <= absurd:
		return 0.3
	default:
		return 0.1
	}
}

var (
	amountRe = regexp.MustCompile(`[\d][\d,]*(?:\.\d+)?`)
	salaryRe = regexp.MustCompile(`(?:[$€£₹]\s*[\d,]+(?:\s*per\s+(?:hour|day|week|month|year|annum))?|[\d,]+\s*(?:per\s+(?:hour|day|week|month|year|annum)|lpa))`)
)

func parseAmount(s string) (float64, bool) {
	m := amountRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(s, m+"k") || strings.Contains(s, m+" k") {
		v *= 1000
	}
	return v, true
}

func period(s string) string {
	for _, p := range []string{"hour", "day", "week", "month"} {
		if strings.Contains(s, "per "+p) || strings.Contains(s, "/"+p) ||
			strings.Contains(s, p+"ly") || strings.Contains(s, "a "+p) {
			return p
		}
	}
	if strings.Contains(s, "/hr") || strings.Contains(s, "hourly") {
		return "hour"
	}
	return "year"
}

func firstSalaryMention(normText string) string {
	return salaryRe.FindString(normText)
}
