package analyze

import (
	"regexp"
	"strings"

	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/textnorm"
)

// ParseText turns pasted free text into a structured posting. These are
// best-effort heuristics over the line structure job boards produce;
// anything not found stays empty and the pipeline degrades gracefully.
func ParseText(raw string) domain.JobPosting {
	lines := splitLines(raw)

	p := domain.JobPosting{
		Title:        extractLabeled(raw, "job title", "role", "position"),
		Company:      extractLabeled(raw, "company name", "company", "employer"),
		Location:     extractLabeled(raw, "location", "city"),
		Salary:       extractSalary(lines),
		Description:  strings.TrimSpace(raw),
		Requirements: extractRequirements(lines),
		Portal:       DetectPortal(raw),
	}

	if email := firstEmail(raw); email != "" {
		p.ContactEmail = email
		if at := strings.LastIndex(email, "@"); at >= 0 {
			p.CompanyDomain = email[at+1:]
		}
	}

	if p.Title == "" {
		p.Title = firstPlausibleTitle(lines)
	}
	return p
}

// DetectPortal infers the source job portal from URL fragments or
// platform-specific UI phrases left in the scraped text.
func DetectPortal(text string) string {
	t := strings.ToLower(text)
	for _, portal := range []string{"naukri.com", "linkedin.com", "indeed.com", "internshala.com"} {
		if strings.Contains(t, portal) {
			return portal
		}
	}
	switch {
	case strings.Contains(t, "send me roles like this"), strings.Contains(t, "report this job"):
		return "naukri.com"
	case strings.Contains(t, "easy apply") && strings.Contains(t, "linkedin"):
		return "linkedin.com"
	}
	return "manual_input"
}

var emailRe = regexp.MustCompile(`[\w.\-+]+@[\w.\-]+\.\w+`)

func firstEmail(text string) string {
	return emailRe.FindString(text)
}

func splitLines(raw string) []string {
	var out []string
	for _, l := range strings.Split(raw, "\n") {
		if l = textnorm.CleanText(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// extractLabeled finds "Label: value" lines for any of the given labels,
// in preference order.
func extractLabeled(raw string, labels ...string) string {
	for _, label := range labels {
		re := regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(label) + `\s*[:\-]\s*(.+)$`)
		if m := re.FindStringSubmatch(raw); m != nil {
			return textnorm.CleanText(m[1])
		}
	}
	return ""
}

var salaryLineRe = regexp.MustCompile(`[$€£₹]\s*[\d,]+`)

func extractSalary(lines []string) string {
	for _, l := range lines {
		low := strings.ToLower(l)
		if strings.HasPrefix(low, "salary") || strings.HasPrefix(low, "compensation") ||
			strings.HasPrefix(low, "ctc") || strings.HasPrefix(low, "pay:") {
			if i := strings.IndexAny(l, ":-"); i >= 0 {
				return textnorm.CleanText(l[i+1:])
			}
			return l
		}
		if m := salaryLineRe.FindString(l); m != "" {
			return m
		}
	}
	return ""
}

func extractRequirements(lines []string) string {
	var out []string
	capture := false
	for _, l := range lines {
		low := strings.ToLower(l)
		if strings.Contains(low, "requirement") || strings.Contains(low, "qualification") ||
			strings.HasPrefix(low, "skills") {
			capture = true
			continue
		}
		if capture {
			if strings.Contains(low, "salary") || strings.Contains(low, "location") ||
				strings.Contains(low, "apply") {
				break
			}
			out = append(out, l)
		}
	}
	return strings.Join(out, " ")
}

var skipLinePhrases = []string{
	"company logo", "about company", "report this job", "easy apply",
	"duration", "applied", "key skills", "employment type",
}

// firstPlausibleTitle falls back to the first short, label-free line
// near the top of the text.
func firstPlausibleTitle(lines []string) string {
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, l := range lines {
		if len(l) < 4 || len(l) >= 100 {
			continue
		}
		low := strings.ToLower(l)
		if strings.Contains(l, "@") || strings.Contains(low, "http") {
			continue
		}
		skip := false
		for _, phrase := range skipLinePhrases {
			if strings.Contains(low, phrase) {
				skip = true
				break
			}
		}
		if !skip {
			return l
		}
	}
	return ""
}
