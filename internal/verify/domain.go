// Package verify scores a company-name/email/domain triple for
// suspicious registration and formatting patterns. Scoring is purely
// lexical: no DNS, no WHOIS, no network at all, so a score is
// deterministic for a given triple.
package verify

import (
	"regexp"
	"strings"
)

// Free providers are normal for individuals but suspicious as a claimed
// corporate contact.
var freeMailProviders = map[string]bool{
	"gmail.com": true, "yahoo.com": true, "hotmail.com": true,
	"outlook.com": true, "aol.com": true, "mail.com": true,
	"rediffmail.com": true, "protonmail.com": true, "icloud.com": true,
	"live.com": true, "yandex.com": true,
}

var disposableProviders = []string{
	"mailinator", "10minutemail", "guerrillamail", "temp-mail",
	"tempmail", "trashmail", "yopmail", "fakeinbox",
}

var suspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".win",
	".bid", ".click", ".buzz", ".racing", ".date",
}

// Lookalike labels for well-known employers, a favorite of phishing
// postings.
var lookalikes = []string{
	"gooogle", "googel", "amaz0n", "microsft", "micros0ft",
	"appple", "faceb00k", "linkdin", "linkedln", "netfl1x",
}

var companySuffixes = []string{
	"inc", "llc", "ltd", "corp", "co", "company", "pvt", "group",
	"technologies", "solutions", "systems",
}

const (
	neutralScore = 0.5  // malformed input
	absentScore  = 0.45 // no domain and no email at all
)

// Score rates the triple in [0,1]; higher is more suspicious. Absence of
// any domain/email yields a moderate default (absence is weaker evidence
// than an actively bad domain), and malformed input yields a neutral
// mid-range score rather than an error — domain data is frequently
// missing or mangled in scraped postings.
func Score(company, email, dom string) float64 {
	company = strings.ToLower(strings.TrimSpace(company))
	email = strings.ToLower(strings.TrimSpace(email))
	dom = normalizeDomain(dom)

	if malformed(dom) || malformed(email) {
		return neutralScore
	}

	emailDomain := ""
	if at := strings.LastIndex(email, "@"); at >= 0 {
		emailDomain = email[at+1:]
	}
	if dom == "" {
		dom = emailDomain
	}
	if dom == "" {
		return absentScore
	}

	score := 0.0

	if isDisposable(dom) || isDisposable(emailDomain) {
		score += 0.6
	} else if freeMailProviders[emailDomain] || freeMailProviders[dom] {
		// A free provider as the corporate contact point.
		score += 0.35
	}

	// Registration-pattern checks apply only to a claimed corporate
	// domain, not to a free provider standing in for one.
	if !freeMailProviders[dom] {
		for _, tld := range suspiciousTLDs {
			if strings.HasSuffix(dom, tld) {
				score += 0.3
				break
			}
		}
		if digitHeavy(dom) {
			score += 0.25
		}
		if strings.Count(dom, "-") > 2 {
			score += 0.2
		}
		for _, fake := range lookalikes {
			if strings.Contains(dom, fake) {
				score += 0.5
				break
			}
		}
		if company != "" {
			score += (1 - nameSimilarity(company, dom)) * 0.3
		}
	}

	return clamp01(score)
}

func normalizeDomain(dom string) string {
	dom = strings.ToLower(strings.TrimSpace(dom))
	dom = strings.TrimPrefix(dom, "https://")
	dom = strings.TrimPrefix(dom, "http://")
	dom = strings.TrimPrefix(dom, "www.")
	return strings.TrimSuffix(dom, "/")
}

var validHostOrEmpty = regexp.MustCompile(`^[a-z0-9@._\-]*$`)

func malformed(s string) bool {
	return !validHostOrEmpty.MatchString(s)
}

func isDisposable(dom string) bool {
	for _, d := range disposableProviders {
		if strings.Contains(dom, d) {
			return true
		}
	}
	return false
}

func digitHeavy(dom string) bool {
	label := dom
	if i := strings.Index(label, "."); i > 0 {
		label = label[:i]
	}
	if label == "" {
		return false
	}
	digits := 0
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > 0 && float64(digits)/float64(len(label)) > 0.3
}

// nameSimilarity measures lexical overlap between the company name's
// tokens and the domain's registrable label, in [0,1].
func nameSimilarity(company, dom string) float64 {
	label := dom
	if i := strings.Index(label, "."); i > 0 {
		label = label[:i]
	}
	label = strings.ReplaceAll(label, "-", "")

	tokens := companyTokens(company)
	if len(tokens) == 0 || label == "" {
		return 0.5 // nothing to compare; neither match nor mismatch
	}

	joined := strings.Join(tokens, "")
	if joined == label || strings.Contains(label, joined) || strings.Contains(joined, label) {
		return 1
	}

	matched := 0
	for _, t := range tokens {
		if strings.Contains(label, t) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

func companyTokens(company string) []string {
	fields := strings.FieldsFunc(company, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	var out []string
	for _, f := range fields {
		skip := false
		for _, s := range companySuffixes {
			if f == s {
				skip = true
				break
			}
		}
		if !skip && len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
