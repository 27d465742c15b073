package analyze

import (
	"net/url"
	"strings"

	"jobscreen-engine/internal/domain"
)

// MinTextLen is the shortest pasted description worth analyzing.
// Anything below it carries too little signal for the feature set.
const MinTextLen = 50

// DetectInputType decides whether raw user input is a posting URL or
// pasted description text. A single-line http(s) string with a valid
// host is a URL; everything else is text.
func DetectInputType(input string) domain.InputType {
	s := strings.TrimSpace(input)
	if s == "" {
		return domain.InputText
	}
	if strings.ContainsAny(s, "\n\r") {
		return domain.InputText
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return domain.InputText
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return domain.InputText
	}
	return domain.InputURL
}

// ValidateText rejects input too short to score meaningfully.
func ValidateText(input string) error {
	s := strings.TrimSpace(input)
	if s == "" {
		return domain.ErrEmptyPosting
	}
	if len(s) < MinTextLen {
		return domain.ErrInputTooShort
	}
	return nil
}
