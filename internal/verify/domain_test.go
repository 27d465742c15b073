package verify

import "testing"

func TestScoreAbsence(t *testing.T) {
	if got := Score("Acme Corp", "", ""); got != 0.45 {
		t.Fatalf("absence should score 0.45, got %v", got)
	}
}

func TestScoreMalformed(t *testing.T) {
	for _, in := range []string{"acme .com", "acme<>corp.com", "acme corp"} {
		if got := Score("Acme", "", in); got != 0.5 {
			t.Fatalf("malformed %q should score 0.5, got %v", in, got)
		}
	}
}

func TestScoreMatchingCorporateDomain(t *testing.T) {
	got := Score("Acme Corp", "jobs@acme.com", "acme.com")
	if got != 0 {
		t.Fatalf("matching corporate domain should score 0, got %v", got)
	}
}

func TestScoreFreemailContact(t *testing.T) {
	got := Score("Acme Corp", "acmehiring@gmail.com", "")
	if got != 0.35 {
		t.Fatalf("freemail corporate contact should score 0.35, got %v", got)
	}
}

func TestScoreFreemailWorseThanMatchingDomain(t *testing.T) {
	freemail := Score("Acme Corp", "acmehiring@gmail.com", "")
	matching := Score("Acme Corp", "jobs@acme.com", "acme.com")
	if freemail <= matching {
		t.Fatalf("freemail (%v) should be more suspicious than a matching domain (%v)", freemail, matching)
	}
}

func TestScoreDisposableProvider(t *testing.T) {
	got := Score("Acme", "hr@mailinator.com", "")
	if got < 0.6 {
		t.Fatalf("disposable provider should score at least 0.6, got %v", got)
	}
}

func TestScoreSuspiciousTLD(t *testing.T) {
	base := Score("Acme", "", "acme.com")
	bad := Score("Acme", "", "acme.xyz")
	if bad <= base {
		t.Fatalf("suspicious TLD (%v) should outscore .com (%v)", bad, base)
	}
}

func TestScoreLookalike(t *testing.T) {
	got := Score("Google", "", "gooogle-careers.com")
	if got < 0.5 {
		t.Fatalf("lookalike domain should score at least 0.5, got %v", got)
	}
}

func TestScoreDigitHeavyDomain(t *testing.T) {
	plain := Score("Acme", "", "acme.com")
	digits := Score("Acme", "", "acme12345.com")
	if digits <= plain {
		t.Fatalf("digit-heavy domain (%v) should outscore plain (%v)", digits, plain)
	}
}

func TestScoreNameMismatch(t *testing.T) {
	match := Score("BrightHire Solutions", "", "brighthire.com")
	mismatch := Score("BrightHire Solutions", "", "globalpayfast.com")
	if mismatch <= match {
		t.Fatalf("unrelated domain (%v) should outscore matching one (%v)", mismatch, match)
	}
}

func TestScoreURLNoiseStripped(t *testing.T) {
	clean := Score("Acme", "", "acme.com")
	noisy := Score("Acme", "", "https://www.acme.com/")
	if clean != noisy {
		t.Fatalf("scheme/www noise changed the score: %v vs %v", clean, noisy)
	}
}

func TestScoreDeterministic(t *testing.T) {
	first := Score("Acme Corp", "hr@acme-jobs.xyz", "acme-jobs.xyz")
	for range 10 {
		if got := Score("Acme Corp", "hr@acme-jobs.xyz", "acme-jobs.xyz"); got != first {
			t.Fatalf("score changed between calls: %v vs %v", got, first)
		}
	}
}

func TestScoreBounded(t *testing.T) {
	// Pile every signal on at once; the score must stay in [0,1].
	got := Score("Google", "hr@mailinator.com", "gooogle-j0bs-2024-fast.xyz")
	if got < 0 || got > 1 {
		t.Fatalf("score out of range: %v", got)
	}
	if got != 1 {
		t.Fatalf("worst case should clamp to 1, got %v", got)
	}
}
