package textnorm

import "testing"

func TestNormalizePlainText(t *testing.T) {
	got := Normalize("  Senior   Software\tEngineer \n Remote  ")
	want := "senior software engineer remote"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeStripsMarkup(t *testing.T) {
	in := `<div><h1>Data Entry</h1><p>Earn money from <b>home</b>!</p><script>alert(1)</script></div>`
	got := Normalize(in)
	want := "data entry earn money from home !"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeAdjacentTagsDontGlueWords(t *testing.T) {
	got := Normalize("<p>work</p><p>from</p><p>home</p>")
	want := "work from home"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text already",
		"  MIXED Case and nbsp  ",
		"<b>bold</b> claim",
		"tabs\tand\nnewlines\r\n眾多 unicode",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("empty input should normalize to empty, got %q", got)
	}
	if got := Normalize(" \t\n "); got != "" {
		t.Fatalf("whitespace input should normalize to empty, got %q", got)
	}
}

func TestNormalizeControlCharacters(t *testing.T) {
	got := Normalize("apply\x00now\x1fplease")
	want := "apply now please"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("a b   c ")
	if got != "a b c" {
		t.Fatalf("got %q", got)
	}
}
